package config

import (
	"fmt"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/v2"
)

// Core is the typed form of the root section.
type Core struct {
	Verbose              int      `koanf:"verbose"`
	NoColor              bool     `koanf:"nocolor"`
	Dialect              string   `koanf:"dialect"`
	Templater            string   `koanf:"templater"`
	Rules                []string `koanf:"rules"`
	ExcludeRules         []string `koanf:"exclude_rules"`
	Recurse              int      `koanf:"recurse"`
	OutputLineLength     int      `koanf:"output_line_length"`
	RunawayLimit         int      `koanf:"runaway_limit"`
	Ignore               []string `koanf:"ignore"`
	IgnoreTemplatedAreas bool     `koanf:"ignore_templated_areas"`
	Encoding             string   `koanf:"encoding"`
	SQLFileExts          []string `koanf:"sql_file_exts"`
}

// Indentation holds the indentation section.
type Indentation struct {
	IndentedJoins        bool `koanf:"indented_joins"`
	IndentedUsingOn      bool `koanf:"indented_using_on"`
	TemplateBlocksIndent bool `koanf:"template_blocks_indent"`
}

// TemplaterSettings holds the templater section and its per-engine children.
type TemplaterSettings struct {
	UnwrapWrappedQueries bool          `koanf:"unwrap_wrapped_queries"`
	Jinja                JinjaSettings `koanf:"jinja"`
	Python               EngineContext `koanf:"python"`
}

// JinjaSettings configures the jinja templater.
type JinjaSettings struct {
	ApplyDBTBuiltins bool              `koanf:"apply_dbt_builtins"`
	Macros           map[string]string `koanf:"macros"`
	Context          map[string]any    `koanf:"context"`
}

// EngineContext carries template variables for an engine.
type EngineContext struct {
	Context map[string]any `koanf:"context"`
}

var stringSliceType = reflect.TypeOf([]string(nil))

// commaSplitHook turns comma separated strings and None into string slices.
func commaSplitHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != stringSliceType {
		return data, nil
	}
	return SplitCommaList(data), nil
}

func (c *FluffConfig) decode(path string, out any) error {
	err := c.k.UnmarshalWithConf(path, out, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:       mapstructure.DecodeHookFuncType(commaSplitHook),
			Result:           out,
			TagName:          "koanf",
			WeaklyTypedInput: true,
		},
	})
	if err != nil {
		return fmt.Errorf("decoding %s section: %w", path, err)
	}
	return nil
}

// Core decodes the root section.
func (c *FluffConfig) Core() (Core, error) {
	var out Core
	err := c.decode(CoreSection, &out)
	return out, err
}

// Indentation decodes the indentation section.
func (c *FluffConfig) Indentation() (Indentation, error) {
	var out Indentation
	err := c.decode("indentation", &out)
	return out, err
}

// Templater decodes the templater section.
func (c *FluffConfig) Templater() (TemplaterSettings, error) {
	var out TemplaterSettings
	err := c.decode("templater", &out)
	return out, err
}
