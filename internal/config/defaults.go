package config

import (
	_ "embed"
	"fmt"
	"sync"
)

//go:embed default_config.cfg
var defaultConfigData []byte

var (
	defaultsOnce sync.Once
	defaultsCfg  *FluffConfig
)

// DefaultConfigText returns the embedded default configuration file.
func DefaultConfigText() string {
	return string(defaultConfigData)
}

// Defaults returns the embedded default configuration. The returned value
// is shared; use Set, WithOverrides or Copy to derive a modified config.
func Defaults() *FluffConfig {
	defaultsOnce.Do(func() {
		values, err := ParseCfg(defaultConfigData)
		if err != nil {
			panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
		}
		c := newFluffConfig()
		if err := c.merge(SourceDefault, "default_config.cfg", values); err != nil {
			panic(fmt.Sprintf("config: loading embedded defaults: %v", err))
		}
		defaultsCfg = c
	})
	return defaultsCfg
}
