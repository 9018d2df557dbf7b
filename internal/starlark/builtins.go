package starlark

import (
	"fmt"

	"go.starlark.net/starlark"
)

// JinjaLiterals maps the lower-case literal names used in templates onto
// their Starlark values so `{% if flag == true %}` evaluates.
func JinjaLiterals() starlark.StringDict {
	return starlark.StringDict{
		"true":  starlark.True,
		"false": starlark.False,
		"none":  starlark.None,
	}
}

// DBTBuiltins returns stand-ins for the dbt context functions. They render
// plausible SQL so dbt projects can be linted without a dbt installation.
func DBTBuiltins() starlark.StringDict {
	return starlark.StringDict{
		"ref":            starlark.NewBuiltin("ref", dbtRef),
		"source":         starlark.NewBuiltin("source", dbtSource),
		"config":         starlark.NewBuiltin("config", dbtConfig),
		"var":            starlark.NewBuiltin("var", dbtVar),
		"is_incremental": starlark.NewBuiltin("is_incremental", dbtIsIncremental),
		"this":           starlark.String("this_model"),
	}
}

// ref("package", "model") renders the model name.
func dbtRef(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, _ []starlark.Tuple) (starlark.Value, error) {
	if len(args) == 0 {
		return nil, errorf(b, "missing model name")
	}
	name, ok := starlark.AsString(args[len(args)-1])
	if !ok {
		return nil, errorf(b, "model name must be a string, got %s", args[len(args)-1].Type())
	}
	return starlark.String(name), nil
}

func dbtSource(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var source, table string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "source_name", &source, "table_name", &table); err != nil {
		return nil, err
	}
	return starlark.String(source + "_" + table), nil
}

func dbtConfig(_ *starlark.Thread, _ *starlark.Builtin, _ starlark.Tuple, _ []starlark.Tuple) (starlark.Value, error) {
	return starlark.String(""), nil
}

func dbtVar(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	var def starlark.Value = starlark.String("")
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "variable", &name, "default?", &def); err != nil {
		return nil, err
	}
	return starlark.String("item"), nil
}

func dbtIsIncremental(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}
	return starlark.True, nil
}

func errorf(b *starlark.Builtin, format string, args ...any) error {
	return fmt.Errorf("%s: %s", b.Name(), fmt.Sprintf(format, args...))
}
