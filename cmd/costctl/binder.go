package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// boundParam is one operation parameter and every flag that sets it.
type boundParam struct {
	name  string
	value pflag.Value
	flags []*pflag.Flag
}

func (p *boundParam) changed() bool {
	for _, f := range p.flags {
		if f.Changed {
			return true
		}
	}
	return false
}

// binder registers parameter flags on a command. Each parameter gets one
// visible kebab-case flag plus hidden aliases sharing the same value, and is
// remembered by its parameter name so --cli-input-json can fill it.
type binder struct {
	fs     *pflag.FlagSet
	params map[string]*boundParam
}

func newBinder(cmd *cobra.Command) *binder {
	return &binder{fs: cmd.Flags(), params: make(map[string]*boundParam)}
}

func (b *binder) bind(param, flag string, aliases []string) {
	f := b.fs.Lookup(flag)
	bp := &boundParam{name: param, value: f.Value, flags: []*pflag.Flag{f}}
	for _, alias := range aliases {
		b.fs.Var(f.Value, alias, "alias for --"+flag)
		_ = b.fs.MarkHidden(alias)
		bp.flags = append(bp.flags, b.fs.Lookup(alias))
	}
	b.params[param] = bp
}

// String binds a string parameter.
func (b *binder) String(p *string, param, flag, usage string, aliases ...string) {
	b.fs.StringVar(p, flag, "", usage)
	b.bind(param, flag, aliases)
}

// Strings binds a list parameter. Values may be repeated or comma separated.
func (b *binder) Strings(p *[]string, param, flag, usage string, aliases ...string) {
	b.fs.StringSliceVar(p, flag, nil, usage)
	b.bind(param, flag, aliases)
}

// Int32 binds an integer parameter; zero means unset.
func (b *binder) Int32(p *int32, param, flag, usage string, aliases ...string) {
	b.fs.Int32Var(p, flag, 0, usage)
	b.bind(param, flag, aliases)
}

// Value binds a parameter with a custom flag value.
func (b *binder) Value(v pflag.Value, param, flag, usage string, aliases ...string) {
	b.fs.Var(v, flag, usage)
	b.bind(param, flag, aliases)
}

// JSON binds a structured parameter decoded from a JSON document into target.
func (b *binder) JSON(target any, param, flag, usage string, aliases ...string) {
	b.Value(newJSONValue(target), param, flag, usage+" (JSON or file://path)", aliases...)
}

// applyInputJSON fills parameters from a JSON object keyed by parameter
// name. Parameters already set on the command line are left alone; unknown
// keys are an error.
func (b *binder) applyInputJSON(data []byte) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse --cli-input-json: %w", err)
	}

	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		bp, ok := b.params[k]
		if !ok {
			return fmt.Errorf("--cli-input-json: unknown parameter %q (known: %s)", k, strings.Join(b.names(), ", "))
		}
		if bp.changed() {
			continue
		}
		if err := setFromJSON(bp.value, doc[k]); err != nil {
			return fmt.Errorf("--cli-input-json: parameter %s: %w", k, err)
		}
	}
	return nil
}

func (b *binder) names() []string {
	names := make([]string, 0, len(b.params))
	for n := range b.params {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func setFromJSON(v pflag.Value, raw json.RawMessage) error {
	if js, ok := v.(jsonSetter); ok {
		return js.SetJSON(raw)
	}
	if sv, ok := v.(pflag.SliceValue); ok {
		var items []string
		if err := json.Unmarshal(raw, &items); err != nil {
			return fmt.Errorf("want a list of strings: %w", err)
		}
		return sv.Replace(items)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return v.Set(s)
	}
	// Numbers and booleans use their literal JSON text.
	return v.Set(string(raw))
}

// readInputJSON loads the --cli-input-json argument: "-" reads stdin,
// anything else is a file path.
func readInputJSON(arg string, stdin io.Reader) ([]byte, error) {
	if arg == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read --cli-input-json from stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return nil, fmt.Errorf("read --cli-input-json: %w", err)
	}
	return data, nil
}
