package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/Alia5/structgen/internal/configpaths"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

// ConfigCommand groups config-related subcommands.
type ConfigCommand struct {
	Init ConfigInit `cmd:"" help:"Generate a configuration template"`
}

// ConfigInit scaffolds a configuration file holding the flags of generate or
// check with their defaults.
type ConfigInit struct {
	Command string `arg:"" name:"command" help:"Command to generate config for" enum:"generate,check"`
	Format  string `help:"Output format" enum:"json,yaml,toml" default:"json"`
	Output  string `help:"Destination file path (defaults to current directory)"`
	Force   bool   `help:"Overwrite if the file already exists"`
}

// configFlag is one flag a configuration file can set.
type configFlag struct {
	// Path is the key path kong's configuration resolvers look up.
	Path    []string
	Help    string
	Enum    []string
	Default any
}

func (f configFlag) comment() string {
	if len(f.Enum) == 0 {
		return f.Help
	}
	return fmt.Sprintf("%s (one of: %s)", f.Help, strings.Join(f.Enum, ", "))
}

func (c *ConfigInit) Run() error {
	format := normalizeFormat(c.Format)
	if format == "" {
		return fmt.Errorf("unsupported format: %s", c.Format)
	}

	var flags []configFlag
	switch c.Command {
	case "generate":
		flags = collectFlags(reflect.TypeOf(Generate{}), nil)
	case "check":
		flags = collectFlags(reflect.TypeOf(Check{}), nil)
	default:
		return errors.New("unknown command; expected 'generate' or 'check'")
	}

	dest := c.Output
	if dest == "" {
		dest = c.Command + "." + configpaths.Extension(format)
	}

	if !c.Force {
		if _, err := os.Stat(dest); err == nil {
			return errors.New("destination exists; use --force to overwrite")
		}
	}
	if err := configpaths.EnsureDir(dest); err != nil {
		return err
	}

	var data []byte
	var err error
	switch format {
	case "json":
		data, err = encodeJSON(flags)
	case "yaml":
		data, err = encodeYAML(flags)
	case "toml":
		data, err = encodeTOML(flags)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(dest, data, 0o644)
}

func normalizeFormat(f string) string {
	switch strings.ToLower(f) {
	case "json":
		return "json"
	case "yaml", "yml":
		return "yaml"
	case "toml":
		return "toml"
	default:
		return ""
	}
}

// collectFlags walks a command struct the way kong does and returns its
// flags. Positional arguments are skipped: the configuration resolvers only
// ever fill flags, so an interface file list in a config file would be
// ignored.
func collectFlags(t reflect.Type, prefix []string) []configFlag {
	var flags []configFlag
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Tag.Get("kong") == "-" {
			continue
		}
		if _, ok := f.Tag.Lookup("arg"); ok {
			continue
		}
		if _, ok := f.Tag.Lookup("cmd"); ok {
			continue
		}

		_, embed := f.Tag.Lookup("embed")
		if embed || (f.Anonymous && f.Type.Kind() == reflect.Struct) {
			sub := prefix
			if p := strings.TrimSuffix(f.Tag.Get("prefix"), "."); p != "" {
				sub = append(append([]string(nil), prefix...), strings.Split(p, ".")...)
			}
			flags = append(flags, collectFlags(f.Type, sub)...)
			continue
		}

		def, ok := defaultValue(f.Type, f.Tag.Get("default"))
		if !ok {
			continue
		}
		var enum []string
		if e := f.Tag.Get("enum"); e != "" {
			enum = strings.Split(e, ",")
		}
		flags = append(flags, configFlag{
			Path:    append(append([]string(nil), prefix...), flagKey(f)),
			Help:    f.Tag.Get("help"),
			Enum:    enum,
			Default: def,
		})
	}
	return flags
}

// flagKey mirrors kong's flag naming with dashes folded to underscores, the
// spelling its JSON resolver matches.
func flagKey(f reflect.StructField) string {
	name := f.Tag.Get("name")
	if name == "" {
		var b strings.Builder
		for i, r := range f.Name {
			if unicode.IsUpper(r) {
				if i > 0 {
					b.WriteByte('_')
				}
				r = unicode.ToLower(r)
			}
			b.WriteRune(r)
		}
		name = b.String()
	}
	return strings.ReplaceAll(name, "-", "_")
}

// defaultValue parses a default tag into the Go value the encoders expect.
// Kinds a config file cannot express report false.
func defaultValue(t reflect.Type, def string) (any, bool) {
	switch t.Kind() {
	case reflect.String:
		return def, true
	case reflect.Bool:
		b, _ := strconv.ParseBool(def)
		return b, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, _ := strconv.ParseInt(def, 10, 64)
		return n, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, _ := strconv.ParseUint(def, 10, 64)
		return n, true
	default:
		return nil, false
	}
}

func nest(flags []configFlag) map[string]any {
	root := map[string]any{}
	for _, f := range flags {
		m := root
		for _, k := range f.Path[:len(f.Path)-1] {
			sub, ok := m[k].(map[string]any)
			if !ok {
				sub = map[string]any{}
				m[k] = sub
			}
			m = sub
		}
		m[f.Path[len(f.Path)-1]] = f.Default
	}
	return root
}

// JSON has no comments, so the help text is only in the other formats.
func encodeJSON(flags []configFlag) ([]byte, error) {
	data, err := json.MarshalIndent(nest(flags), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func encodeYAML(flags []configFlag) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range flags {
		m := root
		for _, k := range f.Path[:len(f.Path)-1] {
			m = yamlChild(m, k)
		}
		var val yaml.Node
		if err := val.Encode(f.Default); err != nil {
			return nil, err
		}
		key := &yaml.Node{Kind: yaml.ScalarNode, Value: f.Path[len(f.Path)-1], HeadComment: f.comment()}
		m.Content = append(m.Content, key, &val)
	}
	return yaml.Marshal(root)
}

func yamlChild(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	child := &yaml.Node{Kind: yaml.MappingNode}
	m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, child)
	return child
}

func encodeTOML(flags []configFlag) ([]byte, error) {
	tree, err := toml.TreeFromMap(map[string]any{})
	if err != nil {
		return nil, err
	}
	for _, f := range flags {
		tree.SetPathWithComment(f.Path, f.comment(), false, f.Default)
	}
	s, err := tree.ToTomlString()
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}
