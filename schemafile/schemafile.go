// Package schemafile compiles YAML type descriptions into codecs.
//
// A schema document names types and describes their shape:
//
//	types:
//	  point:
//	    record:
//	      fields:
//	        - name: x
//	          type: int32
//	        - name: y
//	          type: int32
//	          default: 0
//	  shape:
//	    variant:
//	      cases:
//	        - tag: Dot
//	        - tag: Circle
//	          of: [float64]
//	  shapes:
//	    list: shape
//	root: shapes
//
// Type references are builtin scalar names (bool, int8..int64,
// uint8..uint64, float32, float64, string, char, unit) or names defined
// in the same document. References resolve lazily, so recursive types
// are legal; unknown names are rejected at load time.
package schemafile

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/treewire/treewire"
	"github.com/treewire/treewire/codec"
	"github.com/treewire/treewire/errors"
)

// Schema holds the compiled codecs of one schema document.
type Schema struct {
	codecs map[string]codec.Codec
	specs  map[string]*typeSpec
	order  []string
	root   string
}

type document struct {
	Types yaml.Node `yaml:"types"`
	Root  string    `yaml:"root"`
}

type typeSpec struct {
	Record  *recordSpec  `yaml:"record"`
	Variant *variantSpec `yaml:"variant"`
	List    string       `yaml:"list"`
	Option  string       `yaml:"option"`
	Tuple   []string     `yaml:"tuple"`
	Lazy    string       `yaml:"lazy"`
	Cell    string       `yaml:"cell"`
}

type recordSpec struct {
	Fields []fieldSpec `yaml:"fields"`
}

type fieldSpec struct {
	Name    string     `yaml:"name"`
	Type    string     `yaml:"type"`
	Default *yaml.Node `yaml:"default"`
}

type variantSpec struct {
	Cases []caseSpec `yaml:"cases"`
}

type caseSpec struct {
	Tag string   `yaml:"tag"`
	Of  []string `yaml:"of"`
}

// Load parses and compiles a schema document.
func Load(data []byte) (*Schema, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.InvalidSchema("malformed schema document", err)
	}

	s := &Schema{
		codecs: make(map[string]codec.Codec),
		specs:  make(map[string]*typeSpec),
		root:   doc.Root,
	}

	if doc.Types.Kind != 0 {
		if doc.Types.Kind != yaml.MappingNode {
			return nil, errors.InvalidSchema("types must be a mapping", nil)
		}
		// Mapping content alternates key and value nodes; walking it
		// directly keeps document order.
		for i := 0; i+1 < len(doc.Types.Content); i += 2 {
			name := doc.Types.Content[i].Value
			spec := new(typeSpec)
			if err := doc.Types.Content[i+1].Decode(spec); err != nil {
				return nil, errors.InvalidSchema(fmt.Sprintf("type %q", name), err)
			}
			if _, dup := s.specs[name]; dup {
				return nil, errors.InvalidSchema(fmt.Sprintf("type %q defined twice", name), nil)
			}
			s.specs[name] = spec
			s.order = append(s.order, name)
		}
	}

	for _, name := range s.order {
		c, err := s.build(name, s.specs[name])
		if err != nil {
			return nil, err
		}
		s.codecs[name] = c
	}

	if err := s.validate(); err != nil {
		return nil, err
	}

	Logger().Debug("compiled schema",
		zap.Int("types", len(s.order)),
		zap.String("root", s.root))
	return s, nil
}

// LoadFile reads and compiles a schema document from disk.
func LoadFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.InvalidSchema("read schema file", err)
	}
	return Load(data)
}

// Types lists the defined type names in document order.
func (s *Schema) Types() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Root returns the document's declared root type name, if any.
func (s *Schema) Root() string {
	return s.root
}

// Describe renders a one-line summary of a defined type's shape.
func (s *Schema) Describe(name string) string {
	spec, ok := s.specs[name]
	if !ok {
		if _, builtin := builtinCodec(name); builtin {
			return name
		}
		return name + ": (undefined)"
	}
	switch {
	case spec.Record != nil:
		parts := make([]string, 0, len(spec.Record.Fields))
		for _, f := range spec.Record.Fields {
			p := f.Name + ": " + f.Type
			if f.Default != nil {
				p += " = " + f.Default.Value
			}
			parts = append(parts, p)
		}
		return "record {" + strings.Join(parts, ", ") + "}"
	case spec.Variant != nil:
		parts := make([]string, 0, len(spec.Variant.Cases))
		for _, c := range spec.Variant.Cases {
			p := c.Tag
			if len(c.Of) > 0 {
				p += "(" + strings.Join(c.Of, ", ") + ")"
			}
			parts = append(parts, p)
		}
		return "variant " + strings.Join(parts, " | ")
	case spec.List != "":
		return "list of " + spec.List
	case spec.Option != "":
		return "option of " + spec.Option
	case spec.Lazy != "":
		return "lazy " + spec.Lazy
	case spec.Cell != "":
		return "cell of " + spec.Cell
	default:
		return "tuple (" + strings.Join(spec.Tuple, ", ") + ")"
	}
}

// Codec resolves a type name: builtin scalars or defined types.
func (s *Schema) Codec(name string) (codec.Codec, error) {
	if c, ok := builtinCodec(name); ok {
		return c, nil
	}
	if c, ok := s.codecs[name]; ok {
		return c, nil
	}
	return codec.Codec{}, errors.UnknownType(name)
}

// RootCodec resolves the declared root type.
func (s *Schema) RootCodec() (codec.Codec, error) {
	if s.root == "" {
		return codec.Codec{}, errors.InvalidSchema("schema declares no root type", nil)
	}
	return s.Codec(s.root)
}

func builtinCodec(name string) (codec.Codec, bool) {
	switch name {
	case "bool":
		return codec.Bool(), true
	case "int8":
		return codec.Int8(), true
	case "int16":
		return codec.Int16(), true
	case "int32":
		return codec.Int32(), true
	case "int64":
		return codec.Int64(), true
	case "uint8":
		return codec.Uint8(), true
	case "uint16":
		return codec.Uint16(), true
	case "uint32":
		return codec.Uint32(), true
	case "uint64":
		return codec.Uint64(), true
	case "float32":
		return codec.Float32(), true
	case "float64":
		return codec.Float64(), true
	case "string":
		return codec.String(), true
	case "char":
		return codec.Char(), true
	case "unit":
		return codec.UnitCodec(), true
	}
	return codec.Codec{}, false
}

// ref builds a lazily-resolved reference so definitions may be
// mutually recursive regardless of declaration order.
func (s *Schema) ref(name string) codec.Codec {
	if c, ok := builtinCodec(name); ok {
		return c
	}
	return codec.Codec{
		Name: name,
		Encode: func(v any) (treewire.Node, error) {
			c, ok := s.codecs[name]
			if !ok {
				return nil, errors.UnknownType(name)
			}
			return c.Encode(v)
		},
		Decode: func(n treewire.Node) (any, error) {
			c, ok := s.codecs[name]
			if !ok {
				return nil, errors.UnknownType(name)
			}
			return c.Decode(n)
		},
	}
}

func (s *Schema) build(name string, spec *typeSpec) (codec.Codec, error) {
	shapes := 0
	if spec.Record != nil {
		shapes++
	}
	if spec.Variant != nil {
		shapes++
	}
	for _, ref := range []string{spec.List, spec.Option, spec.Lazy, spec.Cell} {
		if ref != "" {
			shapes++
		}
	}
	if len(spec.Tuple) > 0 {
		shapes++
	}
	if shapes != 1 {
		return codec.Codec{}, errors.InvalidSchema(
			fmt.Sprintf("type %q must have exactly one shape, has %d", name, shapes), nil)
	}

	switch {
	case spec.Record != nil:
		fields := make([]codec.Field, 0, len(spec.Record.Fields))
		for _, f := range spec.Record.Fields {
			if f.Name == "" || f.Type == "" {
				return codec.Codec{}, errors.InvalidSchema(
					fmt.Sprintf("type %q: record fields need name and type", name), nil)
			}
			field := codec.Field{Name: f.Name, Codec: s.ref(f.Type)}
			if f.Default != nil {
				def, err := s.defaultValue(f.Type, f.Default)
				if err != nil {
					return codec.Codec{}, errors.InvalidSchema(
						fmt.Sprintf("type %q field %q", name, f.Name), err)
				}
				field.Default = def
				field.HasDefault = true
			}
			fields = append(fields, field)
		}
		return codec.Record(name, fields), nil

	case spec.Variant != nil:
		cases := make([]codec.Case, 0, len(spec.Variant.Cases))
		for _, c := range spec.Variant.Cases {
			if c.Tag == "" {
				return codec.Codec{}, errors.InvalidSchema(
					fmt.Sprintf("type %q: variant cases need a tag", name), nil)
			}
			elems := make([]codec.Codec, 0, len(c.Of))
			for _, ref := range c.Of {
				elems = append(elems, s.ref(ref))
			}
			cases = append(cases, codec.Case{Tag: c.Tag, Elems: elems})
		}
		return codec.VariantOf(name, cases...), nil

	case spec.List != "":
		return codec.List(s.ref(spec.List)), nil

	case spec.Option != "":
		return codec.OptionOf(s.ref(spec.Option)), nil

	case spec.Lazy != "":
		return codec.LazyOf(s.ref(spec.Lazy)), nil

	case spec.Cell != "":
		return codec.CellOf(s.ref(spec.Cell)), nil

	default:
		elems := make([]codec.Codec, 0, len(spec.Tuple))
		for _, ref := range spec.Tuple {
			elems = append(elems, s.ref(ref))
		}
		return codec.Tuple(elems...), nil
	}
}

// defaultValue coerces a YAML default into the field type's value
// shape. Defaults are supported for scalar fields and, as null, for
// option fields.
func (s *Schema) defaultValue(typeName string, node *yaml.Node) (any, error) {
	decode := func(v any) error { return node.Decode(v) }
	switch typeName {
	case "bool":
		var v bool
		return v, decode(&v)
	case "int8":
		var v int8
		return v, decode(&v)
	case "int16":
		var v int16
		return v, decode(&v)
	case "int32":
		var v int32
		return v, decode(&v)
	case "int64":
		var v int64
		return v, decode(&v)
	case "uint8":
		var v uint8
		return v, decode(&v)
	case "uint16":
		var v uint16
		return v, decode(&v)
	case "uint32":
		var v uint32
		return v, decode(&v)
	case "uint64":
		var v uint64
		return v, decode(&v)
	case "float32":
		var v float32
		return v, decode(&v)
	case "float64":
		var v float64
		return v, decode(&v)
	case "string":
		var v string
		return v, decode(&v)
	case "char":
		var v string
		if err := decode(&v); err != nil {
			return nil, err
		}
		runes := []rune(v)
		if len(runes) != 1 {
			return nil, fmt.Errorf("char default %q must be one character", v)
		}
		return runes[0], nil
	case "unit":
		return codec.Unit{}, nil
	}
	if spec, ok := s.specs[typeName]; ok && spec.Option != "" && node.Tag == "!!null" {
		return codec.None(), nil
	}
	return nil, fmt.Errorf("defaults are not supported for type %q", typeName)
}

// validate checks every reference against builtins and definitions.
func (s *Schema) validate() error {
	check := func(ref string) error {
		if ref == "" {
			return nil
		}
		if _, ok := builtinCodec(ref); ok {
			return nil
		}
		if _, ok := s.specs[ref]; ok {
			return nil
		}
		return errors.UnknownType(ref)
	}

	for _, name := range s.order {
		spec := s.specs[name]
		refs := []string{spec.List, spec.Option, spec.Lazy, spec.Cell}
		refs = append(refs, spec.Tuple...)
		if spec.Record != nil {
			for _, f := range spec.Record.Fields {
				refs = append(refs, f.Type)
			}
		}
		if spec.Variant != nil {
			for _, c := range spec.Variant.Cases {
				refs = append(refs, c.Of...)
			}
		}
		for _, ref := range refs {
			if err := check(ref); err != nil {
				return err
			}
		}
	}
	return check(s.root)
}
