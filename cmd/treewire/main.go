package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/treewire/treewire/codec"
	"github.com/treewire/treewire/schemafile"
	"github.com/treewire/treewire/xmltext"
)

func main() {
	var (
		schemaFile  = flag.String("schema", "", "Path to schema YAML file")
		typeName    = flag.String("type", "", "Type to decode as (defaults to the schema root)")
		inFile      = flag.String("in", "", "Path to document file (- for stdin)")
		decode      = flag.Bool("decode", false, "Decode the document and print the value")
		roundtrip   = flag.Bool("roundtrip", false, "Decode then re-encode and print the document")
		pretty      = flag.Bool("pretty", false, "Indent re-encoded output")
		list        = flag.Bool("list", false, "List schema types and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	if *schemaFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: treewire -schema <file.yaml> -in <doc.xml> [-type name] [-decode|-roundtrip]")
		fmt.Fprintln(os.Stderr, "       treewire -schema <file.yaml> -list")
		fmt.Fprintln(os.Stderr, "       treewire -schema <file.yaml> -in <doc.xml> -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		codec.SetLogger(logger)
		schemafile.SetLogger(logger)
	}

	if *interactive {
		if err := runInteractive(*schemaFile, *inFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*schemaFile, *typeName, *inFile, *decode, *roundtrip, *pretty, *list); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(schemaFile, typeName, inFile string, decode, roundtrip, pretty, listOnly bool) error {
	schema, err := schemafile.LoadFile(schemaFile)
	if err != nil {
		return fmt.Errorf("load schema: %w", err)
	}

	fmt.Printf("Schema: %s\n", schemaFile)
	fmt.Printf("Types: %d\n", len(schema.Types()))
	if schema.Root() != "" {
		fmt.Printf("Root: %s\n", schema.Root())
	}

	if listOnly {
		fmt.Printf("\nDefined types:\n")
		for _, name := range schema.Types() {
			fmt.Printf("  %s: %s\n", name, schema.Describe(name))
		}
		return nil
	}

	if inFile == "" {
		return fmt.Errorf("no document given, use -in (or -list to inspect the schema)")
	}

	var data []byte
	if inFile == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(inFile)
	}
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	doc, err := xmltext.Parse(data)
	if err != nil {
		return fmt.Errorf("parse document: %w", err)
	}

	if typeName == "" {
		typeName = schema.Root()
		if typeName == "" {
			return fmt.Errorf("schema declares no root type, use -type")
		}
	}
	c, err := schema.Codec(typeName)
	if err != nil {
		return err
	}

	value, err := c.Decode(doc)
	if err != nil {
		return fmt.Errorf("decode as %s: %w", typeName, err)
	}

	if decode || !roundtrip {
		fmt.Printf("\n%s\n", formatValue(value))
	}

	if roundtrip {
		node, err := c.Encode(value)
		if err != nil {
			return fmt.Errorf("re-encode: %w", err)
		}
		var out []byte
		if pretty {
			out, err = xmltext.RenderIndent(node, 2)
		} else {
			out, err = xmltext.Render(node)
		}
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}
		fmt.Printf("\n%s\n", out)
	}

	return nil
}

// formatValue renders a decoded value in a readable literal notation.
func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "[]"
	case codec.Unit:
		return "()"
	case codec.Option:
		if !v.Some {
			return "none"
		}
		return "some(" + formatValue(v.Value) + ")"
	case codec.Tagged:
		if len(v.Values) == 0 {
			return v.Tag
		}
		parts := make([]string, len(v.Values))
		for i, e := range v.Values {
			parts[i] = formatValue(e)
		}
		return v.Tag + "(" + strings.Join(parts, ", ") + ")"
	case codec.Variant:
		parts := make([]string, len(v.Payload))
		for i, n := range v.Payload {
			parts[i] = n.String()
		}
		return v.Tag + "(" + strings.Join(parts, ", ") + ")"
	case *codec.Thunk:
		if v.Forced() {
			return "lazy " + formatValue(v.Force())
		}
		return "lazy <unforced>"
	case *codec.Cell:
		return "cell(" + formatValue(v.Value) + ")"
	case []any:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = formatValue(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case string:
		return fmt.Sprintf("%q", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
