package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"

	"github.com/wippyai/bincodec/codec"
	"github.com/wippyai/bincodec/trace"
)

func main() {
	var (
		schemaName  = flag.String("schema", "", "Schema to decode against (see -list)")
		inFile      = flag.String("in", "", "Input file (- for stdin; .zst is decompressed)")
		hexInput    = flag.String("hex", "", "Input as a hex string")
		list        = flag.Bool("list", false, "List built-in schemas and exit")
		describe    = flag.Bool("describe", false, "Print the schema descriptor as JSON and exit")
		count       = flag.Int("count", 1, "Number of successive values to decode")
		verbose     = flag.Bool("v", false, "Log every decode through the tracer")
		interactive = flag.Bool("i", false, "Interactive mode")
	)
	flag.Parse()

	catalog := buildCatalog()

	if *list {
		for _, name := range catalogNames(catalog) {
			fmt.Printf("  %-12s %s\n", name, summarize(catalog[name]))
		}
		return
	}

	if *interactive {
		if err := runInteractive(catalog); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *schemaName == "" {
		fmt.Fprintln(os.Stderr, "Usage: decode -schema <name> [-in <file> | -hex <string>] [-count N]")
		fmt.Fprintln(os.Stderr, "       decode -schema <name> -describe")
		fmt.Fprintln(os.Stderr, "       decode -list")
		fmt.Fprintln(os.Stderr, "       decode -i  (interactive mode)")
		os.Exit(1)
	}

	if err := run(catalog, *schemaName, *inFile, *hexInput, *describe, *count, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(catalog map[string]codec.Coder, schemaName, inFile, hexInput string, describe bool, count int, verbose bool) error {
	schema, ok := catalog[schemaName]
	if !ok {
		return fmt.Errorf("unknown schema %q; try -list", schemaName)
	}

	if describe {
		out, err := json.MarshalIndent(codec.Describe(schema), "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	data, err := readInput(inFile, hexInput)
	if err != nil {
		return err
	}

	coder := schema
	if verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("logger: %w", err)
		}
		defer logger.Sync()
		trace.SetLogger(logger)
		coder = trace.Coder(schemaName, schema)
	}

	r := codec.NewBytesReader(data)
	for i := 0; i < count; i++ {
		start := r.Position()
		v, err := coder.ReadValue(r)
		if err != nil {
			return fmt.Errorf("decode value %d at offset %d: %w", i, start, err)
		}
		fmt.Printf("value %d: bytes [%d, %d)\n", i, start, r.Position())
		fmt.Print(renderValue(v))
	}
	if rest := len(data) - r.Position(); rest > 0 {
		fmt.Printf("%d trailing byte(s) not consumed\n", rest)
	}
	return nil
}

func readInput(inFile, hexInput string) ([]byte, error) {
	switch {
	case hexInput != "":
		return parseHex(hexInput)

	case inFile == "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil

	case inFile != "":
		data, err := os.ReadFile(inFile)
		if err != nil {
			return nil, fmt.Errorf("read file: %w", err)
		}
		if strings.HasSuffix(inFile, ".zst") {
			dec, err := zstd.NewReader(nil)
			if err != nil {
				return nil, fmt.Errorf("zstd init: %w", err)
			}
			defer dec.Close()
			data, err = dec.DecodeAll(data, nil)
			if err != nil {
				return nil, fmt.Errorf("zstd decompress: %w", err)
			}
		}
		return data, nil

	default:
		return nil, fmt.Errorf("no input: pass -in or -hex")
	}
}

// parseHex decodes a hex string, ignoring whitespace between digits.
func parseHex(s string) ([]byte, error) {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, s)
	data, err := hex.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("parse hex: %w", err)
	}
	return data, nil
}

// summarize returns the first line of a schema's description.
func summarize(c codec.Coder) string {
	desc := codec.Describe(c).String()
	if i := strings.IndexByte(desc, '\n'); i >= 0 {
		return desc[:i]
	}
	return desc
}

// renderValue renders a decoded value as an indented tree, one line per
// member.
func renderValue(v any) string {
	var b strings.Builder
	renderInto(&b, "", v, 0)
	return b.String()
}

func renderInto(b *strings.Builder, label string, v any, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	if label != "" {
		b.WriteString(label)
		b.WriteString(": ")
	}
	switch t := v.(type) {
	case *codec.RecordValue:
		b.WriteString(t.Record().Name())
		b.WriteString("\n")
		for _, f := range t.Record().Fields() {
			renderInto(b, f.Name, t.Get(f.Name), depth+1)
		}
	case *codec.ChoiceValue:
		fmt.Fprintf(b, "%s/%s (tag %#x)\n", t.Choice().Name(), t.TagName(), t.Tag())
		renderInto(b, "", t.Value(), depth+1)
	case *codec.BitPackedValue:
		b.WriteString(t.String())
		b.WriteString("\n")
	case []any:
		fmt.Fprintf(b, "%d element(s)\n", len(t))
		for i, e := range t {
			renderInto(b, fmt.Sprintf("[%d]", i), e, depth+1)
		}
	case string:
		fmt.Fprintf(b, "%q\n", t)
	case uint64:
		fmt.Fprintf(b, "%d (%#x)\n", t, t)
	case byte:
		fmt.Fprintf(b, "%q\n", t)
	default:
		fmt.Fprintf(b, "%v\n", t)
	}
}
