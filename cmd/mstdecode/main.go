package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dunkyl/slymastodon/pkg/decode"
	"github.com/dunkyl/slymastodon/pkg/mastodon"
	"github.com/dunkyl/slymastodon/pkg/shape"
	"github.com/dunkyl/slymastodon/pkg/value"
)

// selectShape picks the target shape and the scope to resolve delayed
// references against, from the command line flags.
func selectShape(entity, schemaFile string, yamlExample bool) (*shape.Shape, *shape.Scope, error) {
	if entity != "" {
		s, ok := mastodon.Lookup(entity)
		if !ok {
			return nil, nil, fmt.Errorf("unknown entity type %q", entity)
		}
		return s, mastodon.Catalog(), nil
	}
	if schemaFile == "" {
		return nil, nil, fmt.Errorf("one of -entity or -schema is required")
	}
	doc, err := os.ReadFile(schemaFile)
	if err != nil {
		return nil, nil, fmt.Errorf("read schema file: %w", err)
	}
	registry, err := shape.NewRegistry(16)
	if err != nil {
		return nil, nil, err
	}
	var s *shape.Shape
	if yamlExample {
		s, err = registry.CompileYAMLExample(doc)
	} else {
		s, err = registry.CompileJSONSchema(doc)
	}
	if err != nil {
		return nil, nil, err
	}
	return s, registry.Scope(), nil
}

func main() {
	entity := flag.String("entity", "", "Entity type name from the Mastodon catalog, e.g. Post")
	schemaFile := flag.String("schema", "", "Path to a JSON Schema file describing the target shape")
	yamlExample := flag.Bool("yaml", false, "Treat -schema as an example YAML/JSON instance document")
	inFile := flag.String("in", "", "Path to the JSON document to decode (defaults to stdin)")
	flag.Parse()

	s, scope, err := selectShape(*entity, *schemaFile, *yamlExample)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}

	var raw []byte
	if *inFile != "" {
		raw, err = os.ReadFile(*inFile)
	} else {
		raw, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}

	v, err := value.FromJSON(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	out, err := decode.DecodeIn(s, v, shape.NewEnv(), scope)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Decode failed: %v\n", err)
		os.Exit(1)
	}

	rendered, err := json.MarshalIndent(out.AsInterface(), "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering result: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Decoded as %s:\n%s\n", s, rendered)
}
