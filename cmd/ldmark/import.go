package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/ldmark/pkg/types"
)

// Import formats.
const (
	formatJSON  = "json"
	formatJSONL = "jsonl"
	formatYAML  = "yaml"
	formatTOML  = "toml"
)

var importFormat string

var entityImportCmd = &cobra.Command{
	Use:   "import <file|->",
	Short: "Create or replace entities from a JSON, JSONL, YAML or TOML file",
	Long: `Import reads a list of entities and writes them to the store in a single
transaction: either every entity is stored or none is. An entity whose id is
already stored replaces it; one without an id gets a new UUID v7.

  json   an array of entity objects, or a single object
  jsonl  one entity object per line
  yaml   a sequence of entities, or one entity per YAML document
  toml   one [[entity]] table per entity

The format is taken from the file extension unless --format is given. Reading
from stdin requires --format.`,
	Args: exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		format := importFormat
		if format == "" {
			format = formatForPath(path)
		}
		if format == "" {
			return userError(fmt.Errorf("cannot infer format of %s; pass --format", path))
		}

		data, err := readInput(cmd, path)
		if err != nil {
			return err
		}
		entities, err := parseEntities(data, format)
		if err != nil {
			return userError(fmt.Errorf("parse %s: %w", path, err))
		}

		reg := newRegistry()
		for i, e := range entities {
			if e.SchemaType != "" && !reg.IsRegistered(e.SchemaType) {
				return userError(fmt.Errorf("entity %d: %w: %q", i, types.ErrTypeNotFound, e.SchemaType))
			}
		}

		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		ids, err := backend.PutEntities(cmd.Context(), entities)
		if err != nil {
			return lookupError(fmt.Errorf("import %s, no entities stored: %w", path, err))
		}
		log.Info().Str("file", path).Str("format", format).Int("count", len(ids)).Msg("entities imported")

		if flagJSON {
			return writeJSON(cmd.OutOrStdout(), ids)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d entities\n", len(ids))
		return nil
	},
}

func init() {
	entityImportCmd.Flags().StringVar(&importFormat, "format", "", "input format: json, jsonl, yaml or toml")
}

// formatForPath infers the import format from a file extension.
func formatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return formatJSON
	case ".jsonl", ".ndjson":
		return formatJSONL
	case ".yaml", ".yml":
		return formatYAML
	case ".toml":
		return formatTOML
	default:
		return ""
	}
}

// parseEntities decodes data in the given format.
func parseEntities(data []byte, format string) ([]*types.Entity, error) {
	switch format {
	case formatJSON:
		return parseJSONEntities(data)
	case formatJSONL:
		return parseJSONLEntities(data)
	case formatYAML:
		return parseYAMLEntities(data)
	case formatTOML:
		return parseTOMLEntities(data)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

func parseJSONEntities(data []byte) ([]*types.Entity, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var entities []*types.Entity
		if err := json.Unmarshal(trimmed, &entities); err != nil {
			return nil, err
		}
		return compactEntities(entities), nil
	}
	var e types.Entity
	if err := json.Unmarshal(trimmed, &e); err != nil {
		return nil, err
	}
	return []*types.Entity{&e}, nil
}

func parseJSONLEntities(data []byte) ([]*types.Entity, error) {
	var entities []*types.Entity
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var e types.Entity
		if err := json.Unmarshal(line, &e); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		entities = append(entities, &e)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entities, nil
}

func parseYAMLEntities(data []byte) ([]*types.Entity, error) {
	var entities []*types.Entity
	dec := yaml.NewDecoder(bytes.NewReader(data))
	for {
		var node yaml.Node
		err := dec.Decode(&node)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(node.Content) == 0 {
			continue
		}
		switch root := node.Content[0]; root.Kind {
		case yaml.SequenceNode:
			var batch []*types.Entity
			if err := root.Decode(&batch); err != nil {
				return nil, err
			}
			entities = append(entities, compactEntities(batch)...)
		case yaml.MappingNode:
			var e types.Entity
			if err := root.Decode(&e); err != nil {
				return nil, err
			}
			entities = append(entities, &e)
		default:
			return nil, fmt.Errorf("line %d: expected an entity or a list of entities", root.Line)
		}
	}
	return entities, nil
}

// tomlImport is the layout of a TOML import file.
type tomlImport struct {
	Entities []*types.Entity `toml:"entity"`
}

func parseTOMLEntities(data []byte) ([]*types.Entity, error) {
	var doc tomlImport
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		log.Warn().Stringer("key", undecoded[0]).Int("count", len(undecoded)).Msg("ignoring unknown TOML keys")
	}
	return compactEntities(doc.Entities), nil
}

// compactEntities drops null list items.
func compactEntities(in []*types.Entity) []*types.Entity {
	out := in[:0]
	for _, e := range in {
		if e != nil {
			out = append(out, e)
		}
	}
	return out
}
