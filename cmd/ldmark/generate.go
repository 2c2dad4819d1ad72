package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/ldmark/pkg/schema"
	"github.com/mesh-intelligence/ldmark/pkg/types"
)

var (
	generateScript bool
	generatePretty bool
)

var generateCmd = &cobra.Command{
	Use:   "generate <type> <entity-id>",
	Short: "Generate the JSON-LD document of an entity",
	Long: `Generate builds the schema.org document of the given type for one entity.
Pass "-" as the type to use the schema type associated with the entity.
Output is indented when stdout is a terminal unless --pretty is given.`,
	Args: exactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		typeName, id := args[0], args[1]

		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		entity, err := backend.GetEntity(cmd.Context(), id)
		if err != nil {
			return lookupError(fmt.Errorf("get entity %s: %w", id, err))
		}
		if typeName == "-" {
			typeName = entity.SchemaType
		}
		if typeName == "" {
			return userError(fmt.Errorf("entity %s: %w", id, types.ErrNoSchema))
		}

		g, err := newRegistry().Create(typeName)
		if err != nil {
			return lookupError(err)
		}
		doc := g.Generate(entity)

		out := cmd.OutOrStdout()
		pretty := generatePretty
		if !cmd.Flags().Changed("pretty") {
			pretty = isTerminal(out)
		}

		var text string
		if generateScript {
			text, err = schema.ToScriptTag(doc, pretty)
		} else {
			text, err = schema.ToJSON(doc, pretty)
		}
		if err != nil {
			return err
		}
		log.Debug().Str("type", typeName).Str("entity", id).Int("keys", doc.Len()).Msg("document generated")
		_, err = fmt.Fprintln(out, text)
		return err
	},
}

func init() {
	generateCmd.Flags().BoolVar(&generateScript, "script", false, "wrap the document in a JSON-LD script tag")
	generateCmd.Flags().BoolVar(&generatePretty, "pretty", false, "indent the JSON output")
}
