package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/ldmark/pkg/schema"
	"github.com/mesh-intelligence/ldmark/pkg/types"
)

// validateResult is the --json output of validate.
type validateResult struct {
	Valid bool                   `json:"valid"`
	Error *types.ValidationError `json:"error,omitempty"`
}

var validateCmd = &cobra.Command{
	Use:   "validate <type> <file|->",
	Short: "Check a JSON-LD document against a schema type",
	Long: `Validate reads a JSON document from a file, or from stdin when the path
is "-", and reports the first required property it is missing. The exit
status is 1 when the document is invalid.`,
	Args: exactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		typeName, path := args[0], args[1]

		g, err := newRegistry().Create(typeName)
		if err != nil {
			return lookupError(err)
		}

		data, err := readInput(cmd, path)
		if err != nil {
			return err
		}
		doc, err := schema.ParseDocument(data)
		if err != nil {
			return userError(fmt.Errorf("parse %s: %w", path, err))
		}

		verr := g.Validate(doc)
		out := cmd.OutOrStdout()
		if flagJSON {
			res := validateResult{Valid: verr == nil}
			if ve, ok := types.AsValidationError(verr); ok {
				res.Error = ve
			}
			if err := writeJSON(out, res); err != nil {
				return err
			}
		} else if verr == nil {
			fmt.Fprintf(out, "valid %s document\n", typeName)
		}
		if verr != nil {
			return lookupError(verr)
		}
		return nil
	},
}

// readInput reads path, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, userError(err)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
