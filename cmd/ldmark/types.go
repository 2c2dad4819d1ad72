package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/ldmark/pkg/types"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the registered schema types",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		names := newRegistry().TypeNames()
		out := cmd.OutOrStdout()
		if flagJSON {
			doc := types.NewDocument()
			for _, name := range names {
				doc.Set(name, name)
			}
			return writeJSON(out, doc)
		}
		for _, name := range names {
			fmt.Fprintln(out, name)
		}
		return nil
	},
}

var propertiesCmd = &cobra.Command{
	Use:   "properties <type>",
	Short: "Show the property descriptors of a schema type",
	Args:  exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := newRegistry().Create(args[0])
		if err != nil {
			return lookupError(err)
		}
		props := g.Properties()
		out := cmd.OutOrStdout()
		if flagJSON {
			return writeJSON(out, props)
		}

		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tKIND\tREQUIRED\tLABEL")
		printProperties(tw, props, "")
		return tw.Flush()
	},
}

// printProperties writes one row per property, nested names dotted.
func printProperties(tw *tabwriter.Writer, props types.Properties, prefix string) {
	for _, p := range props {
		name := prefix + p.Name
		required := ""
		if p.Required {
			required = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", name, p.Kind, required, p.Label)
		if p.Kind == types.KindObject {
			printProperties(tw, p.Properties, name+".")
		}
	}
}
