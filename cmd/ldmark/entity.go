// Entity management commands for the ldmark CLI.
package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/ldmark/pkg/types"
)

var entityCmd = &cobra.Command{
	Use:   "entity",
	Short: "Manage the content entities documents are generated from",
}

// Flags for entity add.
var (
	addID         string
	addTitle      string
	addExcerpt    string
	addContent    string
	addPermalink  string
	addThumbnail  string
	addSchemaType string
	addCategories []string
	addMeta       []string
)

// Flags for entity list.
var (
	listSchemaType string
	listLimit      int
)

var entityAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create or replace an entity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		meta, err := parseMetaPairs(addMeta)
		if err != nil {
			return userError(err)
		}
		if addSchemaType != "" && !newRegistry().IsRegistered(addSchemaType) {
			return userError(fmt.Errorf("%w: %q", types.ErrTypeNotFound, addSchemaType))
		}

		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		e := &types.Entity{
			ID:           addID,
			Title:        addTitle,
			Excerpt:      addExcerpt,
			RawContent:   addContent,
			Permalink:    addPermalink,
			ThumbnailURL: addThumbnail,
			SchemaType:   addSchemaType,
			Categories:   addCategories,
			Meta:         meta,
		}
		id, err := backend.PutEntity(cmd.Context(), e)
		if err != nil {
			return lookupError(fmt.Errorf("put entity: %w", err))
		}

		if flagJSON {
			return writeJSON(cmd.OutOrStdout(), e)
		}
		fmt.Fprintln(cmd.OutOrStdout(), id)
		return nil
	},
}

var entityGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show an entity",
	Args:  exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		e, err := backend.GetEntity(cmd.Context(), args[0])
		if err != nil {
			return lookupError(fmt.Errorf("get entity %s: %w", args[0], err))
		}
		if flagJSON {
			return writeJSON(cmd.OutOrStdout(), e)
		}
		printEntityDetails(cmd, e)
		return nil
	},
}

var entityListCmd = &cobra.Command{
	Use:   "list",
	Short: "List entities in creation order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		entities, err := backend.ListEntities(cmd.Context(), types.EntityFilter{
			SchemaType: listSchemaType,
			Limit:      listLimit,
		})
		if err != nil {
			return fmt.Errorf("list entities: %w", err)
		}

		out := cmd.OutOrStdout()
		if flagJSON {
			if entities == nil {
				entities = []*types.Entity{}
			}
			return writeJSON(out, entities)
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tTYPE\tTITLE")
		for _, e := range entities {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", e.ID, orDash(e.SchemaType), e.Title)
		}
		return tw.Flush()
	},
}

var entitySetMetaCmd = &cobra.Command{
	Use:   "set-meta <id> <key> <value>",
	Short: "Set one metadata value; an empty value removes the key",
	Args:  exactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		if err := backend.SetMeta(cmd.Context(), args[0], args[1], args[2]); err != nil {
			return lookupError(fmt.Errorf("set meta %s on %s: %w", args[1], args[0], err))
		}
		return nil
	},
}

var entityDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an entity and its metadata",
	Args:  exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		if err := backend.DeleteEntity(cmd.Context(), args[0]); err != nil {
			return lookupError(fmt.Errorf("delete entity %s: %w", args[0], err))
		}
		return nil
	},
}

func init() {
	entityAddCmd.Flags().StringVar(&addID, "id", "", "entity ID (default: new UUID v7)")
	entityAddCmd.Flags().StringVar(&addTitle, "title", "", "title")
	entityAddCmd.Flags().StringVar(&addExcerpt, "excerpt", "", "short plain-text summary")
	entityAddCmd.Flags().StringVar(&addContent, "content", "", "body HTML")
	entityAddCmd.Flags().StringVar(&addPermalink, "permalink", "", "canonical URL")
	entityAddCmd.Flags().StringVar(&addThumbnail, "thumbnail", "", "featured image URL")
	entityAddCmd.Flags().StringVar(&addSchemaType, "type", "", "associated schema type")
	entityAddCmd.Flags().StringSliceVar(&addCategories, "category", nil, "taxonomy term, repeatable")
	entityAddCmd.Flags().StringArrayVar(&addMeta, "meta", nil, "metadata key=value, repeatable")

	entityListCmd.Flags().StringVar(&listSchemaType, "type", "", "only entities associated with this schema type")
	entityListCmd.Flags().IntVar(&listLimit, "limit", 0, "maximum number of entities (0 = all)")

	entityCmd.AddCommand(entityAddCmd)
	entityCmd.AddCommand(entityGetCmd)
	entityCmd.AddCommand(entityListCmd)
	entityCmd.AddCommand(entitySetMetaCmd)
	entityCmd.AddCommand(entityDeleteCmd)
	entityCmd.AddCommand(entityImportCmd)
}

// parseMetaPairs splits key=value flags. The value may contain '='.
func parseMetaPairs(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	meta := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --meta %q: want key=value", pair)
		}
		meta[key] = value
	}
	return meta, nil
}

func printEntityDetails(cmd *cobra.Command, e *types.Entity) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ID:         %s\n", e.ID)
	fmt.Fprintf(out, "Title:      %s\n", e.Title)
	fmt.Fprintf(out, "Type:       %s\n", orDash(e.SchemaType))
	fmt.Fprintf(out, "Permalink:  %s\n", orDash(e.Permalink))
	if e.ThumbnailURL != "" {
		fmt.Fprintf(out, "Thumbnail:  %s\n", e.ThumbnailURL)
	}
	if len(e.Categories) > 0 {
		fmt.Fprintf(out, "Categories: %s\n", strings.Join(e.Categories, ", "))
	}
	if e.Excerpt != "" {
		fmt.Fprintf(out, "Excerpt:    %s\n", e.Excerpt)
	}
	if len(e.Meta) > 0 {
		fmt.Fprintln(out, "Meta:")
		for _, key := range sortedKeys(e.Meta) {
			fmt.Fprintf(out, "  %s = %s\n", key, e.Meta[key])
		}
	}
	fmt.Fprintf(out, "Created:    %s\n", e.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "Updated:    %s\n", e.UpdatedAt.Format("2006-01-02 15:04:05"))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
