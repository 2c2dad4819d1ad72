// Shared helpers for ldmark CLI commands.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mesh-intelligence/ldmark/internal/sqlite"
	"github.com/mesh-intelligence/ldmark/pkg/schema"
	"github.com/mesh-intelligence/ldmark/pkg/types"
)

// attachBackend resolves the data directory, creates a SQLite backend, and
// attaches it. The caller must defer backend.Detach().
func attachBackend() (*sqlite.Backend, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: dataDir,
		Sync:    cfg.Sync,
	}

	backend := sqlite.NewBackend(sqlite.WithLogger(log.Component("store").Zerolog()))
	if err := backend.Attach(config); err != nil {
		return nil, fmt.Errorf("attach backend: %w", err)
	}
	return backend, nil
}

// newRegistry returns the registry every command generates with.
func newRegistry() *schema.Registry {
	return schema.NewDefaultRegistry()
}

// writeJSON prints v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// lookupError marks not-found and validation failures as user errors and
// leaves everything else as a system error.
func lookupError(err error) error {
	switch {
	case errors.Is(err, types.ErrTypeNotFound),
		errors.Is(err, types.ErrEntityNotFound),
		errors.Is(err, types.ErrInvalidID),
		errors.Is(err, types.ErrInvalidEntity),
		errors.Is(err, types.ErrInvalidMetaKey),
		errors.Is(err, types.ErrNoSchema),
		errors.Is(err, types.ErrNotObject):
		return userError(err)
	}
	if _, ok := types.AsValidationError(err); ok {
		return userError(err)
	}
	return err
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// exactArgs is cobra.ExactArgs reporting a user error.
func exactArgs(n int) cobra.PositionalArgs {
	check := cobra.ExactArgs(n)
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return userError(err)
		}
		return nil
	}
}
