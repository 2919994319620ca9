// Package cli implements the vellum command-line interface: a small
// administrative surface over the raw document store (the schema layer
// itself is a library concern).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/vellum/internal/paths"
	"github.com/mesh-intelligence/vellum/internal/sqlite"
	"github.com/mesh-intelligence/vellum/pkg/store"
)

// Exit codes.
const (
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
}

var flags rootFlags

// NewRootCmd creates the top-level "vellum" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "vellum",
		Short: "A document store with a schema layer",
		Long: "Vellum stores schemaless JSON documents in named collections\n" +
			"and validates them through application-defined schemas.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory (default: .vellum-db)")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newCollectionsCmd())
	root.AddCommand(newGetCmd())
	root.AddCommand(newPutCmd())
	root.AddCommand(newDeleteCmd())
	root.AddCommand(newFindCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newImportCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(exitUserError)
	}
}

// openStore resolves directories, loads config.yaml, and opens the
// SQLite store. The caller must defer Close.
func openStore() (*sqlite.Store, error) {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return nil, err
	}
	dataDir, err := paths.ResolveDataDir(flags.dataDir, cfg.GetString(cfgKeyDataDir))
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	s, err := sqlite.Open(store.Config{
		Backend: cfg.GetString(cfgKeyBackend),
		DataDir: dataDir,
	})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return s, nil
}
