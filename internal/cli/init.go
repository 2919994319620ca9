package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/vellum/internal/paths"
	"github.com/mesh-intelligence/vellum/internal/sqlite"
	"github.com/mesh-intelligence/vellum/pkg/store"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize vellum storage",
		Long:  "Create configuration and data directories, then initialize the storage backend.",
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return sysError(cmd, fmt.Sprintf("resolve config dir: %s", err))
	}
	if err := ensureConfigDir(configDir); err != nil {
		return sysError(cmd, fmt.Sprintf("create config directory: %s", err))
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return sysError(cmd, fmt.Sprintf("write config: %s", err))
	}

	cfg, err := loadConfig(configDir)
	if err != nil {
		return sysError(cmd, fmt.Sprintf("load config: %s", err))
	}
	dataDir, err := paths.ResolveDataDir(flags.dataDir, cfg.GetString(cfgKeyDataDir))
	if err != nil {
		return sysError(cmd, fmt.Sprintf("resolve data dir: %s", err))
	}

	// Initialize the data directory by opening and closing the store.
	s, err := sqlite.Open(store.Config{
		Backend: cfg.GetString(cfgKeyBackend),
		DataDir: dataDir,
	})
	if err != nil {
		return sysError(cmd, fmt.Sprintf("initialize storage: %s", err))
	}
	if err := s.Close(); err != nil {
		return sysError(cmd, fmt.Sprintf("finalize storage: %s", err))
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Vellum storage initialized successfully")
	return nil
}

// sysError prints the message to stderr and exits with the system error
// code.
func sysError(cmd *cobra.Command, msg string) error {
	fmt.Fprintln(cmd.ErrOrStderr(), msg)
	os.Exit(exitSysError)
	return nil // unreachable
}
