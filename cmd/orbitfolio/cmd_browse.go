package main

import (
	"fmt"
	"os"

	"orbitfolio/cmd/orbitfolio/browse"
	"orbitfolio/internal/audio"
	"orbitfolio/internal/catalog"
	"orbitfolio/internal/config"
	"orbitfolio/internal/logging"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// browseCmd runs the interactive orbital browser
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the catalog as an orbital scene",
	Long: `Starts the interactive browser. Records come from the workspace catalog
database and, when configured, a YAML seed file which is watched for edits.

When a project is opened its route (/projects/<id>) is printed on exit.`,
	RunE: runBrowse,
}

// catalogSources is the catalog a browse session reads.
type catalogSources struct {
	source   catalog.Source
	seedPath string
	store    *catalog.SQLiteStore
}

func (c catalogSources) Close() {
	if c.store != nil {
		if err := c.store.Close(); err != nil {
			logging.CatalogWarn("failed to close catalog store: %v", err)
		}
	}
}

// openSources combines the database with the optional seed file. The
// database comes first so its records win on duplicate ids.
func openSources(ws string, cfg *config.Config) (catalogSources, error) {
	store, err := catalog.OpenSQLiteStore(resolvePath(ws, cfg.Catalog.DatabasePath))
	if err != nil {
		return catalogSources{}, fmt.Errorf("failed to open catalog: %w", err)
	}
	cs := catalogSources{source: store, store: store}
	if cfg.Catalog.SeedFile != "" {
		cs.seedPath = resolvePath(ws, cfg.Catalog.SeedFile)
		cs.source = catalog.Multi{store, catalog.NewFileSource(cs.seedPath)}
	}
	return cs, nil
}

func runBrowse(cmd *cobra.Command, args []string) error {
	ws := resolveWorkspace()
	cfg, err := loadConfig(ws)
	if err != nil {
		return err
	}

	if err := logging.Initialize(ws, cfg.Logging.Options()); err != nil {
		fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
	}
	defer logging.CloseAll()

	sources, err := openSources(ws, cfg)
	if err != nil {
		return err
	}
	defer sources.Close()

	opts := browse.Options{Config: cfg, Source: sources.source}
	if cfg.Catalog.Watch && sources.seedPath != "" {
		opts.WatchPath = sources.seedPath
	}
	if cfg.Audio.Enabled {
		opts.Sink = audio.NewBellSink(os.Stderr)
	}

	model := browse.New(opts)
	defer model.Shutdown()

	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.Mouse {
		programOpts = append(programOpts, tea.WithMouseAllMotion())
	}
	p := tea.NewProgram(model, programOpts...)

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("browser failed: %w", err)
	}
	if m, ok := final.(browse.Model); ok {
		if res := m.Result(); res.Route != "" {
			logging.UI("navigated to %s", res.Route)
			fmt.Fprintln(cmd.OutOrStdout(), res.Route)
		}
	}
	return nil
}
