package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/bmtree/internal/config"
	"github.com/nikbrunner/bmtree/internal/exporter"
	"github.com/nikbrunner/bmtree/internal/importer"
	"github.com/nikbrunner/bmtree/internal/log"
	"github.com/nikbrunner/bmtree/internal/model"
	"github.com/nikbrunner/bmtree/internal/tui"
)

var version = "dev"

func init() {
	// Query the terminal background before bubbletea owns stdin so the
	// OSC 11 reply does not land in an input field.
	_ = lipgloss.HasDarkBackground()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// rootFlags are the persistent flags shared by all commands.
type rootFlags struct {
	configPath string
	debug      bool
	importPath string
	exportPath string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "bmtree",
		Short: "Hierarchical bookmark tree with drag-and-drop",
		Long: `bmtree - a terminal bookmark tree

Bookmarks nest under folders and under other bookmarks. Drag rows with the
mouse (or space, then enter/P) to reorder, drop them on the trash line to
delete, or on the form line to edit.`,
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(flags)
		},
	}

	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "",
		"config file (default: ~/.config/bmtree/config.yaml)")
	root.PersistentFlags().BoolVar(&flags.debug, "debug", false,
		"write a debug log to the configured log_path")
	root.Flags().StringVarP(&flags.importPath, "import", "i", "",
		"load bookmarks from a Netscape HTML file")
	root.Flags().StringVarP(&flags.exportPath, "export", "o", "",
		"write the tree to this HTML file on quit (E in the TUI also uses it)")

	root.AddCommand(newCheckCmd(flags), newExportCmd(flags))

	root.SetErrPrefix("bmtree:")
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w\n\n%s", err, cmd.UsageString())
	})
	return root
}

// setup loads the config and starts the debug log when requested.
// The returned cleanup function is never nil.
func setup(flags *rootFlags) (config.Config, func(), error) {
	cfg, path, err := config.Load(flags.configPath)
	if err != nil {
		return config.Config{}, func() {}, err
	}

	cleanup := func() {}
	if flags.debug {
		c, err := log.Init(cfg.LogPath)
		if err != nil {
			return config.Config{}, func() {}, err
		}
		cleanup = c
		log.Info(log.CatConfig, "Debug logging enabled", "config", path)
	}
	return cfg, cleanup, nil
}

// loadTree builds a tree, importing path when given.
func loadTree(cfg config.Config, path string) (*model.Tree, importer.Result, error) {
	tree := model.NewTree(model.WithDefaultColor(cfg.DefaultColor))
	if path == "" {
		return tree, importer.Result{}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, importer.Result{}, fmt.Errorf("opening import file: %w", err)
	}
	defer f.Close()

	res, err := importer.ParseHTMLBookmarks(f, tree, model.RootID)
	if err != nil {
		return nil, importer.Result{}, fmt.Errorf("importing %s: %w", path, err)
	}
	return tree, res, nil
}

// runTUI runs the full interactive TUI.
func runTUI(flags *rootFlags) error {
	cfg, cleanup, err := setup(flags)
	defer cleanup()
	if err != nil {
		return err
	}

	tree, res, err := loadTree(cfg, flags.importPath)
	if err != nil {
		return err
	}
	log.Info(log.CatImport, "Starting TUI", "imported", res.Total(), "folders", res.Folders, "bookmarks", res.Bookmarks)

	app := tui.NewApp(tui.AppParams{
		Tree:          tree,
		DebounceDelay: cfg.SearchDebounce,
		ExportPath:    flags.exportPath,
	})
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("running app: %w", err)
	}

	if flags.exportPath == "" {
		return nil
	}
	finalApp := finalModel.(tui.App)
	if err := exporter.WriteFile(finalApp.Tree(), flags.exportPath); err != nil {
		return err
	}
	fmt.Printf("Saved %d nodes to %s\n", finalApp.Tree().Len(), flags.exportPath)
	return nil
}
