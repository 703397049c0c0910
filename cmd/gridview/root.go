package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-theft-auto/grid"
	"github.com/go-theft-auto/grid/config"
	"github.com/go-theft-auto/grid/internal/sample"
)

// sourceFlags select the data every subcommand shows.
type sourceFlags struct {
	rows    int
	seed    uint64
	columns string
	verbose bool
}

func newRootCommand() *cobra.Command {
	var src sourceFlags
	root := &cobra.Command{
		Use:           "gridview",
		Short:         "Virtualized data grid viewer",
		Long:          "Show a large generated table with frozen columns, sorting and resizable columns.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := root.PersistentFlags()
	flags.IntVarP(&src.rows, "rows", "n", sample.DefaultRowCount, "number of generated rows")
	flags.Uint64Var(&src.seed, "seed", 1, "seed for the generated rows")
	flags.StringVarP(&src.columns, "columns", "c", "", "YAML column definitions (default: GRID_COLUMNS_FILE or the built-in set)")
	flags.BoolVarP(&src.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		newRunCommand(&src),
		newWindowCommand(&src),
		newGLCommand(&src),
	)
	return root
}

// session is a grid config assembled from settings and flags, plus the
// width store it opened.
type session struct {
	cfg   grid.Config
	store config.Store
}

func (s *session) Close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}

func openSession(src *sourceFlags) (*session, error) {
	settings, err := config.Load()
	if err != nil {
		return nil, err
	}
	grid.SetVerbose(src.verbose || settings.Verbose)

	if src.rows < 0 {
		return nil, fmt.Errorf("--rows must not be negative, got %d", src.rows)
	}

	cfg := grid.DefaultConfig()
	settings.Apply(&cfg)

	path := src.columns
	if path == "" {
		path = settings.ColumnsFile
	}
	if path != "" {
		cols, err := config.LoadColumns(path)
		if err != nil {
			return nil, err
		}
		cfg.Columns = cols
	} else {
		cfg.Columns = sample.Columns()
	}
	cfg.Rows = sample.Rows(src.rows, src.seed)

	store, err := config.OpenStore(settings)
	if err != nil {
		return nil, fmt.Errorf("open width store: %w", err)
	}
	cfg.Store = store
	return &session{cfg: cfg, store: store}, nil
}
