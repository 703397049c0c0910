package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/go-theft-auto/grid"
)

// windowFlags position the viewport for the window command.
type windowFlags struct {
	width, height         float64
	scrollTop, scrollLeft float64
	sort                  string
	desc                  bool
	json                  bool
}

// windowReport is the JSON form of a computed window.
type windowReport struct {
	StartIndex      int        `json:"startIndex"`
	EndIndex        int        `json:"endIndex"`
	RowCount        int        `json:"rowCount"`
	OffsetY         float64    `json:"offsetY"`
	TotalHeight     float64    `json:"totalHeight"`
	ContainerHeight float64    `json:"containerHeight"`
	HeaderTransform string     `json:"headerTransform"`
	SortField       string     `json:"sortField,omitempty"`
	SortDirection   string     `json:"sortDirection,omitempty"`
	Columns         []string   `json:"columns"`
	Rows            [][]string `json:"rows"`
}

func newWindowCommand(src *sourceFlags) *cobra.Command {
	var wf windowFlags
	cmd := &cobra.Command{
		Use:   "window",
		Short: "Print the rows rendered at a scroll position",
		Long: `Compute the render window for a viewport and scroll position without
drawing anything, and print it with the formatted cells of every rendered row.`,
		Example: "  gridview window --scroll-top 4000 --height 600\n  gridview window --sort salary --desc --json",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(src)
			if err != nil {
				return err
			}
			return errors.Join(printWindow(cmd.OutOrStdout(), s.cfg, wf), s.Close())
		},
	}
	flags := cmd.Flags()
	flags.Float64Var(&wf.width, "width", 1200, "container client width in pixels")
	flags.Float64Var(&wf.height, "height", 600, "container client height in pixels, header included")
	flags.Float64Var(&wf.scrollTop, "scroll-top", 0, "body scrollTop in pixels")
	flags.Float64Var(&wf.scrollLeft, "scroll-left", 0, "body scrollLeft in pixels")
	flags.StringVar(&wf.sort, "sort", "", "sort by this column field first")
	flags.BoolVar(&wf.desc, "desc", false, "sort descending")
	flags.BoolVar(&wf.json, "json", false, "print JSON")
	return cmd
}

func printWindow(out io.Writer, cfg grid.Config, wf windowFlags) error {
	cfg.ContainerClientWidth = wf.width
	cfg.ContainerClientHeight = wf.height
	cfg.Renderer = grid.RendererFunc(func(grid.Snapshot) {})
	cfg.Host = nil
	cfg.HostSupportsEvents = false
	cfg.Scheduler = nil

	g, err := grid.Init(cfg)
	if err != nil {
		return err
	}
	defer g.Teardown()

	if wf.sort != "" {
		if _, ok := g.Sort(wf.sort); !ok {
			return fmt.Errorf("column %q does not exist or is not sortable", wf.sort)
		}
		if wf.desc {
			g.Sort(wf.sort)
		}
	}
	g.OnBodyScroll(wf.scrollTop, wf.scrollLeft)

	r := report(g)
	if wf.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
	return writeText(out, r)
}

func report(g *grid.Grid) windowReport {
	snap := g.Snapshot()
	cols := g.VisibleColumns()
	r := windowReport{
		StartIndex:      snap.Window.StartIndex,
		EndIndex:        snap.Window.EndIndex,
		RowCount:        len(g.Rows()),
		OffsetY:         snap.Window.OffsetY,
		TotalHeight:     snap.Window.TotalHeight,
		ContainerHeight: snap.Window.ContainerHeight,
		HeaderTransform: snap.Header.Transform(),
		Columns:         make([]string, len(cols)),
		Rows:            make([][]string, 0, len(snap.Window.Rows)),
	}
	if snap.Sort.Active() {
		r.SortField = snap.Sort.Field
		r.SortDirection = snap.Sort.Direction.String()
	}
	for i, c := range cols {
		r.Columns[i] = c.Header
	}
	for _, row := range snap.Window.Rows {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = g.CellValue(row, c)
		}
		r.Rows = append(r.Rows, cells)
	}
	return r
}

func writeText(out io.Writer, r windowReport) error {
	var b strings.Builder
	if r.EndIndex < r.StartIndex {
		fmt.Fprintf(&b, "window empty of %d rows\n", r.RowCount)
	} else {
		fmt.Fprintf(&b, "window %d-%d of %d rows\n", r.StartIndex, r.EndIndex, r.RowCount)
	}
	fmt.Fprintf(&b, "offsetY %vpx, total %vpx, viewport %vpx\n", r.OffsetY, r.TotalHeight, r.ContainerHeight)
	fmt.Fprintf(&b, "header %s\n", r.HeaderTransform)
	if r.SortField != "" {
		fmt.Fprintf(&b, "sort %s %s\n", r.SortField, r.SortDirection)
	}
	b.WriteString("#\t" + strings.Join(r.Columns, "\t") + "\n")
	for i, cells := range r.Rows {
		b.WriteString(strconv.Itoa(r.StartIndex+i) + "\t" + strings.Join(cells, "\t") + "\n")
	}
	_, err := io.WriteString(out, b.String())
	return err
}
