package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"visitavigliano/internal/dates"
	"visitavigliano/internal/model"
	"visitavigliano/internal/site"
)

// OutputFormat specifies the output format of the events command.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

const maxTitleWidth = 40

var (
	flagEventsCategory string
	flagEventsFormat   string
)

func newEventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Fetch the events feed and list upcoming events",
		RunE:  runEvents,
	}
	cmd.Flags().StringVar(&flagEventsCategory, "categoria", "", "Only list events in this category")
	cmd.Flags().StringVar(&flagEventsFormat, "format", "text", "Output format: text or json")
	return cmd
}

func runEvents(cmd *cobra.Command, _ []string) error {
	format := OutputFormat(strings.ToLower(flagEventsFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagEventsFormat)
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p := newPipeline(cfg)
	if err := p.loader.LoadEvents(cmd.Context()); err != nil {
		return fmt.Errorf("loading events: %w", err)
	}
	view := site.NewView(p.state.Snapshot().Events, flagEventsCategory)
	return writeEvents(cmd.OutOrStdout(), view, p.dates, format)
}

func writeEvents(w io.Writer, view site.View, f *dates.Formatter, format OutputFormat) error {
	if format == FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}

	if len(view.Events) == 0 {
		_, err := fmt.Fprintln(w, "Nessun evento in questa categoria.")
		return err
	}
	for _, line := range eventsTable(view.Events, f) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\n%d eventi (categoria: %s)\n", len(view.Events), view.Category)
	return err
}

// eventsTable lays events out as a pipe table padded by display width, so
// accented and wide characters stay aligned.
func eventsTable(events []model.Event, f *dates.Formatter) []string {
	rows := [][]string{{"DATA", "ORA", "TITOLO", "CATEGORIA", "LUOGO"}}
	for _, e := range events {
		full, ok := f.Full(e.DateText)
		if !ok {
			full = e.DateText
		}
		rows = append(rows, []string{
			full,
			e.Time,
			runewidth.Truncate(e.Title, maxTitleWidth, "…"),
			e.Category,
			e.Location,
		})
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	lines := make([]string, 0, len(rows)+1)
	for r, row := range rows {
		var sb strings.Builder
		sb.WriteString("|")
		for i, cell := range row {
			sb.WriteString(" ")
			sb.WriteString(runewidth.FillRight(cell, widths[i]))
			sb.WriteString(" |")
		}
		lines = append(lines, sb.String())
		if r == 0 {
			var sep strings.Builder
			sep.WriteString("|")
			for _, width := range widths {
				sep.WriteString(" " + strings.Repeat("-", width) + " |")
			}
			lines = append(lines, sep.String())
		}
	}
	return lines
}
