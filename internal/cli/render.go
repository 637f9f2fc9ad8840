package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	appLog "visitavigliano/internal/log"
	"visitavigliano/internal/web"
)

var (
	flagRenderPage     string
	flagRenderOut      string
	flagRenderCategory string
	flagRenderDetail   string
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Fetch the feeds once and write a rendered page",
		Long: `render runs one load cycle and writes the bound page as static HTML,
to a file or to stdout.`,
		RunE: runRender,
	}
	cmd.Flags().StringVar(&flagRenderPage, "page", "home", "Page to render: home or eventi")
	cmd.Flags().StringVarP(&flagRenderOut, "out", "o", "-", "Output file, - for stdout")
	cmd.Flags().StringVar(&flagRenderCategory, "categoria", "", "Preselected event category")
	cmd.Flags().StringVar(&flagRenderDetail, "evento", "", "Open the detail overlay for this event or anchor ID")
	return cmd
}

func pageTemplate(name string) (string, error) {
	switch name {
	case "home", "index", web.PageHome:
		return web.PageHome, nil
	case "eventi", "events", web.PageEvents:
		return web.PageEvents, nil
	default:
		return "", fmt.Errorf("unknown page %q (must be home or eventi)", name)
	}
}

func runRender(cmd *cobra.Command, _ []string) error {
	name, err := pageTemplate(flagRenderPage)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p := newPipeline(cfg)
	if err := p.loader.Load(cmd.Context()); err != nil {
		appLog.Error("load incomplete; rendering what is available", err)
	}

	pages, err := web.NewPages(cfg.PagesDir)
	if err != nil {
		return err
	}
	renderer := web.NewRenderer(pages, p.dates, cfg.PlaceholderImage, cfg.MaxSliderEvents)
	doc, err := renderer.Render(name, p.state.Snapshot(), web.Interaction{
		Category: flagRenderCategory,
		DetailID: flagRenderDetail,
	})
	if err != nil {
		return fmt.Errorf("rendering %s: %w", name, err)
	}

	var w io.Writer = cmd.OutOrStdout()
	if flagRenderOut != "-" {
		f, err := os.Create(flagRenderOut)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer f.Close()
		w = f
	}
	if _, err := doc.WriteTo(w); err != nil {
		return err
	}
	appLog.Info("page rendered", "page", name, "out", flagRenderOut)
	return nil
}
