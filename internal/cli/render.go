package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/strataviz/harris/pkg/layout"
	"github.com/strataviz/harris/pkg/render"
	"github.com/strataviz/harris/pkg/strata"
	"github.com/strataviz/harris/pkg/strata/transform"
)

// Output formats supported by the render command.
const (
	formatSVG = "svg"
	formatPNG = "png"
	formatPDF = "pdf"
	formatDOT = "dot"
)

// renderCommand creates the render command for producing diagram files.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formats    string
		title      string
		tierGuides bool
		scale      float64
		useDOT     bool
	)

	cmd := &cobra.Command{
		Use:   "render [layout.json]",
		Short: "Render a computed layout to SVG, PNG, or PDF",
		Long: `Render a computed layout to image files.

By default the input is a layout.json file (produced by 'layout') and the
renderer draws the engine's own geometry: unit boxes, orthogonal relation
paths, and crossing bridges.

With --dot the input is a matrix.json file instead; the reduced graph is
handed to Graphviz for a conventional node-link drawing, which is useful for
cross-checking the engine's tier assignment.

Multiple formats can be produced in one run: -f svg,png,pdf. PNG and PDF
conversion requires librsvg (rsvg-convert).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := renderOptions{
				output:     output,
				formats:    parseFormats(formats),
				title:      title,
				tierGuides: tierGuides,
				scale:      scale,
				useDOT:     useDOT,
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file base (default: input without extension)")
	cmd.Flags().StringVarP(&formats, "format", "f", formatSVG, "comma-separated formats: svg, png, pdf, dot")
	cmd.Flags().StringVar(&title, "title", "", "diagram title")
	cmd.Flags().BoolVar(&tierGuides, "tier-guides", false, "draw dashed depth tier guides")
	cmd.Flags().Float64Var(&scale, "scale", 2.0, "PNG scale factor")
	cmd.Flags().BoolVar(&useDOT, "dot", false, "input is a matrix.json; render via Graphviz")

	return cmd
}

type renderOptions struct {
	output     string
	formats    []string
	title      string
	tierGuides bool
	scale      float64
	useDOT     bool
}

// runRender produces one output file per requested format.
func (c *CLI) runRender(ctx context.Context, input string, opts renderOptions) error {
	base := opts.output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
		base = strings.TrimSuffix(base, ".layout")
	}

	svg, dot, err := c.renderSVG(input, opts)
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	written := make([]string, 0, len(opts.formats))
	for _, format := range opts.formats {
		path := base + "." + format

		var data []byte
		switch format {
		case formatSVG:
			data = svg
		case formatPNG:
			data, err = render.ToPNG(svg, opts.scale)
		case formatPDF:
			data, err = render.ToPDF(svg)
		case formatDOT:
			if dot == "" {
				return fmt.Errorf("dot output requires --dot mode")
			}
			data = []byte(dot)
		default:
			return fmt.Errorf("unknown format %q (want svg, png, pdf, or dot)", format)
		}
		if err != nil {
			return fmt.Errorf("render %s: %w", format, err)
		}

		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}

	printSuccess("Rendered %d file(s)", len(written))
	for _, path := range written {
		printFile(path)
	}
	return nil
}

// renderSVG produces the SVG bytes for the input, and the DOT source when
// running in --dot mode.
func (c *CLI) renderSVG(input string, opts renderOptions) ([]byte, string, error) {
	if opts.useDOT {
		m, err := strata.ReadMatrixFile(input)
		if err != nil {
			return nil, "", fmt.Errorf("load matrix %s: %w", input, err)
		}
		g := transform.Build(m.Units, m.Relations)
		transform.Reduce(g)
		ranks := transform.AssignRanks(g)

		dot := render.ToDOT(g, render.DOTOptions{Ranks: ranks})
		p := newProgress(c.Logger)
		svg, err := render.RenderDOT(dot)
		if err != nil {
			return nil, "", fmt.Errorf("graphviz render: %w", err)
		}
		p.done(fmt.Sprintf("Rendered %d units via Graphviz", g.UnitCount()))
		return svg, dot, nil
	}

	l, err := layout.ReadLayoutFile(input)
	if err != nil {
		return nil, "", fmt.Errorf("load layout %s: %w", input, err)
	}

	var svgOpts []render.SVGOption
	if opts.title != "" {
		svgOpts = append(svgOpts, render.WithTitle(opts.title))
	}
	if opts.tierGuides {
		svgOpts = append(svgOpts, render.WithTierGuides())
	}
	return render.RenderSVG(l, svgOpts...), "", nil
}
