package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/strataviz/harris/pkg/layout"
	"github.com/strataviz/harris/pkg/pipeline"
	"github.com/strataviz/harris/pkg/strata"
)

// layoutCommand creates the layout command for computing matrix layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output     string
		configPath string
		noCache    bool
		cfg        layout.Config
	)

	cmd := &cobra.Command{
		Use:   "layout [matrix.json]",
		Short: "Compute a Harris matrix layout from stratigraphic records",
		Long: `Compute a Harris matrix layout from stratigraphic records.

The layout command takes a matrix.json file with units and relations, derives
the stratigraphic graph (explicit relations, opening layers, layer sequence),
reduces it, assigns depth tiers, and plans node positions and orthogonal edge
routes. The output is a layout.json file that can be rendered to SVG/PNG/PDF
using the 'render' command.

Manual position, port, and control overrides are read from a harris.toml file
next to the input (or the file given with --config).

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], cfg, output, configPath, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().StringVar(&configPath, "config", "", "harris.toml config file (default: alongside input)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	// Geometry flags
	cmd.Flags().Float64Var(&cfg.Width, "width", 0, "canvas width")
	cmd.Flags().Float64Var(&cfg.Height, "height", 0, "canvas height")
	cmd.Flags().Float64Var(&cfg.RankSpacing, "rank-spacing", 0, "vertical distance between depth tiers")
	cmd.Flags().Float64Var(&cfg.ColumnSpacing, "column-spacing", 0, "horizontal column width for side placement")

	return cmd
}

// runLayout loads the matrix, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, cfg layout.Config, output, configPath string, noCache bool) error {
	m, err := strata.ReadMatrixFile(input)
	if err != nil {
		return fmt.Errorf("load matrix %s: %w", input, err)
	}

	fileCfg, err := c.loadConfigFor(input, configPath)
	if err != nil {
		return err
	}
	opts := pipeline.Options{
		Config:    mergeConfig(fileCfg.Layout, cfg),
		Overrides: fileCfg.Overrides,
		Validate:  true,
		Logger:    c.Logger,
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	result, err := runner.Compute(ctx, m, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	if err := layout.WriteLayoutFile(result.Layout, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(result.Stats.UnitCount, result.Stats.RelationCount, result.Stats.RankCount, result.CacheHit)
	printNewline()
	printNextStep("Render", "harris render "+outputPath)

	return nil
}

// loadConfigFor resolves the harris.toml for an input file. An explicit
// --config path must exist; the implicit sibling file is optional.
func (c *CLI) loadConfigFor(input, configPath string) (FileConfig, error) {
	explicit := configPath != ""
	if !explicit {
		configPath = filepath.Join(filepath.Dir(input), configFileName)
	}
	cfg, err := loadConfig(configPath, explicit)
	if err != nil {
		return FileConfig{}, fmt.Errorf("load config %s: %w", configPath, err)
	}
	return cfg, nil
}

// mergeConfig overlays non-zero flag values onto the file config.
func mergeConfig(file, flags layout.Config) layout.Config {
	merge := func(flag, base float64) float64 {
		if flag != 0 {
			return flag
		}
		return base
	}
	file.Width = merge(flags.Width, file.Width)
	file.Height = merge(flags.Height, file.Height)
	file.RankSpacing = merge(flags.RankSpacing, file.RankSpacing)
	file.ColumnSpacing = merge(flags.ColumnSpacing, file.ColumnSpacing)
	return file
}
