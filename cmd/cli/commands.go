package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"mideck/adapters/excel"
	"mideck/domain/deck"
	"mideck/domain/demo"
	"mideck/internal/report"
)

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newPagesCmd(c *cli) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "pages",
		Short: "List the deck pages in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pages := c.container.Catalog.Pages()
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, pages)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tIDENTIFIER\tTITLE\tKIND")
			for _, p := range pages {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", p.Number(), p.Identifier, p.DisplayTitle, p.Kind)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

func newNavigateCmd(c *cli) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "navigate [page-id]",
		Short: "Show the previous and next pages for a page",
		Long: `Resolve a page identifier against the catalog.

Example: mideck-cli navigate 3_SAS_Implementation`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nav, err := c.container.Presentation.Navigate(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, nav)
			}

			fmt.Fprintf(out, "Current:  %s (%s)\n", nav.Current.Identifier, nav.Position())
			fmt.Fprintf(out, "Previous: %s\n", neighbour(nav.Previous))
			fmt.Fprintf(out, "Next:     %s\n", neighbour(nav.Next))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

func neighbour(p *deck.PageDescriptor) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%s (%s)", p.Identifier, p.DisplayTitle)
}

func addInputFlags(cmd *cobra.Command, in *demo.SimulationInputs) {
	*in = demo.DefaultInputs()
	cmd.Flags().IntVar(&in.SampleSize, "sample-size", in.SampleSize, "Conceptual sample size (100-1000)")
	cmd.Flags().IntVar(&in.MissingPercent, "missing-percent", in.MissingPercent, "Conceptual missing data % (0-50)")
	cmd.Flags().IntVar(&in.NumImputations, "imputations", in.NumImputations, "Number of imputations m (5-100)")
	cmd.Flags().IntVar(&in.ModelComplexity, "complexity", in.ModelComplexity, "Conceptual model complexity (1-10)")
}

func newSimulateCmd(c *cli) *cobra.Command {
	var in demo.SimulationInputs
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the conceptual simulation once",
		Long: `Compute the conceptual pooled estimate and 95% interval for one set of
slider positions. Inputs outside the slider ranges are rejected.

Example: mideck-cli simulate --imputations 100 --complexity 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sim := c.container.Simulation
			res, err := sim.Simulate(cmd.Context(), in)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, res)
			}

			fmt.Fprintf(out, "Conceptual Pooled Estimate: %s\n", res.EstimateLabel())
			fmt.Fprintf(out, "Conceptual 95%% Confidence Interval: %s\n", res.IntervalLabel())
			fmt.Fprintf(out, "(seed %d, %s, jitter %.4f)\n", sim.Seed(), sim.Policy(), res.Jitter)
			return nil
		},
	}

	addInputFlags(cmd, &in)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

func newSweepCmd(c *cli) *cobra.Command {
	var in demo.SimulationInputs
	var parameter string
	var xlsxPath string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Walk one slider over its range",
		Long: `Run the conceptual simulation at every step of one slider while the
others stay fixed, then summarise the estimates and half-widths.

Example: mideck-cli sweep --parameter num_imputations --xlsx sweep.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sw, err := c.container.Simulation.Sweep(cmd.Context(), in, demo.Parameter(parameter))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if xlsxPath != "" {
				if err := writeWorkbook(xlsxPath, sw); err != nil {
					return err
				}
				fmt.Fprintf(out, "wrote %d points to %s\n", len(sw.Points), xlsxPath)
			}
			if asJSON {
				return writeJSON(out, sw)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "%s\tESTIMATE\tINTERVAL\n", parameter)
			for _, p := range sw.Points {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", p.Value, p.Result.EstimateLabel(), p.Result.IntervalLabel())
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "mean estimate %.4f, half-width min %.4f / mean %.4f / max %.4f\n",
				sw.Summary.MeanEstimate, sw.Summary.MinHalfWidth, sw.Summary.MeanHalfWidth, sw.Summary.MaxHalfWidth)
			return nil
		},
	}

	addInputFlags(cmd, &in)
	cmd.Flags().StringVar(&parameter, "parameter", string(demo.ParamNumImputations), "Slider to vary: sample_size|missing_percent|num_imputations|model_complexity")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Also write the sweep to this Excel workbook")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

func writeWorkbook(path string, sw *demo.Sweep) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := excel.WriteSweep(f, sw); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func newEDFCmd() *cobra.Command {
	var setting string

	cmd := &cobra.Command{
		Use:   "edf",
		Short: "Compare the SAS EDF settings",
		Long: `Print the conceptual p-value and interval for the default (infinite)
and corrected complete-data degrees of freedom, with the 97.5% critical value.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := demo.EDFSettings()
			if setting != "" {
				settings = []demo.EDFSetting{demo.EDFSetting(setting)}
			}

			out := cmd.OutOrStdout()
			for _, s := range settings {
				sc, err := demo.ScenarioFor(s)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s\n", sc.Label)
				fmt.Fprintf(out, "  P-value (DF=%s):  %s (%s)\n", sc.DF, sc.PValue, sc.PNote)
				fmt.Fprintf(out, "  CI (DF=%s):       %s (%s)\n", sc.DF, sc.Interval, sc.CINote)
				fmt.Fprintf(out, "  critical value:   %.4f\n", sc.CriticalT)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&setting, "setting", "", "Only show one setting: default|corrected")
	return cmd
}

func newAccuracyCmd(c *cli) *cobra.Command {
	var metric string

	cmd := &cobra.Command{
		Use:   "accuracy",
		Short: "Print the conceptual R vs SAS imputation error by visit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			series, err := c.container.Simulation.Accuracy(cmd.Context(), demo.AccuracyMetric(metric))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "VISIT\tR\tSAS\n")
			for _, p := range series.Points {
				fmt.Fprintf(tw, "%d\t%.4f\t%.4f\n", p.Visit, p.R, p.SAS)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintln(out, series.Caption)
			return nil
		},
	}

	cmd.Flags().StringVar(&metric, "metric", string(demo.MetricMAE), "mae|mse")
	return cmd
}

func newOutlineCmd(c *cli) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "outline",
		Short: "Write a markdown handout of the deck",
		Long: `Write the deck title block, the page list, the default demo readout and
the EDF comparison as markdown.

Example: mideck-cli outline -o handout.md`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := buildOutline(cmd, c)
			if err != nil {
				return err
			}

			if output == "" {
				return report.NewOutlineWriter(cmd.OutOrStdout()).Write(o)
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			if err := report.NewOutlineWriter(f).Write(o); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")
	return cmd
}

func buildOutline(cmd *cobra.Command, c *cli) (report.Outline, error) {
	ct := c.container
	res, err := ct.Simulation.Simulate(cmd.Context(), demo.DefaultInputs())
	if err != nil {
		return report.Outline{}, err
	}

	o := report.Outline{
		Title:    ct.Manifest.Title,
		Subtitle: ct.Manifest.Subtitle,
		Author:   ct.Manifest.Author,
		Contact:  ct.Manifest.Contact,
		Pages:    ct.Catalog.Pages(),
		Demo:     res,
		Seed:     ct.Simulation.Seed(),
	}
	for _, s := range demo.EDFSettings() {
		sc, err := demo.ScenarioFor(s)
		if err != nil {
			return report.Outline{}, err
		}
		o.EDF = append(o.EDF, sc)
	}
	return o, nil
}
