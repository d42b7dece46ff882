package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/config"
)

func (a *app) newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "analyze <colour>",
		Aliases: []string{"analyse"},
		Short:   "Report hue, brightness, luminance and contrast",
		Long: `Analyze a colour string and report its input format, hue in degrees,
HSL lightness and WCAG relative luminance as percentages, and the WCAG
contrast ratio against a reference colour (white unless --reference is set).

Invalid input is reported with isValid false rather than as an error.

Examples:
  swatch analyze '#336699'
  swatch analyze --reference black 'hsl(48, 90%, 60%)'`,
		Args: cobra.ExactArgs(1),
		RunE: a.runAnalyze,
	}
	cmd.Flags().StringP("reference", "r", "#ffffff", "colour to measure contrast against")
	return cmd
}

func (a *app) runAnalyze(cmd *cobra.Command, args []string) error {
	ref := a.cfg.ReferenceColour()
	res := colour.AnalyzeAgainst(args[0], ref)
	a.logger.Debug("analysed colour", "input", args[0], "valid", res.IsValid, "reference", ref.Hex())

	out := cmd.OutOrStdout()
	if a.cfg.Format == config.FormatJSON {
		return writeJSON(out, res)
	}

	if !res.IsValid {
		fmt.Fprintf(out, "%q is not a valid colour\n", args[0])
		return nil
	}

	sw := a.newSwatchRenderer(out)
	fmt.Fprintf(out, "%s  %s\n", sw.label(colour.MustParse(colour.Sanitize(args[0]))), args[0])

	table := NewTable([]string{"Metric", "Value"})
	table.AddRow([]string{"format", string(res.Format)})
	table.AddRow([]string{"hue", strconv.Itoa(res.Hue) + "°"})
	table.AddRow([]string{"brightness", strconv.Itoa(res.Brightness) + "%"})
	table.AddRow([]string{"luminance", strconv.Itoa(res.Luminance) + "%"})
	table.AddRow([]string{"contrast", fmt.Sprintf("%.2f:1 against %s", res.Contrast, ref.Hex())})
	fmt.Fprint(out, table.Render())
	return nil
}
