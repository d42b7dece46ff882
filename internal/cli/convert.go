package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/config"
)

// conversion is the JSON form of one converted input.
type conversion struct {
	Input string `json:"input"`
	colour.Formats
}

func (a *app) newConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <colour>...",
		Short: "Convert colours between notations",
		Long: `Convert one or more colours to hex, rgb, hsl, hwb, cmyk, lch and CSS keyword
notation. Inputs may be hex (#rgb, #rrggbb, with optional alpha), rgb()/rgba(),
hsl()/hsla() or a CSS keyword. A trailing ",suffix" such as "#ff0000,hex" is
ignored.

Examples:
  swatch convert '#336699'
  swatch convert 'rgb(255, 128, 0)' rebeccapurple
  swatch convert --format json 'hsl(210, 50%, 40%)'`,
		Args: cobra.MinimumNArgs(1),
		RunE: a.runConvert,
	}
}

func (a *app) runConvert(cmd *cobra.Command, args []string) error {
	results := make([]conversion, 0, len(args))
	for _, arg := range args {
		f := colour.Convert(arg)
		if f.IsEmpty() {
			return fmt.Errorf("cannot convert %q: %w", arg, colour.ErrInvalidColour)
		}
		results = append(results, conversion{Input: arg, Formats: f})
	}
	a.logger.Debug("converted colours", "count", len(results))

	out := cmd.OutOrStdout()
	if a.cfg.Format == config.FormatJSON {
		if len(results) == 1 {
			return writeJSON(out, results[0])
		}
		return writeJSON(out, results)
	}

	sw := a.newSwatchRenderer(out)
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(out)
		}
		c := colour.MustParse(r.Hex)
		fmt.Fprintf(out, "%s  %s\n", sw.label(c), r.Input)

		table := NewTable([]string{"Format", "Value"})
		table.AddRow([]string{"hex", r.Hex})
		table.AddRow([]string{"rgb", r.RGB})
		table.AddRow([]string{"hsl", r.HSL})
		table.AddRow([]string{"hwb", r.HWB})
		table.AddRow([]string{"cmyk", r.CMYK})
		table.AddRow([]string{"lch", r.LCH})
		if r.Keyword != "" {
			table.AddRow([]string{"keyword", r.Keyword})
		}
		fmt.Fprint(out, table.Render())
	}
	return nil
}
