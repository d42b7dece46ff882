package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/config"
)

// addHarmonyFlags registers the flags shared by palette-producing commands.
func addHarmonyFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("mode", "m", string(colour.DefaultMode), "harmony mode ("+modeList()+")")
	cmd.Flags().IntP("count", "n", colour.DefaultCount, "colours for analogous, monochrome and shades modes")
}

func modeList() string {
	names := make([]string, 0, len(colour.Modes()))
	for _, m := range colour.Modes() {
		names = append(names, string(m))
	}
	return strings.Join(names, ", ")
}

func (a *app) newPaletteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "palette [colour]",
		Short: "Generate a harmony palette from a base colour",
		Long: `Generate a palette from a base colour using a colour harmony mode, together
with a secondary palette one step lighter. Without a colour, or with one that
cannot be parsed, a random base colour is used.

Modes with a fixed number of colours (complementary, triadic, compound,
tetradic, square) ignore --count.

Examples:
  swatch palette '#336699'
  swatch palette --mode triadic tomato
  swatch palette --mode monochrome --count 9 --format json '#2a6f97'`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.runPalette,
	}
	addHarmonyFlags(cmd)
	return cmd
}

func (a *app) newRandomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "random",
		Short: "Generate a harmony palette from a random colour",
		Long: `Generate a palette from a randomly chosen base colour.

Examples:
  swatch random
  swatch random --mode square --preview`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res := a.gen.Random(a.cfg.HarmonyMode(), a.cfg.Count)
			return a.writeResult(cmd.OutOrStdout(), res)
		},
	}
	addHarmonyFlags(cmd)
	return cmd
}

func (a *app) runPalette(cmd *cobra.Command, args []string) error {
	input := ""
	if len(args) == 1 {
		input = args[0]
	}

	res := a.gen.Generate(colour.Request{
		Input: input,
		Mode:  a.cfg.HarmonyMode(),
		Count: a.cfg.Count,
	})
	if res.Randomised && input != "" {
		a.progress(cmd, "%q is not a valid colour; using random base %s", input, res.BaseHex)
	}
	return a.writeResult(cmd.OutOrStdout(), res)
}

// writeResult prints a generation result as JSON or as a table of primary
// and secondary colours.
func (a *app) writeResult(out io.Writer, res colour.Result) error {
	a.logger.Debug("writing result", "result", res.String(), "palette", res.Palette.ToHex())
	if a.cfg.Format == config.FormatJSON {
		data, err := res.ToJSON()
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		_, err = fmt.Fprintf(out, "%s\n", data)
		return err
	}

	sw := a.newSwatchRenderer(out)
	fmt.Fprintf(out, "%s palette from %s\n", res.Mode, sw.label(res.Base))

	table := NewTable(sw.headers("#", "Hex", "RGBA", "Secondary"))
	for i, e := range res.Palette.All() {
		secondary, err := res.Secondary.Get(i)
		if err != nil {
			return err
		}
		c := colour.MustParse(e.Hex)
		table.AddRow(sw.row(c, strconv.Itoa(i+1), e.Hex, e.RGBA, sw.label(colour.MustParse(secondary.Hex))))
	}
	fmt.Fprint(out, table.Render())
	return nil
}
