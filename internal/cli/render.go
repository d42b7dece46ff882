package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/config"
)

func stdoutIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// swatchRenderer draws colour blocks for text output.
type swatchRenderer struct {
	enabled bool
	r       *lipgloss.Renderer
}

// newSwatchRenderer decides whether previews are drawn for w. Previews are
// never drawn for JSON output. "auto" draws only on a terminal; "always"
// forces true colour even when w is not one.
func (a *app) newSwatchRenderer(w io.Writer) *swatchRenderer {
	enabled := false
	if a.cfg.Format == config.FormatText {
		switch a.cfg.Preview {
		case config.PreviewAlways:
			enabled = true
		case config.PreviewAuto:
			enabled = stdoutIsTerminal(w)
		}
	}

	r := lipgloss.NewRenderer(w)
	if enabled && r.ColorProfile() == termenv.Ascii {
		r.SetColorProfile(termenv.TrueColor)
	}
	return &swatchRenderer{enabled: enabled, r: r}
}

// block renders a solid swatch of c, or "" when previews are off.
// Translucent colours are drawn opaque.
func (s *swatchRenderer) block(c colour.Color) string {
	if !s.enabled {
		return ""
	}
	return s.r.NewStyle().
		Background(lipgloss.Color(c.WithAlpha(1).Hex())).
		Render("      ")
}

// label renders hex on a background of c with readable text.
func (s *swatchRenderer) label(c colour.Color) string {
	if !s.enabled {
		return c.Hex()
	}
	fg := colour.Black
	if colour.ContrastRatio(c, colour.White) > colour.ContrastRatio(c, colour.Black) {
		fg = colour.White
	}
	return s.r.NewStyle().
		Background(lipgloss.Color(c.WithAlpha(1).Hex())).
		Foreground(lipgloss.Color(fg.Hex())).
		Padding(0, 1).
		Render(c.Hex())
}

// headers returns cols, prefixed with a swatch column when previews are on.
func (s *swatchRenderer) headers(cols ...string) []string {
	if !s.enabled {
		return cols
	}
	return append([]string{""}, cols...)
}

// row returns cells, prefixed with a block of c when previews are on.
func (s *swatchRenderer) row(c colour.Color, cells ...string) []string {
	if !s.enabled {
		return cells
	}
	return append([]string{s.block(c)}, cells...)
}
