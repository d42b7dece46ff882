package cli

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/config"
	"github.com/jmylchreest/swatch/internal/image"
	"github.com/jmylchreest/swatch/internal/security"
	httputil "github.com/jmylchreest/swatch/internal/util/http"
	"github.com/jmylchreest/swatch/internal/util/imagecache"
)

// extraction is the JSON form of an extract run.
type extraction struct {
	Image     string          `json:"image"`
	Algorithm string          `json:"algorithm"`
	Width     int             `json:"width"`
	Height    int             `json:"height"`
	Swatches  []colour.Swatch `json:"swatches"`
	Palette   *colour.Result  `json:"palette,omitempty"`
}

func (a *app) newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <image>",
		Short: "Extract the dominant colours of an image",
		Long: `Extract the most frequent colours of an image, most frequent first.

The dominant algorithm counts exact RGB values and breaks ties by the order
colours first appear in the image. The kmeans algorithm clusters similar
colours first, which suits photographs with gradients. Alpha is ignored.

The image may be a local file, a directory (a random image in it is used)
or an HTTP(S) URL. Supported formats: JPEG, PNG, GIF, WebP, BMP, TIFF.

Examples:
  # Top 8 colours of a wallpaper
  swatch extract wallpaper.png

  # Sample every 4th pixel of a large photo with k-means
  swatch extract --algorithm kmeans --stride 4 photo.jpg

  # Build a triadic palette from the most frequent colour
  swatch extract --palette triadic wallpaper.png`,
		Args: cobra.ExactArgs(1),
		RunE: a.runExtract,
	}

	flags := cmd.Flags()
	flags.StringP("algorithm", "a", string(colour.AlgorithmDominant), "extraction algorithm (dominant, kmeans)")
	flags.IntP("colours", "c", colour.DefaultMaxColours, "maximum number of colours to return (1-256)")
	flags.Int("stride", 1, "sample every Nth pixel along each axis")
	flags.Bool("cache", false, "cache downloaded images in the user cache directory")
	flags.Duration("timeout", 30*time.Second, "give up loading the image after this long (0 for no limit)")
	flags.String("palette", "", "generate a harmony palette in this mode from the top colour")
	flags.IntP("count", "n", colour.DefaultCount, "palette colours for analogous, monochrome and shades modes")
	return cmd
}

func (a *app) runExtract(cmd *cobra.Command, args []string) error {
	var paletteMode colour.Mode
	if raw, _ := cmd.Flags().GetString("palette"); raw != "" {
		mode, err := colour.ParseMode(raw)
		if err != nil {
			return err
		}
		paletteMode = mode
	}

	extractor, err := a.cfg.ExtractorConfig().Build()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	path, err := image.ResolveImagePath(args[0])
	if err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}
	if err := image.ValidateImagePath(path); err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}
	if u, err := url.Parse(path); err == nil && image.IsURL(path) && security.IsLocalOrPrivateHost(u.Hostname()) {
		a.logger.Warn("fetching image from a local or private address", "host", u.Hostname())
	}

	ctx := cmd.Context()
	if a.cfg.Extract.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Extract.Timeout)
		defer cancel()
	}

	loader := image.NewSmartLoader(ctx).WithFetchOptions(httputil.FetchOptions{
		Timeout: a.cfg.Extract.Timeout,
	})
	if a.cfg.Extract.Cache && image.IsURL(path) {
		dir, err := imagecache.DefaultCacheDir()
		if err != nil {
			return err
		}
		loader.CacheDir = dir
	}

	a.logger.Debug("loading image", "path", path)
	img, err := image.LoadContext(ctx, loader, path)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	bounds := img.Bounds()
	a.logger.Debug("image loaded", "width", bounds.Dx(), "height", bounds.Dy())

	swatches, err := extractor.Extract(img, a.cfg.Extract.MaxColours)
	if err != nil {
		return fmt.Errorf("failed to extract colours: %w", err)
	}
	a.logger.Debug("extracted colours", "algorithm", a.cfg.Extract.Algorithm, "count", len(swatches))

	result := extraction{
		Image:     path,
		Algorithm: a.cfg.Extract.Algorithm,
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
		Swatches:  swatches,
	}
	if paletteMode != "" && len(swatches) > 0 {
		res := a.gen.GenerateFrom(swatches[0].Color, paletteMode, a.cfg.Count)
		result.Palette = &res
	}

	out := cmd.OutOrStdout()
	if a.cfg.Format == config.FormatJSON {
		return writeJSON(out, result)
	}

	if len(swatches) == 0 {
		fmt.Fprintln(out, "no colours found")
		return nil
	}

	sw := a.newSwatchRenderer(out)
	table := NewTable(sw.headers("#", "Hex", "Pixels", "Share"))
	for i, s := range swatches {
		table.AddRow(sw.row(s.Color,
			strconv.Itoa(i+1),
			s.Hex,
			strconv.Itoa(s.Count),
			strconv.FormatFloat(s.Weight*100, 'f', 1, 64)+"%",
		))
	}
	fmt.Fprint(out, table.Render())

	if result.Palette != nil {
		fmt.Fprintln(out)
		return a.writeResult(out, *result.Palette)
	}
	return nil
}
