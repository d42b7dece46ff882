// Package image loads images from local files and HTTP(S) URLs for colour
// extraction.
package image

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"strings"

	_ "golang.org/x/image/bmp"  // Register BMP format
	_ "golang.org/x/image/tiff" // Register TIFF format
	_ "golang.org/x/image/webp" // Register WebP format

	"github.com/jmylchreest/swatch/internal/security"
	httputil "github.com/jmylchreest/swatch/internal/util/http"
	"github.com/jmylchreest/swatch/internal/util/imagecache"
)

// Loader handles loading images from various sources.
type Loader interface {
	// Load loads an image from the given path.
	Load(path string) (image.Image, error)
}

// LoadContext runs loader.Load in its own goroutine and returns early with
// ctx.Err() if the context ends first. A decode that finishes after
// cancellation is discarded.
func LoadContext(ctx context.Context, loader Loader, path string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type result struct {
		img image.Image
		err error
	}
	done := make(chan result, 1)
	go func() {
		img, err := loader.Load(path)
		done <- result{img: img, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.img, r.err
	}
}

// DefaultMaxPixels is the largest image, in pixels, that loaders decode.
const DefaultMaxPixels = 1 << 27

// ErrImageTooLarge is returned when an image header declares more pixels
// than the loader accepts.
var ErrImageTooLarge = errors.New("image too large")

// FileLoader loads images from the local filesystem.
type FileLoader struct {
	// MaxPixels rejects images whose header declares more pixels, before
	// any pixel data is decoded. Zero disables the check.
	MaxPixels int
}

// NewFileLoader creates a FileLoader limited to DefaultMaxPixels.
func NewFileLoader() *FileLoader {
	return &FileLoader{MaxPixels: DefaultMaxPixels}
}

func checkPixels(width, height, maxPixels int) error {
	if maxPixels <= 0 || width <= 0 || height <= 0 {
		return nil
	}
	if width > maxPixels/height {
		return fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrImageTooLarge, width, height, maxPixels)
	}
	return nil
}

// Load decodes an image file. Supported formats: JPEG, PNG, GIF, WebP, BMP
// and TIFF.
func (l *FileLoader) Load(path string) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("image path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to stat image file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	if l.MaxPixels > 0 {
		width, height, err := GetImageDimensions(path)
		if err != nil {
			return nil, err
		}
		if err := checkPixels(width, height, l.MaxPixels); err != nil {
			return nil, err
		}
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}
	return img, nil
}

// IsURL reports whether path is an HTTP(S) URL.
func IsURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// ValidateImagePath checks that path is a well-formed HTTP(S) URL, a
// directory, or a local file whose header decodes as a supported image
// format. URLs are not fetched.
func ValidateImagePath(path string) error {
	if path == "" {
		return fmt.Errorf("image path cannot be empty")
	}
	if IsURL(path) {
		return security.ValidateHTTPURL(path)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("image file or directory not found: %s", path)
		}
		return fmt.Errorf("failed to access image path: %w", err)
	}
	if info.IsDir() {
		return nil
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	if _, _, err := image.DecodeConfig(file); err != nil {
		return fmt.Errorf("unsupported or invalid image format: %w", err)
	}
	return nil
}

// SupportedImageExtensions returns a list of supported image file extensions.
func SupportedImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".tif", ".tiff"}
}

func isImageFile(path string) bool {
	return slices.Contains(SupportedImageExtensions(), strings.ToLower(filepath.Ext(path)))
}

// ScanDirectoryForImages returns the image files directly inside dirPath.
// Subdirectories are skipped; symlinks to files are followed.
func ScanDirectoryForImages(dirPath string) ([]string, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var imageFiles []string
	for _, entry := range entries {
		fullPath := filepath.Join(dirPath, entry.Name())

		// Broken symlinks and unreadable entries are skipped.
		info, err := os.Stat(fullPath)
		if err != nil || info.IsDir() {
			continue
		}
		if isImageFile(entry.Name()) {
			imageFiles = append(imageFiles, fullPath)
		}
	}

	if len(imageFiles) == 0 {
		return nil, fmt.Errorf("no supported image files found in directory: %s", dirPath)
	}
	return imageFiles, nil
}

// ResolveImagePath returns URLs and files unchanged and picks a random
// image when path is a directory.
func ResolveImagePath(path string) (string, error) {
	if IsURL(path) {
		return path, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to access path: %w", err)
	}
	if !info.IsDir() {
		return path, nil
	}

	imageFiles, err := ScanDirectoryForImages(path)
	if err != nil {
		return "", err
	}
	return imageFiles[rand.IntN(len(imageFiles))], nil
}

// GetImageDimensions returns the width and height of an image without fully loading it.
func GetImageDimensions(path string) (width, height int, err error) {
	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return 0, 0, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	config, _, err := image.DecodeConfig(file)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode image config: %w", err)
	}
	return config.Width, config.Height, nil
}

// SmartLoader loads images from both local files and HTTP(S) URLs.
type SmartLoader struct {
	fileLoader *FileLoader
	ctx        context.Context
	fetch      httputil.FetchOptions

	// CacheDir, when set, keeps downloaded images on disk and reuses them
	// on later loads of the same URL.
	CacheDir string
}

// NewSmartLoader creates a SmartLoader whose URL fetches are bound to ctx.
// A nil ctx means context.Background().
func NewSmartLoader(ctx context.Context) *SmartLoader {
	if ctx == nil {
		ctx = context.Background()
	}
	return &SmartLoader{
		fileLoader: NewFileLoader(),
		ctx:        ctx,
	}
}

// WithFetchOptions sets the options used for URL fetches.
func (l *SmartLoader) WithFetchOptions(opts httputil.FetchOptions) *SmartLoader {
	l.fetch = opts
	return l
}

// Load loads an image from either a local file path or HTTP(S) URL.
func (l *SmartLoader) Load(path string) (image.Image, error) {
	if !IsURL(path) {
		return l.fileLoader.Load(path)
	}

	if l.CacheDir != "" {
		cached, err := imagecache.DownloadAndCache(l.ctx, path, imagecache.CacheOptions{
			CacheDir: l.CacheDir,
			Fetch:    l.fetch,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch image from URL: %w", err)
		}
		return l.fileLoader.Load(cached)
	}

	data, err := httputil.Fetch(l.ctx, path, l.fetch)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image from URL: %w", err)
	}

	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		if err := checkPixels(cfg.Width, cfg.Height, l.fileLoader.MaxPixels); err != nil {
			return nil, err
		}
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}
	return img, nil
}
