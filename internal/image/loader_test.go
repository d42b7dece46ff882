package image

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httputil "github.com/jmylchreest/swatch/internal/util/http"
)

// hugeGIF is a bare GIF header declaring a 65535x65535 screen.
var hugeGIF = []byte{'G', 'I', 'F', '8', '9', 'a', 0xff, 0xff, 0xff, 0xff, 0, 0, 0}

func writePNG(t *testing.T, dir, name string, c color.NRGBA) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	for y := range 3 {
		for x := range 4 {
			img.SetNRGBA(x, y, c)
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func TestFileLoader(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "red.png", color.NRGBA{R: 255, A: 255})

	img, err := NewFileLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 3), img.Bounds())

	r, g, b, a := img.At(1, 1).RGBA()
	assert.Equal(t, [4]uint32{0xffff, 0, 0, 0xffff}, [4]uint32{r, g, b, a})

	w, h, err := GetImageDimensions(path)
	require.NoError(t, err)
	assert.Equal(t, 4, w)
	assert.Equal(t, 3, h)
}

func TestFileLoaderErrors(t *testing.T) {
	dir := t.TempDir()
	notImage := filepath.Join(dir, "notes.png")
	require.NoError(t, os.WriteFile(notImage, []byte("not an image"), 0o600))

	tests := []struct {
		name string
		path string
	}{
		{name: "empty", path: ""},
		{name: "missing", path: filepath.Join(dir, "missing.png")},
		{name: "directory", path: dir},
		{name: "undecodable", path: notImage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFileLoader().Load(tt.path)
			assert.Error(t, err)
		})
	}
}

func TestFileLoaderRejectsOversizedImages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "huge.gif")
	require.NoError(t, os.WriteFile(path, hugeGIF, 0o600))

	w, h, err := GetImageDimensions(path)
	require.NoError(t, err)
	assert.Equal(t, 65535, w)
	assert.Equal(t, 65535, h)

	_, err = NewFileLoader().Load(path)
	assert.ErrorIs(t, err, ErrImageTooLarge)

	small := writePNG(t, t.TempDir(), "small.png", color.NRGBA{B: 255, A: 255})
	_, err = (&FileLoader{MaxPixels: 11}).Load(small)
	assert.ErrorIs(t, err, ErrImageTooLarge)
	_, err = (&FileLoader{MaxPixels: 12}).Load(small)
	assert.NoError(t, err)
}

func TestValidateImagePath(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "ok.png", color.NRGBA{B: 255, A: 255})
	bad := filepath.Join(dir, "bad.jpg")
	require.NoError(t, os.WriteFile(bad, []byte("nope"), 0o600))

	assert.NoError(t, ValidateImagePath(path))
	assert.NoError(t, ValidateImagePath(dir))
	assert.NoError(t, ValidateImagePath("https://example.com/a.png"))
	assert.Error(t, ValidateImagePath("https:///a.png"))
	assert.Error(t, ValidateImagePath(""))
	assert.Error(t, ValidateImagePath(bad))
	assert.Error(t, ValidateImagePath(filepath.Join(dir, "missing.png")))
}

func TestResolveImagePath(t *testing.T) {
	dir := t.TempDir()
	want := writePNG(t, dir, "only.png", color.NRGBA{G: 255, A: 255})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("x"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.png"), 0o755))

	got, err := ResolveImagePath(dir)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = ResolveImagePath(want)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = ResolveImagePath(t.TempDir())
	assert.Error(t, err)
}

func TestSmartLoaderURL(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "served.png", color.NRGBA{R: 255, G: 255, A: 255})
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/img.png" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	loader := NewSmartLoader(context.Background())
	img, err := loader.Load(srv.URL + "/img.png")
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())

	_, err = loader.Load(srv.URL + "/missing.png")
	assert.Error(t, err)

	cached := NewSmartLoader(context.Background())
	cached.CacheDir = t.TempDir()
	before := hits.Load()
	for range 2 {
		_, err := cached.Load(srv.URL + "/img.png")
		require.NoError(t, err)
	}
	assert.Equal(t, before+1, hits.Load(), "cached loader should fetch once")
}

func TestSmartLoaderFetchOptions(t *testing.T) {
	path := writePNG(t, t.TempDir(), "served.png", color.NRGBA{G: 255, A: 255})
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var gotHeader atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader.Store(r.Header.Get("X-Swatch-Test"))
		switch r.URL.Path {
		case "/huge.gif":
			_, _ = w.Write(hugeGIF)
		default:
			_, _ = w.Write(data)
		}
	}))
	defer srv.Close()

	loader := NewSmartLoader(context.Background()).WithFetchOptions(httputil.FetchOptions{
		Headers: map[string]string{"X-Swatch-Test": "yes"},
	})
	_, err = loader.Load(srv.URL + "/img.png")
	require.NoError(t, err)
	assert.Equal(t, "yes", gotHeader.Load())

	_, err = loader.Load(srv.URL + "/huge.gif")
	assert.ErrorIs(t, err, ErrImageTooLarge)

	limited := NewSmartLoader(context.Background()).WithFetchOptions(httputil.FetchOptions{MaxBytes: 8})
	_, err = limited.Load(srv.URL + "/img.png")
	assert.Error(t, err)
}

type blockingLoader struct {
	release chan struct{}
}

func (b blockingLoader) Load(string) (image.Image, error) {
	<-b.release
	return image.NewNRGBA(image.Rect(0, 0, 1, 1)), nil
}

func TestLoadContextCancelled(t *testing.T) {
	loader := blockingLoader{release: make(chan struct{})}
	defer close(loader.release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	img, err := LoadContext(ctx, loader, "anything")
	assert.Nil(t, img)
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "err = %v", err)

	done, cancelDone := context.WithCancel(context.Background())
	cancelDone()
	_, err = LoadContext(done, NewFileLoader(), "anything")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadContextCompletes(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "ok.png", color.NRGBA{R: 1, G: 2, B: 3, A: 255})

	img, err := LoadContext(context.Background(), NewFileLoader(), path)
	require.NoError(t, err)
	assert.NotNil(t, img)
}
