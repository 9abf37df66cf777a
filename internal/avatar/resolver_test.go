package avatar

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodedImage(t *testing.T, w, h int, format string) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}

	var buf bytes.Buffer
	if format == "png" {
		require.NoError(t, png.Encode(&buf, img))
	} else {
		require.NoError(t, jpeg.Encode(&buf, img, nil))
	}

	return buf.Bytes()
}

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()

	root := fstest.MapFS{
		"me.png":         {Data: encodedImage(t, 300, 200, "png")},
		"nested/me.jpeg": {Data: encodedImage(t, 120, 240, "jpeg")},
		"broken.jpeg":    {Data: []byte("not an image")},
	}

	return NewResolverFS(root, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestURL(t *testing.T) {
	r := newTestResolver(t)

	assert.Equal(t, "/avatar?s=128&src=%2Fme.png", r.URL("/me.png", 128))
	assert.Equal(t, "https://cdn.example/me.png", r.URL("https://cdn.example/me.png", 128))
}

func TestRenderSquaresAndScales(t *testing.T) {
	r := newTestResolver(t)

	out, err := r.Render("/me.png", 64)
	require.NoError(t, err)
	assert.Equal(t, "image/png", out.ContentType)

	img, format, err := image.Decode(bytes.NewReader(out.Data))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 64, img.Bounds().Dy())

	out, err = r.Render("nested/me.jpeg", 32)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", out.ContentType)
}

func TestRenderCaches(t *testing.T) {
	r := newTestResolver(t)

	first, err := r.Render("/me.png", 48)
	require.NoError(t, err)

	second, err := r.Render("me.png", 48)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, r.cache, 1)
}

func TestRenderCacheIsBounded(t *testing.T) {
	r := newTestResolver(t)

	for size := MinSize; size < MinSize+CacheEntries+10; size++ {
		_, err := r.Render("/me.png", size)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(r.cache), CacheEntries)
	}

	assert.Len(t, r.cache, CacheEntries)
}

func TestRenderCacheExpires(t *testing.T) {
	r := newTestResolver(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	_, err := r.Render("/me.png", 48)
	require.NoError(t, err)

	_, ok := r.lookup(cacheKey{ref: "me.png", size: 48})
	assert.True(t, ok)

	now = now.Add(CacheTTL + time.Second)
	_, ok = r.lookup(cacheKey{ref: "me.png", size: 48})
	assert.False(t, ok)
	assert.Empty(t, r.cache)
}

func TestRenderErrors(t *testing.T) {
	r := newTestResolver(t)

	_, err := r.Render("/missing.png", 64)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = r.Render("/me.png", 4)
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = r.Render("/me.png", MaxSize+1)
	assert.ErrorIs(t, err, ErrInvalidSize)

	for _, ref := range []string{"", "../secret.png", "/a/../../secret.png", "https://cdn.example/x.png", ".."} {
		_, err = r.Render(ref, 64)
		assert.ErrorIs(t, err, ErrInvalidReference, ref)
	}

	_, err = r.Render("/broken.jpeg", 64)
	assert.Error(t, err)
}

func TestCropSquare(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 10, 110, 60))

	got := CropSquare(src)
	assert.Equal(t, image.Rect(0, 0, 50, 50), got.Bounds())
}
