// Package avatar serves the profile picture cropped to a square box at the
// size the page asks for.
package avatar

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/image/draw"
)

const (
	MinSize = 16
	MaxSize = 1024

	jpegQuality = 85

	// CacheEntries bounds how many rendered avatars are kept in memory.
	CacheEntries = 16
	CacheTTL     = time.Hour
)

var (
	ErrNotFound         = errors.New("avatar not found")
	ErrInvalidSize      = errors.New("invalid avatar size")
	ErrInvalidReference = errors.New("invalid avatar reference")
)

// Image is an encoded avatar ready to be written to a response.
type Image struct {
	ContentType string
	Data        []byte
}

type cacheKey struct {
	ref  string
	size int
}

type cacheEntry struct {
	img     Image
	expires time.Time
}

// Resolver turns image references into square thumbnails. Local references
// are looked up under root; absolute http(s) references are passed through.
type Resolver struct {
	root   fs.FS
	logger *slog.Logger

	mu    sync.Mutex
	cache map[cacheKey]cacheEntry
	now   func() time.Time
}

func NewResolver(dir string, logger *slog.Logger) *Resolver {
	return NewResolverFS(os.DirFS(dir), logger)
}

func NewResolverFS(root fs.FS, logger *slog.Logger) *Resolver {
	return &Resolver{
		root:   root,
		logger: logger,
		cache:  make(map[cacheKey]cacheEntry),
		now:    time.Now,
	}
}

// URL returns the address the page should use for ref at the given box size.
func (r *Resolver) URL(ref string, size int) string {
	if isRemote(ref) {
		return ref
	}

	query := url.Values{}
	query.Set("src", ref)
	query.Set("s", strconv.Itoa(size))

	return "/avatar?" + query.Encode()
}

// Render loads ref, crops it to its centered square and scales it to size.
func (r *Resolver) Render(ref string, size int) (Image, error) {
	if size < MinSize || size > MaxSize {
		return Image{}, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	name, err := cleanReference(ref)
	if err != nil {
		return Image{}, err
	}

	key := cacheKey{ref: name, size: size}

	if cached, ok := r.lookup(key); ok {
		return cached, nil
	}

	src, format, err := r.decode(name)
	if err != nil {
		return Image{}, err
	}

	out, err := encode(Resize(CropSquare(src), size), format)
	if err != nil {
		return Image{}, fmt.Errorf("encode avatar %s: %w", name, err)
	}

	r.store(key, out)

	r.logger.Debug("avatar rendered", "src", name, "size", size, "bytes", len(out.Data))

	return out, nil
}

// lookup returns a cached render and lazily drops it once expired.
func (r *Resolver) lookup(key cacheKey) (Image, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.cache[key]
	if !ok {
		return Image{}, false
	}

	if r.now().After(entry.expires) {
		delete(r.cache, key)
		return Image{}, false
	}

	return entry.img, true
}

// store keeps at most CacheEntries renders, evicting expired entries first
// and then the one closest to expiry.
func (r *Resolver) store(key cacheKey, img Image) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if _, exists := r.cache[key]; !exists && len(r.cache) >= CacheEntries {
		var (
			oldest    cacheKey
			oldestExp time.Time
		)
		for k, e := range r.cache {
			if now.After(e.expires) {
				delete(r.cache, k)
				continue
			}
			if oldestExp.IsZero() || e.expires.Before(oldestExp) {
				oldest, oldestExp = k, e.expires
			}
		}
		if len(r.cache) >= CacheEntries {
			delete(r.cache, oldest)
		}
	}

	r.cache[key] = cacheEntry{img: img, expires: now.Add(CacheTTL)}
}

// Len reports how many renders are cached.
func (r *Resolver) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.cache)
}

func (r *Resolver) decode(name string) (image.Image, string, error) {
	f, err := r.root.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, "", fmt.Errorf("open avatar %s: %w", name, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("decode avatar %s: %w", name, err)
	}

	return img, format, nil
}

// CropSquare returns the largest centered square of src.
func CropSquare(src image.Image) image.Image {
	b := src.Bounds()
	side := min(b.Dx(), b.Dy())
	x0 := b.Min.X + (b.Dx()-side)/2
	y0 := b.Min.Y + (b.Dy()-side)/2

	dst := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(dst, dst.Bounds(), src, image.Pt(x0, y0), draw.Src)

	return dst
}

func Resize(src image.Image, size int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	return dst
}

func encode(img image.Image, format string) (Image, error) {
	var buf bytes.Buffer

	if format == "png" {
		if err := png.Encode(&buf, img); err != nil {
			return Image{}, err
		}
		return Image{ContentType: "image/png", Data: buf.Bytes()}, nil
	}

	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return Image{}, err
	}

	return Image{ContentType: "image/jpeg", Data: buf.Bytes()}, nil
}

func cleanReference(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" || isRemote(ref) || strings.Contains(ref, "\\") {
		return "", fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}

	name := strings.TrimPrefix(path.Clean("/"+ref), "/")
	if name == "" || !fs.ValidPath(name) || strings.HasPrefix(ref, "../") || strings.Contains(ref, "/../") {
		return "", fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}

	return name, nil
}

func isRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}
