package arbor

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"path"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Loader resolves a resource path to a Drawable. Failures wrap
// ErrResourceNotFound or ErrResourceInvalid. The caller owns the returned
// drawable.
type Loader interface {
	Load(path string) (Drawable, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(path string) (Drawable, error)

// Load calls f(path).
func (f LoaderFunc) Load(path string) (Drawable, error) {
	return f(path)
}

// FileLoader loads images from a file system into Textures. PNG, JPEG,
// GIF, BMP, TIFF and WebP are supported.
type FileLoader struct {
	fsys fs.FS
}

// NewFileLoader creates a loader reading from fsys (for example
// os.DirFS("assets") or an embed.FS).
func NewFileLoader(fsys fs.FS) *FileLoader {
	return &FileLoader{fsys: fsys}
}

// Load decodes the image at p and uploads it as a centered Texture.
func (l *FileLoader) Load(p string) (Drawable, error) {
	img, err := l.Decode(p)
	if err != nil {
		return nil, err
	}
	return NewTexture(ebiten.NewImageFromImage(img)), nil
}

// Decode opens and decodes the image at p without uploading it.
func (l *FileLoader) Decode(p string) (image.Image, error) {
	name := cleanPath(p)
	if !fs.ValidPath(name) {
		return nil, errors.Wrapf(ErrResourceNotFound, "load %q: invalid path", p)
	}
	f, err := l.fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(ErrResourceNotFound, "load %q", p)
		}
		return nil, errors.Wrapf(err, "load %q", p)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(ErrResourceInvalid, "decode %q: %v", p, err)
	}
	return img, nil
}

// cleanPath turns "./textures/tank.png" style paths into fs.FS names.
func cleanPath(p string) string {
	p = path.Clean(strings.ReplaceAll(p, "\\", "/"))
	return strings.TrimPrefix(p, "./")
}
