package battleground

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Resources maps logical asset names to files under a root directory.
type Resources struct {
	root string
}

// NewResources creates a resolver rooted at dir.
func NewResources(dir string) *Resources {
	return &Resources{root: dir}
}

// Root returns the resource directory.
func (r *Resources) Root() string {
	return r.root
}

// Path resolves name. A name that already points at a regular file is
// returned unchanged; anything else is joined onto the root.
func (r *Resources) Path(name string) string {
	if info, err := os.Stat(name); err == nil && info.Mode().IsRegular() {
		return name
	}
	return filepath.Join(r.root, filepath.FromSlash(name))
}

// ReadFile reads a resource.
func (r *Resources) ReadFile(name string) ([]byte, error) {
	data, err := os.ReadFile(r.Path(name))
	if err != nil {
		return nil, fmt.Errorf("read resource %s: %w", name, err)
	}
	return data, nil
}

// Image decodes a resource into an ebiten image.
func (r *Resources) Image(name string) (*ebiten.Image, error) {
	img, _, err := ebitenutil.NewImageFromFile(r.Path(name))
	if err != nil {
		return nil, fmt.Errorf("load image %s: %w", name, err)
	}
	return img, nil
}

// Loader is implemented by views that acquire assets once at construction.
type Loader interface {
	Load(res *Resources) error
}

// LoadView calls v's Load hook if it has one. Views without a hook need no
// loading and succeed.
func LoadView(v any, res *Resources) error {
	l, ok := v.(Loader)
	if !ok {
		return nil
	}
	if res == nil {
		res = NewResources(".")
	}
	if err := l.Load(res); err != nil {
		return fmt.Errorf("load %T: %w", v, err)
	}
	return nil
}
