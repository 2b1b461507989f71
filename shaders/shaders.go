// Package shaders provides the fireball GLSL units and reloads them from disk
// while the program runs.
package shaders

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"

	"github.com/toxichemicals/GO/holy-fireball/render"
)

// File names looked up in a shader directory.
const (
	VertexFile   = "fireball-vert.glsl"
	FragmentFile = "fireball-frag.glsl"
)

var (
	//go:embed fireball-vert.glsl
	defaultVertex string
	//go:embed fireball-frag.glsl
	defaultFragment string
)

// Sources is a vertex and fragment source pair.
type Sources struct {
	Vertex   string
	Fragment string
}

// Default returns the built-in units.
func Default() Sources {
	return Sources{Vertex: defaultVertex, Fragment: defaultFragment}
}

// Load reads the units from dir. A unit missing from dir, or an empty dir,
// falls back to the built-in one.
func Load(dir string) (Sources, error) {
	src := Default()
	if dir == "" {
		return src, nil
	}
	var err error
	if src.Vertex, err = readOr(filepath.Join(dir, VertexFile), src.Vertex); err != nil {
		return Sources{}, err
	}
	if src.Fragment, err = readOr(filepath.Join(dir, FragmentFile), src.Fragment); err != nil {
		return Sources{}, err
	}
	return src, nil
}

func readOr(path, fallback string) (string, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		render.Logger().Debug("shader not found, using built-in", "path", path)
		return fallback, nil
	}
	if err != nil {
		return "", fmt.Errorf("read shader: %w", err)
	}
	return string(b), nil
}

// Build compiles and links src into a program.
func Build(ctx *render.Context, src Sources) (*render.Program, error) {
	return render.BuildProgram(ctx, src.Vertex, src.Fragment)
}

// Watcher reports edits to the units in a shader directory. Events are
// collected on a background goroutine; the render thread polls Changed.
type Watcher struct {
	fsw     *fsnotify.Watcher
	changed atomic.Bool
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

// Watch starts watching dir. The directory itself is watched so editors
// that replace files on save are still seen.
func Watch(dir string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch shaders: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch shaders: %w", err)
	}
	w := &Watcher{fsw: fsw, done: make(chan struct{})}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !isUnit(event.Name) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				render.Logger().Debug("shader changed", "path", event.Name, "op", event.Op.String())
				w.changed.Store(true)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			render.Logger().Warn("shader watcher", "error", err)
		}
	}
}

func isUnit(path string) bool {
	name := filepath.Base(path)
	return name == VertexFile || name == FragmentFile
}

// Changed reports whether a unit changed since the last call. It never
// blocks.
func (w *Watcher) Changed() bool {
	return w.changed.Swap(false)
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fsw.Close()
		w.wg.Wait()
	})
	return err
}
