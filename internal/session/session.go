package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"imagepdf/internal/conversion"
	"imagepdf/internal/imaging"
)

const maxProbeWorkers = 8

var (
	ErrItemNotFound    = errors.New("image not found in session")
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Item is one image selected for conversion.
type Item struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Path   string `json:"path,omitempty"`
	Size   int64  `json:"size"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`

	data []byte
}

// Rejection is a file that was not added, with the reason.
type Rejection struct {
	Name  string `json:"name"`
	Path  string `json:"path,omitempty"`
	Error string `json:"error"`
}

// Session is the ordered image list behind the UI. Order is page order.
type Session struct {
	mu     sync.Mutex
	items  []Item
	logger *slog.Logger
}

// New creates an empty session
func New(logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{logger: logger}
}

// AddFiles probes paths concurrently and appends the images among them in
// the order given. Non-images and unreadable files are reported as
// rejections; the returned error is only set when probing could not run.
func (s *Session) AddFiles(ctx context.Context, paths []string) ([]Item, []Rejection, error) {
	if len(paths) == 0 {
		return nil, nil, nil
	}

	pool, err := ants.NewPool(min(runtime.NumCPU(), maxProbeWorkers))
	if err != nil {
		return nil, nil, fmt.Errorf("create probe pool: %w", err)
	}
	defer pool.Release()

	type probe struct {
		item Item
		err  error
	}
	probes := make([]probe, len(paths))

	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)

		index := i
		file := path

		err := pool.Submit(func() {
			defer wg.Done()

			if err := ctx.Err(); err != nil {
				probes[index].err = err
				return
			}
			item, err := probeFile(file)
			probes[index] = probe{item: item, err: err}
		})
		if err != nil {
			wg.Done()
			probes[i].err = err
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	var added []Item
	var rejected []Rejection
	for i, p := range probes {
		if p.err != nil {
			s.logger.Warn("Skipping file", "path", paths[i], "error", p.err)
			rejected = append(rejected, Rejection{
				Name:  filepath.Base(paths[i]),
				Path:  paths[i],
				Error: p.err.Error(),
			})
			continue
		}
		added = append(added, p.item)
	}

	s.mu.Lock()
	s.items = append(s.items, added...)
	s.mu.Unlock()

	s.logger.Info("Added files", "added", len(added), "rejected", len(rejected))
	return added, rejected, nil
}

// AddData appends an image whose bytes came from the frontend.
func (s *Session) AddData(name string, raw []byte) (Item, error) {
	info, err := imaging.Probe(bytes.NewReader(raw))
	if err != nil {
		return Item{}, fmt.Errorf("%s: %w", name, err)
	}

	item := Item{
		ID:     uuid.New().String(),
		Name:   name,
		Size:   int64(len(raw)),
		Width:  info.Width,
		Height: info.Height,
		Format: info.Format,
		data:   raw,
	}

	s.mu.Lock()
	s.items = append(s.items, item)
	s.mu.Unlock()

	return item, nil
}

// Remove drops the item with the given id.
func (s *Session) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range s.items {
		if item.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrItemNotFound, id)
}

// Move relocates the item at from so that it ends up at index to.
func (s *Session) Move(from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.items)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("%w: move %d to %d with %d images", ErrIndexOutOfRange, from, to, n)
	}
	if from == to {
		return nil
	}

	item := s.items[from]
	s.items = append(s.items[:from], s.items[from+1:]...)
	s.items = append(s.items[:to], append([]Item{item}, s.items[to:]...)...)
	return nil
}

// Clear empties the session.
func (s *Session) Clear() {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()
}

// Items returns a copy of the current list.
func (s *Session) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Snapshot returns the run inputs in page order. Changes to the session
// afterwards do not affect the snapshot.
func (s *Session) Snapshot() []conversion.Input {
	s.mu.Lock()
	defer s.mu.Unlock()

	inputs := make([]conversion.Input, len(s.items))
	for i, item := range s.items {
		inputs[i] = conversion.Input{
			Name: item.Name,
			Path: item.Path,
			Data: item.data,
		}
	}
	return inputs
}

func probeFile(path string) (Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return Item{}, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return Item{}, err
	}
	if stat.IsDir() {
		return Item{}, fmt.Errorf("%s is a directory", path)
	}

	info, err := imaging.Probe(f)
	if err != nil {
		return Item{}, err
	}

	return Item{
		ID:     uuid.New().String(),
		Name:   filepath.Base(path),
		Path:   path,
		Size:   stat.Size(),
		Width:  info.Width,
		Height: info.Height,
		Format: info.Format,
	}, nil
}
