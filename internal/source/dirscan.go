package source

import (
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jh3/codep/internal/entry"
	"github.com/jh3/codep/internal/logging"
)

// sidecarFunc extracts the location a sidecar document describes. ok is false
// when the document names none.
type sidecarFunc func(data []byte) (kind entry.Kind, uri string, ok bool, err error)

// dirScanner lists the subdirectories of dir and reads one sidecar file from
// each. The subdirectory's mtime becomes the entry's timestamp.
type dirScanner struct {
	dir     string
	sidecar string
	parse   sidecarFunc
	workers int
}

func newDirScanner(dir, sidecar string, parse sidecarFunc) *dirScanner {
	return &dirScanner{
		dir:     dir,
		sidecar: sidecar,
		parse:   parse,
		workers: runtime.GOMAXPROCS(0),
	}
}

// Entries lists the directory. Sidecars are read once ranging starts.
func (s *dirScanner) Entries() (iter.Seq[entry.Raw], error) {
	dirents, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.dir, err)
	}
	return func(yield func(entry.Raw) bool) {
		for _, e := range s.readAll(dirents) {
			if !yield(e) {
				return
			}
		}
	}, nil
}

type scanResult struct {
	entry entry.Raw
	ok    bool
}

// readAll reads sidecars in parallel and returns the entries in listing order.
func (s *dirScanner) readAll(dirents []os.DirEntry) []entry.Raw {
	results := make([]scanResult, len(dirents))

	var g errgroup.Group
	g.SetLimit(max(1, s.workers))
	for i, d := range dirents {
		g.Go(func() error {
			e, ok := s.read(filepath.Join(s.dir, d.Name()))
			results[i] = scanResult{entry: e, ok: ok}
			return nil
		})
	}
	_ = g.Wait()

	var entries []entry.Raw
	for _, r := range results {
		if r.ok {
			entries = append(entries, r.entry)
		}
	}
	return entries
}

func (s *dirScanner) read(dir string) (entry.Raw, bool) {
	log := logging.L().With(zap.String("path", dir))

	info, err := os.Stat(dir)
	if err != nil {
		log.Warn("failed to read entry", zap.Error(err))
		return entry.Raw{}, false
	}
	if !info.IsDir() {
		log.Warn("skipping unexpected file type", zap.Stringer("mode", info.Mode().Type()))
		return entry.Raw{}, false
	}

	sidecar := filepath.Join(dir, s.sidecar)
	data, err := os.ReadFile(sidecar)
	if errors.Is(err, os.ErrNotExist) {
		log.Debug("no sidecar", zap.String("sidecar", s.sidecar))
		return entry.Raw{}, false
	}
	if err != nil {
		log.Warn("failed to read sidecar", zap.String("sidecar", s.sidecar), zap.Error(err))
		return entry.Raw{}, false
	}

	kind, uri, ok, err := s.parse(data)
	if err != nil {
		log.Warn("failed to parse sidecar", zap.String("sidecar", s.sidecar), zap.Error(err))
		return entry.Raw{}, false
	}
	if !ok {
		return entry.Raw{}, false
	}
	return entry.Raw{Kind: kind, URI: uri, ModifiedAt: info.ModTime()}, true
}
