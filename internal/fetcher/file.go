package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// FileSource reads the document from the local filesystem. The locator
// may be a plain path or a glob (recursive patterns like
// /var/collector/**/*.csv supported); when several files match, the most
// recently modified one is read, matching a collector that writes dated
// files.
type FileSource struct {
	pattern string
	baseDir string // non-glob prefix, watched for changes
}

// NewFileSource creates a FileSource for the given path or pattern.
func NewFileSource(pattern string) (*FileSource, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid source pattern %q", pattern)
	}
	base, _ := doublestar.SplitPattern(pattern)
	return &FileSource{pattern: pattern, baseDir: base}, nil
}

func (s *FileSource) Describe() string { return "file:" + s.pattern }

// Fetch reads the newest file matching the pattern.
func (s *FileSource) Fetch(ctx context.Context) (string, error) {
	path, err := s.resolve()
	if err != nil {
		return "", err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(raw), nil
}

// resolve expands the pattern and returns the newest matching file.
func (s *FileSource) resolve() (string, error) {
	matches, err := doublestar.FilepathGlob(s.pattern, doublestar.WithFilesOnly())
	if err != nil {
		return "", fmt.Errorf("expand pattern %q: %w", s.pattern, err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no file matches %q", s.pattern)
	}

	newest := matches[0]
	var newestMod int64
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			continue
		}
		if mod := info.ModTime().UnixNano(); mod > newestMod {
			newest, newestMod = m, mod
		}
	}
	return newest, nil
}

// Changes watches the pattern's base directory and signals whenever a
// file there is written, created, renamed, or removed. The channel is
// buffered by one; coalescing bursts into a single refresh is fine.
func (s *FileSource) Changes(ctx context.Context) (<-chan struct{}, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(s.baseDir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("cannot watch %s: %w", s.baseDir, err)
	}

	ch := make(chan struct{}, 1)
	go func() {
		defer fsw.Close()
		defer close(ch)

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-fsw.Events:
				if !ok {
					return
				}
				switch {
				case ev.Op&fsnotify.Write != 0,
					ev.Op&fsnotify.Create != 0,
					ev.Op&fsnotify.Remove != 0,
					ev.Op&fsnotify.Rename != 0:
					select {
					case ch <- struct{}{}:
					default:
					}
				}
			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				slog.Warn("source watch error", "err", err)
			}
		}
	}()

	return ch, nil
}
