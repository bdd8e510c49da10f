package update

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/sandeepkv93/focusboard/internal/board"
)

// exportToFile writes the export document next to its final path and renames
// it into place.
func exportToFile(ctx context.Context, b *board.Board, path string) (int, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return 0, errors.New("export: path is required")
	}
	payload, err := b.Store().Export(ctx, b.Now())
	if err != nil {
		return 0, err
	}
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, err
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(payload, '\n'), 0o644); err != nil {
		return 0, err
	}
	if err := os.Rename(tmp, path); err != nil {
		return 0, err
	}
	return len(payload), nil
}

// importFromFile applies an export document and reloads the working set.
// A malformed file leaves the store untouched.
func importFromFile(ctx context.Context, b *board.Board, path string) error {
	raw, err := os.ReadFile(strings.TrimSpace(path))
	if err != nil {
		return err
	}
	if err := b.Store().Import(ctx, raw); err != nil {
		return err
	}
	b.Reload(ctx)
	return nil
}
