package composer

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/BerylCAtieno/exam-helper-api/internal/models"
)

// ReadFiles reads every path concurrently and returns the excerpts in the
// order the paths were given. The first read failure cancels the rest.
func ReadFiles(ctx context.Context, paths []string) ([]models.FileExcerpt, error) {
	excerpts := make([]models.FileExcerpt, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}

			name := filepath.Base(path)
			excerpts[i] = NewExcerpt(name, DeclaredType(name), data)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return excerpts, nil
}

// fallbackTypes covers common text extensions missing from hosts without a
// system mime.types table.
var fallbackTypes = map[string]string{
	".txt":  "text/plain",
	".md":   "text/markdown",
	".csv":  "text/csv",
	".tsv":  "text/tab-separated-values",
	".yaml": "text/yaml",
	".yml":  "text/yaml",
}

// DeclaredType derives a media type from the file name extension, the way a
// browser fills in File.type. Parameters such as charset are dropped.
// Unknown extensions yield an empty type.
func DeclaredType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))

	byExt := mime.TypeByExtension(ext)
	if byExt == "" {
		return fallbackTypes[ext]
	}

	mediaType, _, err := mime.ParseMediaType(byExt)
	if err != nil {
		return byExt
	}
	return mediaType
}
