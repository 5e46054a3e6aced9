package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/desertthunder/moodx/internal/models"
	"github.com/desertthunder/moodx/internal/shared"
)

// FileCatalog reads a catalog from a JSON document on disk.
type FileCatalog struct {
	path      string
	validator *recordValidator
}

// catalogDocument is the object form of a catalog file.
type catalogDocument struct {
	Movies []catalogRecord `json:"movies"`
	Series []catalogRecord `json:"series"`
}

// NewFileCatalog creates a [FileCatalog] for path.
func NewFileCatalog(path string) *FileCatalog {
	return &FileCatalog{path: path, validator: newRecordValidator()}
}

func (f *FileCatalog) Name() string {
	return "file"
}

// Path returns the catalog file location.
func (f *FileCatalog) Path() string {
	return f.path
}

// Catalog reads and validates the whole file.
func (f *FileCatalog) Catalog(ctx context.Context) ([]models.ContentItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer file.Close()

	return f.Decode(file)
}

// Decode reads a catalog document from r.
//
// The document is either an array of records, or an object with "movies" and "series" arrays
// which are combined movies first. Records without a kind take it from the array they appear in.
func (f *FileCatalog) Decode(r io.Reader) ([]models.ContentItem, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: document is empty", shared.ErrInvalidCatalog)
	}

	if trimmed[0] == '[' {
		var records []catalogRecord
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrInvalidCatalog, err)
		}
		return f.validator.convert(records, models.KindMovie, 0)
	}

	var doc catalogDocument
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidCatalog, err)
	}

	movies, err := f.validator.convert(doc.Movies, models.KindMovie, 0)
	if err != nil {
		return nil, err
	}
	series, err := f.validator.convert(doc.Series, models.KindSeries, len(doc.Movies))
	if err != nil {
		return nil, err
	}
	return append(movies, series...), nil
}
