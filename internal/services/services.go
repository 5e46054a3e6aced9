package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/desertthunder/moodx/internal/models"
	"github.com/desertthunder/moodx/internal/shared"
	"github.com/go-playground/validator/v10"
)

// CatalogProvider supplies content items to the curator.
type CatalogProvider interface {
	// Catalog returns every item in provider order.
	Catalog(ctx context.Context) ([]models.ContentItem, error)

	// Name returns the source name recorded alongside cached items (e.g., "file", "remote")
	Name() string
}

// releaseLayouts are tried in order when decoding a record's release date.
var releaseLayouts = []string{time.RFC3339, "2006-01-02", "2006"}

// catalogRecord is the wire shape of a catalog item shared by file and remote sources.
type catalogRecord struct {
	ID          string   `json:"id" validate:"required"`
	Kind        string   `json:"kind" validate:"omitempty,oneof=movie series"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Genres      []string `json:"genres"`
	Rating      float64  `json:"rating" validate:"gte=0,lte=10"`
	ReleaseDate string   `json:"release_date"`
}

// toItem converts the record, defaulting the kind when the source did not say.
func (r catalogRecord) toItem(defaultKind models.Kind) (models.ContentItem, error) {
	item := models.ContentItem{
		ID:          r.ID,
		Kind:        models.Kind(r.Kind),
		Title:       r.Title,
		Description: r.Description,
		Genres:      r.Genres,
		Rating:      r.Rating,
	}
	if item.Kind == "" {
		item.Kind = defaultKind
	}
	if item.Genres == nil {
		item.Genres = []string{}
	}

	if r.ReleaseDate != "" {
		released, err := parseReleaseDate(r.ReleaseDate)
		if err != nil {
			return item, err
		}
		item.ReleaseDate = released
	}
	return item, nil
}

func parseReleaseDate(s string) (time.Time, error) {
	for _, layout := range releaseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("release_date %q is not a date", s)
}

// recordValidator wraps [validator.Validate] with JSON field names in messages.
type recordValidator struct {
	v *validator.Validate
}

func newRecordValidator() *recordValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return &recordValidator{v: v}
}

// convert validates every record and converts them to items, keeping order.
// The first invalid record aborts the whole batch.
func (rv *recordValidator) convert(records []catalogRecord, defaultKind models.Kind, offset int) ([]models.ContentItem, error) {
	items := make([]models.ContentItem, 0, len(records))
	for i, rec := range records {
		if err := rv.validate(rec); err != nil {
			return nil, fmt.Errorf("%w: record %d (%s): %v", shared.ErrInvalidCatalog, offset+i, rec.ID, err)
		}
		item, err := rec.toItem(defaultKind)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d (%s): %v", shared.ErrInvalidCatalog, offset+i, rec.ID, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (rv *recordValidator) validate(rec catalogRecord) error {
	err := rv.v.Struct(rec)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fe.Field()+" "+friendlyMessage(fe))
	}
	return errors.New(strings.Join(msgs, ", "))
}

func friendlyMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	default:
		return "is invalid"
	}
}
