package models

import "time"

// Kind distinguishes catalog record shapes. Movies and series are classified identically.
type Kind string

const (
	KindMovie  Kind = "movie"
	KindSeries Kind = "series"
)

// ContentItem represents a movie or series from the catalog.
//
// Items are owned by the catalog provider; the curator only reads them.
type ContentItem struct {
	ID          string    `json:"id" validate:"required"`
	Kind        Kind      `json:"kind,omitempty" validate:"omitempty,oneof=movie series"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Genres      []string  `json:"genres"`
	Rating      float64   `json:"rating" validate:"gte=0,lte=10"`
	ReleaseDate time.Time `json:"release_date"`
}
