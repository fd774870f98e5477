package models

import (
	"errors"
	"fmt"
)

// ErrInvalidRating is returned when a rating falls outside the 1-10 range.
var ErrInvalidRating = errors.New("rating must be between 1 and 10")

// ErrInvalidMediaType is returned for media types other than movie or tv.
var ErrInvalidMediaType = errors.New("media type must be movie or tv")

const (
	// MinRating and MaxRating bound a user rating.
	MinRating = 1
	MaxRating = 10

	// TopRatedThreshold is the rating at which an item is highlighted.
	TopRatedThreshold = 8
)

// MediaType distinguishes films from series.
type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv"
)

// Valid reports whether m is one of the known media types.
func (m MediaType) Valid() bool {
	return m == MediaTypeMovie || m == MediaTypeTV
}

// WatchItem represents a media entry curated by the user on the board.
type WatchItem struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Type     MediaType `json:"type"` // movie | tv
	Poster   string    `json:"poster,omitempty"`
	Year     string    `json:"year,omitempty"`
	Rating   *int      `json:"rating"` // nil means unrated
	Notes    string    `json:"notes"`
	SourceID string    `json:"sourceId,omitempty"` // set only for items added from a search result
	Category Category  `json:"category"`
}

// Validate checks the user-editable fields of the item.
func (w WatchItem) Validate() error {
	if !w.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMediaType, w.Type)
	}
	if w.Rating != nil && (*w.Rating < MinRating || *w.Rating > MaxRating) {
		return fmt.Errorf("%w: got %d", ErrInvalidRating, *w.Rating)
	}
	return nil
}

// IsTopRated reports whether the item should be highlighted as a favourite.
func (w WatchItem) IsTopRated() bool {
	return w.Rating != nil && *w.Rating >= TopRatedThreshold
}

// ManualEntry captures the fields a user supplies when adding an item by hand.
type ManualEntry struct {
	Title    string    `json:"title"`
	Type     MediaType `json:"type"`
	Poster   string    `json:"poster,omitempty"`
	Year     string    `json:"year,omitempty"`
	Category Category  `json:"category"`
}
