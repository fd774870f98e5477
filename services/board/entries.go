package board

import (
	"strings"

	"watchboard/models"
)

// FromResult turns a selected search result into an unrated planning item that
// remembers the result it came from.
func FromResult(result models.SearchResult) models.WatchItem {
	return models.WatchItem{
		ID:       idGenerator(),
		Title:    result.Title,
		Type:     result.Type,
		Poster:   result.Poster,
		Year:     result.Year,
		Notes:    "",
		SourceID: result.ID,
		Category: models.CategoryPlanning,
	}
}

// FromManual builds an item from a hand-typed entry. Optional fields are trimmed
// and the item has no source id.
func FromManual(entry models.ManualEntry) models.WatchItem {
	return models.WatchItem{
		ID:       idGenerator(),
		Title:    strings.TrimSpace(entry.Title),
		Type:     entry.Type,
		Poster:   strings.TrimSpace(entry.Poster),
		Year:     strings.TrimSpace(entry.Year),
		Category: entry.Category,
	}
}
