package board

import "watchboard/models"

// Filters holds the type filter of every category plus the global one. A missing
// per-category entry behaves like models.TypeFilterAll.
type Filters struct {
	Global     models.TypeFilter                     `json:"global"`
	Categories map[models.Category]models.TypeFilter `json:"categories"`
}

// DefaultFilters returns filters that let everything through.
func DefaultFilters() Filters {
	f := Filters{
		Global:     models.TypeFilterAll,
		Categories: make(map[models.Category]models.TypeFilter, len(models.Categories)),
	}
	for _, c := range models.Categories {
		f.Categories[c] = models.TypeFilterAll
	}
	return f
}

// Project returns the board as it should be displayed: an item is kept only when
// it passes both its category's filter and the global filter. Order within each
// category is preserved and b is not modified.
func Project(b Board, filters Filters) Board {
	view := New()
	for _, c := range models.Categories {
		perCategory := filters.Categories[c]
		kept := make([]models.WatchItem, 0, len(b[c]))
		for _, item := range b[c] {
			if filters.Global.Matches(item.Type) && perCategory.Matches(item.Type) {
				kept = append(kept, item)
			}
		}
		view[c] = kept
	}
	return view
}
