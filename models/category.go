package models

// Category is one of the four fixed lifecycle buckets of the board.
type Category string

const (
	CategoryCurrentlyWatching Category = "currentlyWatching"
	CategoryPlanning          Category = "planning"
	CategoryWatched           Category = "watched"
	CategoryDropped           Category = "dropped"
)

// Categories lists every category in board order. Scans that stop at the first
// match walk this slice.
var Categories = []Category{
	CategoryCurrentlyWatching,
	CategoryPlanning,
	CategoryWatched,
	CategoryDropped,
}

var categoryTitles = map[Category]string{
	CategoryCurrentlyWatching: "Currently Watching",
	CategoryPlanning:          "Planning to Watch",
	CategoryWatched:           "Watched",
	CategoryDropped:           "Dropped",
}

// Valid reports whether c is one of the four board categories.
func (c Category) Valid() bool {
	_, ok := categoryTitles[c]
	return ok
}

// Title returns the display heading for the category.
func (c Category) Title() string {
	return categoryTitles[c]
}

// ParseCategory returns the category named by s, if any.
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	return c, c.Valid()
}

// TypeFilter narrows a list to one media type; TypeFilterAll passes everything.
type TypeFilter string

const (
	TypeFilterAll   TypeFilter = "all"
	TypeFilterMovie TypeFilter = "movie"
	TypeFilterTV    TypeFilter = "tv"
)

// Valid reports whether f is a known filter value.
func (f TypeFilter) Valid() bool {
	switch f {
	case TypeFilterAll, TypeFilterMovie, TypeFilterTV:
		return true
	}
	return false
}

// Matches reports whether an item of the given media type passes the filter.
// The empty filter behaves like TypeFilterAll.
func (f TypeFilter) Matches(t MediaType) bool {
	if f == TypeFilterAll || f == "" {
		return true
	}
	return MediaType(f) == t
}
