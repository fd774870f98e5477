package models

// SearchResult is a normalized, short-lived candidate returned by a catalog provider.
// It is never stored on the board; selecting one creates a WatchItem instead.
type SearchResult struct {
	ID     string    `json:"id"` // "<source>-<provider native id>"
	Source string    `json:"source"`
	Title  string    `json:"title"`
	Year   string    `json:"year,omitempty"`
	Poster string    `json:"poster,omitempty"`
	Type   MediaType `json:"type"`
}

// DedupKey groups results that describe the same title of the same media type.
// The year is not part of the key.
func (r SearchResult) DedupKey() string {
	return r.Title + "-" + string(r.Type)
}
