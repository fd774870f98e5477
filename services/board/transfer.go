package board

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gabriel-vasile/mimetype"

	"watchboard/models"
)

var (
	// ErrImportNotJSON is returned when an import payload is not JSON at all.
	ErrImportNotJSON = errors.New("import: payload is not json")
	// ErrImportNotArray is returned when an import payload is JSON but not an array.
	ErrImportNotArray = errors.New("import: payload is not an array")
)

// ExportFileName is the suggested download name for an export.
const ExportFileName = "watchlist.json"

// Export serializes the flattened board as indented JSON.
func Export(b Board) ([]byte, error) {
	data, err := json.MarshalIndent(b.Flatten(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export: %w", err)
	}
	return data, nil
}

// DecodeImport validates and decodes an import payload into item records. The
// payload must be a JSON array of objects. Fields are read leniently: a value of
// the wrong JSON type is treated as missing, and numeric ids or years are kept as
// their decimal text. Category and id are coerced later by ReplaceAll.
func DecodeImport(data []byte) ([]models.WatchItem, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrImportNotJSON
	}
	if mtype := mimetype.Detect(trimmed); !isText(mtype) {
		return nil, fmt.Errorf("%w: detected %s", ErrImportNotJSON, mtype.String())
	}
	if !json.Valid(trimmed) {
		return nil, ErrImportNotJSON
	}
	if trimmed[0] != '[' {
		return nil, ErrImportNotArray
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(trimmed, &elements); err != nil {
		return nil, fmt.Errorf("decode import: %w", err)
	}
	items := make([]models.WatchItem, 0, len(elements))
	for i, raw := range elements {
		var record importRecord
		if err := json.Unmarshal(raw, &record); err != nil {
			return nil, fmt.Errorf("decode import element %d: %w", i, err)
		}
		items = append(items, record.item())
	}
	return items, nil
}

type importRecord map[string]json.RawMessage

func (r importRecord) item() models.WatchItem {
	return models.WatchItem{
		ID:       looseText(r["id"]),
		Title:    looseString(r["title"]),
		Type:     models.MediaType(looseString(r["type"])),
		Poster:   looseString(r["poster"]),
		Year:     looseText(r["year"]),
		Rating:   looseRating(r["rating"]),
		Notes:    looseString(r["notes"]),
		SourceID: looseText(r["sourceId"]),
		Category: models.Category(looseString(r["category"])),
	}
}

func looseString(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

// looseText accepts a JSON string or number.
func looseText(raw json.RawMessage) string {
	if s := looseString(raw); s != "" {
		return s
	}
	var n json.Number
	if len(raw) == 0 || raw[0] == '"' || json.Unmarshal(raw, &n) != nil {
		return ""
	}
	return n.String()
}

func looseRating(raw json.RawMessage) *int {
	var rating *int
	if len(raw) == 0 || json.Unmarshal(raw, &rating) != nil {
		return nil
	}
	return rating
}

// isText walks the detected type's ancestry; JSON detection is limited to the
// sniffed prefix, so any text/plain descendant is accepted here.
func isText(mtype *mimetype.MIME) bool {
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}

// Import decodes data and rebuilds a board from it.
func Import(data []byte) (Board, error) {
	items, err := DecodeImport(data)
	if err != nil {
		return nil, err
	}
	return ReplaceAll(items), nil
}
