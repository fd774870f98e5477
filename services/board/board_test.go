package board

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"watchboard/models"
)

func item(id string, category models.Category) models.WatchItem {
	return models.WatchItem{ID: id, Title: "Title " + id, Type: models.MediaTypeMovie, Category: category}
}

func ids(items []models.WatchItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func sampleBoard() Board {
	b := New()
	b[models.CategoryCurrentlyWatching] = []models.WatchItem{item("cw1", models.CategoryCurrentlyWatching)}
	b[models.CategoryPlanning] = []models.WatchItem{
		item("p1", models.CategoryPlanning),
		item("p2", models.CategoryPlanning),
		item("p3", models.CategoryPlanning),
	}
	b[models.CategoryWatched] = []models.WatchItem{item("w1", models.CategoryWatched)}
	b[models.CategoryDropped] = []models.WatchItem{
		item("d1", models.CategoryDropped),
		item("d2", models.CategoryDropped),
	}
	return b
}

func stubIDs(t *testing.T) {
	t.Helper()
	n := 0
	prev := idGenerator
	idGenerator = func() string {
		n++
		return fmt.Sprintf("gen-%d", n)
	}
	t.Cleanup(func() { idGenerator = prev })
}

func TestNewHasEveryCategory(t *testing.T) {
	b := New()
	require.Len(t, b, len(models.Categories))
	for _, c := range models.Categories {
		items, ok := b[c]
		assert.True(t, ok, "missing category %s", c)
		assert.Empty(t, items)
	}
}

func TestAddItemInsertsAtHeadAndSetsCategory(t *testing.T) {
	b := sampleBoard()
	added := item("new", models.CategoryDropped)

	next := b.AddItem(added, models.CategoryPlanning)

	assert.Equal(t, []string{"new", "p1", "p2", "p3"}, ids(next[models.CategoryPlanning]))
	assert.Equal(t, models.CategoryPlanning, next[models.CategoryPlanning][0].Category)
	assert.Equal(t, []string{"d1", "d2"}, ids(next[models.CategoryDropped]))
	assert.Equal(t, []string{"p1", "p2", "p3"}, ids(b[models.CategoryPlanning]), "receiver must not change")
}

func TestUpdateItemKeepsPosition(t *testing.T) {
	b := sampleBoard()
	updated := b[models.CategoryPlanning][1]
	updated.Title = "Renamed"
	rating := 9
	updated.Rating = &rating

	next := b.UpdateItem(updated)

	assert.Equal(t, []string{"p1", "p2", "p3"}, ids(next[models.CategoryPlanning]))
	assert.Equal(t, "Renamed", next[models.CategoryPlanning][1].Title)
	assert.Equal(t, "Title p2", b[models.CategoryPlanning][1].Title)
}

func TestUpdateItemWrongCategoryIsNoop(t *testing.T) {
	b := sampleBoard()
	updated := b[models.CategoryPlanning][0]
	updated.Title = "Elsewhere"
	updated.Category = models.CategoryWatched

	next := b.UpdateItem(updated)

	if diff := cmp.Diff(b, next); diff != "" {
		t.Fatalf("board changed (-want +got):\n%s", diff)
	}
}

func TestUpdateItemUnknownIDIsNoop(t *testing.T) {
	b := sampleBoard()
	next := b.UpdateItem(item("ghost", models.CategoryPlanning))
	if diff := cmp.Diff(b, next); diff != "" {
		t.Fatalf("board changed (-want +got):\n%s", diff)
	}
}

func TestDeleteItemTouchesOnlyOwningCategory(t *testing.T) {
	b := sampleBoard()

	next := b.DeleteItem("d1")

	assert.Equal(t, []string{"d2"}, ids(next[models.CategoryDropped]))
	for _, c := range []models.Category{models.CategoryCurrentlyWatching, models.CategoryPlanning, models.CategoryWatched} {
		if diff := cmp.Diff(b[c], next[c]); diff != "" {
			t.Fatalf("category %s changed (-want +got):\n%s", c, diff)
		}
	}
}

func TestDeleteItemRemovesFirstMatchOnly(t *testing.T) {
	b := New()
	b[models.CategoryPlanning] = []models.WatchItem{item("dup", models.CategoryPlanning)}
	b[models.CategoryWatched] = []models.WatchItem{item("dup", models.CategoryWatched)}

	next := b.DeleteItem("dup")

	assert.Empty(t, next[models.CategoryPlanning])
	assert.Equal(t, []string{"dup"}, ids(next[models.CategoryWatched]))
}

func TestDeleteItemUnknownIsNoop(t *testing.T) {
	b := sampleBoard()
	next := b.DeleteItem("missing")
	if diff := cmp.Diff(b, next); diff != "" {
		t.Fatalf("board changed (-want +got):\n%s", diff)
	}
}

func TestReplaceAllCoercesCategoryAndID(t *testing.T) {
	stubIDs(t)
	items := []models.WatchItem{
		{ID: "a", Title: "A", Type: models.MediaTypeMovie, Category: models.CategoryWatched},
		{ID: "", Title: "B", Type: models.MediaTypeTV, Category: models.CategoryDropped},
		{ID: "c", Title: "C", Type: models.MediaTypeMovie, Category: "someday"},
		{ID: "d", Title: "D", Type: models.MediaTypeMovie},
	}

	b := ReplaceAll(items)

	assert.Equal(t, []string{"a"}, ids(b[models.CategoryWatched]))
	assert.Equal(t, []string{"gen-1"}, ids(b[models.CategoryDropped]))
	assert.Equal(t, []string{"c", "d"}, ids(b[models.CategoryPlanning]))
	assert.Empty(t, b[models.CategoryCurrentlyWatching])
	for _, it := range b[models.CategoryPlanning] {
		assert.Equal(t, models.CategoryPlanning, it.Category)
	}
}

func TestReplaceAllFlattenRoundTrip(t *testing.T) {
	original := sampleBoard()
	rating := 8
	original[models.CategoryWatched][0].Rating = &rating
	original[models.CategoryWatched][0].Notes = "rewatch"

	rebuilt := ReplaceAll(original.Flatten())

	if diff := cmp.Diff(original, rebuilt); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
	assert.ElementsMatch(t, original.Flatten(), rebuilt.Flatten())
}

func TestFlattenOrderAndCategory(t *testing.T) {
	b := sampleBoard()
	b[models.CategoryWatched][0].Category = models.CategoryPlanning

	flat := b.Flatten()

	assert.Equal(t, []string{"cw1", "p1", "p2", "p3", "w1", "d1", "d2"}, ids(flat))
	assert.Equal(t, models.CategoryWatched, flat[4].Category)
}

func TestFind(t *testing.T) {
	b := sampleBoard()

	found, ok := b.Find("w1")
	require.True(t, ok)
	assert.Equal(t, models.CategoryWatched, found.Category)

	_, ok = b.Find("nope")
	assert.False(t, ok)
	assert.Equal(t, 7, b.Len())
}

func TestFromResult(t *testing.T) {
	stubIDs(t)
	result := models.SearchResult{
		ID:     "tvmaze-169",
		Source: "tvmaze",
		Title:  "Breaking Bad",
		Year:   "2008",
		Poster: "https://static.tvmaze.com/original.jpg",
		Type:   models.MediaTypeTV,
	}

	it := FromResult(result)

	assert.Equal(t, "gen-1", it.ID)
	assert.Equal(t, "tvmaze-169", it.SourceID)
	assert.Equal(t, models.CategoryPlanning, it.Category)
	assert.Equal(t, models.MediaTypeTV, it.Type)
	assert.Nil(t, it.Rating)
	assert.Empty(t, it.Notes)
}

func TestFromManual(t *testing.T) {
	stubIDs(t)
	it := FromManual(models.ManualEntry{
		Title:    "  Heat ",
		Type:     models.MediaTypeMovie,
		Year:     " 1995",
		Category: models.CategoryWatched,
	})

	assert.Equal(t, "Heat", it.Title)
	assert.Equal(t, "1995", it.Year)
	assert.Empty(t, it.SourceID)
	assert.Equal(t, models.CategoryWatched, it.Category)
}
