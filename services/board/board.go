// Package board holds the categorized watch list and the operations that mutate it.
//
// A Board is treated as a value: every operation returns a new Board and leaves
// its receiver untouched.
package board

import (
	"slices"

	"watchboard/models"
	"watchboard/utils"
)

// Board maps each of the four categories to its ordered items. Slice order is
// display and priority order.
type Board map[models.Category][]models.WatchItem

// idGenerator produces ids for items that arrive without one.
var idGenerator = utils.NewItemID

// New returns an empty board with every category present.
func New() Board {
	b := make(Board, len(models.Categories))
	for _, c := range models.Categories {
		b[c] = []models.WatchItem{}
	}
	return b
}

// clone copies the category map. Item slices are shared; callers replace a
// category slice wholesale instead of writing into it.
func (b Board) clone() Board {
	next := New()
	for _, c := range models.Categories {
		if items, ok := b[c]; ok && items != nil {
			next[c] = items
		}
	}
	return next
}

// AddItem inserts item at the head of category. The item's category field is
// overwritten with category.
func (b Board) AddItem(item models.WatchItem, category models.Category) Board {
	item.Category = category
	next := b.clone()
	list := make([]models.WatchItem, 0, len(b[category])+1)
	list = append(list, item)
	list = append(list, b[category]...)
	next[category] = list
	return next
}

// UpdateItem replaces the item with the same id inside updated.Category, keeping
// its position. Other categories are not searched: when the item is not in the
// category the caller names, the board is returned unchanged.
func (b Board) UpdateItem(updated models.WatchItem) Board {
	current := b[updated.Category]
	index := indexOf(current, updated.ID)
	if index == -1 {
		return b
	}
	list := slices.Clone(current)
	list[index] = updated
	next := b.clone()
	next[updated.Category] = list
	return next
}

// DeleteItem removes the first item with id, scanning categories in board order.
// At most one item is removed; an unknown id leaves the board unchanged.
func (b Board) DeleteItem(id string) Board {
	category, index, ok := b.locate(id)
	if !ok {
		return b
	}
	next := b.clone()
	next[category] = slices.Delete(slices.Clone(b[category]), index, index+1)
	return next
}

// ReplaceAll builds a fresh board from a flat item list, as produced by an
// import. Items with an unknown category land in planning and items without an
// id receive a generated one. Relative order is kept within each category.
func ReplaceAll(items []models.WatchItem) Board {
	next := New()
	for _, item := range items {
		if !item.Category.Valid() {
			item.Category = models.CategoryPlanning
		}
		if item.ID == "" {
			item.ID = idGenerator()
		}
		next[item.Category] = append(next[item.Category], item)
	}
	return next
}

// Flatten concatenates every category in board order. Each item carries the
// category of the list it came from.
func (b Board) Flatten() []models.WatchItem {
	total := 0
	for _, c := range models.Categories {
		total += len(b[c])
	}
	all := make([]models.WatchItem, 0, total)
	for _, c := range models.Categories {
		for _, item := range b[c] {
			item.Category = c
			all = append(all, item)
		}
	}
	return all
}

// Find returns the item with id, scanning categories in board order.
func (b Board) Find(id string) (models.WatchItem, bool) {
	category, index, ok := b.locate(id)
	if !ok {
		return models.WatchItem{}, false
	}
	return b[category][index], true
}

// IndexOf returns the position of id within category, or -1.
func (b Board) IndexOf(category models.Category, id string) int {
	return indexOf(b[category], id)
}

// Len returns the number of items across all categories.
func (b Board) Len() int {
	n := 0
	for _, c := range models.Categories {
		n += len(b[c])
	}
	return n
}

func (b Board) locate(id string) (models.Category, int, bool) {
	for _, c := range models.Categories {
		if i := indexOf(b[c], id); i != -1 {
			return c, i, true
		}
	}
	return "", -1, false
}

func indexOf(items []models.WatchItem, id string) int {
	return slices.IndexFunc(items, func(item models.WatchItem) bool {
		return item.ID == id
	})
}
