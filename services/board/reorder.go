package board

import (
	"slices"

	"watchboard/models"
)

// Move applies a completed drag gesture. active is the dragged item's id; over is
// the drop target, either another item's id or a category key. An empty over
// means the item was dropped outside any target.
//
// Exactly one item changes its (category, index) pair. The outcomes are:
//   - over empty or equal to active: the board is returned unchanged.
//   - over is a category key: the item is appended to that category.
//   - over is an item in the same category: the item takes over's original
//     index, so dragging down lands after over and dragging up lands before it.
//     Dropping A onto C in [A B C] gives [B C A].
//   - over is an item in another category: the item is inserted at over's index
//     in the destination.
//   - over cannot be resolved: the item is appended to its own category.
//
// An unknown active id leaves the board unchanged. Move never fails.
func (b Board) Move(active, over string) Board {
	if over == "" || active == over {
		return b
	}

	from, fromIndex, ok := b.locate(active)
	if !ok {
		return b
	}

	to, overIndex, onCategory := b.resolveTarget(from, over)

	source := slices.Clone(b[from])
	moving := source[fromIndex]
	source = slices.Delete(source, fromIndex, fromIndex+1)

	destinationOriginal := b[to]
	destination := source
	if from != to {
		destination = slices.Clone(destinationOriginal)
	}

	insertAt := len(destinationOriginal)
	if !onCategory && overIndex != -1 {
		insertAt = overIndex
	}
	if from == to && onCategory {
		insertAt = len(destination)
	}
	insertAt = clamp(insertAt, 0, len(destination))

	if from == to && insertAt == fromIndex {
		return b
	}

	moving.Category = to
	destination = slices.Insert(destination, insertAt, moving)

	next := b.clone()
	next[from] = source
	next[to] = destination
	return next
}

// resolveTarget works out which category over refers to and over's index in that
// category's unmodified list. overIndex is -1 when over is a category key or could
// not be found; an unresolvable target falls back to the source category.
func (b Board) resolveTarget(from models.Category, over string) (to models.Category, overIndex int, onCategory bool) {
	if category, ok := models.ParseCategory(over); ok {
		return category, -1, true
	}
	if category, index, ok := b.locate(over); ok {
		return category, index, false
	}
	return from, -1, false
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
