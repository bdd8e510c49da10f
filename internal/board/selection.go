package board

import (
	"context"
	"sort"
)

// Selection is independent of the visible projection and is never persisted.

func (b *Board) ToggleSelected(id string) {
	if b.indexOf(id) < 0 {
		return
	}
	if b.selected[id] {
		delete(b.selected, id)
		return
	}
	b.selected[id] = true
}

func (b *Board) IsSelected(id string) bool {
	return b.selected[id]
}

// SelectAll replaces the selection with ids, typically the visible task ids.
func (b *Board) SelectAll(ids []string) {
	b.selected = make(map[string]bool, len(ids))
	for _, id := range ids {
		if b.indexOf(id) >= 0 {
			b.selected[id] = true
		}
	}
}

func (b *Board) ClearSelection() {
	b.selected = make(map[string]bool)
}

func (b *Board) SelectionCount() int {
	return len(b.selected)
}

func (b *Board) Selected() []string {
	ids := make([]string, 0, len(b.selected))
	for id := range b.selected {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// BulkComplete completes every selected open task, skipping ones already
// completed, then clears the selection. It returns the number completed.
func (b *Board) BulkComplete(ctx context.Context) int {
	now := b.now()
	n := 0
	for i := range b.tasks {
		if b.selected[b.tasks[i].ID] && !b.tasks[i].Completed {
			b.tasks[i].Completed = true
			b.tasks[i].UpdatedAt = now
			n++
		}
	}
	b.ClearSelection()
	if n > 0 {
		b.persistTasks(ctx)
	}
	return n
}

// BulkDelete removes every selected task and clears the selection.
// Confirmation belongs to the caller.
func (b *Board) BulkDelete(ctx context.Context) int {
	kept := b.tasks[:0]
	removed := 0
	for _, t := range b.tasks {
		if b.selected[t.ID] {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	b.tasks = kept
	b.ClearSelection()
	if removed > 0 {
		b.persistTasks(ctx)
	}
	return removed
}
