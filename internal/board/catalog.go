package board

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandeepkv93/focusboard/internal/model"
)

const defaultCategoryColor = "#6b7280"

func (b *Board) Categories() []model.Category {
	return append([]model.Category(nil), b.categories...)
}

// AddCategory appends a category. The id is derived from the name when it is
// free, otherwise a generated id is used.
func (b *Board) AddCategory(ctx context.Context, name, color, icon string) (model.Category, error) {
	name = strings.TrimSpace(name)
	if color == "" {
		color = defaultCategoryColor
	}
	id := strings.ToLower(strings.Join(strings.Fields(name), "-"))
	if _, ok := b.lookupCategory(id); ok || id == "" {
		id = b.newID()
	}
	c := model.Category{ID: id, Name: name, Color: color, Icon: icon}
	if err := c.Validate(); err != nil {
		return model.Category{}, err
	}
	b.categories = append(b.categories, c)
	b.store.SaveCategories(ctx, b.categories)
	return c, nil
}

// CategoryByID tolerates dangling references by returning the uncategorized
// placeholder.
func (b *Board) CategoryByID(id string) model.Category {
	if c, ok := b.lookupCategory(id); ok {
		return c
	}
	return model.Uncategorized()
}

func (b *Board) lookupCategory(id string) (model.Category, bool) {
	for _, c := range b.categories {
		if c.ID == id {
			return c, true
		}
	}
	return model.Category{}, false
}

func (b *Board) Templates() []model.TaskTemplate {
	return append([]model.TaskTemplate(nil), b.templates...)
}

// SaveTemplate creates the template when its id is empty or unknown and
// replaces it otherwise.
func (b *Board) SaveTemplate(ctx context.Context, tpl model.TaskTemplate) (model.TaskTemplate, error) {
	if tpl.Priority == "" {
		tpl.Priority = model.PriorityMedium
	}
	if err := tpl.Validate(); err != nil {
		return model.TaskTemplate{}, err
	}
	if i := b.templateIndex(tpl.ID); i >= 0 {
		tpl.CreatedAt = b.templates[i].CreatedAt
		b.templates[i] = tpl
	} else {
		if tpl.ID == "" {
			tpl.ID = b.newID()
		}
		tpl.CreatedAt = b.now()
		b.templates = append(b.templates, tpl)
	}
	b.store.SaveTemplates(ctx, b.templates)
	return tpl, nil
}

// SaveTaskAsTemplate captures the reusable fields of an existing task.
func (b *Board) SaveTaskAsTemplate(ctx context.Context, taskID, name string) (model.TaskTemplate, error) {
	task, ok := b.Task(taskID)
	if !ok {
		return model.TaskTemplate{}, fmt.Errorf("%w: %q", ErrTaskNotFound, taskID)
	}
	subs := make([]model.TemplateSubtask, 0, len(task.Subtasks))
	for _, s := range task.Subtasks {
		subs = append(subs, model.TemplateSubtask{Title: s.Title})
	}
	tpl := model.TaskTemplate{
		Name:        name,
		Title:       task.Title,
		Description: task.Description,
		Priority:    task.Priority,
		Category:    task.Category,
		Tags:        append([]string(nil), task.Tags...),
		Subtasks:    subs,
	}
	if task.Estimate != nil {
		tpl.Estimate = model.Minutes(*task.Estimate)
	}
	return b.SaveTemplate(ctx, tpl)
}

func (b *Board) DuplicateTemplate(ctx context.Context, id string) (model.TaskTemplate, error) {
	i := b.templateIndex(id)
	if i < 0 {
		return model.TaskTemplate{}, fmt.Errorf("%w: %q", ErrTemplateNotFound, id)
	}
	dup := b.templates[i]
	dup.ID = b.newID()
	dup.Name = dup.Name + " (Copy)"
	dup.CreatedAt = b.now()
	dup.Tags = append([]string(nil), dup.Tags...)
	dup.Subtasks = append([]model.TemplateSubtask(nil), dup.Subtasks...)
	if dup.Estimate != nil {
		dup.Estimate = model.Minutes(*dup.Estimate)
	}
	b.templates = append(b.templates, dup)
	b.store.SaveTemplates(ctx, b.templates)
	return dup, nil
}

func (b *Board) DeleteTemplate(ctx context.Context, id string) error {
	i := b.templateIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrTemplateNotFound, id)
	}
	b.templates = append(b.templates[:i], b.templates[i+1:]...)
	b.store.SaveTemplates(ctx, b.templates)
	return nil
}

// TemplateByName matches case-insensitively on the template name.
func (b *Board) TemplateByName(name string) (model.TaskTemplate, bool) {
	for _, t := range b.templates {
		if strings.EqualFold(t.Name, strings.TrimSpace(name)) {
			return t, true
		}
	}
	return model.TaskTemplate{}, false
}

// CreateFromTemplate stamps a new task from the template. The task keeps no
// reference to the template.
func (b *Board) CreateFromTemplate(ctx context.Context, id string) (model.Task, error) {
	i := b.templateIndex(id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("%w: %q", ErrTemplateNotFound, id)
	}
	tpl := b.templates[i]
	now := b.now()
	draft := model.Task{
		Title:       tpl.Title,
		Description: tpl.Description,
		Priority:    tpl.Priority,
		Category:    tpl.Category,
		Tags:        append([]string{}, tpl.Tags...),
	}
	if tpl.Estimate != nil {
		draft.Estimate = model.Minutes(*tpl.Estimate)
	}
	for _, s := range tpl.Subtasks {
		draft.Subtasks = append(draft.Subtasks, model.Subtask{ID: b.newID(), Title: s.Title, CreatedAt: now})
	}
	return b.AddTask(ctx, draft)
}

func (b *Board) templateIndex(id string) int {
	if id == "" {
		return -1
	}
	for i := range b.templates {
		if b.templates[i].ID == id {
			return i
		}
	}
	return -1
}
