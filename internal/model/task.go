package model

import (
	"errors"
	"strings"
)

var (
	ErrEmptyTask     = errors.New("model: task title is empty")
	ErrDuplicateTask = errors.New("model: task already on the list")
	ErrIndexRange    = errors.New("model: task index out of range")
)

// TaskList is an ordered list of unique task titles. Order is insertion
// order; duplicate checks are case-sensitive exact matches.
type TaskList struct {
	items []string
}

// NewTaskList builds a list from persisted titles, dropping empty entries
// and duplicates so a corrupt snapshot cannot violate the list invariants.
func NewTaskList(items []string) TaskList {
	l := TaskList{}
	for _, item := range items {
		_ = l.Add(item)
	}
	return l
}

func (l *TaskList) Add(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTask
	}
	if l.Contains(title) {
		return ErrDuplicateTask
	}
	l.items = append(l.items, title)
	return nil
}

func (l *TaskList) RemoveAt(index int) (string, error) {
	if index < 0 || index >= len(l.items) {
		return "", ErrIndexRange
	}
	removed := l.items[index]
	l.items = append(l.items[:index], l.items[index+1:]...)
	return removed, nil
}

// RemoveTitle removes the first entry matching title. It reports whether
// anything was removed; a missing title is not an error because a revealed
// winner may already have been removed through the management view.
func (l *TaskList) RemoveTitle(title string) bool {
	for i, item := range l.items {
		if item == title {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return true
		}
	}
	return false
}

func (l *TaskList) Clear() {
	l.items = nil
}

func (l TaskList) Contains(title string) bool {
	for _, item := range l.items {
		if item == title {
			return true
		}
	}
	return false
}

func (l TaskList) Len() int {
	return len(l.items)
}

func (l TaskList) At(index int) string {
	return l.items[index]
}

// Items returns a copy so callers cannot mutate the list behind its back.
func (l TaskList) Items() []string {
	out := make([]string, len(l.items))
	copy(out, l.items)
	return out
}
