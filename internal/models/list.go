package models

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxTitleLength bounds List and Task titles.
const MaxTitleLength = 250

// List column names, shared by filters and by the relational store.
const (
	ListFieldID       = "id"
	ListFieldTitle    = "title"
	ListFieldArchived = "archived"
)

// ListFields lists every field a List can be filtered on.
var ListFields = []string{ListFieldID, ListFieldTitle, ListFieldArchived}

// List is a named collection of tasks. Its tasks are not stored on the
// record; they are every Task whose ListID equals ID.
type List struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Archived bool   `json:"archived"`
}

// ListDraft is the creation payload for a List.
type ListDraft struct {
	Title    Optional[string] `json:"title"`
	Archived Optional[bool]   `json:"archived"`
}

// NewList builds an unsaved List, enforcing the required title.
func NewList(d ListDraft) (*List, error) {
	if !d.Title.Set || d.Title.Null {
		return nil, invalid(ListFieldTitle, "is required")
	}
	if err := validTitle(d.Title.Value); err != nil {
		return nil, err
	}
	l := &List{Title: d.Title.Value}
	if d.Archived.Set {
		if d.Archived.Null {
			return nil, invalid(ListFieldArchived, "must not be null")
		}
		l.Archived = d.Archived.Value
	}
	return l, nil
}

// Validate checks the invariants a stored List must hold.
func (l *List) Validate() error {
	return validTitle(l.Title)
}

// Field returns the value of a named field for equality lookups.
func (l *List) Field(name string) (any, bool) {
	switch name {
	case ListFieldID:
		return l.ID, true
	case ListFieldTitle:
		return l.Title, true
	case ListFieldArchived:
		return l.Archived, true
	}
	return nil, false
}

// Apply merges a validated change set produced by ListPatch.Changes.
func (l *List) Apply(changes map[string]any) {
	if v, ok := changes[ListFieldTitle]; ok {
		l.Title = v.(string)
	}
	if v, ok := changes[ListFieldArchived]; ok {
		l.Archived = v.(bool)
	}
}

// ListPatch is a partial update of a List; only provided fields change.
type ListPatch struct {
	Title    Optional[string] `json:"title"`
	Archived Optional[bool]   `json:"archived"`
}

// Changes validates the patch and returns only the provided fields keyed by
// column name. Nothing is returned when any field is invalid.
func (p ListPatch) Changes() (map[string]any, error) {
	if p.Title.Set {
		if p.Title.Null {
			return nil, invalid(ListFieldTitle, "must not be null")
		}
		if err := validTitle(p.Title.Value); err != nil {
			return nil, err
		}
	}
	if p.Archived.Set && p.Archived.Null {
		return nil, invalid(ListFieldArchived, "must not be null")
	}
	return StripAbsent(map[string]Field{
		ListFieldTitle:    p.Title,
		ListFieldArchived: p.Archived,
	}), nil
}

func validTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return invalid("title", "must not be empty")
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return invalid("title", fmt.Sprintf("must be at most %d characters", MaxTitleLength))
	}
	return nil
}
