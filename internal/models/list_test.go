package models

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewList(t *testing.T) {
	tests := []struct {
		name      string
		draft     ListDraft
		want      *List
		wantField string
	}{
		{
			name:  "title only",
			draft: ListDraft{Title: Some("Shopping")},
			want:  &List{Title: "Shopping"},
		},
		{
			name:  "archived",
			draft: ListDraft{Title: Some("Old"), Archived: Some(true)},
			want:  &List{Title: "Old", Archived: true},
		},
		{
			name:      "missing title",
			draft:     ListDraft{},
			wantField: ListFieldTitle,
		},
		{
			name:      "null title",
			draft:     ListDraft{Title: Null[string]()},
			wantField: ListFieldTitle,
		},
		{
			name:      "blank title",
			draft:     ListDraft{Title: Some("   ")},
			wantField: ListFieldTitle,
		},
		{
			name:      "title too long",
			draft:     ListDraft{Title: Some(strings.Repeat("a", MaxTitleLength+1))},
			wantField: ListFieldTitle,
		},
		{
			name:      "null archived",
			draft:     ListDraft{Title: Some("Shopping"), Archived: Null[bool]()},
			wantField: ListFieldArchived,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewList(tt.draft)
			if tt.wantField != "" {
				require.ErrorIs(t, err, ErrValidation)
				var verr *ValidationError
				require.True(t, errors.As(err, &verr))
				assert.Equal(t, tt.wantField, verr.Field)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewList_TitleAtLimit(t *testing.T) {
	title := strings.Repeat("é", MaxTitleLength)
	l, err := NewList(ListDraft{Title: Some(title)})
	require.NoError(t, err)
	assert.Equal(t, title, l.Title)
}

func TestListPatch_Changes(t *testing.T) {
	changes, err := ListPatch{Archived: Some(true)}.Changes()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{ListFieldArchived: true}, changes)

	changes, err = ListPatch{}.Changes()
	require.NoError(t, err)
	assert.Empty(t, changes)

	_, err = ListPatch{Title: Null[string](), Archived: Some(true)}.Changes()
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ListPatch{Title: Some("")}.Changes()
	assert.ErrorIs(t, err, ErrValidation)
}

func TestList_Apply(t *testing.T) {
	l := &List{ID: 4, Title: "Shopping"}
	l.Apply(map[string]any{ListFieldArchived: true})
	assert.Equal(t, &List{ID: 4, Title: "Shopping", Archived: true}, l)

	l.Apply(map[string]any{ListFieldTitle: "Groceries"})
	assert.Equal(t, &List{ID: 4, Title: "Groceries", Archived: true}, l)
}

func TestList_Field(t *testing.T) {
	l := &List{ID: 2, Title: "Work", Archived: true}

	v, ok := l.Field(ListFieldID)
	assert.True(t, ok)
	assert.Equal(t, int64(2), v)

	v, ok = l.Field(ListFieldArchived)
	assert.True(t, ok)
	assert.Equal(t, true, v)

	_, ok = l.Field("tasks")
	assert.False(t, ok)
}
