package repository

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/gurkanbulca/doapi/internal/models"
)

// Filter is a conjunction of exact-equality constraints keyed by field name.
// A nil value matches a missing (NULL) field. The empty filter matches everything.
type Filter map[string]any

// ByID matches the record with the given id.
func ByID(id int64) Filter {
	return Filter{"id": id}
}

// ByListID matches the tasks owned by a list.
func ByListID(listID int64) Filter {
	return Filter{models.TaskFieldListID: listID}
}

// Record is anything that exposes named fields to a Filter.
type Record interface {
	Field(name string) (any, bool)
}

// Keys returns the filter's field names in a stable order.
func (f Filter) Keys() []string {
	return slices.Sorted(maps.Keys(f))
}

// Validate rejects fields that are not in known.
func (f Filter) Validate(known []string) error {
	for _, k := range f.Keys() {
		if !slices.Contains(known, k) {
			return fmt.Errorf("%w: %q is not a valid lookup key", ErrInvalidFilter, k)
		}
		if u, ok := f[k].(uint64); ok && u > math.MaxInt64 {
			return fmt.Errorf("%w: %q value %d overflows int64", ErrInvalidFilter, k, u)
		}
	}
	return nil
}

// Match reports whether every constraint in f holds for r.
func (f Filter) Match(r Record) bool {
	for k, want := range f {
		got, ok := r.Field(k)
		if !ok || !equalValues(got, want) {
			return false
		}
	}
	return true
}

func (f Filter) String() string {
	parts := make([]string, 0, len(f))
	for _, k := range f.Keys() {
		parts = append(parts, fmt.Sprintf("%s=%v", k, canonical(f[k])))
	}
	return strings.Join(parts, " ")
}

// canonical folds the integer kinds to int64 and timestamps to the stored
// precision so that in-memory and SQL comparisons agree.
func canonical(v any) any {
	switch x := v.(type) {
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case uint:
		return int64(x)
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		if x > math.MaxInt64 {
			return x
		}
		return int64(x)
	case *int64:
		if x == nil {
			return nil
		}
		return *x
	case time.Time:
		return models.NormalizeTime(x)
	case *time.Time:
		if x == nil {
			return nil
		}
		return models.NormalizeTime(*x)
	}
	return v
}

func equalValues(a, b any) bool {
	a, b = canonical(a), canonical(b)
	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		return ok && ta.Equal(tb)
	}
	return a == b
}
