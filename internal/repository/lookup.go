package repository

import (
	"iter"
)

// FindIn returns the first item of items matching f, with its position.
// It fails with a *NotFoundError naming entity when nothing matches.
func FindIn[T Record](items []T, entity string, f Filter) (int, T, error) {
	i, item, ok := IndexOf(items, f)
	if !ok {
		return -1, item, notFound(entity, f)
	}
	return i, item, nil
}

// IndexOf is FindIn for lookups where absence is expected: it reports ok=false
// instead of failing.
func IndexOf[T Record](items []T, f Filter) (int, T, bool) {
	for i, item := range items {
		if f.Match(item) {
			return i, item, true
		}
	}
	var zero T
	return -1, zero, false
}

// Query lazily yields every item of items matching f, in slice order.
func Query[T Record](items []T, f Filter) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range items {
			if f.Match(item) && !yield(item) {
				return
			}
		}
	}
}

// FindOne returns the first record produced by seq, or a *NotFoundError
// naming entity and f. seq is expected to already be filtered by f.
func FindOne[T any](seq iter.Seq2[T, error], entity string, f Filter) (T, error) {
	item, ok, err := FindOneOrNone(seq)
	if err != nil {
		return item, err
	}
	if !ok {
		return item, notFound(entity, f)
	}
	return item, nil
}

// FindOneOrNone returns the first record produced by seq and whether there was one.
func FindOneOrNone[T any](seq iter.Seq2[T, error]) (T, bool, error) {
	var zero T
	for item, err := range seq {
		if err != nil {
			return zero, false, err
		}
		return item, true, nil
	}
	return zero, false, nil
}

// Collect drains seq into a slice, stopping at the first error.
func Collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	out := []T{}
	for item, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}
