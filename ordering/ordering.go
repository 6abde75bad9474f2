// Package ordering filters and sorts the items of a collection for display.
package ordering

import (
	"braindumpBackend/priority"
	"braindumpBackend/utils"
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"
)

type (
	// Key carries the attributes of an item that filtering and sorting look at.
	Key struct {
		Id          string
		Title       string
		Description string
		Completed   bool
		CreatedAt   time.Time
		Score       float64
	}

	Filter struct {
		// Priority restricts to items whose rounded consensus score equals the bucket
		Priority *priority.Priority
		// Search is matched case-insensitively against title and description
		Search string
		Window DateWindow
	}

	DateWindow string
)

const (
	WindowAll   DateWindow = "all"
	WindowToday DateWindow = "today"
	WindowWeek  DateWindow = "week"
	WindowMonth DateWindow = "month"
)

func ParseDateWindow(value string) (DateWindow, error) {
	switch DateWindow(value) {
	case "", WindowAll:
		return WindowAll, nil
	case WindowToday, WindowWeek, WindowMonth:
		return DateWindow(value), nil
	}
	return "", fmt.Errorf("%w: unknown date filter %q", utils.ErrValidationError, value)
}

// Contains reports whether a creation time falls into the window relative to now.
func (w DateWindow) Contains(createdAt time.Time, now time.Time) bool {
	switch w {
	case WindowToday:
		y1, m1, d1 := createdAt.In(now.Location()).Date()
		y2, m2, d2 := now.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	case WindowWeek:
		return !createdAt.Before(now.Add(-7 * 24 * time.Hour))
	case WindowMonth:
		return !createdAt.Before(now.Add(-30 * 24 * time.Hour))
	}
	return true
}

func (f Filter) Matches(key Key, now time.Time) bool {
	if f.Priority != nil && priority.LabelFor(key.Score) != *f.Priority {
		return false
	}

	if search := strings.ToLower(strings.TrimSpace(f.Search)); search != "" {
		if !strings.Contains(strings.ToLower(key.Title), search) &&
			!strings.Contains(strings.ToLower(key.Description), search) {
			return false
		}
	}

	return f.Window.Contains(key.CreatedAt, now)
}

// Compare orders incomplete items first, then older items first, then higher scores first.
// The id breaks remaining ties so the order is total.
func Compare(a Key, b Key) int {
	if a.Completed != b.Completed {
		if a.Completed {
			return 1
		}
		return -1
	}
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Score, a.Score); c != 0 {
		return c
	}
	return strings.Compare(a.Id, b.Id)
}

// Sort orders items in place.
func Sort[T any](items []T, keyOf func(T) Key) {
	slices.SortStableFunc(items, func(a T, b T) int {
		return Compare(keyOf(a), keyOf(b))
	})
}

// Apply filters then sorts, returning a new slice.
func Apply[T any](items []T, keyOf func(T) Key, filter Filter, now time.Time) []T {
	result := lo.Filter(items, func(item T, _ int) bool {
		return filter.Matches(keyOf(item), now)
	})
	Sort(result, keyOf)
	return result
}
