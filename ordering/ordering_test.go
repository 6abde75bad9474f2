package ordering

import (
	"braindumpBackend/priority"
	"braindumpBackend/utils"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func identity(key Key) Key {
	return key
}

func ids(keys []Key) []string {
	return lo.Map(keys, func(key Key, _ int) string { return key.Id })
}

func TestSort(t *testing.T) {
	t1 := now.Add(-3 * time.Hour)
	t2 := now.Add(-2 * time.Hour)
	t3 := now.Add(-1 * time.Hour)

	items := []Key{
		{Id: "D", CreatedAt: t1, Score: 3, Completed: true},
		{Id: "C", CreatedAt: t2, Score: 3},
		{Id: "B", CreatedAt: t1, Score: 2},
		{Id: "A", CreatedAt: t1, Score: 3},
		{Id: "E", CreatedAt: t3, Score: 1},
	}

	Sort(items, identity)

	assert.Equal(t, []string{"A", "B", "C", "E", "D"}, ids(items))
}

func TestSort_IsDeterministic(t *testing.T) {
	items := []Key{
		{Id: "b", CreatedAt: now, Score: 2},
		{Id: "a", CreatedAt: now, Score: 2},
		{Id: "c", CreatedAt: now, Score: 2},
	}
	reversed := lo.Reverse(append([]Key{}, items...))

	Sort(items, identity)
	Sort(reversed, identity)

	assert.Equal(t, ids(items), ids(reversed))
	assert.Equal(t, []string{"a", "b", "c"}, ids(items))
}

func TestApply_Filters(t *testing.T) {
	high := priority.High
	medium := priority.Medium
	low := priority.Low

	items := []Key{
		{Id: "today", Title: "Fix the Roof", CreatedAt: now.Add(-time.Hour), Score: 2.5},
		{Id: "yesterday", Title: "buy milk", Description: "and ROOF tiles", CreatedAt: now.Add(-24 * time.Hour), Score: 1.4},
		{Id: "lastWeek", Title: "plan trip", CreatedAt: now.Add(-6 * 24 * time.Hour), Score: 2},
		{Id: "lastMonth", Title: "read book", CreatedAt: now.Add(-20 * 24 * time.Hour), Score: 1.5},
		{Id: "ancient", Title: "learn go", CreatedAt: now.Add(-90 * 24 * time.Hour), Score: 3},
	}

	testCases := []struct {
		name   string
		filter Filter
		expect []string
	}{
		{name: "no filter", filter: Filter{Window: WindowAll}, expect: []string{"ancient", "lastMonth", "lastWeek", "yesterday", "today"}},
		{name: "high bucket", filter: Filter{Priority: &high}, expect: []string{"ancient", "today"}},
		{name: "medium bucket", filter: Filter{Priority: &medium}, expect: []string{"lastMonth", "lastWeek"}},
		{name: "low bucket", filter: Filter{Priority: &low}, expect: []string{"yesterday"}},
		{name: "search title and description", filter: Filter{Search: "roof"}, expect: []string{"yesterday", "today"}},
		{name: "today", filter: Filter{Window: WindowToday}, expect: []string{"today"}},
		{name: "week", filter: Filter{Window: WindowWeek}, expect: []string{"lastWeek", "yesterday", "today"}},
		{name: "month", filter: Filter{Window: WindowMonth}, expect: []string{"lastMonth", "lastWeek", "yesterday", "today"}},
		{name: "combined", filter: Filter{Window: WindowWeek, Search: "roof", Priority: &high}, expect: []string{"today"}},
		{name: "nothing matches", filter: Filter{Search: "zebra"}, expect: []string{}},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			result := Apply(items, identity, tt.filter, now)
			assert.Equal(t, tt.expect, ids(result))
		})
	}

	assert.Equal(t, "today", items[0].Id, "input slice must not be reordered")
}

func TestDateWindow_TodayUsesCalendarDay(t *testing.T) {
	midnight := time.Date(2026, 3, 15, 0, 0, 1, 0, time.UTC)
	lateYesterday := time.Date(2026, 3, 14, 23, 59, 59, 0, time.UTC)

	assert.True(t, WindowToday.Contains(midnight, now))
	assert.False(t, WindowToday.Contains(lateYesterday, now))
}

func TestParseDateWindow(t *testing.T) {
	for _, value := range []string{"", "all", "today", "week", "month"} {
		_, err := ParseDateWindow(value)
		require.NoError(t, err, value)
	}

	_, err := ParseDateWindow("year")
	assert.ErrorIs(t, err, utils.ErrValidationError)
}
