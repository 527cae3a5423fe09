package models

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseWeekday(t *testing.T) {
	day, ok := ParseWeekday("WED")
	assert.True(t, ok)
	assert.Equal(t, Wednesday, day)

	_, ok = ParseWeekday("wed")
	assert.False(t, ok)
	_, ok = ParseWeekday("")
	assert.False(t, ok)
}

func TestWeekdayOf(t *testing.T) {
	// 2024-03-04 is a Monday.
	monday := time.Date(2024, time.March, 4, 12, 0, 0, 0, time.UTC)
	for i, want := range Weekdays {
		assert.Equal(t, want, WeekdayOf(monday.AddDate(0, 0, i)))
	}
	assert.Equal(t, Tuesday, WeekdayOf(time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)))
}

func TestWeekdayOrder(t *testing.T) {
	assert.Equal(t, 0, Monday.Order())
	assert.Equal(t, 6, Sunday.Order())
	assert.Equal(t, -1, Weekday("XYZ").Order())
	assert.Equal(t, "Thursday", Thursday.Label())
}

func TestWeekdayOrderSQL(t *testing.T) {
	assert.Equal(t,
		"CASE day WHEN 'MON' THEN 0 WHEN 'TUE' THEN 1 WHEN 'WED' THEN 2 WHEN 'THU' THEN 3 WHEN 'FRI' THEN 4 WHEN 'SAT' THEN 5 WHEN 'SUN' THEN 6 END",
		WeekdayOrderSQL("day"))
}

func TestParseSessionType(t *testing.T) {
	for _, raw := range []string{"LECTURE", "LAB", "TUTORIAL", "SEMINAR"} {
		_, ok := ParseSessionType(raw)
		assert.True(t, ok, raw)
	}
	_, ok := ParseSessionType("INVALID")
	assert.False(t, ok)
	assert.Equal(t, "Laboratory", SessionLab.Label())
}

func TestParseTimeOfDay(t *testing.T) {
	cases := map[string]string{
		"09:00":    "09:00:00",
		"09:00:30": "09:00:30",
		" 17:45 ":  "17:45:00",
	}
	for in, want := range cases {
		got, ok := ParseTimeOfDay(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got)
	}
	for _, bad := range []string{"", "9am", "25:00", "12:61"} {
		_, ok := ParseTimeOfDay(bad)
		assert.False(t, ok, bad)
	}
}

func TestClassSessionBeforeUsesWeekdayOrder(t *testing.T) {
	sessions := []ClassSession{
		{ID: "tue", Day: Tuesday, StartTime: "08:00:00"},
		{ID: "sun", Day: Sunday, StartTime: "07:00:00"},
		{ID: "mon-9", Day: Monday, StartTime: "09:00:00"},
		{ID: "fri", Day: Friday, StartTime: "08:00:00"},
		{ID: "mon-8", Day: Monday, StartTime: "08:00:00"},
	}
	sort.SliceStable(sessions, func(i, j int) bool { return sessions[i].Before(sessions[j]) })

	var ids []string
	for _, s := range sessions {
		ids = append(ids, s.ID)
	}
	// Alphabetical ordering would put FRI first.
	assert.Equal(t, []string{"mon-8", "mon-9", "tue", "fri", "sun"}, ids)
}
