package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("active")
	require.NoError(t, err)
	assert.Equal(t, StatusActive, s)

	s, err = ParseStatus("inactive")
	require.NoError(t, err)
	assert.Equal(t, StatusInactive, s)

	_, err = ParseStatus("ACTIVE")
	assert.Error(t, err)
	_, err = ParseStatus("")
	assert.Error(t, err)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "active", StatusActive.String())
	assert.Equal(t, "inactive", StatusInactive.String())
}

func TestParseLocalTime(t *testing.T) {
	lt, err := ParseLocalTime("09:30:15")
	require.NoError(t, err)
	assert.Equal(t, LocalTime{Hour: 9, Minute: 30, Second: 15}, lt)

	lt, err = ParseLocalTime("23:45")
	require.NoError(t, err)
	assert.Equal(t, LocalTime{Hour: 23, Minute: 45}, lt)

	_, err = ParseLocalTime("25:00:00")
	assert.Error(t, err)
	_, err = ParseLocalTime("half past nine")
	assert.Error(t, err)
}

func TestLocalTimeBefore(t *testing.T) {
	assert.True(t, LocalTime{Hour: 9}.Before(LocalTime{Hour: 10}))
	assert.True(t, LocalTime{Hour: 9, Minute: 15}.Before(LocalTime{Hour: 9, Minute: 30}))
	assert.True(t, LocalTime{Hour: 9, Minute: 15, Second: 1}.Before(LocalTime{Hour: 9, Minute: 15, Second: 2}))
	assert.False(t, LocalTime{Hour: 9}.Before(LocalTime{Hour: 9}))
	assert.False(t, LocalTime{Hour: 10}.Before(LocalTime{Hour: 9, Minute: 59}))
}

func TestLocalTimeString(t *testing.T) {
	assert.Equal(t, "09:05:00", LocalTime{Hour: 9, Minute: 5}.String())
}

func TestHoursRangeOvernight(t *testing.T) {
	assert.False(t, HoursRange{Start: LocalTime{Hour: 9}, End: LocalTime{Hour: 17}}.Overnight())
	assert.True(t, HoursRange{Start: LocalTime{Hour: 22}, End: LocalTime{Hour: 2}}.Overnight())
	assert.False(t, HoursRange{Start: LocalTime{Hour: 0}, End: LocalTime{Hour: 0}}.Overnight())
}

func TestDayOfWeek_MondayBased(t *testing.T) {
	// 2024-01-08 is a Monday.
	assert.Equal(t, 0, DayOfWeek(time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, 5, DayOfWeek(time.Date(2024, 1, 13, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, 6, DayOfWeek(time.Date(2024, 1, 14, 12, 0, 0, 0, time.UTC)))
}

func TestReportJobTerminal(t *testing.T) {
	assert.False(t, ReportJob{Status: ReportRunning}.Terminal())
	assert.True(t, ReportJob{Status: ReportComplete}.Terminal())
	assert.True(t, ReportJob{Status: ReportFailed}.Terminal())
}
