package repository

import (
	"context"
	"os"
	"path/filepath"
	"storemon/internal/models"
	"storemon/internal/structures"
	"storemon/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSeedFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadSeedData_AllThreeFiles(t *testing.T) {
	dir := t.TempDir()
	conf := structures.SeedConfig{
		StatusFile: writeSeedFile(t, dir, "status.csv",
			"store_id,timestamp_utc,status\n"+
				"s1,2023-01-25 10:05:00.123456 UTC,active\n"+
				"s1,2023-01-25 11:05:00 UTC,inactive\n"),
		HoursFile: writeSeedFile(t, dir, "hours.csv",
			"store_id,dayOfWeek,start_time_local,end_time_local\n"+
				"s1,0,09:00:00,17:00:00\n"),
		TimezonesFile: writeSeedFile(t, dir, "tz.csv",
			"store_id,timezone_str\n"+
				"s1,America/Denver\n"),
	}
	data := NewMemoryData()
	logger := &testutil.MockLogger{}

	require.NoError(t, LoadSeedData(data, conf, logger))

	obs, err := data.Range(context.Background(),
		"s1",
		time.Date(2023, 1, 25, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 1, 26, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, obs, 2)
	assert.Equal(t, models.StatusActive, obs[0].Status)
	assert.Equal(t, time.Date(2023, 1, 25, 10, 5, 0, 123456000, time.UTC), obs[0].Timestamp)

	sched, err := data.Schedule(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, sched, 1)
	assert.Equal(t, 9, sched[0].Start.Hour)
	assert.Equal(t, 17, sched[0].End.Hour)

	tz, err := data.Timezone(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "America/Denver", tz)
}

func TestLoadSeedData_MalformedRowsSkippedWithWarning(t *testing.T) {
	dir := t.TempDir()
	conf := structures.SeedConfig{
		StatusFile: writeSeedFile(t, dir, "status.csv",
			"store_id,timestamp_utc,status\n"+
				"s1,not-a-timestamp,active\n"+
				"s1,2023-01-25 10:05:00 UTC,sideways\n"+
				"s1,2023-01-25 10:05:00 UTC,active\n"),
	}
	data := NewMemoryData()
	logger := &testutil.MockLogger{}

	require.NoError(t, LoadSeedData(data, conf, logger))

	ids, err := data.StoreIDs(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"s1"}, ids)
	obs, err := data.Range(context.Background(), "s1",
		time.Date(2023, 1, 25, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 1, 26, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, obs, 1)
	assert.Equal(t, 2, logger.CountOf("warn"))
}

func TestLoadSeedData_HoursDayOutOfRangeSkipped(t *testing.T) {
	dir := t.TempDir()
	conf := structures.SeedConfig{
		HoursFile: writeSeedFile(t, dir, "hours.csv",
			"store_id,dayOfWeek,start_time_local,end_time_local\n"+
				"s1,7,09:00:00,17:00:00\n"),
	}
	data := NewMemoryData()
	logger := &testutil.MockLogger{}

	require.NoError(t, LoadSeedData(data, conf, logger))

	sched, err := data.Schedule(context.Background(), "s1")
	require.NoError(t, err)
	assert.Nil(t, sched)
	assert.Equal(t, 1, logger.CountOf("warn"))
}

func TestLoadSeedData_MissingPathsSkipped(t *testing.T) {
	data := NewMemoryData()
	assert.NoError(t, LoadSeedData(data, structures.SeedConfig{}, &testutil.MockLogger{}))
}

func TestLoadSeedData_AbsentFileIsError(t *testing.T) {
	conf := structures.SeedConfig{StatusFile: filepath.Join(t.TempDir(), "missing.csv")}
	assert.Error(t, LoadSeedData(NewMemoryData(), conf, &testutil.MockLogger{}))
}

func TestParseSeedTime_Layouts(t *testing.T) {
	cases := []string{
		"2023-01-24 09:06:42.605777 UTC",
		"2023-01-24 09:06:42 UTC",
		"2023-01-24T09:06:42Z",
	}
	for _, s := range cases {
		ts, err := parseSeedTime(s)
		require.NoError(t, err, s)
		assert.Equal(t, time.UTC, ts.Location())
	}

	_, err := parseSeedTime("24/01/2023 09:06")
	assert.Error(t, err)
}

func TestNewSet_MemoryFallback(t *testing.T) {
	conf := &structures.Config{}
	set, err := NewSet(conf, nil, &testutil.MockLogger{})
	require.NoError(t, err)
	require.NotNil(t, set)
	assert.NotNil(t, set.Observations)
	assert.NotNil(t, set.Hours)
	assert.NotNil(t, set.Zones)
}
