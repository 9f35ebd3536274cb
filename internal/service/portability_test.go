package service_test

import (
	"testing"
	"time"

	"github.com/realbLanK993/water/internal/model"
	"github.com/realbLanK993/water/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportImportReplace(t *testing.T) {
	src := newTestDB(t)
	defer src.Close()

	require.NoError(t, service.UpdateSettings(src, service.SettingsPatch{DailyGoalMl: intPtr(2500)}))
	at := time.Date(2024, 4, 2, 7, 15, 0, 123_000_000, time.Local)
	logAt(t, src, at, 3, 250)
	logAt(t, src, at.Add(2*time.Hour), 1, 300)

	data, err := service.ExportDataSnapshot(src)
	require.NoError(t, err)
	require.NotNil(t, data.Settings)
	require.Len(t, data.Logs, 2)
	assert.Equal(t, "2024-04-02", data.Logs[0].Date)
	assert.Equal(t, 750, data.Logs[0].QuantityMl)

	dst := newTestDB(t)
	defer dst.Close()
	logAt(t, dst, at.AddDate(0, 0, -10), 1, 250)

	report, err := service.ImportDataSnapshot(dst, *data, service.ImportModeReplace, false)
	require.NoError(t, err)
	assert.Equal(t, 2, report.LogsImported)
	assert.True(t, report.SettingsImported)

	logs, err := service.GetAllLogs(dst)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, at.UnixMilli(), logs[0].Timestamp.UnixMilli())

	settings, err := service.GetSettings(dst)
	require.NoError(t, err)
	assert.Equal(t, 2500, settings.DailyGoalMl)
}

func TestImportAppendKeepsExistingLogs(t *testing.T) {
	sqldb := newTestDB(t)
	defer sqldb.Close()

	logAt(t, sqldb, time.Date(2024, 4, 1, 9, 0, 0, 0, time.Local), 1, 250)
	data := service.ExportData{Logs: []service.ExportLog{{
		Date:       "2024-04-02",
		Timestamp:  time.Date(2024, 4, 2, 9, 0, 0, 0, time.Local).Format(service.TimestampLayout),
		QuantityMl: 500,
		Glasses:    2,
	}}}

	report, err := service.ImportDataSnapshot(sqldb, data, service.ImportModeAppend, false)
	require.NoError(t, err)
	assert.False(t, report.SettingsImported)

	logs, err := service.GetAllLogs(sqldb)
	require.NoError(t, err)
	assert.Len(t, logs, 2)
}

func TestImportDryRunWritesNothing(t *testing.T) {
	sqldb := newTestDB(t)
	defer sqldb.Close()

	settings := model.DefaultSettings()
	settings.GlassSizeMl = 330
	data := service.ExportData{
		Settings: &settings,
		Logs: []service.ExportLog{{
			Date:       "2024-04-02",
			Timestamp:  "2024-04-02T09:00:00.000Z",
			QuantityMl: 330,
			Glasses:    1,
		}},
	}

	report, err := service.ImportDataSnapshot(sqldb, data, service.ImportModeReplace, true)
	require.NoError(t, err)
	assert.True(t, report.DryRun)
	assert.Equal(t, 1, report.LogsImported)

	logs, err := service.GetAllLogs(sqldb)
	require.NoError(t, err)
	assert.Empty(t, logs)
	got, err := service.GetSettings(sqldb)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultGlassSizeMl, got.GlassSizeMl)
}

func TestImportRejectsInvalidLogs(t *testing.T) {
	sqldb := newTestDB(t)
	defer sqldb.Close()

	data := service.ExportData{Logs: []service.ExportLog{{
		Date:       "2024-04-02",
		Timestamp:  "2024-04-02T09:00:00.000Z",
		QuantityMl: 1250,
		Glasses:    5,
	}}}
	_, err := service.ImportDataSnapshot(sqldb, data, service.ImportModeAppend, false)
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = service.ParseImportMode("merge")
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestImportRejectsPaddedDates(t *testing.T) {
	sqldb := newTestDB(t)
	defer sqldb.Close()

	data := service.ExportData{Logs: []service.ExportLog{{
		Date:       "2024-04-02 ",
		Timestamp:  "2024-04-02T09:00:00.000Z",
		QuantityMl: 250,
		Glasses:    1,
	}}}
	_, err := service.ImportDataSnapshot(sqldb, data, service.ImportModeAppend, false)
	assert.ErrorIs(t, err, service.ErrValidation)

	logs, err := service.GetAllLogs(sqldb)
	require.NoError(t, err)
	assert.Empty(t, logs)
}
