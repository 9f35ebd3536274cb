package service_test

import (
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/realbLanK993/water/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDiskIO = errors.New("disk I/O error")

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestAddIntakeLogWriteRejected(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectExec(`INSERT INTO intake_logs`).WillReturnError(errDiskIO)

	_, err := service.AddIntakeLog(db, service.AddIntakeLogInput{Glasses: 2, QuantityPerGlassMl: 250})
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrWriteFailed)
	assert.ErrorIs(t, err, errDiskIO)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddIntakeLogSettingsReadFails(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT glass_size_ml`).WillReturnError(errDiskIO)

	_, err := service.AddIntakeLog(db, service.AddIntakeLogInput{Glasses: 1})
	assert.ErrorIs(t, err, service.ErrReadFailed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSettingsRollsBackOnWriteFailure(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT glass_size_ml`).
		WillReturnRows(sqlmock.NewRows([]string{"glass_size_ml", "daily_goal_ml", "monthly_goal_ml", "notifications_enabled", "reminder_interval_minutes"}).
			AddRow(300, 2500, 70000, true, 30))
	mock.ExpectExec(`INSERT INTO settings`).
		WithArgs(300, 3000, 70000, true, 30).
		WillReturnError(errDiskIO)
	mock.ExpectRollback()

	err := service.UpdateSettings(db, service.SettingsPatch{DailyGoalMl: intPtr(3000)})
	assert.ErrorIs(t, err, service.ErrWriteFailed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSettingsValidatesBeforeTouchingStore(t *testing.T) {
	db, mock := setupMockDB(t)

	err := service.UpdateSettings(db, service.SettingsPatch{GlassSizeMl: intPtr(0)})
	assert.ErrorIs(t, err, service.ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateLogNotFoundRollsBack(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, date, timestamp, quantity_ml, glasses FROM intake_logs WHERE id = ?`)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "date", "timestamp", "quantity_ml", "glasses"}))
	mock.ExpectRollback()

	err := service.UpdateLog(db, 7, service.IntakeLogPatch{Glasses: intPtr(2)})
	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClearAllDataIsAtomic(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM intake_logs`).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM settings`).WillReturnError(errDiskIO)
	mock.ExpectRollback()

	err := service.ClearAllData(db)
	assert.ErrorIs(t, err, service.ErrWriteFailed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLastIntakeTimeReadFailure(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT timestamp FROM intake_logs`).WillReturnError(errDiskIO)

	_, ok, err := service.GetLastIntakeTime(db)
	assert.False(t, ok)
	assert.ErrorIs(t, err, service.ErrReadFailed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
