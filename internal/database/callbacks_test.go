package database

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// mockMetricsRecorder is a mock implementation of MetricsRecorder for testing
type mockMetricsRecorder struct {
	queries   []queryRecord
	dbStats   []sql.DBStats
	statsCall int
}

type queryRecord struct {
	operation string
	table     string
	duration  time.Duration
	err       error
}

func (m *mockMetricsRecorder) RecordDBQuery(operation, table string, duration time.Duration, err error) {
	m.queries = append(m.queries, queryRecord{
		operation: operation,
		table:     table,
		duration:  duration,
		err:       err,
	})
}

func (m *mockMetricsRecorder) UpdateDBStats(stats interface{}) {
	if dbStats, ok := stats.(sql.DBStats); ok {
		m.dbStats = append(m.dbStats, dbStats)
		m.statsCall++
	}
}

// noteModel is a minimal post-like model; string IDs keep SQLite happy
type noteModel struct {
	ID        string `gorm:"type:text;primaryKey"`
	Text      string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (noteModel) TableName() string {
	return "notes"
}

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "Failed to open test database")

	err = db.AutoMigrate(&noteModel{})
	require.NoError(t, err, "Failed to migrate test model")

	return db
}

func TestRegisterMetricsCallbacks_Query(t *testing.T) {
	db := setupTestDB(t)
	recorder := &mockMetricsRecorder{}

	RegisterMetricsCallbacks(db, recorder)

	testData := noteModel{
		ID:   uuid.New().String(),
		Text: "first post",
	}
	err := db.Create(&testData).Error
	require.NoError(t, err)

	// Clear the create record so only the query remains
	recorder.queries = nil

	var result noteModel
	err = db.First(&result).Error
	require.NoError(t, err)

	require.Len(t, recorder.queries, 1, "Expected one query to be recorded")

	query := recorder.queries[0]
	assert.Equal(t, "select", query.operation, "Operation should be 'select'")
	assert.Equal(t, "notes", query.table, "Table should be 'notes'")
	assert.Greater(t, query.duration, time.Duration(0), "Duration should be greater than 0")
	assert.NoError(t, query.err, "Query should not have error")
}

func TestRegisterMetricsCallbacks_Create(t *testing.T) {
	db := setupTestDB(t)
	recorder := &mockMetricsRecorder{}

	RegisterMetricsCallbacks(db, recorder)

	testData := noteModel{
		ID:   uuid.New().String(),
		Text: "created",
	}
	err := db.Create(&testData).Error
	require.NoError(t, err)

	require.Len(t, recorder.queries, 1, "Expected one query to be recorded")

	query := recorder.queries[0]
	assert.Equal(t, "insert", query.operation, "Operation should be 'insert'")
	assert.Equal(t, "notes", query.table, "Table should be 'notes'")
	assert.Greater(t, query.duration, time.Duration(0), "Duration should be greater than 0")
	assert.NoError(t, query.err, "Query should not have error")
}

func TestRegisterMetricsCallbacks_UpdateAndDelete(t *testing.T) {
	db := setupTestDB(t)
	recorder := &mockMetricsRecorder{}

	RegisterMetricsCallbacks(db, recorder)

	testData := noteModel{
		ID:   uuid.New().String(),
		Text: "original",
	}
	err := db.Create(&testData).Error
	require.NoError(t, err)

	recorder.queries = nil

	err = db.Model(&testData).Update("Text", "edited").Error
	require.NoError(t, err)

	err = db.Delete(&testData).Error
	require.NoError(t, err)

	require.Len(t, recorder.queries, 2, "Expected two queries to be recorded")
	assert.Equal(t, "update", recorder.queries[0].operation)
	assert.Equal(t, "delete", recorder.queries[1].operation)
	for _, query := range recorder.queries {
		assert.Equal(t, "notes", query.table)
		assert.Greater(t, query.duration, time.Duration(0))
		assert.NoError(t, query.err)
	}
}

func TestRegisterMetricsCallbacks_QueryError(t *testing.T) {
	db := setupTestDB(t)
	recorder := &mockMetricsRecorder{}

	RegisterMetricsCallbacks(db, recorder)

	// Lookup of a missing row records the error
	var result noteModel
	err := db.First(&result, "id = ?", uuid.New().String()).Error
	require.Error(t, err, "Expected query to fail")

	require.Len(t, recorder.queries, 1, "Expected one query to be recorded")

	query := recorder.queries[0]
	assert.Equal(t, "select", query.operation, "Operation should be 'select'")
	assert.Error(t, query.err, "Query should have error")
}

func TestRegisterMetricsCallbacks_CreateError(t *testing.T) {
	db := setupTestDB(t)
	recorder := &mockMetricsRecorder{}

	RegisterMetricsCallbacks(db, recorder)

	testID := uuid.New().String()
	err := db.Create(&noteModel{ID: testID, Text: "one"}).Error
	require.NoError(t, err)

	recorder.queries = nil

	// Duplicate primary key
	err = db.Create(&noteModel{ID: testID, Text: "two"}).Error
	require.Error(t, err, "Expected create to fail with duplicate ID")

	require.Len(t, recorder.queries, 1, "Expected one query to be recorded")

	query := recorder.queries[0]
	assert.Equal(t, "insert", query.operation, "Operation should be 'insert'")
	assert.Error(t, query.err, "Query should have error")
}

func TestRegisterMetricsCallbacks_Transaction(t *testing.T) {
	db := setupTestDB(t)
	recorder := &mockMetricsRecorder{}

	RegisterMetricsCallbacks(db, recorder)

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&noteModel{ID: uuid.New().String(), Text: "a"}).Error; err != nil {
			return err
		}
		return tx.Create(&noteModel{ID: uuid.New().String(), Text: "b"}).Error
	})
	require.NoError(t, err)

	insertCount := 0
	for _, query := range recorder.queries {
		if query.operation == "insert" {
			insertCount++
		}
	}
	assert.GreaterOrEqual(t, insertCount, 2, "Expected at least two insert operations")
}

func TestRegisterMetricsCallbacks_TransactionRollback(t *testing.T) {
	db := setupTestDB(t)
	recorder := &mockMetricsRecorder{}

	RegisterMetricsCallbacks(db, recorder)

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&noteModel{ID: uuid.New().String(), Text: "doomed"}).Error; err != nil {
			return err
		}
		return errors.New("forced rollback")
	})
	require.Error(t, err, "Expected transaction to fail")

	// The insert is recorded even though the transaction rolled back
	assert.GreaterOrEqual(t, len(recorder.queries), 1, "Expected at least one query to be recorded")
}

func TestStartDBStatsCollector_Shutdown(t *testing.T) {
	db := setupTestDB(t)
	recorder := &mockMetricsRecorder{}

	done := StartDBStatsCollector(db, recorder)

	time.Sleep(50 * time.Millisecond)

	close(done)

	// Passes if the goroutine exits without panic or deadlock
	time.Sleep(50 * time.Millisecond)
}
