package database

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDBName = "tattlestoolie_db"

func newMockDB(t *testing.T) (sqlmock.Sqlmock, func(context.Context) (MigrationReport, error)) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return mock, func(ctx context.Context) (MigrationReport, error) {
		return EnsureSchema(ctx, db, testDBName)
	}
}

func expectTableCreation(mock sqlmock.Sqlmock) {
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS tips").
		WillReturnResult(sqlmock.NewResult(0, 0))
}

func expectLegacyIDProbe(mock sqlmock.Sqlmock, cols ...string) {
	rows := sqlmock.NewRows([]string{"COLUMN_NAME"})
	for _, c := range cols {
		rows.AddRow(c)
	}
	mock.ExpectQuery("SELECT COLUMN_NAME FROM INFORMATION_SCHEMA.COLUMNS").
		WithArgs(testDBName).
		WillReturnRows(rows)
}

func expectTypeProbe(mock sqlmock.Sqlmock, dataType string) {
	mock.ExpectQuery("SELECT DATA_TYPE FROM INFORMATION_SCHEMA.COLUMNS").
		WithArgs(testDBName).
		WillReturnRows(sqlmock.NewRows([]string{"DATA_TYPE"}).AddRow(dataType))
}

func expectMaxLenProbe(mock sqlmock.Sqlmock, maxLen any) {
	mock.ExpectQuery(regexp.QuoteMeta("SELECT MAX(CHAR_LENGTH(description)) FROM tips")).
		WillReturnRows(sqlmock.NewRows([]string{"maxlen"}).AddRow(maxLen))
}

func TestEnsureSchemaNarrowsLegacyDescription(t *testing.T) {
	mock, ensure := newMockDB(t)

	expectTableCreation(mock)
	expectLegacyIDProbe(mock, "id")
	expectTypeProbe(mock, "text")
	expectMaxLenProbe(mock, 480)
	mock.ExpectExec(regexp.QuoteMeta("ALTER TABLE tips MODIFY description VARCHAR(500)")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	rep, err := ensure(context.Background())
	require.NoError(t, err)
	assert.True(t, rep.DescriptionNarrowed)
	assert.False(t, rep.NarrowingSkipped)
	assert.NoError(t, rep.ProbeErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchemaSkipsNarrowingWhenRowsTooLong(t *testing.T) {
	mock, ensure := newMockDB(t)

	expectTableCreation(mock)
	expectLegacyIDProbe(mock, "id")
	expectTypeProbe(mock, "text")
	expectMaxLenProbe(mock, 600)
	// No ALTER expected: narrowing would truncate existing data.

	rep, err := ensure(context.Background())
	require.NoError(t, err)
	assert.False(t, rep.DescriptionNarrowed)
	assert.True(t, rep.NarrowingSkipped)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchemaNarrowsEmptyTable(t *testing.T) {
	mock, ensure := newMockDB(t)

	expectTableCreation(mock)
	expectLegacyIDProbe(mock, "id")
	expectTypeProbe(mock, "TEXT")
	expectMaxLenProbe(mock, nil) // MAX over zero rows is NULL
	mock.ExpectExec("ALTER TABLE tips MODIFY description").
		WillReturnResult(sqlmock.NewResult(0, 0))

	rep, err := ensure(context.Background())
	require.NoError(t, err)
	assert.True(t, rep.DescriptionNarrowed)
}

func TestEnsureSchemaLeavesBoundedColumnAlone(t *testing.T) {
	mock, ensure := newMockDB(t)

	expectTableCreation(mock)
	expectLegacyIDProbe(mock, "id")
	expectTypeProbe(mock, "varchar")

	rep, err := ensure(context.Background())
	require.NoError(t, err)
	assert.False(t, rep.DescriptionNarrowed)
	assert.False(t, rep.NarrowingSkipped)
	assert.NoError(t, rep.ProbeErr)
}

func TestEnsureSchemaReportsLegacyIDColumn(t *testing.T) {
	mock, ensure := newMockDB(t)

	expectTableCreation(mock)
	expectLegacyIDProbe(mock, "tips_ID")
	expectTypeProbe(mock, "varchar")

	rep, err := ensure(context.Background())
	require.NoError(t, err)
	assert.True(t, rep.LegacyIDColumn)
	assert.NoError(t, rep.ProbeErr, "detection is not a failure")
	assert.NoError(t, mock.ExpectationsWereMet(), "the probe drives no ALTER")
}

func TestEnsureSchemaCurrentIDColumnNotFlagged(t *testing.T) {
	mock, ensure := newMockDB(t)

	expectTableCreation(mock)
	expectLegacyIDProbe(mock, "id")
	expectTypeProbe(mock, "varchar")

	rep, err := ensure(context.Background())
	require.NoError(t, err)
	assert.False(t, rep.LegacyIDColumn)
}

func TestEnsureSchemaSwallowsLegacyProbeFailure(t *testing.T) {
	mock, ensure := newMockDB(t)
	boom := errors.New("catalog unavailable")

	expectTableCreation(mock)
	mock.ExpectQuery("SELECT COLUMN_NAME FROM INFORMATION_SCHEMA.COLUMNS").
		WillReturnError(boom)
	// Narrowing still runs after the failed legacy probe.
	expectTypeProbe(mock, "text")
	expectMaxLenProbe(mock, 100)
	mock.ExpectExec("ALTER TABLE tips MODIFY description").
		WillReturnResult(sqlmock.NewResult(0, 0))

	rep, err := ensure(context.Background())
	require.NoError(t, err)
	assert.ErrorIs(t, rep.ProbeErr, boom)
	assert.True(t, rep.DescriptionNarrowed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchemaSwallowsProbeFailure(t *testing.T) {
	mock, ensure := newMockDB(t)
	boom := errors.New("catalog unavailable")

	expectTableCreation(mock)
	expectLegacyIDProbe(mock, "id")
	mock.ExpectQuery("SELECT DATA_TYPE FROM INFORMATION_SCHEMA.COLUMNS").
		WillReturnError(boom)

	rep, err := ensure(context.Background())
	require.NoError(t, err, "probe failure must not fail EnsureSchema")
	assert.ErrorIs(t, rep.ProbeErr, boom)
}

func TestEnsureSchemaSwallowsAlterFailure(t *testing.T) {
	mock, ensure := newMockDB(t)
	boom := errors.New("alter denied")

	expectTableCreation(mock)
	expectLegacyIDProbe(mock, "id")
	expectTypeProbe(mock, "text")
	expectMaxLenProbe(mock, 100)
	mock.ExpectExec("ALTER TABLE tips MODIFY description").WillReturnError(boom)

	rep, err := ensure(context.Background())
	require.NoError(t, err)
	assert.ErrorIs(t, rep.ProbeErr, boom)
	assert.False(t, rep.DescriptionNarrowed)
}

func TestEnsureSchemaCreateFailureIsFatal(t *testing.T) {
	mock, ensure := newMockDB(t)
	boom := errors.New("access denied")

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").WillReturnError(boom)

	_, err := ensure(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestEnsureSchemaIsIdempotent(t *testing.T) {
	mock, ensure := newMockDB(t)

	for i := 0; i < 2; i++ {
		expectTableCreation(mock)
		expectLegacyIDProbe(mock, "id")
		expectTypeProbe(mock, "varchar")
	}

	_, err := ensure(context.Background())
	require.NoError(t, err)
	_, err = ensure(context.Background())
	require.NoError(t, err, "second run must not error")
	assert.NoError(t, mock.ExpectationsWereMet())
}
