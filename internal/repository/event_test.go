package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/beatbookhq/beatbook/internal/domain"
	"github.com/beatbookhq/beatbook/internal/model"
	"github.com/beatbookhq/beatbook/internal/policy"
	"github.com/beatbookhq/beatbook/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 conn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func eventRows(events ...model.Event) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "organization_id", "officer_id", "officer_name",
		"start_time", "notes", "status", "created_at", "updated_at",
	})
	for _, e := range events {
		rows.AddRow(e.ID, e.OrganizationID, e.OfficerID, e.OfficerName,
			e.StartTime, e.Notes, e.Status, e.CreatedAt, e.UpdatedAt)
	}
	return rows
}

func TestEventFindPaginated(t *testing.T) {
	orgID := uuid.New()
	officerID := uuid.New()

	t.Run("owner scope constrains both count and page", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewEventRepository(db)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "events" WHERE organization_id = \$1 AND officer_id = \$2`).
			WithArgs(orgID, officerID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(120))

		mock.ExpectQuery(`SELECT \* FROM "events" WHERE organization_id = \$1 AND officer_id = \$2 ORDER BY start_time DESC LIMIT \$3`).
			WithArgs(orgID, officerID, 50).
			WillReturnRows(eventRows(
				model.Event{ID: uuid.New(), OrganizationID: orgID, OfficerID: officerID, Status: model.EventDraft, StartTime: time.Now()},
				model.Event{ID: uuid.New(), OrganizationID: orgID, OfficerID: officerID, Status: model.EventSubmitted, StartTime: time.Now()},
			))

		mock.ExpectQuery(`SELECT \* FROM "event_tags"`).
			WillReturnRows(sqlmock.NewRows([]string{"event_id", "tag_id"}))

		events, total, err := repo.FindPaginated(context.Background(), policy.FilterSpec{
			OrganizationID: orgID,
			OwnerID:        &officerID,
			Page:           1,
			Limit:          50,
		})

		require.NoError(t, err)
		assert.Equal(t, int64(120), total)
		assert.Len(t, events, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("admin default scope adds the own-drafts OR clause", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewEventRepository(db)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "events" WHERE organization_id = \$1 AND \(\(officer_id = \$2 AND status = \$3\) OR status = \$4\)`).
			WithArgs(orgID, officerID, string(model.EventDraft), string(model.EventSubmitted)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		mock.ExpectQuery(`SELECT \* FROM "events" WHERE organization_id = \$1 AND \(\(officer_id = \$2 AND status = \$3\) OR status = \$4\) ORDER BY start_time DESC LIMIT \$5`).
			WithArgs(orgID, officerID, string(model.EventDraft), string(model.EventSubmitted), 50).
			WillReturnRows(eventRows())

		events, total, err := repo.FindPaginated(context.Background(), policy.FilterSpec{
			OrganizationID: orgID,
			OwnDraftsFor:   &officerID,
			Page:           1,
			Limit:          50,
		})

		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, events)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("tag filter runs as EXISTS before the count", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewEventRepository(db)

		tagID := uuid.New()
		mock.ExpectQuery(`SELECT count\(\*\) FROM "events" WHERE organization_id = \$1 AND officer_id = \$2 AND EXISTS \(SELECT 1 FROM event_tags et WHERE et\.event_id = events\.id AND et\.tag_id IN \(\$3\)\)`).
			WithArgs(orgID, officerID, tagID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		mock.ExpectQuery(`SELECT \* FROM "events" WHERE .*EXISTS \(SELECT 1 FROM event_tags.*ORDER BY start_time DESC`).
			WillReturnRows(eventRows())

		_, total, err := repo.FindPaginated(context.Background(), policy.FilterSpec{
			OrganizationID: orgID,
			OwnerID:        &officerID,
			TagIDs:         []uuid.UUID{tagID},
			Page:           1,
			Limit:          50,
		})

		require.NoError(t, err)
		assert.Zero(t, total)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("second page carries an offset", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewEventRepository(db)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "events"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(120))

		mock.ExpectQuery(`SELECT \* FROM "events" WHERE organization_id = \$1 AND officer_id = \$2 ORDER BY start_time DESC LIMIT \$3 OFFSET \$4`).
			WithArgs(orgID, officerID, 100, 100).
			WillReturnRows(eventRows())

		_, _, err := repo.FindPaginated(context.Background(), policy.FilterSpec{
			OrganizationID: orgID,
			OwnerID:        &officerID,
			Page:           2,
			Limit:          100,
			Offset:         100,
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("date bounds are half-open on start_time", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewEventRepository(db)

		from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "events" WHERE organization_id = \$1 AND officer_id = \$2 AND start_time >= \$3 AND start_time < \$4`).
			WithArgs(orgID, officerID, from, to).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		mock.ExpectQuery(`SELECT \* FROM "events"`).
			WillReturnRows(eventRows())

		_, _, err := repo.FindPaginated(context.Background(), policy.FilterSpec{
			OrganizationID: orgID,
			OwnerID:        &officerID,
			StartAfter:     &from,
			EndBefore:      &to,
			Page:           1,
			Limit:          50,
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEventFindByID(t *testing.T) {
	t.Run("missing event maps to the domain error", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewEventRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "events" WHERE id = \$1`).
			WillReturnRows(eventRows())

		_, err := repo.FindByID(context.Background(), uuid.New())
		assert.ErrorIs(t, err, domain.ErrEventNotFound)
	})
}

func TestEventDeleteBulk(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewEventRepository(db)

	orgID := uuid.New()
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM event_tags WHERE event_id IN \(SELECT id FROM events WHERE id IN \(\$1,\$2,\$3\) AND organization_id = \$4\)`).
		WithArgs(ids[0], ids[1], ids[2], orgID).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM "events" WHERE id IN \(\$1,\$2,\$3\) AND organization_id = \$4`).
		WithArgs(ids[0], ids[1], ids[2], orgID).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	deleted, err := repo.DeleteBulk(context.Background(), orgID, ids)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
