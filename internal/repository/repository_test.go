package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"himti/internal/model"
	"himti/internal/pagination"
)

type widget struct {
	model.Model
	Name string
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestLifecycle_SoftDelete(t *testing.T) {
	id := uuid.New()

	t.Run("active row", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(`UPDATE "widgets" SET "deleted_at"=\$1 WHERE id = \$2 AND "widgets"."deleted_at" IS NULL`).
			WithArgs(sqlmock.AnyArg(), id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := NewLifecycle[widget](db, "", nil).SoftDelete(context.Background(), id)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing or already deleted", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(`UPDATE "widgets" SET "deleted_at"`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := NewLifecycle[widget](db, "", nil).SoftDelete(context.Background(), id)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestLifecycle_Restore(t *testing.T) {
	id := uuid.New()

	t.Run("deleted row", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(`UPDATE "widgets" SET "deleted_at"=\$1.* WHERE id = \$\d AND deleted_at IS NOT NULL`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, NewLifecycle[widget](db, "", nil).Restore(context.Background(), id))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("active row is not restorable", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(`UPDATE "widgets" SET "deleted_at"`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := NewLifecycle[widget](db, "", nil).Restore(context.Background(), id)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestLifecycle_HardDeleteTwice(t *testing.T) {
	id := uuid.New()
	db, mock := newMockDB(t)
	mock.ExpectExec(`DELETE FROM "widgets" WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "widgets" WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	lc := NewLifecycle[widget](db, "", nil)
	require.NoError(t, lc.HardDelete(context.Background(), id))
	assert.ErrorIs(t, lc.HardDelete(context.Background(), id), gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLifecycle_ListDeleted(t *testing.T) {
	db, mock := newMockDB(t)
	mock.MatchExpectationsInOrder(false)

	id := uuid.New()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "widgets" WHERE deleted_at IS NOT NULL`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM "widgets" WHERE deleted_at IS NOT NULL ORDER BY created_at DESC LIMIT \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(id.String(), "gone"))

	page, err := NewLifecycle[widget](db, "created_at DESC", nil).ListDeleted(context.Background(), pagination.Query{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, id, page.Items[0].ID)
	assert.Equal(t, int64(1), page.Meta.TotalItems)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLifecycle_SoftDeleteRestoreSequence(t *testing.T) {
	db, mock := newMockDB(t)
	mock.MatchExpectationsInOrder(false)

	id := uuid.New()
	deletedAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	activeCount := `SELECT count\(\*\) FROM "widgets" WHERE "widgets"."deleted_at" IS NULL`
	activeRows := `SELECT \* FROM "widgets" WHERE "widgets"."deleted_at" IS NULL`

	mock.ExpectExec(`UPDATE "widgets" SET "deleted_at"=\$1 WHERE id = \$2 AND "widgets"."deleted_at" IS NULL`).
		WithArgs(sqlmock.AnyArg(), id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(activeCount).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(activeRows).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "deleted_at"}))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "widgets" WHERE deleted_at IS NOT NULL`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM "widgets" WHERE deleted_at IS NOT NULL`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "deleted_at"}).AddRow(id.String(), "sprocket", deletedAt))
	mock.ExpectExec(`UPDATE "widgets" SET "deleted_at"=\$1.* WHERE id = \$\d AND deleted_at IS NOT NULL`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(activeCount).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(activeRows).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "deleted_at"}).AddRow(id.String(), "sprocket", nil))

	ctx := context.Background()
	lc := NewLifecycle[widget](db, "", nil)

	require.NoError(t, lc.SoftDelete(ctx, id))

	active, err := lc.ListActive(ctx, pagination.Query{})
	require.NoError(t, err)
	assert.Empty(t, active.Items)
	assert.Zero(t, active.Meta.TotalItems)

	deleted, err := lc.ListDeleted(ctx, pagination.Query{})
	require.NoError(t, err)
	require.Len(t, deleted.Items, 1)
	assert.Equal(t, id, deleted.Items[0].ID)
	assert.True(t, deleted.Items[0].DeletedAt.Valid)

	require.NoError(t, lc.Restore(ctx, id))

	active, err = lc.ListActive(ctx, pagination.Query{})
	require.NoError(t, err)
	require.Len(t, active.Items, 1)
	assert.Equal(t, id, active.Items[0].ID)
	assert.False(t, active.Items[0].DeletedAt.Valid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLifecycle_FindActiveMissing(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "widgets" WHERE id = \$1 AND "widgets"."deleted_at" IS NULL`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := NewLifecycle[widget](db, "", nil).FindActive(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAccountRepository_ResetPasswordClearsOTP(t *testing.T) {
	db, mock := newMockDB(t)
	id := uuid.New()
	mock.ExpectExec(`UPDATE "users" SET "otp"=\$1,"otp_expiry"=\$2,"password"=\$3,"updated_at"=\$4 WHERE id = \$5`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "new-hash", sqlmock.AnyArg(), id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewAccountRepository(db).ResetPassword(context.Background(), id, "new-hash"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestForumRepository_ToggleLike(t *testing.T) {
	forumID, userID := uuid.New(), uuid.New()

	t.Run("records a like", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "forum_likes" WHERE forum_id = \$1 AND user_id = \$2`).
			WithArgs(forumID, userID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`INSERT INTO "forum_likes"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		liked, err := NewForumRepository(db).ToggleLike(context.Background(), forumID, userID)
		require.NoError(t, err)
		assert.True(t, liked)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("removes an existing like", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "forum_likes"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		liked, err := NewForumRepository(db).ToggleLike(context.Background(), forumID, userID)
		require.NoError(t, err)
		assert.False(t, liked)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBankDataRepository_DeleteMissing(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec(`DELETE FROM "bank_data" WHERE id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := NewBankDataRepository(db).Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAccountRepository_UpdateWritesEditableColumns(t *testing.T) {
	account := &model.Account{
		Model:        model.Model{ID: uuid.New()},
		Email:        "ada@himti.test",
		PasswordHash: "hash",
		Name:         "Ada",
		Role:         model.RoleUser,
	}
	update := `UPDATE "users" SET .*"email"=.*"password"=.*"name"=.*"role"=.*"profile_picture"=.* WHERE .*"id" = `

	t.Run("active account", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(update).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, NewAccountRepository(db).Update(context.Background(), account))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("deleted in the meantime is not resurrected", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(update).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := NewAccountRepository(db).Update(context.Background(), account)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepositoryUpdate_MissingRowIsNotFound(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	cases := []struct {
		name   string
		table  string
		update func(db *gorm.DB) error
	}{
		{"article", "articles", func(db *gorm.DB) error {
			return NewArticleRepository(db).Update(ctx, &model.Article{Model: model.Model{ID: id}, Title: "t"})
		}},
		{"forum", "forums", func(db *gorm.DB) error {
			return NewForumRepository(db).Update(ctx, &model.Forum{Model: model.Model{ID: id}, Title: "t"})
		}},
		{"department", "departments", func(db *gorm.DB) error {
			return NewDepartmentRepository(db).Update(ctx, &model.Department{Model: model.Model{ID: id}, Department: "Research", Slug: "research"})
		}},
		{"event", "events", func(db *gorm.DB) error {
			return NewEventRepository(db).Update(ctx, &model.Event{Model: model.Model{ID: id}, Name: "Expo"})
		}},
		{"bank data", "bank_data", func(db *gorm.DB) error {
			return NewBankDataRepository(db).Update(ctx, &model.BankData{ID: id, Title: "t"})
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			mock.ExpectExec(`UPDATE "` + tc.table + `" SET `).
				WillReturnResult(sqlmock.NewResult(0, 0))

			assert.ErrorIs(t, tc.update(db), gorm.ErrRecordNotFound)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
