package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ericoliveiras/avalia-loja/internal/apperr"
	"github.com/ericoliveiras/avalia-loja/internal/database"
	"github.com/ericoliveiras/avalia-loja/internal/model"
	"github.com/ericoliveiras/avalia-loja/internal/testutil"
)

// newMockDB liga o gorm com o dialeto Postgres a um sqlmock.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), database.GormConfig(testutil.Logger()))
	require.NoError(t, err)
	return db, mock
}

func TestUserRepoStorageFailureIsInternal(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnError(errors.New("conexão encerrada"))

	_, err := NewUserRepo(db).ByEmail(context.Background(), "alguem@x.com")
	assert.True(t, apperr.Is(err, apperr.KindInternal))
	assert.Equal(t, "Erro interno do servidor.", apperr.PublicMessage(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoPostgresUniqueViolationIsConflict(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).WillReturnError(&pgconn.PgError{
		Code:           "23505",
		Message:        `duplicate key value violates unique constraint "idx_users_email"`,
		ConstraintName: "idx_users_email",
	})
	mock.ExpectRollback()

	err := NewUserRepo(db).Create(context.Background(), newUser("Usuário Repetido Aqui", "dup@x.com", "", model.RoleUser))
	assert.True(t, apperr.Is(err, apperr.KindConflict), "err = %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRatingRepoUpsertUsesOnConflict(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "ratings" .* ON CONFLICT \("user_id","store_id"\) DO UPDATE SET .* RETURNING \*`).
		WillReturnError(errors.New("falha simulada"))
	mock.ExpectRollback()

	err := NewRatingRepo(db).Upsert(context.Background(), &model.Rating{UserID: 1, StoreID: 2, Value: 4})
	assert.True(t, apperr.Is(err, apperr.KindInternal))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRatingRepoUpsertReadsReturningRow(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "ratings" .* RETURNING \*`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "store_id", "rating", "created_at", "updated_at"}).
			AddRow(7, 1, 2, 4, now, now))
	mock.ExpectCommit()

	r := &model.Rating{UserID: 1, StoreID: 2, Value: 4}
	require.NoError(t, NewRatingRepo(db).Upsert(context.Background(), r))
	assert.Equal(t, uint(7), r.ID)
	assert.Equal(t, 4, r.Value)
	// nenhuma leitura extra depois do upsert
	assert.NoError(t, mock.ExpectationsWereMet())
}
