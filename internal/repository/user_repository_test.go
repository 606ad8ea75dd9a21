package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carlos6464/publiflow-backend/internal/models"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	sqlxdb := sqlx.NewDb(db, "sqlmock")
	return sqlxdb, mock, func() {
		db.Close()
	}
}

func userColumns() []string {
	return []string{"id", "nome_completo", "telefone", "email", "senha", "papel_usuario_id", "data_cadastro"}
}

func TestUserFindByEmail(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(userColumns()).
		AddRow(int64(1), "Maria Silva", "11999990000", "maria@escola.com", "hash", int64(1), now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, nome_completo, telefone, email, senha, papel_usuario_id, data_cadastro FROM usuarios WHERE email = $1 LIMIT 1")).
		WithArgs("maria@escola.com").
		WillReturnRows(rows)

	user, err := repo.FindByEmail(context.Background(), "maria@escola.com")
	require.NoError(t, err)
	assert.Equal(t, "maria@escola.com", user.Email)
	assert.Equal(t, int64(1), user.RoleID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserFindByEmailMissing(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT .+ FROM usuarios WHERE email").
		WithArgs("nobody@escola.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByEmail(context.Background(), "nobody@escola.com")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO usuarios (nome_completo, telefone, email, senha, papel_usuario_id) VALUES ($1, $2, $3, $4, $5) RETURNING id, data_cadastro")).
		WithArgs("Maria Silva", "11999990000", "maria@escola.com", "hash", int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "data_cadastro"}).AddRow(int64(7), now))

	user := &models.User{
		FullName: "Maria Silva",
		Phone:    "11999990000",
		Email:    "maria@escola.com",
		Password: "hash",
		RoleID:   1,
	}
	err := repo.Create(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.False(t, user.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserListByRole(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(userColumns()).
		AddRow(int64(1), "Maria Silva", "", "maria@escola.com", "hash", int64(2), now).
		AddRow(int64(2), "Joana Souza", "", "joana@escola.com", "hash", int64(2), now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, nome_completo, telefone, email, senha, papel_usuario_id, data_cadastro FROM usuarios WHERE papel_usuario_id = $1 ORDER BY data_cadastro DESC")).
		WithArgs(int64(2)).
		WillReturnRows(rows)

	users, err := repo.ListByRole(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserDeleteMissing(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM usuarios WHERE id = $1")).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
