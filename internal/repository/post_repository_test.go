package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carlos6464/publiflow-backend/internal/models"
)

func postColumns() []string {
	return []string{"id", "titulo", "descricao", "visibilidade", "caminho_imagem", "autor_id", "data_publicacao"}
}

func TestPostCreate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewPostRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO postagens (titulo, descricao, visibilidade, caminho_imagem, autor_id) VALUES ($1, $2, $3, $4, $5) RETURNING id, data_publicacao")).
		WithArgs("Feira de ciencias", "Sexta-feira no patio", true, "abc.png", int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "data_publicacao"}).AddRow(int64(10), now))

	post := &models.Post{
		Title:       "Feira de ciencias",
		Description: "Sexta-feira no patio",
		Visible:     true,
		ImagePath:   "abc.png",
		AuthorID:    3,
	}
	err := repo.Create(context.Background(), post)
	require.NoError(t, err)
	assert.Equal(t, int64(10), post.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostListFeed(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewPostRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(postColumns()).
		AddRow(int64(2), "Aviso", "Reuniao de pais", true, "b.png", int64(3), now).
		AddRow(int64(1), "Festa junina", "Quermesse", true, "a.png", int64(3), now.Add(-time.Hour))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, titulo, descricao, visibilidade, caminho_imagem, autor_id, data_publicacao FROM postagens WHERE visibilidade = TRUE ORDER BY data_publicacao DESC LIMIT 6 OFFSET 0")).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM postagens WHERE visibilidade = TRUE")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	posts, total, err := repo.ListFeed(context.Background(), "", 6, 0)
	require.NoError(t, err)
	assert.Len(t, posts, 2)
	assert.Equal(t, 2, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostListFeedWithSearch(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewPostRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(postColumns()).
		AddRow(int64(1), "Festa junina", "Quermesse", true, "a.png", int64(3), now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, titulo, descricao, visibilidade, caminho_imagem, autor_id, data_publicacao FROM postagens WHERE visibilidade = TRUE AND (LOWER(titulo) LIKE $1 OR LOWER(descricao) LIKE $1) ORDER BY data_publicacao DESC LIMIT 6 OFFSET 0")).
		WithArgs("%festa%").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM postagens WHERE visibilidade = TRUE AND (LOWER(titulo) LIKE $1 OR LOWER(descricao) LIKE $1)")).
		WithArgs("%festa%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	posts, total, err := repo.ListFeed(context.Background(), "Festa", 6, 0)
	require.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostListByAuthor(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewPostRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(postColumns()).
		AddRow(int64(5), "Aviso", "Prova na segunda", false, "c.png", int64(3), now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, titulo, descricao, visibilidade, caminho_imagem, autor_id, data_publicacao FROM postagens WHERE autor_id = $1 ORDER BY data_publicacao DESC LIMIT $2 OFFSET $3")).
		WithArgs(int64(3), 10, 0).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM postagens WHERE autor_id = $1")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	posts, total, err := repo.ListByAuthor(context.Background(), 3, 10, 0)
	require.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostSearch(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewPostRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(postColumns()).
		AddRow(int64(1), "Festa junina", "Quermesse", true, "a.png", int64(3), now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, titulo, descricao, visibilidade, caminho_imagem, autor_id, data_publicacao FROM postagens WHERE LOWER(titulo) LIKE $1 OR LOWER(descricao) LIKE $1 ORDER BY data_publicacao DESC")).
		WithArgs("%junina%").
		WillReturnRows(rows)

	posts, err := repo.Search(context.Background(), "Junina")
	require.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostSearchEscapesWildcards(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewPostRepository(db)

	rows := sqlmock.NewRows(postColumns()).
		AddRow(int64(1), "Nota 100%", "Resultado da prova", true, "a.png", int64(3), time.Now())
	mock.ExpectQuery("SELECT .+ FROM postagens WHERE LOWER\\(titulo\\) LIKE").
		WithArgs(`%100\%%`).
		WillReturnRows(rows)

	posts, err := repo.Search(context.Background(), "100%")
	require.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostListFeedEscapesWildcards(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewPostRepository(db)

	mock.ExpectQuery("SELECT .+ FROM postagens WHERE visibilidade = TRUE AND").
		WithArgs(`%sala\_3%`).
		WillReturnRows(sqlmock.NewRows(postColumns()))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM postagens WHERE visibilidade = TRUE AND")).
		WithArgs(`%sala\_3%`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	posts, total, err := repo.ListFeed(context.Background(), "Sala_3", 6, 0)
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.Equal(t, 0, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostDeleteMissing(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewPostRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM postagens WHERE id = $1")).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 42)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
