package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/Carlos6464/publiflow-backend/internal/models"
)

// PostRepository provides database access for posts.
type PostRepository struct {
	db *sqlx.DB
}

// NewPostRepository creates a new instance of PostRepository.
func NewPostRepository(db *sqlx.DB) *PostRepository {
	return &PostRepository{db: db}
}

// Create inserts a new post and fills in the generated id and timestamp.
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	const query = `INSERT INTO postagens (titulo, descricao, visibilidade, caminho_imagem, autor_id) VALUES ($1, $2, $3, $4, $5) RETURNING id, data_publicacao`
	row := r.db.QueryRowxContext(ctx, query, post.Title, post.Description, post.Visible, post.ImagePath, post.AuthorID)
	if err := row.Scan(&post.ID, &post.PublishedAt); err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

// FindByID returns a post by identifier.
func (r *PostRepository) FindByID(ctx context.Context, id int64) (*models.Post, error) {
	const query = `SELECT id, titulo, descricao, visibilidade, caminho_imagem, autor_id, data_publicacao FROM postagens WHERE id = $1 LIMIT 1`
	var post models.Post
	if err := r.db.GetContext(ctx, &post, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return &post, nil
}

// List returns every post, newest first.
func (r *PostRepository) List(ctx context.Context) ([]models.Post, error) {
	const query = `SELECT id, titulo, descricao, visibilidade, caminho_imagem, autor_id, data_publicacao FROM postagens ORDER BY data_publicacao DESC`
	posts := []models.Post{}
	if err := r.db.SelectContext(ctx, &posts, query); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// ListByAuthor returns one page of an author's posts plus the total count.
func (r *PostRepository) ListByAuthor(ctx context.Context, authorID int64, limit, offset int) ([]models.Post, int, error) {
	const query = `SELECT id, titulo, descricao, visibilidade, caminho_imagem, autor_id, data_publicacao FROM postagens WHERE autor_id = $1 ORDER BY data_publicacao DESC LIMIT $2 OFFSET $3`
	posts := []models.Post{}
	if err := r.db.SelectContext(ctx, &posts, query, authorID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("list posts by author: %w", err)
	}

	const countQuery = `SELECT COUNT(*) FROM postagens WHERE autor_id = $1`
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, authorID); err != nil {
		return nil, 0, fmt.Errorf("count posts by author: %w", err)
	}

	return posts, total, nil
}

// ListFeed returns one page of visible posts, newest first, optionally
// filtered by a case-insensitive substring match on title or description.
func (r *PostRepository) ListFeed(ctx context.Context, search string, limit, offset int) ([]models.Post, int, error) {
	baseQuery := `FROM postagens WHERE visibilidade = TRUE`
	args := []interface{}{}

	if search != "" {
		baseQuery += fmt.Sprintf(" AND (LOWER(titulo) LIKE $%d OR LOWER(descricao) LIKE $%d)", len(args)+1, len(args)+1)
		args = append(args, "%"+escapeLike(strings.ToLower(search))+"%")
	}

	listQuery := fmt.Sprintf("SELECT id, titulo, descricao, visibilidade, caminho_imagem, autor_id, data_publicacao %s ORDER BY data_publicacao DESC LIMIT %d OFFSET %d", baseQuery, limit, offset)

	posts := []models.Post{}
	if err := r.db.SelectContext(ctx, &posts, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list feed: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", baseQuery)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count feed: %w", err)
	}

	return posts, total, nil
}

// Search returns every post matching the term on title or description.
func (r *PostRepository) Search(ctx context.Context, term string) ([]models.Post, error) {
	const query = `SELECT id, titulo, descricao, visibilidade, caminho_imagem, autor_id, data_publicacao FROM postagens WHERE LOWER(titulo) LIKE $1 OR LOWER(descricao) LIKE $1 ORDER BY data_publicacao DESC`
	posts := []models.Post{}
	if err := r.db.SelectContext(ctx, &posts, query, "%"+escapeLike(strings.ToLower(term))+"%"); err != nil {
		return nil, fmt.Errorf("search posts: %w", err)
	}
	return posts, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralizes LIKE metacharacters so a search term matches
// literally instead of acting as a wildcard.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}

// Update persists the mutable fields of a post.
func (r *PostRepository) Update(ctx context.Context, post *models.Post) error {
	const query = `UPDATE postagens SET titulo = :titulo, descricao = :descricao, visibilidade = :visibilidade, caminho_imagem = :caminho_imagem WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, post); err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return nil
}

// Delete removes a post. sql.ErrNoRows signals a missing id.
func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM postagens WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete post rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
