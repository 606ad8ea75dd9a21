package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Carlos6464/publiflow-backend/internal/models"
)

// UserRepository provides database access for user management.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmail returns a user by email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	const query = `SELECT id, nome_completo, telefone, email, senha, papel_usuario_id, data_cadastro FROM usuarios WHERE email = $1 LIMIT 1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

// FindByID returns a user by identifier.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	const query = `SELECT id, nome_completo, telefone, email, senha, papel_usuario_id, data_cadastro FROM usuarios WHERE id = $1 LIMIT 1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

// List returns every user ordered by registration date.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	const query = `SELECT id, nome_completo, telefone, email, senha, papel_usuario_id, data_cadastro FROM usuarios ORDER BY data_cadastro DESC`
	users := []models.User{}
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// ListByRole returns every user holding the given role.
func (r *UserRepository) ListByRole(ctx context.Context, roleID int64) ([]models.User, error) {
	const query = `SELECT id, nome_completo, telefone, email, senha, papel_usuario_id, data_cadastro FROM usuarios WHERE papel_usuario_id = $1 ORDER BY data_cadastro DESC`
	users := []models.User{}
	if err := r.db.SelectContext(ctx, &users, query, roleID); err != nil {
		return nil, fmt.Errorf("list users by role: %w", err)
	}
	return users, nil
}

// Create inserts a new user and fills in the generated id and timestamp.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	const query = `INSERT INTO usuarios (nome_completo, telefone, email, senha, papel_usuario_id) VALUES ($1, $2, $3, $4, $5) RETURNING id, data_cadastro`
	row := r.db.QueryRowxContext(ctx, query, user.FullName, user.Phone, user.Email, user.Password, user.RoleID)
	if err := row.Scan(&user.ID, &user.CreatedAt); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// Update persists the mutable fields of a user.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	const query = `UPDATE usuarios SET telefone = :telefone, email = :email, senha = :senha, papel_usuario_id = :papel_usuario_id WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// Delete removes a user. sql.ErrNoRows signals a missing id.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM usuarios WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
