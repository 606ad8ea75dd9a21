package models

import "time"

// Role names seeded by the migrations. Route allow-lists use these values.
const (
	RoleTeacher = "Professor"
	RoleStudent = "Aluno"
)

// User represents an application user stored in the usuarios table.
// The password hash is never serialized.
type User struct {
	ID        int64     `db:"id" json:"id"`
	FullName  string    `db:"nome_completo" json:"nomeCompleto"`
	Phone     string    `db:"telefone" json:"telefone"`
	Email     string    `db:"email" json:"email"`
	Password  string    `db:"senha" json:"-"`
	RoleID    int64     `db:"papel_usuario_id" json:"papelUsuarioID"`
	CreatedAt time.Time `db:"data_cadastro" json:"dataCadastro"`
}

// Role is static reference data mapping a role id to its name.
type Role struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"papel_usuario" json:"papelUsuario"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalCount int `json:"totalCount"`
	TotalPages int `json:"totalPages"`
}

// NewPagination derives the metadata for a page of results.
func NewPagination(page, pageSize, total int) *Pagination {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	return &Pagination{Page: page, PageSize: pageSize, TotalCount: total, TotalPages: totalPages}
}
