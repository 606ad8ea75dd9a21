package models

import "time"

// Post represents a post stored in the postagens table. The image binary
// lives on disk; only the stored filename is kept here.
type Post struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"titulo" json:"titulo"`
	Description string    `db:"descricao" json:"descricao"`
	Visible     bool      `db:"visibilidade" json:"visibilidade"`
	ImagePath   string    `db:"caminho_imagem" json:"caminhoImagem"`
	AuthorID    int64     `db:"autor_id" json:"autorID"`
	PublishedAt time.Time `db:"data_publicacao" json:"dataPublicacao"`
}

// FeedPage is the cached shape of one feed page.
type FeedPage struct {
	Posts      []Post      `json:"posts"`
	Pagination *Pagination `json:"pagination"`
}
