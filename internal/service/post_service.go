package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Carlos6464/publiflow-backend/internal/models"
	appErrors "github.com/Carlos6464/publiflow-backend/pkg/errors"
	"github.com/Carlos6464/publiflow-backend/pkg/export"
)

const (
	defaultAuthorPageSize = 10
	defaultFeedPageSize   = 6

	feedCachePattern = "feed:*"
)

type postRepository interface {
	Create(ctx context.Context, post *models.Post) error
	FindByID(ctx context.Context, id int64) (*models.Post, error)
	List(ctx context.Context) ([]models.Post, error)
	ListByAuthor(ctx context.Context, authorID int64, limit, offset int) ([]models.Post, int, error)
	ListFeed(ctx context.Context, search string, limit, offset int) ([]models.Post, int, error)
	Search(ctx context.Context, term string) ([]models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id int64) error
}

// CreatePostRequest carries the multipart form fields plus the stored image
// reference produced by the upload step.
type CreatePostRequest struct {
	Title       string `form:"titulo" validate:"required"`
	Description string `form:"descricao" validate:"required"`
	Visibility  string `form:"visibilidade"`
	ImagePath   string `form:"-" validate:"required"`
	AuthorID    int64  `form:"-" validate:"required"`
}

// UpdatePostRequest is a field-level patch; the image reference is only
// replaced when a new upload was provided.
type UpdatePostRequest struct {
	Title       *string `form:"titulo"`
	Description *string `form:"descricao"`
	Visibility  *string `form:"visibilidade"`
	ImagePath   *string `form:"-"`
}

// PostService implements post queries and writes.
type PostService struct {
	repo      postRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
}

// NewPostService creates an instance of PostService.
func NewPostService(repo postRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *PostService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &PostService{
		repo:      repo,
		cache:     cache,
		validator: validate,
		logger:    logger,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
	}
}

// Create validates and persists a new post.
func (s *PostService) Create(ctx context.Context, req CreatePostRequest) (*models.Post, error) {
	if req.ImagePath == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "an image upload is required")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid post payload")
	}

	post := &models.Post{
		Title:       req.Title,
		Description: req.Description,
		Visible:     parseVisibility(req.Visibility),
		ImagePath:   req.ImagePath,
		AuthorID:    req.AuthorID,
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create post")
	}

	s.invalidateFeed(ctx)
	return post, nil
}

// Update applies a partial patch to an existing post.
func (s *PostService) Update(ctx context.Context, id int64, req UpdatePostRequest) (*models.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "post not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load post")
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Description != nil {
		post.Description = *req.Description
	}
	if req.Visibility != nil {
		post.Visible = parseVisibility(*req.Visibility)
	}
	if req.ImagePath != nil && *req.ImagePath != "" {
		post.ImagePath = *req.ImagePath
	}

	if err := s.repo.Update(ctx, post); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update post")
	}

	s.invalidateFeed(ctx)
	return post, nil
}

// GetAll returns every post for administrative listings.
func (s *PostService) GetAll(ctx context.Context) ([]models.Post, error) {
	posts, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list posts")
	}
	return posts, nil
}

// GetByAuthor returns one page of the author's posts, newest first.
func (s *PostService) GetByAuthor(ctx context.Context, authorID int64, page, pageSize int) ([]models.Post, *models.Pagination, error) {
	page, pageSize = normalizePage(page, pageSize, defaultAuthorPageSize)

	posts, total, err := s.repo.ListByAuthor(ctx, authorID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list posts by author")
	}

	return posts, models.NewPagination(page, pageSize, total), nil
}

// Feed returns one page of visible posts, newest first, optionally filtered
// by a case-insensitive substring match on title or description.
func (s *PostService) Feed(ctx context.Context, page, pageSize int, search string) ([]models.Post, *models.Pagination, error) {
	page, pageSize = normalizePage(page, pageSize, defaultFeedPageSize)
	search = strings.TrimSpace(search)

	key := feedCacheKey(page, pageSize, search)
	var cached models.FeedPage
	if s.cache.Get(ctx, key, &cached) {
		return cached.Posts, cached.Pagination, nil
	}

	posts, total, err := s.repo.ListFeed(ctx, search, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list feed")
	}

	pagination := models.NewPagination(page, pageSize, total)
	s.cache.Set(ctx, key, models.FeedPage{Posts: posts, Pagination: pagination})

	return posts, pagination, nil
}

// GetByID returns a single post.
func (s *PostService) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "post not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load post")
	}
	return post, nil
}

// Delete removes a post by id.
func (s *PostService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "post not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete post")
	}

	s.invalidateFeed(ctx)
	return nil
}

// Search returns every post matching the term on title or description.
func (s *PostService) Search(ctx context.Context, term string) ([]models.Post, error) {
	if strings.TrimSpace(term) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "search term is required")
	}

	posts, err := s.repo.Search(ctx, term)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to search posts")
	}
	return posts, nil
}

// Export renders every post as CSV or PDF for administrative download.
func (s *PostService) Export(ctx context.Context, format string) ([]byte, string, error) {
	posts, err := s.repo.List(ctx)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list posts")
	}

	dataset := export.Dataset{
		Headers: []string{"ID", "Titulo", "Descricao", "Visibilidade", "Autor", "Publicado"},
		Rows:    make([][]string, 0, len(posts)),
	}
	for _, p := range posts {
		dataset.Rows = append(dataset.Rows, []string{
			strconv.FormatInt(p.ID, 10),
			p.Title,
			p.Description,
			strconv.FormatBool(p.Visible),
			strconv.FormatInt(p.AuthorID, 10),
			p.PublishedAt.Format("2006-01-02 15:04"),
		})
	}

	switch strings.ToLower(format) {
	case "", "csv":
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return payload, "text/csv", nil
	case "pdf":
		payload, err := s.pdf.Render(dataset, "Postagens")
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return payload, "application/pdf", nil
	default:
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
}

func (s *PostService) invalidateFeed(ctx context.Context) {
	s.cache.Invalidate(ctx, feedCachePattern)
}

func feedCacheKey(page, pageSize int, search string) string {
	return fmt.Sprintf("feed:p%d:s%d:q%s", page, pageSize, strings.ToLower(search))
}

// parseVisibility mirrors the textual boolean of the multipart form: the
// literal "true" marks a post visible, anything else hides it.
func parseVisibility(raw string) bool {
	return strings.TrimSpace(raw) == "true"
}

func normalizePage(page, pageSize, defaultSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultSize
	}
	return page, pageSize
}
