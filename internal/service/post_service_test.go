package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carlos6464/publiflow-backend/internal/models"
	appErrors "github.com/Carlos6464/publiflow-backend/pkg/errors"
)

type mockPostRepo struct {
	posts        []models.Post
	postByID     *models.Post
	feedTotal    int
	feedSearch   string
	feedLimit    int
	feedOffset   int
	authorLimit  int
	authorOffset int
	created      *models.Post
	updated      *models.Post
	deleteErr    error
	searchTerm   string
}

func (m *mockPostRepo) Create(ctx context.Context, post *models.Post) error {
	post.ID = 1
	post.PublishedAt = time.Now()
	m.created = post
	return nil
}

func (m *mockPostRepo) FindByID(ctx context.Context, id int64) (*models.Post, error) {
	if m.postByID == nil {
		return nil, sql.ErrNoRows
	}
	return m.postByID, nil
}

func (m *mockPostRepo) List(ctx context.Context) ([]models.Post, error) {
	return m.posts, nil
}

func (m *mockPostRepo) ListByAuthor(ctx context.Context, authorID int64, limit, offset int) ([]models.Post, int, error) {
	m.authorLimit = limit
	m.authorOffset = offset
	return m.posts, m.feedTotal, nil
}

func (m *mockPostRepo) ListFeed(ctx context.Context, search string, limit, offset int) ([]models.Post, int, error) {
	m.feedSearch = search
	m.feedLimit = limit
	m.feedOffset = offset
	return m.posts, m.feedTotal, nil
}

func (m *mockPostRepo) Search(ctx context.Context, term string) ([]models.Post, error) {
	m.searchTerm = term
	return m.posts, nil
}

func (m *mockPostRepo) Update(ctx context.Context, post *models.Post) error {
	m.updated = post
	return nil
}

func (m *mockPostRepo) Delete(ctx context.Context, id int64) error {
	return m.deleteErr
}

type memoryCacheRepo struct {
	entries      map[string][]byte
	invalidated  []string
	setCount     int
	lastSetValue interface{}
}

func newMemoryCacheRepo() *memoryCacheRepo {
	return &memoryCacheRepo{entries: map[string][]byte{}}
}

func (m *memoryCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	if _, ok := m.entries[key]; !ok {
		return appErrors.ErrCacheMiss
	}
	return nil
}

func (m *memoryCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.entries[key] = []byte("x")
	m.setCount++
	m.lastSetValue = value
	return nil
}

func (m *memoryCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	m.invalidated = append(m.invalidated, pattern)
	for key := range m.entries {
		if strings.HasPrefix(key, strings.TrimSuffix(pattern, "*")) {
			delete(m.entries, key)
		}
	}
	return nil
}

func TestPostCreateRequiresImage(t *testing.T) {
	svc := NewPostService(&mockPostRepo{}, nil, nil, nil)

	_, err := svc.Create(context.Background(), CreatePostRequest{
		Title:       "Aviso",
		Description: "Reuniao de pais",
		AuthorID:    3,
	})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestPostCreateVisibilityCoercion(t *testing.T) {
	cases := map[string]bool{
		"true":  true,
		"True":  false,
		"1":     false,
		"false": false,
		"":      false,
	}
	for raw, want := range cases {
		repo := &mockPostRepo{}
		svc := NewPostService(repo, nil, nil, nil)

		post, err := svc.Create(context.Background(), CreatePostRequest{
			Title:       "Aviso",
			Description: "Reuniao de pais",
			Visibility:  raw,
			ImagePath:   "a.png",
			AuthorID:    3,
		})
		require.NoError(t, err, "visibility %q", raw)
		assert.Equal(t, want, post.Visible, "visibility %q", raw)
	}
}

func TestPostFeedDefaults(t *testing.T) {
	repo := &mockPostRepo{posts: []models.Post{{ID: 1}}, feedTotal: 13}
	svc := NewPostService(repo, nil, nil, nil)

	posts, pagination, err := svc.Feed(context.Background(), 0, 0, "")
	require.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.Equal(t, 6, repo.feedLimit)
	assert.Equal(t, 0, repo.feedOffset)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 6, pagination.PageSize)
	assert.Equal(t, 13, pagination.TotalCount)
	assert.Equal(t, 3, pagination.TotalPages)
}

func TestPostFeedSecondPageOffset(t *testing.T) {
	repo := &mockPostRepo{feedTotal: 13}
	svc := NewPostService(repo, nil, nil, nil)

	_, pagination, err := svc.Feed(context.Background(), 2, 6, "festa")
	require.NoError(t, err)
	assert.Equal(t, 6, repo.feedOffset)
	assert.Equal(t, "festa", repo.feedSearch)
	assert.Equal(t, 2, pagination.Page)
}

func TestPostFeedCachesPage(t *testing.T) {
	repo := &mockPostRepo{posts: []models.Post{{ID: 1}}, feedTotal: 1}
	cacheRepo := newMemoryCacheRepo()
	cacheSvc := NewCacheService(cacheRepo, nil, time.Minute, nil, true)
	svc := NewPostService(repo, cacheSvc, nil, nil)

	_, _, err := svc.Feed(context.Background(), 1, 6, "")
	require.NoError(t, err)
	assert.Equal(t, 1, cacheRepo.setCount)

	page, ok := cacheRepo.lastSetValue.(models.FeedPage)
	require.True(t, ok)
	assert.Len(t, page.Posts, 1)
}

func TestPostCreateInvalidatesFeedCache(t *testing.T) {
	cacheRepo := newMemoryCacheRepo()
	cacheSvc := NewCacheService(cacheRepo, nil, time.Minute, nil, true)
	svc := NewPostService(&mockPostRepo{}, cacheSvc, nil, nil)

	_, err := svc.Create(context.Background(), CreatePostRequest{
		Title:       "Aviso",
		Description: "Reuniao de pais",
		ImagePath:   "a.png",
		AuthorID:    3,
	})
	require.NoError(t, err)
	assert.Contains(t, cacheRepo.invalidated, "feed:*")
}

func TestPostGetByAuthorDefaults(t *testing.T) {
	repo := &mockPostRepo{feedTotal: 25}
	svc := NewPostService(repo, nil, nil, nil)

	_, pagination, err := svc.GetByAuthor(context.Background(), 3, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 10, repo.authorLimit)
	assert.Equal(t, 0, repo.authorOffset)
	assert.Equal(t, 3, pagination.TotalPages)
}

func TestPostSearchRequiresTerm(t *testing.T) {
	svc := NewPostService(&mockPostRepo{}, nil, nil, nil)

	_, err := svc.Search(context.Background(), "   ")
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestPostUpdatePatchKeepsImage(t *testing.T) {
	repo := &mockPostRepo{postByID: &models.Post{ID: 7, Title: "Antigo", ImagePath: "old.png", Visible: true}}
	svc := NewPostService(repo, nil, nil, nil)

	title := "Novo"
	post, err := svc.Update(context.Background(), 7, UpdatePostRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Novo", post.Title)
	assert.Equal(t, "old.png", post.ImagePath)
	assert.True(t, post.Visible)
}

func TestPostDeleteNotFound(t *testing.T) {
	repo := &mockPostRepo{deleteErr: sql.ErrNoRows}
	svc := NewPostService(repo, nil, nil, nil)

	err := svc.Delete(context.Background(), 404)
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestPostExportCSV(t *testing.T) {
	repo := &mockPostRepo{posts: []models.Post{{
		ID:          1,
		Title:       "Festa junina",
		Description: "Quermesse",
		Visible:     true,
		AuthorID:    3,
		PublishedAt: time.Date(2025, 6, 20, 18, 0, 0, 0, time.UTC),
	}}}
	svc := NewPostService(repo, nil, nil, nil)

	payload, contentType, err := svc.Export(context.Background(), "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)
	assert.Contains(t, string(payload), "Festa junina")
	assert.Contains(t, string(payload), "Titulo")
}

func TestPostExportUnsupportedFormat(t *testing.T) {
	svc := NewPostService(&mockPostRepo{}, nil, nil, nil)

	_, _, err := svc.Export(context.Background(), "xlsx")
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}
