package handler

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Carlos6464/publiflow-backend/internal/models"
	"github.com/Carlos6464/publiflow-backend/internal/service"
	appErrors "github.com/Carlos6464/publiflow-backend/pkg/errors"
	"github.com/Carlos6464/publiflow-backend/pkg/response"
)

const imageFormField = "imagem"

type postService interface {
	Create(ctx context.Context, req service.CreatePostRequest) (*models.Post, error)
	Update(ctx context.Context, id int64, req service.UpdatePostRequest) (*models.Post, error)
	GetAll(ctx context.Context) ([]models.Post, error)
	GetByAuthor(ctx context.Context, authorID int64, page, pageSize int) ([]models.Post, *models.Pagination, error)
	Feed(ctx context.Context, page, pageSize int, search string) ([]models.Post, *models.Pagination, error)
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, term string) ([]models.Post, error)
	Export(ctx context.Context, format string) ([]byte, string, error)
}

type imageStore interface {
	SaveUpload(file *multipart.FileHeader) (string, error)
}

// PostHandler handles post endpoints.
type PostHandler struct {
	service postService
	images  imageStore
}

// NewPostHandler creates a new post handler.
func NewPostHandler(svc postService, images imageStore) *PostHandler {
	return &PostHandler{service: svc, images: images}
}

// Create godoc
// @Summary Create a post
// @Description Stores the uploaded image and persists the post
// @Tags Posts
// @Accept multipart/form-data
// @Produce json
// @Param titulo formData string true "Title"
// @Param descricao formData string true "Description"
// @Param visibilidade formData string false "Visibility flag"
// @Param imagem formData file true "Image"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /posts [post]
func (h *PostHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	req := service.CreatePostRequest{
		Title:       c.PostForm("titulo"),
		Description: c.PostForm("descricao"),
		Visibility:  c.PostForm("visibilidade"),
		AuthorID:    claims.UserID,
	}

	if file, err := c.FormFile(imageFormField); err == nil {
		stored, err := h.images.SaveUpload(file)
		if err != nil {
			response.Error(c, err)
			return
		}
		req.ImagePath = stored
	}

	post, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, post)
}

// Update godoc
// @Summary Update a post
// @Description Applies a partial patch; a new upload replaces the image
// @Tags Posts
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /posts/{id} [put]
func (h *PostHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid post id"))
		return
	}

	var req service.UpdatePostRequest
	if title, ok := c.GetPostForm("titulo"); ok {
		req.Title = &title
	}
	if description, ok := c.GetPostForm("descricao"); ok {
		req.Description = &description
	}
	if visibility, ok := c.GetPostForm("visibilidade"); ok {
		req.Visibility = &visibility
	}

	if file, err := c.FormFile(imageFormField); err == nil {
		stored, err := h.images.SaveUpload(file)
		if err != nil {
			response.Error(c, err)
			return
		}
		req.ImagePath = &stored
	}

	post, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, post, nil)
}

// List godoc
// @Summary List every post
// @Tags Posts
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /posts [get]
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, posts, nil)
}

// ListMine godoc
// @Summary List the caller's posts
// @Tags Posts
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /posts/me [get]
func (h *PostHandler) ListMine(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	page := intQuery(c, "page", 1)
	limit := intQuery(c, "limit", 0)

	posts, pagination, err := h.service.GetByAuthor(c.Request.Context(), claims.UserID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, posts, pagination)
}

// Feed godoc
// @Summary Paginated feed of visible posts
// @Tags Posts
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param q query string false "Search term"
// @Success 200 {object} response.Envelope
// @Router /posts/feed [get]
func (h *PostHandler) Feed(c *gin.Context) {
	page := intQuery(c, "page", 1)
	limit := intQuery(c, "limit", 0)

	posts, pagination, err := h.service.Feed(c.Request.Context(), page, limit, c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, posts, pagination)
}

// Search godoc
// @Summary Search posts by term
// @Tags Posts
// @Produce json
// @Param q query string true "Search term"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /posts/search [get]
func (h *PostHandler) Search(c *gin.Context) {
	posts, err := h.service.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, posts, nil)
}

// Export godoc
// @Summary Export every post as CSV or PDF
// @Tags Posts
// @Produce octet-stream
// @Param format query string false "csv or pdf"
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Router /posts/export [get]
func (h *PostHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")

	payload, contentType, err := h.service.Export(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}

	ext := "csv"
	if contentType == "application/pdf" {
		ext = "pdf"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=postagens.%s", ext))
	c.Data(http.StatusOK, contentType, payload)
}

// Get godoc
// @Summary Get a post
// @Tags Posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /posts/{id} [get]
func (h *PostHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid post id"))
		return
	}

	post, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, post, nil)
}

// Delete godoc
// @Summary Delete a post
// @Tags Posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 204 "No Content"
// @Failure 404 {object} response.Envelope
// @Router /posts/{id} [delete]
func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid post id"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
