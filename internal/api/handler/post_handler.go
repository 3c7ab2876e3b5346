package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/protolab/portal-api/internal/core/domain"
	"github.com/protolab/portal-api/internal/core/ports"
)

// PostHandler handles the public blog/page reads and the admin CMS writes.
type PostHandler struct {
	service ports.PostService
}

func NewPostHandler(service ports.PostService) *PostHandler {
	return &PostHandler{service: service}
}

type postRequest struct {
	Slug      string `json:"slug" validate:"required"`
	Title     string `json:"title" validate:"required"`
	Body      string `json:"body"`
	CoverURL  string `json:"cover_url"`
	Published bool   `json:"published"`
}

// ListPublished returns published posts, newest first.
//
// @Summary      List published posts
// @Tags         posts
// @Produce      json
// @Success      200  {array}  domain.Post
// @Router       /posts [get]
func (h *PostHandler) ListPublished(c echo.Context) error {
	posts, err := h.service.ListPublished(c.Request().Context())
	if err != nil {
		return err
	}
	if posts == nil {
		posts = []domain.Post{}
	}
	return c.JSON(http.StatusOK, posts)
}

// GetPublished returns one published post by slug.
//
// @Summary      Get a published post
// @Tags         posts
// @Produce      json
// @Param        slug  path      string  true  "Post slug"
// @Success      200   {object}  domain.Post
// @Failure      404   {object}  map[string]string
// @Router       /posts/{slug} [get]
func (h *PostHandler) GetPublished(c echo.Context) error {
	post, err := h.service.GetPublished(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// Create adds a post. Admin only.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      postRequest  true  "Post content"
// @Success      201   {object}  domain.Post
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /admin/posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	var req postRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.service.Publish(c.Request().Context(), ports.PostInput{
		Slug:      req.Slug,
		Title:     req.Title,
		Body:      req.Body,
		CoverURL:  req.CoverURL,
		Published: req.Published,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, post)
}

// Update replaces a post's editable fields. Admin only.
//
// @Summary      Update a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Post id"
// @Param        body  body      postRequest  true  "Post content"
// @Success      200   {object}  domain.Post
// @Failure      404   {object}  map[string]string
// @Router       /admin/posts/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	var req postRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.PostInput{
		Slug:      req.Slug,
		Title:     req.Title,
		Body:      req.Body,
		CoverURL:  req.CoverURL,
		Published: req.Published,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// Delete removes a post. Admin only.
//
// @Summary      Delete a post
// @Tags         posts
// @Security     BearerAuth
// @Param        id  path  string  true  "Post id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /admin/posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
