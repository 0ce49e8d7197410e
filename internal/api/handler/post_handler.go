package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/inkpad/webapps/internal/api/view"
	"github.com/inkpad/webapps/internal/core/domain"
	"github.com/inkpad/webapps/internal/core/ports"
)

// PostHandler serves the blog pages.
type PostHandler struct {
	service ports.PostService
}

func NewPostHandler(service ports.PostService) *PostHandler {
	return &PostHandler{service: service}
}

func (h *PostHandler) Home(c echo.Context) error {
	return seeOther(c, "/dashboard")
}

// Dashboard lists every post, newest first.
//
// @Summary      Blog feed
// @Tags         blog
// @Produce      html
// @Success      200
// @Router       /dashboard [get]
func (h *PostHandler) Dashboard(c echo.Context) error {
	posts, err := h.service.ListPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return render(c, "dashboard", view.Page{Title: "Dashboard", Posts: posts})
}

func (h *PostHandler) NewForm(c echo.Context) error {
	return render(c, "post_form", view.Page{Title: "New post"})
}

// Create publishes a post authored by the current user.
//
// @Summary      Create a post
// @Tags         blog
// @Accept       x-www-form-urlencoded
// @Param        title    formData  string  true   "Title"
// @Param        content  formData  string  false  "Body"
// @Success      303
// @Failure      422  {string}  string  "validation failure"
// @Router       /create [post]
func (h *PostHandler) Create(c echo.Context) error {
	var form postForm
	if err := bindForm(c, &form); err != nil {
		return err
	}

	_, err := h.service.CreatePost(c.Request().Context(), actorFrom(c), domain.PostPayload{
		Title:   form.Title,
		Content: form.Content,
	})
	if err != nil {
		return err
	}
	return seeOther(c, "/dashboard")
}

// Show renders a single post. Posts are public.
//
// @Summary      View a post
// @Tags         blog
// @Produce      html
// @Param        id  path  string  true  "Post id"
// @Success      200
// @Failure      404  {string}  string  "not found"
// @Router       /post/{id} [get]
func (h *PostHandler) Show(c echo.Context) error {
	post, err := h.service.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return render(c, "post_detail", view.Page{Title: post.Title, Post: post})
}

// EditForm renders the edit page for the post's author.
//
// @Summary      Edit page
// @Tags         blog
// @Produce      html
// @Param        id  path  string  true  "Post id"
// @Success      200
// @Failure      403  {string}  string  "not your resource"
// @Failure      404  {string}  string  "not found"
// @Router       /edit/{id} [get]
func (h *PostHandler) EditForm(c echo.Context) error {
	post, err := h.service.EditablePost(c.Request().Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		return err
	}
	return render(c, "post_form", view.Page{Title: "Edit post", Post: post})
}

// Update replaces title and content.
//
// @Summary      Update a post
// @Tags         blog
// @Accept       x-www-form-urlencoded
// @Param        id       path      string  true   "Post id"
// @Param        title    formData  string  true   "Title"
// @Param        content  formData  string  false  "Body"
// @Success      303
// @Failure      403  {string}  string  "not your resource"
// @Failure      404  {string}  string  "not found"
// @Router       /edit/{id} [post]
func (h *PostHandler) Update(c echo.Context) error {
	var form postForm
	if err := bindForm(c, &form); err != nil {
		return err
	}

	err := h.service.UpdatePost(c.Request().Context(), actorFrom(c), c.Param("id"), domain.PostPayload{
		Title:   form.Title,
		Content: form.Content,
	})
	if err != nil {
		return err
	}
	return seeOther(c, "/dashboard")
}

// Delete removes a post.
//
// @Summary      Delete a post
// @Tags         blog
// @Param        id  path  string  true  "Post id"
// @Success      303
// @Failure      403  {string}  string  "not your resource"
// @Failure      404  {string}  string  "not found"
// @Router       /delete/{id} [post]
func (h *PostHandler) Delete(c echo.Context) error {
	if err := h.service.DeletePost(c.Request().Context(), actorFrom(c), c.Param("id")); err != nil {
		return err
	}
	return seeOther(c, "/dashboard")
}
