package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/inkpad/webapps/internal/api/view"
	"github.com/inkpad/webapps/internal/core/ports"
)

// TaskHandler serves the to-do list. Every mutation redirects back to "/".
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// List renders the current user's tasks.
//
// @Summary      My tasks
// @Tags         todo
// @Produce      html
// @Success      200
// @Router       / [get]
func (h *TaskHandler) List(c echo.Context) error {
	tasks, err := h.service.ListTasks(c.Request().Context(), actorFrom(c))
	if err != nil {
		return err
	}
	return render(c, "tasks", view.Page{Title: "To-do", Tasks: tasks})
}

// Add appends a task.
//
// @Summary      Add a task
// @Tags         todo
// @Accept       x-www-form-urlencoded
// @Param        task  formData  string  true  "Task text"
// @Success      303
// @Failure      422  {string}  string  "validation failure"
// @Router       /add [post]
func (h *TaskHandler) Add(c echo.Context) error {
	var form taskForm
	if err := bindForm(c, &form); err != nil {
		return err
	}
	if _, err := h.service.AddTask(c.Request().Context(), actorFrom(c), form.Task); err != nil {
		return err
	}
	return seeOther(c, "/")
}

// Complete marks a task done.
//
// @Summary      Complete a task
// @Tags         todo
// @Param        id  path  string  true  "Task id"
// @Success      303
// @Failure      403  {string}  string  "not your resource"
// @Failure      404  {string}  string  "not found"
// @Router       /complete/{id} [post]
func (h *TaskHandler) Complete(c echo.Context) error {
	if err := h.service.CompleteTask(c.Request().Context(), actorFrom(c), c.Param("id")); err != nil {
		return err
	}
	return seeOther(c, "/")
}

// Reopen marks a task not done.
//
// @Summary      Reopen a task
// @Tags         todo
// @Param        id  path  string  true  "Task id"
// @Success      303
// @Router       /reopen/{id} [post]
func (h *TaskHandler) Reopen(c echo.Context) error {
	if err := h.service.ReopenTask(c.Request().Context(), actorFrom(c), c.Param("id")); err != nil {
		return err
	}
	return seeOther(c, "/")
}

// Rename replaces the task text.
//
// @Summary      Rename a task
// @Tags         todo
// @Accept       x-www-form-urlencoded
// @Param        id    path      string  true  "Task id"
// @Param        task  formData  string  true  "Task text"
// @Success      303
// @Router       /edit/{id} [post]
func (h *TaskHandler) Rename(c echo.Context) error {
	var form taskForm
	if err := bindForm(c, &form); err != nil {
		return err
	}
	if err := h.service.RenameTask(c.Request().Context(), actorFrom(c), c.Param("id"), form.Task); err != nil {
		return err
	}
	return seeOther(c, "/")
}

// Delete removes a task.
//
// @Summary      Delete a task
// @Tags         todo
// @Param        id  path  string  true  "Task id"
// @Success      303
// @Router       /delete/{id} [post]
func (h *TaskHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteTask(c.Request().Context(), actorFrom(c), c.Param("id")); err != nil {
		return err
	}
	return seeOther(c, "/")
}
