package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/task-manager/internal/api/metrics"
	"github.com/99minutos/task-manager/internal/core/ports"
	"github.com/99minutos/task-manager/internal/core/validation"
)

// TaskHandler handles HTTP requests for task operations. Every route is
// behind Auth and scoped to the caller.
type TaskHandler struct {
	service  ports.TaskService
	validate *validation.Validator
}

func NewTaskHandler(service ports.TaskService, validate *validation.Validator) *TaskHandler {
	return &TaskHandler{service: service, validate: validate}
}

// Create handles POST /api/v1/task.
//
// @Summary      Create a task
// @Tags         task
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      validation.CreateTaskRequest  true  "Task"
// @Success      201   {object}  domain.Task
// @Failure      400   {object}  api.ErrorResponse
// @Failure      401   {object}  api.ErrorResponse
// @Failure      500   {object}  api.ErrorResponse
// @Router       /api/v1/task [post]
func (h *TaskHandler) Create(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	var req validation.CreateTaskRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	in, err := h.validate.TaskCreate(req)
	if err != nil {
		return err
	}

	task, err := h.service.Create(c.Request().Context(), identity.UserID, in)
	if err != nil {
		return err
	}

	metrics.TasksCreatedTotal.WithLabelValues(strconv.Itoa(task.Priority)).Inc()
	return c.JSON(http.StatusCreated, task)
}

// List handles GET /api/v1/task.
//
// @Summary      List the caller's tasks
// @Tags         task
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status"  Enums(pending, finished)
// @Success      200     {array}   domain.Task
// @Failure      400     {object}  api.ErrorResponse
// @Failure      401     {object}  api.ErrorResponse
// @Router       /api/v1/task [get]
func (h *TaskHandler) List(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	filter, err := h.validate.TaskFilter(c.QueryParam("status"))
	if err != nil {
		return err
	}

	tasks, err := h.service.List(c.Request().Context(), identity.UserID, filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}

// Get handles GET /api/v1/task/:id.
//
// @Summary      Get a task
// @Tags         task
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  domain.Task
// @Failure      401  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /api/v1/task/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	task, err := h.service.Get(c.Request().Context(), identity.UserID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// Update handles PUT /api/v1/task/:id. Only the supplied fields change.
//
// @Summary      Update a task
// @Tags         task
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                         true  "Task id"
// @Param        body  body      validation.UpdateTaskRequest   true  "Fields to change"
// @Success      200   {object}  domain.Task
// @Failure      400   {object}  api.ErrorResponse
// @Failure      401   {object}  api.ErrorResponse
// @Failure      404   {object}  api.ErrorResponse
// @Router       /api/v1/task/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	var req validation.UpdateTaskRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	patch, err := h.validate.TaskUpdate(req)
	if err != nil {
		return err
	}

	task, err := h.service.Update(c.Request().Context(), identity.UserID, c.Param("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// Delete handles DELETE /api/v1/task/:id.
//
// @Summary      Delete a task
// @Tags         task
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /api/v1/task/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), identity.UserID, c.Param("id")); err != nil {
		return err
	}

	metrics.TasksDeletedTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "task deleted"})
}

// Time handles GET /api/v1/task/:id/time.
//
// @Summary      Elapsed and remaining hours of a task
// @Tags         task
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  domain.TimeSummary
// @Failure      401  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /api/v1/task/{id}/time [get]
func (h *TaskHandler) Time(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	summary, err := h.service.TimeSummary(c.Request().Context(), identity.UserID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}
