package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gurkanbulca/doapi/internal/models"
	"github.com/gurkanbulca/doapi/internal/repository"
)

var taskQuery = map[string]queryParser{
	models.TaskFieldListID:    parseInt64,
	models.TaskFieldTitle:     parseString,
	models.TaskFieldCompleted: parseBool,
	models.TaskFieldPriority:  parseInt,
}

// TaskHandler serves /tasks.
type TaskHandler struct{}

func NewTaskHandler() *TaskHandler {
	return &TaskHandler{}
}

// ListHandler returns tasks matching every given query parameter.
func (h *TaskHandler) ListHandler(c echo.Context) error {
	f, err := queryFilter(c, taskQuery)
	if err != nil {
		return err
	}
	svc, err := todoService(c)
	if err != nil {
		return err
	}
	tasks, err := svc.Tasks(c.Request().Context(), f)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, tasks)
}

// CreateHandler adds a task to an existing list; an unknown list_id is a 404.
func (h *TaskHandler) CreateHandler(c echo.Context) error {
	var draft models.TaskDraft
	if err := decodeBody(c, &draft); err != nil {
		return err
	}
	svc, err := todoService(c)
	if err != nil {
		return err
	}
	t, err := svc.CreateTask(c.Request().Context(), draft)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, t)
}

func (h *TaskHandler) GetHandler(c echo.Context) error {
	id, err := pathID(c, repository.EntityTask)
	if err != nil {
		return err
	}
	svc, err := todoService(c)
	if err != nil {
		return err
	}
	t, err := svc.Task(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, t)
}

// UpdateHandler merges the provided fields; "due_date": null clears the date.
func (h *TaskHandler) UpdateHandler(c echo.Context) error {
	id, err := pathID(c, repository.EntityTask)
	if err != nil {
		return err
	}
	var patch models.TaskPatch
	if err := decodeBody(c, &patch); err != nil {
		return err
	}
	svc, err := todoService(c)
	if err != nil {
		return err
	}
	t, err := svc.UpdateTask(c.Request().Context(), id, patch)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, t)
}

func (h *TaskHandler) DeleteHandler(c echo.Context) error {
	id, err := pathID(c, repository.EntityTask)
	if err != nil {
		return err
	}
	svc, err := todoService(c)
	if err != nil {
		return err
	}
	if err := svc.DeleteTask(c.Request().Context(), id); err != nil {
		return err
	}
	return respond(c, http.StatusNoContent, nil)
}
