package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gurkanbulca/doapi/internal/models"
	"github.com/gurkanbulca/doapi/internal/repository"
)

var listQuery = map[string]queryParser{
	models.ListFieldTitle:    parseString,
	models.ListFieldArchived: parseBool,
}

// ListHandler serves /lists.
type ListHandler struct{}

func NewListHandler() *ListHandler {
	return &ListHandler{}
}

// ListHandler returns every list, optionally filtered by title or archived.
func (h *ListHandler) ListHandler(c echo.Context) error {
	f, err := queryFilter(c, listQuery)
	if err != nil {
		return err
	}
	svc, err := todoService(c)
	if err != nil {
		return err
	}
	lists, err := svc.Lists(c.Request().Context(), f)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, lists)
}

func (h *ListHandler) CreateHandler(c echo.Context) error {
	var draft models.ListDraft
	if err := decodeBody(c, &draft); err != nil {
		return err
	}
	svc, err := todoService(c)
	if err != nil {
		return err
	}
	l, err := svc.CreateList(c.Request().Context(), draft)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, l)
}

func (h *ListHandler) GetHandler(c echo.Context) error {
	id, err := pathID(c, repository.EntityList)
	if err != nil {
		return err
	}
	svc, err := todoService(c)
	if err != nil {
		return err
	}
	l, err := svc.List(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, l)
}

func (h *ListHandler) UpdateHandler(c echo.Context) error {
	id, err := pathID(c, repository.EntityList)
	if err != nil {
		return err
	}
	var patch models.ListPatch
	if err := decodeBody(c, &patch); err != nil {
		return err
	}
	svc, err := todoService(c)
	if err != nil {
		return err
	}
	l, err := svc.UpdateList(c.Request().Context(), id, patch)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, l)
}

// DeleteHandler removes the list together with its tasks.
func (h *ListHandler) DeleteHandler(c echo.Context) error {
	id, err := pathID(c, repository.EntityList)
	if err != nil {
		return err
	}
	svc, err := todoService(c)
	if err != nil {
		return err
	}
	if err := svc.DeleteList(c.Request().Context(), id); err != nil {
		return err
	}
	return respond(c, http.StatusNoContent, nil)
}
