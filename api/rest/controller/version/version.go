package version

import (
	"net/http"

	"github.com/caesium-cloud/slate/api/rest/httperr"
	"github.com/caesium-cloud/slate/internal/store"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	store *store.Store
}

func New(st *store.Store) *Controller {
	return &Controller{store: st}
}

func (ctrl *Controller) Get(c echo.Context) error {
	v, err := ctrl.store.FindVersion(c.Param("id"))
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, v)
}

type SelectRequest struct {
	Selection []string `json:"selection"`
}

// Select returns the versions of every shot the selection addresses.
func (ctrl *Controller) Select(c echo.Context) error {
	req := new(SelectRequest)
	if err := c.Bind(req); err != nil {
		return httperr.BadRequest(err)
	}

	versions, err := ctrl.store.SelectVersions(req.Selection)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, versions)
}

type SetFieldRequest struct {
	Value any `json:"value"`
}

type SetFieldResponse struct {
	Changed bool `json:"changed"`
}

func (ctrl *Controller) SetField(c echo.Context) error {
	req := new(SetFieldRequest)
	if err := c.Bind(req); err != nil {
		return httperr.BadRequest(err)
	}

	changed, err := ctrl.store.SetField(c.Param("id"), c.Param("field"), req.Value)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, SetFieldResponse{Changed: changed})
}

type LoadRequest struct {
	VersionIDs []string `json:"version_ids"`
}

// Load builds the sequence timeline of every listed version and hands
// each to the configured consumer.
func (ctrl *Controller) Load(c echo.Context) error {
	req := new(LoadRequest)
	if err := c.Bind(req); err != nil {
		return httperr.BadRequest(err)
	}

	loaded, err := ctrl.store.LoadSequences(c.Request().Context(), req.VersionIDs)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, loaded)
}
