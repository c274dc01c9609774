package dataset

import (
	"net/http"

	"github.com/caesium-cloud/slate/api/rest/httperr"
	"github.com/caesium-cloud/slate/internal/dataset"
	"github.com/caesium-cloud/slate/internal/search"
	"github.com/caesium-cloud/slate/internal/store"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	store *store.Store
}

func New(st *store.Store) *Controller {
	return &Controller{store: st}
}

type ProductionsResponse struct {
	Productions []string `json:"productions"`
}

func (ctrl *Controller) Productions(c echo.Context) error {
	return c.JSON(http.StatusOK, ProductionsResponse{Productions: ctrl.store.Productions()})
}

// Data returns whatever the pointer query parameter selects in the table
// named by the route.
func (ctrl *Controller) Data(t store.Table) echo.HandlerFunc {
	return func(c echo.Context) error {
		v, err := ctrl.store.Resolve(t, c.QueryParam("pointer"))
		if err != nil {
			return httperr.From(err)
		}
		return c.JSON(http.StatusOK, v)
	}
}

type RowsResponse struct {
	Pointer string `json:"pointer"`
	Count   int    `json:"count"`
}

func (ctrl *Controller) Rows(t store.Table) echo.HandlerFunc {
	return func(c echo.Context) error {
		address := c.QueryParam("pointer")
		n, err := ctrl.store.RowCount(t, address)
		if err != nil {
			return httperr.From(err)
		}
		return c.JSON(http.StatusOK, RowsResponse{Pointer: address, Count: n})
	}
}

type SearchRequest struct {
	MatchFields []search.Field `json:"match_fields"`
	Level       string         `json:"level"`
	Branch      string         `json:"branch"`
}

func (ctrl *Controller) Search(c echo.Context) error {
	req := new(SearchRequest)
	if err := c.Bind(req); err != nil {
		return httperr.BadRequest(err)
	}

	level, err := dataset.ParseLevel(req.Level)
	if err != nil {
		return httperr.From(err)
	}

	nodes, err := ctrl.store.Search(req.MatchFields, level, req.Branch)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, nodes)
}

type FingerprintResponse struct {
	Fingerprint string `json:"fingerprint"`
}

func (ctrl *Controller) Fingerprint(c echo.Context) error {
	fp, err := ctrl.store.Fingerprint()
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, FingerprintResponse{Fingerprint: fp})
}
