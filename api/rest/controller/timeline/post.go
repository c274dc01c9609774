package timeline

import (
	"net/http"

	"github.com/caesium-cloud/slate/api/rest/httperr"
	"github.com/caesium-cloud/slate/internal/store"
	"github.com/caesium-cloud/slate/internal/timeline"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	store *store.Store
}

func New(st *store.Store) *Controller {
	return &Controller{store: st}
}

type PostRequest struct {
	Name  string   `json:"name"`
	Shots []string `json:"shots"`
}

// Post lays out the addressed shots and returns the OTIO document.
func (ctrl *Controller) Post(c echo.Context) error {
	req := new(PostRequest)
	if err := c.Bind(req); err != nil {
		return httperr.BadRequest(err)
	}
	if req.Name == "" {
		req.Name = timeline.DefaultName
	}

	tl, err := ctrl.store.BuildTimeline(req.Name, req.Shots)
	if err != nil {
		return httperr.From(err)
	}

	doc, err := tl.Encode()
	if err != nil {
		return httperr.From(err)
	}
	return c.JSONBlob(http.StatusOK, []byte(doc))
}
