package rest

import (
	"github.com/caesium-cloud/slate/api/rest/controller/dataset"
	"github.com/caesium-cloud/slate/api/rest/controller/event"
	"github.com/caesium-cloud/slate/api/rest/controller/timeline"
	"github.com/caesium-cloud/slate/api/rest/controller/version"
	ievent "github.com/caesium-cloud/slate/internal/event"
	"github.com/caesium-cloud/slate/internal/store"
	"github.com/labstack/echo/v4"
)

// Bind the REST endpoints to the versioned endpoint group.
func Bind(g *echo.Group, st *store.Store, bus ievent.Bus) {
	ds := dataset.New(st)
	vs := version.New(st)

	g.GET("/productions", ds.Productions)
	g.GET("/dataset/fingerprint", ds.Fingerprint)

	// jobs
	{
		g.GET("/jobs/data", ds.Data(store.TableJobs))
		g.GET("/jobs/rows", ds.Rows(store.TableJobs))
		g.POST("/jobs/search", ds.Search)
	}

	// versions
	{
		g.GET("/versions/data", ds.Data(store.TableVersions))
		g.GET("/versions/rows", ds.Rows(store.TableVersions))
		g.POST("/versions/select", vs.Select)
		g.GET("/versions/:id", vs.Get)
		g.PUT("/versions/:id/fields/:field", vs.SetField)
	}

	// timelines
	{
		g.POST("/timelines", timeline.New(st).Post)
		g.POST("/sequences/load", vs.Load)
	}

	if bus != nil {
		g.GET("/events", event.New(bus).Stream)
	}
}
