package api

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/caesium-cloud/slate/api/gql"
	"github.com/caesium-cloud/slate/api/rest/v1"
	"github.com/caesium-cloud/slate/internal/event"
	"github.com/caesium-cloud/slate/internal/store"
	"github.com/caesium-cloud/slate/pkg/env"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

var (
	server   *echo.Echo
	serverMu sync.Mutex
)

// New builds Slate's HTTP surface over st. Events are streamed from bus
// when it is non-nil.
func New(st *store.Store, bus event.Bus) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// health
	e.GET("/health", Health(st))

	// metrics
	e.GET("/metrics", echoprometheus.NewHandler())

	// REST
	rest.Bind(e.Group("/v1"), st, bus)

	// GraphQL
	h := gql.Handler(st)
	e.GET("/gql", h)
	e.POST("/gql", h)

	return e
}

// Start launches Slate's API and blocks until it stops. Cancelling ctx
// shuts the server down.
func Start(ctx context.Context, st *store.Store, bus event.Bus) error {
	e := New(st, bus)
	e.Use(echoprometheus.NewMiddleware("slate"))

	serverMu.Lock()
	server = e
	serverMu.Unlock()

	go func() {
		<-ctx.Done()
		_ = Shutdown()
	}()

	err := e.Start(fmt.Sprintf(":%v", env.Variables().Port))
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully stops the server started by Start.
func Shutdown() error {
	serverMu.Lock()
	e := server
	server = nil
	serverMu.Unlock()

	if e == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return e.Shutdown(ctx)
}
