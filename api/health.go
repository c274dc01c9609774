package api

import (
	"net/http"
	"time"

	"github.com/caesium-cloud/slate/internal/store"
	"github.com/labstack/echo/v4"
)

var startedAt time.Time

func init() {
	startedAt = time.Now()
}

// HealthResponse reports whether the dataset is being served and how
// large it is.
type HealthResponse struct {
	Status   Status        `json:"status"`
	Uptime   time.Duration `json:"uptime"`
	Jobs     int           `json:"jobs"`
	Versions int           `json:"versions"`
}

// Health is healthy once a dataset with at least one job is loaded.
func Health(st *store.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		resp := HealthResponse{
			Status: Healthy,
			Uptime: time.Since(startedAt),
			Jobs:   len(st.Productions()),
		}

		n, err := st.RowCount(store.TableVersions, "")
		if err != nil || resp.Jobs == 0 {
			resp.Status = Empty
			return c.JSON(http.StatusServiceUnavailable, resp)
		}
		resp.Versions = n

		return c.JSON(http.StatusOK, resp)
	}
}

// Status enumerates the health statuses of Slate.
type Status string

const (
	Healthy Status = "healthy"
	// Empty means no jobs are loaded, so every query would come back empty.
	Empty Status = "empty"
)
