package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/caesium-cloud/slate/api"
	"github.com/caesium-cloud/slate/internal/dataset"
	"github.com/caesium-cloud/slate/internal/event"
	"github.com/caesium-cloud/slate/internal/store"
	"github.com/caesium-cloud/slate/internal/timeline"
	"github.com/pkg/errors"
)

func newServer(t *testing.T) (*Client, *store.Store) {
	t.Helper()

	d, err := dataset.LoadFixture("../../internal/store/testdata/two_jobs.yaml")
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}

	bus := event.New(0)
	st := store.New(d, bus)
	ts := httptest.NewServer(api.New(st, bus))
	t.Cleanup(ts.Close)

	return New(&Config{BaseURL: mustParse(t, ts.URL), HTTPTimeout: 5 * time.Second}), st
}

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	return u
}

func TestPingHealthy(t *testing.T) {
	c, _ := newServer(t)
	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected ping error: %v", err)
	}
}

func TestPingUnhealthyStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"degraded","uptime":1000}`))
	}))
	defer ts.Close()

	c := New(&Config{BaseURL: mustParse(t, ts.URL), HTTPTimeout: time.Second})
	if err := c.Ping(context.Background()); err == nil {
		t.Fatal("expected ping error for non-healthy status")
	}
}

func TestQueries(t *testing.T) {
	c, _ := newServer(t)
	ctx := context.Background()

	prods, err := c.Productions(ctx)
	if err != nil {
		t.Fatalf("productions: %v", err)
	}
	if len(prods) != 2 || prods[0] != "ABC123" || prods[1] != "DRF14" {
		t.Fatalf("unexpected productions: %v", prods)
	}

	var node Node
	if err := c.Data(ctx, Jobs, "/rows/1/rows/0", &node); err != nil {
		t.Fatalf("data: %v", err)
	}
	if node.Level != dataset.LevelSequence || node.Sequence != "drf_200_seq" || len(node.Rows) != 2 {
		t.Fatalf("unexpected node: %+v", node)
	}

	raw, err := c.RawData(ctx, Versions, "/0/asset")
	if err != nil {
		t.Fatalf("raw data: %v", err)
	}
	if raw != true {
		t.Fatalf("expected asset flag, got %v", raw)
	}

	n, err := c.Rows(ctx, Versions, "")
	if err != nil || n != 10 {
		t.Fatalf("rows: %d, %v", n, err)
	}

	nodes, err := c.Search(ctx, "shot", "", []Field{{Name: "job", Value: "ABC123"}})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(nodes) != 2 || nodes[0].UUID != "sh1" || nodes[1].UUID != "sh2" {
		t.Fatalf("unexpected search result: %+v", nodes)
	}

	versions, err := c.Select(ctx, []string{"/rows/0/rows/0/rows/0"})
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(versions) != 2 || versions[0].UUID != "sh1-comp" || versions[1].UUID != "sh1-cg" {
		t.Fatalf("unexpected selection: %+v", versions)
	}

	v, err := c.Version(ctx, "sh1-cg")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if v.VersionType != dataset.VersionTypeCG {
		t.Fatalf("unexpected version type %q", v.VersionType)
	}
}

func TestErrors(t *testing.T) {
	c, _ := newServer(t)
	ctx := context.Background()

	_, err := c.Version(ctx, "missing")
	if !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}

	_, err = c.Rows(ctx, Jobs, "/rows/0/job")
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
	if apiErr.Message == "" {
		t.Fatal("expected server message")
	}
}

func TestSetFieldAndEvents(t *testing.T) {
	c, _ := newServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events, err := c.Events(ctx, "sh2-cg", event.TypeVersionUpdated)
	if err != nil {
		t.Fatalf("events: %v", err)
	}

	changed, err := c.SetField(ctx, "sh2-cg", "artist", "Someone Else")
	if err != nil || !changed {
		t.Fatalf("set field: %v, %v", changed, err)
	}

	changed, err = c.SetField(ctx, "sh2-cg", "artist", "Someone Else")
	if err != nil || changed {
		t.Fatalf("repeat set field: %v, %v", changed, err)
	}

	select {
	case e, ok := <-events:
		if !ok {
			t.Fatal("event stream closed")
		}
		if e.VersionID != "sh2-cg" || e.Field != "artist" || e.Value != "Someone Else" {
			t.Fatalf("unexpected event: %+v", e)
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for event")
	}
}

func TestTimelineAndLoad(t *testing.T) {
	c, _ := newServer(t)
	ctx := context.Background()

	doc, err := c.Timeline(ctx, "cut", []string{"/rows/1/rows/0/rows/0", "/rows/1/rows/0/rows/1"})
	if err != nil {
		t.Fatalf("timeline: %v", err)
	}
	tl, err := timeline.Decode(doc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	// 80-16 + 200-16
	if tl.Duration() != 248 {
		t.Fatalf("unexpected duration %v", tl.Duration())
	}

	loaded, err := c.LoadSequences(ctx, []string{"otio-s1"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 1 || loaded[0].Clips != 2 {
		t.Fatalf("unexpected load result: %+v", loaded)
	}
}

func TestFingerprintTracksWrites(t *testing.T) {
	c, st := newServer(t)
	ctx := context.Background()

	before, err := c.Fingerprint(ctx)
	if err != nil {
		t.Fatalf("fingerprint: %v", err)
	}
	if _, err := st.SetField("sh4-cg", "status", "declined"); err != nil {
		t.Fatalf("set field: %v", err)
	}
	after, err := c.Fingerprint(ctx)
	if err != nil {
		t.Fatalf("fingerprint: %v", err)
	}
	if before == after {
		t.Fatal("expected fingerprint to change after a write")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("SLATE_BASE_URL", "http://slate.internal:9090")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.BaseURL.Host != "slate.internal:9090" || cfg.HTTPTimeout != 10*time.Second {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}
