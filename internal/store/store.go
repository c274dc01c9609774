// Package store owns the dataset for the life of the process. Every read
// hands out copies; SetField is the only write path.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/caesium-cloud/slate/internal/dataset"
	"github.com/caesium-cloud/slate/internal/event"
	"github.com/caesium-cloud/slate/internal/generator"
	"github.com/caesium-cloud/slate/internal/metrics"
	"github.com/caesium-cloud/slate/internal/pointer"
	"github.com/caesium-cloud/slate/internal/search"
	"github.com/caesium-cloud/slate/internal/timeline"
	"github.com/caesium-cloud/slate/pkg/env"
	"github.com/caesium-cloud/slate/pkg/log"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Table selects which structure an address is resolved against.
type Table string

const (
	TableJobs     Table = "jobs"
	TableVersions Table = "versions"
)

// ParseTable accepts "jobs" or "versions".
func ParseTable(s string) (Table, error) {
	switch t := Table(strings.ToLower(strings.TrimSpace(s))); t {
	case TableJobs, TableVersions:
		return t, nil
	}
	return "", &dataset.ValidationError{Field: "table", Reason: fmt.Sprintf("unknown table %q", s)}
}

// Sink receives change notifications. event.Bus satisfies it.
type Sink interface {
	Publish(e event.Event)
}

// Option configures a Store.
type Option func(*Store)

// WithConsumer hands every sequence timeline built by LoadSequences to c.
func WithConsumer(c timeline.Consumer) Option {
	return func(s *Store) {
		s.consumer = c
	}
}

// Store guards the tree and the versions table with one RWMutex.
type Store struct {
	mu       sync.RWMutex
	data     *dataset.Dataset
	sink     Sink
	consumer timeline.Consumer
}

// New takes ownership of d. A nil sink discards notifications.
func New(d *dataset.Dataset, sink Sink, opts ...Option) *Store {
	s := &Store{data: d, sink: sink}
	for _, opt := range opts {
		opt(s)
	}
	metrics.DatasetVersions.Set(float64(len(d.Versions)))
	return s
}

// Open loads the fixture named by SLATE_FIXTURE_PATH, or generates a
// dataset from SLATE_SEED when no fixture is set.
func Open(vars env.Environment) (*dataset.Dataset, error) {
	if vars.FixturePath != "" {
		d, err := dataset.LoadFixture(vars.FixturePath)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load fixture")
		}
		log.Info("loaded fixture", "path", vars.FixturePath, "versions", len(d.Versions))
		return d, nil
	}

	d := generator.Generate(vars.Seed)
	log.Info("generated dataset", "seed", vars.Seed, "jobs", len(d.Jobs.Rows), "versions", len(d.Versions))
	return d, nil
}

func observe(op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.QueriesTotal.WithLabelValues(op, outcome).Inc()
}

func (s *Store) root(t Table) (any, error) {
	switch t {
	case TableJobs:
		return s.data.Jobs, nil
	case TableVersions:
		return s.data.Versions, nil
	}
	return nil, &dataset.ValidationError{Field: "table", Reason: fmt.Sprintf("unknown table %q", t)}
}

func (s *Store) resolve(t Table, address string) (any, error) {
	root, err := s.root(t)
	if err != nil {
		return nil, err
	}
	return pointer.Resolve(root, address)
}

// Resolve returns a copy of whatever address selects in table t.
func (s *Store) Resolve(t Table, address string) (v any, err error) {
	defer func() { observe("resolve", err) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	v, err = s.resolve(t, address)
	if err != nil {
		return nil, err
	}
	return dataset.CloneValue(v), nil
}

// RowCount is the number of children at address: a node's rows or a
// list's elements.
func (s *Store) RowCount(t Table, address string) (n int, err error) {
	defer func() { observe("row_count", err) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	v, err := s.resolve(t, address)
	if err != nil {
		return 0, err
	}
	n, ok := pointer.Len(v)
	if !ok {
		return 0, &dataset.ResolutionError{Address: address, Reason: fmt.Sprintf("%T is not array-valued", v)}
	}
	return n, nil
}

// Search runs the narrowing walk from the node at branch, the root when
// branch is empty.
func (s *Store) Search(fields []search.Field, level dataset.Level, branch string) (out []*dataset.TreeNode, err error) {
	defer func() { observe("search", err) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	start, err := s.node(branch)
	if err != nil {
		return nil, err
	}
	found, err := search.Search(start, level, fields)
	if err != nil {
		return nil, err
	}

	out = make([]*dataset.TreeNode, len(found))
	for i, n := range found {
		out[i] = n.Clone()
	}
	return out, nil
}

func (s *Store) node(address string) (*dataset.TreeNode, error) {
	v, err := pointer.Resolve(s.data.Jobs, address)
	if err != nil {
		return nil, err
	}
	n, ok := v.(*dataset.TreeNode)
	if !ok {
		return nil, &dataset.ResolutionError{Address: address, Reason: "does not select a tree node"}
	}
	return n, nil
}

// SelectVersions returns, in table order, every record whose shot_id is
// the uuid of one of the selected nodes.
func (s *Store) SelectVersions(addresses []string) (out []*dataset.VersionRecord, err error) {
	defer func() { observe("select_versions", err) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	selected := make(map[string]struct{}, len(addresses))
	for _, address := range addresses {
		n, err := s.node(address)
		if err != nil {
			return nil, err
		}
		if n.UUID != "" {
			selected[n.UUID] = struct{}{}
		}
	}

	out = []*dataset.VersionRecord{}
	for _, v := range s.data.Versions {
		if _, ok := selected[v.ShotID]; ok {
			out = append(out, v.Clone())
		}
	}
	return out, nil
}

func (s *Store) findVersion(id string) (*dataset.VersionRecord, error) {
	for _, v := range s.data.Versions {
		if v.UUID == id {
			return v, nil
		}
	}
	return nil, &dataset.NotFoundError{Kind: "version", ID: id}
}

// FindVersion returns a copy of the record with the given uuid.
func (s *Store) FindVersion(id string) (v *dataset.VersionRecord, err error) {
	defer func() { observe("find_version", err) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	v, err = s.findVersion(id)
	if err != nil {
		return nil, err
	}
	return v.Clone(), nil
}

// SetField writes value into the record's field. When the stored value
// actually changes, exactly one version_updated event is published before
// the lock is released; an equal value is a silent no-op.
func (s *Store) SetField(id, field string, value any) (changed bool, err error) {
	outcome := "unchanged"
	defer func() {
		if err != nil {
			outcome = "error"
		}
		metrics.FieldUpdatesTotal.WithLabelValues(field, outcome).Inc()
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.findVersion(id)
	if err != nil {
		return false, err
	}

	changed, err = v.Set(field, value)
	if err != nil || !changed {
		return false, err
	}
	outcome = "changed"

	current, _ := v.Field(field)
	log.Debug("version field updated", "version_id", id, "field", field, "value", current)
	s.publish(event.VersionUpdated(id, field, dataset.CloneValue(current)))
	return true, nil
}

func (s *Store) publish(e event.Event) {
	if s.sink != nil {
		s.sink.Publish(e)
	}
}

// Productions lists the job codes under the root, in order.
func (s *Store) Productions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.data.Jobs.Rows))
	for _, job := range s.data.Jobs.Rows {
		out = append(out, job.Job)
	}
	observe("productions", nil)
	return out
}

// BuildTimeline resolves each address to a shot node and lays them out in
// the given order.
func (s *Store) BuildTimeline(name string, addresses []string) (tl *timeline.Timeline, err error) {
	defer func() { observe("build_timeline", err) }()

	s.mu.RLock()
	nodes := make([]*dataset.TreeNode, 0, len(addresses))
	for _, address := range addresses {
		n, err := s.node(address)
		if err != nil {
			s.mu.RUnlock()
			return nil, err
		}
		nodes = append(nodes, n)
	}
	tl, err = timeline.FromNodes(name, nodes)
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	metrics.TimelinesBuiltTotal.WithLabelValues("selection").Inc()
	s.timelineBuilt("", tl)
	return tl, nil
}

// LoadedSequence is one timeline built by LoadSequences.
type LoadedSequence struct {
	VersionID string `json:"version_id" yaml:"version_id"`
	Name      string `json:"name" yaml:"name"`
	Clips     int    `json:"clips" yaml:"clips"`
	Document  string `json:"document" yaml:"document"`
}

// LoadSequences builds, for every listed record in table order, the
// timeline of the shots under the record's sequence, and hands each to the
// configured consumer. Identifiers not in the table are skipped.
func (s *Store) LoadSequences(ctx context.Context, versionIDs []string) (out []LoadedSequence, err error) {
	defer func() { observe("load_sequences", err) }()

	wanted := make(map[string]struct{}, len(versionIDs))
	for _, id := range versionIDs {
		wanted[id] = struct{}{}
	}

	type built struct {
		version *dataset.VersionRecord
		tl      *timeline.Timeline
	}
	var pending []built

	s.mu.RLock()
	for _, v := range s.data.Versions {
		if _, ok := wanted[v.UUID]; !ok {
			continue
		}
		tl, err := s.sequenceTimeline(v)
		if err != nil {
			s.mu.RUnlock()
			return nil, errors.Wrapf(err, "version %s", v.UUID)
		}
		pending = append(pending, built{version: v.Clone(), tl: tl})
	}
	s.mu.RUnlock()

	out = make([]LoadedSequence, 0, len(pending))
	for _, b := range pending {
		doc, err := b.tl.Encode()
		if err != nil {
			return nil, err
		}
		if s.consumer != nil {
			if err := s.consumer.Load(ctx, b.version.VersionName, doc); err != nil {
				return nil, errors.Wrapf(err, "failed to hand off %s", b.version.VersionName)
			}
		}

		metrics.TimelinesBuiltTotal.WithLabelValues("sequence").Inc()
		s.timelineBuilt(b.version.UUID, b.tl)
		out = append(out, LoadedSequence{
			VersionID: b.version.UUID,
			Name:      b.version.VersionName,
			Clips:     len(b.tl.Track().Children),
			Document:  doc,
		})
	}
	return out, nil
}

// sequenceTimeline finds the shots under the record's job and sequence.
func (s *Store) sequenceTimeline(v *dataset.VersionRecord) (*timeline.Timeline, error) {
	shots, err := search.Search(s.data.Jobs, dataset.LevelShot, []search.Field{
		{Name: "uuid", Value: v.JobID},
		{Name: "uuid", Value: v.SequenceID},
	})
	if err != nil {
		return nil, err
	}
	return timeline.FromNodes(v.VersionName, shots)
}

func (s *Store) timelineBuilt(versionID string, tl *timeline.Timeline) {
	payload, err := json.Marshal(map[string]any{
		"name":     tl.Name,
		"clips":    len(tl.Track().Children),
		"duration": tl.Duration(),
	})
	if err != nil {
		log.Warn("failed to encode timeline event", "error", err)
		return
	}
	s.publish(event.Event{
		ID:        uuid.New(),
		Type:      event.TypeTimelineBuilt,
		VersionID: versionID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	})
}

// Snapshot returns a deep copy of the whole dataset.
func (s *Store) Snapshot() *dataset.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Clone()
}

// Fingerprint hashes the current dataset, including any field writes.
func (s *Store) Fingerprint() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Fingerprint()
}
