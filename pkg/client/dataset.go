package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/caesium-cloud/slate/internal/dataset"
	"github.com/caesium-cloud/slate/internal/search"
	"github.com/caesium-cloud/slate/internal/store"
	"github.com/pkg/errors"
)

type (
	// Node is one node of the job tree.
	Node = dataset.TreeNode
	// Version is one row of the versions table.
	Version = dataset.VersionRecord
	// Field is one search criterion.
	Field = search.Field
	// LoadedSequence describes a timeline handed to the consumer.
	LoadedSequence = store.LoadedSequence
)

// Tables
const (
	Jobs     = string(store.TableJobs)
	Versions = string(store.TableVersions)
)

// Productions lists the job codes the server holds.
func (c *Client) Productions(ctx context.Context) ([]string, error) {
	var payload struct {
		Productions []string `json:"productions"`
	}
	if err := c.do(ctx, http.MethodGet, c.resolve("/v1/productions", nil), nil, &payload); err != nil {
		return nil, errors.Wrap(err, "list productions")
	}
	return payload.Productions, nil
}

// Data decodes whatever pointer selects in table into v.
func (c *Client) Data(ctx context.Context, table, pointer string, v any) error {
	endpoint := c.resolve("/v1/"+table+"/data", url.Values{"pointer": {pointer}})
	if err := c.do(ctx, http.MethodGet, endpoint, nil, v); err != nil {
		return errors.Wrapf(err, "get %s%s", table, pointer)
	}
	return nil
}

// Rows returns how many children pointer's target has.
func (c *Client) Rows(ctx context.Context, table, pointer string) (int, error) {
	var payload struct {
		Count int `json:"count"`
	}
	endpoint := c.resolve("/v1/"+table+"/rows", url.Values{"pointer": {pointer}})
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &payload); err != nil {
		return 0, errors.Wrapf(err, "count rows %s%s", table, pointer)
	}
	return payload.Count, nil
}

// Search collects the nodes at level under branch whose ancestors match
// fields.
func (c *Client) Search(ctx context.Context, level, branch string, fields []Field) ([]*Node, error) {
	body := map[string]any{
		"level":        level,
		"branch":       branch,
		"match_fields": fields,
	}

	var nodes []*Node
	if err := c.do(ctx, http.MethodPost, c.resolve("/v1/jobs/search", nil), body, &nodes); err != nil {
		return nil, errors.Wrap(err, "search")
	}
	return nodes, nil
}

// Select returns the versions of the selected shots in table order.
func (c *Client) Select(ctx context.Context, selection []string) ([]*Version, error) {
	var versions []*Version
	body := map[string]any{"selection": selection}
	if err := c.do(ctx, http.MethodPost, c.resolve("/v1/versions/select", nil), body, &versions); err != nil {
		return nil, errors.Wrap(err, "select versions")
	}
	return versions, nil
}

// Version fetches one version by uuid.
func (c *Client) Version(ctx context.Context, id string) (*Version, error) {
	v := new(Version)
	if err := c.do(ctx, http.MethodGet, c.resolve("/v1/versions/"+url.PathEscape(id), nil), nil, v); err != nil {
		return nil, errors.Wrapf(err, "get version %s", id)
	}
	return v, nil
}

// SetField writes one field and reports whether the stored value changed.
func (c *Client) SetField(ctx context.Context, id, field string, value any) (bool, error) {
	var payload struct {
		Changed bool `json:"changed"`
	}
	endpoint := c.resolve("/v1/versions/"+url.PathEscape(id)+"/fields/"+url.PathEscape(field), nil)
	if err := c.do(ctx, http.MethodPut, endpoint, map[string]any{"value": value}, &payload); err != nil {
		return false, errors.Wrapf(err, "set %s on %s", field, id)
	}
	return payload.Changed, nil
}

// Timeline returns the OTIO document for the given shots.
func (c *Client) Timeline(ctx context.Context, name string, shots []string) (string, error) {
	var doc []byte
	body := map[string]any{"name": name, "shots": shots}
	if err := c.do(ctx, http.MethodPost, c.resolve("/v1/timelines", nil), body, &doc); err != nil {
		return "", errors.Wrap(err, "build timeline")
	}
	return string(doc), nil
}

// LoadSequences asks the server to hand each version's sequence timeline
// to its consumer.
func (c *Client) LoadSequences(ctx context.Context, versionIDs []string) ([]LoadedSequence, error) {
	var loaded []LoadedSequence
	body := map[string]any{"version_ids": versionIDs}
	if err := c.do(ctx, http.MethodPost, c.resolve("/v1/sequences/load", nil), body, &loaded); err != nil {
		return nil, errors.Wrap(err, "load sequences")
	}
	return loaded, nil
}

// Fingerprint returns the server's current dataset hash.
func (c *Client) Fingerprint(ctx context.Context) (string, error) {
	var payload struct {
		Fingerprint string `json:"fingerprint"`
	}
	if err := c.do(ctx, http.MethodGet, c.resolve("/v1/dataset/fingerprint", nil), nil, &payload); err != nil {
		return "", errors.Wrap(err, "fingerprint")
	}
	return payload.Fingerprint, nil
}

// RawData is Data decoded into a generic JSON value.
func (c *Client) RawData(ctx context.Context, table, pointer string) (any, error) {
	var raw json.RawMessage
	if err := c.Data(ctx, table, pointer, &raw); err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, errors.Wrap(err, "decode data")
	}
	return v, nil
}
