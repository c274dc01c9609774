package dataset

import (
	"encoding/json"

	"github.com/pkg/errors"
)

var (
	nodeFields    = []string{"uuid", "level", "job", "sequence", "shot", "comp_range", "rows"}
	versionFields = []string{
		"uuid", "job_id", "sequence_id", "shot_id", "version_type", "version",
		"version_name", "artist", "status", "frame_range", "media_path",
	}
)

// MarshalJSON flattens extension fields alongside the declared ones and
// omits labels the node's level does not carry.
func (n TreeNode) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(n.Extra)+len(nodeFields))
	for k, v := range n.Extra {
		out[k] = v
	}
	for _, name := range nodeFields {
		if v, ok := n.Field(name); ok {
			out[name] = v
		}
	}
	return json.Marshal(out)
}

func (n *TreeNode) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var node TreeNode
	targets := map[string]any{
		"uuid":       &node.UUID,
		"level":      &node.Level,
		"job":        &node.Job,
		"sequence":   &node.Sequence,
		"shot":       &node.Shot,
		"comp_range": &node.CompRange,
		"rows":       &node.Rows,
	}
	extra, err := decodeFields(raw, targets)
	if err != nil {
		return err
	}
	node.Extra = extra

	*n = node
	return nil
}

// MarshalJSON flattens extension fields alongside the declared ones.
func (v VersionRecord) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(v.Extra)+len(versionFields))
	for k, val := range v.Extra {
		out[k] = val
	}
	for _, name := range versionFields {
		val, _ := v.Field(name)
		out[name] = val
	}
	return json.Marshal(out)
}

func (v *VersionRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var rec VersionRecord
	targets := map[string]any{
		"uuid":         &rec.UUID,
		"job_id":       &rec.JobID,
		"sequence_id":  &rec.SequenceID,
		"shot_id":      &rec.ShotID,
		"version_type": &rec.VersionType,
		"version":      &rec.Version,
		"version_name": &rec.VersionName,
		"artist":       &rec.Artist,
		"status":       &rec.Status,
		"frame_range":  &rec.FrameRange,
		"media_path":   &rec.MediaPath,
	}
	extra, err := decodeFields(raw, targets)
	if err != nil {
		return err
	}
	rec.Extra = extra

	*v = rec
	return nil
}

func decodeFields(raw map[string]json.RawMessage, targets map[string]any) (Extension, error) {
	var extra Extension
	for key, msg := range raw {
		if target, ok := targets[key]; ok {
			if err := json.Unmarshal(msg, target); err != nil {
				return nil, errors.Wrapf(err, "failed to decode field %q", key)
			}
			continue
		}

		var val any
		if err := json.Unmarshal(msg, &val); err != nil {
			return nil, errors.Wrapf(err, "failed to decode field %q", key)
		}
		if extra == nil {
			extra = Extension{}
		}
		extra[key] = val
	}
	return extra, nil
}
