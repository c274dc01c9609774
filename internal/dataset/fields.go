package dataset

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/google/go-cmp/cmp"
)

// Field returns the named field of the node. Label fields report false
// when the node's level does not carry them.
func (n *TreeNode) Field(name string) (any, bool) {
	switch name {
	case "uuid":
		return n.UUID, n.UUID != ""
	case "level":
		return string(n.Level), true
	case "job":
		return n.Job, n.Job != ""
	case "sequence":
		return n.Sequence, n.Sequence != ""
	case "shot":
		return n.Shot, n.Shot != ""
	case "comp_range":
		return n.CompRange, n.CompRange != ""
	case "rows":
		if n.Rows == nil {
			return []*TreeNode{}, true
		}
		return n.Rows, true
	}
	v, ok := n.Extra[name]
	return v, ok
}

// JSONLookup lets a node take part in JSON Pointer traversal.
func (n *TreeNode) JSONLookup(token string) (any, error) {
	if v, ok := n.Field(token); ok {
		return v, nil
	}
	return nil, &ResolutionError{Token: token, Reason: fmt.Sprintf("%s node has no field %q", n.Level, token)}
}

// Field returns the named field of the record. Every declared field is
// always present.
func (v *VersionRecord) Field(name string) (any, bool) {
	switch name {
	case "uuid":
		return v.UUID, true
	case "job_id":
		return v.JobID, true
	case "sequence_id":
		return v.SequenceID, true
	case "shot_id":
		return v.ShotID, true
	case "version_type":
		return string(v.VersionType), true
	case "version":
		return v.Version, true
	case "version_name":
		return v.VersionName, true
	case "artist":
		return v.Artist, true
	case "status":
		return string(v.Status), true
	case "frame_range":
		return v.FrameRange, true
	case "media_path":
		return v.MediaPath, true
	}
	val, ok := v.Extra[name]
	return val, ok
}

// JSONLookup lets a record take part in JSON Pointer traversal.
func (v *VersionRecord) JSONLookup(token string) (any, error) {
	if val, ok := v.Field(token); ok {
		return val, nil
	}
	return nil, &ResolutionError{Token: token, Reason: fmt.Sprintf("version has no field %q", token)}
}

// Set assigns value to the named field and reports whether the stored
// value changed. Unknown fields are a *ResolutionError; values of the
// wrong shape are a *ValidationError and leave the record untouched.
func (v *VersionRecord) Set(name string, value any) (bool, error) {
	switch name {
	case "uuid":
		return false, &ValidationError{Field: name, Reason: "identifier is immutable"}
	case "job_id":
		return setString(&v.JobID, name, value)
	case "sequence_id":
		return setString(&v.SequenceID, name, value)
	case "shot_id":
		return setString(&v.ShotID, name, value)
	case "version_name":
		return setString(&v.VersionName, name, value)
	case "artist":
		return setString(&v.Artist, name, value)
	case "media_path":
		return setString(&v.MediaPath, name, value)
	case "frame_range":
		s, err := asString(name, value)
		if err != nil {
			return false, err
		}
		if _, _, err := ParseRange(s); err != nil {
			return false, err
		}
		return setString(&v.FrameRange, name, s)
	case "version_type":
		s, err := asString(name, value)
		if err != nil {
			return false, err
		}
		t := VersionType(s)
		if !t.Valid() {
			return false, &ValidationError{Field: name, Reason: fmt.Sprintf("unknown version type %q", s)}
		}
		changed := v.VersionType != t
		v.VersionType = t
		return changed, nil
	case "status":
		s, err := asString(name, value)
		if err != nil {
			return false, err
		}
		st := Status(s)
		if !st.Valid() {
			return false, &ValidationError{Field: name, Reason: fmt.Sprintf("unknown status %q", s)}
		}
		changed := v.Status != st
		v.Status = st
		return changed, nil
	case "version":
		n, err := asInt(name, value)
		if err != nil {
			return false, err
		}
		if n < 1 {
			return false, &ValidationError{Field: name, Reason: "must be positive"}
		}
		changed := v.Version != n
		v.Version = n
		return changed, nil
	}

	current, ok := v.Extra[name]
	if !ok {
		return false, &ResolutionError{Token: name, Reason: fmt.Sprintf("version has no field %q", name)}
	}
	if Equal(current, value) {
		return false, nil
	}
	v.Extra[name] = value
	return true, nil
}

func setString(dst *string, name string, value any) (bool, error) {
	s, err := asString(name, value)
	if err != nil {
		return false, err
	}
	changed := *dst != s
	*dst = s
	return changed, nil
}

func asString(name string, value any) (string, error) {
	switch t := value.(type) {
	case string:
		return t, nil
	case Status:
		return string(t), nil
	case VersionType:
		return string(t), nil
	case Level:
		return string(t), nil
	}
	return "", &ValidationError{Field: name, Reason: fmt.Sprintf("expected a string, got %T", value)}
}

func asInt(name string, value any) (int, error) {
	switch t := value.(type) {
	case int:
		return t, nil
	case int32:
		return int(t), nil
	case int64:
		return int(t), nil
	case float64:
		if t == math.Trunc(t) && !math.IsInf(t, 0) {
			return int(t), nil
		}
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return int(n), nil
		}
	}
	return 0, &ValidationError{Field: name, Reason: fmt.Sprintf("expected an integer, got %v", value)}
}

// Equal compares two field values the way they would compare once
// serialized: numbers by value and enumerations by their string form.
func Equal(a, b any) bool {
	return cmp.Equal(normalize(a), normalize(b))
}

func normalize(v any) any {
	switch t := v.(type) {
	case int:
		return float64(t)
	case int8:
		return float64(t)
	case int16:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case uint:
		return float64(t)
	case uint8:
		return float64(t)
	case uint16:
		return float64(t)
	case uint32:
		return float64(t)
	case uint64:
		return float64(t)
	case float32:
		return float64(t)
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case Level:
		return string(t)
	case Status:
		return string(t)
	case VersionType:
		return string(t)
	case Extension:
		return normalize(map[string]any(t))
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}
		return out
	}
	return v
}
