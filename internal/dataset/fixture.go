package dataset

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"lukechampine.com/blake3"
)

// LoadFixture reads a dataset from a YAML (or JSON) file on disk.
func LoadFixture(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read fixture %s", path)
	}
	return ParseFixture(data)
}

// ParseFixture decodes a dataset document and checks it is well formed.
func ParseFixture(data []byte) (*Dataset, error) {
	var d Dataset
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, errors.Wrap(err, "failed to decode fixture")
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate checks the structural invariants: a studio root, levels that
// step down one at a time, identifiers unique within each table, and
// records that carry known enumerations.
func (d *Dataset) Validate() error {
	if d.Jobs == nil {
		return &ValidationError{Field: "jobs", Reason: "missing tree root"}
	}
	if d.Jobs.Level != LevelStudio {
		return &ValidationError{Field: "jobs", Reason: fmt.Sprintf("root level is %q, want %q", d.Jobs.Level, LevelStudio)}
	}

	seen := map[string]struct{}{}
	if err := validateNode(d.Jobs, seen); err != nil {
		return err
	}

	ids := make(map[string]struct{}, len(d.Versions))
	for i, v := range d.Versions {
		if v == nil {
			return &ValidationError{Field: "versions", Reason: fmt.Sprintf("record %d is empty", i)}
		}
		if v.UUID == "" {
			return &ValidationError{Field: "uuid", Reason: fmt.Sprintf("record %d has no identifier", i)}
		}
		if _, dup := ids[v.UUID]; dup {
			return &ValidationError{Field: "uuid", Reason: fmt.Sprintf("duplicate version identifier %q", v.UUID)}
		}
		ids[v.UUID] = struct{}{}

		if !v.VersionType.Valid() {
			return &ValidationError{Field: "version_type", Reason: fmt.Sprintf("unknown version type %q on %s", v.VersionType, v.UUID)}
		}
		if !v.Status.Valid() {
			return &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q on %s", v.Status, v.UUID)}
		}
	}
	return nil
}

func validateNode(n *TreeNode, seen map[string]struct{}) error {
	if n.UUID != "" {
		if _, dup := seen[n.UUID]; dup {
			return &ValidationError{Field: "uuid", Reason: fmt.Sprintf("duplicate node identifier %q", n.UUID)}
		}
		seen[n.UUID] = struct{}{}
	}

	child, ok := n.Level.Child()
	if !ok && len(n.Rows) > 0 {
		return &ValidationError{Field: "rows", Reason: fmt.Sprintf("%s node %q cannot have children", n.Level, n.UUID)}
	}

	for _, row := range n.Rows {
		if row == nil {
			return &ValidationError{Field: "rows", Reason: fmt.Sprintf("empty row under %q", n.UUID)}
		}
		if row.Level != child {
			return &ValidationError{Field: "level", Reason: fmt.Sprintf("%q is a %s under a %s", row.UUID, row.Level, n.Level)}
		}
		if row.UUID == "" {
			return &ValidationError{Field: "uuid", Reason: fmt.Sprintf("%s node under %q has no identifier", row.Level, n.UUID)}
		}
		if err := validateNode(row, seen); err != nil {
			return err
		}
	}
	return nil
}

// Fingerprint hashes the canonical JSON form of the dataset. Two datasets
// generated from the same seed share a fingerprint.
func (d *Dataset) Fingerprint() (string, error) {
	buf, err := json.Marshal(d)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode dataset")
	}
	sum := blake3.Sum256(buf)
	return hex.EncodeToString(sum[:]), nil
}
