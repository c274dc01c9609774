package dataset

import (
	"fmt"
	"strings"
)

// Level tags a tree node's position in the production hierarchy.
type Level string

const (
	LevelStudio   Level = "studio"
	LevelJob      Level = "job"
	LevelSequence Level = "sequence"
	LevelShot     Level = "shot"
)

// Levels lists the hierarchy from the root down.
var Levels = []Level{LevelStudio, LevelJob, LevelSequence, LevelShot}

// ParseLevel converts a level name, case-insensitive.
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", &ValidationError{Field: "level", Reason: fmt.Sprintf("unknown level %q", s)}
	}
	return l, nil
}

// Valid reports whether l is one of the known levels.
func (l Level) Valid() bool {
	for _, known := range Levels {
		if l == known {
			return true
		}
	}
	return false
}

// Child returns the level expected directly below l.
func (l Level) Child() (Level, bool) {
	for i, known := range Levels {
		if l == known && i+1 < len(Levels) {
			return Levels[i+1], true
		}
	}
	return "", false
}

// Status is the review state of a version.
type Status string

const (
	StatusFinal    Status = "final"
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusDeclined Status = "declined"
	StatusProposed Status = "proposed"
)

// Statuses in the order the generator draws from them.
var Statuses = []Status{StatusFinal, StatusPending, StatusApproved, StatusDeclined, StatusProposed}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// VersionType is the kind of published asset.
type VersionType string

const (
	VersionTypeCG     VersionType = "CG"
	VersionTypeTrack  VersionType = "TRACK"
	VersionTypeComp   VersionType = "COMP"
	VersionTypeAnim   VersionType = "AMIM"
	VersionTypeLayout VersionType = "LAYOUT"
	VersionTypeOTIO   VersionType = "OTIO"
)

// ShotVersionTypes are the ordinary per-shot types, in generation order.
var ShotVersionTypes = []VersionType{
	VersionTypeCG,
	VersionTypeTrack,
	VersionTypeComp,
	VersionTypeAnim,
	VersionTypeLayout,
}

// Valid reports whether t is a per-shot type or the aggregate type.
func (t VersionType) Valid() bool {
	if t == VersionTypeOTIO {
		return true
	}
	for _, known := range ShotVersionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Aggregate reports whether records of this type belong to a sequence
// rather than a shot.
func (t VersionType) Aggregate() bool {
	return t == VersionTypeOTIO
}

// Extension holds fields the host may read that slate does not interpret.
type Extension map[string]any

// TreeNode is one node of the studio → job → sequence → shot hierarchy.
// Label fields are present only at the levels that carry them; an empty
// string means the field is absent.
type TreeNode struct {
	UUID      string      `yaml:"uuid,omitempty"`
	Level     Level       `yaml:"level"`
	Job       string      `yaml:"job,omitempty"`
	Sequence  string      `yaml:"sequence,omitempty"`
	Shot      string      `yaml:"shot,omitempty"`
	CompRange string      `yaml:"comp_range,omitempty"`
	Rows      []*TreeNode `yaml:"rows"`
	Extra     Extension   `yaml:",inline"`
}

// VersionRecord is one published asset version. JobID, SequenceID and
// ShotID are weak references to TreeNode identifiers.
type VersionRecord struct {
	UUID        string      `yaml:"uuid"`
	JobID       string      `yaml:"job_id"`
	SequenceID  string      `yaml:"sequence_id"`
	ShotID      string      `yaml:"shot_id"`
	VersionType VersionType `yaml:"version_type"`
	Version     int         `yaml:"version"`
	VersionName string      `yaml:"version_name"`
	Artist      string      `yaml:"artist"`
	Status      Status      `yaml:"status"`
	FrameRange  string      `yaml:"frame_range"`
	MediaPath   string      `yaml:"media_path"`
	Extra       Extension   `yaml:",inline"`
}

// Dataset pairs the job tree with the flat versions table.
type Dataset struct {
	Jobs     *TreeNode        `json:"jobs" yaml:"jobs"`
	Versions []*VersionRecord `json:"versions" yaml:"versions"`
}
