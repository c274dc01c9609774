// Package timeline turns an ordered run of shots into a single-track
// OpenTimelineIO document cut against one synthetic media reference.
package timeline

import (
	"encoding/json"
	"fmt"

	"github.com/caesium-cloud/slate/internal/dataset"
	"github.com/pkg/errors"
)

const (
	// Handles is the number of frames trimmed from each shot, split evenly
	// between head and tail.
	Handles = 16
	// Rate is the frame rate of every time value in the document.
	Rate = 24
	// DefaultName labels timelines built from an ad hoc selection.
	DefaultName = "Slate Timeline"
	// TrackName labels the single video track.
	TrackName = "Video Track"
)

// Shot is the part of a shot node the builder reads.
type Shot struct {
	Name     string
	Job      string
	Sequence string
	Start    int
	End      int
}

// ClipLength is the shot's duration once handles are trimmed. Ranges
// narrower than the handles give zero or negative lengths.
func (s Shot) ClipLength() int {
	return s.End - s.Start + 1 - Handles
}

// ShotFromNode reads a shot node's labels and comp range.
func ShotFromNode(n *dataset.TreeNode) (Shot, error) {
	if n == nil {
		return Shot{}, &dataset.ValidationError{Field: "shot", Reason: "no node"}
	}
	if n.Level != dataset.LevelShot {
		return Shot{}, &dataset.ValidationError{Field: "level", Reason: fmt.Sprintf("%q is a %s, not a shot", n.UUID, n.Level)}
	}
	start, end, err := dataset.ParseRange(n.CompRange)
	if err != nil {
		return Shot{}, errors.Wrapf(err, "shot %s", n.UUID)
	}
	return Shot{Name: n.Shot, Job: n.Job, Sequence: n.Sequence, Start: start, End: end}, nil
}

// ShotsFromNodes converts nodes in order, failing on the first bad one.
func ShotsFromNodes(nodes []*dataset.TreeNode) ([]Shot, error) {
	shots := make([]Shot, 0, len(nodes))
	for _, n := range nodes {
		s, err := ShotFromNode(n)
		if err != nil {
			return nil, err
		}
		shots = append(shots, s)
	}
	return shots, nil
}

// MediaURL is the synthetic sequence movie a timeline of the given total
// duration is cut from.
func MediaURL(job, sequence string, duration int) string {
	return fmt.Sprintf("http://fake_media/%s/%s/seq/seq_%s_v001/seq_%s_v001.1-%d.fake",
		job, sequence, sequence, sequence, duration)
}

// Build lays the shots back to back from frame 1, each clip cut from the
// same media reference. An empty input yields an empty track.
func Build(name string, shots []Shot) *Timeline {
	track := newTrack(TrackName)
	if len(shots) == 0 {
		return newTimeline(name, track)
	}

	total := 0
	for _, s := range shots {
		total += s.ClipLength()
	}

	last := shots[len(shots)-1]
	ref := newExternalReference(
		MediaURL(last.Job, last.Sequence, total),
		NewTimeRange(1, float64(total), Rate),
	)

	frame := 1
	for _, s := range shots {
		length := s.ClipLength()
		track.Children = append(track.Children,
			newClip(s.Name, ref, NewTimeRange(float64(frame), float64(length), Rate)))
		frame += length
	}

	return newTimeline(name, track)
}

// FromNodes is Build over shot nodes.
func FromNodes(name string, nodes []*dataset.TreeNode) (*Timeline, error) {
	shots, err := ShotsFromNodes(nodes)
	if err != nil {
		return nil, err
	}
	return Build(name, shots), nil
}

// Track returns the single video track.
func (t *Timeline) Track() *Track {
	if t.Tracks == nil || len(t.Tracks.Children) == 0 {
		return nil
	}
	return t.Tracks.Children[0]
}

// Duration is the summed length of the track's clips.
func (t *Timeline) Duration() float64 {
	total := 0.0
	if track := t.Track(); track != nil {
		for _, c := range track.Children {
			total += c.SourceRange.Duration.Value
		}
	}
	return total
}

// Encode serialises the timeline the way OTIO's own writer does, indented
// by four spaces.
func (t *Timeline) Encode() (string, error) {
	buf, err := json.MarshalIndent(t, "", "    ")
	if err != nil {
		return "", errors.Wrap(err, "failed to encode timeline")
	}
	return string(buf), nil
}

// Decode parses a document produced by Encode.
func Decode(doc string) (*Timeline, error) {
	var t Timeline
	if err := json.Unmarshal([]byte(doc), &t); err != nil {
		return nil, errors.Wrap(err, "failed to decode timeline")
	}
	if t.Schema != schemaTimeline {
		return nil, &dataset.ValidationError{Field: "OTIO_SCHEMA", Reason: fmt.Sprintf("unexpected schema %q", t.Schema)}
	}
	return &t, nil
}
