package timeline

// OpenTimelineIO schema documents. Only the fields slate writes are
// modelled; every object carries its OTIO_SCHEMA tag.

const (
	schemaTimeline     = "Timeline.1"
	schemaStack        = "Stack.1"
	schemaTrack        = "Track.1"
	schemaClip         = "Clip.2"
	schemaExternalRef  = "ExternalReference.1"
	schemaTimeRange    = "TimeRange.1"
	schemaRationalTime = "RationalTime.1"

	// DefaultMediaKey names the clip's active media reference.
	DefaultMediaKey = "DEFAULT_MEDIA"

	// KindVideo is the only track kind slate produces.
	KindVideo = "Video"
)

type RationalTime struct {
	Schema string  `json:"OTIO_SCHEMA"`
	Rate   float64 `json:"rate"`
	Value  float64 `json:"value"`
}

func NewRationalTime(value, rate float64) RationalTime {
	return RationalTime{Schema: schemaRationalTime, Rate: rate, Value: value}
}

type TimeRange struct {
	Schema    string       `json:"OTIO_SCHEMA"`
	Duration  RationalTime `json:"duration"`
	StartTime RationalTime `json:"start_time"`
}

// NewTimeRange covers duration frames from start, both at rate.
func NewTimeRange(start, duration, rate float64) *TimeRange {
	return &TimeRange{
		Schema:    schemaTimeRange,
		Duration:  NewRationalTime(duration, rate),
		StartTime: NewRationalTime(start, rate),
	}
}

type ExternalReference struct {
	Schema               string         `json:"OTIO_SCHEMA"`
	Metadata             map[string]any `json:"metadata"`
	Name                 string         `json:"name"`
	AvailableRange       *TimeRange     `json:"available_range"`
	AvailableImageBounds any            `json:"available_image_bounds"`
	TargetURL            string         `json:"target_url"`
}

type Clip struct {
	Schema                  string                        `json:"OTIO_SCHEMA"`
	Metadata                map[string]any                `json:"metadata"`
	Name                    string                        `json:"name"`
	SourceRange             *TimeRange                    `json:"source_range"`
	Effects                 []any                         `json:"effects"`
	Markers                 []any                         `json:"markers"`
	Enabled                 bool                          `json:"enabled"`
	MediaReferences         map[string]*ExternalReference `json:"media_references"`
	ActiveMediaReferenceKey string                        `json:"active_media_reference_key"`
}

// MediaReference returns the clip's active reference.
func (c *Clip) MediaReference() *ExternalReference {
	return c.MediaReferences[c.ActiveMediaReferenceKey]
}

type Track struct {
	Schema      string         `json:"OTIO_SCHEMA"`
	Metadata    map[string]any `json:"metadata"`
	Name        string         `json:"name"`
	SourceRange *TimeRange     `json:"source_range"`
	Effects     []any          `json:"effects"`
	Markers     []any          `json:"markers"`
	Enabled     bool           `json:"enabled"`
	Children    []*Clip        `json:"children"`
	Kind        string         `json:"kind"`
}

type Stack struct {
	Schema      string         `json:"OTIO_SCHEMA"`
	Metadata    map[string]any `json:"metadata"`
	Name        string         `json:"name"`
	SourceRange *TimeRange     `json:"source_range"`
	Effects     []any          `json:"effects"`
	Markers     []any          `json:"markers"`
	Enabled     bool           `json:"enabled"`
	Children    []*Track       `json:"children"`
}

// Timeline is the root of an OTIO document.
type Timeline struct {
	Schema          string         `json:"OTIO_SCHEMA"`
	Metadata        map[string]any `json:"metadata"`
	Name            string         `json:"name"`
	GlobalStartTime *RationalTime  `json:"global_start_time"`
	Tracks          *Stack         `json:"tracks"`
}

func newTimeline(name string, track *Track) *Timeline {
	return &Timeline{
		Schema:   schemaTimeline,
		Metadata: map[string]any{},
		Name:     name,
		Tracks: &Stack{
			Schema:   schemaStack,
			Metadata: map[string]any{},
			Name:     "tracks",
			Effects:  []any{},
			Markers:  []any{},
			Enabled:  true,
			Children: []*Track{track},
		},
	}
}

func newTrack(name string) *Track {
	return &Track{
		Schema:   schemaTrack,
		Metadata: map[string]any{},
		Name:     name,
		Effects:  []any{},
		Markers:  []any{},
		Enabled:  true,
		Children: []*Clip{},
		Kind:     KindVideo,
	}
}

func newClip(name string, ref *ExternalReference, source *TimeRange) *Clip {
	return &Clip{
		Schema:                  schemaClip,
		Metadata:                map[string]any{},
		Name:                    name,
		SourceRange:             source,
		Effects:                 []any{},
		Markers:                 []any{},
		Enabled:                 true,
		MediaReferences:         map[string]*ExternalReference{DefaultMediaKey: ref},
		ActiveMediaReferenceKey: DefaultMediaKey,
	}
}

func newExternalReference(url string, available *TimeRange) *ExternalReference {
	return &ExternalReference{
		Schema:         schemaExternalRef,
		Metadata:       map[string]any{},
		AvailableRange: available,
		TargetURL:      url,
	}
}
