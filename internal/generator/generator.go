// Package generator builds the synthetic production dataset. The output is
// a pure function of the seed: identifiers, counts, ranges, artists and
// statuses all come from one seeded stream, drawn in a fixed order.
package generator

import (
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/caesium-cloud/slate/internal/dataset"
	"github.com/google/uuid"
)

// DefaultSeed is used when no seed is configured.
const DefaultSeed int64 = 1234

// Jobs are the fixed production codes at the top of the tree.
var Jobs = []string{"ABC123", "DRF14", "XSTUD_45", "KKJJ12", "BIGMOVIE14", "ANIMSERIES", "FORTRESS"}

const (
	firstFrame = 1001

	letters = "abcdefghijklmnopqrstuvwxyz"
	digits  = "0123456789"
)

// Generator draws a dataset from a seeded ChaCha8 stream.
type Generator struct {
	src *rand.ChaCha8
	rng *rand.Rand
}

// New returns a generator for the given seed.
func New(seed int64) *Generator {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], uint64(seed))
	src := rand.NewChaCha8(key)
	return &Generator{src: src, rng: rand.New(src)}
}

// Generate is shorthand for New(seed).Dataset().
func Generate(seed int64) *dataset.Dataset {
	return New(seed).Dataset()
}

// Dataset builds the tree and then the versions table. Calling it twice on
// the same generator continues the stream and yields a different dataset.
func (g *Generator) Dataset() *dataset.Dataset {
	root := g.tree()
	return &dataset.Dataset{
		Jobs:     root,
		Versions: g.versions(root),
	}
}

func (g *Generator) tree() *dataset.TreeNode {
	root := &dataset.TreeNode{Level: dataset.LevelStudio, Rows: []*dataset.TreeNode{}}

	for _, job := range Jobs {
		jobNode := &dataset.TreeNode{
			UUID:  g.newID(),
			Level: dataset.LevelJob,
			Job:   job,
			Rows:  []*dataset.TreeNode{},
		}

		codes := make([]string, g.between(3, 6))
		for i := range codes {
			codes[i] = g.sequenceCode()
		}

		for _, code := range codes {
			seqNode := &dataset.TreeNode{
				UUID:     g.newID(),
				Level:    dataset.LevelSequence,
				Job:      job,
				Sequence: code,
				Rows:     []*dataset.TreeNode{},
				Extra:    dataset.Extension{"expanded": false},
			}

			shots := g.between(3, 6)
			for i := 1; i <= shots; i++ {
				end := firstFrame + g.between(40, 200)
				seqNode.Rows = append(seqNode.Rows, &dataset.TreeNode{
					UUID:      g.newID(),
					Level:     dataset.LevelShot,
					Job:       job,
					Sequence:  code,
					Shot:      ShotCode(code, i),
					CompRange: dataset.FormatRange(firstFrame, end),
					Rows:      []*dataset.TreeNode{},
					Extra:     dataset.Extension{"expanded": false},
				})
			}

			jobNode.Rows = append(jobNode.Rows, seqNode)
		}

		root.Rows = append(root.Rows, jobNode)
	}

	return root
}

func (g *Generator) versions(root *dataset.TreeNode) []*dataset.VersionRecord {
	var out []*dataset.VersionRecord

	for _, job := range root.Rows {
		for _, seq := range job.Rows {
			out = append(out, g.sequenceVersion(job, seq))

			for _, shot := range seq.Rows {
				for _, vt := range dataset.ShotVersionTypes {
					n := g.between(1, 3)
					for v := 1; v <= n; v++ {
						out = append(out, g.shotVersion(job, seq, shot, vt, v))
					}
				}
			}
		}
	}

	return out
}

func (g *Generator) sequenceVersion(job, seq *dataset.TreeNode) *dataset.VersionRecord {
	const version = 1
	end := firstFrame + g.between(550, 2000)
	name := VersionName(dataset.VersionTypeOTIO, seq.Sequence, version)

	return &dataset.VersionRecord{
		UUID:        g.newID(),
		JobID:       job.UUID,
		SequenceID:  seq.UUID,
		ShotID:      seq.UUID,
		VersionType: dataset.VersionTypeOTIO,
		Version:     version,
		VersionName: name,
		Artist:      g.artist(),
		Status:      g.status(),
		FrameRange:  dataset.FormatRange(firstFrame, end),
		MediaPath:   fmt.Sprintf("http://fake_media/%s/%s/%s/%s/%s.otio", job.Job, seq.Sequence, dataset.VersionTypeOTIO, name, name),
		Extra:       dataset.Extension{"asset": true},
	}
}

func (g *Generator) shotVersion(job, seq, shot *dataset.TreeNode, vt dataset.VersionType, version int) *dataset.VersionRecord {
	end := firstFrame + g.between(50, 200)
	name := VersionName(vt, shot.Shot, version)

	return &dataset.VersionRecord{
		UUID:        g.newID(),
		JobID:       job.UUID,
		SequenceID:  seq.UUID,
		ShotID:      shot.UUID,
		VersionType: vt,
		Version:     version,
		VersionName: name,
		Artist:      g.artist(),
		Status:      g.status(),
		FrameRange:  dataset.FormatRange(firstFrame, end),
		MediaPath: fmt.Sprintf("http://fake_media/%s/%s/%s/%s/%s.%d-%d.fake",
			job.Job, shot.Shot, vt, name, name, firstFrame, end),
		Extra: dataset.Extension{"asset": true},
	}
}

// between draws uniformly from the closed interval [lo, hi].
func (g *Generator) between(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}

func (g *Generator) newID() string {
	return uuid.Must(uuid.NewRandomFromReader(g.src)).String()
}

func (g *Generator) artist() string {
	return artists[g.rng.IntN(len(artists))]
}

func (g *Generator) status() dataset.Status {
	return dataset.Statuses[g.rng.IntN(len(dataset.Statuses))]
}

func (g *Generator) sequenceCode() string {
	code := make([]byte, 0, 11)
	for range 3 {
		code = append(code, letters[g.rng.IntN(len(letters))])
	}
	code = append(code, '_')
	for range 3 {
		code = append(code, digits[g.rng.IntN(len(digits))])
	}
	return string(code) + "_seq"
}

// ShotCode derives the shot label from its sequence code and 1-based index.
func ShotCode(sequence string, idx int) string {
	return fmt.Sprintf("%s_%04d", strings.TrimSuffix(sequence, "_seq"), idx*10)
}

// VersionName formats the display name of a version, e.g. COMP_abc_123_0010_v002.
func VersionName(vt dataset.VersionType, label string, version int) string {
	return fmt.Sprintf("%s_%s_v%03d", vt, label, version)
}
