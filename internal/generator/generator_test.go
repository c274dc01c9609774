package generator

import (
	"regexp"
	"strings"
	"testing"

	"github.com/caesium-cloud/slate/internal/dataset"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var (
	sequencePattern = regexp.MustCompile(`^[a-z]{3}_[0-9]{3}_seq$`)
	shotPattern     = regexp.MustCompile(`^[a-z]{3}_[0-9]{3}_[0-9]{4}$`)
)

type GeneratorTestSuite struct {
	suite.Suite
	d *dataset.Dataset
}

func (s *GeneratorTestSuite) SetupSuite() {
	s.d = Generate(DefaultSeed)
}

func (s *GeneratorTestSuite) TestDeterministic() {
	again := Generate(DefaultSeed)
	assert.Empty(s.T(), cmp.Diff(s.d, again))

	a, err := s.d.Fingerprint()
	require.NoError(s.T(), err)
	b, err := again.Fingerprint()
	require.NoError(s.T(), err)
	assert.Equal(s.T(), a, b)
}

func (s *GeneratorTestSuite) TestSeedChangesContent() {
	other := Generate(DefaultSeed + 1)
	assert.NotEqual(s.T(), s.d.Jobs.Rows[0].UUID, other.Jobs.Rows[0].UUID)
}

func (s *GeneratorTestSuite) TestTreeShape() {
	root := s.d.Jobs
	assert.Equal(s.T(), dataset.LevelStudio, root.Level)
	require.Len(s.T(), root.Rows, len(Jobs))

	for i, job := range root.Rows {
		assert.Equal(s.T(), Jobs[i], job.Job)
		assert.Equal(s.T(), dataset.LevelJob, job.Level)
		assert.GreaterOrEqual(s.T(), len(job.Rows), 3)
		assert.LessOrEqual(s.T(), len(job.Rows), 6)

		for _, seq := range job.Rows {
			assert.Equal(s.T(), dataset.LevelSequence, seq.Level)
			assert.Regexp(s.T(), sequencePattern, seq.Sequence)
			assert.Equal(s.T(), job.Job, seq.Job)
			assert.Equal(s.T(), false, seq.Extra["expanded"])
			assert.GreaterOrEqual(s.T(), len(seq.Rows), 3)
			assert.LessOrEqual(s.T(), len(seq.Rows), 6)

			for i, shot := range seq.Rows {
				assert.Equal(s.T(), dataset.LevelShot, shot.Level)
				assert.Regexp(s.T(), shotPattern, shot.Shot)
				assert.Equal(s.T(), ShotCode(seq.Sequence, i+1), shot.Shot)
				assert.Empty(s.T(), shot.Rows)

				start, end, err := dataset.ParseRange(shot.CompRange)
				require.NoError(s.T(), err)
				assert.Equal(s.T(), 1001, start)
				assert.GreaterOrEqual(s.T(), end-start, 40)
				assert.LessOrEqual(s.T(), end-start, 200)
			}
		}
	}

	require.NoError(s.T(), s.d.Validate())
}

func (s *GeneratorTestSuite) TestVersionsTable() {
	sequences := map[string]*dataset.TreeNode{}
	shots := map[string]*dataset.TreeNode{}
	for _, job := range s.d.Jobs.Rows {
		for _, seq := range job.Rows {
			sequences[seq.UUID] = seq
			for _, shot := range seq.Rows {
				shots[shot.UUID] = shot
			}
		}
	}

	aggregates := 0
	perShotType := map[string]int{}
	for _, v := range s.d.Versions {
		assert.True(s.T(), v.Status.Valid())
		assert.Contains(s.T(), artists, v.Artist)
		assert.Equal(s.T(), true, v.Extra["asset"])

		start, end, err := dataset.ParseRange(v.FrameRange)
		require.NoError(s.T(), err)
		assert.Equal(s.T(), 1001, start)

		if v.VersionType == dataset.VersionTypeOTIO {
			aggregates++
			seq, ok := sequences[v.ShotID]
			require.True(s.T(), ok)
			assert.Equal(s.T(), v.SequenceID, v.ShotID)
			assert.Equal(s.T(), 1, v.Version)
			assert.Equal(s.T(), "OTIO_"+seq.Sequence+"_v001", v.VersionName)
			assert.True(s.T(), strings.HasSuffix(v.MediaPath, ".otio"))
			assert.GreaterOrEqual(s.T(), end-start, 550)
			assert.LessOrEqual(s.T(), end-start, 2000)
			continue
		}

		shot, ok := shots[v.ShotID]
		require.True(s.T(), ok)
		assert.Equal(s.T(), VersionName(v.VersionType, shot.Shot, v.Version), v.VersionName)
		assert.True(s.T(), strings.HasSuffix(v.MediaPath, "."+v.FrameRange+".fake"))
		assert.GreaterOrEqual(s.T(), end-start, 50)
		assert.LessOrEqual(s.T(), end-start, 200)
		perShotType[v.ShotID+"/"+string(v.VersionType)]++
	}

	assert.Equal(s.T(), len(sequences), aggregates)
	assert.Len(s.T(), perShotType, len(shots)*len(dataset.ShotVersionTypes))
	for key, n := range perShotType {
		assert.True(s.T(), n >= 1 && n <= 3, key)
	}
}

func (s *GeneratorTestSuite) TestHelpers() {
	assert.Equal(s.T(), "abc_123_0010", ShotCode("abc_123_seq", 1))
	assert.Equal(s.T(), "abc_123_0060", ShotCode("abc_123_seq", 6))
	assert.Equal(s.T(), "COMP_abc_123_0010_v002", VersionName(dataset.VersionTypeComp, "abc_123_0010", 2))
}

func TestGeneratorTestSuite(t *testing.T) {
	suite.Run(t, new(GeneratorTestSuite))
}
