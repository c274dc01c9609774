package search

import (
	"errors"
	"testing"

	"github.com/caesium-cloud/slate/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type SearchTestSuite struct {
	suite.Suite
	root *dataset.TreeNode
}

func shot(id, seq, name string) *dataset.TreeNode {
	return &dataset.TreeNode{UUID: id, Level: dataset.LevelShot, Sequence: seq, Shot: name, CompRange: "1001-1100"}
}

func (s *SearchTestSuite) SetupTest() {
	s.root = &dataset.TreeNode{
		Level: dataset.LevelStudio,
		Rows: []*dataset.TreeNode{
			{
				UUID: "j1", Level: dataset.LevelJob, Job: "ABC123",
				Rows: []*dataset.TreeNode{
					{
						UUID: "s1", Level: dataset.LevelSequence, Job: "ABC123", Sequence: "abc_100_seq",
						Rows: []*dataset.TreeNode{shot("sh1", "abc_100_seq", "abc_100_0010"), shot("sh2", "abc_100_seq", "abc_100_0020")},
					},
					{
						UUID: "s2", Level: dataset.LevelSequence, Job: "ABC123", Sequence: "xyz_200_seq",
						Rows: []*dataset.TreeNode{shot("sh3", "xyz_200_seq", "xyz_200_0010")},
					},
				},
			},
			{
				UUID: "j2", Level: dataset.LevelJob, Job: "DRF14",
				Rows: []*dataset.TreeNode{
					{
						UUID: "s3", Level: dataset.LevelSequence, Job: "DRF14", Sequence: "abc_100_seq",
						Rows: []*dataset.TreeNode{shot("sh4", "abc_100_seq", "abc_100_0010")},
					},
				},
			},
		},
	}
}

func ids(nodes []*dataset.TreeNode) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.UUID)
	}
	return out
}

func (s *SearchTestSuite) TestSearchByJobAndSequence() {
	got, err := Search(s.root, dataset.LevelShot, []Field{
		{Name: "uuid", Value: "j1"},
		{Name: "uuid", Value: "s1"},
	})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []string{"sh1", "sh2"}, ids(got))
}

func (s *SearchTestSuite) TestPruning() {
	// the sequence label would match deeper down, but no job carries it
	got, err := Search(s.root, dataset.LevelShot, []Field{{Name: "sequence", Value: "abc_100_seq"}})
	require.NoError(s.T(), err)
	assert.Empty(s.T(), got)
}

func (s *SearchTestSuite) TestTargetLevelNotDescended() {
	got, err := Search(s.root, dataset.LevelJob, nil)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []string{"j1", "j2"}, ids(got))
}

func (s *SearchTestSuite) TestDepthFirstOrder() {
	got, err := Search(s.root, dataset.LevelSequence, []Field{{Name: "level", Value: "job"}})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []string{"s1", "s2", "s3"}, ids(got))
}

func (s *SearchTestSuite) TestGlob() {
	got, err := Search(s.root, dataset.LevelShot, []Field{
		{Name: "job", Value: "DRF*", Glob: true},
	})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []string{"sh4"}, ids(got))
}

func (s *SearchTestSuite) TestBadInput() {
	_, err := Search(s.root, dataset.Level("episode"), nil)
	assert.True(s.T(), errors.Is(err, dataset.ErrValidation))

	_, err = Search(s.root, dataset.LevelShot, []Field{{Name: "job", Value: "[", Glob: true}})
	assert.True(s.T(), errors.Is(err, dataset.ErrValidation))

	_, err = Search(s.root, dataset.LevelShot, []Field{{Name: "job", Value: 7, Glob: true}})
	assert.True(s.T(), errors.Is(err, dataset.ErrValidation))
}

func (s *SearchTestSuite) TestVisitorDecisions() {
	m, err := NewMatcher(dataset.LevelShot, []Field{{Name: "job", Value: "ABC123"}})
	require.NoError(s.T(), err)

	assert.Equal(s.T(), Decision{Match: true}, m.Visit(&dataset.TreeNode{Level: dataset.LevelShot}))
	assert.Equal(s.T(), Decision{Descend: true}, m.Visit(&dataset.TreeNode{Level: dataset.LevelJob, Job: "ABC123"}))
	assert.Equal(s.T(), Decision{}, m.Visit(&dataset.TreeNode{Level: dataset.LevelJob, Job: "DRF14"}))
	assert.Equal(s.T(), Decision{}, m.Visit(&dataset.TreeNode{Level: dataset.LevelJob}))
}

func (s *SearchTestSuite) TestWalkWithCustomVisitor() {
	visited := []string{}
	got := Walk(s.root, VisitorFunc(func(n *dataset.TreeNode) Decision {
		visited = append(visited, n.UUID)
		return Decision{Match: n.UUID == "s2", Descend: n.UUID == "j1"}
	}))
	assert.Equal(s.T(), []string{"s2"}, ids(got))
	assert.Equal(s.T(), []string{"j1", "s1", "s2", "j2"}, visited)
}

func TestSearchTestSuite(t *testing.T) {
	suite.Run(t, new(SearchTestSuite))
}
