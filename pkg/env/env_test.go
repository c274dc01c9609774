package env

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type EnvTestSuite struct {
	suite.Suite
}

func (s *EnvTestSuite) SetupTest() {
	variables = new(Environment)
}

func (s *EnvTestSuite) TestProcess() {
	assert.Nil(s.T(), Process())
	assert.NotNil(s.T(), Variables())
	assert.Equal(s.T(), "info", Variables().LogLevel)
	assert.Equal(s.T(), int64(1234), Variables().Seed)
	assert.Equal(s.T(), 100, Variables().EventBuffer)
	assert.Equal(s.T(), "console", Variables().NotifyTransport)
	assert.Equal(s.T(), 5*time.Second, Variables().NotifyTimeout)
}

func (s *EnvTestSuite) TestProcessSeedOverride() {
	s.T().Setenv("SLATE_SEED", "42")
	assert.Nil(s.T(), Process())
	assert.Equal(s.T(), int64(42), Variables().Seed)
}

func (s *EnvTestSuite) TestProcessInvalidTypeFailure() {
	s.T().Setenv("SLATE_PORT", "not_a_port")
	assert.NotNil(s.T(), Process())
}

func (s *EnvTestSuite) TestProcessInvalidLogLevelFailure() {
	s.T().Setenv("SLATE_LOG_LEVEL", "bogus")
	assert.NotNil(s.T(), Process())
}

func TestEnvTestSuite(t *testing.T) {
	suite.Run(t, new(EnvTestSuite))
}
