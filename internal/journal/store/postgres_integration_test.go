//go:build integration

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"journal-service/pkg/testutil/containers"
)

type PostgresSuite struct {
	RepositorySuite
	postgres *containers.PostgresContainer
}

func TestPostgresSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	s := new(PostgresSuite)
	s.newStore = func() repository {
		s.Require().NoError(s.postgres.TruncateTables(context.Background(), "journals"))
		return NewPostgres(s.postgres.DB)
	}
	suite.Run(t, s)
}

func (s *PostgresSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.Require().NoError(MigratePostgres(context.Background(), s.postgres.DB))
}

func (s *PostgresSuite) TestMigrateIsIdempotent() {
	s.Require().NoError(MigratePostgres(s.ctx, s.postgres.DB))
}
