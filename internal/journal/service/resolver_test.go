package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"journal-service/internal/journal/models"
	"journal-service/internal/journal/service/mocks"
	"journal-service/internal/journal/store"
	id "journal-service/pkg/domain"
)

type ResolverSuite struct {
	suite.Suite
	ctx      context.Context
	ctrl     *gomock.Controller
	repo     *mocks.MockRepository
	resolver *Resolver
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverSuite))
}

func (s *ResolverSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.repo = mocks.NewMockRepository(s.ctrl)
	s.resolver = NewResolver(s.repo)
}

func (s *ResolverSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ResolverSuite) expectName(name string, ids ...id.JournalID) {
	s.repo.EXPECT().FindAllByAttribute(gomock.Any(), models.AttributeName, name).Return(ids, nil).AnyTimes()
}

func (s *ResolverSuite) expectISSN(issn string, ids ...id.JournalID) {
	s.repo.EXPECT().FindAllByAttribute(gomock.Any(), models.AttributeISSNs, issn).Return(ids, nil).AnyTimes()
}

func (s *ResolverSuite) TestNoSignals() {
	s.Run("nothing queried for empty input", func() {
		_, found, err := s.resolver.Resolve(s.ctx, "", nil)
		s.Require().NoError(err)
		s.False(found)
	})

	s.Run("no overlap is not found", func() {
		s.expectName("Unknown")
		s.expectISSN("Print:0000-0000")

		_, found, err := s.resolver.Resolve(s.ctx, "Unknown", []string{"Print:0000-0000"})
		s.Require().NoError(err)
		s.False(found)
	})
}

// A complete record is reachable by its name or either ISSN. A second record
// shares the name and one ISSN, so whichever ISSN is supplied decides.
func (s *ResolverSuite) TestHighestScoreWins() {
	complete := id.NewJournalID()
	missingName := id.NewJournalID()
	s.expectISSN("Print:0000-0001", complete)
	s.expectISSN("Online:0000-0002", missingName)
	s.expectName("Fancy Journal", complete, missingName)
	s.expectName("MOO")

	cases := []struct {
		name  string
		title string
		issns []string
		want  id.JournalID
	}{
		{"name and first issn", "Fancy Journal", []string{"Print:0000-0001"}, complete},
		{"name and second issn", "Fancy Journal", []string{"Online:0000-0002"}, missingName},
		{"unknown name and second issn", "MOO", []string{"Online:0000-0002"}, missingName},
		{"unknown name and first issn", "MOO", []string{"Print:0000-0001"}, complete},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			got, found, err := s.resolver.Resolve(s.ctx, tc.title, tc.issns)
			s.Require().NoError(err)
			s.True(found)
			s.Equal(tc.want, got)
		})
	}

	s.Run("equal scores still resolve", func() {
		_, found, err := s.resolver.Resolve(s.ctx, "MOO", []string{"Print:0000-0001", "Online:0000-0002"})
		s.Require().NoError(err)
		s.True(found)
	})
}

func (s *ResolverSuite) TestTieBreakIsSmallestID() {
	a := id.JournalID{0x01}
	b := id.JournalID{0x02}
	s.expectISSN("Print:0000-0001", b)
	s.expectISSN("Online:0000-0002", a)

	for range 5 {
		got, found, err := s.resolver.Resolve(s.ctx, "", []string{"Print:0000-0001", "Online:0000-0002"})
		s.Require().NoError(err)
		s.True(found)
		s.Equal(a, got)
	}
}

func (s *ResolverSuite) TestRankScoresEachLookup() {
	both := id.NewJournalID()
	one := id.NewJournalID()
	s.expectName("Fancy Journal", both)
	s.expectISSN("Print:0000-0001", both, one)
	s.expectISSN("Online:0000-0002", both)

	matches, err := s.resolver.Rank(s.ctx, "Fancy Journal", []string{"Print:0000-0001", "Online:0000-0002"})
	s.Require().NoError(err)
	s.Equal([]Match{{ID: both, Score: 3}, {ID: one, Score: 1}}, matches)
}

func (s *ResolverSuite) TestDuplicateIDsInOneResultCountOnce() {
	journalID := id.NewJournalID()
	s.expectISSN("Print:0000-0001", journalID, journalID)

	matches, err := s.resolver.Rank(s.ctx, "", []string{"Print:0000-0001"})
	s.Require().NoError(err)
	s.Equal([]Match{{ID: journalID, Score: 1}}, matches)
}

func (s *ResolverSuite) TestRepositoryErrorPropagates() {
	boom := errors.New("connection reset")
	s.repo.EXPECT().FindAllByAttribute(gomock.Any(), models.AttributeName, "Fancy Journal").Return(nil, boom)

	_, _, err := s.resolver.Resolve(s.ctx, "Fancy Journal", []string{"Print:0000-0001"})
	s.ErrorIs(err, boom)
}

// Each signal alone reaches the same record, and a record matching two
// signals beats one matching a single signal.
func TestResolverMultiSignal(t *testing.T) {
	ctx := context.Background()
	repo := store.NewInMemory()
	target, err := repo.CreateAndRead(ctx, &models.Journal{Name: "Fancy Journal", ISSNs: []string{"Print:0000-0001", "Online:0000-0002"}})
	require.NoError(t, err)
	_, err = repo.CreateAndRead(ctx, &models.Journal{ISSNs: []string{"Print:0000-0001"}})
	require.NoError(t, err)

	resolver := NewResolver(repo)
	for _, probe := range []struct {
		name  string
		issns []string
	}{
		{"", []string{"Online:0000-0002"}},
		{"Fancy Journal", nil},
		{"Fancy Journal", []string{"Print:0000-0001"}},
		{"", []string{"Print:0000-0001", "Online:0000-0002"}},
	} {
		got, found, err := resolver.Resolve(ctx, probe.name, probe.issns)
		require.NoError(t, err)
		require.True(t, found, "name=%q issns=%v", probe.name, probe.issns)
		require.Equal(t, target.ID, got, "name=%q issns=%v", probe.name, probe.issns)
	}
}
