package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/pduel/puzzleduel/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) TestGetStatsUnknownPlayer() {
	_, err := s.storage.GetStats(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrStatsNotFound)
}

func (s *StorageSuite) TestAddWinCreatesRecord() {
	s.Require().NoError(s.storage.AddWin(s.ctx, "alice"))

	stats, err := s.storage.GetStats(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.PlayerStats{Wins: 1, Losses: 0, TotalGames: 1}, stats)
}

func (s *StorageSuite) TestAddLossCreatesRecord() {
	s.Require().NoError(s.storage.AddLoss(s.ctx, "bob"))

	stats, err := s.storage.GetStats(s.ctx, "bob")
	s.Require().NoError(err)
	s.Equal(model.PlayerStats{Wins: 0, Losses: 1, TotalGames: 1}, stats)
}

func (s *StorageSuite) TestAccumulation() {
	for i := 0; i < 3; i++ {
		s.Require().NoError(s.storage.AddWin(s.ctx, "alice"))
	}
	for i := 0; i < 2; i++ {
		s.Require().NoError(s.storage.AddLoss(s.ctx, "alice"))
	}

	stats, err := s.storage.GetStats(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(3, stats.Wins)
	s.Equal(2, stats.Losses)
	s.Equal(stats.Wins+stats.Losses, stats.TotalGames)
}
