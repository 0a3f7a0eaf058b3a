package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/deckflash/internal/repository"
	"github.com/vytor/deckflash/internal/repository/sqlite"
	"github.com/vytor/deckflash/internal/testutil"
)

type KVRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.KVRepository
}

func (s *KVRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewKVRepository(s.db)
}

func (s *KVRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *KVRepositorySuite) TestGet_Missing() {
	value, ok, err := s.repo.Get(context.Background(), "nope")
	s.Require().NoError(err)
	s.Assert().False(ok)
	s.Assert().Nil(value)
}

func (s *KVRepositorySuite) TestPut_LastWriteWins() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Put(ctx, "k", []byte(`{"v":1}`)))
	s.Require().NoError(s.repo.Put(ctx, "k", []byte(`{"v":2}`)))

	value, ok, err := s.repo.Get(ctx, "k")
	s.Require().NoError(err)
	s.Assert().True(ok)
	s.Assert().JSONEq(`{"v":2}`, string(value))

	var n int
	s.Require().NoError(s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM kv_store`).Scan(&n))
	s.Assert().Equal(1, n)
}

func (s *KVRepositorySuite) TestDeleteAndKeys() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Put(ctx, repository.KeyProgress, []byte(`{}`)))
	s.Require().NoError(s.repo.Put(ctx, repository.KeyPreferences, []byte(`{}`)))

	keys, err := s.repo.Keys(ctx)
	s.Require().NoError(err)
	s.Assert().Equal([]string{"preferences", "progress"}, keys)

	s.Require().NoError(s.repo.Delete(ctx, repository.KeyProgress))
	s.Require().NoError(s.repo.Delete(ctx, "never-written"))

	keys, err = s.repo.Keys(ctx)
	s.Require().NoError(err)
	s.Assert().Equal([]string{"preferences"}, keys)
}

func TestKVRepositorySuite(t *testing.T) {
	suite.Run(t, new(KVRepositorySuite))
}
