package joincode

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisStoreTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	store  *RedisStore
}

func (s *RedisStoreTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	store, err := NewRedis(&RedisConfig{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.store = store
}

func (s *RedisStoreTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisStoreTestSuite(t *testing.T) {
	suite.Run(t, new(RedisStoreTestSuite))
}

func (s *RedisStoreTestSuite) TestReserveAndRelease() {
	ctx := context.Background()

	ok, err := s.store.Reserve(ctx, "ABCD")
	s.Require().NoError(err)
	s.True(ok)
	s.True(s.mr.Exists("cheat:code:ABCD"))

	ok, err = s.store.Reserve(ctx, "ABCD")
	s.Require().NoError(err)
	s.False(ok)

	s.Require().NoError(s.store.Release(ctx, "ABCD"))
	s.False(s.mr.Exists("cheat:code:ABCD"))

	ok, err = s.store.Reserve(ctx, "ABCD")
	s.Require().NoError(err)
	s.True(ok)
}

func (s *RedisStoreTestSuite) TestKeyPrefix() {
	store, err := NewRedis(&RedisConfig{
		RedisClient: s.client,
		KeyPrefix:   "test:",
	})
	s.Require().NoError(err)

	ok, err := store.Reserve(context.Background(), "WXYZ")
	s.Require().NoError(err)
	s.True(ok)
	s.True(s.mr.Exists("test:WXYZ"))
}

func (s *RedisStoreTestSuite) TestAllocatorSharesStore() {
	ctx := context.Background()

	gen := seqGen{0}
	first := NewAllocator(s.store, &gen)
	second := NewAllocator(s.store, &gen)

	code, err := first.Allocate(ctx)
	s.Require().NoError(err)
	s.Equal("AAAA", code)

	_, err = second.Allocate(ctx)
	s.ErrorIs(err, ErrExhausted)
}

func (s *RedisStoreTestSuite) TestReserveError() {
	s.mr.SetError("server down")
	defer s.mr.SetError("")

	_, err := s.store.Reserve(context.Background(), "ABCD")
	s.Error(err)
}

func (s *RedisStoreTestSuite) TestNewRedisValidation() {
	_, err := NewRedis(nil)
	s.EqualError(err, "config cannot be nil")

	_, err = NewRedis(&RedisConfig{})
	s.EqualError(err, "redis client cannot be nil")
}
