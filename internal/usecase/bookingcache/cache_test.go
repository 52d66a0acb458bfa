//go:build unit

package bookingcache_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"parking-booking-gateway/internal/domain/booking"
	"parking-booking-gateway/internal/infra/storage"
	"parking-booking-gateway/internal/pkg/clock"
	"parking-booking-gateway/internal/pkg/config"
	"parking-booking-gateway/internal/usecase/bookingcache"
	"parking-booking-gateway/internal/usecase/shared"
	"parking-booking-gateway/tests/common/builder"
	sharedmock "parking-booking-gateway/tests/mock/shared"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const ns = "session-1"

type CacheTestSuite struct {
	suite.Suite
	ctx   context.Context
	clock *clock.MockClock
	store *storage.MemoryStore
	cache *bookingcache.Cache
}

func (s *CacheTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = clock.NewMockClock(time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC))
	s.store = storage.NewMemoryStore(discardLogger())
	s.cache = bookingcache.New(s.store, s.clock, config.NewTestConfig().Booking, discardLogger())
}

func TestCacheSuite(t *testing.T) {
	suite.Run(t, new(CacheTestSuite))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleList() []booking.DisplayBooking {
	return []booking.DisplayBooking{
		builder.NewBookingBuilder().WithID("3").WithStatus(booking.ServerUpcoming).BuildDisplay(),
		builder.NewBookingBuilder().WithID("1").BuildDisplay(),
		builder.NewBookingBuilder().WithID("2").WithStatus(booking.ServerCancelled).BuildDisplay(),
	}
}

func (s *CacheTestSuite) TestSaveLoad() {
	s.Run("round trip twice yields the identical list", func() {
		list := sampleList()

		s.cache.Save(s.ctx, ns, list)
		first, ok := s.cache.Load(s.ctx, ns)
		s.Require().True(ok)

		s.cache.Save(s.ctx, ns, list)
		second, ok := s.cache.Load(s.ctx, ns)
		s.Require().True(ok)

		s.Empty(cmp.Diff(first, second))
		s.Equal([]string{"3", "1", "2"}, []string{second[0].ID, second[1].ID, second[2].ID})
		s.True(list[1].EntryTime.Equal(second[1].EntryTime))
	})

	s.Run("miss when nothing was saved", func() {
		_, ok := s.cache.Load(s.ctx, "other-session")
		s.False(ok)
	})

	s.Run("malformed value reads as a miss", func() {
		s.Require().NoError(s.store.Set(s.ctx, "broken", shared.KeyAllProcessed, "{not json"))
		list, ok := s.cache.Load(s.ctx, "broken")
		s.False(ok)
		s.Nil(list)
	})
}

func (s *CacheTestSuite) TestSaveEmptyClears() {
	s.cache.Save(s.ctx, ns, sampleList())
	_, ok := s.cache.Load(s.ctx, ns)
	s.Require().True(ok)

	s.cache.Save(s.ctx, ns, []booking.DisplayBooking{})

	list, ok := s.cache.Load(s.ctx, ns)
	s.False(ok)
	s.Empty(list)
	s.Empty(s.cache.Recent(s.ctx, ns))
	_, ok = s.cache.Detail(s.ctx, ns, "1")
	s.False(ok)
}

func (s *CacheTestSuite) TestClearKeepsSession() {
	s.Require().NoError(s.store.Set(s.ctx, ns, shared.KeyToken, `"sealed"`))
	s.cache.Save(s.ctx, ns, sampleList())

	s.cache.Clear(s.ctx, ns)

	_, ok, err := s.store.Get(s.ctx, ns, shared.KeyToken)
	s.Require().NoError(err)
	s.True(ok)
}

func (s *CacheTestSuite) TestRecentCap() {
	list := make([]booking.DisplayBooking, 0, 15)
	for i := 0; i < 15; i++ {
		list = append(list, builder.NewBookingBuilder().WithID(string(rune('a'+i))).BuildDisplay())
	}

	s.cache.Save(s.ctx, ns, list)

	recent := s.cache.Recent(s.ctx, ns)
	s.Len(recent, 10)
	s.Equal("a", recent[0])
}

func (s *CacheTestSuite) TestDetailAndRefreshStamp() {
	s.cache.Save(s.ctx, ns, sampleList())

	entry, ok := s.cache.Detail(s.ctx, ns, "2")
	s.Require().True(ok)
	s.Equal(booking.StatusCancelled, entry.Data.Status)
	s.Equal(s.clock.Now().UnixMilli(), entry.Timestamp)

	at, ok := s.cache.LastRefresh(s.ctx, ns)
	s.Require().True(ok)
	s.True(at.Equal(s.clock.Now()))
}

func (s *CacheTestSuite) TestRemember() {
	s.cache.Save(s.ctx, ns, sampleList())

	created := builder.NewBookingBuilder().WithID("99").WithStatus(booking.ServerUpcoming).BuildDisplay()
	s.cache.Remember(s.ctx, ns, created)
	s.cache.Remember(s.ctx, ns, created)

	s.Equal([]string{"99", "3", "1", "2"}, s.cache.Recent(s.ctx, ns))
	entry, ok := s.cache.Detail(s.ctx, ns, "99")
	s.True(ok)
	s.Equal("99", entry.Data.ID)
}

func (s *CacheTestSuite) TestUpdateStatus() {
	s.cache.Save(s.ctx, ns, sampleList())

	s.cache.UpdateStatus(s.ctx, ns, "3", booking.StatusCancelled)

	list, ok := s.cache.Load(s.ctx, ns)
	s.Require().True(ok)
	s.Equal(booking.StatusCancelled, list[0].Status)
	entry, _ := s.cache.Detail(s.ctx, ns, "3")
	s.Equal(booking.StatusCancelled, entry.Data.Status)
}

func (s *CacheTestSuite) TestUpdateStatusKeepsRefreshStamp() {
	fetched := s.clock.Now()
	s.cache.Save(s.ctx, ns, sampleList())

	s.clock.Add(5 * time.Minute)
	s.cache.UpdateStatus(s.ctx, ns, "3", booking.StatusCancelled)

	at, ok := s.cache.LastRefresh(s.ctx, ns)
	s.Require().True(ok)
	s.True(at.Equal(fetched), "refresh stamp moved to %s", at)
	s.Equal([]string{"3", "1", "2"}, s.cache.Recent(s.ctx, ns))
}

func TestCacheSwallowsStorageFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := sharedmock.NewMockSessionStore(ctrl)
	cache := bookingcache.New(store, clock.NewRealClock(), config.NewTestConfig().Booking, discardLogger())
	ctx := context.Background()
	quota := errors.New("quota exceeded")

	store.EXPECT().Set(gomock.Any(), ns, gomock.Any(), gomock.Any()).Return(quota).Times(4)
	store.EXPECT().Get(gomock.Any(), ns, shared.KeyAllProcessed).Return("", false, quota)
	store.EXPECT().Remove(gomock.Any(), ns, gomock.Any()).Return(quota).Times(4)

	cache.Save(ctx, ns, sampleList())
	_, ok := cache.Load(ctx, ns)
	if ok {
		t.Fatal("expected a miss when storage fails")
	}
	cache.Clear(ctx, ns)
}
