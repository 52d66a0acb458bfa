//go:build unit

package api_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	stdhttptest "net/http/httptest"
	"strings"
	"testing"
	"time"

	"parking-booking-gateway/internal/domain/booking"
	"parking-booking-gateway/internal/handler/api"
	resdto "parking-booking-gateway/internal/handler/dto/response"
	"parking-booking-gateway/internal/infra/storage"
	"parking-booking-gateway/internal/pkg/clock"
	"parking-booking-gateway/internal/pkg/config"
	"parking-booking-gateway/internal/pkg/cookie"
	"parking-booking-gateway/internal/usecase/bookingcache"
	"parking-booking-gateway/internal/usecase/projection"
	"parking-booking-gateway/internal/usecase/reconciler"
	"parking-booking-gateway/tests/common/httptest"
	sessionmock "parking-booking-gateway/tests/mock/session"
	sharedmock "parking-booking-gateway/tests/mock/shared"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newWatchServer(t *testing.T) (*stdhttptest.Server, *reconciler.Scheduler) {
	t.Helper()
	ctrl := gomock.NewController(t)
	apiMock := sharedmock.NewMockParkingAPI(ctrl)
	creds := sharedmock.NewMockCredentials(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.NewTestConfig()

	store := storage.NewMemoryStore(logger)
	clk := clock.NewRealClock()
	cache := bookingcache.New(store, clk, cfg.Booking, logger)
	rec := reconciler.New(apiMock, creds, cache, projection.NewProjector(apiMock, clk, cfg, logger), clk, cfg.Reconcile, logger)
	sched := reconciler.NewScheduler(rec, store, cache, cfg.Reconcile, logger)

	creds.EXPECT().Token(gomock.Any(), testNamespace).Return("tok", nil).AnyTimes()
	apiMock.EXPECT().ListBookings(gomock.Any(), "tok").Return([]booking.Booking{}, nil).AnyTimes()

	router, group := newTestRouter(sessionmock.NewMockService(ctrl))
	group.GET("/bookings/watch", api.NewWatchHandler(sched, cfg, logger).Watch)

	sched.Start()
	server := stdhttptest.NewServer(router)
	t.Cleanup(func() {
		server.Close()
		sched.Stop(context.Background())
	})
	return server, sched
}

func dialWatch(t *testing.T, server *stdhttptest.Server, view string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/bookings/watch?view=" + view
	header := http.Header{}
	header.Set("Cookie", cookie.SessionCookieName+"="+testNamespace)

	conn, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// readUntil skips frames until one of type want arrives.
func readUntil(t *testing.T, conn *websocket.Conn, want resdto.MessageType) map[string]any {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	for {
		var msg map[string]any
		require.NoError(t, conn.ReadJSON(&msg))
		if msg["type"] == string(want) {
			return msg
		}
	}
}

func TestWatchHandler(t *testing.T) {
	t.Run("success: opens a watch and answers pings", func(t *testing.T) {
		server, sched := newWatchServer(t)
		conn := dialWatch(t, server, "bookings")

		opened := readUntil(t, conn, resdto.MessageWatchOpened)
		payload, ok := opened["payload"].(map[string]any)
		require.True(t, ok)
		require.Equal(t, "bookings", payload["view"])
		require.NotEmpty(t, payload["watch_id"])
		require.Equal(t, 1, sched.Count())

		require.NoError(t, conn.WriteJSON(map[string]string{"type": "ping"}))
		readUntil(t, conn, resdto.MessagePong)

		require.NoError(t, conn.WriteJSON(map[string]string{"type": "subscribe"}))
		msg := readUntil(t, conn, resdto.MessageError)
		require.Equal(t, "Unknown message type.", msg["payload"].(map[string]any)["message"])
	})

	t.Run("success: closing the socket removes the watch", func(t *testing.T) {
		server, sched := newWatchServer(t)
		conn := dialWatch(t, server, "dashboard")
		readUntil(t, conn, resdto.MessageWatchOpened)

		require.NoError(t, conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
		require.Eventually(t, func() bool { return sched.Count() == 0 }, 3*time.Second, 10*time.Millisecond)
	})

	t.Run("error: unknown view is refused before the upgrade", func(t *testing.T) {
		router, group := newTestRouter(sessionmock.NewMockService(gomock.NewController(t)))
		group.GET("/bookings/watch", api.NewWatchHandler(nil, config.NewTestConfig(), slog.New(slog.NewTextHandler(io.Discard, nil))).Watch)

		rec := httptest.PerformRequestWithCookies(t, router, http.MethodGet, "/bookings/watch?view=admin", nil, sessionCookies())
		httptest.AssertErrorResponse(t, rec, http.StatusBadRequest, "Unknown view")
	})
}
