package oauth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/naveenspark/postdesk/internal/auth"
	"github.com/naveenspark/postdesk/internal/mocks"
	"github.com/naveenspark/postdesk/internal/route"
	"github.com/naveenspark/postdesk/internal/session"
	"github.com/naveenspark/postdesk/pkg/domain"
)

func validToken(t *testing.T) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("k"))
	require.NoError(t, err)
	return tok
}

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

type fixture struct {
	handler *Handler
	api     *mocks.MockAuthAPI
	store   *session.MemoryStore
	ctrl    *auth.Controller
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	api := mocks.NewMockAuthAPI(gomock.NewController(t))
	store := session.NewMemoryStore("")
	ctrl := auth.NewController(api, store, quiet())
	return &fixture{
		handler: &Handler{Store: store, Profiles: api, Sessions: ctrl, Logger: quiet()},
		api:     api,
		store:   store,
		ctrl:    ctrl,
	}
}

func TestHandleValidToken(t *testing.T) {
	f := newFixture(t)
	tok := validToken(t)
	user := &domain.User{ID: 1, Email: "a@b.co"}
	f.api.EXPECT().GetCurrentUser(gomock.Any()).Return(user, nil)

	got := f.handler.Handle(context.Background(), "http://127.0.0.1:5000/auth/google/callback?token="+tok)

	assert.Equal(t, route.Dashboard, got)
	assert.Equal(t, tok, f.store.Token())
	st := f.ctrl.State()
	assert.True(t, st.IsAuthenticated())
	assert.Equal(t, user, st.User)
}

func TestHandleTrimsToken(t *testing.T) {
	f := newFixture(t)
	tok := validToken(t)
	f.api.EXPECT().GetCurrentUser(gomock.Any()).Return(&domain.User{ID: 1}, nil)

	got := f.handler.Handle(context.Background(), "/auth/google/callback?token=%20"+tok+"%20")
	assert.Equal(t, route.Dashboard, got)
	assert.Equal(t, tok, f.store.Token())
}

func TestHandleFailures(t *testing.T) {
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(-time.Hour).Unix(),
	}).SignedString([]byte("k"))
	require.NoError(t, err)

	tests := []struct {
		name string
		url  string
	}{
		{"missing", "/auth/google/callback"},
		{"empty", "/auth/google/callback?token="},
		{"blank", "/auth/google/callback?token=%20%20"},
		{"malformed", "/auth/google/callback?token=abc.def"},
		{"expired", "/auth/google/callback?token=" + expired},
		{"bad url", "://nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// No API expectations: the profile must not be fetched.
			f := newFixture(t)
			got := f.handler.Handle(context.Background(), tt.url)
			assert.Equal(t, route.LoginOAuthFailed, got)
			assert.Empty(t, f.store.Token())
			assert.False(t, f.ctrl.State().IsAuthenticated())
		})
	}
}

func TestHandleProfileFailureClearsToken(t *testing.T) {
	f := newFixture(t)
	f.api.EXPECT().GetCurrentUser(gomock.Any()).Return(nil, errors.New("boom"))

	got := f.handler.Handle(context.Background(), "/cb?token="+validToken(t))

	assert.Equal(t, route.LoginOAuthFailed, got)
	assert.Empty(t, f.store.Token())
	assert.False(t, f.ctrl.State().IsAuthenticated())
}

func TestHandleSettleDelay(t *testing.T) {
	f := newFixture(t)
	f.handler.SettleDelay = 30 * time.Millisecond
	f.api.EXPECT().GetCurrentUser(gomock.Any()).Return(&domain.User{ID: 1}, nil)

	start := time.Now()
	got := f.handler.Handle(context.Background(), "/cb?token="+validToken(t))
	assert.Equal(t, route.Dashboard, got)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestHandleCancelledDuringDelay(t *testing.T) {
	f := newFixture(t)
	f.handler.SettleDelay = time.Hour
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := f.handler.Handle(ctx, "/cb?token="+validToken(t))
	assert.Equal(t, route.LoginOAuthFailed, got)
}
