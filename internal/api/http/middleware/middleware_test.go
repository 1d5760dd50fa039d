package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/stomatology_backend/internal/entity"
	"github.com/Alijeyrad/stomatology_backend/internal/service/resource"
	"github.com/Alijeyrad/stomatology_backend/pkg/authorize"
	pasetotoken "github.com/Alijeyrad/stomatology_backend/pkg/paseto"
	"github.com/Alijeyrad/stomatology_backend/pkg/reqctx"
)

type fakeSessions struct{ active map[uuid.UUID]bool }

func (f *fakeSessions) Create(context.Context, uuid.UUID, time.Duration) (uuid.UUID, error) {
	id := uuid.New()
	f.active[id] = true
	return id, nil
}

func (f *fakeSessions) Active(_ context.Context, id uuid.UUID) (bool, error) { return f.active[id], nil }

func (f *fakeSessions) Revoke(_ context.Context, id uuid.UUID) error {
	delete(f.active, id)
	return nil
}

func TestAuthRequired(t *testing.T) {
	mgr, err := pasetotoken.New(pasetotoken.Config{Mode: pasetotoken.ModeLocal, Issuer: "stomatology", Audience: "clinic", AccessTTL: time.Hour}, pasetotoken.NewLocalKeys())
	require.NoError(t, err)

	sessions := &fakeSessions{active: map[uuid.UUID]bool{}}
	uid := uuid.New()
	sid, _ := sessions.Create(context.Background(), uid, time.Hour)
	revoked, _ := sessions.Create(context.Background(), uid, time.Hour)
	require.NoError(t, sessions.Revoke(context.Background(), revoked))

	valid, err := mgr.IssueAccess(uid, &sid)
	require.NoError(t, err)
	stale, err := mgr.IssueAccess(uid, &revoked)
	require.NoError(t, err)
	unbound, err := mgr.IssueAccess(uid, nil)
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/", AuthRequired(mgr, sessions), func(c fiber.Ctx) error {
		got, ok := reqctx.UserIDFromContext(c.Context())
		if !ok || got != uid {
			return fiber.ErrTeapot
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "missing header", want: fiber.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + valid, want: fiber.StatusUnauthorized},
		{name: "garbage token", header: "Bearer nope", want: fiber.StatusUnauthorized},
		{name: "revoked session", header: "Bearer " + stale, want: fiber.StatusUnauthorized},
		{name: "no session id", header: "Bearer " + unbound, want: fiber.StatusUnauthorized},
		{name: "valid", header: "Bearer " + valid, want: fiber.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestAuthRequiredWithoutSessions(t *testing.T) {
	mgr, err := pasetotoken.New(pasetotoken.Config{Mode: pasetotoken.ModeLocal, Issuer: "stomatology", Audience: "clinic", AccessTTL: time.Hour}, pasetotoken.NewLocalKeys())
	require.NoError(t, err)
	tok, err := mgr.IssueAccess(uuid.New(), nil)
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/", AuthRequired(mgr, nil), func(c fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

type fakeAuth struct {
	authorize.IAuthorization
	allowed map[authorize.Action]bool
}

func (f *fakeAuth) MustEnforce(_ context.Context, _ authorize.GroupSubject, _ authorize.Domain, _ authorize.Resource, action authorize.Action) error {
	if f.allowed[action] {
		return nil
	}
	return authorize.ErrForbidden
}

type testClaims struct{ uid uuid.UUID }

func (c testClaims) GetUserID() uuid.UUID { return c.uid }
func (c testClaims) GetSessionID() *uuid.UUID { return nil }
func (c testClaims) GetTokenType() string { return "access" }
func (c testClaims) IsExpired() bool { return false }

func TestCapability(t *testing.T) {
	can := Capability(&fakeAuth{allowed: map[authorize.Action]bool{authorize.ActionList: true}})
	authed := reqctx.WithClaims(context.Background(), testClaims{uid: uuid.New()})

	assert.NoError(t, can(authed, entity.KindDoctor, authorize.ActionList))
	assert.ErrorIs(t, can(authed, entity.KindDoctor, authorize.ActionDelete), resource.ErrForbidden)
	assert.ErrorIs(t, can(context.Background(), entity.KindDoctor, authorize.ActionList), resource.ErrForbidden)
}

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())
	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString(reqctx.RequestIDFromContext(c.Context()))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "abc", resp.Header.Get(HeaderRequestID))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get(HeaderRequestID))
}
