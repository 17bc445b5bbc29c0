package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgauth "github.com/moonjaehyun/shiftroster-backend/pkg/auth"
	"github.com/moonjaehyun/shiftroster-backend/pkg/config"
	"github.com/moonjaehyun/shiftroster-backend/pkg/enums"
	"github.com/moonjaehyun/shiftroster-backend/pkg/types"
)

type stubResolver struct {
	name string
	role enums.MemberRole
	err  error
}

func (s stubResolver) ResolveActor(ctx context.Context, userID, storeID uuid.UUID) (string, enums.MemberRole, error) {
	return s.name, s.role, s.err
}

func okHandler(t *testing.T, gotActor *types.Actor) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if actor, ok := ActorFromContext(r.Context()); ok {
			*gotActor = actor
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestActorContextResolvesMembership(t *testing.T) {
	userID := uuid.New()
	storeID := uuid.New()

	var got types.Actor
	handler := ActorContext(stubResolver{name: "Mi-sook", role: enums.MemberRoleManager}, nil)(okHandler(t, &got))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := WithUserID(req.Context(), userID.String())
	ctx = WithStoreID(ctx, storeID.String())
	req = req.WithContext(ctx)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if got.Name != "Mi-sook" || got.Role != enums.MemberRoleManager || got.UserID != userID {
		t.Fatalf("unexpected actor %+v", got)
	}
}

func TestActorContextRejectsNonMembers(t *testing.T) {
	var got types.Actor
	handler := ActorContext(stubResolver{err: gorm.ErrRecordNotFound}, nil)(okHandler(t, &got))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := WithUserID(req.Context(), uuid.NewString())
	ctx = WithStoreID(ctx, uuid.NewString())
	req = req.WithContext(ctx)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

func TestActorContextRequiresStore(t *testing.T) {
	var got types.Actor
	handler := ActorContext(stubResolver{role: enums.MemberRoleOwner}, nil)(okHandler(t, &got))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithUserID(req.Context(), uuid.NewString()))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

func TestRequireActorRoles(t *testing.T) {
	var got types.Actor
	handler := RequireActorRoles(nil, enums.MemberRoleOwner)(okHandler(t, &got))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithActor(req.Context(), types.Actor{UserID: uuid.New(), Role: enums.MemberRoleManager}))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for manager got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithActor(req.Context(), types.Actor{UserID: uuid.New(), Role: enums.MemberRoleOwner}))
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for owner got %d", resp.Code)
	}
}

func TestAuthSeedsContextFromToken(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 60}
	userID := uuid.New()
	storeID := uuid.New()

	token, err := pkgauth.MintAccessToken(cfg, time.Now(), pkgauth.AccessTokenPayload{
		UserID:        userID,
		DisplayName:   "Boss",
		ActiveStoreID: &storeID,
		Role:          enums.MemberRoleOwner,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	var gotUser, gotStore string
	handler := Auth(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = UserIDFromContext(r.Context())
		gotStore = StoreIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if gotUser != userID.String() || gotStore != storeID.String() {
		t.Fatalf("context not seeded: user=%q store=%q", gotUser, gotStore)
	}
}

func TestAuthRejectsMissingOrGarbageToken(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 60}
	handler := Auth(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without header got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for garbage token got %d", resp.Code)
	}
}
