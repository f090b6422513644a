package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/studyoverflow/gateway/internal/core/domain"
	"github.com/studyoverflow/gateway/internal/core/ports"
	"github.com/studyoverflow/gateway/internal/core/reqctx"
)

type memTokenStore struct {
	mu     sync.Mutex
	tokens map[string]string
}

func newMemTokenStore() *memTokenStore {
	return &memTokenStore{tokens: make(map[string]string)}
}

func (m *memTokenStore) Set(_ context.Context, sid, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[sid] = token
	return nil
}

func (m *memTokenStore) Get(_ context.Context, sid string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tokens[sid], nil
}

func (m *memTokenStore) Clear(_ context.Context, sid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, sid)
	return nil
}

type recordedToast struct {
	kind    string
	message string
}

type recordingNotifier struct {
	mu     sync.Mutex
	toasts []recordedToast
}

func (r *recordingNotifier) Notify(_ context.Context, kind, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, recordedToast{kind: kind, message: message})
}

func (r *recordingNotifier) all() []recordedToast {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]recordedToast(nil), r.toasts...)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *memTokenStore, *recordingNotifier) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	tokens := newMemTokenStore()
	notifier := &recordingNotifier{}
	c := New(srv.URL, srv.Client(), tokens, notifier, zerolog.Nop())
	return c, tokens, notifier
}

func TestClient_BearerHeader_WhenTokenPresent(t *testing.T) {
	var gotAuth string
	c, tokens, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	})

	ctx := reqctx.WithSessionID(context.Background(), "sid-1")
	_ = tokens.Set(ctx, "sid-1", "tok-abc")

	if err := c.Get(ctx, "/auth/me", nil); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if gotAuth != "Bearer tok-abc" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
}

func TestClient_NoBearerHeader_WhenTokenAbsent(t *testing.T) {
	var gotAuth string
	var sawHeader bool
	c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, sawHeader = r.Header["Authorization"]
		_, _ = w.Write([]byte(`{}`))
	})

	ctx := reqctx.WithSessionID(context.Background(), "sid-1")
	if err := c.Get(ctx, "/public/questions", nil); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if sawHeader || gotAuth != "" {
		t.Fatalf("expected no Authorization header, got %q", gotAuth)
	}
}

func TestClient_422_ToastsOnceAndReRaises(t *testing.T) {
	c, _, notifier := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"the title field is required","errors":{"title":["the title field is required"]}}`))
	})

	err := c.Post(context.Background(), "/questions", map[string]any{}, nil)
	apiErr, ok := domain.AsAPIError(err)
	if !ok {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Kind != domain.KindValidation || apiErr.Status != 422 {
		t.Fatalf("unexpected error classification: %+v", apiErr)
	}
	if len(apiErr.Fields["title"]) != 1 {
		t.Fatalf("expected field errors to survive, got %+v", apiErr.Fields)
	}

	toasts := notifier.all()
	if len(toasts) != 1 {
		t.Fatalf("expected exactly one toast, got %d", len(toasts))
	}
	if toasts[0].kind != ports.ToastError || toasts[0].message != "the title field is required" {
		t.Fatalf("unexpected toast: %+v", toasts[0])
	}
}

func TestClient_Unauthenticated_PurgesTokenAndFlagsRedirect(t *testing.T) {
	c, tokens, notifier := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Unauthenticated."}`))
	})

	ctx := reqctx.WithSessionID(context.Background(), "sid-9")
	ctx = reqctx.WithPath(ctx, "/profile")
	_ = tokens.Set(ctx, "sid-9", "stale-token")

	err := c.Get(ctx, "/auth/me", nil)
	apiErr, ok := domain.AsAPIError(err)
	if !ok || apiErr.Kind != domain.KindUnauthenticated {
		t.Fatalf("expected unauthenticated APIError, got %v", err)
	}
	if !apiErr.RedirectToLogin {
		t.Fatalf("expected RedirectToLogin on /profile")
	}

	if tok, _ := tokens.Get(ctx, "sid-9"); tok != "" {
		t.Fatalf("expected token purged, still have %q", tok)
	}
	if len(notifier.all()) != 0 {
		t.Fatalf("unauthenticated responses must not toast")
	}
}

func TestClient_Unauthenticated_NoRedirectOnPublicEntryPages(t *testing.T) {
	for _, path := range []string{"/", "/login", "/register"} {
		c, tokens, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Unauthenticated."}`))
		})

		ctx := reqctx.WithSessionID(context.Background(), "sid-1")
		ctx = reqctx.WithPath(ctx, path)
		_ = tokens.Set(ctx, "sid-1", "stale")

		err := c.Get(ctx, "/auth/me", nil)
		apiErr, ok := domain.AsAPIError(err)
		if !ok {
			t.Fatalf("%s: expected APIError, got %v", path, err)
		}
		if apiErr.RedirectToLogin {
			t.Fatalf("%s: must not redirect from a public entry page", path)
		}
		// The token purge happens regardless of the redirect decision.
		if tok, _ := tokens.Get(ctx, "sid-1"); tok != "" {
			t.Fatalf("%s: expected token purged", path)
		}
	}
}

func TestClient_401WithoutMarker_IsForbiddenPassThrough(t *testing.T) {
	c, tokens, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"invalid credentials"}`))
	})

	ctx := reqctx.WithSessionID(context.Background(), "sid-1")
	_ = tokens.Set(ctx, "sid-1", "tok")

	err := c.Post(ctx, "/auth/login", map[string]any{}, nil)
	apiErr, ok := domain.AsAPIError(err)
	if !ok || apiErr.Kind != domain.KindForbidden {
		t.Fatalf("expected forbidden pass-through, got %v", err)
	}
	if tok, _ := tokens.Get(ctx, "sid-1"); tok != "tok" {
		t.Fatalf("401 without marker must not purge the token")
	}
}

func TestClient_ServerError_IsTransient(t *testing.T) {
	c, _, notifier := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	})

	err := c.Get(context.Background(), "/auth/me", nil)
	apiErr, ok := domain.AsAPIError(err)
	if !ok || apiErr.Kind != domain.KindTransient {
		t.Fatalf("expected transient error, got %v", err)
	}
	if apiErr.Message != "boom" {
		t.Fatalf("expected upstream message, got %q", apiErr.Message)
	}
	if len(notifier.all()) != 0 {
		t.Fatalf("5xx must not toast")
	}
}

func TestClient_NetworkError_IsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := New(srv.URL, nil, newMemTokenStore(), &recordingNotifier{}, zerolog.Nop())
	err := c.Get(context.Background(), "/auth/me", nil)
	apiErr, ok := domain.AsAPIError(err)
	if !ok || apiErr.Kind != domain.KindTransient || apiErr.Status != 0 {
		t.Fatalf("expected transient status-0 error, got %v", err)
	}
}

func TestClient_DecodesSuccessBody(t *testing.T) {
	c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user":{"id":7,"name":"ada","email":"ada@uni.edu","role":"user","reputation":42}}`))
	})

	user, err := NewAuthClient(c).Me(context.Background())
	if err != nil {
		t.Fatalf("Me returned error: %v", err)
	}
	if user == nil || user.ID != 7 || user.Role != domain.RoleUser || user.Reputation != 42 {
		t.Fatalf("unexpected user: %+v", user)
	}
}
