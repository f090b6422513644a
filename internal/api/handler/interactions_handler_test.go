package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/studyoverflow/gateway/internal/core/domain"
	"github.com/studyoverflow/gateway/internal/core/ports"
	"github.com/studyoverflow/gateway/internal/core/reqctx"
	"github.com/studyoverflow/gateway/internal/core/service"
)

type stubVoteAPI struct {
	res  *ports.VoteResult
	err  error
	last ports.VoteInput
}

func (s *stubVoteAPI) Vote(_ context.Context, in ports.VoteInput) (*ports.VoteResult, error) {
	s.last = in
	return s.res, s.err
}

type stubFavoriteAPI struct {
	fav    bool
	err    error
	checks int
}

func (s *stubFavoriteAPI) Add(context.Context, int64) error    { return s.err }
func (s *stubFavoriteAPI) Remove(context.Context, int64) error { return s.err }
func (s *stubFavoriteAPI) Check(context.Context, int64) (bool, error) {
	s.checks++
	return s.fav, s.err
}
func (s *stubFavoriteAPI) List(context.Context) ([]domain.Favorite, error) { return nil, s.err }

type stubGuard struct {
	won      bool
	acquired int
	released int
}

func (g *stubGuard) TryAcquire(context.Context, string, string) (bool, error) {
	g.acquired++
	return g.won, nil
}

func (g *stubGuard) Release(context.Context, string, string) error {
	g.released++
	return nil
}

func jsonContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req = req.WithContext(reqctx.WithSessionID(req.Context(), "sid-1"))
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func interactionsFixture(votes ports.VoteAPI, favorites ports.FavoriteAPI, guard ports.InflightGuard) *InteractionsHandler {
	hooks := service.NewFactory(service.FactoryDeps{
		Votes:     votes,
		Favorites: favorites,
		Log:       zerolog.Nop(),
	})
	return NewInteractionsHandler(hooks, guard, zerolog.Nop())
}

func TestVote_ReturnsOptimisticScore(t *testing.T) {
	api := &stubVoteAPI{res: &ports.VoteResult{Action: domain.VoteCreated}}
	guard := &stubGuard{won: true}
	h := interactionsFixture(api, nil, guard)

	c, rec := jsonContext(t, http.MethodPost, "/api/votes",
		`{"votable_type":"question","votable_id":7,"value":1,"score":41}`)

	if err := h.Vote(c); err != nil {
		t.Fatalf("vote: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Action string `json:"action"`
		Score  int    `json:"score"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Action != domain.VoteCreated || resp.Score != 42 {
		t.Fatalf("unexpected response %+v", resp)
	}
	if api.last.TargetID != 7 || api.last.Value != 1 {
		t.Fatalf("unexpected upstream input %+v", api.last)
	}
	if guard.released != 1 {
		t.Fatalf("guard never released")
	}
}

func TestVote_ConflictWhileInflight(t *testing.T) {
	h := interactionsFixture(&stubVoteAPI{}, nil, &stubGuard{won: false})

	c, rec := jsonContext(t, http.MethodPost, "/api/votes",
		`{"votable_type":"answer","votable_id":3,"value":-1}`)

	if err := h.Vote(c); err != nil {
		t.Fatalf("vote: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestVote_OwnContentRejectionIs403(t *testing.T) {
	api := &stubVoteAPI{err: &domain.APIError{Status: 403, Kind: domain.KindForbidden, Message: "forbidden"}}
	h := interactionsFixture(api, nil, &stubGuard{won: true})

	c, rec := jsonContext(t, http.MethodPost, "/api/votes",
		`{"votable_type":"question","votable_id":7,"value":1}`)

	if err := h.Vote(c); err != nil {
		t.Fatalf("vote: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "own content") {
		t.Fatalf("expected the own-content message, got %s", rec.Body.String())
	}
}

func TestVote_UpstreamOutageIs502(t *testing.T) {
	api := &stubVoteAPI{err: &domain.APIError{Status: 0, Kind: domain.KindTransient, Message: "connection refused"}}
	h := interactionsFixture(api, nil, &stubGuard{won: true})

	c, rec := jsonContext(t, http.MethodPost, "/api/votes",
		`{"votable_type":"question","votable_id":7,"value":1}`)

	if err := h.Vote(c); err != nil {
		t.Fatalf("vote: %v", err)
	}
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}

func TestVote_InvalidPayload(t *testing.T) {
	h := interactionsFixture(&stubVoteAPI{}, nil, &stubGuard{won: true})

	c, _ := jsonContext(t, http.MethodPost, "/api/votes",
		`{"votable_type":"comment","votable_id":1,"value":1}`)

	err := h.Vote(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected a 422 HTTPError, got %v", err)
	}
}

func TestCheckFavorite_FailSafeFalse(t *testing.T) {
	api := &stubFavoriteAPI{err: &domain.APIError{Kind: domain.KindTransient}}
	h := interactionsFixture(nil, api, &stubGuard{won: true})

	c, rec := jsonContext(t, http.MethodGet, "/api/favorites/check/9", "")
	c.SetParamNames("id")
	c.SetParamValues("9")

	if err := h.CheckFavorite(c); err != nil {
		t.Fatalf("check: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"is_favorite":false`) {
		t.Fatalf("expected is_favorite false, got %s", rec.Body.String())
	}
	if api.checks != 1 {
		t.Fatalf("expected one upstream check, got %d", api.checks)
	}
}

func TestRemoveFavorite_SurfacesServiceError(t *testing.T) {
	api := &stubFavoriteAPI{err: &domain.APIError{Status: 404, Kind: domain.KindNotFound, Message: "favorite not found"}}
	h := interactionsFixture(nil, api, &stubGuard{won: true})

	c, rec := jsonContext(t, http.MethodDelete, "/api/favorites/9", "")
	c.SetParamNames("id")
	c.SetParamValues("9")

	if err := h.RemoveFavorite(c); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "favorite not found") {
		t.Fatalf("expected the upstream message, got %s", rec.Body.String())
	}
}
