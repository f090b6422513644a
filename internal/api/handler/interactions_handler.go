package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/studyoverflow/gateway/internal/core/domain"
	"github.com/studyoverflow/gateway/internal/core/ports"
	"github.com/studyoverflow/gateway/internal/core/service"
)

// InteractionsHandler is the JSON surface behind the interactive page
// controls: vote buttons, the favorite star, and the report form.
type InteractionsHandler struct {
	hooks    *service.Factory
	inflight ports.InflightGuard
	log      zerolog.Logger
}

func NewInteractionsHandler(hooks *service.Factory, inflight ports.InflightGuard, log zerolog.Logger) *InteractionsHandler {
	return &InteractionsHandler{hooks: hooks, inflight: inflight, log: log}
}

// hookStatus maps the failed hook call's error kind to a response status:
// upstream outages are a bad gateway, business-rule denials a 403, missing
// targets a 404, everything else the validation status.
func hookStatus(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindTransient:
		return http.StatusBadGateway
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusUnprocessableEntity
	}
}

type voteRequest struct {
	VotableType string `json:"votable_type" validate:"required,oneof=question answer"`
	VotableID   int64  `json:"votable_id" validate:"required,gt=0"`
	Value       int    `json:"value" validate:"required,oneof=1 -1"`
	// Score is the score currently displayed by the control, so the response
	// can return the optimistically adjusted value.
	Score int `json:"score"`
}

type voteResponse struct {
	Action string `json:"action"`
	Score  int    `json:"score"`
}

// Vote applies a vote and returns the locally adjusted score.
//
// @Summary      Vote on a question or answer
// @Tags         interactions
// @Accept       json
// @Produce      json
// @Param        body  body      voteRequest  true  "Vote"
// @Success      200   {object}  voteResponse
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /api/votes [post]
func (h *InteractionsHandler) Vote(c echo.Context) error {
	var req voteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	ctx := c.Request().Context()
	sid := sessionID(c)

	// One vote per control at a time; the page disables the button, the
	// guard enforces it against races.
	key := fmt.Sprintf("vote:%s:%d", req.VotableType, req.VotableID)
	won, err := h.inflight.TryAcquire(ctx, sid, key)
	if err != nil {
		h.log.Error().Err(err).Msg("inflight guard unavailable; allowing the vote")
	} else if !won {
		return c.JSON(http.StatusConflict, map[string]string{"error": "a vote for this item is already in flight"})
	} else {
		defer func() {
			if err := h.inflight.Release(ctx, sid, key); err != nil {
				h.log.Error().Err(err).Msg("inflight release failed")
			}
		}()
	}

	voting := h.hooks.Voting()
	res, ok := voting.Vote(ctx, req.VotableType, req.VotableID, req.Value)
	if !ok {
		return c.JSON(hookStatus(voting.ErrKind()), map[string]string{"error": voting.Err()})
	}

	return c.JSON(http.StatusOK, voteResponse{
		Action: res.Action,
		Score:  service.OptimisticScore(req.Score, req.Value),
	})
}

type favoriteRequest struct {
	QuestionID int64 `json:"question_id" validate:"required,gt=0"`
}

// AddFavorite stars a question.
//
// @Summary      Add a question to favorites
// @Tags         interactions
// @Accept       json
// @Produce      json
// @Param        body  body      favoriteRequest  true  "Question"
// @Success      201   {object}  map[string]bool
// @Failure      422   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /api/favorites [post]
func (h *InteractionsHandler) AddFavorite(c echo.Context) error {
	var req favoriteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	favorites := h.hooks.Favorites()
	if !favorites.Add(c.Request().Context(), req.QuestionID) {
		return c.JSON(hookStatus(favorites.ErrKind()), map[string]string{"error": favorites.Err()})
	}
	return c.JSON(http.StatusCreated, map[string]bool{"is_favorite": true})
}

// RemoveFavorite unstars a question.
//
// @Summary      Remove a question from favorites
// @Tags         interactions
// @Produce      json
// @Param        id   path      int  true  "Question id"
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/favorites/{id} [delete]
func (h *InteractionsHandler) RemoveFavorite(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	favorites := h.hooks.Favorites()
	if !favorites.Remove(c.Request().Context(), id) {
		return c.JSON(hookStatus(favorites.ErrKind()), map[string]string{"error": favorites.Err()})
	}
	return c.JSON(http.StatusOK, map[string]bool{"is_favorite": false})
}

// CheckFavorite reports whether the question is starred. It never fails:
// errors read as false.
//
// @Summary      Check whether a question is favorited
// @Tags         interactions
// @Produce      json
// @Param        id   path      int  true  "Question id"
// @Success      200  {object}  map[string]bool
// @Router       /api/favorites/check/{id} [get]
func (h *InteractionsHandler) CheckFavorite(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	fav := h.hooks.Favorites().Check(c.Request().Context(), id)
	return c.JSON(http.StatusOK, map[string]bool{"is_favorite": fav})
}

type reportRequest struct {
	ReportableType string `json:"reportable_type" validate:"required,oneof=question answer"`
	ReportableID   int64  `json:"reportable_id" validate:"required,gt=0"`
	Reason         string `json:"reason" validate:"required"`
	Description    string `json:"description"`
}

// Report files a moderation report.
//
// @Summary      Report a question or answer
// @Tags         interactions
// @Accept       json
// @Produce      json
// @Param        body  body      reportRequest  true  "Report"
// @Success      201   {object}  map[string]bool
// @Failure      422   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /api/reports [post]
func (h *InteractionsHandler) Report(c echo.Context) error {
	var req reportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	reports := h.hooks.Reports()
	ok := reports.Report(c.Request().Context(), ports.ReportInput{
		ReportableType: req.ReportableType,
		ReportableID:   req.ReportableID,
		Reason:         req.Reason,
		Description:    req.Description,
	})
	if !ok {
		return c.JSON(hookStatus(reports.ErrKind()), map[string]string{"error": reports.Err()})
	}
	return c.JSON(http.StatusCreated, map[string]bool{"reported": true})
}
