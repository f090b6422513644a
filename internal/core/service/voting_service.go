package service

import (
	"context"

	"github.com/studyoverflow/gateway/internal/api/metrics"
	"github.com/studyoverflow/gateway/internal/core/domain"
	"github.com/studyoverflow/gateway/internal/core/ports"
)

const ownContentMessage = "you cannot vote on your own content"

// VotingService applies +1/-1 votes to questions and answers.
type VotingService struct {
	hookState
	votes ports.VoteAPI
}

func NewVotingService(votes ports.VoteAPI) *VotingService {
	return &VotingService{votes: votes}
}

// Vote submits a vote and returns the upstream's action indicator so the
// caller can adjust the displayed score locally. A second call while one is
// in flight is refused.
func (s *VotingService) Vote(ctx context.Context, targetType string, targetID int64, value int) (*ports.VoteResult, bool) {
	if value != 1 && value != -1 {
		s.setErr("vote value must be +1 or -1")
		return nil, false
	}
	if targetType != domain.VotableQuestion && targetType != domain.VotableAnswer {
		s.setErr("votes apply to questions and answers only")
		return nil, false
	}
	if !s.begin() {
		s.setErr("a vote is already in flight")
		return nil, false
	}
	defer s.end()

	res, err := s.votes.Vote(ctx, ports.VoteInput{TargetType: targetType, TargetID: targetID, Value: value})
	if err != nil {
		apiErr, ok := domain.AsAPIError(err)
		switch {
		case ok && apiErr.Kind == domain.KindValidation:
			// Already toasted centrally; keep the message for inline display.
			s.fail(err, apiErr.Message)
		case ok && !apiErr.Transient():
			// The one business rule the upstream enforces on votes surfaces
			// as a non-422 rejection.
			s.fail(err, ownContentMessage)
		default:
			s.fail(err, "could not register the vote, try again")
		}
		return nil, false
	}

	metrics.VotesSubmittedTotal.WithLabelValues(res.Action).Inc()
	return res, true
}

// OptimisticScore is the locally adjusted score after a successful vote: the
// prior displayed value plus the vote, with no confirming re-fetch. Lost
// updates from concurrent voters may drift until the next full load; the
// upstream remains authoritative.
func OptimisticScore(prior, value int) int { return prior + value }
