package service

import (
	"context"
	"testing"

	"github.com/studyoverflow/gateway/internal/core/domain"
	"github.com/studyoverflow/gateway/internal/core/ports"
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

func TestVotingService_Vote_Success(t *testing.T) {
	api := &stubVoteAPI{res: &ports.VoteResult{Action: domain.VoteCreated}}
	svc := NewVotingService(api)

	res, ok := svc.Vote(context.Background(), domain.VotableQuestion, 10, 1)
	if !ok {
		t.Fatalf("expected success, err=%q", svc.Err())
	}
	if res.Action != domain.VoteCreated {
		t.Fatalf("unexpected action %q", res.Action)
	}
	if api.last.TargetType != domain.VotableQuestion || api.last.TargetID != 10 || api.last.Value != 1 {
		t.Fatalf("unexpected upstream input: %+v", api.last)
	}
}

func TestVotingService_OptimisticScore(t *testing.T) {
	if got := OptimisticScore(5, 1); got != 6 {
		t.Fatalf("upvote: expected 6, got %d", got)
	}
	if got := OptimisticScore(5, -1); got != 4 {
		t.Fatalf("downvote: expected 4, got %d", got)
	}
}

func TestVotingService_Vote_InvalidValue(t *testing.T) {
	svc := NewVotingService(&stubVoteAPI{})
	if _, ok := svc.Vote(context.Background(), domain.VotableAnswer, 1, 2); ok {
		t.Fatalf("expected rejection of value 2")
	}
	if _, ok := svc.Vote(context.Background(), "comment", 1, 1); ok {
		t.Fatalf("expected rejection of unknown target type")
	}
}

func TestVotingService_Vote_OwnContentMessage(t *testing.T) {
	api := &stubVoteAPI{err: &domain.APIError{Status: 403, Kind: domain.KindForbidden, Message: "forbidden"}}
	svc := NewVotingService(api)

	if _, ok := svc.Vote(context.Background(), domain.VotableAnswer, 3, -1); ok {
		t.Fatalf("expected failure")
	}
	if svc.Err() != ownContentMessage {
		t.Fatalf("expected own-content message, got %q", svc.Err())
	}
}

func TestVotingService_Vote_ValidationKeepsInlineMessage(t *testing.T) {
	api := &stubVoteAPI{err: &domain.APIError{Status: 422, Kind: domain.KindValidation, Message: "votable not found"}}
	svc := NewVotingService(api)

	if _, ok := svc.Vote(context.Background(), domain.VotableQuestion, 3, 1); ok {
		t.Fatalf("expected failure")
	}
	// 422s are toasted centrally; the inline message must not claim the
	// own-content rule.
	if svc.Err() != "votable not found" {
		t.Fatalf("expected upstream message, got %q", svc.Err())
	}
}

func TestVotingService_Vote_TransientIsGeneric(t *testing.T) {
	api := &stubVoteAPI{err: &domain.APIError{Kind: domain.KindTransient, Message: "connection reset"}}
	svc := NewVotingService(api)

	if _, ok := svc.Vote(context.Background(), domain.VotableQuestion, 3, 1); ok {
		t.Fatalf("expected failure")
	}
	if svc.Err() == ownContentMessage {
		t.Fatalf("a network failure must not be reported as a business-rule rejection")
	}
}
