package service

import (
	"context"

	"github.com/studyoverflow/gateway/internal/core/domain"
	"github.com/studyoverflow/gateway/internal/core/ports"
)

// AnswersService posts and moderates answers.
type AnswersService struct {
	hookState
	answers ports.AnswerAPI
}

func NewAnswersService(answers ports.AnswerAPI) *AnswersService {
	return &AnswersService{answers: answers}
}

func (s *AnswersService) Create(ctx context.Context, in ports.CreateAnswerInput) (*domain.Answer, bool) {
	if !s.begin() {
		return nil, false
	}
	defer s.end()

	answer, err := s.answers.Create(ctx, in)
	if err != nil {
		s.fail(err, failureMessage(err, "could not post the answer"))
		return nil, false
	}
	return answer, true
}

func (s *AnswersService) Update(ctx context.Context, id int64, content string) (*domain.Answer, bool) {
	if !s.begin() {
		return nil, false
	}
	defer s.end()

	answer, err := s.answers.Update(ctx, id, content)
	if err != nil {
		s.fail(err, failureMessage(err, "could not update the answer"))
		return nil, false
	}
	return answer, true
}

func (s *AnswersService) Delete(ctx context.Context, id int64) bool {
	if !s.begin() {
		return false
	}
	defer s.end()

	if err := s.answers.Delete(ctx, id); err != nil {
		s.fail(err, failureMessage(err, "could not delete the answer"))
		return false
	}
	return true
}

// MarkAsBest flags an answer as the accepted one. The caller flips the local
// best-answer flag on success instead of re-fetching the question.
func (s *AnswersService) MarkAsBest(ctx context.Context, id int64) bool {
	if !s.begin() {
		return false
	}
	defer s.end()

	if err := s.answers.MarkAsBest(ctx, id); err != nil {
		s.fail(err, failureMessage(err, "could not mark the answer"))
		return false
	}
	return true
}
