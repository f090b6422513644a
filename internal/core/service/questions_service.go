package service

import (
	"context"

	"github.com/studyoverflow/gateway/internal/core/domain"
	"github.com/studyoverflow/gateway/internal/core/ports"
)

// QuestionsService loads and mutates questions. Reads surface their failure
// through Err() so pages can render a full-page retry state; mutations report
// success as a bool.
type QuestionsService struct {
	hookState
	questions ports.QuestionAPI
}

func NewQuestionsService(questions ports.QuestionAPI) *QuestionsService {
	return &QuestionsService{questions: questions}
}

func (s *QuestionsService) List(ctx context.Context, f domain.QuestionFilters) (*domain.QuestionPage, bool) {
	if !s.begin() {
		return nil, false
	}
	defer s.end()

	page, err := s.questions.List(ctx, f)
	if err != nil {
		s.fail(err, failureMessage(err, "could not load questions"))
		return nil, false
	}
	return page, true
}

func (s *QuestionsService) Get(ctx context.Context, id int64) (*domain.Question, bool) {
	if !s.begin() {
		return nil, false
	}
	defer s.end()

	q, err := s.questions.Get(ctx, id)
	if err != nil {
		s.fail(err, failureMessage(err, "could not load the question"))
		return nil, false
	}
	return q, true
}

func (s *QuestionsService) Create(ctx context.Context, in ports.CreateQuestionInput) (*domain.Question, bool) {
	if !s.begin() {
		return nil, false
	}
	defer s.end()

	q, err := s.questions.Create(ctx, in)
	if err != nil {
		s.fail(err, failureMessage(err, "could not publish the question"))
		return nil, false
	}
	return q, true
}

func (s *QuestionsService) Update(ctx context.Context, id int64, in ports.UpdateQuestionInput) (*domain.Question, bool) {
	if !s.begin() {
		return nil, false
	}
	defer s.end()

	q, err := s.questions.Update(ctx, id, in)
	if err != nil {
		s.fail(err, failureMessage(err, "could not update the question"))
		return nil, false
	}
	return q, true
}

func (s *QuestionsService) Delete(ctx context.Context, id int64) bool {
	if !s.begin() {
		return false
	}
	defer s.end()

	if err := s.questions.Delete(ctx, id); err != nil {
		s.fail(err, failureMessage(err, "could not delete the question"))
		return false
	}
	return true
}
