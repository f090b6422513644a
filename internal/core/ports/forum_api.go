package ports

import (
	"context"
	"io"

	"github.com/studyoverflow/gateway/internal/core/domain"
)

// Attachment is one file sent with a question as multipart form data.
type Attachment struct {
	Name        string
	ContentType string
	Reader      io.Reader
}

// CreateQuestionInput carries all data needed to post a new question.
type CreateQuestionInput struct {
	Title       string
	Content     string
	CategoryID  int64
	TagIDs      []int64
	Attachments []Attachment
}

// UpdateQuestionInput patches an existing question.
type UpdateQuestionInput struct {
	Title      string
	Content    string
	CategoryID int64
	TagIDs     []int64
}

// CreateAnswerInput carries a new answer for a question.
type CreateAnswerInput struct {
	QuestionID int64
	Content    string
}

// VoteInput applies a +1/-1 vote to a question or answer.
type VoteInput struct {
	TargetType string // domain.VotableQuestion or domain.VotableAnswer
	TargetID   int64
	Value      int // +1 or -1
}

// VoteResult reports what the upstream did with the vote, so the caller can
// adjust the locally displayed score without a re-fetch.
type VoteResult struct {
	Action string // created, updated, removed
}

// ReportInput flags a question or answer for moderation.
type ReportInput struct {
	ReportableType string
	ReportableID   int64
	Reason         string
	Description    string
}

// QuestionAPI is the upstream /questions resource family (public reads,
// authenticated writes).
type QuestionAPI interface {
	List(ctx context.Context, f domain.QuestionFilters) (*domain.QuestionPage, error)
	Get(ctx context.Context, id int64) (*domain.Question, error)
	Create(ctx context.Context, in CreateQuestionInput) (*domain.Question, error)
	Update(ctx context.Context, id int64, in UpdateQuestionInput) (*domain.Question, error)
	Delete(ctx context.Context, id int64) error
}

// AnswerAPI is the upstream /answers resource family.
type AnswerAPI interface {
	Create(ctx context.Context, in CreateAnswerInput) (*domain.Answer, error)
	Update(ctx context.Context, id int64, content string) (*domain.Answer, error)
	Delete(ctx context.Context, id int64) error
	MarkAsBest(ctx context.Context, id int64) error
}

// VoteAPI is the upstream /votes endpoint.
type VoteAPI interface {
	Vote(ctx context.Context, in VoteInput) (*VoteResult, error)
}

// FavoriteAPI is the upstream /favorites resource family.
type FavoriteAPI interface {
	Add(ctx context.Context, questionID int64) error
	Remove(ctx context.Context, questionID int64) error
	Check(ctx context.Context, questionID int64) (bool, error)
	List(ctx context.Context) ([]domain.Favorite, error)
}

// ReportAPI is the upstream /reports endpoint (user-facing side).
type ReportAPI interface {
	Create(ctx context.Context, in ReportInput) error
}

// TaxonomyAPI serves the public category and tag listings.
type TaxonomyAPI interface {
	Categories(ctx context.Context) ([]domain.Category, error)
	Tags(ctx context.Context) ([]domain.Tag, error)
}
