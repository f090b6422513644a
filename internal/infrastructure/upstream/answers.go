package upstream

import (
	"context"
	"fmt"

	"github.com/studyoverflow/gateway/internal/core/domain"
	"github.com/studyoverflow/gateway/internal/core/ports"
)

// AnswerClient talks to the upstream /answers resource family.
type AnswerClient struct {
	c *Client
}

func NewAnswerClient(c *Client) *AnswerClient {
	return &AnswerClient{c: c}
}

type answerEnvelope struct {
	Answer *domain.Answer `json:"answer"`
}

func (a *AnswerClient) Create(ctx context.Context, in ports.CreateAnswerInput) (*domain.Answer, error) {
	payload := map[string]any{
		"content":     in.Content,
		"question_id": in.QuestionID,
	}
	var env answerEnvelope
	if err := a.c.Post(ctx, "/answers", payload, &env); err != nil {
		return nil, err
	}
	return env.Answer, nil
}

func (a *AnswerClient) Update(ctx context.Context, id int64, content string) (*domain.Answer, error) {
	var env answerEnvelope
	if err := a.c.Put(ctx, fmt.Sprintf("/answers/%d", id), map[string]any{"content": content}, &env); err != nil {
		return nil, err
	}
	return env.Answer, nil
}

func (a *AnswerClient) Delete(ctx context.Context, id int64) error {
	return a.c.Delete(ctx, fmt.Sprintf("/answers/%d", id), nil)
}

func (a *AnswerClient) MarkAsBest(ctx context.Context, id int64) error {
	return a.c.Post(ctx, fmt.Sprintf("/answers/%d/mark-as-best", id), nil, nil)
}
