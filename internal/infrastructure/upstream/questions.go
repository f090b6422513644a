package upstream

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/studyoverflow/gateway/internal/core/domain"
	"github.com/studyoverflow/gateway/internal/core/ports"
)

// QuestionClient talks to the upstream question endpoints. Listings and
// single reads go through the public prefix; writes require the bearer token.
type QuestionClient struct {
	c *Client
}

func NewQuestionClient(c *Client) *QuestionClient {
	return &QuestionClient{c: c}
}

func (q *QuestionClient) List(ctx context.Context, f domain.QuestionFilters) (*domain.QuestionPage, error) {
	params := url.Values{}
	if f.CategoryID > 0 {
		params.Set("category_id", strconv.FormatInt(f.CategoryID, 10))
	}
	if f.TagID > 0 {
		params.Set("tag_id", strconv.FormatInt(f.TagID, 10))
	}
	if f.Search != "" {
		params.Set("search", f.Search)
	}
	if f.Sort != "" {
		params.Set("sort", f.Sort)
	}
	if f.Page > 1 {
		params.Set("page", strconv.Itoa(f.Page))
	}

	path := "/public/questions"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var page domain.QuestionPage
	if err := q.c.Get(ctx, path, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (q *QuestionClient) Get(ctx context.Context, id int64) (*domain.Question, error) {
	var question domain.Question
	if err := q.c.Get(ctx, fmt.Sprintf("/public/questions/%d", id), &question); err != nil {
		return nil, err
	}
	return &question, nil
}

type questionEnvelope struct {
	Question *domain.Question `json:"question"`
}

func (q *QuestionClient) Create(ctx context.Context, in ports.CreateQuestionInput) (*domain.Question, error) {
	var env questionEnvelope

	// Attachments force multipart; the plain JSON shape is kept for the
	// common no-attachment case.
	if len(in.Attachments) > 0 {
		fields := map[string][]string{
			"title":       {in.Title},
			"content":     {in.Content},
			"category_id": {strconv.FormatInt(in.CategoryID, 10)},
		}
		for _, tag := range in.TagIDs {
			fields["tags[]"] = append(fields["tags[]"], strconv.FormatInt(tag, 10))
		}
		if err := q.c.PostMultipart(ctx, "/questions", fields, in.Attachments, &env); err != nil {
			return nil, err
		}
		return env.Question, nil
	}

	payload := map[string]any{
		"title":       in.Title,
		"content":     in.Content,
		"category_id": in.CategoryID,
		"tags":        in.TagIDs,
	}
	if err := q.c.Post(ctx, "/questions", payload, &env); err != nil {
		return nil, err
	}
	return env.Question, nil
}

func (q *QuestionClient) Update(ctx context.Context, id int64, in ports.UpdateQuestionInput) (*domain.Question, error) {
	payload := map[string]any{
		"title":       in.Title,
		"content":     in.Content,
		"category_id": in.CategoryID,
		"tags":        in.TagIDs,
	}
	var env questionEnvelope
	if err := q.c.Put(ctx, fmt.Sprintf("/questions/%d", id), payload, &env); err != nil {
		return nil, err
	}
	return env.Question, nil
}

func (q *QuestionClient) Delete(ctx context.Context, id int64) error {
	return q.c.Delete(ctx, fmt.Sprintf("/questions/%d", id), nil)
}
