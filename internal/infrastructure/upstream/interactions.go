package upstream

import (
	"context"
	"fmt"

	"github.com/studyoverflow/gateway/internal/core/domain"
	"github.com/studyoverflow/gateway/internal/core/ports"
)

// VoteClient talks to the upstream /votes endpoint.
type VoteClient struct {
	c *Client
}

func NewVoteClient(c *Client) *VoteClient {
	return &VoteClient{c: c}
}

func (v *VoteClient) Vote(ctx context.Context, in ports.VoteInput) (*ports.VoteResult, error) {
	payload := map[string]any{
		"votable_type": in.TargetType,
		"votable_id":   in.TargetID,
		"value":        in.Value,
	}
	var env struct {
		Action string `json:"action"`
	}
	if err := v.c.Post(ctx, "/votes", payload, &env); err != nil {
		return nil, err
	}
	return &ports.VoteResult{Action: env.Action}, nil
}

// FavoriteClient talks to the upstream /favorites resource family.
type FavoriteClient struct {
	c *Client
}

func NewFavoriteClient(c *Client) *FavoriteClient {
	return &FavoriteClient{c: c}
}

func (f *FavoriteClient) Add(ctx context.Context, questionID int64) error {
	return f.c.Post(ctx, "/favorites", map[string]any{"question_id": questionID}, nil)
}

func (f *FavoriteClient) Remove(ctx context.Context, questionID int64) error {
	return f.c.Delete(ctx, fmt.Sprintf("/favorites/%d", questionID), nil)
}

func (f *FavoriteClient) Check(ctx context.Context, questionID int64) (bool, error) {
	var env struct {
		IsFavorite bool `json:"is_favorite"`
	}
	if err := f.c.Get(ctx, fmt.Sprintf("/favorites/check/%d", questionID), &env); err != nil {
		return false, err
	}
	return env.IsFavorite, nil
}

func (f *FavoriteClient) List(ctx context.Context) ([]domain.Favorite, error) {
	var env struct {
		Data []domain.Favorite `json:"data"`
	}
	if err := f.c.Get(ctx, "/favorites", &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// ReportClient talks to the upstream /reports endpoint.
type ReportClient struct {
	c *Client
}

func NewReportClient(c *Client) *ReportClient {
	return &ReportClient{c: c}
}

func (r *ReportClient) Create(ctx context.Context, in ports.ReportInput) error {
	payload := map[string]any{
		"reportable_type": in.ReportableType,
		"reportable_id":   in.ReportableID,
		"reason":          in.Reason,
	}
	if in.Description != "" {
		payload["description"] = in.Description
	}
	return r.c.Post(ctx, "/reports", payload, nil)
}

// TaxonomyClient serves the public category and tag listings.
type TaxonomyClient struct {
	c *Client
}

func NewTaxonomyClient(c *Client) *TaxonomyClient {
	return &TaxonomyClient{c: c}
}

func (t *TaxonomyClient) Categories(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	if err := t.c.Get(ctx, "/public/categories", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (t *TaxonomyClient) Tags(ctx context.Context) ([]domain.Tag, error) {
	var out []domain.Tag
	if err := t.c.Get(ctx, "/public/tags", &out); err != nil {
		return nil, err
	}
	return out, nil
}
