package upstream

import (
	"context"
	"fmt"

	"github.com/studyoverflow/gateway/internal/core/domain"
)

// AdminClient talks to the upstream /admin and /dashboard surfaces.
type AdminClient struct {
	c *Client
}

func NewAdminClient(c *Client) *AdminClient {
	return &AdminClient{c: c}
}

func (a *AdminClient) Users(ctx context.Context, page int) ([]domain.User, *domain.PageMeta, error) {
	path := "/admin/users"
	if page > 1 {
		path = fmt.Sprintf("%s?page=%d", path, page)
	}
	var env struct {
		Data []domain.User   `json:"data"`
		Meta domain.PageMeta `json:"meta"`
	}
	if err := a.c.Get(ctx, path, &env); err != nil {
		return nil, nil, err
	}
	return env.Data, &env.Meta, nil
}

func (a *AdminClient) SetUserRole(ctx context.Context, userID int64, role string) error {
	return a.c.Put(ctx, fmt.Sprintf("/admin/users/%d/role", userID), map[string]any{"role": role}, nil)
}

func (a *AdminClient) DeleteUser(ctx context.Context, userID int64) error {
	return a.c.Delete(ctx, fmt.Sprintf("/admin/users/%d", userID), nil)
}

func (a *AdminClient) Reports(ctx context.Context, status string) ([]domain.Report, error) {
	path := "/admin/reports"
	if status != "" {
		path += "?status=" + status
	}
	var env struct {
		Data []domain.Report `json:"data"`
	}
	if err := a.c.Get(ctx, path, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (a *AdminClient) ResolveReport(ctx context.Context, reportID int64, status string) error {
	return a.c.Put(ctx, fmt.Sprintf("/admin/reports/%d", reportID), map[string]any{"status": status}, nil)
}

type categoryEnvelope struct {
	Category *domain.Category `json:"category"`
}

func (a *AdminClient) CreateCategory(ctx context.Context, name, description string) (*domain.Category, error) {
	var env categoryEnvelope
	payload := map[string]any{"name": name, "description": description}
	if err := a.c.Post(ctx, "/admin/categories", payload, &env); err != nil {
		return nil, err
	}
	return env.Category, nil
}

func (a *AdminClient) UpdateCategory(ctx context.Context, id int64, name, description string) (*domain.Category, error) {
	var env categoryEnvelope
	payload := map[string]any{"name": name, "description": description}
	if err := a.c.Put(ctx, fmt.Sprintf("/admin/categories/%d", id), payload, &env); err != nil {
		return nil, err
	}
	return env.Category, nil
}

func (a *AdminClient) DeleteCategory(ctx context.Context, id int64) error {
	return a.c.Delete(ctx, fmt.Sprintf("/admin/categories/%d", id), nil)
}

func (a *AdminClient) CreateTag(ctx context.Context, name string) (*domain.Tag, error) {
	var env struct {
		Tag *domain.Tag `json:"tag"`
	}
	if err := a.c.Post(ctx, "/admin/tags", map[string]any{"name": name}, &env); err != nil {
		return nil, err
	}
	return env.Tag, nil
}

func (a *AdminClient) DeleteTag(ctx context.Context, id int64) error {
	return a.c.Delete(ctx, fmt.Sprintf("/admin/tags/%d", id), nil)
}

func (a *AdminClient) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	var stats domain.DashboardStats
	if err := a.c.Get(ctx, "/dashboard/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
