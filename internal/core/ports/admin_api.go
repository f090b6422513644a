package ports

import (
	"context"

	"github.com/studyoverflow/gateway/internal/core/domain"
)

// AdminAPI is the upstream /admin and /dashboard surface. Routes behind it
// require the admin role; the upstream enforces that independently of the
// gateway's route guard.
type AdminAPI interface {
	Users(ctx context.Context, page int) ([]domain.User, *domain.PageMeta, error)
	SetUserRole(ctx context.Context, userID int64, role string) error
	DeleteUser(ctx context.Context, userID int64) error

	Reports(ctx context.Context, status string) ([]domain.Report, error)
	ResolveReport(ctx context.Context, reportID int64, status string) error

	CreateCategory(ctx context.Context, name, description string) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id int64, name, description string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	CreateTag(ctx context.Context, name string) (*domain.Tag, error)
	DeleteTag(ctx context.Context, id int64) error

	Stats(ctx context.Context) (*domain.DashboardStats, error)
}
