package service

import (
	"context"

	"github.com/studyoverflow/gateway/internal/core/domain"
	"github.com/studyoverflow/gateway/internal/core/ports"
)

// AdminService wraps the moderation surface. The upstream enforces the admin
// role independently; this layer only shapes calls and failure messages.
type AdminService struct {
	hookState
	admin ports.AdminAPI
}

func NewAdminService(admin ports.AdminAPI) *AdminService {
	return &AdminService{admin: admin}
}

func (s *AdminService) Users(ctx context.Context, page int) ([]domain.User, *domain.PageMeta, bool) {
	if !s.begin() {
		return nil, nil, false
	}
	defer s.end()

	users, meta, err := s.admin.Users(ctx, page)
	if err != nil {
		s.fail(err, failureMessage(err, "could not load users"))
		return nil, nil, false
	}
	return users, meta, true
}

func (s *AdminService) SetUserRole(ctx context.Context, userID int64, role string) bool {
	if role != domain.RoleAdmin && role != domain.RoleModerator && role != domain.RoleUser {
		s.setErr("unknown role")
		return false
	}
	if !s.begin() {
		return false
	}
	defer s.end()

	if err := s.admin.SetUserRole(ctx, userID, role); err != nil {
		s.fail(err, failureMessage(err, "could not change the role"))
		return false
	}
	return true
}

func (s *AdminService) DeleteUser(ctx context.Context, userID int64) bool {
	if !s.begin() {
		return false
	}
	defer s.end()

	if err := s.admin.DeleteUser(ctx, userID); err != nil {
		s.fail(err, failureMessage(err, "could not delete the user"))
		return false
	}
	return true
}

func (s *AdminService) Reports(ctx context.Context, status string) ([]domain.Report, bool) {
	if !s.begin() {
		return nil, false
	}
	defer s.end()

	reports, err := s.admin.Reports(ctx, status)
	if err != nil {
		s.fail(err, failureMessage(err, "could not load reports"))
		return nil, false
	}
	return reports, true
}

func (s *AdminService) ResolveReport(ctx context.Context, reportID int64, status string) bool {
	if status != domain.ReportReviewed && status != domain.ReportDismissed {
		s.setErr("reports can only be reviewed or dismissed")
		return false
	}
	if !s.begin() {
		return false
	}
	defer s.end()

	if err := s.admin.ResolveReport(ctx, reportID, status); err != nil {
		s.fail(err, failureMessage(err, "could not resolve the report"))
		return false
	}
	return true
}

func (s *AdminService) CreateCategory(ctx context.Context, name, description string) bool {
	if !s.begin() {
		return false
	}
	defer s.end()

	if _, err := s.admin.CreateCategory(ctx, name, description); err != nil {
		s.fail(err, failureMessage(err, "could not create the category"))
		return false
	}
	return true
}

func (s *AdminService) UpdateCategory(ctx context.Context, id int64, name, description string) bool {
	if !s.begin() {
		return false
	}
	defer s.end()

	if _, err := s.admin.UpdateCategory(ctx, id, name, description); err != nil {
		s.fail(err, failureMessage(err, "could not update the category"))
		return false
	}
	return true
}

func (s *AdminService) DeleteCategory(ctx context.Context, id int64) bool {
	if !s.begin() {
		return false
	}
	defer s.end()

	if err := s.admin.DeleteCategory(ctx, id); err != nil {
		s.fail(err, failureMessage(err, "could not delete the category"))
		return false
	}
	return true
}

func (s *AdminService) CreateTag(ctx context.Context, name string) bool {
	if !s.begin() {
		return false
	}
	defer s.end()

	if _, err := s.admin.CreateTag(ctx, name); err != nil {
		s.fail(err, failureMessage(err, "could not create the tag"))
		return false
	}
	return true
}

func (s *AdminService) DeleteTag(ctx context.Context, id int64) bool {
	if !s.begin() {
		return false
	}
	defer s.end()

	if err := s.admin.DeleteTag(ctx, id); err != nil {
		s.fail(err, failureMessage(err, "could not delete the tag"))
		return false
	}
	return true
}

func (s *AdminService) Stats(ctx context.Context) (*domain.DashboardStats, bool) {
	if !s.begin() {
		return nil, false
	}
	defer s.end()

	stats, err := s.admin.Stats(ctx)
	if err != nil {
		s.fail(err, failureMessage(err, "could not load dashboard stats"))
		return nil, false
	}
	return stats, true
}
