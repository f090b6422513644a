package service

import (
	"context"

	"github.com/studyoverflow/gateway/internal/core/domain"
	"github.com/studyoverflow/gateway/internal/core/ports"
)

// ReportsService files moderation reports against questions and answers.
type ReportsService struct {
	hookState
	reports ports.ReportAPI
}

func NewReportsService(reports ports.ReportAPI) *ReportsService {
	return &ReportsService{reports: reports}
}

// Report submits a report and reports success as a plain bool so the calling
// form can decide whether to close. A 422 has already been toasted centrally;
// the hook only records the inline message.
func (s *ReportsService) Report(ctx context.Context, in ports.ReportInput) bool {
	if !s.begin() {
		return false
	}
	defer s.end()

	if err := s.reports.Create(ctx, in); err != nil {
		if apiErr, ok := domain.AsAPIError(err); ok && apiErr.Kind == domain.KindValidation {
			s.fail(err, apiErr.Message)
		} else {
			s.fail(err, failureMessage(err, "could not submit the report"))
		}
		return false
	}
	return true
}
