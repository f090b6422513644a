package service

import (
	"context"
	"testing"

	"github.com/studyoverflow/gateway/internal/core/domain"
	"github.com/studyoverflow/gateway/internal/core/ports"
)

type stubReportAPI struct {
	err  error
	last ports.ReportInput
}

func (s *stubReportAPI) Create(_ context.Context, in ports.ReportInput) error {
	s.last = in
	return s.err
}

func TestReportsService_Report_Success(t *testing.T) {
	api := &stubReportAPI{}
	svc := NewReportsService(api)

	ok := svc.Report(context.Background(), ports.ReportInput{
		ReportableType: domain.VotableQuestion,
		ReportableID:   9,
		Reason:         "spam",
		Description:    "link farm",
	})
	if !ok {
		t.Fatalf("expected success, err=%q", svc.Err())
	}
	if api.last.Reason != "spam" || api.last.ReportableID != 9 {
		t.Fatalf("unexpected upstream input: %+v", api.last)
	}
}

func TestReportsService_Report_ValidationReturnsFalseWithoutPanic(t *testing.T) {
	api := &stubReportAPI{err: &domain.APIError{Status: 422, Kind: domain.KindValidation, Message: "reason is required"}}
	svc := NewReportsService(api)

	if svc.Report(context.Background(), ports.ReportInput{}) {
		t.Fatalf("expected failure")
	}
	if svc.Err() != "reason is required" {
		t.Fatalf("expected inline message, got %q", svc.Err())
	}
}
