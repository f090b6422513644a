package service

import (
	"context"
	"testing"

	"github.com/studyoverflow/gateway/internal/core/domain"
)

type stubTaxonomyAPI struct {
	cats []domain.Category
	tags []domain.Tag
	err  error
}

func (s *stubTaxonomyAPI) Categories(context.Context) ([]domain.Category, error) {
	return s.cats, s.err
}

func (s *stubTaxonomyAPI) Tags(context.Context) ([]domain.Tag, error) {
	return s.tags, s.err
}

func TestTaxonomyService_FailureThenRecovery(t *testing.T) {
	api := &stubTaxonomyAPI{err: &domain.APIError{Status: 500, Kind: domain.KindTransient, Message: "boom"}}
	svc := NewTaxonomyService(api)

	if _, ok := svc.Categories(context.Background()); ok {
		t.Fatalf("expected failure")
	}
	if svc.Err() == "" {
		t.Fatalf("expected an error message")
	}
	if svc.ErrKind() != domain.KindTransient {
		t.Fatalf("expected transient kind, got %q", svc.ErrKind())
	}
	if svc.Loading() {
		t.Fatalf("loading flag stuck after the call returned")
	}

	// The next call clears the previous error on entry.
	api.err = nil
	api.cats = []domain.Category{{ID: 1, Name: "go"}}
	cats, ok := svc.Categories(context.Background())
	if !ok || len(cats) != 1 {
		t.Fatalf("expected one category, ok=%v", ok)
	}
	if svc.Err() != "" {
		t.Fatalf("stale error survived a successful call: %q", svc.Err())
	}
	if svc.Loading() {
		t.Fatalf("loading flag stuck after the call returned")
	}
}
