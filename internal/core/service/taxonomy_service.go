package service

import (
	"context"

	"github.com/studyoverflow/gateway/internal/core/domain"
	"github.com/studyoverflow/gateway/internal/core/ports"
)

// TaxonomyService serves the public category and tag listings.
type TaxonomyService struct {
	hookState
	taxonomy ports.TaxonomyAPI
}

func NewTaxonomyService(taxonomy ports.TaxonomyAPI) *TaxonomyService {
	return &TaxonomyService{taxonomy: taxonomy}
}

func (s *TaxonomyService) Categories(ctx context.Context) ([]domain.Category, bool) {
	if !s.begin() {
		return nil, false
	}
	defer s.end()

	cats, err := s.taxonomy.Categories(ctx)
	if err != nil {
		s.fail(err, failureMessage(err, "could not load categories"))
		return nil, false
	}
	return cats, true
}

func (s *TaxonomyService) Tags(ctx context.Context) ([]domain.Tag, bool) {
	if !s.begin() {
		return nil, false
	}
	defer s.end()

	tags, err := s.taxonomy.Tags(ctx)
	if err != nil {
		s.fail(err, failureMessage(err, "could not load tags"))
		return nil, false
	}
	return tags, true
}
