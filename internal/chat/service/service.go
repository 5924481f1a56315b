// Package service implements chat search: criteria extraction, in-process
// product filtering and the keyword agent.
package service

import (
	"context"
	"fmt"
	"strings"

	"seedstore_backend/internal/chat/repository"
	"seedstore_backend/internal/chat/transport"
	"seedstore_backend/platform/apperr"
	"seedstore_backend/platform/logger"
	"seedstore_backend/platform/metrics"
)

const (
	// ReplyNoResults is sent when nothing survives the filter.
	ReplyNoResults = "К сожалению, я не нашел товаров, соответствующих вашему запросу. Попробуйте изменить критерии поиска."
	replyFoundFmt  = "Я нашел %d товар(ов), которые соответствуют вашему запросу:"

	// DefaultRecommendLimit is used when /recommend gets no limit.
	DefaultRecommendLimit = 5

	msgNoKeywordMatches = "no products found matching your description"
)

// Service provides chat search business logic.
type Service struct {
	repo      repository.Repository
	extractor *Extractor
	log       *logger.Logger
}

// New creates a new chat service.
func New(repo repository.Repository, extractor *Extractor, log *logger.Logger) *Service {
	return &Service{repo: repo, extractor: extractor, log: log}
}

// Extract exposes the criteria extractor.
func (s *Service) Extract(prompt string) SearchCriteria {
	return s.extractor.Extract(prompt)
}

// Search answers one chat turn. The full catalog is fetched and filtered in
// process; a storage failure aborts the turn with an internal error.
func (s *Service) Search(ctx context.Context, prompt string) (transport.ChatSearchResponse, error) {
	criteria := s.extractor.Extract(prompt)
	for _, field := range criteria.SetFields() {
		metrics.ChatCriteriaFields.WithLabelValues(field).Inc()
	}

	products, err := s.repo.ListAllWithReferences(ctx)
	if err != nil {
		metrics.ChatSearchesTotal.WithLabelValues(metrics.OutcomeError).Inc()
		s.log.DatabaseError("chat.list_products", err)
		return transport.ChatSearchResponse{}, apperr.Internal(err)
	}

	filtered := Filter(products, criteria)
	s.log.WithContext(ctx).ChatSearch(prompt, criteria, len(products), len(filtered))
	metrics.ChatSearchMatches.Observe(float64(len(filtered)))

	if len(filtered) == 0 {
		metrics.ChatSearchesTotal.WithLabelValues(metrics.OutcomeEmpty).Inc()
		return transport.ChatSearchResponse{Response: ReplyNoResults, Products: filtered}, nil
	}
	metrics.ChatSearchesTotal.WithLabelValues(metrics.OutcomeMatched).Inc()
	return transport.ChatSearchResponse{
		Response: FoundReply(len(filtered)),
		Products: filtered,
	}, nil
}

// FoundReply formats the reply for n matches.
func FoundReply(n int) string {
	return fmt.Sprintf(replyFoundFmt, n)
}

// KeywordSearch returns products matching any whitespace-separated word of
// prompt in their name, description, category or manufacturer.
func (s *Service) KeywordSearch(ctx context.Context, prompt string) ([]transport.ProductResponse, error) {
	words := strings.Fields(strings.ToLower(prompt))
	if len(words) == 0 {
		return nil, apperr.NotFound(msgNoKeywordMatches)
	}

	products, err := s.repo.SearchByKeywords(ctx, words)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if len(products) == 0 {
		return nil, apperr.NotFound(msgNoKeywordMatches)
	}

	out := make([]transport.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// Recommend is KeywordSearch truncated to limit results.
func (s *Service) Recommend(ctx context.Context, prompt string, limit int) ([]transport.ProductResponse, error) {
	if limit <= 0 {
		limit = DefaultRecommendLimit
	}
	products, err := s.KeywordSearch(ctx, prompt)
	if err != nil {
		return nil, err
	}
	if len(products) > limit {
		products = products[:limit]
	}
	return products, nil
}

func toProductResponse(p repository.CatalogProduct) transport.ProductResponse {
	return transport.ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		ImageURL:       p.ImageURL,
		CategoryID:     p.CategoryID,
		ManufacturerID: p.ManufacturerID,
		AverageRating:  p.AverageRating,
		InStock:        p.InStock,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
