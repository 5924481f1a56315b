package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seedstore_backend/internal/chat/repository"
	"seedstore_backend/platform/apperr"
	"seedstore_backend/platform/logger"
)

type fakeRepo struct {
	products   []repository.Product
	catalog    []repository.CatalogProduct
	err        error
	lastWords  []string
	listCalled int
}

func (f *fakeRepo) ListAllWithReferences(context.Context) ([]repository.Product, error) {
	f.listCalled++
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

func (f *fakeRepo) SearchByKeywords(_ context.Context, words []string) ([]repository.CatalogProduct, error) {
	f.lastWords = words
	if f.err != nil {
		return nil, f.err
	}
	return f.catalog, nil
}

func newTestService(repo repository.Repository) *Service {
	return New(repo, NewExtractor(DefaultVocabulary()), logger.New("development"))
}

func appleCatalog() []repository.Product {
	return []repository.Product{
		{
			ID:           1,
			Name:         "Яблоко Голден",
			Description:  strPtr("Немецкий сорт"),
			Price:        40,
			Manufacturer: &repository.ManufacturerRef{Name: "GardenPro", Country: strPtr("Германия")},
			Category:     &repository.CategoryRef{Name: "Фрукты"},
		},
		{
			ID:           2,
			Name:         "Яблоко Антоновка",
			Price:        30,
			Manufacturer: &repository.ManufacturerRef{Name: "Гавриш", Country: strPtr("Россия")},
			Category:     &repository.CategoryRef{Name: "Фрукты"},
		},
	}
}

func TestSearchGermanApplesUnderFifty(t *testing.T) {
	svc := newTestService(&fakeRepo{products: appleCatalog()})

	resp, err := svc.Search(context.Background(), "яблоки дешевле 50 руб из Германии")
	require.NoError(t, err)
	require.Len(t, resp.Products, 1)
	assert.Equal(t, int64(1), resp.Products[0].ID)
	assert.Equal(t, "Я нашел 1 товар(ов), которые соответствуют вашему запросу:", resp.Response)
}

func TestSearchWithoutRecognizedTokensReturnsEverything(t *testing.T) {
	svc := newTestService(&fakeRepo{products: appleCatalog()})

	resp, err := svc.Search(context.Background(), "хочу что-нибудь")
	require.NoError(t, err)
	require.Len(t, resp.Products, 2)
	assert.Equal(t, int64(1), resp.Products[0].ID)
	assert.Equal(t, int64(2), resp.Products[1].ID)
	assert.Equal(t, FoundReply(2), resp.Response)
}

func TestSearchNoMatchesUsesFixedReply(t *testing.T) {
	svc := newTestService(&fakeRepo{products: appleCatalog()})

	resp, err := svc.Search(context.Background(), "тюльпаны")
	require.NoError(t, err)
	assert.Empty(t, resp.Products)
	assert.NotNil(t, resp.Products)
	assert.Equal(t, ReplyNoResults, resp.Response)
}

func TestSearchStorageFailureIsInternal(t *testing.T) {
	repo := &fakeRepo{err: errors.New("connection refused")}
	svc := newTestService(repo)

	_, err := svc.Search(context.Background(), "яблоки")
	require.Error(t, err)
	assert.Equal(t, apperr.KindInternal, apperr.GetKind(err))
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, 1, repo.listCalled, "storage must not be retried")
}

func TestKeywordSearchSplitsLowerCasedPrompt(t *testing.T) {
	now := time.Now()
	repo := &fakeRepo{catalog: []repository.CatalogProduct{
		{ID: 7, Name: "Базилик Дольче", Price: 150, InStock: true, CreatedAt: now, UpdatedAt: now},
	}}
	svc := newTestService(repo)

	got, err := svc.KeywordSearch(context.Background(), "  Базилик   ЗЕЛЕНЬ ")
	require.NoError(t, err)
	assert.Equal(t, []string{"базилик", "зелень"}, repo.lastWords)
	require.Len(t, got, 1)
	assert.Equal(t, "Базилик Дольче", got[0].Name)
	assert.True(t, got[0].InStock)
}

func TestKeywordSearchNotFound(t *testing.T) {
	svc := newTestService(&fakeRepo{})

	_, err := svc.KeywordSearch(context.Background(), "кактус")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = svc.KeywordSearch(context.Background(), "   ")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestRecommendTruncates(t *testing.T) {
	catalog := make([]repository.CatalogProduct, 8)
	for i := range catalog {
		catalog[i] = repository.CatalogProduct{ID: int64(i + 1), Name: "Томат"}
	}
	svc := newTestService(&fakeRepo{catalog: catalog})

	got, err := svc.Recommend(context.Background(), "томат", 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, int64(1), got[0].ID)

	got, err = svc.Recommend(context.Background(), "томат", 0)
	require.NoError(t, err)
	assert.Len(t, got, DefaultRecommendLimit)

	got, err = svc.Recommend(context.Background(), "томат", 50)
	require.NoError(t, err)
	assert.Len(t, got, 8)
}
