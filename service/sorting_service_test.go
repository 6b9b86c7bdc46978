package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recycle-sorter/domain"
	"recycle-sorter/repository"
)

type MockCache struct {
	Data       map[string]string
	GetCalls   int
	ForceError bool
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string]string)}
}

func (m *MockCache) Get(_ context.Context, key string) (string, bool) {
	m.GetCalls++
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(_ context.Context, key string, value string) error {
	if m.ForceError {
		return errors.New("cache down")
	}
	m.Data[key] = value
	return nil
}

type MockItemRepository struct {
	AppendCalled bool
	ForceError   bool
}

func (m *MockItemRepository) Append(_ context.Context, entry domain.ListEntry) (domain.ListEntry, error) {
	m.AppendCalled = true
	if m.ForceError {
		return domain.ListEntry{}, errors.New("append error")
	}
	entry.Position = 1
	return entry, nil
}

func (m *MockItemRepository) List(context.Context) ([]domain.ListEntry, error) {
	return nil, nil
}

func (m *MockItemRepository) Reset(context.Context) error {
	return nil
}

func TestParseInput(t *testing.T) {
	tests := []struct {
		name       string
		input      domain.ClassifyInput
		wantName   string
		wantWeight float64
		wantErr    bool
	}{
		{"valid", domain.ClassifyInput{Name: "Bottle", Weight: "1.5"}, "Bottle", 1.5, false},
		{"trimmed", domain.ClassifyInput{Name: "  Jar  ", Weight: " 3 "}, "Jar", 3, false},
		{"negative weight", domain.ClassifyInput{Name: "Cup", Weight: "-2"}, "Cup", -2, false},
		{"empty name", domain.ClassifyInput{Name: "", Weight: "1"}, "", 0, true},
		{"blank name", domain.ClassifyInput{Name: "   ", Weight: "1"}, "", 0, true},
		{"empty weight", domain.ClassifyInput{Name: "Cup", Weight: ""}, "", 0, true},
		{"text weight", domain.ClassifyInput{Name: "Cup", Weight: "heavy"}, "", 0, true},
		{"NaN weight", domain.ClassifyInput{Name: "Cup", Weight: "NaN"}, "", 0, true},
		{"Inf weight", domain.ClassifyInput{Name: "Cup", Weight: "+Inf"}, "", 0, true},
		{"overflow weight", domain.ClassifyInput{Name: "Cup", Weight: "1e400"}, "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, weight, err := ParseInput(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantWeight, weight)
		})
	}
}

func TestSortingService_Classify(t *testing.T) {
	repo := repository.NewItemRepositoryMemory()
	svc := NewSortingService(repo, NewMockCache(), nil)

	entry, err := svc.Classify(context.Background(), domain.ClassifyInput{Name: "Mystery Object", Weight: "3"})
	require.NoError(t, err)

	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, 1, entry.Position)
	assert.Equal(t, domain.Glass, entry.Item.Category)
	assert.True(t, entry.Item.Recyclable)
	assert.False(t, entry.ClassifiedAt.IsZero())

	entries, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entry, entries[0])
}

func TestSortingService_InvalidInputNotRecorded(t *testing.T) {
	repo := &MockItemRepository{}
	svc := NewSortingService(repo, NewMockCache(), nil)

	_, err := svc.Classify(context.Background(), domain.ClassifyInput{Name: " ", Weight: "abc"})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.False(t, repo.AppendCalled, "repository Append should NOT be called")
}

func TestSortingService_PreservesOrder(t *testing.T) {
	repo := repository.NewItemRepositoryMemory()
	svc := NewSortingService(repo, NewMockCache(), nil)
	ctx := context.Background()

	inputs := []domain.ClassifyInput{
		{Name: "PLASTIC Bottle", Weight: "50"},
		{Name: "Old Chair", Weight: "7"},
		{Name: "Anvil", Weight: "40"},
	}
	for _, in := range inputs {
		_, err := svc.Classify(ctx, in)
		require.NoError(t, err)
	}

	entries, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	want := []domain.Category{domain.Plastic, domain.Wood, domain.Metal}
	for i, e := range entries {
		assert.Equal(t, i+1, e.Position)
		assert.Equal(t, want[i], e.Item.Category)
	}
}

func TestSortingService_UsesCache(t *testing.T) {
	cache := NewMockCache()
	svc := NewSortingService(repository.NewItemRepositoryMemory(), cache, nil)
	ctx := context.Background()

	first, err := svc.Classify(ctx, domain.ClassifyInput{Name: "Box", Weight: "10"})
	require.NoError(t, err)
	assert.Equal(t, "Wood", cache.Data[cacheKey("Box", 10)])

	second, err := svc.Classify(ctx, domain.ClassifyInput{Name: "Box", Weight: "10"})
	require.NoError(t, err)

	assert.Equal(t, first.Item, second.Item)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 2, cache.GetCalls)
}

func TestSortingService_IgnoresBadCacheEntry(t *testing.T) {
	cache := NewMockCache()
	cache.Data[cacheKey("Box", 10)] = "Cardboard"
	svc := NewSortingService(repository.NewItemRepositoryMemory(), cache, nil)

	entry, err := svc.Classify(context.Background(), domain.ClassifyInput{Name: "Box", Weight: "10"})
	require.NoError(t, err)

	assert.Equal(t, domain.Wood, entry.Item.Category)
	assert.Equal(t, "Wood", cache.Data[cacheKey("Box", 10)])
}

func TestSortingService_CacheErrorIsNotFatal(t *testing.T) {
	cache := NewMockCache()
	cache.ForceError = true
	svc := NewSortingService(repository.NewItemRepositoryMemory(), cache, nil)

	entry, err := svc.Classify(context.Background(), domain.ClassifyInput{Name: "Jar", Weight: "3"})
	require.NoError(t, err)
	assert.Equal(t, domain.Glass, entry.Item.Category)
}

func TestSortingService_RepositoryError(t *testing.T) {
	repo := &MockItemRepository{ForceError: true}
	svc := NewSortingService(repo, NewMockCache(), nil)

	_, err := svc.Classify(context.Background(), domain.ClassifyInput{Name: "Jar", Weight: "3"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSortingService_Reset(t *testing.T) {
	svc := NewSortingService(repository.NewItemRepositoryMemory(), NewMockCache(), nil)
	ctx := context.Background()

	_, err := svc.Classify(ctx, domain.ClassifyInput{Name: "Jar", Weight: "3"})
	require.NoError(t, err)
	require.NoError(t, svc.Reset(ctx))

	entries, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSortingService_ResetClearsCache(t *testing.T) {
	cache := repository.NewMemoryCache(time.Hour, 10000)
	svc := NewSortingService(repository.NewItemRepositoryMemory(), cache, nil)
	ctx := context.Background()

	for i := 0; i < 5000; i++ {
		_, err := svc.Classify(ctx, domain.ClassifyInput{Name: fmt.Sprintf("item %d", i), Weight: "1"})
		require.NoError(t, err)
		require.NoError(t, svc.Reset(ctx))
	}

	assert.Equal(t, 0, cache.Len())
}

func TestSortingService_CacheStaysBounded(t *testing.T) {
	cache := repository.NewMemoryCache(time.Hour, 50)
	svc := NewSortingService(repository.NewItemRepositoryMemory(), cache, nil)
	ctx := context.Background()

	for i := 0; i < 1000; i++ {
		_, err := svc.Classify(ctx, domain.ClassifyInput{Name: fmt.Sprintf("item %d", i), Weight: "7"})
		require.NoError(t, err)
	}

	assert.LessOrEqual(t, cache.Len(), 50)
}

func TestCacheKey_CaseInsensitive(t *testing.T) {
	assert.Equal(t, cacheKey("Glass Jar", 2.5), cacheKey("GLASS JAR", 2.5))
	assert.NotEqual(t, cacheKey("jar", 2), cacheKey("jar", 2.5))
}
