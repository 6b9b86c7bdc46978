package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"recycle-sorter/domain"
	"recycle-sorter/repository"
)

type SortingService struct {
	repo   repository.ItemRepository
	cache  repository.CacheRepository
	logger *slog.Logger
	now    func() time.Time
}

// NewSortingService creates a SortingService backed by the given list and
// cache. A nil logger discards log output.
func NewSortingService(
	repo repository.ItemRepository,
	cache repository.CacheRepository,
	logger *slog.Logger,
) *SortingService {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &SortingService{
		repo:   repo,
		cache:  cache,
		logger: logger,
		now:    time.Now,
	}
}

// ParseInput trims the name and parses the weight. A blank name or a
// weight that is not a finite number yields domain.ErrInvalidInput.
func ParseInput(input domain.ClassifyInput) (string, float64, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return "", 0, fmt.Errorf("%w: empty name", domain.ErrInvalidInput)
	}

	weight, err := strconv.ParseFloat(strings.TrimSpace(input.Weight), 64)
	if err != nil {
		return "", 0, fmt.Errorf("%w: weight %q", domain.ErrInvalidInput, input.Weight)
	}
	if math.IsNaN(weight) || math.IsInf(weight, 0) {
		return "", 0, fmt.Errorf("%w: weight %q is not finite", domain.ErrInvalidInput, input.Weight)
	}

	return name, weight, nil
}

// Classify validates the input, classifies the item and appends it to the
// list. Nothing is appended when validation fails.
func (s *SortingService) Classify(
	ctx context.Context,
	input domain.ClassifyInput,
) (domain.ListEntry, error) {

	name, weight, err := ParseInput(input)
	if err != nil {
		s.logger.Debug("rejected classify input", "name", input.Name, "weight", input.Weight)
		return domain.ListEntry{}, err
	}

	item := s.classify(ctx, name, weight)

	entry, err := s.repo.Append(ctx, domain.ListEntry{
		ID:           uuid.NewString(),
		Item:         item,
		ClassifiedAt: s.now().UTC(),
	})
	if err != nil {
		return domain.ListEntry{}, fmt.Errorf("append item: %w", err)
	}

	s.logger.Info("item classified",
		"id", entry.ID,
		"name", item.Name,
		"weight", item.Weight,
		"category", item.Category.String(),
		"recyclable", item.Recyclable,
	)
	return entry, nil
}

// classify goes through the cache. The cache only ever holds what the
// engine would return, so a broken cache is logged and bypassed.
func (s *SortingService) classify(ctx context.Context, name string, weight float64) domain.ClassifiedItem {
	key := cacheKey(name, weight)

	if cached, ok := s.cache.Get(ctx, key); ok {
		category, err := domain.ParseCategory(cached)
		if err == nil {
			return domain.ClassifiedItem{
				Name:       name,
				Weight:     weight,
				Category:   category,
				Recyclable: category.Recyclable(),
			}
		}
		s.logger.Warn("ignoring bad cache entry", "key", key, "value", cached)
	}

	item := Classify(name, weight)

	if err := s.cache.Set(ctx, key, item.Category.String()); err != nil {
		s.logger.Warn("failed to cache classification", "key", key, "error", err)
	}
	return item
}

// List returns the classified items, oldest first.
func (s *SortingService) List(ctx context.Context) ([]domain.ListEntry, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return entries, nil
}

// Reset empties the list, and the cache too when it supports flushing.
func (s *SortingService) Reset(ctx context.Context) error {
	if err := s.repo.Reset(ctx); err != nil {
		return fmt.Errorf("reset items: %w", err)
	}
	if f, ok := s.cache.(repository.CacheFlusher); ok {
		if err := f.Flush(ctx); err != nil {
			s.logger.Warn("failed to flush classification cache", "error", err)
		}
	}
	s.logger.Info("item list cleared")
	return nil
}

func cacheKey(name string, weight float64) string {
	return cacheKeyPrefix + strings.ToLower(name) + ":" + strconv.FormatFloat(weight, 'g', -1, 64)
}
