package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/joebaillie21/daycipe.io/internal/model"
	"github.com/joebaillie21/daycipe.io/internal/repository"
)

// DefaultCategory is the category assigned when a caller does not name
// one for categorized kinds.
const DefaultCategory = "default"

// AllCategories is the sentinel category selecting one best item per
// category.
const AllCategories = "all"

// ContentService resolves which items represent a given day and serves
// range queries. Hidden items are filtered inside every query; no read
// path can leak them.
type ContentService struct {
	repo  *repository.ContentRepo
	cache *CacheService
}

func NewContentService(repo *repository.ContentRepo, cache *CacheService) *ContentService {
	return &ContentService{repo: repo, cache: cache}
}

// validateRange checks a date range and applies the end-defaults-to-start
// rule. Zero end means "same day as start".
func validateRange(start, end time.Time) (time.Time, time.Time, error) {
	if end.IsZero() {
		end = start
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: endDate cannot be earlier than startDate", model.ErrInvalidArgument)
	}
	return start, end, nil
}

// --- Facts ---

func (s *ContentService) TodayFact(ctx context.Context, date time.Time, category string) (*model.Fact, error) {
	if category == "" {
		category = DefaultCategory
	}
	var fact model.Fact
	if s.cacheGet(ctx, model.KindFact, date, category, &fact) {
		return &fact, nil
	}

	result, err := s.repo.FactForDate(ctx, date, category)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, model.KindFact, date, category, result)
	return result, nil
}

func (s *ContentService) TodayFactsAllCategories(ctx context.Context, date time.Time) ([]model.Fact, error) {
	var facts []model.Fact
	if s.cacheGet(ctx, model.KindFact, date, AllCategories, &facts) {
		return facts, nil
	}

	facts, err := s.repo.FactsForAllCategories(ctx, date)
	if err != nil {
		return nil, err
	}
	if len(facts) > 0 {
		s.cacheSet(ctx, model.KindFact, date, AllCategories, facts)
	}
	return facts, nil
}

func (s *ContentService) FactsRange(ctx context.Context, start, end time.Time) ([]model.Fact, error) {
	start, end, err := validateRange(start, end)
	if err != nil {
		return nil, err
	}
	return s.repo.FactsInRange(ctx, start, end)
}

func (s *ContentService) ListFacts(ctx context.Context) ([]model.Fact, error) {
	return s.repo.ListFacts(ctx)
}

func (s *ContentService) CreateFact(ctx context.Context, date time.Time, content, source, category string) (int64, error) {
	if category == "" {
		category = DefaultCategory
	}
	return s.repo.CreateFact(ctx, date, content, source, category)
}

// --- Jokes ---

func (s *ContentService) TodayJoke(ctx context.Context, date time.Time) (*model.Joke, error) {
	var joke model.Joke
	if s.cacheGet(ctx, model.KindJoke, date, "", &joke) {
		return &joke, nil
	}

	result, err := s.repo.JokeForDate(ctx, date)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, model.KindJoke, date, "", result)
	return result, nil
}

func (s *ContentService) JokesRange(ctx context.Context, start, end time.Time) ([]model.Joke, error) {
	start, end, err := validateRange(start, end)
	if err != nil {
		return nil, err
	}
	return s.repo.JokesInRange(ctx, start, end)
}

func (s *ContentService) ListJokes(ctx context.Context) ([]model.Joke, error) {
	return s.repo.ListJokes(ctx)
}

func (s *ContentService) CreateJoke(ctx context.Context, date time.Time, content string) (int64, error) {
	return s.repo.CreateJoke(ctx, date, content)
}

// --- Recipes ---

func (s *ContentService) TodayRecipe(ctx context.Context, date time.Time, category string) (*model.Recipe, error) {
	if category == "" {
		category = DefaultCategory
	}
	var recipe model.Recipe
	if s.cacheGet(ctx, model.KindRecipe, date, category, &recipe) {
		return &recipe, nil
	}

	result, err := s.repo.RecipeForDate(ctx, date, category)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, model.KindRecipe, date, category, result)
	return result, nil
}

func (s *ContentService) TodayRecipesAllCategories(ctx context.Context, date time.Time) ([]model.Recipe, error) {
	var recipes []model.Recipe
	if s.cacheGet(ctx, model.KindRecipe, date, AllCategories, &recipes) {
		return recipes, nil
	}

	recipes, err := s.repo.RecipesForAllCategories(ctx, date)
	if err != nil {
		return nil, err
	}
	if len(recipes) > 0 {
		s.cacheSet(ctx, model.KindRecipe, date, AllCategories, recipes)
	}
	return recipes, nil
}

func (s *ContentService) RecipesRange(ctx context.Context, start, end time.Time) ([]model.Recipe, error) {
	start, end, err := validateRange(start, end)
	if err != nil {
		return nil, err
	}
	return s.repo.RecipesInRange(ctx, start, end)
}

func (s *ContentService) ListRecipes(ctx context.Context) ([]model.Recipe, error) {
	return s.repo.ListRecipes(ctx)
}

func (s *ContentService) CreateRecipe(ctx context.Context, date time.Time, body model.RecipeBody, category string) (int64, error) {
	if category == "" {
		category = DefaultCategory
	}
	return s.repo.CreateRecipe(ctx, date, body, category)
}

// --- Combined range ---

// RangeContent aggregates the shown items of every kind for a range.
type RangeContent struct {
	Facts   []model.Fact   `json:"facts"`
	Jokes   []model.Joke   `json:"jokes"`
	Recipes []model.Recipe `json:"recipes"`
}

// RangeAll resolves all three kinds for [start, end]. Backs the "go to
// any date" navigation view.
func (s *ContentService) RangeAll(ctx context.Context, start, end time.Time) (*RangeContent, error) {
	start, end, err := validateRange(start, end)
	if err != nil {
		return nil, err
	}

	facts, err := s.repo.FactsInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	jokes, err := s.repo.JokesInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	recipes, err := s.repo.RecipesInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	return &RangeContent{Facts: facts, Jokes: jokes, Recipes: recipes}, nil
}

// Stats returns per-kind item totals and hidden counts.
func (s *ContentService) Stats(ctx context.Context) (map[model.Kind]repository.KindStats, error) {
	return s.repo.Stats(ctx)
}

// --- cache helpers ---

func (s *ContentService) cacheGet(ctx context.Context, kind model.Kind, date time.Time, category string, out interface{}) bool {
	if s.cache == nil {
		return false
	}
	data, err := s.cache.GetToday(ctx, kind, date, category)
	if err != nil {
		log.Printf("cache: get %s error: %v", kind, err)
		return false
	}
	if data == nil {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.Printf("cache: decode %s error: %v", kind, err)
		return false
	}
	return true
}

func (s *ContentService) cacheSet(ctx context.Context, kind model.Kind, date time.Time, category string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetToday(ctx, kind, date, category, value); err != nil {
		log.Printf("cache: set %s error: %v", kind, err)
	}
}
