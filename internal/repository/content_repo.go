package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/joebaillie21/daycipe.io/internal/model"
)

type ContentRepo struct {
	pool *pgxpool.Pool
}

func NewContentRepo(pool *pgxpool.Pool) *ContentRepo {
	return &ContentRepo{pool: pool}
}

// kindTables maps each kind to its table. Table names come from this
// fixed map only, never from request input.
var kindTables = map[model.Kind]string{
	model.KindFact:   "facts",
	model.KindJoke:   "jokes",
	model.KindRecipe: "recipes",
}

// ApplyVoteDelta adjusts an item's score by delta and rewrites is_shown
// against the given threshold, in one transaction. The score update is a
// relative delta so concurrent votes never lose an increment. Returns
// model.ErrNotFound if no item with that id exists.
func (r *ContentRepo) ApplyVoteDelta(ctx context.Context, kind model.Kind, id int64, delta, threshold int) (int, bool, error) {
	table, ok := kindTables[kind]
	if !ok {
		return 0, false, fmt.Errorf("no table for kind %q", kind)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, false, err
	}
	defer tx.Rollback(ctx)

	var score int
	err = tx.QueryRow(ctx,
		fmt.Sprintf(`UPDATE %s SET score = score + $1 WHERE id = $2 RETURNING score`, table),
		delta, id).Scan(&score)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, model.ErrNotFound
	}
	if err != nil {
		return 0, false, err
	}

	shown := score >= threshold
	_, err = tx.Exec(ctx,
		fmt.Sprintf(`UPDATE %s SET is_shown = $1 WHERE id = $2`, table),
		shown, id)
	if err != nil {
		return 0, false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, false, err
	}
	return score, shown, nil
}

// --- Facts ---

const factCols = "id, date, content, source, category, score, is_shown"

func (r *ContentRepo) CreateFact(ctx context.Context, date time.Time, content, source, category string) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO facts (date, content, source, category)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		date, content, source, category).Scan(&id)
	return id, err
}

// ListFacts returns every fact, hidden ones included (admin/listing path).
func (r *ContentRepo) ListFacts(ctx context.Context) ([]model.Fact, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+factCols+` FROM facts ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFacts(rows)
}

// FactForDate returns the best shown fact for (date, category), or
// model.ErrNotFound when none exists or the slot is hidden.
func (r *ContentRepo) FactForDate(ctx context.Context, date time.Time, category string) (*model.Fact, error) {
	var f model.Fact
	err := r.pool.QueryRow(ctx, `
		SELECT `+factCols+` FROM facts
		WHERE date = $1 AND category = $2 AND is_shown = TRUE
		ORDER BY score DESC, id
		LIMIT 1`,
		date, category).Scan(&f.ID, &f.Date, &f.Content, &f.Source, &f.Category, &f.Score, &f.IsShown)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// FactsForAllCategories returns the highest-scoring shown fact per
// category for a date. Ties break on insertion order (lowest id).
func (r *ContentRepo) FactsForAllCategories(ctx context.Context, date time.Time) ([]model.Fact, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT ON (category) `+factCols+` FROM facts
		WHERE date = $1 AND is_shown = TRUE
		ORDER BY category, score DESC, id`,
		date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFacts(rows)
}

// FactsInRange returns all shown facts with date in [start, end],
// newest date first, highest score first within a date.
func (r *ContentRepo) FactsInRange(ctx context.Context, start, end time.Time) ([]model.Fact, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+factCols+` FROM facts
		WHERE date BETWEEN $1 AND $2 AND is_shown = TRUE
		ORDER BY date DESC, score DESC, id`,
		start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFacts(rows)
}

func scanFacts(rows pgx.Rows) ([]model.Fact, error) {
	var facts []model.Fact
	for rows.Next() {
		var f model.Fact
		if err := rows.Scan(&f.ID, &f.Date, &f.Content, &f.Source, &f.Category, &f.Score, &f.IsShown); err != nil {
			return nil, err
		}
		facts = append(facts, f)
	}
	return facts, rows.Err()
}

// --- Jokes ---

const jokeCols = "id, date, content, score, is_shown"

func (r *ContentRepo) CreateJoke(ctx context.Context, date time.Time, content string) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO jokes (date, content) VALUES ($1, $2) RETURNING id`,
		date, content).Scan(&id)
	return id, err
}

func (r *ContentRepo) ListJokes(ctx context.Context) ([]model.Joke, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+jokeCols+` FROM jokes ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanJokes(rows)
}

// JokeForDate returns the best shown joke for a date. Jokes have no
// category axis.
func (r *ContentRepo) JokeForDate(ctx context.Context, date time.Time) (*model.Joke, error) {
	var j model.Joke
	err := r.pool.QueryRow(ctx, `
		SELECT `+jokeCols+` FROM jokes
		WHERE date = $1 AND is_shown = TRUE
		ORDER BY score DESC, id
		LIMIT 1`,
		date).Scan(&j.ID, &j.Date, &j.Content, &j.Score, &j.IsShown)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *ContentRepo) JokesInRange(ctx context.Context, start, end time.Time) ([]model.Joke, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+jokeCols+` FROM jokes
		WHERE date BETWEEN $1 AND $2 AND is_shown = TRUE
		ORDER BY date DESC, score DESC, id`,
		start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanJokes(rows)
}

func scanJokes(rows pgx.Rows) ([]model.Joke, error) {
	var jokes []model.Joke
	for rows.Next() {
		var j model.Joke
		if err := rows.Scan(&j.ID, &j.Date, &j.Content, &j.Score, &j.IsShown); err != nil {
			return nil, err
		}
		jokes = append(jokes, j)
	}
	return jokes, rows.Err()
}

// --- Recipes ---

const recipeCols = "id, date, content, category, score, is_shown"

func (r *ContentRepo) CreateRecipe(ctx context.Context, date time.Time, body model.RecipeBody, category string) (int64, error) {
	content, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("marshal recipe body: %w", err)
	}

	var id int64
	err = r.pool.QueryRow(ctx, `
		INSERT INTO recipes (date, content, category)
		VALUES ($1, $2, $3) RETURNING id`,
		date, string(content), category).Scan(&id)
	return id, err
}

func (r *ContentRepo) ListRecipes(ctx context.Context) ([]model.Recipe, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+recipeCols+` FROM recipes ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecipes(rows)
}

func (r *ContentRepo) RecipeForDate(ctx context.Context, date time.Time, category string) (*model.Recipe, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+recipeCols+` FROM recipes
		WHERE date = $1 AND category = $2 AND is_shown = TRUE
		ORDER BY score DESC, id
		LIMIT 1`,
		date, category)

	recipe, err := scanRecipeRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return recipe, nil
}

func (r *ContentRepo) RecipesForAllCategories(ctx context.Context, date time.Time) ([]model.Recipe, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT ON (category) `+recipeCols+` FROM recipes
		WHERE date = $1 AND is_shown = TRUE
		ORDER BY category, score DESC, id`,
		date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecipes(rows)
}

func (r *ContentRepo) RecipesInRange(ctx context.Context, start, end time.Time) ([]model.Recipe, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+recipeCols+` FROM recipes
		WHERE date BETWEEN $1 AND $2 AND is_shown = TRUE
		ORDER BY date DESC, score DESC, id`,
		start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecipes(rows)
}

func scanRecipeRow(row pgx.Row) (*model.Recipe, error) {
	var rec model.Recipe
	var content string
	if err := row.Scan(&rec.ID, &rec.Date, &content, &rec.Category, &rec.Score, &rec.IsShown); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(content), &rec.Content); err != nil {
		return nil, fmt.Errorf("unmarshal recipe %d body: %w", rec.ID, err)
	}
	return &rec, nil
}

func scanRecipes(rows pgx.Rows) ([]model.Recipe, error) {
	var recipes []model.Recipe
	for rows.Next() {
		rec, err := scanRecipeRow(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, *rec)
	}
	return recipes, rows.Err()
}

// --- Stats ---

// KindStats holds item counts for one kind.
type KindStats struct {
	Total  int `json:"total"`
	Hidden int `json:"hidden"`
}

// Stats returns total and hidden item counts per kind.
func (r *ContentRepo) Stats(ctx context.Context) (map[model.Kind]KindStats, error) {
	stats := make(map[model.Kind]KindStats, len(kindTables))
	for kind, table := range kindTables {
		var s KindStats
		err := r.pool.QueryRow(ctx, fmt.Sprintf(`
			SELECT COUNT(*), COUNT(*) FILTER (WHERE NOT is_shown) FROM %s`, table)).
			Scan(&s.Total, &s.Hidden)
		if err != nil {
			return nil, err
		}
		stats[kind] = s
	}
	return stats, nil
}
