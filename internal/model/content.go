package model

import (
	"errors"
	"time"
)

// Kind identifies a content kind. Each kind lives in its own table.
type Kind string

const (
	KindFact   Kind = "fact"
	KindJoke   Kind = "joke"
	KindRecipe Kind = "recipe"
)

// Kinds lists every recognized content kind in a stable order.
var Kinds = []Kind{KindFact, KindJoke, KindRecipe}

// Valid reports whether k is a recognized content kind.
func (k Kind) Valid() bool {
	switch k {
	case KindFact, KindJoke, KindRecipe:
		return true
	}
	return false
}

// Sentinel errors shared across repositories, services and handlers.
var (
	// ErrNotFound means the addressed item does not exist (or is invisible
	// to the query, which callers cannot distinguish).
	ErrNotFound = errors.New("content not found")
	// ErrInvalidArgument means the request was rejected before touching
	// storage (malformed id, bad date, inverted range, missing field).
	ErrInvalidArgument = errors.New("invalid argument")
)

// Fact is a daily fact scheduled for a date within a subject category.
type Fact struct {
	ID       int64     `json:"id"`
	Date     time.Time `json:"date"`
	Content  string    `json:"content"`
	Source   string    `json:"source"`
	Category string    `json:"category"`
	Score    int       `json:"score"`
	IsShown  bool      `json:"is_shown"`
}

// Joke is a daily joke. Jokes have no category.
type Joke struct {
	ID      int64     `json:"id"`
	Date    time.Time `json:"date"`
	Content string    `json:"content"`
	Score   int       `json:"score"`
	IsShown bool      `json:"is_shown"`
}

// Recipe is a daily recipe scheduled for a date within a dietary category.
// Content holds the structured recipe body.
type Recipe struct {
	ID       int64      `json:"id"`
	Date     time.Time  `json:"date"`
	Content  RecipeBody `json:"content"`
	Category string     `json:"category"`
	Score    int        `json:"score"`
	IsShown  bool       `json:"is_shown"`
}

// VoteResult is returned after every vote mutation: the item's new score
// and the visibility derived from it.
type VoteResult struct {
	ID       int64 `json:"id"`
	NewScore int   `json:"newScore"`
	IsShown  bool  `json:"isShown"`
}

// CreateFactRequest is the payload for creating a fact.
type CreateFactRequest struct {
	Date     string `json:"date"`
	Content  string `json:"content"`
	Source   string `json:"source"`
	Category string `json:"category"`
}

// CreateJokeRequest is the payload for creating a joke.
type CreateJokeRequest struct {
	Date    string `json:"date"`
	Content string `json:"content"`
}

// CreateRecipeRequest is the payload for creating a recipe.
type CreateRecipeRequest struct {
	Date     string     `json:"date"`
	Content  RecipeBody `json:"content"`
	Category string     `json:"category"`
}
