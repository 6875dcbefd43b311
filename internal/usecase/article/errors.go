// Package article provides the article use cases: reading articles and feeds,
// writing and editing articles, and favoriting.
// It enforces title uniqueness, authorship and favorite-state rules and
// delegates persistence to the repository ports.
package article

import (
	"errors"

	"conduit/internal/domain/entity"
)

// Sentinel errors for article use case operations.
// Each one also matches its domain error kind with errors.Is
// (entity.ErrNotFound, entity.ErrConflict or entity.ErrForbidden).
var (
	// ErrArticleNotFound indicates that no article has the requested slug.
	ErrArticleNotFound = newKindError(entity.ErrNotFound, "article not found")

	// ErrInvalidSlug indicates that an empty slug was supplied.
	ErrInvalidSlug = newKindError(entity.ErrInvalidInput, "invalid article slug")

	// ErrDuplicateTitle indicates that another article already uses the title.
	ErrDuplicateTitle = newKindError(entity.ErrConflict, "title already exists")

	// ErrAlreadyFavorited indicates that the requester already favorited the article.
	ErrAlreadyFavorited = newKindError(entity.ErrConflict, "you already favorited this article")

	// ErrNotFavorited indicates that the requester has not favorited the article.
	ErrNotFavorited = newKindError(entity.ErrConflict, "you have not favorited this article")

	// ErrNotAuthor indicates that the requester tried to modify someone else's article.
	ErrNotAuthor = newKindError(entity.ErrForbidden, "you can't modify articles written by others")
)

// kindError is a sentinel with its own message that unwraps to a domain error kind.
type kindError struct {
	kind error
	msg  string
}

func newKindError(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

// errorKind classifies err for metrics labels.
func errorKind(err error) string {
	switch {
	case errors.Is(err, entity.ErrNotFound):
		return "not_found"
	case errors.Is(err, entity.ErrConflict):
		return "conflict"
	case errors.Is(err, entity.ErrForbidden):
		return "forbidden"
	case errors.Is(err, entity.ErrValidationFailed), errors.Is(err, entity.ErrInvalidInput):
		return "validation"
	default:
		return "internal"
	}
}
