// Package repository declares the persistence ports the article use case depends on.
// Implementations live under internal/infra/adapter/persistence.
package repository

import (
	"context"

	"conduit/internal/domain/entity"
)

// ArticleRepository queries and persists articles.
//
// Implementations report unique key violations (duplicate title or slug)
// as errors wrapping entity.ErrConflict.
type ArticleRepository interface {
	// FindBySlug returns the article with the given slug, tags included.
	// Returns (nil, nil) if no article has that slug.
	FindBySlug(ctx context.Context, slug string) (*entity.Article, error)
	ExistsByTitle(ctx context.Context, title string) (bool, error)
	// FindAll lists articles matching the facets, newest first, one page at a time.
	FindAll(ctx context.Context, facets entity.ArticleFacets) ([]*entity.Article, error)
	// FindByAuthors lists articles written by any of authors, newest first.
	// Only the pagination part of facets is applied.
	FindByAuthors(ctx context.Context, authors []entity.User, facets entity.ArticleFacets) ([]*entity.Article, error)
	// Save inserts a new article together with its tags.
	// Tags that do not exist yet are created.
	Save(ctx context.Context, article *entity.Article, tags []entity.Tag) (*entity.Article, error)
	// Update persists slug, title, description, content and updated_at of an existing article.
	Update(ctx context.Context, article *entity.Article) (*entity.Article, error)
	Delete(ctx context.Context, article *entity.Article) error
	FindDetailsByAnonymous(ctx context.Context, article *entity.Article) (entity.ArticleDetails, error)
	FindDetailsByUser(ctx context.Context, requester *entity.User, article *entity.Article) (entity.ArticleDetails, error)
}

// ArticleFavoriteRepository tracks which users favorited which articles.
type ArticleFavoriteRepository interface {
	ExistsByUserAndArticle(ctx context.Context, user *entity.User, article *entity.Article) (bool, error)
	// Save records a favorite. A second favorite for the same pair
	// fails with an error wrapping entity.ErrConflict.
	Save(ctx context.Context, favorite entity.ArticleFavorite) error
	DeleteByUserAndArticle(ctx context.Context, user *entity.User, article *entity.Article) error
}

// SocialRepository resolves follow relationships.
type SocialRepository interface {
	// FindByFollower returns the edges whose follower is user.
	FindByFollower(ctx context.Context, user *entity.User) ([]entity.UserFollow, error)
}
