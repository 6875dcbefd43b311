package entity

import "conduit/internal/common/pagination"

// ArticleFacets is a filter for article listings.
// Empty string fields are not applied. It is passed around by value and never mutated.
type ArticleFacets struct {
	Tag       string // articles carrying this tag
	Author    string // username of the author
	Favorited string // username of a user who favorited the article
	Page      pagination.Params
}

// WithDefaults returns a copy of the facets with pagination defaults applied.
func (f ArticleFacets) WithDefaults(cfg pagination.Config) ArticleFacets {
	f.Page = f.Page.WithDefaults(cfg)
	return f
}

// Offset returns the row offset for the facets' page.
func (f ArticleFacets) Offset() int {
	return pagination.CalculateOffset(f.Page.Page, f.Page.Limit)
}

// Limit returns the page size.
func (f ArticleFacets) Limit() int {
	return f.Page.Limit
}

// ArticleDetails is a read-only projection of an article as seen by a viewer.
// For anonymous viewers Favorited is always false.
type ArticleDetails struct {
	Article        *Article
	FavoritesCount int64
	Favorited      bool
}
