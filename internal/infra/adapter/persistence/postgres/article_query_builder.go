// Package postgres provides PostgreSQL implementations of repository interfaces.
package postgres

import (
	"fmt"
	"strings"

	"conduit/internal/domain/entity"
	"conduit/internal/infra/db"
)

// ArticleQueryBuilder builds WHERE clauses for article listings in PostgreSQL.
// Clauses refer to the article table as "a" and use numbered placeholders ($1, $2, ...).
type ArticleQueryBuilder struct{}

// NewArticleQueryBuilder creates a new query builder instance.
func NewArticleQueryBuilder() *ArticleQueryBuilder {
	return &ArticleQueryBuilder{}
}

// BuildWhereClause builds the WHERE clause and arguments for the tag, author
// and favorited facets. Empty facets are not applied. Returns an empty string
// if no facet is set. Pagination is left to BuildPage.
func (qb *ArticleQueryBuilder) BuildWhereClause(facets entity.ArticleFacets) (clause string, args []interface{}) {
	var conditions []string
	paramIndex := 1

	if facets.Tag != "" {
		conditions = append(conditions, fmt.Sprintf(`EXISTS (
    SELECT 1 FROM article_tags at
    INNER JOIN tags t ON t.id = at.tag_id
    WHERE at.article_id = a.id AND t.name = $%d)`, paramIndex))
		args = append(args, facets.Tag)
		paramIndex++
	}

	if facets.Author != "" {
		conditions = append(conditions, fmt.Sprintf("u.username = $%d", paramIndex))
		args = append(args, facets.Author)
		paramIndex++
	}

	if facets.Favorited != "" {
		conditions = append(conditions, fmt.Sprintf(`EXISTS (
    SELECT 1 FROM article_favorites af
    INNER JOIN users fu ON fu.id = af.user_id
    WHERE af.article_id = a.id AND fu.username = $%d)`, paramIndex))
		args = append(args, facets.Favorited)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

// BuildAuthorsClause builds "WHERE a.author_id IN (...)" for authors.
// Returns an empty string for no authors; callers should skip the query then.
func (qb *ArticleQueryBuilder) BuildAuthorsClause(authors []entity.User) (clause string, args []interface{}) {
	if len(authors) == 0 {
		return "", nil
	}
	for _, u := range authors {
		args = append(args, u.ID)
	}
	return "WHERE a.author_id IN (" + db.Placeholders(len(authors), 1, true) + ")", args
}

// BuildPage appends ordering and LIMIT/OFFSET after argCount existing arguments.
func (qb *ArticleQueryBuilder) BuildPage(facets entity.ArticleFacets, argCount int) (clause string, args []interface{}) {
	clause = fmt.Sprintf("ORDER BY a.created_at DESC, a.id DESC LIMIT $%d OFFSET $%d", argCount+1, argCount+2)
	return clause, []interface{}{facets.Limit(), facets.Offset()}
}
