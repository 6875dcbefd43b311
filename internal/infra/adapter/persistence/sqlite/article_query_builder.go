package sqlite

import (
	"strings"

	"conduit/internal/domain/entity"
	"conduit/internal/infra/db"
)

// ArticleQueryBuilder builds WHERE clauses for article listings in SQLite.
// Clauses refer to the article table as "a" and use positional placeholders (?).
type ArticleQueryBuilder struct{}

// NewArticleQueryBuilder creates a new query builder instance.
func NewArticleQueryBuilder() *ArticleQueryBuilder {
	return &ArticleQueryBuilder{}
}

// BuildWhereClause builds the WHERE clause and arguments for the tag, author
// and favorited facets. Returns an empty string if no facet is set.
func (qb *ArticleQueryBuilder) BuildWhereClause(facets entity.ArticleFacets) (clause string, args []interface{}) {
	var conditions []string

	if facets.Tag != "" {
		conditions = append(conditions, `EXISTS (
    SELECT 1 FROM article_tags at
    INNER JOIN tags t ON t.id = at.tag_id
    WHERE at.article_id = a.id AND t.name = ?)`)
		args = append(args, facets.Tag)
	}

	if facets.Author != "" {
		conditions = append(conditions, "u.username = ?")
		args = append(args, facets.Author)
	}

	if facets.Favorited != "" {
		conditions = append(conditions, `EXISTS (
    SELECT 1 FROM article_favorites af
    INNER JOIN users fu ON fu.id = af.user_id
    WHERE af.article_id = a.id AND fu.username = ?)`)
		args = append(args, facets.Favorited)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

// BuildAuthorsClause builds "WHERE a.author_id IN (...)" for authors.
func (qb *ArticleQueryBuilder) BuildAuthorsClause(authors []entity.User) (clause string, args []interface{}) {
	if len(authors) == 0 {
		return "", nil
	}
	for _, u := range authors {
		args = append(args, u.ID)
	}
	return "WHERE a.author_id IN (" + db.Placeholders(len(authors), 1, false) + ")", args
}

// BuildPage returns the ordering and LIMIT/OFFSET clause.
func (qb *ArticleQueryBuilder) BuildPage(facets entity.ArticleFacets) (clause string, args []interface{}) {
	return "ORDER BY a.created_at DESC, a.id DESC LIMIT ? OFFSET ?", []interface{}{facets.Limit(), facets.Offset()}
}
