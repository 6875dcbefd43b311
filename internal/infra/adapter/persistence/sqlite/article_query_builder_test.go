package sqlite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"conduit/internal/common/pagination"
	"conduit/internal/domain/entity"
	"conduit/internal/infra/adapter/persistence/sqlite"
)

/* ──────────────────────────── QueryBuilder Tests ──────────────────────────── */

func TestQueryBuilder_BuildWhereClause(t *testing.T) {
	t.Parallel()
	qb := sqlite.NewArticleQueryBuilder()

	tests := []struct {
		name     string
		facets   entity.ArticleFacets
		contains []string
		args     []interface{}
	}{
		{name: "no facets", facets: entity.ArticleFacets{}},
		{
			name:     "tag",
			facets:   entity.ArticleFacets{Tag: "go"},
			contains: []string{"WHERE EXISTS", "t.name = ?"},
			args:     []interface{}{"go"},
		},
		{
			name:     "author",
			facets:   entity.ArticleFacets{Author: "jake"},
			contains: []string{"WHERE u.username = ?"},
			args:     []interface{}{"jake"},
		},
		{
			name:     "all facets",
			facets:   entity.ArticleFacets{Tag: "go", Author: "jake", Favorited: "jane"},
			contains: []string{"t.name = ?", " AND u.username = ? AND ", "fu.username = ?"},
			args:     []interface{}{"go", "jake", "jane"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause, args := qb.BuildWhereClause(tt.facets)
			if len(tt.contains) == 0 {
				assert.Empty(t, clause)
			}
			for _, s := range tt.contains {
				assert.Contains(t, clause, s)
			}
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestQueryBuilder_BuildAuthorsClause(t *testing.T) {
	t.Parallel()
	qb := sqlite.NewArticleQueryBuilder()

	clause, args := qb.BuildAuthorsClause([]entity.User{{ID: 2}, {ID: 5}})
	assert.Equal(t, "WHERE a.author_id IN (?, ?)", clause)
	assert.Equal(t, []interface{}{int64(2), int64(5)}, args)

	clause, args = qb.BuildAuthorsClause(nil)
	assert.Empty(t, clause)
	assert.Nil(t, args)
}

func TestQueryBuilder_BuildPage(t *testing.T) {
	t.Parallel()
	qb := sqlite.NewArticleQueryBuilder()

	clause, args := qb.BuildPage(entity.ArticleFacets{Page: pagination.Params{Page: 3, Limit: 10}})
	assert.Equal(t, "ORDER BY a.created_at DESC, a.id DESC LIMIT ? OFFSET ?", clause)
	assert.Equal(t, []interface{}{10, 20}, args)
}
