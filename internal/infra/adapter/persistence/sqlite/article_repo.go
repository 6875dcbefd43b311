package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"conduit/internal/domain/entity"
	"conduit/internal/infra/db"
	"conduit/internal/repository"
)

const selectArticles = `
SELECT a.id, a.slug, a.title, a.description, a.content, a.created_at, a.updated_at,
       u.id, u.username, u.email, u.bio, u.image
FROM articles a
INNER JOIN users u ON u.id = a.author_id`

type ArticleRepo struct {
	db           db.Conn
	queryBuilder *ArticleQueryBuilder
}

func NewArticleRepo(conn db.Conn) repository.ArticleRepository {
	return &ArticleRepo{db: conn, queryBuilder: NewArticleQueryBuilder()}
}

func (repo *ArticleRepo) FindBySlug(ctx context.Context, slug string) (*entity.Article, error) {
	defer db.ObserveQuery("find_article_by_slug")()

	article, err := scanArticle(repo.db.QueryRowContext(ctx, selectArticles+"\nWHERE a.slug = ?\nLIMIT 1", slug))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FindBySlug: QueryRowContext: %w", err)
	}
	if err := repo.loadTags(ctx, []*entity.Article{article}); err != nil {
		return nil, fmt.Errorf("FindBySlug: %w", err)
	}
	return article, nil
}

func (repo *ArticleRepo) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	defer db.ObserveQuery("exists_article_by_title")()

	var exists bool
	if err := repo.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM articles WHERE title = ?)`, title).Scan(&exists); err != nil {
		return false, fmt.Errorf("ExistsByTitle: %w", err)
	}
	return exists, nil
}

func (repo *ArticleRepo) FindAll(ctx context.Context, facets entity.ArticleFacets) ([]*entity.Article, error) {
	defer db.ObserveQuery("find_articles")()

	where, args := repo.queryBuilder.BuildWhereClause(facets)
	page, pageArgs := repo.queryBuilder.BuildPage(facets)

	articles, err := repo.query(ctx, selectArticles+"\n"+where+"\n"+page, append(args, pageArgs...)...)
	if err != nil {
		return nil, fmt.Errorf("FindAll: %w", err)
	}
	return articles, nil
}

func (repo *ArticleRepo) FindByAuthors(ctx context.Context, authors []entity.User, facets entity.ArticleFacets) ([]*entity.Article, error) {
	if len(authors) == 0 {
		return []*entity.Article{}, nil
	}
	defer db.ObserveQuery("find_articles_by_authors")()

	where, args := repo.queryBuilder.BuildAuthorsClause(authors)
	page, pageArgs := repo.queryBuilder.BuildPage(facets)

	articles, err := repo.query(ctx, selectArticles+"\n"+where+"\n"+page, append(args, pageArgs...)...)
	if err != nil {
		return nil, fmt.Errorf("FindByAuthors: %w", err)
	}
	return articles, nil
}

// Save inserts article and links tags in one transaction.
// Timestamps are stored in UTC so that created_at sorts as text.
func (repo *ArticleRepo) Save(ctx context.Context, article *entity.Article, tags []entity.Tag) (*entity.Article, error) {
	defer db.ObserveQuery("insert_article")()

	saved := *article
	saved.CreatedAt = saved.CreatedAt.UTC()
	saved.UpdatedAt = saved.UpdatedAt.UTC()
	saved.Tags = make([]entity.Tag, 0, len(tags))

	err := db.WithTx(ctx, repo.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
INSERT INTO articles (slug, title, description, content, author_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
			saved.Slug, saved.Title, saved.Description, saved.Content,
			saved.Author.ID, saved.CreatedAt, saved.UpdatedAt)
		if err != nil {
			return wrapErr("insert article", err)
		}
		if saved.ID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("insert article: LastInsertId: %w", err)
		}

		for _, tag := range tags {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO tags (name) VALUES (?) ON CONFLICT(name) DO NOTHING`, tag.Name); err != nil {
				return wrapErr("insert tag", err)
			}
			if err := tx.QueryRowContext(ctx,
				`SELECT id FROM tags WHERE name = ?`, tag.Name).Scan(&tag.ID); err != nil {
				return fmt.Errorf("select tag: %w", err)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO article_tags (article_id, tag_id) VALUES (?, ?)`,
				saved.ID, tag.ID); err != nil {
				return wrapErr("link tag", err)
			}
			saved.Tags = append(saved.Tags, tag)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("Save: %w", err)
	}
	return &saved, nil
}

func (repo *ArticleRepo) Update(ctx context.Context, article *entity.Article) (*entity.Article, error) {
	defer db.ObserveQuery("update_article")()

	updated := *article
	updated.UpdatedAt = updated.UpdatedAt.UTC()

	res, err := repo.db.ExecContext(ctx, `
UPDATE articles
SET slug = ?, title = ?, description = ?, content = ?, updated_at = ?
WHERE id = ?`,
		updated.Slug, updated.Title, updated.Description, updated.Content,
		updated.UpdatedAt, updated.ID)
	if err != nil {
		return nil, wrapErr("Update", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("Update: RowsAffected: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("Update: article %d: %w", article.ID, entity.ErrNotFound)
	}
	return &updated, nil
}

// Delete removes the article. Tag links and favorites cascade through foreign keys.
func (repo *ArticleRepo) Delete(ctx context.Context, article *entity.Article) error {
	defer db.ObserveQuery("delete_article")()

	res, err := repo.db.ExecContext(ctx, `DELETE FROM articles WHERE id = ?`, article.ID)
	if err != nil {
		return fmt.Errorf("Delete: ExecContext: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Delete: RowsAffected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("Delete: article %d: %w", article.ID, entity.ErrNotFound)
	}
	return nil
}

func (repo *ArticleRepo) FindDetailsByAnonymous(ctx context.Context, article *entity.Article) (entity.ArticleDetails, error) {
	defer db.ObserveQuery("find_article_details")()

	details := entity.ArticleDetails{Article: article}
	if err := repo.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM article_favorites WHERE article_id = ?`, article.ID).
		Scan(&details.FavoritesCount); err != nil {
		return entity.ArticleDetails{}, fmt.Errorf("FindDetailsByAnonymous: %w", err)
	}
	return details, nil
}

func (repo *ArticleRepo) FindDetailsByUser(ctx context.Context, requester *entity.User, article *entity.Article) (entity.ArticleDetails, error) {
	defer db.ObserveQuery("find_article_details_by_user")()

	var favorited int64
	details := entity.ArticleDetails{Article: article}
	if err := repo.db.QueryRowContext(ctx, `
SELECT COUNT(*), COALESCE(MAX(user_id = ?), 0)
FROM article_favorites
WHERE article_id = ?`, requester.ID, article.ID).
		Scan(&details.FavoritesCount, &favorited); err != nil {
		return entity.ArticleDetails{}, fmt.Errorf("FindDetailsByUser: %w", err)
	}
	details.Favorited = favorited != 0
	return details, nil
}

func (repo *ArticleRepo) query(ctx context.Context, query string, args ...interface{}) ([]*entity.Article, error) {
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("QueryContext: %w", err)
	}
	articles, err := scanArticles(rows)
	if err != nil {
		return nil, err
	}
	if err := repo.loadTags(ctx, articles); err != nil {
		return nil, err
	}
	return articles, nil
}

func (repo *ArticleRepo) loadTags(ctx context.Context, articles []*entity.Article) error {
	if len(articles) == 0 {
		return nil
	}

	byID := make(map[int64]*entity.Article, len(articles))
	args := make([]interface{}, 0, len(articles))
	for _, a := range articles {
		a.Tags = []entity.Tag{}
		byID[a.ID] = a
		args = append(args, a.ID)
	}

	rows, err := repo.db.QueryContext(ctx, `
SELECT at.article_id, t.id, t.name
FROM article_tags at
INNER JOIN tags t ON t.id = at.tag_id
WHERE at.article_id IN (`+db.Placeholders(len(args), 1, false)+`)
ORDER BY at.article_id, t.name`, args...)
	if err != nil {
		return fmt.Errorf("load tags: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			articleID int64
			tag       entity.Tag
		)
		if err := rows.Scan(&articleID, &tag.ID, &tag.Name); err != nil {
			return fmt.Errorf("load tags: Scan: %w", err)
		}
		if a, ok := byID[articleID]; ok {
			a.Tags = append(a.Tags, tag)
		}
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanArticle(row rowScanner) (*entity.Article, error) {
	var a entity.Article
	if err := row.Scan(&a.ID, &a.Slug, &a.Title, &a.Description, &a.Content,
		&a.CreatedAt, &a.UpdatedAt,
		&a.Author.ID, &a.Author.Username, &a.Author.Email, &a.Author.Bio, &a.Author.Image); err != nil {
		return nil, err
	}
	return &a, nil
}

func scanArticles(rows *sql.Rows) ([]*entity.Article, error) {
	defer func() { _ = rows.Close() }()

	articles := make([]*entity.Article, 0, 20)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("Scan: %w", err)
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}
