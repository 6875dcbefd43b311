package postgres

import (
	"context"
	"fmt"

	"conduit/internal/domain/entity"
	"conduit/internal/infra/db"
	"conduit/internal/repository"
)

type FavoriteRepo struct {
	db db.Conn
}

func NewFavoriteRepo(conn db.Conn) repository.ArticleFavoriteRepository {
	return &FavoriteRepo{db: conn}
}

func (repo *FavoriteRepo) ExistsByUserAndArticle(ctx context.Context, user *entity.User, article *entity.Article) (bool, error) {
	defer db.ObserveQuery("exists_favorite")()

	const query = `
SELECT EXISTS(SELECT 1 FROM article_favorites WHERE user_id = $1 AND article_id = $2)`
	var exists bool
	if err := repo.db.QueryRowContext(ctx, query, user.ID, article.ID).Scan(&exists); err != nil {
		return false, fmt.Errorf("ExistsByUserAndArticle: %w", err)
	}
	return exists, nil
}

// Save records the favorite. The (user_id, article_id) primary key turns a
// duplicate into an error wrapping entity.ErrConflict.
func (repo *FavoriteRepo) Save(ctx context.Context, favorite entity.ArticleFavorite) error {
	defer db.ObserveQuery("insert_favorite")()

	const query = `
INSERT INTO article_favorites (user_id, article_id, created_at)
VALUES ($1, $2, $3)`
	if _, err := repo.db.ExecContext(ctx, query,
		favorite.User.ID, favorite.Article.ID, favorite.CreatedAt); err != nil {
		return wrapErr("Save", err)
	}
	return nil
}

// DeleteByUserAndArticle removes the favorite if present.
func (repo *FavoriteRepo) DeleteByUserAndArticle(ctx context.Context, user *entity.User, article *entity.Article) error {
	defer db.ObserveQuery("delete_favorite")()

	const query = `DELETE FROM article_favorites WHERE user_id = $1 AND article_id = $2`
	if _, err := repo.db.ExecContext(ctx, query, user.ID, article.ID); err != nil {
		return fmt.Errorf("DeleteByUserAndArticle: %w", err)
	}
	return nil
}
