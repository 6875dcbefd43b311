package sqlite

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

	var exists bool
	if err := repo.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM article_favorites WHERE user_id = ? AND article_id = ?)`,
		user.ID, article.ID).Scan(&exists); err != nil {
		return false, fmt.Errorf("ExistsByUserAndArticle: %w", err)
	}
	return exists, nil
}

// Save records the favorite; a duplicate wraps entity.ErrConflict.
func (repo *FavoriteRepo) Save(ctx context.Context, favorite entity.ArticleFavorite) error {
	defer db.ObserveQuery("insert_favorite")()

	if _, err := repo.db.ExecContext(ctx,
		`INSERT INTO article_favorites (user_id, article_id, created_at) VALUES (?, ?, ?)`,
		favorite.User.ID, favorite.Article.ID, favorite.CreatedAt.UTC()); err != nil {
		return wrapErr("Save", err)
	}
	return nil
}

func (repo *FavoriteRepo) DeleteByUserAndArticle(ctx context.Context, user *entity.User, article *entity.Article) error {
	defer db.ObserveQuery("delete_favorite")()

	if _, err := repo.db.ExecContext(ctx,
		`DELETE FROM article_favorites WHERE user_id = ? AND article_id = ?`,
		user.ID, article.ID); err != nil {
		return fmt.Errorf("DeleteByUserAndArticle: %w", err)
	}
	return nil
}
