package sqlite

import (
	"context"
	"fmt"

	"conduit/internal/domain/entity"
	"conduit/internal/infra/db"
	"conduit/internal/repository"
)

type SocialRepo struct {
	db db.Conn
}

func NewSocialRepo(conn db.Conn) repository.SocialRepository {
	return &SocialRepo{db: conn}
}

func (repo *SocialRepo) FindByFollower(ctx context.Context, user *entity.User) ([]entity.UserFollow, error) {
	defer db.ObserveQuery("find_follows_by_follower")()

	rows, err := repo.db.QueryContext(ctx, `
SELECT u.id, u.username, u.email, u.bio, u.image
FROM user_follows f
INNER JOIN users u ON u.id = f.following_id
WHERE f.follower_id = ?
ORDER BY u.id`, user.ID)
	if err != nil {
		return nil, fmt.Errorf("FindByFollower: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	follows := make([]entity.UserFollow, 0)
	for rows.Next() {
		var following entity.User
		if err := rows.Scan(&following.ID, &following.Username, &following.Email,
			&following.Bio, &following.Image); err != nil {
			return nil, fmt.Errorf("FindByFollower: Scan: %w", err)
		}
		follows = append(follows, entity.UserFollow{Follower: *user, Following: following})
	}
	return follows, rows.Err()
}
