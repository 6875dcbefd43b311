package entity

import "time"

// User is the identity of an author or a requester.
type User struct {
	ID       int64
	Username string
	Email    string
	Bio      string
	Image    string
}

// UserFollow is a directed edge: Follower reads Following's articles in their feed.
type UserFollow struct {
	Follower  User
	Following User
}

// ArticleFavorite marks that User favorited Article.
type ArticleFavorite struct {
	User      User
	Article   Article
	CreatedAt time.Time
}

// NewArticleFavorite creates a favorite stamped with the current time.
func NewArticleFavorite(user User, article Article) ArticleFavorite {
	return ArticleFavorite{User: user, Article: article, CreatedAt: time.Now()}
}
