// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as Article, User and Tag, along with
// their validation rules and domain-specific errors.
package entity

import (
	"strings"
	"time"
	"unicode"
)

// Article represents a published article owned by a single author.
// Title and slug are unique across the system.
type Article struct {
	ID          int64
	Slug        string
	Title       string
	Description string
	Content     string
	Author      User
	Tags        []Tag
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SetTitle replaces the title and re-derives the slug from it.
func (a *Article) SetTitle(title string) {
	a.Title = title
	a.Slug = Slugify(title)
}

// IsAuthor reports whether user wrote the article.
// A nil user is never the author.
func (a *Article) IsAuthor(user *User) bool {
	if user == nil {
		return false
	}
	return a.Author.ID == user.ID
}

// IsNotAuthor is the negation of IsAuthor.
func (a *Article) IsNotAuthor(user *User) bool {
	return !a.IsAuthor(user)
}

// Slugify converts a title into its URL slug: lower case letters and digits
// separated by single hyphens.
//
// Examples:
//   - "Hello World" -> "hello-world"
//   - "  Go 1.25: What's new?  " -> "go-1-25-what-s-new"
func Slugify(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	pendingHyphen := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}
