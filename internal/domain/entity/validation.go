package entity

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	maxTitleLength       = 255
	maxDescriptionLength = 1024
)

// ValidateTitle checks that a title is present, fits the column and produces a usable slug.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title", Message: "is required"}
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return &ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("must not exceed %d characters", maxTitleLength),
		}
	}
	if Slugify(title) == "" {
		return &ValidationError{Field: "title", Message: "must contain at least one letter or digit"}
	}
	return nil
}

// ValidateDescription checks the description length.
func ValidateDescription(description string) error {
	if utf8.RuneCountInString(description) > maxDescriptionLength {
		return &ValidationError{
			Field:   "description",
			Message: fmt.Sprintf("must not exceed %d characters", maxDescriptionLength),
		}
	}
	return nil
}

// ValidateNewArticle validates an article before it is first persisted.
func ValidateNewArticle(a *Article) error {
	if a == nil {
		return &ValidationError{Field: "article", Message: "is required"}
	}
	if err := ValidateTitle(a.Title); err != nil {
		return err
	}
	if err := ValidateDescription(a.Description); err != nil {
		return err
	}
	if a.Author.ID <= 0 {
		return &ValidationError{Field: "author", Message: "must be a persisted user"}
	}
	return nil
}
