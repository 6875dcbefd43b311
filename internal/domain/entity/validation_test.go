package entity

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateTitle(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		wantErr bool
	}{
		{name: "simple title", title: "How to train your dragon", wantErr: false},
		{name: "single character", title: "a", wantErr: false},
		{name: "max length", title: strings.Repeat("a", maxTitleLength), wantErr: false},
		{name: "empty", title: "", wantErr: true},
		{name: "whitespace only", title: "   ", wantErr: true},
		{name: "punctuation only", title: "?!", wantErr: true},
		{name: "too long", title: strings.Repeat("a", maxTitleLength+1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTitle(tt.title)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateTitle(%q) error = %v, wantErr %v", tt.title, err, tt.wantErr)
			}
			if err != nil {
				var ve *ValidationError
				if !errors.As(err, &ve) {
					t.Fatalf("want *ValidationError, got %T", err)
				}
				if ve.Field != "title" {
					t.Errorf("Field = %q, want title", ve.Field)
				}
			}
		})
	}
}

func TestValidateDescription(t *testing.T) {
	if err := ValidateDescription(""); err != nil {
		t.Errorf("empty description should be valid, got %v", err)
	}
	if err := ValidateDescription(strings.Repeat("d", maxDescriptionLength)); err != nil {
		t.Errorf("max length description should be valid, got %v", err)
	}
	if err := ValidateDescription(strings.Repeat("d", maxDescriptionLength+1)); err == nil {
		t.Error("too long description should be rejected")
	}
}

func TestValidateNewArticle(t *testing.T) {
	author := User{ID: 7, Username: "jake"}

	tests := []struct {
		name      string
		article   *Article
		wantField string
	}{
		{name: "valid", article: &Article{Title: "Hello", Author: author}},
		{name: "nil article", article: nil, wantField: "article"},
		{name: "missing title", article: &Article{Author: author}, wantField: "title"},
		{name: "missing author", article: &Article{Title: "Hello"}, wantField: "author"},
		{
			name:      "description too long",
			article:   &Article{Title: "Hello", Description: strings.Repeat("x", maxDescriptionLength+1), Author: author},
			wantField: "description",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNewArticle(tt.article)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("want *ValidationError, got %v", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", ve.Field, tt.wantField)
			}
		})
	}
}
