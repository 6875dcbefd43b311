package entity

import "strings"

// Tag is a label attached to articles (many-to-many).
type Tag struct {
	ID   int64
	Name string
}

// NewTags builds tags from raw names. See NormalizeTags.
func NewTags(names ...string) []Tag {
	tags := make([]Tag, 0, len(names))
	for _, n := range names {
		tags = append(tags, Tag{Name: n})
	}
	return NormalizeTags(tags)
}

// NormalizeTags trims tag names, drops blank ones and removes duplicates.
// The first occurrence of each name wins, so input order is preserved.
// A nil input yields an empty, non-nil slice.
func NormalizeTags(tags []Tag) []Tag {
	out := make([]Tag, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		t.Name = name
		out = append(out, t)
	}
	return out
}

// TagNames returns the names of tags in order.
func TagNames(tags []Tag) []string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	return names
}
