package domain

import (
	"strings"
	"time"
)

type Note struct {
	ID         int64
	UserID     string
	Title      string
	Content    string
	Categories []string // ordered set, see NormalizeCategories
	IsArchived bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NormalizeCategories trims every entry, drops empty ones and keeps only the
// first occurrence of each name. The result is never nil.
func NormalizeCategories(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, c := range in {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// HasCategory reports whether name is one of the note's categories.
func (n Note) HasCategory(name string) bool {
	for _, c := range n.Categories {
		if c == name {
			return true
		}
	}
	return false
}
