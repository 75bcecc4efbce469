package domain

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Post is a blog-style post owned by a user.
type Post struct {
	ID      int64  `json:"id" yaml:"id"`
	Title   string `json:"title" yaml:"title"`
	Content string `json:"content" yaml:"content"`
	UserID  int64  `json:"user_id" yaml:"user_id"`
}

// Minimum lengths accepted by the API for new posts.
const (
	MinTitleLen   = 3
	MinContentLen = 12
)

// ValidationError is a client-side form error, caught before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidateNewPost checks a post about to be created. Lengths are measured on
// trimmed input, in runes.
func ValidateNewPost(title, content string) error {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	switch {
	case title == "":
		return &ValidationError{Field: "title", Message: "Title is required"}
	case utf8.RuneCountInString(title) < MinTitleLen:
		return &ValidationError{Field: "title", Message: "Title must be at least 3 characters long"}
	case content == "":
		return &ValidationError{Field: "content", Message: "Content is required"}
	case utf8.RuneCountInString(content) < MinContentLen:
		return &ValidationError{Field: "content", Message: "Content must be at least 12 characters long"}
	}
	return nil
}

// ValidatePostEdit checks an edited post. Edits only require non-blank fields;
// the API still enforces its own minimum lengths.
func ValidatePostEdit(title, content string) error {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return &ValidationError{Message: "Title and content are required"}
	}
	return nil
}

// Matches reports whether the post matches a search term. Title and content
// match case-insensitively; the post id and user id match as decimal strings.
func (p Post) Matches(term string) bool {
	if term == "" {
		return true
	}
	lower := strings.ToLower(term)
	return strings.Contains(strings.ToLower(p.Title), lower) ||
		strings.Contains(strings.ToLower(p.Content), lower) ||
		strings.Contains(strconv.FormatInt(p.UserID, 10), term) ||
		strings.Contains(strconv.FormatInt(p.ID, 10), term)
}
