package posts

import "github.com/naveenspark/postdesk/pkg/domain"

// PageSize is the number of posts per page.
const PageSize = 20

// Filter returns the posts matching term. An empty term matches everything.
func Filter(all []domain.Post, term string) []domain.Post {
	if term == "" {
		return all
	}
	out := make([]domain.Post, 0, len(all))
	for _, p := range all {
		if p.Matches(term) {
			out = append(out, p)
		}
	}
	return out
}

// TotalPages is ceil(n / PageSize). Zero posts means zero pages.
func TotalPages(n int) int {
	return (n + PageSize - 1) / PageSize
}

// Page returns the 1-based page of posts. Out-of-range pages are empty.
func Page(list []domain.Post, page int) []domain.Post {
	if page < 1 {
		return nil
	}
	start := (page - 1) * PageSize
	if start >= len(list) {
		return nil
	}
	end := min(start+PageSize, len(list))
	return list[start:end]
}

// Listing is the search term and current page of the list view.
// The zero value is treated as page 1 with no search.
type Listing struct {
	Term string
	Page int
}

// SetTerm changes the search term and returns to the first page.
func (l *Listing) SetTerm(term string) {
	l.Term = term
	l.Page = 1
}

// Current is the page in effect.
func (l Listing) Current() int {
	if l.Page < 1 {
		return 1
	}
	return l.Page
}

// Filtered applies the search term to all.
func (l Listing) Filtered(all []domain.Post) []domain.Post {
	return Filter(all, l.Term)
}

// Visible is the slice of all shown on the current page.
func (l Listing) Visible(all []domain.Post) []domain.Post {
	return Page(l.Filtered(all), l.Current())
}

// TotalPages counts pages of the filtered collection.
func (l Listing) TotalPages(all []domain.Post) int {
	return TotalPages(len(l.Filtered(all)))
}

// Next moves forward one page if there is one.
func (l *Listing) Next(all []domain.Post) bool {
	return l.Goto(all, l.Current()+1)
}

// Prev moves back one page unless already on the first.
func (l *Listing) Prev() bool {
	if l.Current() <= 1 {
		return false
	}
	l.Page = l.Current() - 1
	return true
}

// Goto jumps to page if it exists.
func (l *Listing) Goto(all []domain.Post, page int) bool {
	if page < 1 || page > l.TotalPages(all) || page == l.Current() {
		return false
	}
	l.Page = page
	return true
}

// ClampAfterDelete steps back to the new last page when a delete emptied
// the current one. It does nothing when no pages remain.
func (l *Listing) ClampAfterDelete(all []domain.Post) {
	total := l.TotalPages(all)
	if l.Current() > total && total > 0 {
		l.Page = total
	}
}
