package posts

import (
	"fmt"
	"testing"

	"github.com/naveenspark/postdesk/pkg/domain"
)

func makePosts(n int) []domain.Post {
	out := make([]domain.Post, n)
	for i := range out {
		out[i] = domain.Post{
			ID:      int64(i + 1),
			Title:   fmt.Sprintf("post %d", i+1),
			Content: "some body text",
			UserID:  7,
		}
	}
	return out
}

func TestTotalPages(t *testing.T) {
	tests := []struct{ n, want int }{
		{0, 0}, {1, 1}, {20, 1}, {21, 2}, {40, 2}, {41, 3},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.n); got != tt.want {
			t.Errorf("TotalPages(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestPage(t *testing.T) {
	all := makePosts(45)
	if got := len(Page(all, 1)); got != 20 {
		t.Errorf("page 1 len = %d", got)
	}
	if got := Page(all, 3); len(got) != 5 || got[0].ID != 41 {
		t.Errorf("page 3 = %d posts starting at %v", len(got), got)
	}
	if got := Page(all, 4); got != nil {
		t.Errorf("page 4 = %v, want nil", got)
	}
	if got := Page(all, 0); got != nil {
		t.Errorf("page 0 = %v, want nil", got)
	}
}

func TestFilter(t *testing.T) {
	all := []domain.Post{
		{ID: 1, Title: "Hello World", Content: "first body", UserID: 42},
		{ID: 12, Title: "Another", Content: "mentions WORLD too", UserID: 3},
		{ID: 3, Title: "Unrelated", Content: "nothing", UserID: 5},
	}
	tests := []struct {
		term string
		ids  []int64
	}{
		{"", []int64{1, 12, 3}},
		{"world", []int64{1, 12}},
		{"42", []int64{1}},
		{"1", []int64{1, 12}},
		{"zzz", nil},
	}
	for _, tt := range tests {
		got := Filter(all, tt.term)
		var ids []int64
		for _, p := range got {
			ids = append(ids, p.ID)
		}
		if fmt.Sprint(ids) != fmt.Sprint(tt.ids) {
			t.Errorf("Filter(%q) = %v, want %v", tt.term, ids, tt.ids)
		}
	}
}

func TestListingNoMatches(t *testing.T) {
	all := makePosts(30)
	var l Listing
	l.SetTerm("no such thing")
	if got := l.TotalPages(all); got != 0 {
		t.Errorf("TotalPages = %d, want 0", got)
	}
	if got := l.Visible(all); len(got) != 0 {
		t.Errorf("Visible = %v, want empty", got)
	}
}

func TestListingSetTermResetsPage(t *testing.T) {
	all := makePosts(50)
	l := Listing{Page: 1}
	if !l.Next(all) || !l.Next(all) {
		t.Fatal("expected to advance twice")
	}
	if l.Page != 3 {
		t.Fatalf("Page = %d", l.Page)
	}
	l.SetTerm("post")
	if l.Page != 1 {
		t.Errorf("Page after SetTerm = %d, want 1", l.Page)
	}
}

func TestListingNavigationBounds(t *testing.T) {
	all := makePosts(41) // 3 pages
	var l Listing
	if l.Current() != 1 {
		t.Fatalf("zero listing Current = %d", l.Current())
	}
	if l.Prev() {
		t.Error("Prev on page 1 should not move")
	}
	if !l.Goto(all, 3) || l.Current() != 3 {
		t.Errorf("Goto 3 -> %d", l.Current())
	}
	if l.Next(all) {
		t.Error("Next on last page should not move")
	}
	if l.Goto(all, 4) || l.Goto(all, 0) {
		t.Error("Goto out of range should not move")
	}
	if !l.Prev() || l.Current() != 2 {
		t.Errorf("Prev -> %d", l.Current())
	}
}

func TestClampAfterDeleteLastItemOnLastPage(t *testing.T) {
	// 21 posts matching "post" across two pages; the filtered view is on page 2
	// which holds a single post.
	all := makePosts(21)
	var l Listing
	l.SetTerm("post")
	if !l.Goto(all, 2) {
		t.Fatal("goto page 2")
	}
	if got := len(l.Visible(all)); got != 1 {
		t.Fatalf("page 2 has %d posts", got)
	}

	after := all[:20] // the refetch no longer contains post 21
	l.ClampAfterDelete(after)
	if l.Page != 1 {
		t.Errorf("Page = %d, want 1", l.Page)
	}
}

func TestClampAfterDeleteLeavesValidPage(t *testing.T) {
	all := makePosts(45)
	l := Listing{Page: 2}
	l.ClampAfterDelete(all[:44])
	if l.Page != 2 {
		t.Errorf("Page = %d, want 2", l.Page)
	}

	l = Listing{Page: 1}
	l.ClampAfterDelete(nil)
	if l.Page != 1 {
		t.Errorf("Page with empty collection = %d, want 1", l.Page)
	}
}
