package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/naveenspark/postdesk/internal/auth"
	"github.com/naveenspark/postdesk/internal/posts"
	"github.com/naveenspark/postdesk/pkg/domain"
)

var errNotSignedIn = errors.New("not signed in (run postdesk login)")

type postsOptions struct {
	output string
	query  string
	page   int
}

func parsePostsFlags(args []string, stderr io.Writer) (postsOptions, error) {
	var opts postsOptions
	fs := flag.NewFlagSet("posts", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.output, "o", "text", "output format: text, json or yaml")
	fs.StringVar(&opts.query, "q", "", "only posts matching this search term")
	fs.IntVar(&opts.page, "p", 1, "page to print, 20 posts per page")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	switch opts.output {
	case "text", "json", "yaml":
	default:
		return opts, fmt.Errorf("unknown output format %q", opts.output)
	}
	if opts.page < 1 {
		return opts, fmt.Errorf("page must be at least 1, got %d", opts.page)
	}
	return opts, nil
}

// postsPage is the exported shape of one page of the listing.
type postsPage struct {
	Query      string        `json:"query,omitempty" yaml:"query,omitempty"`
	Page       int           `json:"page" yaml:"page"`
	TotalPages int           `json:"total_pages" yaml:"total_pages"`
	Matches    int           `json:"matches" yaml:"matches"`
	Posts      []domain.Post `json:"posts" yaml:"posts"`
}

// runPosts prints one page of the caller's posts, filtered the same way as
// the interactive listing.
func (a *app) runPosts(ctx context.Context, args []string) error {
	opts, err := parsePostsFlags(args, a.out)
	if err != nil {
		return err
	}
	if st := a.auth.Restore(ctx); st.Phase != auth.PhaseAuthenticated {
		return errNotSignedIn
	}
	if err := a.posts.Refresh(ctx); err != nil {
		return errors.New(posts.MsgFetchFailed)
	}
	return writePosts(a.out, opts, a.posts.Posts())
}

func writePosts(w io.Writer, opts postsOptions, all []domain.Post) error {
	filtered := posts.Filter(all, opts.query)
	page := postsPage{
		Query:      opts.query,
		Page:       opts.page,
		TotalPages: posts.TotalPages(len(filtered)),
		Matches:    len(filtered),
		Posts:      posts.Page(filtered, opts.page),
	}
	if page.Posts == nil {
		page.Posts = []domain.Post{}
	}

	switch opts.output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(page)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(page); err != nil {
			return err
		}
		return enc.Close()
	}
	return writePostsText(w, page)
}

var (
	textTitle = lipgloss.NewStyle().Bold(true)
	textMeta  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func writePostsText(w io.Writer, page postsPage) error {
	var b strings.Builder
	if page.Query != "" {
		fmt.Fprintf(&b, "Found %d %s matching %q\n\n", page.Matches, postWord(page.Matches), page.Query)
	}
	if len(page.Posts) == 0 {
		switch {
		case page.Matches > 0:
			fmt.Fprintf(&b, "page %d/%d out of range\n", page.Page, page.TotalPages)
		case page.Query != "":
			b.WriteString("No posts found matching your search. Try a different term.\n")
		default:
			b.WriteString("No posts found. Create your first post!\n")
		}
		_, err := io.WriteString(w, b.String())
		return err
	}
	for _, p := range page.Posts {
		fmt.Fprintf(&b, "%s\n", textTitle.Render(p.Title))
		fmt.Fprintf(&b, "%s\n", textMeta.Render(fmt.Sprintf("ID: %d  User: %d", p.ID, p.UserID)))
		fmt.Fprintf(&b, "%s\n\n", excerpt(p.Content, 150))
	}
	if page.TotalPages > 1 {
		fmt.Fprintf(&b, "page %d/%d\n", page.Page, page.TotalPages)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// excerpt flattens content to one line of at most n runes.
func excerpt(content string, n int) string {
	flat := []rune(strings.Join(strings.Fields(content), " "))
	if len(flat) <= n {
		return string(flat)
	}
	return string(flat[:n]) + "..."
}

func postWord(n int) string {
	if n == 1 {
		return "post"
	}
	return "posts"
}
