// Package posts caches the post collection and owns the client-side search
// and paging rules applied to it.
package posts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/naveenspark/postdesk/pkg/client"
	"github.com/naveenspark/postdesk/pkg/domain"
)

// Messages shown to the user for each failed operation.
const (
	MsgFetchFailed  = "Failed to fetch posts. Please try again."
	MsgUpdateFailed = "Failed to update post. Please try again."
	MsgDeleteFailed = "Failed to delete post. Please try again."
	MsgCreateFailed = "Failed to create post"
	MsgCreated      = "Post created successfully!"
)

// ErrRefresh marks a mutation that succeeded but whose follow-up refetch did not.
var ErrRefresh = errors.New("refresh posts")

// API is the slice of the posts API the store needs.
type API interface {
	ListPosts(ctx context.Context) ([]domain.Post, error)
	CreatePost(ctx context.Context, in client.PostInput) (*domain.Post, error)
	UpdatePost(ctx context.Context, id int64, in client.PostInput) error
	DeletePost(ctx context.Context, id int64) error
}

// Event tells subscribers how the collection changed.
type Event int

const (
	EventRefreshed Event = iota + 1
	// EventCreated fires after a post is created. The cached collection is
	// not updated; listeners refetch.
	EventCreated
	EventUpdated
	EventDeleted
)

func (e Event) String() string {
	switch e {
	case EventRefreshed:
		return "refreshed"
	case EventCreated:
		return "created"
	case EventUpdated:
		return "updated"
	case EventDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Store is the client-side copy of the post collection. The server is the
// source of truth; every mutation is followed by a full refetch.
type Store struct {
	api    API
	logger *slog.Logger

	mu      sync.Mutex
	posts   []domain.Post
	subs    map[int]func(Event)
	nextSub int
}

// NewStore returns an empty store.
func NewStore(api API, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{api: api, logger: logger, subs: make(map[int]func(Event))}
}

// Posts returns a copy of the cached collection.
func (s *Store) Posts() []domain.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Post, len(s.posts))
	copy(out, s.posts)
	return out
}

// Subscribe registers fn for every collection event.
func (s *Store) Subscribe(fn func(Event)) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Refresh replaces the cache with the server's collection. On failure the
// cache is emptied.
func (s *Store) Refresh(ctx context.Context) error {
	list, err := s.api.ListPosts(ctx)
	if err != nil {
		s.logger.Warn("fetch posts", "error", err)
		list = nil
	}
	s.mu.Lock()
	s.posts = list
	s.mu.Unlock()
	s.emit(EventRefreshed)
	return err
}

// Create validates and submits a new post. Invalid input is rejected with a
// *domain.ValidationError before any request is made.
func (s *Store) Create(ctx context.Context, title, content string) (*domain.Post, error) {
	if err := domain.ValidateNewPost(title, content); err != nil {
		return nil, err
	}
	p, err := s.api.CreatePost(ctx, client.PostInput{Title: title, Content: content})
	if err != nil {
		s.logger.Warn("create post", "error", err)
		return nil, err
	}
	s.logger.Info("post created")
	s.emit(EventCreated)
	return p, nil
}

// Update saves an edited post and refetches the collection.
func (s *Store) Update(ctx context.Context, id int64, title, content string) error {
	if err := domain.ValidatePostEdit(title, content); err != nil {
		return err
	}
	if err := s.api.UpdatePost(ctx, id, client.PostInput{Title: title, Content: content}); err != nil {
		s.logger.Warn("update post", "id", id, "error", err)
		return err
	}
	s.emit(EventUpdated)
	if err := s.Refresh(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrRefresh, err)
	}
	return nil
}

// Delete removes a post and refetches the collection.
func (s *Store) Delete(ctx context.Context, id int64) error {
	if err := s.api.DeletePost(ctx, id); err != nil {
		s.logger.Warn("delete post", "id", id, "error", err)
		return err
	}
	s.emit(EventDeleted)
	if err := s.Refresh(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrRefresh, err)
	}
	return nil
}

func (s *Store) emit(e Event) {
	s.mu.Lock()
	subs := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()
	for _, fn := range subs {
		fn(e)
	}
}

// CreateMessage is the text shown for a failed create.
func CreateMessage(err error) string {
	return client.Message(err, MsgCreateFailed)
}

// UpdateMessage is the text shown for a failed update.
func UpdateMessage(err error) string {
	return mutationMessage(err, MsgUpdateFailed)
}

// DeleteMessage is the text shown for a failed delete.
func DeleteMessage(err error) string {
	return mutationMessage(err, MsgDeleteFailed)
}

func mutationMessage(err error, fallback string) string {
	var vErr *domain.ValidationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &vErr):
		return vErr.Message
	case errors.Is(err, ErrRefresh):
		return MsgFetchFailed
	default:
		return fallback
	}
}
