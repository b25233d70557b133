package announcement

import (
	"context"
	"time"
)

// Board implements the bulletin board operations on top of a Store.
type Board struct {
	store Store
	now   func() time.Time
}

// Option configures a Board.
type Option func(*Board)

// WithClock sets the function used to stamp new and edited announcements.
func WithClock(now func() time.Time) Option {
	return func(b *Board) {
		b.now = now
	}
}

// NewBoard creates a board backed by store.
func NewBoard(store Store, opts ...Option) *Board {
	b := &Board{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// List returns all announcements, newest first.
func (b *Board) List(ctx context.Context) ([]Announcement, error) {
	items, err := b.store.List(ctx)
	if err != nil {
		return nil, err
	}

	SortNewestFirst(items)
	return items, nil
}

// Get returns the announcement with the given id, or ErrNotFound.
func (b *Board) Get(ctx context.Context, id int64) (*Announcement, error) {
	items, err := b.store.List(ctx)
	if err != nil {
		return nil, err
	}

	i := Find(items, id)
	if i < 0 {
		return nil, ErrNotFound
	}
	return &items[i], nil
}

// Post creates a new announcement stamped with the current time.
func (b *Board) Post(ctx context.Context, author, title, content string) (*Announcement, error) {
	return b.store.Append(ctx, Announcement{
		Author:    author,
		Title:     title,
		Content:   content,
		Timestamp: NewTimestamp(b.now()),
		Comments:  []Comment{},
		IsEdited:  false,
	})
}

// Comment appends a comment to the announcement with the given id.
func (b *Board) Comment(ctx context.Context, id int64, commentator, text string) (*Announcement, error) {
	return b.store.Update(ctx, id, func(a *Announcement) {
		a.Comments = append(a.Comments, Comment{
			Commentator: commentator,
			Text:        text,
		})
	})
}

// Edit replaces the author, title and content of an announcement, marks it
// as edited and moves its timestamp to now. Comments are kept.
func (b *Board) Edit(ctx context.Context, id int64, author, title, content string) (*Announcement, error) {
	now := NewTimestamp(b.now())
	return b.store.Update(ctx, id, func(a *Announcement) {
		a.Author = author
		a.Title = title
		a.Content = content
		a.Timestamp = now
		a.IsEdited = true
	})
}
