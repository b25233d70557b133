package announcement

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock hands out times that advance by step on every call.
type fakeClock struct {
	current time.Time
	step    time.Duration
}

func (c *fakeClock) Now() time.Time {
	now := c.current
	c.current = c.current.Add(c.step)
	return now
}

// Test helper: boards over every store with a deterministic clock
func boardFactories() map[string]func(t *testing.T, clock *fakeClock) *Board {
	boards := map[string]func(t *testing.T, clock *fakeClock) *Board{}
	for name, factory := range storeFactories() {
		factory := factory
		boards[name] = func(t *testing.T, clock *fakeClock) *Board {
			return NewBoard(factory(t), WithClock(clock.Now))
		}
	}
	return boards
}

func newFakeClock() *fakeClock {
	return &fakeClock{
		current: time.Date(2025, 3, 1, 9, 0, 0, 0, time.Local),
		step:    time.Minute,
	}
}

// TestBoard_PostAppearsFirst verifies a new announcement gets the next id
// and leads the listing
func TestBoard_PostAppearsFirst(t *testing.T) {
	for name, factory := range boardFactories() {
		t.Run(name, func(t *testing.T) {
			board := factory(t, newFakeClock())
			ctx := context.Background()

			first, err := board.Post(ctx, "Ann", "First", "one")
			require.NoError(t, err)
			second, err := board.Post(ctx, "Bob", "Second", "two")
			require.NoError(t, err)
			assert.Greater(t, second.ID, first.ID)

			items, err := board.List(ctx)
			require.NoError(t, err)
			require.Len(t, items, 2)
			assert.Equal(t, second.ID, items[0].ID)
			assert.Equal(t, first.ID, items[1].ID)
		})
	}
}

// TestBoard_PostSameSecond verifies announcements created within the same
// second are still listed newest first
func TestBoard_PostSameSecond(t *testing.T) {
	for name, factory := range boardFactories() {
		t.Run(name, func(t *testing.T) {
			clock := newFakeClock()
			clock.step = 0
			board := factory(t, clock)
			ctx := context.Background()

			_, err := board.Post(ctx, "Ann", "Older", "one")
			require.NoError(t, err)
			_, err = board.Post(ctx, "Ann", "Newer", "two")
			require.NoError(t, err)

			items, err := board.List(ctx)
			require.NoError(t, err)
			require.Len(t, items, 2)
			assert.Equal(t, "Newer", items[0].Title)
			assert.Equal(t, "Older", items[1].Title)
		})
	}
}

// TestBoard_PostRoundTrip verifies written fields read back unchanged
func TestBoard_PostRoundTrip(t *testing.T) {
	for name, factory := range boardFactories() {
		t.Run(name, func(t *testing.T) {
			board := factory(t, newFakeClock())
			ctx := context.Background()

			created, err := board.Post(ctx, "Zoë", "Ünïcode <title>", "line one\nline two")
			require.NoError(t, err)

			got, err := board.Get(ctx, created.ID)
			require.NoError(t, err)
			assert.Equal(t, "Zoë", got.Author)
			assert.Equal(t, "Ünïcode <title>", got.Title)
			assert.Equal(t, "line one\nline two", got.Content)
			assert.Equal(t, "01/03/2025 09:00:00", got.Timestamp.String())
			assert.Empty(t, got.Comments)
			assert.False(t, got.IsEdited)
		})
	}
}

// TestBoard_GetUnknown verifies unknown ids are not found
func TestBoard_GetUnknown(t *testing.T) {
	for name, factory := range boardFactories() {
		t.Run(name, func(t *testing.T) {
			board := factory(t, newFakeClock())
			ctx := context.Background()

			_, err := board.Get(ctx, 1)
			assert.ErrorIs(t, err, ErrNotFound)

			_, err = board.Post(ctx, "Ann", "Title", "Body")
			require.NoError(t, err)

			_, err = board.Get(ctx, 2)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

// TestBoard_Comment verifies comments append without touching other fields
func TestBoard_Comment(t *testing.T) {
	for name, factory := range boardFactories() {
		t.Run(name, func(t *testing.T) {
			board := factory(t, newFakeClock())
			ctx := context.Background()

			created, err := board.Post(ctx, "Ann", "Title", "Body")
			require.NoError(t, err)
			require.Equal(t, int64(1), created.ID)

			_, err = board.Comment(ctx, 1, "Bob", "first!")
			require.NoError(t, err)
			_, err = board.Comment(ctx, 1, "Cid", "second")
			require.NoError(t, err)

			got, err := board.Get(ctx, 1)
			require.NoError(t, err)
			assert.Equal(t, []Comment{
				{Commentator: "Bob", Text: "first!"},
				{Commentator: "Cid", Text: "second"},
			}, got.Comments)
			assert.Equal(t, created.Author, got.Author)
			assert.Equal(t, created.Title, got.Title)
			assert.Equal(t, created.Content, got.Content)
			assert.Equal(t, created.Timestamp.String(), got.Timestamp.String())
			assert.False(t, got.IsEdited)
		})
	}
}

// TestBoard_CommentUnknown verifies commenting on a missing announcement
// fails
func TestBoard_CommentUnknown(t *testing.T) {
	for name, factory := range boardFactories() {
		t.Run(name, func(t *testing.T) {
			board := factory(t, newFakeClock())

			_, err := board.Comment(context.Background(), 3, "Bob", "hello?")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

// TestBoard_Edit verifies edits replace content, flag the announcement and
// keep its comments
func TestBoard_Edit(t *testing.T) {
	for name, factory := range boardFactories() {
		t.Run(name, func(t *testing.T) {
			board := factory(t, newFakeClock())
			ctx := context.Background()

			created, err := board.Post(ctx, "Ann", "Title", "Body")
			require.NoError(t, err)
			_, err = board.Comment(ctx, 1, "Bob", "nice")
			require.NoError(t, err)

			edited, err := board.Edit(ctx, 1, "Ann B.", "New title", "New body")
			require.NoError(t, err)
			assert.True(t, edited.IsEdited)

			got, err := board.Get(ctx, 1)
			require.NoError(t, err)
			assert.Equal(t, "Ann B.", got.Author)
			assert.Equal(t, "New title", got.Title)
			assert.Equal(t, "New body", got.Content)
			assert.True(t, got.IsEdited)
			assert.True(t, got.Timestamp.After(created.Timestamp.Time), "timestamp should move forward")
			assert.Equal(t, []Comment{{Commentator: "Bob", Text: "nice"}}, got.Comments)
		})
	}
}

// TestBoard_EditMovesToTop verifies an edited announcement sorts as the
// newest
func TestBoard_EditMovesToTop(t *testing.T) {
	for name, factory := range boardFactories() {
		t.Run(name, func(t *testing.T) {
			board := factory(t, newFakeClock())
			ctx := context.Background()

			for _, title := range []string{"one", "two", "three"} {
				_, err := board.Post(ctx, "Ann", title, "body")
				require.NoError(t, err)
			}

			_, err := board.Edit(ctx, 1, "Ann", "one (edited)", "body")
			require.NoError(t, err)

			items, err := board.List(ctx)
			require.NoError(t, err)
			require.Len(t, items, 3)
			assert.Equal(t, "one (edited)", items[0].Title)
			assert.Equal(t, "three", items[1].Title)
			assert.Equal(t, "two", items[2].Title)
		})
	}
}

// TestBoard_EditUnknown verifies editing a missing announcement fails
func TestBoard_EditUnknown(t *testing.T) {
	for name, factory := range boardFactories() {
		t.Run(name, func(t *testing.T) {
			board := factory(t, newFakeClock())

			_, err := board.Edit(context.Background(), 1, "a", "b", "c")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}
