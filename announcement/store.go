package announcement

import "context"

// Store is the shared list of announcement records plus the id counter.
//
// List returns records in list order (oldest append first). Append assigns
// the next id from the counter, stores the record at the tail of the list
// and returns it. Update applies fn to the record with the given id and
// writes it back in place; it returns ErrNotFound if no record matches.
type Store interface {
	List(ctx context.Context) ([]Announcement, error)
	Append(ctx context.Context, a Announcement) (*Announcement, error)
	Update(ctx context.Context, id int64, fn func(*Announcement)) (*Announcement, error)
	Close() error
}
