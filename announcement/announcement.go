package announcement

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"
)

// TimestampLayout is the layout used for Announcement timestamps, both in
// stored records and on rendered pages (day/month/year, second precision).
const TimestampLayout = "02/01/2006 15:04:05"

// Custom errors for announcement operations
var (
	ErrNotFound = errors.New("announcement not found")
	ErrConflict = errors.New("announcement was modified concurrently")

	// ErrMissingField is wrapped with the name of a required form field
	// that was not submitted.
	ErrMissingField = errors.New("missing required field")
)

// Timestamp is a point in time that serializes with TimestampLayout.
type Timestamp struct {
	time.Time
}

// NewTimestamp truncates t to whole seconds, the precision of the stored
// representation.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.Truncate(time.Second)}
}

// String formats the timestamp with TimestampLayout.
func (t Timestamp) String() string {
	return t.Format(TimestampLayout)
}

// MarshalJSON encodes the timestamp as a quoted TimestampLayout string.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(t.String())), nil
}

// UnmarshalJSON decodes a quoted TimestampLayout string in local time.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("invalid timestamp %s: %w", data, err)
	}

	parsed, err := time.ParseInLocation(TimestampLayout, s, time.Local)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", s, err)
	}

	t.Time = parsed
	return nil
}

// Comment is a reply attached to an announcement.
type Comment struct {
	Commentator string `json:"commentator"`
	Text        string `json:"comment_text"`
}

// Announcement is a posted item. Its JSON form is the record kept in the
// shared list.
type Announcement struct {
	ID        int64     `json:"id"`
	Author    string    `json:"author"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Timestamp Timestamp `json:"timestamp"`
	Comments  []Comment `json:"comments"`
	IsEdited  bool      `json:"is_edited"`
}

// SortNewestFirst orders announcements by timestamp, most recent first.
// Announcements with the same timestamp are ordered by descending id.
func SortNewestFirst(items []Announcement) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].Timestamp.Equal(items[j].Timestamp.Time) {
			return items[i].Timestamp.After(items[j].Timestamp.Time)
		}
		return items[i].ID > items[j].ID
	})
}

// Find scans items for the announcement with the given id and returns its
// index, or -1.
func Find(items []Announcement, id int64) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
