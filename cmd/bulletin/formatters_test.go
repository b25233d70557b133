package main

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/pevans/bulletin/announcement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helper: two announcements, newest first
func sampleItems() []announcement.Announcement {
	return []announcement.Announcement{
		{
			ID:        2,
			Author:    "Bob",
			Title:     "Bake sale",
			Content:   "Friday\n\nin the hall",
			Timestamp: announcement.NewTimestamp(time.Date(2025, 3, 2, 10, 30, 0, 0, time.Local)),
			Comments:  []announcement.Comment{{Commentator: "Ann", Text: "Yum"}},
			IsEdited:  true,
		},
		{
			ID:        1,
			Author:    "Ann",
			Title:     "Picnic",
			Timestamp: announcement.NewTimestamp(time.Date(2025, 3, 1, 9, 0, 0, 0, time.Local)),
			Comments:  []announcement.Comment{},
		},
	}
}

func TestPrintListTable(t *testing.T) {
	var buf bytes.Buffer
	printListTable(&buf, sampleItems(), 5)

	out := buf.String()
	assert.Contains(t, out, "Showing 2 of 5 announcements")
	assert.Contains(t, out, "#2 Bake sale (edited)")
	assert.Contains(t, out, "Bob | 02/03/2025 10:30:00 | 1 comment\n")
	assert.Contains(t, out, "   Friday in the hall\n")
	assert.Contains(t, out, "#1 Picnic\n")
	assert.Contains(t, out, "0 comments")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("#2")), bytes.Index(buf.Bytes(), []byte("#1")))
}

func TestPrintListTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	printListTable(&buf, nil, 0)
	assert.Equal(t, "No announcements to display.\n", buf.String())
}

func TestPrintListJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printListJSON(&buf, sampleItems(), 2))

	var out struct {
		Announcements []announcement.Announcement `json:"announcements"`
		Total         int                         `json:"total"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, 2, out.Total)
	require.Len(t, out.Announcements, 2)
	assert.Equal(t, "Bake sale", out.Announcements[0].Title)
	assert.Equal(t, "02/03/2025 10:30:00", out.Announcements[0].Timestamp.String())
}

func TestPrintListJSON_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printListJSON(&buf, nil, 0))
	assert.JSONEq(t, `{"announcements": [], "total": 0}`, buf.String())
}

func TestPrintListCompact(t *testing.T) {
	var buf bytes.Buffer
	printListCompact(&buf, sampleItems())
	assert.Equal(t, "2 Bake sale (Bob)\n1 Picnic (Ann)\n", buf.String())
}

func TestPrintAnnouncement(t *testing.T) {
	item := sampleItems()[0]

	var buf bytes.Buffer
	printAnnouncement(&buf, &item)

	out := buf.String()
	assert.Contains(t, out, "Author:      Bob\n")
	assert.Contains(t, out, "Posted:      02/03/2025 10:30:00\n")
	assert.Contains(t, out, "Edited:      yes\n")
	assert.Contains(t, out, "Friday\n\nin the hall\n")
	assert.Contains(t, out, "Comments (1)\n  Ann:\n    Yum\n")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd...", truncate("abcdefghij", 7))
	assert.Equal(t, "ünï...", truncate("ünïcode!", 6))
}

func TestWrapText(t *testing.T) {
	assert.Equal(t, "one two\nthree", wrapText("one two three", 8))
	assert.Equal(t, "", wrapText("", 10))
	assert.Equal(t, "averyveryverylongword", wrapText("averyveryverylongword", 5))
}
