package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pevans/bulletin/announcement"
)

const rule = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"

// printListTable prints announcements in human-readable table format
func printListTable(w io.Writer, items []announcement.Announcement, total int) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No announcements to display.")
		return
	}

	fmt.Fprintf(w, "Showing %d of %d announcements\n\n", len(items), total)

	for _, item := range items {
		title := truncate(item.Title, 70)
		if item.IsEdited {
			title += " (edited)"
		}

		fmt.Fprintf(w, "#%d %s\n", item.ID, title)
		fmt.Fprintf(w, "   %s | %s | %s\n",
			item.Author,
			item.Timestamp,
			countComments(len(item.Comments)),
		)
		if content := truncate(strings.Join(strings.Fields(item.Content), " "), 150); content != "" {
			fmt.Fprintf(w, "   %s\n", content)
		}
		fmt.Fprintln(w)
	}
}

// printListJSON prints announcements in the same shape as the HTTP API
func printListJSON(w io.Writer, items []announcement.Announcement, total int) error {
	if items == nil {
		items = []announcement.Announcement{}
	}
	output := map[string]any{
		"announcements": items,
		"total":         total,
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	fmt.Fprintln(w, string(data))
	return nil
}

// printListCompact prints one line per announcement
func printListCompact(w io.Writer, items []announcement.Announcement) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No announcements to display.")
		return
	}

	for _, item := range items {
		fmt.Fprintf(w, "%d %s (%s)\n", item.ID, item.Title, item.Author)
	}
}

// printAnnouncement prints a single announcement followed by its comments
func printAnnouncement(w io.Writer, item *announcement.Announcement) {
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, item.Title)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Author:      %s\n", item.Author)
	fmt.Fprintf(w, "Posted:      %s\n", item.Timestamp)
	if item.IsEdited {
		fmt.Fprintln(w, "Edited:      yes")
	}
	fmt.Fprintf(w, "ID:          %d\n", item.ID)
	fmt.Fprintln(w)

	if item.Content != "" {
		for _, para := range strings.Split(strings.ReplaceAll(item.Content, "\r\n", "\n"), "\n\n") {
			if para = strings.TrimSpace(para); para != "" {
				fmt.Fprintln(w, wrapText(para, 80))
				fmt.Fprintln(w)
			}
		}
	}

	fmt.Fprintf(w, "Comments (%d)\n", len(item.Comments))
	for _, comment := range item.Comments {
		fmt.Fprintf(w, "  %s:\n", comment.Commentator)
		for _, line := range strings.Split(wrapText(comment.Text, 76), "\n") {
			fmt.Fprintf(w, "    %s\n", line)
		}
	}
}

func countComments(n int) string {
	if n == 1 {
		return "1 comment"
	}
	return fmt.Sprintf("%d comments", n)
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// wrapText wraps text to a maximum line width
func wrapText(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}

	var lines []string
	var currentLine strings.Builder

	for _, word := range words {
		if currentLine.Len() == 0 {
			currentLine.WriteString(word)
		} else if currentLine.Len()+1+len(word) <= width {
			currentLine.WriteString(" ")
			currentLine.WriteString(word)
		} else {
			lines = append(lines, currentLine.String())
			currentLine.Reset()
			currentLine.WriteString(word)
		}
	}

	if currentLine.Len() > 0 {
		lines = append(lines, currentLine.String())
	}

	return strings.Join(lines, "\n")
}
