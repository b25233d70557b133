package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/pevans/bulletin/announcement"
	"github.com/pevans/bulletin/config"
)

func handleList(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	author := fs.String("author", "", "Show only announcements by this author")
	limit := fs.Int("limit", 20, "Maximum number of announcements to display (0 for all)")
	format := fs.String("format", "table", "Output format: table, json, compact")
	fs.Parse(args)

	ctx := context.Background()
	board, closeStore := mustOpenBoard(ctx, cfg)
	defer closeStore()

	items, err := board.List(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to list announcements: %v\n", err)
		os.Exit(1)
	}

	if *author != "" {
		var filtered []announcement.Announcement
		for _, item := range items {
			if item.Author == *author {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	total := len(items)
	if *limit > 0 && len(items) > *limit {
		items = items[:*limit]
	}

	switch *format {
	case "json":
		err = printListJSON(os.Stdout, items, total)
	case "compact":
		printListCompact(os.Stdout, items)
	case "table":
		printListTable(os.Stdout, items, total)
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid format: %s (must be table, json, or compact)\n", *format)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func handleShow(cfg *config.Config, args []string) {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "Error: announcement ID is required\n")
		fmt.Fprintf(os.Stderr, "Usage: bulletin show <id>\n")
		os.Exit(1)
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid announcement ID: %s\n", args[0])
		os.Exit(1)
	}

	ctx := context.Background()
	board, closeStore := mustOpenBoard(ctx, cfg)
	defer closeStore()

	item, err := board.Get(ctx, id)
	if errors.Is(err, announcement.ErrNotFound) {
		fmt.Fprintf(os.Stderr, "Error: announcement not found: %d\n", id)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to get announcement: %v\n", err)
		os.Exit(1)
	}

	printAnnouncement(os.Stdout, item)
}

func handlePost(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("post", flag.ExitOnError)
	author := fs.String("author", "", "Author name (required)")
	title := fs.String("title", "", "Announcement title (required)")
	content := fs.String("content", "", "Announcement body")
	fs.Parse(args)

	if *author == "" || *title == "" {
		fmt.Fprintf(os.Stderr, "Error: --author and --title are required\n")
		fmt.Fprintf(os.Stderr, "Usage: bulletin post --author <name> --title <title> [--content <text>]\n")
		os.Exit(1)
	}

	ctx := context.Background()
	board, closeStore := mustOpenBoard(ctx, cfg)
	defer closeStore()

	created, err := board.Post(ctx, *author, *title, *content)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to post announcement: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Posted announcement %d: %s\n", created.ID, created.Title)
}
