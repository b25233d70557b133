package main

import (
	"fmt"
	"os"

	"github.com/pevans/bulletin/config"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	subcommand := os.Args[1]
	args := os.Args[2:]

	switch subcommand {
	case "serve":
		handleServe(loadConfig(), args)
	case "list":
		handleList(loadConfig(), args)
	case "show":
		handleShow(loadConfig(), args)
	case "post":
		handlePost(loadConfig(), args)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command: %s\n\n", subcommand)
		printUsage()
		os.Exit(1)
	}
}

// loadConfig reads the configuration file named by BULLETIN_CONFIG, exiting
// on failure.
func loadConfig() *config.Config {
	cfg, err := config.Load(config.Path())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func printUsage() {
	fmt.Println("bulletin - Bulletin board server and client")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  bulletin <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  serve      Run the web server")
	fmt.Println("  list       List announcements, newest first")
	fmt.Println("  show       Show one announcement with its comments")
	fmt.Println("  post       Create an announcement")
	fmt.Println("  help       Show this help message")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  BULLETIN_CONFIG        Path to config file (default: ./bulletin.yaml)")
	fmt.Println("  BULLETIN_ADDR          Listen address (default: localhost:5000)")
	fmt.Println("  BULLETIN_STORAGE_TYPE  redis or sqlite (default: redis)")
	fmt.Println("  BULLETIN_REDIS_HOST    Redis host (default: localhost)")
	fmt.Println("  BULLETIN_REDIS_PORT    Redis port (default: 6379)")
	fmt.Println("  BULLETIN_SQLITE_DSN    SQLite database path (default: bulletin.db)")
	fmt.Println("  BULLETIN_LOG_LEVEL     debug, info, warn or error (default: info)")
}
