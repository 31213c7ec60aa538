package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"inkwell/app/repositories"
	"inkwell/app/repositories/sessions"
	"inkwell/config"
	"inkwell/routes"
)

const cliVersion = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("inkwell version %s\n", cliVersion)
	case "serve":
		serve()
	case "db":
		handleDBCommand(os.Args[2:])
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	helpText := `Usage: inkwell <command> [options]
Commands:
  help                           Display this help message.
  version                        Show version information.
  serve                          Run the blog server.
  db <init|reset|backup|restore> Manage the blog database.

Configuration comes from the environment (or a .env file):
  ADDR             HTTP listen address (default :8080)
  DATABASE_PATH    SQLite database file (default data/posts.db)
  SESSION_PATH     Session store directory (default data/sessions)
  SESSION_SECRET   Cookie signing key (required)
`
	fmt.Println(helpText)
}

// serve loads configuration, opens both stores, and runs the HTTP server.
func serve() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0o755); err != nil {
		logger.Error("failed to create data directory", "error", err)
		os.Exit(1)
	}

	db, err := repositories.Open(cfg.DatabasePath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	sessionStore, err := sessions.Open(cfg.SessionPath)
	if err != nil {
		logger.Error("failed to open session store", "error", err)
		os.Exit(1)
	}
	defer sessionStore.Close()

	router := routes.SetupRoutes(routes.Config{
		DB:            db,
		Sessions:      sessionStore,
		SessionSecret: []byte(cfg.SessionSecret),
		Logger:        logger,
	})

	logger.Info("starting blog server", "addr", cfg.Addr)
	if err := routes.StartServer(cfg.Addr, router); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// handleDBCommand manages the SQLite database file.
func handleDBCommand(args []string) {
	if len(args) < 1 {
		printDBHelp()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	switch args[0] {
	case "init":
		db, err := repositories.Open(cfg.DatabasePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		db.Close()
		fmt.Printf("Database initialized at %s\n", cfg.DatabasePath)
	case "reset":
		db, err := repositories.Open(cfg.DatabasePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := repositories.Reset(db); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Database reset")
	case "backup":
		dst := cfg.DatabasePath + ".bak"
		if err := copyFile(cfg.DatabasePath, dst); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Backup written to %s\n", dst)
	case "restore":
		if len(args) < 2 {
			fmt.Println("Error: backup file path required for restore")
			os.Exit(1)
		}
		if err := copyFile(args[1], cfg.DatabasePath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Database restored from %s\n", args[1])
	case "help":
		printDBHelp()
	default:
		fmt.Printf("Unknown db command: %s\n\n", args[0])
		printDBHelp()
		os.Exit(1)
	}
}

func printDBHelp() {
	helpText := `Usage: inkwell db <command>

Commands:
  init            Create the database schema if absent
  reset           Drop and recreate all tables (destroys data)
  backup          Copy the database file to <path>.bak
  restore <file>  Replace the database file with a backup
  help            Display this help message
`
	fmt.Println(helpText)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
