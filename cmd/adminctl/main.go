// Package main provisions admin accounts. Admins have no self-registration
// route; this tool is the only way to create one:
//
//	adminctl -username ops -password 's3cret-pass'
//
// Database settings come from the same environment variables as the server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/zaijudeng/toolstation/internal/config"
	"github.com/zaijudeng/toolstation/internal/database"
	"github.com/zaijudeng/toolstation/internal/password"
	"github.com/zaijudeng/toolstation/internal/plugins/admin"
)

func main() {
	username := flag.String("username", "", "admin username (required)")
	plaintext := flag.String("password", "", "admin password, min 6 characters (required)")
	flag.Parse()

	if *username == "" || len(*plaintext) < 6 {
		fmt.Fprintln(os.Stderr, "usage: adminctl -username <name> -password <min 6 chars>")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	db, err := database.NewMariaDB(cfg.Database)
	if err != nil {
		slog.Error("failed to connect to MariaDB", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	hash, err := password.Hash(*plaintext)
	if err != nil {
		slog.Error("failed to hash password", slog.Any("error", err))
		os.Exit(1)
	}

	repo := admin.NewAdminRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a := &admin.Admin{
		ID:           uuid.NewString(),
		Username:     *username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := repo.CreateAdmin(ctx, a); err != nil {
		slog.Error("failed to create admin", slog.Any("error", err))
		os.Exit(1)
	}

	fmt.Printf("admin %q created (id %s)\n", a.Username, a.ID)
}
