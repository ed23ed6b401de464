// Local operator tool for the board. It talks to the SQLite database
// directly, so it runs with filesystem privilege rather than a login:
// the role checks that guard the HTTP admin surface do not apply here.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/hollyburn/noteboard/internal/board/app"
	"github.com/hollyburn/noteboard/internal/board/domain"
	"github.com/hollyburn/noteboard/internal/board/store"
	"github.com/hollyburn/noteboard/internal/board/store/drivers/sqlite"
	"github.com/hollyburn/noteboard/pkg/cryptox"
	"github.com/hollyburn/noteboard/pkg/idx"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg := app.LoadConfig()
	cryptox.SetPepperPath(cfg.PepperFile)

	db, err := openStore(cfg.DatabaseFile)
	if err != nil {
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "create-admin":
		err = cmdCreateAdmin(db, args)
	case "promote":
		err = cmdSetRole(db, args, domain.RoleAdmin, "Promoted")
	case "demote":
		err = cmdSetRole(db, args, domain.RoleNone, "Demoted")
	case "delete":
		err = cmdDelete(db, args)
	case "list":
		err = cmdList(db)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	yellow := color.New(color.FgYellow)

	fmt.Println("Usage: boardctl <command> [args]")
	fmt.Println()
	yellow.Println("Commands:")
	fmt.Println("  create-admin <user> <email> <password>   Create an admin, or reset an existing account to admin")
	fmt.Println("  promote <user>                           Grant admin to an existing account")
	fmt.Println("  demote <user>                            Revoke admin from an account")
	fmt.Println("  delete <user>                            Delete an account and its notes")
	fmt.Println("  list                                     List all accounts")
	fmt.Println()
	yellow.Println("Environment:")
	fmt.Println("  BOARD_DATABASE_FILE   SQLite database file (default: board.db)")
	fmt.Println("  BOARD_PEPPER_FILE     Password hash pepper file (default: pepper)")
	fmt.Println()
}

func openStore(databaseFile string) (store.Store, error) {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", databaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("applying migrations: %w", err)
	}
	return db, nil
}

// cmdCreateAdmin upserts an admin account. An existing account keeps its
// id but gets the new password and the admin role.
func cmdCreateAdmin(db store.Store, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: create-admin <user> <email> <password>")
	}
	username, email, password := args[0], args[1], args[2]
	ctx := context.Background()

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	green := color.New(color.FgGreen)

	existing, err := db.Users().GetUserByUsername(ctx, username)
	switch {
	case err == nil:
		err = db.WithTx(ctx, func(tx store.Tx) error {
			if err := tx.Users().UpdatePasswordHash(ctx, existing.ID, hash); err != nil {
				return err
			}
			return tx.Users().UpdateRole(ctx, existing.ID, domain.RoleAdmin)
		})
		if err != nil {
			return fmt.Errorf("updating %s: %w", username, err)
		}
		green.Printf("✓ Reset %s to admin with the new password\n", username)
		return nil
	case errors.Is(err, store.ErrNotFound):
		u := domain.User{
			ID:           idx.New().String(),
			Username:     username,
			Email:        email,
			PasswordHash: hash,
			Role:         domain.RoleAdmin,
			CreatedAt:    time.Now().UTC(),
		}
		if err := db.Users().CreateUser(ctx, u); err != nil {
			return fmt.Errorf("creating %s: %w", username, err)
		}
		green.Printf("✓ Created admin: %s\n", username)
		return nil
	default:
		return fmt.Errorf("looking up %s: %w", username, err)
	}
}

func cmdSetRole(db store.Store, args []string, role domain.Role, verb string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: %s <user>", os.Args[1])
	}
	username := args[0]
	ctx := context.Background()

	u, err := db.Users().GetUserByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("looking up %s: %w", username, err)
	}
	if err := db.Users().UpdateRole(ctx, u.ID, role); err != nil {
		return fmt.Errorf("updating role: %w", err)
	}

	green := color.New(color.FgGreen)
	green.Printf("✓ %s %s\n", verb, username)
	return nil
}

func cmdDelete(db store.Store, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: delete <user>")
	}
	username := args[0]
	ctx := context.Background()

	u, err := db.Users().GetUserByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("looking up %s: %w", username, err)
	}
	if err := db.Users().DeleteUser(ctx, u.ID); err != nil {
		return fmt.Errorf("deleting %s: %w", username, err)
	}

	green := color.New(color.FgGreen)
	green.Printf("✓ Deleted %s and their notes\n", username)
	return nil
}

func cmdList(db store.Store) error {
	users, err := db.Users().ListUsers(context.Background())
	if err != nil {
		return fmt.Errorf("listing users: %w", err)
	}

	cyan := color.New(color.FgCyan)
	fmt.Println()
	cyan.Println("  Accounts")
	cyan.Println("  --------")

	if len(users) == 0 {
		fmt.Println("  (no accounts)")
		fmt.Println()
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  USERNAME\tEMAIL\tROLE\tCREATED")
	fmt.Fprintln(w, "  --------\t-----\t----\t-------")
	for _, u := range users {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", u.Username, u.Email, u.Role, u.CreatedAt.Format("Jan 02 2006 15:04"))
	}
	w.Flush()
	fmt.Println()

	return nil
}
