// Command createadmin creates an admin account or resets the password of an existing one.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ManuelReschke/GritGym/app/models"
	"github.com/ManuelReschke/GritGym/app/repository"
	"github.com/ManuelReschke/GritGym/internal/pkg/database"
	"github.com/ManuelReschke/GritGym/internal/pkg/env"
)

func main() {
	env.SetupEnvFile()
	database.SetupDatabase()

	users := repository.NewUserRepository(database.GetDB())
	if err := run(os.Args[1:], users, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "createadmin: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, users repository.UserRepository, out io.Writer) error {
	fs := flag.NewFlagSet("createadmin", flag.ContinueOnError)
	fs.SetOutput(out)
	var name, email, password string
	fs.StringVar(&name, "name", "", "display name of the admin")
	fs.StringVar(&email, "email", "", "login email (required)")
	fs.StringVar(&password, "password", "", "password, at least 8 characters (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		fs.Usage()
		return errors.New("-email and -password are required")
	}
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	existing, err := users.GetByEmail(email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("lookup %s: %w", email, err)
	}

	if existing != nil {
		if err := existing.SetPassword(password); err != nil {
			return err
		}
		existing.Role = models.RoleAdmin
		existing.Status = models.StatusActive
		if err := users.Update(existing); err != nil {
			return fmt.Errorf("update %s: %w", email, err)
		}
		fmt.Fprintf(out, "Updated admin %s (id %d)\n", existing.Email, existing.ID)
		return nil
	}

	admin, err := models.CreateAdmin(name, email, password)
	if err != nil {
		return err
	}
	if err := users.Create(admin); err != nil {
		return fmt.Errorf("create %s: %w", email, err)
	}
	fmt.Fprintf(out, "Created admin %s (id %d)\n", admin.Email, admin.ID)
	return nil
}
