// Command create-admin creates an administrator account in the configured
// MongoDB database. Missing flags are prompted for on stdin.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"go-shop/config"
	"go-shop/models"
	"go-shop/store"
	"go-shop/store/mongostore"

	"golang.org/x/crypto/bcrypt"
)

type adminInput struct {
	Username string
	Email    string
	Password string
}

// complete prompts on in for every empty field
func (a *adminInput) complete(in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)
	ask := func(label string, dst *string) error {
		for *dst == "" {
			fmt.Fprintf(out, "%s: ", label)
			line, err := reader.ReadString('\n')
			*dst = strings.TrimSpace(line)
			if err != nil {
				if *dst != "" && errors.Is(err, io.EOF) {
					return nil
				}
				return fmt.Errorf("read %s: %w", strings.ToLower(label), err)
			}
		}
		return nil
	}
	if err := ask("Username", &a.Username); err != nil {
		return err
	}
	if err := ask("Email", &a.Email); err != nil {
		return err
	}
	return ask("Password", &a.Password)
}

// createAdmin refuses to overwrite an existing username or email
func createAdmin(ctx context.Context, users store.Users, in adminInput) (*models.User, error) {
	for _, login := range []string{in.Username, in.Email} {
		_, err := users.FindUserByLogin(ctx, login)
		if err == nil {
			return nil, fmt.Errorf("user %q already exists", login)
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &models.User{
		Username:  in.Username,
		Email:     in.Email,
		Password:  string(hash),
		Role:      models.RoleAdmin,
		CreatedAt: time.Now().UTC(),
	}
	if err := users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, fmt.Errorf("user %q already exists", in.Username)
		}
		return nil, err
	}
	return user, nil
}

func main() {
	var in adminInput
	flag.StringVar(&in.Username, "username", "", "admin username")
	flag.StringVar(&in.Email, "email", "", "admin email")
	flag.StringVar(&in.Password, "password", "", "admin password")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.DatabaseDriver != config.DriverMongo {
		log.Fatalf("create-admin needs DATABASE_DRIVER=%s", config.DriverMongo)
	}

	if err := in.complete(os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	s, err := mongostore.Connect(ctx, mongostore.Options{URI: cfg.MongoURI, Database: cfg.MongoDatabase})
	if err != nil {
		log.Fatal(err)
	}
	defer s.Close(context.Background())

	user, err := createAdmin(ctx, s.Users, in)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Admin user %q created (id %s)\n", user.Username, user.ID.Hex())
}
