package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/memore/memore/internal/auth"
	"github.com/memore/memore/internal/repository"
	"github.com/memore/memore/internal/service"
)

type output struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		jwtSecret   = flag.String("jwt-secret", os.Getenv("JWT_SECRET"), "Secret used to sign the printed token")
		username    = flag.String("username", "demo", "Username")
		password    = flag.String("password", "demo-password", "Password (at least 8 characters)")
		nickname    = flag.String("nickname", "demo", "Nickname")
		email       = flag.String("email", "demo@memore.local", "Email")
		format      = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *databaseURL == "" || *jwtSecret == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL and JWT_SECRET are required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	accounts := service.NewAccountService(service.AccountConfig{
		Users:  repo,
		Hasher: auth.NewHasher(auth.DefaultParams),
		Tokens: auth.NewTokenIssuer([]byte(*jwtSecret), 24*time.Hour),
	})

	// Re-running the script with the same user just logs in again.
	_, err = accounts.Signup(ctx, service.SignupInput{
		Username: *username,
		Password: *password,
		Nickname: *nickname,
		Email:    *email,
	})
	if err != nil && !errors.Is(err, service.ErrUsernameTaken) {
		fmt.Fprintln(os.Stderr, "signup:", err)
		os.Exit(1)
	}

	session, err := accounts.Login(ctx, *username, *password)
	if err != nil {
		fmt.Fprintln(os.Stderr, "login:", err)
		os.Exit(1)
	}

	out := output{
		UserID:    session.User.ID,
		Username:  session.User.Username,
		Email:     session.User.Email,
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
	}

	switch strings.ToLower(*format) {
	case "plain":
		fmt.Println(out.Token)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
	default:
		fmt.Fprintln(os.Stderr, "invalid format; use plain or json")
		os.Exit(1)
	}
}
