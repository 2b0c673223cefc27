// Command issue-token signs a development token with the configured JWT secret.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"fintrack-be/internal/config"
	"fintrack-be/internal/jwt"
	"fintrack-be/internal/models"
)

func main() {
	userID := flag.String("user", "", "user id (random when empty)")
	email := flag.String("email", "dev@fintrack.local", "email claim")
	admin := flag.Bool("admin", false, "issue an Admin token")
	flag.Parse()

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET is required")
		os.Exit(1)
	}

	id := uuid.New()
	if *userID != "" {
		parsed, err := uuid.Parse(*userID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid user id: %v\n", err)
			os.Exit(1)
		}
		id = parsed
	}

	role := models.RoleUser
	if *admin {
		role = models.RoleAdmin
	}

	tokens := jwt.NewJWTService(cfg.JWTSecret, time.Duration(cfg.JWTTTL)*time.Hour)
	token, err := tokens.GenerateToken(id, *email, role)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to sign token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
