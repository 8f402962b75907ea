// Command token mints a signed bearer token for local testing against the server.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"assetmanagement/internal/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
)

func main() {
	subject := flag.String("sub", "", "User id (subject)")
	role := flag.String("role", "CLIENTE", "Role name (ADMINISTRADOR or CLIENTE)")
	name := flag.String("name", "", "Display name")
	ttl := flag.Duration("ttl", time.Hour, "Token lifetime")
	flag.Parse()

	_ = godotenv.Load()

	if *subject == "" {
		fmt.Fprintln(os.Stderr, "usage: token -sub <user-id> [-role ADMINISTRADOR|CLIENTE] [-ttl 1h]")
		os.Exit(2)
	}

	now := time.Now()
	token, err := auth.SignHMAC([]byte(os.Getenv("JWT_SECRET")), &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   *subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(*ttl)),
		},
		Name: *name,
		Role: *role,
	})
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}

	fmt.Println(token)
}
