// Package main provides a CLI tool for generating identity tokens for local
// development. Tokens use the dev signing key and will NOT work against a
// production deployment.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	jwttoken "civreg/internal/jwt_token"
	id "civreg/pkg/domain"
)

// Dev signing key, matches config.go when JWT_SIGNING_KEY is not set.
const devSigningKey = "dev-secret-key-change-in-production"

type tokenOutput struct {
	Token     string `json:"token"`
	Identity  string `json:"identity"`
	ExpiresIn string `json:"expires_in"`
	Usage     string `json:"usage"`
}

func main() {
	identity := flag.String("identity", "", "Identity to embed in the token (required)")
	signingKey := flag.String("signing-key", devSigningKey, "JWT signing key")
	ttl := flag.Duration("ttl", 24*time.Hour, "Token time-to-live")
	asJSON := flag.Bool("json", false, "Output as JSON")
	flag.Parse()

	if *identity == "" {
		fmt.Fprintln(os.Stderr, "usage: tokengen -identity <identity> [-ttl 24h] [-json]")
		os.Exit(2)
	}

	tokens := jwttoken.NewService(*signingKey, *ttl)
	token, err := tokens.GenerateIdentityToken(id.Identity(*identity))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to generate token: %v\n", err)
		os.Exit(1)
	}

	if *asJSON {
		out := tokenOutput{
			Token:     token,
			Identity:  *identity,
			ExpiresIn: ttl.String(),
			Usage:     "Authorization: Bearer <token>",
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
		return
	}
	fmt.Println(token)
}
