// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command tokengen mints HS256 bearer tokens for local development.
//
// Usage:
//
//	JWT_SECRET=dev-secret go run ./cmd/tokengen -user u1 -ttl 24h
//
// The token is printed to stdout. Production tokens come from the external login flow.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/taibuivan/cinelist/internal/platform/sec"
)

func main() {
	userID := flag.String("user", "", "user id placed in the userId and sub claims")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	issuer := flag.String("issuer", os.Getenv("JWT_ISSUER"), "optional iss claim")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *userID == "" {
		log.Error("missing_flag", slog.String("flag", "user"))
		flag.Usage()
		os.Exit(2)
	}

	tokens, err := sec.NewHMACTokenService(os.Getenv("JWT_SECRET"), *issuer)
	if err != nil {
		log.Error("token_service_failed", slog.Any("error", err))
		os.Exit(1)
	}

	token, err := tokens.Issue(*userID, *ttl)
	if err != nil {
		log.Error("token_issue_failed", slog.Any("error", err))
		os.Exit(1)
	}

	fmt.Println(token)
}
