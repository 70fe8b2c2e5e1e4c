package utils

import (
	"os"
	"strconv"
	"time"
)

type AuthConfig struct {
	JWTSecret   string
	JWTIssuer   string
	JWTDuration time.Duration
}

func LoadAuthConfig() AuthConfig {
	secret := os.Getenv("MEALHUB_JWT_SECRET")
	if secret == "" {
		// dev default (change for demo / production)
		secret = "dev-secret-change-me"
	}

	issuer := os.Getenv("MEALHUB_JWT_ISSUER")
	if issuer == "" {
		issuer = "mealhub"
	}

	hours := envInt("MEALHUB_JWT_TTL_HOURS", 24)
	if hours <= 0 {
		hours = 24
	}

	return AuthConfig{
		JWTSecret:   secret,
		JWTIssuer:   issuer,
		JWTDuration: time.Duration(hours) * time.Hour,
	}
}

type ServerConfig struct {
	HTTPAddr          string
	ReconcileInterval time.Duration
}

func LoadServerConfig() ServerConfig {
	addr := os.Getenv("MEALHUB_HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	minutes := envInt("MEALHUB_RECONCILE_INTERVAL_MINUTES", 60)
	if minutes <= 0 {
		minutes = 60
	}

	return ServerConfig{
		HTTPAddr:          addr,
		ReconcileInterval: time.Duration(minutes) * time.Minute,
	}
}

func envInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
