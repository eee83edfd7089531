package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	// JWTSecret verifies tokens issued by the external identity service.
	JWTSecret string

	// DriverDayRate is the fixed per-day surcharge for the driver service.
	DriverDayRate int64

	CORSOrigins []string
}

// Current holds the loaded environment for call sites that cannot receive it
// explicitly (package-level handlers, like the global DB).
var Current Env

func LoadEnv() Env {
	// .env is optional; real deployments set variables directly
	_ = godotenv.Load()

	Current = Env{
		AppAddr: getenv("APP_ADDR", ":8080"),
		GinMode: strings.TrimSpace(os.Getenv("GIN_MODE")),

		DBUser: getenv("DB_USER", "root"),
		DBPass: strings.TrimSpace(os.Getenv("DB_PASS")),
		DBHost: getenv("DB_HOST", "127.0.0.1:3306"),
		DBName: getenv("DB_NAME", "rental_app"),

		JWTSecret: getenv("JWT_SECRET", "super-secret-key-change-me"),

		DriverDayRate: getenvInt64("DRIVER_DAY_RATE", 1000),

		CORSOrigins: splitList(getenv("CORS_ALLOWED_ORIGINS",
			"http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")),
	}
	return Current
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getenvInt64(key string, def int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func splitList(raw string) []string {
	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
