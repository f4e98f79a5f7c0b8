package config

import (
	"os"
	"strings"
)

type Mode string

const (
	ModeLocal  Mode = "local"  // single operator, sqlite, permissive CORS
	ModeShared Mode = "shared" // team deployment, postgres, locked-down CORS
)

type Config struct {
	Mode     Mode
	HTTPAddr string

	DBDriver string
	DBDSN    string

	// DataRoot is where the upstream pipeline drops its exports
	// (data/rankings, data/games/normalized, data/master).
	DataRoot string

	// WeightsPath points at the pipeline's ranking config YAML; empty means
	// the built-in 0.20/0.20/0.60 blend.
	WeightsPath string

	AuthSecret    string
	AdminUser     string
	AdminPassHash string // bcrypt
	ViewerUser    string
	ViewerPassHash string // bcrypt, empty disables the viewer account

	CORSOriginsShared []string
	CORSOriginsLocal  []string
}

func FromEnv() Config {
	mode := Mode(os.Getenv("MODE"))
	if mode == "" {
		mode = ModeLocal
	}
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		Mode:     mode,
		HTTPAddr: addr,

		DBDriver: envOr("DB_DRIVER", "sqlite"),
		DBDSN:    envOr("DB_DSN", ""),

		DataRoot:    envOr("DATA_ROOT", "./data"),
		WeightsPath: envOr("WEIGHTS_PATH", ""),

		AuthSecret: envOr("AUTH_HMAC_SECRET", "rankwatch-dev-key"),
		AdminUser:  envOr("ADMIN_USER", "admin"),
		// Default hash is for the string "admin"; override in any shared deployment.
		AdminPassHash:  envOr("ADMIN_PASS_HASH", "$2b$10$lGwLFdXBkcEeAHxEE6HKNOvOSZcKbD/7nIs4d3diFQpLdMz5bDkky"),
		ViewerUser:     envOr("VIEWER_USER", "viewer"),
		ViewerPassHash: os.Getenv("VIEWER_PASS_HASH"),

		CORSOriginsShared: csvOr("CORS_ORIGINS_SHARED", ""),
		CORSOriginsLocal:  csvOr("CORS_ORIGINS_LOCAL", "http://localhost:3000,http://localhost:5173"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
