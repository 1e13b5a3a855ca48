package app

import (
	"strings"

	"github.com/municatastro/catastro-backend/internal/platform/envutil"
)

type Config struct {
	Port             string
	CORSAllowOrigins []string
	GCSBucket        string
}

func LoadConfig() Config {
	origins := strings.Split(envutil.Str("CORS_ALLOW_ORIGINS",
		"http://localhost:3000,http://localhost:5173"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return Config{
		Port:             envutil.Str("PORT", "8080"),
		CORSAllowOrigins: origins,
		GCSBucket:        envutil.Str("CATASTRO_GCS_BUCKET", "catastro-fotos"),
	}
}
