package app

import (
	"time"

	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/platform/envutil"
)

type Config struct {
	Port           string
	JWTSecretKey   string
	AccessTokenTTL time.Duration
	RealtimeBus    string
}

func LoadConfig() Config {
	return Config{
		Port:           envutil.Str("PORT", "8080"),
		JWTSecretKey:   envutil.Str("JWT_SECRET_KEY", "defaultsecret"),
		AccessTokenTTL: time.Duration(envutil.Int("ACCESS_TOKEN_TTL", 3600)) * time.Second,
		RealtimeBus:    envutil.Str("REALTIME_BUS", "memory"),
	}
}
