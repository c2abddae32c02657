package config

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	Port          int
	DataPath      string
	DBPath        string
	UploadPath    string
	JWTSecret     string
	AdminUsername string
	AdminPassword string
	CORSOrigins   []string

	OpenAIKey    string
	WhisperModel string
	WhisperURL   string

	AnthropicKey   string
	AnthropicModel string

	ChunkDuration time.Duration
	ChunkBitrate  string
}

func Load() *Config {
	port, _ := strconv.Atoi(getEnv("PORT", "8080"))
	dataPath := getEnv("DATA_PATH", "/data")

	// JWT secret: require explicit setting or generate random
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			log.Fatal().Err(err).Msg("[config] failed to generate random JWT secret")
		}
		jwtSecret = hex.EncodeToString(b)
		log.Warn().Msg("[config] JWT_SECRET not set, using random secret. Sessions will not survive restarts. Set JWT_SECRET env var for persistent sessions.")
	}

	// CORS origins: comma-separated list or "*" (default)
	corsOrigins := []string{"*"}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		corsOrigins = make([]string, 0, len(origins))
		for _, o := range origins {
			o = strings.TrimSpace(o)
			if o != "" {
				corsOrigins = append(corsOrigins, o)
			}
		}
	}

	chunkDuration := 10 * time.Minute
	if v := os.Getenv("CHUNK_DURATION_MINUTES"); v != "" {
		if mins, err := strconv.Atoi(v); err == nil && mins > 0 {
			chunkDuration = time.Duration(mins) * time.Minute
		}
	}

	return &Config{
		Port:          port,
		DataPath:      dataPath,
		DBPath:        getEnv("DB_PATH", dataPath+"/podscribe.db"),
		UploadPath:    getEnv("UPLOAD_PATH", dataPath+"/uploads"),
		JWTSecret:     jwtSecret,
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin"),
		CORSOrigins:   corsOrigins,

		OpenAIKey:    os.Getenv("OPENAI_API_KEY"),
		WhisperModel: getEnv("WHISPER_MODEL", "whisper-1"),
		WhisperURL:   os.Getenv("WHISPER_SERVER_URL"),

		AnthropicKey:   os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel: os.Getenv("ANTHROPIC_MODEL"),

		ChunkDuration: chunkDuration,
		ChunkBitrate:  getEnv("CHUNK_BITRATE", "128k"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
