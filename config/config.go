package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

type Config struct {
	ServiceName string
	LoggerLevel string

	AppPort int

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string

	TelegramBotToken string
	AdminID          int64
	Codeword         string

	Timezone    string
	Location    *time.Location
	Specialists []SpecialistSeed
}

// SpecialistSeed is one roster entry from the SPECIALISTS env variable.
// The roster is declarative: it is synced into storage at startup and is
// the sole source of specialist identity.
type SpecialistSeed struct {
	TelegramID int64
	Name       string
	Username   string
}

func Load() Config {
	_ = godotenv.Load(".env")

	cfg := Config{}

	cfg.ServiceName = cast.ToString(getOrReturnDefault("SERVICE_NAME", "servicebot"))
	cfg.LoggerLevel = cast.ToString(getOrReturnDefault("LOGGER_LEVEL", "debug"))
	cfg.AppPort = cast.ToInt(getOrReturnDefault("APP_PORT", 8080))

	cfg.PostgresHost = cast.ToString(getOrReturnDefault("POSTGRES_HOST", "localhost"))
	cfg.PostgresPort = cast.ToString(getOrReturnDefault("POSTGRES_PORT", "5432"))
	cfg.PostgresUser = cast.ToString(getOrReturnDefault("POSTGRES_USER", "postgres"))
	cfg.PostgresPassword = cast.ToString(getOrReturnDefault("POSTGRES_PASSWORD", "1234"))
	cfg.PostgresDB = cast.ToString(getOrReturnDefault("POSTGRES_DB", "servicebot"))

	cfg.TelegramBotToken = cast.ToString(getOrReturnDefault("TG_BOT_TOKEN", ""))
	cfg.AdminID = cast.ToInt64(getOrReturnDefault("ADMIN_ID", 0))
	cfg.Codeword = cast.ToString(getOrReturnDefault("CODEWORD", ""))

	cfg.Timezone = cast.ToString(getOrReturnDefault("TIMEZONE", "Europe/Moscow"))
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		loc = time.UTC
	}
	cfg.Location = loc

	cfg.Specialists = ParseRoster(cast.ToString(getOrReturnDefault("SPECIALISTS", "")))

	return cfg
}

// ParseRoster parses the SPECIALISTS variable. Entries are comma separated,
// each entry is "telegram_id:name:username". Malformed entries are skipped.
func ParseRoster(raw string) []SpecialistSeed {
	var roster []SpecialistSeed
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ":", 3)
		if len(parts) != 3 {
			continue
		}
		id := cast.ToInt64(strings.TrimSpace(parts[0]))
		if id == 0 {
			continue
		}
		roster = append(roster, SpecialistSeed{
			TelegramID: id,
			Name:       strings.TrimSpace(parts[1]),
			Username:   strings.TrimSpace(parts[2]),
		})
	}
	return roster
}

func getOrReturnDefault(key string, defaultValue interface{}) interface{} {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}
