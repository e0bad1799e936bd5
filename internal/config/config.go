package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	ServerPort      string
	DBPath          string
	LogLevel        string
	LeaguepediaURL  string
	Season          string
	AutoLiveLeagues []string
	CacheTTL        time.Duration
}

// Leagues whose broadcasts routinely start before the schedule feed says
// they do. Fixtures in these leagues can be promoted to live early.
var defaultAutoLiveLeagues = []string{"LEC", "LFL", "LTA North", "LPL"}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		DBPath:          getEnv("DB_PATH", "arena.db"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LeaguepediaURL:  getEnv("LEAGUEPEDIA_URL", "https://lol.fandom.com/api.php"),
		Season:          getEnv("SEASON", "2025"),
		AutoLiveLeagues: splitList(getEnv("AUTO_LIVE_LEAGUES", "")),
		CacheTTL:        5 * time.Minute,
	}

	if len(cfg.AutoLiveLeagues) == 0 {
		cfg.AutoLiveLeagues = defaultAutoLiveLeagues
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Str("season", cfg.Season).
		Strs("auto_live_leagues", cfg.AutoLiveLeagues).
		Dur("cache_ttl", cfg.CacheTTL).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

var Module = fx.Provide(Load)
