package config

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(zerolog.Nop())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q", cfg.ServerPort)
	}
	if cfg.LeaguepediaURL != "https://lol.fandom.com/api.php" {
		t.Errorf("LeaguepediaURL = %q", cfg.LeaguepediaURL)
	}
	if len(cfg.AutoLiveLeagues) == 0 {
		t.Error("expected default auto-live leagues")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("SEASON", "2026")
	t.Setenv("AUTO_LIVE_LEAGUES", "LEC, LCK ,")

	cfg, err := Load(zerolog.Nop())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.ServerPort != "9999" {
		t.Errorf("ServerPort = %q", cfg.ServerPort)
	}
	if cfg.Season != "2026" {
		t.Errorf("Season = %q", cfg.Season)
	}
	if len(cfg.AutoLiveLeagues) != 2 || cfg.AutoLiveLeagues[0] != "LEC" || cfg.AutoLiveLeagues[1] != "LCK" {
		t.Errorf("AutoLiveLeagues = %v", cfg.AutoLiveLeagues)
	}
}

func TestSplitList(t *testing.T) {
	if got := splitList(""); got != nil {
		t.Errorf("splitList(\"\") = %v", got)
	}
	got := splitList(" a ,, b ")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("splitList = %v", got)
	}
}
