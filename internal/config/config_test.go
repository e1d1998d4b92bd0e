package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "sqlite://planner.db")
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("NUTRITION_API_KEY", "abc")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.EnvVars.Port != "8080" {
		t.Errorf("Port = %q, want %q", cfg.EnvVars.Port, "8080")
	}
	if cfg.EnvVars.ResultsPerPage != 10 {
		t.Errorf("ResultsPerPage = %d, want 10", cfg.EnvVars.ResultsPerPage)
	}
	if cfg.RequestTimeout().Seconds() != 10 {
		t.Errorf("RequestTimeout = %v, want 10s", cfg.RequestTimeout())
	}
	if err := cfg.CheckConfigEnvFields(); err != nil {
		t.Errorf("CheckConfigEnvFields error: %v", err)
	}
	if cfg.ImageUploadEnabled() {
		t.Error("image upload should be off without S3_BUCKET")
	}
}

func TestCheckConfigEnvFields_MissingRequired(t *testing.T) {
	cfg := &Config{EnvVars: EnvVars{
		Port:               "8080",
		DatabaseUrl:        "postgres://localhost/planner",
		RecipeAPIURL:       "http://recipes",
		NutritionAPIURL:    "http://nutrition",
		NutritionAPIKey:    "abc",
		RequestTimeoutSec:  10,
		ResultsPerPage:     10,
		NutritionRPS:       5,
		SessionIdleMinutes: 30,
		MessagesPath:       "configs/messages.yaml",
	}}
	err := cfg.CheckConfigEnvFields()
	if err == nil {
		t.Fatal("expected an error for a missing JWT secret")
	}
	if !strings.Contains(err.Error(), "JWT_SECRET_KEY") {
		t.Errorf("error = %q, want it to name JWT_SECRET_KEY", err.Error())
	}
}

func TestLoadMessages_MissingFileUsesDefaults(t *testing.T) {
	m, err := LoadMessages(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadMessages error: %v", err)
	}
	if m.Views.NoResults != DefaultMessages().Views.NoResults {
		t.Errorf("NoResults = %q", m.Views.NoResults)
	}
}

func TestLoadMessages_OverridesSomeKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.yaml")
	if err := os.WriteFile(path, []byte("views:\n  no_results: \"Nothing here\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := LoadMessages(path)
	if err != nil {
		t.Fatalf("LoadMessages error: %v", err)
	}
	if m.Views.NoResults != "Nothing here" {
		t.Errorf("NoResults = %q, want %q", m.Views.NoResults, "Nothing here")
	}
	if m.Views.NoBookmarks != DefaultMessages().Views.NoBookmarks {
		t.Errorf("unset keys should keep defaults, got %q", m.Views.NoBookmarks)
	}
}

func TestLoadMessages_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.yaml")
	if err := os.WriteFile(path, []byte("views: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadMessages(path); err == nil {
		t.Error("expected a parse error")
	}
}

func TestMessages_Render(t *testing.T) {
	m := DefaultMessages()
	got, err := m.Render(m.Dialogue.CaloriesResult, map[string]interface{}{"Calories": 412})
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	want := "Approximate number of calories per serving is 412"
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}
