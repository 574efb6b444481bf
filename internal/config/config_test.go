package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.StorageNamespace != "secretaria_medica_db" {
		t.Errorf("unexpected storage namespace %q", cfg.StorageNamespace)
	}
	if cfg.DefaultServiceCost != 5000 {
		t.Errorf("expected default service cost 5000, got %d", cfg.DefaultServiceCost)
	}
	if cfg.SeedSize != 300 {
		t.Errorf("expected default seed size 300, got %d", cfg.SeedSize)
	}
	if cfg.GeminiModelID != "gemini-2.5-flash" {
		t.Errorf("unexpected gemini model %q", cfg.GeminiModelID)
	}
	if len(cfg.Specialties) != 2 {
		t.Errorf("expected two default specialties, got %v", cfg.Specialties)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("USE_MEMORY_STORE", "true")
	t.Setenv("DEFAULT_SERVICE_COST", "7000")
	t.Setenv("SPECIALTIES", "Traumatología, Kinesiología")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Port)
	}
	if !cfg.UseMemoryStore {
		t.Error("expected memory store to be enabled")
	}
	if cfg.DefaultServiceCost != 7000 {
		t.Errorf("expected service cost 7000, got %d", cfg.DefaultServiceCost)
	}
	if len(cfg.Specialties) != 2 || cfg.Specialties[1] != "Kinesiología" {
		t.Errorf("unexpected specialties %v", cfg.Specialties)
	}
}

func TestGeminiAPIKeyFallback(t *testing.T) {
	t.Setenv("API_KEY", "legacy-key")

	cfg := Load()
	if cfg.GeminiAPIKey != "legacy-key" {
		t.Errorf("expected API_KEY fallback, got %q", cfg.GeminiAPIKey)
	}
}
