package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Search.DefaultLimit != 12 || cfg.Search.MaxLimit != 50 {
		t.Errorf("search limits = %d/%d, want 12/50", cfg.Search.DefaultLimit, cfg.Search.MaxLimit)
	}
	if cfg.PostgreSQL.MaxConnections != 25 {
		t.Errorf("max connections = %d, want 25", cfg.PostgreSQL.MaxConnections)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SEARCH_DEFAULT_LIMIT", "24")
	t.Setenv("PG_MAX_CONNECTIONS", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("server port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Search.DefaultLimit != 24 {
		t.Errorf("default limit = %d, want 24", cfg.Search.DefaultLimit)
	}
	// Unparsable values fall back to the default
	if cfg.PostgreSQL.MaxConnections != 25 {
		t.Errorf("max connections = %d, want default 25", cfg.PostgreSQL.MaxConnections)
	}
}

func TestGetPostgreSQLDSN(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://search:secret@db:5432/marketplace")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := cfg.GetPostgreSQLDSN(); got != "postgres://search:secret@db:5432/marketplace" {
		t.Errorf("DSN = %q, want the DATABASE_URL verbatim", got)
	}
}

func TestGetPostgreSQLDSN_Composed(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PG_DSN", "")
	t.Setenv("PG_HOST", "db.internal")
	t.Setenv("PG_DATABASE", "marketplace")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "host=db.internal port=5432 user=postgres password= dbname=marketplace sslmode=disable"
	if got := cfg.GetPostgreSQLDSN(); got != want {
		t.Errorf("DSN = %q, want %q", got, want)
	}
}
