package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"ADDR", "STATIC_DIR", "DB_DRIVER", "DB_DSN", "LOG_DEV"} {
		t.Setenv(k, "")
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8080" || cfg.DBDriver != DriverSQLite || cfg.DBDSN != "./guesser.db" || cfg.LogDev {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ADDR", ":9000")
	t.Setenv("DB_DRIVER", "pgx")
	t.Setenv("DB_DSN", "postgres://localhost/guesser")
	t.Setenv("LOG_DEV", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9000" || cfg.DBDriver != DriverPostgres || !cfg.LogDev {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string][2]string{
		"unknown driver": {"DB_DRIVER", "mysql"},
		"bad bool":       {"LOG_DEV", "maybe"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", kv[0], kv[1])
			}
		})
	}
}
