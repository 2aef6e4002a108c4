package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadParsesYAML(t *testing.T) {
	path := writeConfig(t, `
server:
  address: 127.0.0.1
  port: 9090
  db_path: /tmp/db
security:
  rate_limit:
    rps: 2.5
    burst: 4
  api_keys:
    - key-one
logging:
  level: debug
groq:
  model: test-model
autogen:
  enabled: true
  cron: "0 6 * * 1"
  request_file: ./req.json
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr() != "127.0.0.1:9090" {
		t.Fatalf("Addr() = %q", cfg.Addr())
	}
	if cfg.Server.DBPath != "/tmp/db" {
		t.Fatalf("db_path = %q", cfg.Server.DBPath)
	}
	if cfg.Security.RateLimit.RPS != 2.5 || cfg.Security.RateLimit.Burst != 4 {
		t.Fatalf("rate limit %+v", cfg.Security.RateLimit)
	}
	if len(cfg.Security.APIKeys) != 1 || cfg.Security.APIKeys[0] != "key-one" {
		t.Fatalf("api keys %v", cfg.Security.APIKeys)
	}
	if !cfg.Autogen.Enabled || cfg.Autogen.Cron != "0 6 * * 1" {
		t.Fatalf("autogen %+v", cfg.Autogen)
	}
	if cfg.Groq.Model != "test-model" {
		t.Fatalf("groq model %q", cfg.Groq.Model)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestAddrDefaults(t *testing.T) {
	var cfg Config
	if cfg.Addr() != "0.0.0.0:8080" {
		t.Fatalf("default Addr() = %q", cfg.Addr())
	}
}

func TestParseConfigEnvs(t *testing.T) {
	t.Setenv("MASTERMIND_ADDR", "10.0.0.1:9999")
	t.Setenv("MASTERMIND_DB_PATH", "/var/lib/mastermind")
	t.Setenv("MASTERMIND_API_KEYS", "a, b ,c")
	t.Setenv("MASTERMIND_RATE_RPS", "7")
	t.Setenv("GROQ_API_KEY", "gsk-test")
	t.Setenv("MASTERMIND_GROQ_MODEL", "env-model")

	cfg, used := ParseConfigEnvs()
	if !used {
		t.Fatalf("env not detected")
	}
	if cfg.Addr() != "10.0.0.1:9999" {
		t.Fatalf("Addr() = %q", cfg.Addr())
	}
	if cfg.Server.DBPath != "/var/lib/mastermind" {
		t.Fatalf("db path %q", cfg.Server.DBPath)
	}
	if len(cfg.Security.APIKeys) != 3 || cfg.Security.APIKeys[1] != "b" {
		t.Fatalf("api keys %v", cfg.Security.APIKeys)
	}
	if cfg.Security.RateLimit.RPS != 7 {
		t.Fatalf("rps %v", cfg.Security.RateLimit.RPS)
	}
	if cfg.Groq.APIKey != "gsk-test" || cfg.Groq.Model != "env-model" {
		t.Fatalf("groq %+v", cfg.Groq)
	}
}

func TestLoadEffectiveConfigPrecedence(t *testing.T) {
	fileCfg := &Config{}
	fileCfg.Server.Address = "file-host"
	fileCfg.Server.Port = 1111
	fileCfg.Server.DBPath = "/file/db"

	envCfg := &Config{}
	envCfg.Server.Address = "env-host"
	envCfg.Server.Port = 2222
	envCfg.Server.DBPath = "/env/db"
	envCfg.Groq.APIKey = "gsk-env"

	// explicit --config wins
	eff, err := LoadEffectiveConfig(Flags{Config: "x.yaml", Set: map[string]bool{"config": true}}, fileCfg, true, envCfg)
	if err != nil {
		t.Fatalf("LoadEffectiveConfig: %v", err)
	}
	if eff.Source != "config" || eff.Addr != "file-host:1111" || eff.DBPath != "/file/db" {
		t.Fatalf("config source result %+v", eff)
	}
	if eff.Config.Groq.APIKey != "gsk-env" {
		t.Fatalf("groq key not carried from env")
	}

	// explicit --config with no file is fatal
	if _, err := LoadEffectiveConfig(Flags{Config: "x.yaml", Set: map[string]bool{"config": true}}, &Config{}, false, envCfg); err == nil {
		t.Fatalf("expected error for explicit missing config file")
	}

	// addr/db flags beat file and env
	eff, err = LoadEffectiveConfig(Flags{Addr: ":7777", DB: "/flag/db", Set: map[string]bool{"addr": true, "db": true}}, fileCfg, true, envCfg)
	if err != nil {
		t.Fatalf("LoadEffectiveConfig: %v", err)
	}
	if eff.Source != "flags" || eff.Addr != ":7777" || eff.DBPath != "/flag/db" {
		t.Fatalf("flags source result %+v", eff)
	}

	// file beats env when no flags set
	eff, err = LoadEffectiveConfig(Flags{Set: map[string]bool{}}, fileCfg, true, envCfg)
	if err != nil {
		t.Fatalf("LoadEffectiveConfig: %v", err)
	}
	if eff.Source != "config" || eff.DBPath != "/file/db" {
		t.Fatalf("file-over-env result %+v", eff)
	}

	// env is the last resort
	eff, err = LoadEffectiveConfig(Flags{Set: map[string]bool{}}, &Config{}, false, envCfg)
	if err != nil {
		t.Fatalf("LoadEffectiveConfig: %v", err)
	}
	if eff.Source != "env" || eff.Addr != "env-host:2222" {
		t.Fatalf("env source result %+v", eff)
	}
}

func TestResolveConfigPath(t *testing.T) {
	if p := ResolveConfigPath("./flagged.yaml", true); p != "./flagged.yaml" {
		t.Fatalf("flag path not honored: %q", p)
	}
	t.Setenv("MASTERMIND_CONFIG", "/env/config.yaml")
	if p := ResolveConfigPath("./default.yaml", false); p != "/env/config.yaml" {
		t.Fatalf("env path not honored: %q", p)
	}
}
