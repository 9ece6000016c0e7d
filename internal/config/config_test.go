package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "inexistente.yaml"))
	if err != nil {
		t.Fatalf("Load sem arquivo: %v", err)
	}
	if cfg.DB.Host != "localhost" || cfg.DB.Port != 5432 {
		t.Fatalf("defaults de banco incorretos: %+v", cfg.DB)
	}
	if cfg.Server.Port != "8080" {
		t.Fatalf("porta default = %q, esperado 8080", cfg.Server.Port)
	}
	if cfg.Aditivos.DiasUteis {
		t.Fatal("dias_uteis deveria ser false por padrão")
	}
}

func TestLoadArquivo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	conteudo := []byte(`
db:
  host: db.interno
  port: 5433
  name: delivery_test
server:
  port: "9090"
aditivos:
  dias_uteis: true
`)
	if err := os.WriteFile(path, conteudo, 0o600); err != nil {
		t.Fatalf("escrevendo fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DB.Host != "db.interno" || cfg.DB.Port != 5433 || cfg.DB.Name != "delivery_test" {
		t.Fatalf("db incorreto: %+v", cfg.DB)
	}
	if cfg.Server.Port != "9090" {
		t.Fatalf("porta = %q, esperado 9090", cfg.Server.Port)
	}
	if !cfg.Aditivos.DiasUteis {
		t.Fatal("dias_uteis deveria ser true")
	}
}

func TestLoadOverrideEnv(t *testing.T) {
	t.Setenv("DB_HOST", "env.host")
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("JWT_SECRET", "segredo-env")
	t.Setenv("ADITIVOS_DIAS_UTEIS", "true")

	cfg, err := Load(filepath.Join(t.TempDir(), "inexistente.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DB.Host != "env.host" {
		t.Fatalf("DB_HOST não aplicado: %q", cfg.DB.Host)
	}
	if cfg.Server.Port != "7070" {
		t.Fatalf("SERVER_PORT não aplicado: %q", cfg.Server.Port)
	}
	if cfg.JWT.Secret != "segredo-env" {
		t.Fatalf("JWT_SECRET não aplicado: %q", cfg.JWT.Secret)
	}
	if !cfg.Aditivos.DiasUteis {
		t.Fatal("ADITIVOS_DIAS_UTEIS não aplicado")
	}
}
