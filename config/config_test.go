package config

import (
	"os"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	_ = os.Unsetenv("EXCHANGE_CONFIG")
	_ = os.Unsetenv("EXCHANGE_HTTP_ADDR")
	_ = os.Unsetenv("EXCHANGE_LOG_LEVEL")
	_ = os.Unsetenv("EXCHANGE_SYMBOL")

	c := Load()
	if c.Server.Addr != ":3000" {
		t.Fatalf("expected default addr :3000, got %s", c.Server.Addr)
	}
	if c.Logging.Level != "info" {
		t.Fatalf("expected default log level info, got %s", c.Logging.Level)
	}
	if c.Exchange.Symbol != "BTC_USDT" {
		t.Fatalf("expected default symbol BTC_USDT, got %s", c.Exchange.Symbol)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("EXCHANGE_HTTP_ADDR", ":8080")
	t.Setenv("EXCHANGE_LOG_LEVEL", "debug")
	t.Setenv("EXCHANGE_SYMBOL", "ETH_USDT")

	c := Load()
	if c.Server.Addr != ":8080" {
		t.Fatalf("env override failed for addr, got %s", c.Server.Addr)
	}
	if c.Logging.Level != "debug" {
		t.Fatalf("env override failed for log level, got %s", c.Logging.Level)
	}
	if c.Exchange.Symbol != "ETH_USDT" {
		t.Fatalf("env override failed for symbol, got %s", c.Exchange.Symbol)
	}
}

func TestYAMLFileOverride(t *testing.T) {
	path := t.TempDir() + "/config.yaml"
	data := []byte("server:\n  addr: \":4000\"\nexchange:\n  symbol: SOL_USDT\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("EXCHANGE_CONFIG", path)

	c := Load()
	if c.Server.Addr != ":4000" {
		t.Fatalf("yaml override failed for addr, got %s", c.Server.Addr)
	}
	if c.Exchange.Symbol != "SOL_USDT" {
		t.Fatalf("yaml override failed for symbol, got %s", c.Exchange.Symbol)
	}
}
