package config

import (
	"testing"
	"time"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("SMS_GATEWAY_ADDRESS", "")
	t.Setenv("API_SEND_TIMEOUT", "")
	t.Setenv("BUS_REPLY_TTL", "")

	cfg := New()

	if cfg.Gateway.Address != "appsist:service:sms" {
		t.Errorf("Gateway.Address = %q, want %q", cfg.Gateway.Address, "appsist:service:sms")
	}
	if cfg.API.SendTimeout != 10*time.Second {
		t.Errorf("API.SendTimeout = %s", cfg.API.SendTimeout)
	}
	if cfg.Bus.ReplyTTL != 5*time.Minute {
		t.Errorf("Bus.ReplyTTL = %s", cfg.Bus.ReplyTTL)
	}
}

func TestNew_EnvOverrides(t *testing.T) {
	t.Setenv("SMS_GATEWAY_ADDRESS", " staging:service:sms ")
	t.Setenv("API_SEND_TIMEOUT", "3s")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("BUS_POLL_INTERVAL", "not-a-duration")

	cfg := New()

	if cfg.Gateway.Address != "staging:service:sms" {
		t.Errorf("Gateway.Address = %q", cfg.Gateway.Address)
	}
	if cfg.API.SendTimeout != 3*time.Second {
		t.Errorf("API.SendTimeout = %s", cfg.API.SendTimeout)
	}
	if cfg.Redis.DB != 2 {
		t.Errorf("Redis.DB = %d", cfg.Redis.DB)
	}
	if cfg.Bus.PollInterval != time.Second {
		t.Errorf("invalid duration should fall back to default, got %s", cfg.Bus.PollInterval)
	}
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{}
	cfg.DB.Host = "localhost"
	cfg.DB.Port = 5432
	cfg.DB.User = "u"
	cfg.DB.Password = "p"
	cfg.DB.Name = "n"
	cfg.DB.SSLMode = "disable"

	want := "host=localhost port=5432 user=u password=p dbname=n sslmode=disable"
	if got := cfg.PostgresDSN(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
