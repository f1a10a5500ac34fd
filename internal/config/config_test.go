package config

import (
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	// Loan-specific knobs must have safe defaults when the env is empty.
	c := Load()
	if c.AppPort == "" {
		t.Fatal("AppPort default missing")
	}
	if c.DefaultCreditLimit != 5000 {
		t.Fatalf("DefaultCreditLimit = %v, want 5000", c.DefaultCreditLimit)
	}
	if c.NotifyTimeoutSec != 2 {
		t.Fatalf("NotifyTimeoutSec = %d, want 2", c.NotifyTimeoutSec)
	}
	if c.IdempTTLSecs != 300 {
		t.Fatalf("IdempTTLSecs = %d, want 300", c.IdempTTLSecs)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STORE", "mysql")
	t.Setenv("DEFAULT_CREDIT_LIMIT", "12000")
	t.Setenv("NOTIFY_TIMEOUT_SECONDS", "5")
	t.Setenv("REDIS_DB", "3")

	c := Load()
	if c.Store != "mysql" {
		t.Fatalf("Store = %q", c.Store)
	}
	if c.DefaultCreditLimit != 12000 {
		t.Fatalf("DefaultCreditLimit = %v", c.DefaultCreditLimit)
	}
	if c.NotifyTimeoutSec != 5 {
		t.Fatalf("NotifyTimeoutSec = %d", c.NotifyTimeoutSec)
	}
	if c.RedisDB != 3 {
		t.Fatalf("RedisDB = %d", c.RedisDB)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			AppPort:   "8080",
			Store:     "memory",
			AuthSecret: "s3cret",
			MySQLHost: "mysql", MySQLPort: "3306", MySQLDB: "agrifund", MySQLUser: "agrifund",
		}
	}

	if err := base().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	c := base()
	c.AuthSecret = ""
	if err := c.Validate(); err == nil {
		t.Fatal("missing AUTH_SECRET accepted")
	}

	c = base()
	c.Store = "postgres"
	if err := c.Validate(); err == nil || !strings.Contains(err.Error(), "unknown STORE") {
		t.Fatalf("unknown store err = %v", err)
	}

	c = base()
	c.Store = "mysql"
	c.MySQLPort = "notaport"
	if err := c.Validate(); err == nil {
		t.Fatal("invalid MYSQL_PORT accepted")
	}
}

func TestMySQLDSN(t *testing.T) {
	c := &Config{MySQLHost: "db", MySQLPort: "3306", MySQLDB: "agrifund", MySQLUser: "u", MySQLPass: "p"}
	dsn := c.MySQLDSN()
	if !strings.HasPrefix(dsn, "u:p@tcp(db:3306)/agrifund?") {
		t.Fatalf("dsn = %q", dsn)
	}
	if !strings.Contains(dsn, "parseTime=true") {
		t.Fatalf("dsn missing parseTime: %q", dsn)
	}
}
