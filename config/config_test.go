package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PARTY_MAX_GUESTS", "")
	t.Setenv("PARTY_DATE", "")
	t.Setenv("NOTIFY_QUEUE", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg := Load()
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "sqlite://birthday_party.db", cfg.DatabaseURL)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver())
	assert.Equal(t, "memory", cfg.NotifyQueue)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	assert.Equal(t, 50, cfg.Party.MaxGuests)
	assert.Equal(t, time.Date(2024, 7, 27, 19, 0, 0, 0, time.UTC), cfg.Party.Date)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("PARTY_MAX_GUESTS", "12")
	t.Setenv("PARTY_DATE", "2025-03-01T18:00:00+02:00")
	t.Setenv("MAIL_USE_TLS", "false")
	t.Setenv("NOTIFY_QUEUE", "KAFKA")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092 ,")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 12, cfg.Party.MaxGuests)
	assert.Equal(t, time.Date(2025, 3, 1, 16, 0, 0, 0, time.UTC), cfg.Party.Date)
	assert.Equal(t, time.UTC, cfg.Party.Date.Location())
	assert.False(t, cfg.MailUseTLS)
	assert.Equal(t, "kafka", cfg.NotifyQueue)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("PARTY_MAX_GUESTS", "lots")
	t.Setenv("PARTY_DATE", "next friday")
	t.Setenv("MAIL_USE_TLS", "maybe")

	cfg := Load()
	assert.Equal(t, 50, cfg.Party.MaxGuests)
	assert.Equal(t, time.Date(2024, 7, 27, 19, 0, 0, 0, time.UTC), cfg.Party.Date)
	assert.True(t, cfg.MailUseTLS)
}

func TestMailConfigured(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want bool
	}{
		{"smtp complete", Config{MailProvider: "smtp", MailServer: "smtp.x", MailUsername: "u", MailPassword: "p"}, true},
		{"smtp missing password", Config{MailProvider: "smtp", MailServer: "smtp.x", MailUsername: "u"}, false},
		{"ses complete", Config{MailProvider: "ses", SESAccessKeyID: "k", SESSecretAccessKey: "s", MailDefaultSender: "a@x.com"}, true},
		{"ses missing sender", Config{MailProvider: "ses", SESAccessKeyID: "k", SESSecretAccessKey: "s"}, false},
		{"noop", Config{MailProvider: "noop", MailServer: "smtp.x", MailUsername: "u", MailPassword: "p"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.MailConfigured())
		})
	}
}

func TestDatabaseDriver(t *testing.T) {
	for url, want := range map[string]string{
		"postgres://u:p@localhost/party":     "postgres",
		"postgresql://localhost/party":       "postgres",
		"host=localhost user=u dbname=party": "postgres",
		"sqlite:///var/lib/party.db":         "sqlite",
		"party.db":                           "sqlite",
		"file:party.db?cache=shared&_fk=1":   "sqlite",
	} {
		assert.Equal(t, want, (&Config{DatabaseURL: url}).DatabaseDriver(), url)
	}
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"http://a.com", "http://b.com"}, splitList(" http://a.com/ ,http://b.com,,"))
}
