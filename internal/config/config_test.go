package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("does-not-exist.env")
	require.NoError(t, err)
	require.Equal(t, 24*time.Hour, cfg.IdempotencyTTL)
	require.Len(t, cfg.AnalysisServices(), 3)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_NAME", "shop")
	t.Setenv("BOOK_CACHE_TTL", "5m")

	cfg, err := Load("does-not-exist.env")
	require.NoError(t, err)
	require.Equal(t, "9000", cfg.Port)
	require.Equal(t, 5*time.Minute, cfg.BookCacheTTL)
	require.Equal(t, "root:@tcp(127.0.0.1:3306)/shop?parseTime=true&clientFoundRows=true", cfg.DSN())
}

func TestBrokerList(t *testing.T) {
	require.Equal(t, []string{"a:1", "b:2"}, brokerList("a:1, b:2"))
}
