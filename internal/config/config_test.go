package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

// Tests in this file change the process environment, they must not run in
// parallel.

func TestInitConfig(t *testing.T) {
	datadir := t.TempDir()
	t.Setenv("ESCROW_DATADIR", datadir)
	t.Setenv("ESCROW_OWNER_ADDRESS", "0xa00000000000000000000000000000000000000a")

	require.NoError(t, InitConfig())

	require.Equal(t, 9080, GetInt(ListeningPortKey))
	require.Equal(t, 4, GetInt(LogLevelKey))
	require.Equal(t, "badger", GetString(DBTypeKey))
	require.Equal(t, 15*time.Second, GetSeconds(WebhookTimeoutKey))
	require.Equal(
		t, common.HexToAddress("0xa00000000000000000000000000000000000000a"),
		GetAddress(OwnerAddressKey),
	)
	require.Equal(t, common.HexToAddress(defaultEscrowAddress), GetAddress(EscrowAddressKey))

	_, err := os.Stat(filepath.Join(datadir, DbLocation))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(datadir, ProfilerLocation))
	require.NoError(t, err)
}

func TestFailingInitConfig(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unsupported_db_type", "ESCROW_DB_TYPE", "pg"},
		{"invalid_owner_address", "ESCROW_OWNER_ADDRESS", "owner"},
		{"zero_escrow_address", "ESCROW_ESCROW_ADDRESS", "0x0000000000000000000000000000000000000000"},
		{"invalid_port", "ESCROW_LISTENING_PORT", "70000"},
		{"negative_stats_interval", "ESCROW_STATS_INTERVAL", "-1"},
		{"zero_webhook_timeout", "ESCROW_WEBHOOK_TIMEOUT", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ESCROW_DATADIR", t.TempDir())
			t.Setenv(tt.key, tt.value)

			require.Error(t, InitConfig())
		})
	}
}
