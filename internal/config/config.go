package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/viper"
	"github.com/tdex-network/tdex-escrow/internal/core/application"
)

const (
	// ListeningPortKey is the port where the HTTP interface will listen on
	ListeningPortKey = "LISTENING_PORT"
	// DatadirKey is the local data directory to store the internal state of daemon
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// DBTypeKey is used to switch database type between those supported
	DBTypeKey = "DB_TYPE"
	// OwnerAddressKey is the owner of the registry, used to initialize it at
	// first startup
	OwnerAddressKey = "OWNER_ADDRESS"
	// EscrowAddressKey is the custody account holding the escrowed funds
	EscrowAddressKey = "ESCROW_ADDRESS"
	// StatsIntervalKey defines the interval in seconds for logging memory
	// statistics. Zero disables them
	StatsIntervalKey = "STATS_INTERVAL"
	// WebhookTimeoutKey are the seconds to wait for a webhook endpoint to
	// reply before timing out
	WebhookTimeoutKey = "WEBHOOK_TIMEOUT"

	DbLocation       = "db"
	ProfilerLocation = "stats"

	defaultEscrowAddress = "0x000000000000000000000000000000000000e5c0"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("escrowd", false)

func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("ESCROW")
	vip.AutomaticEnv()

	vip.SetDefault(ListeningPortKey, 9080)
	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(DBTypeKey, application.DBBadger)
	vip.SetDefault(EscrowAddressKey, defaultEscrowAddress)
	vip.SetDefault(StatsIntervalKey, 600)
	vip.SetDefault(WebhookTimeoutKey, 15)

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	if err := initDatadir(); err != nil {
		return fmt.Errorf("error while creating datadir: %s", err)
	}

	return nil
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetBool(key string) bool {
	return vip.GetBool(key)
}

func GetDuration(key string) time.Duration {
	return vip.GetDuration(key)
}

// GetSeconds returns the integer value of the key as a duration in seconds.
func GetSeconds(key string) time.Duration {
	return time.Duration(vip.GetInt(key)) * time.Second
}

// GetAddress returns the address for the given key, the zero one if not set.
func GetAddress(key string) common.Address {
	return common.HexToAddress(vip.GetString(key))
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

// Set a value for the given key
func Set(key string, value interface{}) {
	vip.Set(key, value)
}

// IsSet returns whether the give key is set
func IsSet(key string) bool {
	return vip.IsSet(key)
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("missing datadir")
	}

	dbType := GetString(DBTypeKey)
	if _, ok := application.SupportedDBType[dbType]; !ok {
		return fmt.Errorf("unsupported db type %s", dbType)
	}

	for _, key := range []string{EscrowAddressKey, OwnerAddressKey} {
		if !vip.IsSet(key) {
			continue
		}
		addr := GetString(key)
		if !common.IsHexAddress(addr) {
			return fmt.Errorf("%s is not a valid address", key)
		}
		if common.HexToAddress(addr) == (common.Address{}) {
			return fmt.Errorf("%s must not be the zero address", key)
		}
	}

	port := GetInt(ListeningPortKey)
	if port <= 0 || port > 65535 {
		return fmt.Errorf("%s must be in range (0, 65535]", ListeningPortKey)
	}
	if GetInt(StatsIntervalKey) < 0 {
		return fmt.Errorf("%s must not be negative", StatsIntervalKey)
	}
	if GetInt(WebhookTimeoutKey) <= 0 {
		return fmt.Errorf("%s must be a positive number", WebhookTimeoutKey)
	}
	return nil
}

func initDatadir() error {
	datadir := GetDatadir()
	if err := makeDirectoryIfNotExists(filepath.Join(datadir, DbLocation)); err != nil {
		return err
	}
	if GetInt(StatsIntervalKey) > 0 {
		if err := makeDirectoryIfNotExists(filepath.Join(datadir, ProfilerLocation)); err != nil {
			return err
		}
	}
	return nil
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
