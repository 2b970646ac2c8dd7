package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // Maximum amount of time a connection may be reused (e.g., "5m", "1h")
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // Maximum amount of time a connection may be idle (e.g., "10m", "30m")
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// EthereumConfig holds Ethereum-specific configuration
type EthereumConfig struct {
	RPCURL           string `mapstructure:"rpc_url"`
	ChainID          int64  `mapstructure:"chain_id"`
	ContractAddress  string `mapstructure:"contract_address"`
	SignerPrivateKey string `mapstructure:"signer_private_key"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// SessionConfig holds wallet session configuration
type SessionConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
	NonceTTL  time.Duration `mapstructure:"nonce_ttl"`
}

// CloudflareConfig holds Cloudflare Images configuration
type CloudflareConfig struct {
	AccountID string `mapstructure:"account_id"`
	APIToken  string `mapstructure:"api_token"`
	// DeliveryBaseURL is the public imagedelivery.net base for uploaded variants
	DeliveryBaseURL string `mapstructure:"delivery_base_url"`
}

// UploadLimitsConfig holds upload validation settings
type UploadLimitsConfig struct {
	MaxImageSize int64 `mapstructure:"max_image_size"` // in bytes
}

// VotingRulesConfig holds the voting rules
type VotingRulesConfig struct {
	// MinBalanceWei gates voting on a minimum native balance. Empty disables the gate.
	MinBalanceWei string `mapstructure:"min_balance_wei"`
	FeaturedLimit int    `mapstructure:"featured_limit"`
}

// MintRulesConfig holds the minting rules
type MintRulesConfig struct {
	VoteThreshold  int64         `mapstructure:"vote_threshold"`
	AdminToken     string        `mapstructure:"admin_token"`
	ReceiptTimeout time.Duration `mapstructure:"receipt_timeout"`
}

// AuthServiceConfig holds configuration for the auth service
type AuthServiceConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig   `mapstructure:"server"`
	Database   DatabaseConfig `mapstructure:"database"`
	Redis      RedisConfig    `mapstructure:"redis"`
	Session    SessionConfig  `mapstructure:"session"`
}

// UploadServiceConfig holds configuration for the upload service
type UploadServiceConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig       `mapstructure:"server"`
	Database   DatabaseConfig     `mapstructure:"database"`
	Session    SessionConfig      `mapstructure:"session"`
	Cloudflare CloudflareConfig   `mapstructure:"cloudflare"`
	Upload     UploadLimitsConfig `mapstructure:"upload"`
}

// VotingServiceConfig holds configuration for the voting service
type VotingServiceConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig      `mapstructure:"server"`
	Database   DatabaseConfig    `mapstructure:"database"`
	Session    SessionConfig     `mapstructure:"session"`
	Ethereum   EthereumConfig    `mapstructure:"ethereum"`
	Voting     VotingRulesConfig `mapstructure:"voting"`
}

// MintServiceConfig holds configuration for the mint service
type MintServiceConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig    `mapstructure:"server"`
	Database   DatabaseConfig  `mapstructure:"database"`
	Ethereum   EthereumConfig  `mapstructure:"ethereum"`
	Mint       MintRulesConfig `mapstructure:"mint"`
}

// MetadataServiceConfig holds configuration for the metadata service
type MetadataServiceConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig   `mapstructure:"server"`
	Database   DatabaseConfig `mapstructure:"database"`
}

// LoadAuthServiceConfig loads configuration for the auth service
func LoadAuthServiceConfig(configFile string, envPath string) (*AuthServiceConfig, error) {
	v := configureViper("auth", configFile, envPath)

	// Set defaults
	setServerDefaults(v, 8084)
	setDatabaseDefaults(v)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("session.token_ttl", "24h")
	v.SetDefault("session.nonce_ttl", "5m")

	if err := readInConfig(v); err != nil {
		return nil, err
	}

	var config AuthServiceConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Session.JWTSecret == "" {
		return nil, errors.New("session.jwt_secret is required")
	}

	return &config, nil
}

// LoadUploadServiceConfig loads configuration for the upload service
func LoadUploadServiceConfig(configFile string, envPath string) (*UploadServiceConfig, error) {
	v := configureViper("upload", configFile, envPath)

	// Set defaults
	setServerDefaults(v, 8081)
	setDatabaseDefaults(v)
	v.SetDefault("session.token_ttl", "24h")
	v.SetDefault("upload.max_image_size", 10*1024*1024) // 10MB

	if err := readInConfig(v); err != nil {
		return nil, err
	}

	var config UploadServiceConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Session.JWTSecret == "" {
		return nil, errors.New("session.jwt_secret is required")
	}

	return &config, nil
}

// LoadVotingServiceConfig loads configuration for the voting service
func LoadVotingServiceConfig(configFile string, envPath string) (*VotingServiceConfig, error) {
	v := configureViper("voting", configFile, envPath)

	// Set defaults
	setServerDefaults(v, 8082)
	setDatabaseDefaults(v)
	v.SetDefault("session.token_ttl", "24h")
	v.SetDefault("ethereum.chain_id", 1)
	v.SetDefault("voting.featured_limit", 3)

	if err := readInConfig(v); err != nil {
		return nil, err
	}

	var config VotingServiceConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Session.JWTSecret == "" {
		return nil, errors.New("session.jwt_secret is required")
	}

	return &config, nil
}

// LoadMintServiceConfig loads configuration for the mint service
func LoadMintServiceConfig(configFile string, envPath string) (*MintServiceConfig, error) {
	v := configureViper("mint", configFile, envPath)

	// Set defaults
	setServerDefaults(v, 8083)
	setDatabaseDefaults(v)
	v.SetDefault("ethereum.chain_id", 1)
	v.SetDefault("mint.vote_threshold", 10)
	v.SetDefault("mint.receipt_timeout", "2m")

	if err := readInConfig(v); err != nil {
		return nil, err
	}

	var config MintServiceConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Mint.AdminToken == "" {
		return nil, errors.New("mint.admin_token is required")
	}
	if config.Ethereum.ContractAddress == "" {
		return nil, errors.New("ethereum.contract_address is required")
	}

	return &config, nil
}

// LoadMetadataServiceConfig loads configuration for the metadata service
func LoadMetadataServiceConfig(configFile string, envPath string) (*MetadataServiceConfig, error) {
	v := configureViper("metadata", configFile, envPath)

	// Set defaults
	setServerDefaults(v, 8085)
	setDatabaseDefaults(v)

	if err := readInConfig(v); err != nil {
		return nil, err
	}

	var config MetadataServiceConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setServerDefaults(v *viper.Viper, port int) {
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", port)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)
}

func setDatabaseDefaults(v *viper.Viper) {
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
}

func readInConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/voting/, cmd/mint/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("AETHERIA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	commonKeys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// Redis
		"redis.addr",
		"redis.password",
		"redis.db",
		// Ethereum
		"ethereum.rpc_url",
		"ethereum.chain_id",
		"ethereum.contract_address",
		"ethereum.signer_private_key",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Session
		"session.jwt_secret",
		"session.token_ttl",
		"session.nonce_ttl",
		// Cloudflare
		"cloudflare.account_id",
		"cloudflare.api_token",
		"cloudflare.delivery_base_url",
		// Upload
		"upload.max_image_size",
		// Voting
		"voting.min_balance_wei",
		"voting.featured_limit",
		// Mint
		"mint.vote_threshold",
		"mint.admin_token",
		"mint.receipt_timeout",
	}

	for _, key := range commonKeys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
