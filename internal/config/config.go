package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeStdio  = "stdio"
	ModeServer = "server"

	// Default values
	DefaultPort          = 8000
	DefaultHost          = "127.0.0.1"
	DefaultLogLevel      = "info"
	DefaultMaxUploadSize = 50 * 1024 * 1024 // 50MB per uploaded document

	// DefaultOfficeAddress is the address block printed at the top of the
	// reply letter when the request does not supply one.
	DefaultOfficeAddress = "THE PATENT OFFICE\nI.P.O BUILDING\nG.S.T.Road, Guindy\nChennai - [PIN]"
)

// Config holds all configuration for the FER reply server
type Config struct {
	// Server configuration
	Mode string // "server" for HTTP, "stdio" for the MCP tool surface
	Host string
	Port int

	// Drafting configuration
	AgentName     string // default signature on generated replies
	OfficeAddress string // default patent-office address block

	// Application configuration
	Version       string
	ServerName    string
	LogLevel      string
	MaxUploadSize int64 // Maximum uploaded document size in bytes
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Mode:          ModeServer,
		Host:          DefaultHost,
		Port:          DefaultPort,
		AgentName:     "",
		OfficeAddress: DefaultOfficeAddress,
		Version:       "1.0.0",
		ServerName:    "fer-reply",
		LogLevel:      DefaultLogLevel,
		MaxUploadSize: DefaultMaxUploadSize,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("FER_REPLY")
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("host", cfg.Host)
	viper.SetDefault("port", cfg.Port)
	viper.SetDefault("agent", cfg.AgentName)
	viper.SetDefault("officeaddress", cfg.OfficeAddress)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxuploadsize", cfg.MaxUploadSize)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Run mode: 'server' for HTTP API, 'stdio' for MCP standard I/O")
	pflag.String("host", cfg.Host, "Server host address (server mode only)")
	pflag.Int("port", cfg.Port, "Server port (server mode only)")
	pflag.String("agent", cfg.AgentName, "Default patent agent name used in the signature block")
	pflag.String("officeaddress", cfg.OfficeAddress, "Default patent office address block")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxuploadsize", cfg.MaxUploadSize, "Maximum uploaded document size in bytes")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("mode", pflag.Lookup("mode"))
	_ = viper.BindPFlag("host", pflag.Lookup("host"))
	_ = viper.BindPFlag("port", pflag.Lookup("port"))
	_ = viper.BindPFlag("agent", pflag.Lookup("agent"))
	_ = viper.BindPFlag("officeaddress", pflag.Lookup("officeaddress"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxuploadsize", pflag.Lookup("maxuploadsize"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nFER Reply Server - drafts patent FER reply documents from office PDFs\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                  # HTTP server on 127.0.0.1:8000\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --host=0.0.0.0 --port=8080       # HTTP server on all interfaces\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=stdio                     # MCP tool surface over stdio\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  FER_REPLY_MODE           Run mode\n")
		fmt.Fprintf(os.Stderr, "  FER_REPLY_HOST           Server host\n")
		fmt.Fprintf(os.Stderr, "  FER_REPLY_PORT           Server port\n")
		fmt.Fprintf(os.Stderr, "  FER_REPLY_AGENT          Default patent agent name\n")
		fmt.Fprintf(os.Stderr, "  FER_REPLY_OFFICEADDRESS  Default office address block\n")
		fmt.Fprintf(os.Stderr, "  FER_REPLY_LOGLEVEL       Log level\n")
		fmt.Fprintf(os.Stderr, "  FER_REPLY_MAXUPLOADSIZE  Maximum upload size\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.Host = viper.GetString("host")
	cfg.Port = viper.GetInt("port")
	cfg.AgentName = viper.GetString("agent")
	cfg.OfficeAddress = viper.GetString("officeaddress")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxUploadSize = viper.GetInt64("maxuploadsize")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Mode != ModeStdio && c.Mode != ModeServer {
		return errors.New("mode must be either 'stdio' or 'server'")
	}

	if c.Mode == ModeServer && (c.Port < 1 || c.Port > 65535) {
		return errors.New("port must be between 1 and 65535")
	}

	if c.MaxUploadSize <= 0 {
		return errors.New("maximum upload size must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// Address returns the server address as host:port
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Host: %s, Port: %d, LogLevel: %s, MaxUploadSize: %d}",
		c.Mode, c.Host, c.Port, c.LogLevel, c.MaxUploadSize)
}

// IsServerMode returns true if running as an HTTP server
func (c *Config) IsServerMode() bool {
	return c.Mode == ModeServer
}

// IsStdioMode returns true if running the MCP tool surface over stdio
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}
