package config

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/joho/godotenv"

	"dentaldesk/internal/utils"
)

const (
	DefaultBackendURL = "http://localhost:8000"
	DefaultStubAddr   = ":8000"
	DefaultStubSecret = "your-secret-key-change-this"
)

// Config is the client and stub-server configuration.
type Config struct {
	BackendURL   string
	HomeDir      string
	LogFile      string
	MasterKeyHex string
	StubAddr     string
	StubSecret   string
}

// MasterKeyPath is where cmd/genmasterkey writes the storage key.
func (c Config) MasterKeyPath() string { return filepath.Join(c.HomeDir, "master.key") }

var (
	config     Config
	configOnce sync.Once
)

// Load reads .env (if any) and the environment once per process.
func Load() Config {
	configOnce.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Println("no .env file loaded, using environment")
		}
		config = FromEnv(os.Getenv)
	})
	return config
}

// FromEnv builds a Config from getenv and fills defaults.
func FromEnv(getenv func(string) string) Config {
	c := Config{
		BackendURL:   NormalizeURL(getenv("BACKEND_URL")),
		HomeDir:      getenv("DENTALDESK_HOME"),
		LogFile:      getenv("DENTALDESK_LOG"),
		MasterKeyHex: getenv("MASTER_KEY_HEX"),
		StubAddr:     getenv("STUB_ADDR"),
		StubSecret:   getenv("STUB_SECRET"),
	}
	if c.BackendURL == "" {
		c.BackendURL = DefaultBackendURL
	}
	if c.HomeDir == "" {
		c.HomeDir = utils.DefaultHomeDir()
	}
	if c.LogFile == "" {
		c.LogFile = filepath.Join(c.HomeDir, "client.log")
	}
	if c.StubAddr == "" {
		c.StubAddr = DefaultStubAddr
	}
	if c.StubSecret == "" {
		c.StubSecret = DefaultStubSecret
	}
	return c
}

// NormalizeURL trims whitespace and trailing slashes.
func NormalizeURL(u string) string {
	return strings.TrimRight(strings.TrimSpace(u), "/")
}
