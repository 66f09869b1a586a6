package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnvDefaults(t *testing.T) {
	c := FromEnv(envMap(nil))
	assert.Equal(t, DefaultBackendURL, c.BackendURL)
	assert.Equal(t, DefaultStubAddr, c.StubAddr)
	assert.Equal(t, DefaultStubSecret, c.StubSecret)
	assert.NotEmpty(t, c.HomeDir)
	assert.Equal(t, filepath.Join(c.HomeDir, "client.log"), c.LogFile)
}

func TestFromEnvOverrides(t *testing.T) {
	c := FromEnv(envMap(map[string]string{
		"BACKEND_URL":     " https://api.example.com/ ",
		"DENTALDESK_HOME": "/tmp/dd",
		"MASTER_KEY_HEX":  "00ff",
		"STUB_ADDR":       ":9999",
	}))
	assert.Equal(t, "https://api.example.com", c.BackendURL)
	assert.Equal(t, "/tmp/dd", c.HomeDir)
	assert.Equal(t, "/tmp/dd/client.log", c.LogFile)
	assert.Equal(t, "/tmp/dd/master.key", c.MasterKeyPath())
	assert.Equal(t, "00ff", c.MasterKeyHex)
	assert.Equal(t, ":9999", c.StubAddr)
}
