package loopback

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	assert.Equal(t, Config{
		CopyingThreshold:        512,
		MaxScatterGatherEntries: 32,
		MaxPacketSize:           9216,
		BufferSize:              8192,
		NumBuffers:              4096,
		BatchSize:               32,
		QueueDepth:              1024,
	}, c)
	assert.NoError(t, c.Validate())
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loopback.yaml")
	require.NoError(t, os.WriteFile(path, []byte("copying_threshold: 64\nmax_scatter_gather_entries: 4\n"), 0644))

	c, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 64, c.CopyingThreshold)
	assert.Equal(t, 4, c.MaxScatterGatherEntries)
	assert.Equal(t, 8192, c.BufferSize, "missing fields keep their default")
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		scenario string
		config   string
	}{
		{scenario: "unknown field", config: "copy_threshold: 12\n"},
		{scenario: "negative threshold", config: "copying_threshold: -1\n"},
		{scenario: "bad type", config: "batch_size: many\n"},
	}
	for _, test := range tests {
		t.Run(test.scenario, func(t *testing.T) {
			_, err := ParseConfig([]byte(test.config))
			assert.Error(t, err)
		})
	}

	_, err := ParseConfig([]byte("copying_threshold: -1\n"))
	assert.True(t, ErrInvalidConfig.Is(err))
}
