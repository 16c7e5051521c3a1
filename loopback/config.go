package loopback

import (
	"fmt"
	"os"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v2"
)

// Config holds the parameters of a loopback datapath. The default tags
// are applied by DefaultConfig, and LoadConfig starts from them.
type Config struct {
	// Entries shorter than this many bytes are copied into the transmit
	// buffer instead of being sent as their own segment.
	CopyingThreshold int `yaml:"copying_threshold" default:"512"`
	// Maximum number of segments of a packet, header segment included.
	MaxScatterGatherEntries int `yaml:"max_scatter_gather_entries" default:"32"`
	// Maximum number of bytes of a packet.
	MaxPacketSize int `yaml:"max_packet_size" default:"9216"`
	// Size and count of the buffers of the registered memory pool. The
	// header and copied entries of a packet are received in one buffer.
	BufferSize int `yaml:"buffer_size" default:"8192"`
	NumBuffers int `yaml:"num_buffers" default:"4096"`
	// Maximum number of packets returned by a single Pop.
	BatchSize int `yaml:"batch_size" default:"32"`
	// Number of packets that can be queued on a connection before Push
	// blocks.
	QueueDepth int `yaml:"queue_depth" default:"1024"`
}

// DefaultConfig returns a configuration with every field set to its
// default value.
func DefaultConfig() Config {
	var c Config
	if err := defaults.Set(&c); err != nil {
		panic(err)
	}
	return c
}

// LoadConfig reads a YAML configuration file. Fields missing from the file
// keep their default value.
func LoadConfig(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return ParseConfig(b)
}

// ParseConfig is like LoadConfig but reads the configuration from b.
func ParseConfig(b []byte) (Config, error) {
	c := DefaultConfig()
	if err := yaml.UnmarshalStrict(b, &c); err != nil {
		return Config{}, fmt.Errorf("loopback config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks that the configuration describes a usable datapath.
func (c *Config) Validate() error {
	switch {
	case c.CopyingThreshold < 0:
		return ErrInvalidConfig.New("copying_threshold must not be negative")
	case c.MaxScatterGatherEntries < 1:
		return ErrInvalidConfig.New("max_scatter_gather_entries must be at least 1")
	case c.BufferSize <= 0 || c.NumBuffers <= 0:
		return ErrInvalidConfig.New("the memory pool must hold at least one buffer")
	case c.MaxPacketSize <= 0:
		return ErrInvalidConfig.New("max_packet_size must be positive")
	case c.BatchSize <= 0 || c.QueueDepth <= 0:
		return ErrInvalidConfig.New("batch_size and queue_depth must be positive")
	}
	return nil
}
