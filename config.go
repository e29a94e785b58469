package sentimen

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const defaultConfigFile = "sentimen.json"

// DefaultCacheTTL bounds how long a normalized comment stays cached when the
// config sets no TTL.
const DefaultCacheTTL = 10 * time.Minute

// Config describes where artifacts live and how the analyzer is assembled.
type Config struct {
	ArtifactDir    string    `json:"artifactDir"`
	ModelFile      string    `json:"modelFile"`
	VectorizerFile string    `json:"vectorizerFile"`
	DictionaryFile string    `json:"dictionaryFile,omitempty"`
	ExtraRootWords []string  `json:"extraRootWords,omitempty"`
	DisableCache   bool      `json:"disableCache"`
	CacheTTL       string    `json:"cacheTTL,omitempty"` // Go duration; "0" keeps entries forever.
	Log            LogConfig `json:"log"`
}

// DefaultConfig returns a Config with every default applied.
func DefaultConfig() Config {
	var cfg Config
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults populates zero values with defaults.
func (c *Config) ApplyDefaults() {
	if c.ArtifactDir == "" {
		c.ArtifactDir = "."
	}
	if c.ModelFile == "" {
		c.ModelFile = DefaultModelFile
	}
	if c.VectorizerFile == "" {
		c.VectorizerFile = DefaultVectorizerFile
	}
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	buf, _ := json.Marshal(c)
	var out Config
	_ = json.Unmarshal(buf, &out)
	return out
}

// CacheDuration parses CacheTTL. An empty value yields DefaultCacheTTL.
func (c Config) CacheDuration() (time.Duration, error) {
	if c.CacheTTL == "" {
		return DefaultCacheTTL, nil
	}
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return 0, fmt.Errorf("cacheTTL: %w", err)
	}
	return d, nil
}

// ApplyEnv overlays SENTIMEN_* variables found through lookup, usually
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("SENTIMEN_ARTIFACT_DIR"); ok && v != "" {
		c.ArtifactDir = v
	}
	if v, ok := lookup("SENTIMEN_MODEL_FILE"); ok && v != "" {
		c.ModelFile = v
	}
	if v, ok := lookup("SENTIMEN_VECTORIZER_FILE"); ok && v != "" {
		c.VectorizerFile = v
	}
	if v, ok := lookup("SENTIMEN_DICTIONARY_FILE"); ok && v != "" {
		c.DictionaryFile = v
	}
	if v, ok := lookup("SENTIMEN_CACHE_TTL"); ok && v != "" {
		c.CacheTTL = v
	}
	if v, ok := lookup("SENTIMEN_DISABLE_CACHE"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("SENTIMEN_DISABLE_CACHE: %w", err)
		}
		c.DisableCache = b
	}
	if v, ok := lookup("SENTIMEN_LOG_FORMAT"); ok && v != "" {
		c.Log.JSON = strings.EqualFold(v, "json")
	}
	return nil
}

// LoadConfig loads configuration from path, or sentimen.json when path is
// empty. A missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		path = defaultConfigFile
	}
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.ApplyDefaults()
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// SaveConfig persists configuration to disk.
func SaveConfig(path string, cfg Config) error {
	if path == "" {
		path = defaultConfigFile
	}
	tmp := path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	cfg.ApplyDefaults()
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}
