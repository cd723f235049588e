package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLConfig represents the structure of the config.yaml file.
// Lists are easier to manage in YAML than in env vars.
type YAMLConfig struct {
	Segmenter SegmenterConfig `yaml:"segmenter"`
	Stopwords []string        `yaml:"stopwords"`
	Charts    ChartsConfig    `yaml:"charts"`
}

// SegmenterConfig extends the built-in dictionary.
type SegmenterConfig struct {
	UserWords []string `yaml:"user_words"` // Always kept together by the segmenter
}

// ChartsConfig holds presentation overrides.
type ChartsConfig struct {
	Titles map[string]string `yaml:"titles"` // Chart kind -> title
}

// LoadYAMLConfig loads the YAML configuration file.
// Path is determined by CONFIG_FILE env var, defaulting to "config.yaml".
// Returns nil without error if the config file doesn't exist.
func LoadYAMLConfig() (*YAMLConfig, error) {
	return LoadYAMLConfigFile(getEnv("CONFIG_FILE", "config.yaml"))
}

// LoadYAMLConfigFile loads the YAML configuration from an explicit path.
func LoadYAMLConfigFile(path string) (*YAMLConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return nil, nil
		}
		return nil, err
	}

	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// UserWords returns the extra dictionary entries, nil-safe.
func (c *YAMLConfig) UserWords() []string {
	if c == nil {
		return nil
	}
	return c.Segmenter.UserWords
}

// StopwordSet returns the configured stopwords as a set, nil-safe.
func (c *YAMLConfig) StopwordSet() map[string]struct{} {
	if c == nil || len(c.Stopwords) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(c.Stopwords))
	for _, w := range c.Stopwords {
		set[w] = struct{}{}
	}
	return set
}

// ChartTitle returns the title override for a chart kind, or "".
func (c *YAMLConfig) ChartTitle(kind string) string {
	if c == nil || c.Charts.Titles == nil {
		return ""
	}
	return c.Charts.Titles[kind]
}
