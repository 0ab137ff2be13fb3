package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// DefaultConcurrency keeps the number of simultaneously open repositories under typical file limits.
const DefaultConcurrency = 20

// ErrConfigNotFound is returned by FindConfigFile when no file exists in the default locations.
var ErrConfigNotFound = errors.New("config file not found in default locations")

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// Settings is the complete configuration of one run.
type Settings struct {
	GitDirs             []string      `yaml:"git_dirs"`
	SharePolicy         SharePolicy   `yaml:"share_policy"`
	SSHKeyPath          string        `yaml:"ssh_key_path"`
	DefaultSSH          bool          `yaml:"default_ssh"`
	DefaultPlain        bool          `yaml:"default_plain"`
	DefaultPlainKeyring bool          `yaml:"default_plain_keyring"`
	SSHKeys             []string      `yaml:"ssh_keys"`
	PlainURLs           []string      `yaml:"plain_urls"`
	Concurrency         int           `yaml:"concurrency"`
	MergeStrategy       MergeStrategy `yaml:"merge_strategy"`
	MetricsFile         string        `yaml:"metrics_file"`
	MaxAuthAttempts     int           `yaml:"max_auth_attempts"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() *Settings {
	return &Settings{
		SharePolicy:     DefaultSharePolicy,
		SSHKeyPath:      DefaultSSHKeyPath(),
		Concurrency:     DefaultConcurrency,
		MergeStrategy:   MergeFastForwardOnly,
		MaxAuthAttempts: DefaultMaxAuthAttempts,
	}
}

// DefaultSSHKeyPath is the key assumed when the user does not name one.
func DefaultSSHKeyPath() string {
	return filepath.Join("~", ".ssh", "id_rsa")
}

// NewSettings reads a configuration file on top of the defaults and expands
// ${VAR} references in its string values.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	settings := DefaultSettings()
	if unmarshalErr := yaml.Unmarshal(data, settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	settings.SSHKeyPath = expandEnv(settings.SSHKeyPath)
	settings.MetricsFile = expandEnv(settings.MetricsFile)
	for i := range settings.GitDirs {
		settings.GitDirs[i] = expandEnv(settings.GitDirs[i])
	}
	for i := range settings.SSHKeys {
		settings.SSHKeys[i] = expandEnv(settings.SSHKeys[i])
	}
	for i := range settings.PlainURLs {
		settings.PlainURLs[i] = expandEnv(settings.PlainURLs[i])
	}

	return settings, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or ErrConfigNotFound.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".upgit.yaml",
		".upgit.yml",
		"upgit.yaml",
		"upgit.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", ErrConfigNotFound
}

// Validate checks for required configuration values.
func (it *Settings) Validate() error {
	if len(it.GitDirs) == 0 {
		return errors.New("at least one git directory must be given")
	}
	for i, dir := range it.GitDirs {
		if strings.TrimSpace(dir) == "" {
			return fmt.Errorf("git_dirs[%d] must not be empty", i)
		}
	}
	if _, ok := sharePolicyNames[it.SharePolicy]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownSharePolicy, int(it.SharePolicy))
	}
	if _, err := ParseMergeStrategy(string(it.MergeStrategy)); err != nil {
		return err
	}
	if it.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive, got %d", it.Concurrency)
	}
	if it.MaxAuthAttempts <= 0 {
		return fmt.Errorf("max_auth_attempts must be positive, got %d", it.MaxAuthAttempts)
	}
	if it.DefaultPlain && it.DefaultPlainKeyring {
		return errors.New("default_plain and default_plain_keyring are mutually exclusive")
	}
	return nil
}

// UnmarshalYAML reads a policy by name.
func (it *SharePolicy) UnmarshalYAML(value *yaml.Node) error {
	policy, err := ParseSharePolicy(value.Value)
	if err != nil {
		return err
	}
	*it = policy
	return nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		logger.Warnf("Cannot expand %q: %v", path, err)
		return path
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
}

// expandEnv expands environment variable references (${VAR}).
func expandEnv(raw string) string {
	if raw == "" {
		return raw
	}

	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}
