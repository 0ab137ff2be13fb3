package controllers

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/rios0rios0/upgit/internal/domain/entities"
	"github.com/rios0rios0/upgit/internal/domain/repositories"
)

// EnvPrefix namespaces the environment variables upgit reads.
const EnvPrefix = "UPGIT"

// ErrNoGitDirs is returned when no directory is configured and none was typed in.
var ErrNoGitDirs = errors.New("no git directories given")

const (
	flagConfig              = "config"
	flagVerbose             = "verbose"
	flagShare               = "share"
	flagSSHKeyPath          = "ssh-key-path"
	flagDefaultSSH          = "default-ssh"
	flagDefaultPlain        = "default-plain"
	flagDefaultPlainKeyring = "default-plain-keyring"
	flagSSH                 = "ssh"
	flagPlain               = "plain"
	flagConcurrency         = "concurrency"
	flagMerge               = "merge"
	flagMetricsFile         = "metrics-file"
	flagMaxAuthAttempts     = "max-auth-attempts"
	keyGitDirs              = "git-dirs"
)

// SettingsLoader builds the settings of a run. Sources, lowest precedence
// first: the YAML file, a .env file, UPGIT_* variables, command-line flags.
type SettingsLoader struct {
	prompter repositories.PromptRepository
	envFiles []string
}

// NewSettingsLoader creates a loader reading .env from the working directory.
func NewSettingsLoader(prompter repositories.PromptRepository) *SettingsLoader {
	return &SettingsLoader{prompter: prompter, envFiles: []string{".env"}}
}

// AddPersistentFlags adds the flags shared by every subcommand.
func AddPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP(flagConfig, "c", "", "Path to config file (default: auto-detect)")
	cmd.PersistentFlags().BoolP(flagVerbose, "v", false, "Enable verbose output")
}

// Load reads the configuration file and overlays the environment, flags and
// positional directories on top of it.
func (it *SettingsLoader) Load(cmd *cobra.Command, args []string) (*entities.Settings, error) {
	it.loadEnvFiles()

	settings, err := loadConfigFile(cmd)
	if err != nil {
		return nil, err
	}

	if err = overlay(settings, cmd.Flags()); err != nil {
		return nil, err
	}
	if len(args) > 0 {
		settings.GitDirs = args
	}
	return settings, nil
}

// EnsureGitDirs asks for the directories when none were configured and makes them absolute.
func (it *SettingsLoader) EnsureGitDirs(settings *entities.Settings) error {
	if len(settings.GitDirs) == 0 {
		answer, err := it.prompter.ReadLine(
			"Git directories were not provided via $UPGIT_GIT_DIRS or CLI. Provide space separated list: ",
		)
		if err != nil {
			return fmt.Errorf("failed to read git directories: %w", err)
		}
		settings.GitDirs = strings.Fields(answer)
		if len(settings.GitDirs) == 0 {
			return ErrNoGitDirs
		}
	}

	for i, dir := range settings.GitDirs {
		absolute, err := filepath.Abs(entities.ExpandHome(dir))
		if err != nil {
			return fmt.Errorf("failed to resolve %q: %w", dir, err)
		}
		settings.GitDirs[i] = absolute
	}
	return nil
}

func (it *SettingsLoader) loadEnvFiles() {
	for _, envFile := range it.envFiles {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			logger.Warnf("Ignoring %s: %v", envFile, err)
		}
	}
}

func loadConfigFile(cmd *cobra.Command) (*entities.Settings, error) {
	configPath, _ := cmd.Flags().GetString(flagConfig)
	if configPath == "" {
		found, err := entities.FindConfigFile()
		if err != nil {
			logger.Debugf("No config file found, using defaults")
			return entities.DefaultSettings(), nil
		}
		configPath = found
	}

	logger.Debugf("Using config file: %s", configPath)
	settings, err := entities.NewSettings(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return settings, nil
}

// overlay applies every UPGIT_* variable and every flag the user actually set.
func overlay(settings *entities.Settings, flags *pflag.FlagSet) error {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for _, key := range []string{
		flagShare, flagSSHKeyPath, flagDefaultSSH, flagDefaultPlain, flagDefaultPlainKeyring,
		flagSSH, flagPlain, flagConcurrency, flagMerge, flagMetricsFile, flagMaxAuthAttempts,
	} {
		if flag := flags.Lookup(key); flag != nil {
			if err := v.BindPFlag(key, flag); err != nil {
				return fmt.Errorf("failed to bind --%s: %w", key, err)
			}
		}
	}

	if v.IsSet(keyGitDirs) {
		settings.GitDirs = splitList(v.GetString(keyGitDirs))
	}
	if v.IsSet(flagShare) {
		policy, err := entities.ParseSharePolicy(v.GetString(flagShare))
		if err != nil {
			return err
		}
		settings.SharePolicy = policy
	}
	if v.IsSet(flagSSHKeyPath) {
		settings.SSHKeyPath = v.GetString(flagSSHKeyPath)
	}
	if v.IsSet(flagDefaultSSH) {
		settings.DefaultSSH = v.GetBool(flagDefaultSSH)
	}
	if v.IsSet(flagDefaultPlain) {
		settings.DefaultPlain = v.GetBool(flagDefaultPlain)
	}
	if v.IsSet(flagDefaultPlainKeyring) {
		settings.DefaultPlainKeyring = v.GetBool(flagDefaultPlainKeyring)
	}
	if v.IsSet(flagSSH) {
		settings.SSHKeys = listValue(v, flags, flagSSH)
	}
	if v.IsSet(flagPlain) {
		settings.PlainURLs = listValue(v, flags, flagPlain)
	}
	if v.IsSet(flagConcurrency) {
		settings.Concurrency = v.GetInt(flagConcurrency)
	}
	if v.IsSet(flagMerge) {
		strategy, err := entities.ParseMergeStrategy(v.GetString(flagMerge))
		if err != nil {
			return err
		}
		settings.MergeStrategy = strategy
	}
	if v.IsSet(flagMetricsFile) {
		settings.MetricsFile = v.GetString(flagMetricsFile)
	}
	if v.IsSet(flagMaxAuthAttempts) {
		settings.MaxAuthAttempts = v.GetInt(flagMaxAuthAttempts)
	}
	return nil
}

// listValue reads repeatable flags as given and environment lists as comma separated.
func listValue(v *viper.Viper, flags *pflag.FlagSet, key string) []string {
	if flag := flags.Lookup(key); flag != nil && flag.Changed {
		return v.GetStringSlice(key)
	}
	return splitList(v.GetString(key))
}

func splitList(raw string) []string {
	var values []string
	for value := range strings.SplitSeq(raw, ",") {
		if value = strings.TrimSpace(value); value != "" {
			values = append(values, value)
		}
	}
	return values
}
