//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/upgit/internal/domain/entities"
)

// SettingsBuilder helps create test settings with a fluent interface.
type SettingsBuilder struct {
	*testkit.BaseBuilder
	gitDirs             []string
	sharePolicy         entities.SharePolicy
	sshKeyPath          string
	defaultSSH          bool
	defaultPlain        bool
	defaultPlainKeyring bool
	sshKeys             []string
	plainURLs           []string
	concurrency         int
	mergeStrategy       entities.MergeStrategy
	metricsFile         string
	maxAuthAttempts     int
}

// NewSettingsBuilder creates a new settings builder with sensible defaults.
func NewSettingsBuilder() *SettingsBuilder {
	b := &SettingsBuilder{BaseBuilder: testkit.NewBaseBuilder()}
	b.defaults()
	return b
}

// WithGitDirs sets the directories holding clones.
func (b *SettingsBuilder) WithGitDirs(dirs ...string) *SettingsBuilder {
	b.gitDirs = dirs
	return b
}

// WithSharePolicy sets the sharing policy.
func (b *SettingsBuilder) WithSharePolicy(policy entities.SharePolicy) *SettingsBuilder {
	b.sharePolicy = policy
	return b
}

// WithSSHKeyPath sets the default key path.
func (b *SettingsBuilder) WithSSHKeyPath(path string) *SettingsBuilder {
	b.sshKeyPath = path
	return b
}

// WithDefaultSSH enables prompting for a default SSH passphrase.
func (b *SettingsBuilder) WithDefaultSSH() *SettingsBuilder {
	b.defaultSSH = true
	return b
}

// WithDefaultPlain enables prompting for a default password.
func (b *SettingsBuilder) WithDefaultPlain() *SettingsBuilder {
	b.defaultPlain = true
	return b
}

// WithDefaultPlainKeyring reads the default password from the secret store.
func (b *SettingsBuilder) WithDefaultPlainKeyring() *SettingsBuilder {
	b.defaultPlainKeyring = true
	return b
}

// WithSSHKeys sets the keys to pre-verify.
func (b *SettingsBuilder) WithSSHKeys(keys ...string) *SettingsBuilder {
	b.sshKeys = keys
	return b
}

// WithPlainURLs sets the URLs whose password is asked up front.
func (b *SettingsBuilder) WithPlainURLs(urls ...string) *SettingsBuilder {
	b.plainURLs = urls
	return b
}

// WithConcurrency sets the task limit.
func (b *SettingsBuilder) WithConcurrency(concurrency int) *SettingsBuilder {
	b.concurrency = concurrency
	return b
}

// WithMergeStrategy sets the merge strategy.
func (b *SettingsBuilder) WithMergeStrategy(strategy entities.MergeStrategy) *SettingsBuilder {
	b.mergeStrategy = strategy
	return b
}

// WithMetricsFile sets the metrics output file.
func (b *SettingsBuilder) WithMetricsFile(path string) *SettingsBuilder {
	b.metricsFile = path
	return b
}

// Build creates the settings (satisfies testkit.Builder interface).
func (b *SettingsBuilder) Build() interface{} {
	return b.BuildSettings()
}

// BuildSettings creates the settings with a concrete return type.
func (b *SettingsBuilder) BuildSettings() *entities.Settings {
	return &entities.Settings{
		GitDirs:             append([]string(nil), b.gitDirs...),
		SharePolicy:         b.sharePolicy,
		SSHKeyPath:          b.sshKeyPath,
		DefaultSSH:          b.defaultSSH,
		DefaultPlain:        b.defaultPlain,
		DefaultPlainKeyring: b.defaultPlainKeyring,
		SSHKeys:             append([]string(nil), b.sshKeys...),
		PlainURLs:           append([]string(nil), b.plainURLs...),
		Concurrency:         b.concurrency,
		MergeStrategy:       b.mergeStrategy,
		MetricsFile:         b.metricsFile,
		MaxAuthAttempts:     b.maxAuthAttempts,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *SettingsBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.defaults()
	return b
}

// Clone creates a deep copy of the SettingsBuilder.
func (b *SettingsBuilder) Clone() testkit.Builder {
	return &SettingsBuilder{
		BaseBuilder:         b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		gitDirs:             append([]string(nil), b.gitDirs...),
		sharePolicy:         b.sharePolicy,
		sshKeyPath:          b.sshKeyPath,
		defaultSSH:          b.defaultSSH,
		defaultPlain:        b.defaultPlain,
		defaultPlainKeyring: b.defaultPlainKeyring,
		sshKeys:             append([]string(nil), b.sshKeys...),
		plainURLs:           append([]string(nil), b.plainURLs...),
		concurrency:         b.concurrency,
		mergeStrategy:       b.mergeStrategy,
		metricsFile:         b.metricsFile,
		maxAuthAttempts:     b.maxAuthAttempts,
	}
}

func (b *SettingsBuilder) defaults() {
	b.gitDirs = []string{"/srv/clones"}
	b.sharePolicy = entities.DefaultSharePolicy
	b.sshKeyPath = "/keys/id_rsa"
	b.defaultSSH = false
	b.defaultPlain = false
	b.defaultPlainKeyring = false
	b.sshKeys = nil
	b.plainURLs = nil
	b.concurrency = entities.DefaultConcurrency
	b.mergeStrategy = entities.MergeFastForwardOnly
	b.metricsFile = ""
	b.maxAuthAttempts = entities.DefaultMaxAuthAttempts
}
