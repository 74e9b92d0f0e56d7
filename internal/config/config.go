// Package config resolves the settings of both bots from flags, environment
// variables and an optional YAML file.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (GHBOTS_TOKEN, GHBOTS_PULL_REQUEST_ID, ...; GITHUB_TOKEN for the token)
//  3. Config file (--config, or .ghbots.yaml in the working directory)
//  4. Built-in defaults
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// ErrInvalidConfig is returned (wrapped) when a required setting is missing
// or malformed.
var ErrInvalidConfig = errors.New("invalid configuration")

// Setting keys. They double as flag names and, upper-cased with "-"
// replaced by "_", as GHBOTS_ environment variable suffixes.
const (
	KeyURL               = "url"
	KeyToken             = "token"
	KeyDryRun            = "dry-run"
	KeyLogLevel          = "log-level"
	KeyProjectID         = "project-id"
	KeyPullRequestID     = "pull-request-id"
	KeyInput             = "input"
	KeyBaseSHA           = "base-sha"
	KeyProjectName       = "project-name"
	KeyPullRequestNumber = "pull-request-number"
	KeyRepoDir           = "repo-dir"
	KeyDiffSource        = "diff-source"
)

// Diff sources accepted by the label bot.
const (
	DiffSourceGit = "git"
	DiffSourceAPI = "api"
)

// EnvPrefix prefixes every environment variable the bots read.
const EnvPrefix = "GHBOTS"

// Common holds the settings shared by both bots.
type Common struct {
	URL      string
	Token    string
	DryRun   bool
	LogLevel slog.Level
}

// Publisher holds the settings of the defect-to-comment publisher.
type Publisher struct {
	Common
	Project     string // "owner/repo" or numeric repository ID.
	PullRequest int
	Input       string // Report path; "-" reads stdin.
}

// Labeler holds the settings of the label bot.
type Labeler struct {
	Common
	BaseSHA     string
	Project     string
	PullRequest int
	RepoDir     string
	DiffSource  string
}

// NewViper returns a viper instance with env binding and defaults applied.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv(KeyToken, EnvPrefix+"_TOKEN", "GITHUB_TOKEN")

	v.SetDefault(KeyLogLevel, "debug")
	v.SetDefault(KeyInput, "-")
	v.SetDefault(KeyRepoDir, ".")
	v.SetDefault(KeyDiffSource, DiffSourceGit)
	return v
}

// ReadFile loads path into v. With an empty path it looks for .ghbots.yaml
// in the working directory and silently continues when there is none.
func ReadFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(".ghbots")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	return nil
}

// LoadPublisher builds and validates the publisher settings.
func LoadPublisher(v *viper.Viper) (*Publisher, error) {
	common, err := loadCommon(v)
	if err != nil {
		return nil, err
	}

	project, err := requireString(v, KeyProjectID)
	if err != nil {
		return nil, err
	}

	pr, err := requirePositiveInt(v, KeyPullRequestID)
	if err != nil {
		return nil, err
	}

	return &Publisher{
		Common:      common,
		Project:     project,
		PullRequest: pr,
		Input:       v.GetString(KeyInput),
	}, nil
}

// LoadLabeler builds and validates the label bot settings. The base SHA is
// only required for the git diff source.
func LoadLabeler(v *viper.Viper) (*Labeler, error) {
	common, err := loadCommon(v)
	if err != nil {
		return nil, err
	}

	project, err := requireString(v, KeyProjectName)
	if err != nil {
		return nil, err
	}

	pr, err := requirePositiveInt(v, KeyPullRequestNumber)
	if err != nil {
		return nil, err
	}

	source := strings.ToLower(v.GetString(KeyDiffSource))
	if source != DiffSourceGit && source != DiffSourceAPI {
		return nil, fmt.Errorf("%w: --%s must be %q or %q, got %q", ErrInvalidConfig, KeyDiffSource, DiffSourceGit, DiffSourceAPI, source)
	}

	baseSHA := v.GetString(KeyBaseSHA)
	if source == DiffSourceGit && baseSHA == "" {
		return nil, fmt.Errorf("%w: --%s is required", ErrInvalidConfig, KeyBaseSHA)
	}

	return &Labeler{
		Common:      common,
		BaseSHA:     baseSHA,
		Project:     project,
		PullRequest: pr,
		RepoDir:     v.GetString(KeyRepoDir),
		DiffSource:  source,
	}, nil
}

func loadCommon(v *viper.Viper) (Common, error) {
	url, err := requireString(v, KeyURL)
	if err != nil {
		return Common{}, err
	}

	token, err := requireString(v, KeyToken)
	if err != nil {
		return Common{}, err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString(KeyLogLevel))); err != nil {
		return Common{}, fmt.Errorf("%w: --%s: %v", ErrInvalidConfig, KeyLogLevel, err)
	}

	return Common{
		URL:      url,
		Token:    token,
		DryRun:   v.GetBool(KeyDryRun),
		LogLevel: level,
	}, nil
}

func requireString(v *viper.Viper, key string) (string, error) {
	s := strings.TrimSpace(v.GetString(key))
	if s == "" {
		return "", fmt.Errorf("%w: --%s is required", ErrInvalidConfig, key)
	}
	return s, nil
}

func requirePositiveInt(v *viper.Viper, key string) (int, error) {
	n, err := cast.ToIntE(v.Get(key))
	if err != nil {
		return 0, fmt.Errorf("%w: --%s must be an integer: %v", ErrInvalidConfig, key, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: --%s is required", ErrInvalidConfig, key)
	}
	return n, nil
}
