package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mbucek/toyrsa"
)

// Configuration keys. Each is also a flag name and, upper-cased with the
// TOYRSA_ prefix and dashes replaced by underscores, an environment variable.
const (
	KeyP                = "p"
	KeyQ                = "q"
	KeyFormat           = "format"
	KeySearch           = "search"
	KeyNoPrimalityCheck = "no-primality-check"
	KeyDebug            = "debug"
	KeyLogFormat        = "log-format"
	KeyText             = "text"
	KeyCiphertext       = "ciphertext"
	KeyConfig           = "config"
)

const envPrefix = "TOYRSA"

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Defaults for the demonstration seeds.
const (
	defaultP = 61
	defaultQ = 53
)

// settings is the resolved configuration for one invocation.
type settings struct {
	P                int64
	Q                int64
	Format           string
	Search           toyrsa.ExponentSearch
	NoPrimalityCheck bool
	Debug            bool
	LogFormat        string
	Text             string
	Ciphertext       string

	// ConfigFile is the config file that was read, empty if none.
	ConfigFile string
	// Command is the first positional argument, "demo" if absent.
	Command string
}

// deriveOptions translates the settings into toyrsa derive options.
func (s *settings) deriveOptions() []toyrsa.DeriveOption {
	opts := []toyrsa.DeriveOption{toyrsa.WithExponentSearch(s.Search)}
	if s.NoPrimalityCheck {
		opts = append(opts, toyrsa.WithoutPrimalityCheck())
	}
	return opts
}

func newFlagSet(name string) *flag.FlagSet {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.Int64(KeyP, defaultP, "First prime seed")
	flags.Int64(KeyQ, defaultQ, "Second prime seed")
	flags.StringP(KeyFormat, "o", FormatText, "Output format: text, json or yaml")
	flags.String(KeySearch, string(toyrsa.SearchSieve), "Public exponent search: sieve or descending")
	flags.Bool(KeyNoPrimalityCheck, false, "Accept composite seeds (produces keys that do not round trip)")
	flags.Bool(KeyDebug, false, "Enable debug logging")
	flags.String(KeyLogFormat, "text", "Log format: text or json")
	flags.StringP(KeyText, "t", "", "Plaintext to encrypt (default: read stdin)")
	flags.StringP(KeyCiphertext, "c", "", "Ciphertext units to decrypt, separated by spaces or commas (default: read stdin)")
	flags.String(KeyConfig, "", "Path to a config file (default: ./toyrsa.yaml or $HOME/.toyrsa/toyrsa.yaml)")
	return flags
}

// loadSettings layers, from highest to lowest priority: command-line flags,
// TOYRSA_* environment variables, the config file, the dotenv file and the
// flag defaults.
func loadSettings(flags *flag.FlagSet, args []string, envFile string) (*settings, error) {
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}

	if envFile != "" {
		if err := loadDotenv(v, envFile); err != nil {
			return nil, err
		}
	}

	if path := v.GetString(KeyConfig); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("toyrsa")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.toyrsa")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	s := &settings{
		P:                v.GetInt64(KeyP),
		Q:                v.GetInt64(KeyQ),
		Format:           strings.ToLower(v.GetString(KeyFormat)),
		NoPrimalityCheck: v.GetBool(KeyNoPrimalityCheck),
		Debug:            v.GetBool(KeyDebug),
		LogFormat:        strings.ToLower(v.GetString(KeyLogFormat)),
		Text:             v.GetString(KeyText),
		Ciphertext:       v.GetString(KeyCiphertext),
		ConfigFile:       v.ConfigFileUsed(),
		Command:          "demo",
	}

	search, ok := toyrsa.ParseExponentSearch(strings.ToLower(v.GetString(KeySearch)))
	if !ok {
		return nil, fmt.Errorf("unknown search %q: want %s or %s", v.GetString(KeySearch), toyrsa.SearchSieve, toyrsa.SearchDescending)
	}
	s.Search = search

	switch s.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return nil, fmt.Errorf("unknown format %q: want text, json or yaml", s.Format)
	}

	if flags.NArg() > 0 {
		s.Command = flags.Arg(0)
	}
	return s, nil
}

// loadDotenv reads TOYRSA_* entries from a dotenv file as defaults. A
// missing file is not an error. The process environment is left untouched.
func loadDotenv(v *viper.Viper, path string) error {
	entries, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	prefix := envPrefix + "_"
	for name, val := range entries {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		key := strings.ToLower(strings.ReplaceAll(strings.TrimPrefix(name, prefix), "_", "-"))
		v.SetDefault(key, val)
	}
	return nil
}
