// Command toyrsa derives a textbook RSA key pair from two prime seeds and
// uses it to encrypt and decrypt text one character at a time.
//
// Usage:
//
//	toyrsa [demo|keys|encrypt|decrypt|help] [flags]
//
// Seeds and options come from flags, TOYRSA_* environment variables, a
// toyrsa.yaml config file or a .env file, in that order of precedence.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"github.com/mbucek/toyrsa"
)

// exampleText is the plaintext the demo command encrypts.
const exampleText = `Hi, how are you doing today?
This is just an example text.
Lorem ipsum dolor sit amet, consectetuer adipiscing elit. Aliquam erat volutpat. Nulla accumsan, elit sit amet varius semper, nulla mauris mollis quam, tempor suscipit diam nulla vel leo. Nunc tincidunt ante vitae massa. Vivamus porttitor turpis ac leo. Aenean fermentum risus id tortor. Fusce tellus. Nulla quis diam. Duis ante orci, molestie vitae vehicula venenatis, tincidunt ac pede. Nulla quis diam. Ut enim ad minima veniam, quis nostrum exercitationem ullam corporis suscipit laboriosam, nisi ut aliquid ex ea commodi consequatur? Mauris tincidunt sem sed arcu. Donec ipsum massa, ullamcorper in, auctor et, scelerisque sed, est. Proin in tellus sit amet nibh dignissim sagittis. Proin pede metus, vulputate nec, fermentum fringilla, vehicula vitae, justo. Vivamus porttitor turpis ac leo. Fusce suscipit libero eget elit. Aliquam erat volutpat. Curabitur sagittis hendrerit ante.
`

// exitFunc is called by fatal. Tests replace it.
var exitFunc = os.Exit

// Config holds the I/O streams and environment for a run.
type Config struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// EnvFile is the dotenv file to read. Empty disables dotenv loading.
	EnvFile string
}

// DefaultConfig returns a Config wired to the process streams.
func DefaultConfig() *Config {
	return &Config{
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		EnvFile: ".env",
	}
}

// app carries everything a command needs.
type app struct {
	cfg      *Config
	settings *settings
	log      *log.Logger
	out      *printer
}

func run(args []string, cfg *Config) error {
	if len(args) == 0 {
		return errors.New("usage: toyrsa [demo|keys|encrypt|decrypt|help] [flags]")
	}
	if cfg.Stderr == nil {
		cfg.Stderr = io.Discard
	}

	flags := newFlagSet(args[0])
	flags.SetOutput(cfg.Stderr)

	s, err := loadSettings(flags, args[1:], cfg.EnvFile)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	a := &app{
		cfg:      cfg,
		settings: s,
		log:      newLogger(cfg.Stderr, s.LogFormat, s.Debug),
		out:      newPrinter(cfg.Stdout, s.Format),
	}
	a.log.WithFields(log.Fields{
		"command": s.Command,
		"config":  s.ConfigFile,
		"format":  s.Format,
		"search":  s.Search,
	}).Debug("Loaded configuration")

	switch s.Command {
	case "demo":
		return a.demo()
	case "keys":
		return a.keys()
	case "encrypt":
		return a.encrypt()
	case "decrypt":
		return a.decrypt()
	case "help":
		fmt.Fprintf(cfg.Stdout, "usage: %s [demo|keys|encrypt|decrypt|help] [flags]\n\n", args[0])
		flags.SetOutput(cfg.Stdout)
		flags.PrintDefaults()
		return nil
	default:
		return fmt.Errorf("unknown command: %s", s.Command)
	}
}

func (a *app) deriveKeys() (*toyrsa.KeyPair, error) {
	s := a.settings
	kp, err := toyrsa.DeriveKeys(s.P, s.Q, s.deriveOptions()...)
	if err != nil {
		return nil, err
	}

	a.log.WithFields(log.Fields{
		"n":           kp.Public.N,
		"e":           kp.Public.E,
		"fingerprint": kp.Public.Fingerprint(),
	}).Debug("Derived key pair")
	return kp, nil
}

// warnWrap logs when text contains code points the modulus cannot carry.
func (a *app) warnWrap(kp *toyrsa.KeyPair, text string) {
	wrapped := 0
	for _, r := range text {
		if int64(r) >= kp.Public.N {
			wrapped++
		}
	}
	if wrapped > 0 {
		a.log.WithFields(log.Fields{
			"n":          kp.Public.N,
			"characters": wrapped,
		}).Warn("Characters at or above the modulus will not decrypt to the original text")
	}
}

func (a *app) demo() error {
	kp, err := a.deriveKeys()
	if err != nil {
		return err
	}

	plaintext := exampleText
	if a.settings.Text != "" {
		plaintext = a.settings.Text
	}
	a.warnWrap(kp, plaintext)

	units := toyrsa.EncryptText(kp.Public, plaintext)
	decrypted := toyrsa.DecryptText(kp.Private, units)
	a.log.WithField("units", len(units)).Debug("Round-tripped text")

	return a.out.demo(DemoOutput{
		Keys:           newKeysOutput(kp),
		Plaintext:      plaintext,
		Ciphertext:     units,
		CiphertextText: unitsAsText(units),
		Decrypted:      decrypted,
	})
}

func (a *app) keys() error {
	kp, err := a.deriveKeys()
	if err != nil {
		return err
	}
	return a.out.keys(newKeysOutput(kp))
}

func (a *app) encrypt() error {
	kp, err := a.deriveKeys()
	if err != nil {
		return err
	}

	plaintext, err := a.input(a.settings.Text)
	if err != nil {
		return err
	}
	a.warnWrap(kp, plaintext)

	units := toyrsa.EncryptText(kp.Public, plaintext)
	a.log.WithField("units", len(units)).Debug("Encrypted text")
	return a.out.encrypted(EncryptOutput{Ciphertext: units})
}

func (a *app) decrypt() error {
	kp, err := a.deriveKeys()
	if err != nil {
		return err
	}

	raw, err := a.input(a.settings.Ciphertext)
	if err != nil {
		return err
	}
	units, err := parseUnits(raw)
	if err != nil {
		return err
	}

	plaintext := toyrsa.DecryptText(kp.Private, units)
	a.log.WithField("units", len(units)).Debug("Decrypted text")
	return a.out.decrypted(DecryptOutput{Plaintext: plaintext})
}

// input returns flagValue if set, otherwise all of stdin.
func (a *app) input(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if a.cfg.Stdin == nil {
		return "", errors.New("no input: pass --text/--ciphertext or pipe stdin")
	}
	data, err := io.ReadAll(a.cfg.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimSuffix(string(data), "\n"), nil
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	exitFunc(1)
}
