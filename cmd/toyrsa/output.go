package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/mbucek/toyrsa"
)

// KeysOutput is the printed form of a derived key pair.
type KeysOutput struct {
	Fingerprint string            `json:"fingerprint" yaml:"fingerprint"`
	Public      toyrsa.PublicKey  `json:"public" yaml:"public"`
	Private     toyrsa.PrivateKey `json:"private" yaml:"private"`
}

// EncryptOutput is the printed result of the encrypt command.
type EncryptOutput struct {
	Ciphertext []int64 `json:"ciphertext" yaml:"ciphertext"`
}

// DecryptOutput is the printed result of the decrypt command.
type DecryptOutput struct {
	Plaintext string `json:"plaintext" yaml:"plaintext"`
}

// DemoOutput is the printed result of the demo command.
type DemoOutput struct {
	Keys           KeysOutput `json:"keys" yaml:"keys"`
	Plaintext      string     `json:"plaintext" yaml:"plaintext"`
	Ciphertext     []int64    `json:"ciphertext" yaml:"ciphertext"`
	CiphertextText string     `json:"ciphertextText" yaml:"ciphertextText"`
	Decrypted      string     `json:"decrypted" yaml:"decrypted"`
}

func newKeysOutput(kp *toyrsa.KeyPair) KeysOutput {
	return KeysOutput{
		Fingerprint: kp.Public.Fingerprint(),
		Public:      kp.Public,
		Private:     kp.Private,
	}
}

// unitsAsText renders ciphertext units as the characters with those code
// points, the way the units would look if printed as text. Units that are
// not valid code points, such as surrogates or anything above
// utf8.MaxRune, render as utf8.RuneError.
func unitsAsText(units []int64) string {
	var b strings.Builder
	for _, u := range units {
		if u < 0 || u > utf8.MaxRune {
			b.WriteRune(utf8.RuneError)
			continue
		}
		b.WriteRune(rune(u))
	}
	return b.String()
}

// formatUnits joins ciphertext units with single spaces.
func formatUnits(units []int64) string {
	parts := make([]string, len(units))
	for i, u := range units {
		parts[i] = strconv.FormatInt(u, 10)
	}
	return strings.Join(parts, " ")
}

// parseUnits parses ciphertext units separated by whitespace or commas.
// Surrounding brackets, as in a JSON array, are ignored.
func parseUnits(s string) ([]int64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		switch r {
		case ' ', '\t', '\r', '\n', ',', '[', ']':
			return true
		}
		return false
	})

	units := make([]int64, 0, len(fields))
	for _, f := range fields {
		u, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ciphertext unit %q: %w", f, err)
		}
		units = append(units, u)
	}
	return units, nil
}

// printer writes command results in one of the supported formats.
type printer struct {
	w      io.Writer
	format string
	label  lipgloss.Style
	title  lipgloss.Style
}

func newPrinter(w io.Writer, format string) *printer {
	r := lipgloss.NewRenderer(w)
	return &printer{
		w:      w,
		format: format,
		label:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		title:  r.NewStyle().Bold(true).Underline(true),
	}
}

// structured writes v as JSON or YAML. It reports false for text format.
func (p *printer) structured(v any) (bool, error) {
	switch p.format {
	case FormatJSON:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, err
		}
		return true, enc.Close()
	}
	return false, nil
}

func (p *printer) field(name string, value any) {
	fmt.Fprintf(p.w, "%s %v\n", p.label.Render(name+":"), value)
}

func (p *printer) section(name string) {
	fmt.Fprintln(p.w, p.title.Render(name))
}

func (p *printer) keys(out KeysOutput) error {
	if done, err := p.structured(out); done {
		return err
	}
	p.keysText(out)
	return nil
}

func (p *printer) keysText(out KeysOutput) {
	p.section("Public key")
	p.field("n", out.Public.N)
	p.field("e", out.Public.E)
	p.field("fingerprint", out.Fingerprint)
	p.section("Private key")
	p.field("n", out.Private.N)
	p.field("d", out.Private.D)
}

func (p *printer) encrypted(out EncryptOutput) error {
	if done, err := p.structured(out); done {
		return err
	}
	_, err := fmt.Fprintln(p.w, formatUnits(out.Ciphertext))
	return err
}

func (p *printer) decrypted(out DecryptOutput) error {
	if done, err := p.structured(out); done {
		return err
	}
	_, err := io.WriteString(p.w, withNewline(out.Plaintext))
	return err
}

func (p *printer) demo(out DemoOutput) error {
	if done, err := p.structured(out); done {
		return err
	}
	p.keysText(out.Keys)
	p.section("Ciphertext")
	fmt.Fprintln(p.w, formatUnits(out.Ciphertext))
	p.section("Ciphertext as text")
	fmt.Fprint(p.w, withNewline(out.CiphertextText))
	p.section("Decrypted")
	_, err := io.WriteString(p.w, withNewline(out.Decrypted))
	return err
}

func withNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
