package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
)

// Capability is something a notifier plugin declares it can do.
type Capability string

const (
	CapabilityNotify Capability = "notify"
	CapabilitySound  Capability = "sound"
)

var (
	ErrInvalidManifest   = errors.New("invalid plugin manifest")
	ErrPluginDisabled    = errors.New("plugin is disabled")
	ErrChecksumMismatch  = errors.New("plugin checksum mismatch")
	ErrCapabilityMissing = errors.New("plugin capability missing")
	ErrPluginTimeout     = errors.New("plugin timeout")
)

var checksumPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

// Manifest is one entry of plugins.json.
type Manifest struct {
	Name         string       `json:"name"`
	Version      string       `json:"version"`
	Binary       string       `json:"binary"`
	SHA256       string       `json:"sha256"`
	Enabled      bool         `json:"enabled"`
	Capabilities []Capability `json:"capabilities"`
}

// Validate reports every problem with the manifest at once.
func (m Manifest) Validate() error {
	var problems []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			problems = append(problems, fmt.Errorf(format, args...))
		}
	}
	check(strings.TrimSpace(m.Name) != "", "name is required")
	check(m.Version != "", "version is required")
	check(m.Binary != "", "binary is required")
	check(checksumPattern.MatchString(m.SHA256), "sha256 must be 64 lowercase hex characters")
	check(len(m.Capabilities) > 0, "at least one capability is required")
	seen := make(map[Capability]bool, len(m.Capabilities))
	for _, c := range m.Capabilities {
		check(c.Known(), "unknown capability %q", c)
		check(!seen[c], "capability %q listed twice", c)
		seen[c] = true
	}
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w %q: %w", ErrInvalidManifest, m.Name, errors.Join(problems...))
}

func (c Capability) Known() bool {
	return c == CapabilityNotify || c == CapabilitySound
}

func (m Manifest) HasCapability(c Capability) bool {
	return slices.Contains(m.Capabilities, c)
}

func (m Manifest) CapabilityNames() []string {
	names := make([]string, 0, len(m.Capabilities))
	for _, c := range m.Capabilities {
		names = append(names, string(c))
	}
	return names
}

// CheckRunnable reports why a valid manifest cannot deliver alerts.
func (m Manifest) CheckRunnable() error {
	if !m.Enabled {
		return fmt.Errorf("%w: %s", ErrPluginDisabled, m.Name)
	}
	if !m.HasCapability(CapabilityNotify) {
		return fmt.Errorf("%w: %s lacks %q", ErrCapabilityMissing, m.Name, CapabilityNotify)
	}
	return nil
}

// VerifyChecksum compares the binary contents with the recorded sha256.
func (m Manifest) VerifyChecksum(binary []byte) error {
	sum := sha256.Sum256(binary)
	if hex.EncodeToString(sum[:]) != m.SHA256 {
		return fmt.Errorf("%w: %s", ErrChecksumMismatch, filepath.Base(m.Binary))
	}
	return nil
}

// Metadata is what a running plugin says about itself.
type Metadata struct {
	Name         string
	Version      string
	Capabilities []Capability
}
