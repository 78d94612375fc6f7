package shell

import (
	"strconv"

	"github.com/renato0307/remux/internal/domain"
)

// DefaultUnit is the service whose logs are read when none is named
const DefaultUnit = "npm-dev"

// TailOptions selects a slice of a unit's journal
type TailOptions struct {
	AfterCursor string
	Lines       int
	Output      string
	ShowCursor  bool
	Since       string
	Unit        string
}

// BuildTail returns a journalctl command for the unit. AfterCursor, when set,
// takes precedence over Since and Lines.
func BuildTail(opts TailOptions) string {
	unit := opts.Unit
	if unit == "" {
		unit = DefaultUnit
	}
	parts := []string{"journalctl", "-u", Quote(unit), "--no-pager"}

	if opts.Output != "" {
		parts = append(parts, "-o", Quote(opts.Output))
	}

	if opts.AfterCursor != "" {
		parts = append(parts, "--after-cursor", Quote(opts.AfterCursor))
	} else {
		if opts.Lines > 0 {
			parts = append(parts, "-n", strconv.Itoa(opts.Lines))
		}
		if opts.Since != "" {
			parts = append(parts, "--since", Quote(opts.Since))
		}
	}

	if opts.ShowCursor {
		parts = append(parts, "--show-cursor")
	}

	return join(parts...)
}

// BuildRestartUnit restarts a systemd unit
func BuildRestartUnit(unit string) (string, error) {
	if unit == "" {
		unit = DefaultUnit
	}
	if err := ValidateUnit(unit); err != nil {
		return "", err
	}
	return "systemctl restart " + Quote(unit), nil
}

// ValidateUnit rejects names that are not safe systemd unit names
func ValidateUnit(unit string) error {
	for _, r := range unit {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-' || r == '_' || r == '.' || r == '@' || r == ':':
		default:
			return &domain.ValidationError{Field: "unit", Reason: "not a systemd unit name", Value: unit}
		}
	}
	return nil
}
