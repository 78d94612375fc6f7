// Package shell builds the shell command strings sent through the exec primitive.
// Every interpolated value is single-quoted and every identifier is validated first.
package shell

import (
	"sort"
	"strings"

	"github.com/renato0307/remux/internal/domain"
)

// Quote wraps value in single quotes, escaping embedded single quotes as '\''
func Quote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", `'\''`) + "'"
}

// join drops empty parts and joins the rest with a space
func join(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

// envAssignments returns validated KEY='value' pairs in key order
func envAssignments(env map[string]string) ([]string, error) {
	keys := make([]string, 0, len(env))
	for key := range env {
		if err := domain.ValidateEnvKey(key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	assignments := make([]string, 0, len(keys))
	for _, key := range keys {
		assignments = append(assignments, key+"="+Quote(env[key]))
	}
	return assignments, nil
}
