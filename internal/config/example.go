package config

import "time"

// Example returns a configuration showing every supported field
func Example() *Config {
	maxLogFiles := 1000
	defaults := DefaultDefaults()
	defaults.MaxLogFiles = &maxLogFiles

	return &Config{
		DefaultTarget: "dev-vm",
		Defaults:      defaults,
		Targets: map[string]Target{
			"dev-vm": {
				Host:           "10.0.0.12",
				IdentityFile:   "~/.ssh/id_ed25519",
				Kind:           KindSSH,
				KnownHostsFile: "~/.ssh/known_hosts",
				Port:           22,
				Timeout:        10 * time.Second,
				User:           "root",
			},
			"laptop": {
				Kind:  KindLocal,
				Shell: "bash",
			},
		},
	}
}
