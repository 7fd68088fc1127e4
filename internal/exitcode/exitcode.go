// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown command or flag).
	UserError = 1

	// ConfigError indicates an unreadable or invalid config.yaml.
	ConfigError = 2

	// StoreError indicates the task database could not be opened.
	StoreError = 3
)
