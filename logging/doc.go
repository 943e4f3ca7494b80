// Package logging provides a tiny abstraction over slog so downstream code
// can depend on a minimal interface (Logger) while allowing users to plug any
// structured logger. Logging is a side effect only: nothing in the
// orchestration loop changes behavior based on logger output.
package logging
