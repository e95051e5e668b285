// Package cli parses command-line arguments, validates user input and
// handles process-level concerns like exit codes and logger setup. It
// translates flags into a driver.Config.
package cli
