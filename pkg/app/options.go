package app

import "github.com/spf13/pflag"

// CliOptions abstracts configuration options for reading from command line.
type CliOptions interface {
	// AddFlags adds flags to the flagset.
	AddFlags(fs *pflag.FlagSet)
	// Validate validates the options.
	Validate() error
	// Complete completes the options with defaults.
	Complete() error
}
