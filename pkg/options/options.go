// Package options defines the shared options interface and flag-name helpers
// used by the per-component option packages.
package options

import (
	"strings"

	"github.com/spf13/pflag"
)

// Join builds a flag-name prefix from the given parts, separated by "." and
// ending with a trailing "." when non-empty, so "milvus" becomes "milvus."
// and no parts yields "".
func Join(prefixes ...string) string {
	joined := strings.Join(prefixes, ".")
	if joined != "" {
		joined += "."
	}
	return joined
}

// IOptions is implemented by option structs that support prefixed flag
// registration.
type IOptions interface {
	// Validate checks the options and returns every problem found.
	Validate() []error

	// AddFlags registers the options on fs under the joined prefixes.
	AddFlags(fs *pflag.FlagSet, prefixes ...string)
}
