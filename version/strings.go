package version

import (
	"fmt"
)

// These are targets for compiling in build information, e.g.
//   go build -ldflags "-X github.com/utilitycheck/utility-data/version.ReleaseVersion=1.2.0"

var (
	// Hash Git commit hash. Output of `git log -n 1 --pretty="%H"`
	Hash string

	// CompileTime YYYY-mm-ddTHH:MM:SS+ZZZZ
	CompileTime string

	// ReleaseVersion is set using -ldflags during build.
	ReleaseVersion string
)

// UnknownVersion is used when the version is not known.
const UnknownVersion = "(unknown version)"

// Version the binary version.
func Version() string {
	if ReleaseVersion == "" {
		return UnknownVersion
	}
	return ReleaseVersion
}

// LongVersion the long form of the binary version, including build metadata
// when it was compiled in.
func LongVersion() string {
	v := fmt.Sprintf("utility-data %s", Version())
	if Hash != "" {
		v += fmt.Sprintf(" (git %s)", Hash)
	}
	if CompileTime != "" {
		v += fmt.Sprintf(" compiled at %s", CompileTime)
	}
	return v
}
