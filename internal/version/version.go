// Package version reports the build's version, stamped in with -ldflags -X.
package version

import "fmt"

// Set at build time, e.g.
//
//	go build -ldflags "-X github.com/example/ghnf/internal/version.Version=0.4.0 -X github.com/example/ghnf/internal/version.BuildDate=$(date -u +%F)"
var (
	Version   = "dev"
	Commit    = ""
	BuildDate = "unknown"
)

// String returns "<version>[+<commit>] (built at <date>)".
func String() string {
	v := Version
	if Commit != "" {
		v += "+" + abbrev(Commit)
	}
	return fmt.Sprintf("%s (built at %s)", v, BuildDate)
}

func abbrev(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}
