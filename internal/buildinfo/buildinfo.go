// Package buildinfo carries version metadata injected with -ldflags at release time.
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	return fmt.Sprintf("attendpay %s (commit=%s, date=%s)", Version, Commit, Date)
}
