package version

import "fmt"

// Set at build time via -ldflags.
var (
	Version = "dev"
	Commit  = ""
)

func GetInfo() string {
	if Commit == "" {
		return Version
	}
	return fmt.Sprintf("%s (%s)", Version, Commit)
}
