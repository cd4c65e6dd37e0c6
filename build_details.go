package swagval

import "fmt"

var (
	// version is set via ldflags at release time; source builds report "dev"
	version = "dev"

	// commit is set via ldflags at release time
	commit = "unknown"
)

// Version returns the compiled version or 'dev' if run from source
func Version() string {
	return version
}

// Commit returns the compiled commit hash or 'unknown' if run from source
func Commit() string {
	return commit
}

// UserAgent returns the User-Agent string used by the gateway proxy
func UserAgent() string {
	return fmt.Sprintf("swagval/%s", version)
}
