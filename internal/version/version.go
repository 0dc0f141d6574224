package version

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/arthur-debert/yaml2config/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/arthur-debert/yaml2config/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/arthur-debert/yaml2config/internal/version.Date={{.Date}}
)

// Info returns the one-line version description printed by --version
func Info() string {
	return Version + " (commit " + Commit + ", built " + Date + ")"
}
