package testutil

import (
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// RequireGit skips the test if git is not installed.
func RequireGit(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("Test requires git on PATH")
	}
}

// IsolateGit keeps git away from the user's and the system's configuration
// and sets a fixed identity for commits.
func IsolateGit(t *testing.T) {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GIT_AUTHOR_NAME", "Test")
	t.Setenv("GIT_AUTHOR_EMAIL", "test@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "Test")
	t.Setenv("GIT_COMMITTER_EMAIL", "test@example.com")
	t.Setenv("GIT_TERMINAL_PROMPT", "0")
}

// Git runs git with args in dir and returns its trimmed output.
// It fails the test if the command fails.
func Git(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %s failed: %v\n%s", strings.Join(args, " "), err, out)
	}
	return strings.TrimSpace(string(out))
}

// InitRepo creates a repository on branch master with one commit holding
// files, and returns its path.
func InitRepo(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	Git(t, dir, "init", "-q")
	Git(t, dir, "symbolic-ref", "HEAD", "refs/heads/master")
	CommitFiles(t, dir, files)
	return dir
}

// CommitFiles writes files into the repository at dir and commits them.
func CommitFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		CreateFile(t, dir, filepath.FromSlash(name), content)
	}
	Git(t, dir, "add", "-A")
	Git(t, dir, "commit", "-q", "-m", "update templates")
}
