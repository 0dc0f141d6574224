package templatesync

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/yaml2config/pkg/errors"
	"github.com/arthur-debert/yaml2config/pkg/testutil"
)

func TestNew(t *testing.T) {
	t.Run("git_unavailable", func(t *testing.T) {
		orig := lookPath
		lookPath = func(string) (string, error) { return "", exec.ErrNotFound }
		t.Cleanup(func() { lookPath = orig })

		_, err := New(t.TempDir(), Options{})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrSyncUnavailable))
		assert.Contains(t, err.Error(), "git is not available")
		assert.True(t, errors.IsFatal(err))
	})

	t.Run("defaults_remote_and_branch", func(t *testing.T) {
		orig := lookPath
		lookPath = func(string) (string, error) { return "/usr/bin/git", nil }
		t.Cleanup(func() { lookPath = orig })

		s, err := New("/templates", Options{})
		require.NoError(t, err)
		assert.Equal(t, DefaultRemote, s.remote)
		assert.Equal(t, DefaultBranch, s.branch)
		assert.Equal(t, "/usr/bin/git", s.git)
	})
}

func TestSync(t *testing.T) {
	testutil.RequireGit(t)
	testutil.IsolateGit(t)

	t.Run("not_a_repository", func(t *testing.T) {
		dir := t.TempDir()
		testutil.CreateFile(t, dir, "app.conf.j2", "{{ x }}")

		s, err := New(dir, Options{})
		require.NoError(t, err)

		err = s.Sync(context.Background())
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrSyncNotRepo))
		assert.Contains(t, err.Error(), dir)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1, "directory must be left untouched")
		testutil.AssertFileContent(t, filepath.Join(dir, "app.conf.j2"), "{{ x }}")
	})

	t.Run("subdirectory_of_a_repository", func(t *testing.T) {
		repo := testutil.InitRepo(t, map[string]string{"templates/a.j2": "a"})

		s, err := New(filepath.Join(repo, "templates"), Options{})
		require.NoError(t, err)

		err = s.Sync(context.Background())
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrSyncNotRepo))
	})

	t.Run("pulls_new_commits", func(t *testing.T) {
		upstream := testutil.InitRepo(t, map[string]string{"app.conf.j2": "v1"})
		checkout := filepath.Join(t.TempDir(), "templates")
		testutil.Git(t, "", "clone", upstream, checkout)

		testutil.CommitFiles(t, upstream, map[string]string{
			"app.conf.j2": "v2",
			"new.conf.j2": "new",
		})

		s, err := New(checkout, Options{})
		require.NoError(t, err)
		require.NoError(t, s.Sync(context.Background()))

		testutil.AssertFileContent(t, filepath.Join(checkout, "app.conf.j2"), "v2")
		testutil.AssertFileContent(t, filepath.Join(checkout, "new.conf.j2"), "new")
	})

	t.Run("missing_remote", func(t *testing.T) {
		repo := testutil.InitRepo(t, map[string]string{"a.j2": "a"})

		s, err := New(repo, Options{Remote: "nowhere"})
		require.NoError(t, err)

		err = s.Sync(context.Background())
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrSyncFailed))
		assert.Contains(t, err.Error(), "nowhere/master")
	})

	t.Run("missing_branch", func(t *testing.T) {
		upstream := testutil.InitRepo(t, map[string]string{"a.j2": "a"})
		checkout := filepath.Join(t.TempDir(), "templates")
		testutil.Git(t, "", "clone", upstream, checkout)

		s, err := New(checkout, Options{Branch: "does-not-exist"})
		require.NoError(t, err)

		err = s.Sync(context.Background())
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrSyncFailed))
	})
}
