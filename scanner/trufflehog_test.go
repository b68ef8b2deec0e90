package scanner

import (
	"testing"

	"github.com/dmdhrumilmistry/chitragupta/shared"
	"github.com/stretchr/testify/assert"
)

func TestBuildArgs(t *testing.T) {
	t.Run("full scan of a public repo", func(t *testing.T) {
		args := buildArgs("https://github.com/octo-org/website", shared.ScanOptions{Concurrency: 2})

		assert.Equal(t, []string{
			"git",
			"https://github.com/octo-org/website",
			"--concurrency=2",
			"--json",
			"--no-update",
			"--user-agent-suffix=ChitraGupta",
		}, args)
	})

	t.Run("incremental scan resumes from the watermark", func(t *testing.T) {
		args := buildArgs("https://github.com/octo-org/website", shared.ScanOptions{
			SinceCommit: "abc123",
			Concurrency: 4,
		})

		assert.Contains(t, args, "--since-commit=abc123")
		assert.Contains(t, args, "--concurrency=4")
	})

	t.Run("non-positive concurrency leaves the flag to the tool default", func(t *testing.T) {
		args := buildArgs("https://github.com/octo-org/website", shared.ScanOptions{})

		assert.NotContains(t, args, "--concurrency=0")
		for _, arg := range args {
			assert.NotContains(t, arg, "--concurrency")
		}
	})

	t.Run("verified-only mode", func(t *testing.T) {
		args := buildArgs("https://github.com/octo-org/website", shared.ScanOptions{
			Concurrency:  2,
			OnlyVerified: true,
		})

		assert.Equal(t, "--only-verified", args[len(args)-1])
	})
}

func TestNewTrufflehog(t *testing.T) {
	t.Run("should default to the binary on PATH", func(t *testing.T) {
		t.Setenv("TRUFFLEHOG_PATH", "")
		assert.Equal(t, "trufflehog", NewTrufflehog().binary)
	})

	t.Run("should honor TRUFFLEHOG_PATH", func(t *testing.T) {
		t.Setenv("TRUFFLEHOG_PATH", "/opt/bin/trufflehog")
		assert.Equal(t, "/opt/bin/trufflehog", NewTrufflehog().binary)
	})
}
