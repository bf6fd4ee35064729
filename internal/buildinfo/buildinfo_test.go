package buildinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func withBuild(t *testing.T, version, commit, date string) {
	t.Helper()
	v, c, d := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = v, c, d })
	Version, Commit, Date = version, commit, date
}

func TestShort(t *testing.T) {
	withBuild(t, "dev", "unknown", "unknown")
	assert.Equal(t, "dev", Short())

	withBuild(t, "dev", "a1b2c3d", "unknown")
	assert.Equal(t, "a1b2c3d", Short())

	withBuild(t, "v0.3.0", "a1b2c3d", "unknown")
	assert.Equal(t, "v0.3.0", Short())
}

func TestBanner(t *testing.T) {
	withBuild(t, "v0.3.0", "", "")
	assert.Equal(t, "joydial v0.3.0", Banner())

	withBuild(t, "v0.3.0", "", "2026-10-01")
	assert.Equal(t, "joydial v0.3.0 (2026-10-01)", Banner())
}
