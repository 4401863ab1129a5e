package execution

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstallationReport(t *testing.T) {
	t.Parallel()

	r := NewInstallationReport()
	r.Record("packages", true, "")
	r.Record("gray", false, "artifact missing")
	r.Record("matugen", true, "2.4.1")

	assert.Equal(t, 3, r.Len())
	assert.Equal(t, []string{"packages", "matugen"}, r.Passed())
	assert.Equal(t, []string{"gray"}, r.Failed())
	assert.False(t, r.AllPassed())

	entries := r.Entries()
	assert.Equal(t, "packages", entries[0].Component)
	assert.Equal(t, "gray", entries[1].Component)
	assert.Equal(t, "matugen", entries[2].Component)
}

func TestInstallationReport_RecordAgain(t *testing.T) {
	t.Parallel()

	r := NewInstallationReport()
	r.Record("python", true, "gi")
	r.Record("fonts", true, "")
	r.Record("python", false, "import fabric failed")
	r.Record("python", true, "psutil")

	e, ok := r.Get("python")
	assert.True(t, ok)
	assert.False(t, e.Verified, "one failed check fails the component")
	assert.Equal(t, "import fabric failed; gi; psutil", e.Detail)
	assert.Equal(t, "python", r.Entries()[0].Component, "position is kept")

	_, ok = r.Get("missing")
	assert.False(t, ok)
}

func TestInstallationReport_EmptyPasses(t *testing.T) {
	t.Parallel()

	r := NewInstallationReport()
	assert.True(t, r.AllPassed())
	assert.Empty(t, r.Failed())
}
