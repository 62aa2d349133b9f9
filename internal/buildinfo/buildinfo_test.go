package buildinfo

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintBuildData(t *testing.T) {
	oldV, oldD, oldC := Version, Date, Commit
	t.Cleanup(func() { Version, Date, Commit = oldV, oldD, oldC })
	Version, Date, Commit = "v1.2.3", "2025-01-02", "deadbeef"

	var buf bytes.Buffer
	PrintBuildData(&buf)

	assert.Equal(t, "Build version: v1.2.3\nBuild date: 2025-01-02\nBuild commit: deadbeef\n", buf.String())
	assert.Equal(t, "v1.2.3 (commit deadbeef, built 2025-01-02)", String())
}
