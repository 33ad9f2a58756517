package host

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDetect(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "proc/version", "Linux version 6.8.0-45-generic (buildd@lcy02) #45-Ubuntu SMP\n")
	writeFile(t, root, "proc/cpuinfo", `processor	: 0
vendor_id	: GenuineIntel
model name	: Intel(R) Xeon(R) Gold 6130 CPU @ 2.10GHz
physical id	: 0

processor	: 1
vendor_id	: GenuineIntel
model name	: Intel(R) Xeon(R) Gold 6130 CPU @ 2.10GHz
physical id	: 1
`)
	writeFile(t, root, "proc/self/clear_refs", "")
	writeFile(t, root, "proc/sys/vm/unprivileged_userfaultfd", "1\n")

	hc, err := Detect(root)
	require.NoError(t, err)

	assert.Equal(t, "6.8.0-45-generic", hc.KernelVersion)
	assert.Equal(t, "GenuineIntel", hc.CPUVendor)
	assert.Equal(t, "Intel(R) Xeon(R) Gold 6130 CPU @ 2.10GHz", hc.CPUModel)
	assert.Equal(t, 2, hc.NumSockets)
	assert.Positive(t, hc.PageSize)
	assert.Equal(t, TrackingSupport{SoftDirty: true, Userfaultfd: true, UnprivilegedUserfaultfd: true}, hc.Tracking)
}

func TestDetect_EmptyRoot(t *testing.T) {
	hc, err := Detect(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "unknown", hc.KernelVersion)
	assert.Equal(t, "unknown", hc.CPUModel)
	assert.Equal(t, 1, hc.NumSockets)
	assert.Equal(t, TrackingSupport{}, hc.Tracking)
}

func TestDetect_UserfaultfdDevice(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "dev/userfaultfd", "")
	writeFile(t, root, "proc/sys/vm/unprivileged_userfaultfd", "0")

	hc, err := Detect(root)
	require.NoError(t, err)
	assert.True(t, hc.Tracking.Userfaultfd)
	assert.False(t, hc.Tracking.UnprivilegedUserfaultfd)
}
