package snapshot

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileURL(t *testing.T) {
	dir := t.TempDir()

	got, err := FileURL(filepath.Join(dir, "report with space.html"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, "file:///"), got)
	assert.True(t, strings.HasSuffix(got, "/report%20with%20space.html"), got)
}

func TestOptionsDefaults(t *testing.T) {
	o := Options{}.withDefaults()
	assert.Equal(t, 60*time.Second, o.Timeout)
	assert.Equal(t, 2*time.Second, o.Settle)

	o = Options{Timeout: time.Second, Settle: time.Millisecond}.withDefaults()
	assert.Equal(t, time.Second, o.Timeout)
	assert.Equal(t, time.Millisecond, o.Settle)
}
