package widget

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const amixerOn = `Simple mixer control 'Master',0
  Capabilities: pvolume pswitch pswitch-joined
  Playback channels: Front Left - Front Right
  Limits: Playback 0 - 65536
  Mono:
  Front Left: Playback 26214 [40%] [on]
  Front Right: Playback 26214 [40%] [on]
`

func TestParseAmixer(t *testing.T) {
	v, err := ParseAmixer([]byte(amixerOn))
	require.NoError(t, err)
	assert.Equal(t, 40, v)

	v, err = ParseAmixer([]byte(strings.ReplaceAll(amixerOn, "[on]", "[off]")))
	require.NoError(t, err)
	assert.Equal(t, Muted, v)

	_, err = ParseAmixer([]byte("amixer: Unable to find simple control 'Master',0\n"))
	assert.ErrorIs(t, err, errNoVolume)
}

const meminfo = `MemTotal:       16384000 kB
MemFree:         4096000 kB
MemAvailable:    9216000 kB
Buffers:          512000 kB
Cached:          3072000 kB
SReclaimable:     512000 kB
HugePages_Total:       0
`

// writeProc lays out files under a fake proc or sys root.
func writeProc(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, data := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	}
	return root
}

func TestReadMemInfo(t *testing.T) {
	m, err := ReadMemInfo(writeProc(t, map[string]string{"meminfo": meminfo}))
	require.NoError(t, err)
	assert.Equal(t, uint64(16384000), m["MemTotal"])
	assert.Equal(t, uint64(8192000), m.Used())

	assert.Equal(t, "MEM 8000M", m.Format("MEM {MemUsed:.0f}M"))
	assert.Equal(t, "16000.0/9000", m.Format("{MemTotal:.1f}/{MemAvailable}"))
	assert.Equal(t, "{HugePages_Total}", m.Format("{HugePages_Total}"))
	assert.Equal(t, "SWAP 0", m.Format("SWAP {SwapUsed}"))

	_, err = ReadMemInfo(writeProc(t, map[string]string{"meminfo": "MemFree: 1 kB\n"}))
	assert.Error(t, err)
	_, err = ReadMemInfo(t.TempDir())
	assert.Error(t, err)
}

func TestMemInfoUsedNeverNegative(t *testing.T) {
	m := MemInfo{"MemTotal": 100, "MemFree": 80, "Cached": 40}
	assert.Equal(t, uint64(0), m.Used())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", truncate("hello", 0))
	assert.Equal(t, "hello", truncate("hello", 5))
	assert.Equal(t, "hel…", truncate("hello", 3))
	assert.Equal(t, "жур…", truncate("журнал", 3))
}
