package widget

import (
	"image/color"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeOptions(t *testing.T) {
	defaults := map[string]any{
		"font":       "JetBrainsMono Nerd Font ExtraBold",
		"fontsize":   16,
		"background": "#1a1b26",
		"foreground": "#d2d9f8",
		"padding":    0,
	}
	raw := map[string]any{
		"fmt":             "VOL {}",
		"fontsize":        "18",
		"emoji":           "true",
		"emoji_list":      []any{"a", "b", "c", "d"},
		"update_interval": 1,
		"colour_scheme":   "dark",
	}
	opts, unused, err := DecodeOptions(defaults, raw)
	require.NoError(t, err)

	want := Options{
		Font:           "JetBrainsMono Nerd Font ExtraBold",
		FontSize:       18,
		Background:     "#1a1b26",
		Foreground:     "#d2d9f8",
		Fmt:            "VOL {}",
		Emoji:          true,
		EmojiList:      []string{"a", "b", "c", "d"},
		UpdateInterval: 1,
	}
	if diff := cmp.Diff(want, opts, cmpopts.IgnoreFields(Options{}, "Logger")); diff != "" {
		t.Errorf("DecodeOptions mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"colour_scheme"}, unused)
	assert.Equal(t, time.Second, opts.interval(time.Minute))
}

func TestDecodeOptionsDefaultFmt(t *testing.T) {
	opts, _, err := DecodeOptions(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", opts.Fmt)
	assert.Equal(t, 200*time.Millisecond, opts.interval(200*time.Millisecond))
}

func TestDecodeOptionsErrors(t *testing.T) {
	_, _, err := DecodeOptions(nil, map[string]any{"foreground": "green"})
	assert.ErrorContains(t, err, "foreground")

	_, _, err = DecodeOptions(nil, map[string]any{"update_interval": -1})
	assert.ErrorContains(t, err, "update_interval")

	_, _, err = DecodeOptions(nil, map[string]any{"padding": "wide"})
	assert.Error(t, err)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#d2d9f8")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0xd2, G: 0xd9, B: 0xf8, A: 0xff}, c)

	_, err = ParseColor("d2d9f8")
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "x", Format("", "x"))
	assert.Equal(t, "x", Format("{}", "x"))
	assert.Equal(t, "KEY us", Format("KEY {}", "us"))
	assert.Equal(t, "a {}", Format("{} {}", "a"))
}
