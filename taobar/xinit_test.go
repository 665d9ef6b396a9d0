package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taobar/taobar/config"
)

func TestEncodeXSettings(t *testing.T) {
	got, err := encodeXSettings([]xSetting{
		{"A/b", 1},
		{"S", "xy"},
	})
	require.NoError(t, err)
	want := []byte{
		0, 0, 0, 0, // Little-endian.
		0, 0, 0, 0, // Serial.
		2, 0, 0, 0, // Count.

		0, 0, // Integer.
		3, 0, 'A', '/', 'b', 0,
		0, 0, 0, 0,
		1, 0, 0, 0,

		1, 0, // String.
		1, 0, 'S', 0, 0, 0,
		0, 0, 0, 0,
		2, 0, 0, 0, 'x', 'y', 0, 0,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("encodeXSettings mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeXSettingsLongName(t *testing.T) {
	name := string(make([]byte, 300))
	got, err := encodeXSettings([]xSetting{{name, 0}})
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0x2c, 0x01}, got[12:16], "name length is little-endian")
}

func TestEncodeXSettingsRejectsUnknownType(t *testing.T) {
	_, err := encodeXSettings([]xSetting{{"Xft/DPI", 96.0}})
	assert.ErrorContains(t, err, "Xft/DPI")
}

func TestXSettingsFontFromWidgetDefaults(t *testing.T) {
	cfg = config.Default()
	ss := xSettings()
	var font interface{}
	for _, s := range ss {
		if s.name == "Gtk/FontName" {
			font = s.value
		}
	}
	assert.Equal(t, "JetBrainsMono Nerd Font ExtraBold 16", font)

	_, err := encodeXSettings(ss)
	assert.NoError(t, err)
}

func TestPixel(t *testing.T) {
	assert.Equal(t, uint32(0xd2d9f8), pixel("#d2d9f8"))
}
