package main

// These constants come from /usr/include/X11/keysymdef.h and XF86keysym.h.

import (
	"fmt"

	xp "github.com/BurntSushi/xgb/xproto"
)

const (
	xkTab       = 0xff09
	xkReturn    = 0xff0d
	xkPrint     = 0xff61
	xkSuperL    = 0xffeb
	xkSuperR    = 0xffec
	xkCapsLock  = 0xffe5
	xkAltL      = 0xffe9
	xkHyperL    = 0xffed
	xkControlL  = 0xffe3
	xkShiftL    = 0xffe1
	xkShiftLock = 0xffe6

	xkMonBrightnessUp   = 0x1008ff02
	xkMonBrightnessDown = 0x1008ff03
	xkAudioLowerVolume  = 0x1008ff11
	xkAudioMute         = 0x1008ff12
	xkAudioRaiseVolume  = 0x1008ff13
)

var keysymNames = map[xp.Keysym]string{
	xkTab:               "Tab",
	xkReturn:            "Return",
	xkPrint:             "Print",
	xkSuperL:            "SuperL",
	xkSuperR:            "SuperR",
	xkCapsLock:          "CapsLock",
	xkAltL:              "AltL",
	xkHyperL:            "HyperL",
	xkControlL:          "ControlL",
	xkShiftL:            "ShiftL",
	xkShiftLock:         "ShiftLock",
	xkMonBrightnessUp:   "XF86MonBrightnessUp",
	xkMonBrightnessDown: "XF86MonBrightnessDown",
	xkAudioLowerVolume:  "XF86AudioLowerVolume",
	xkAudioMute:         "XF86AudioMute",
	xkAudioRaiseVolume:  "XF86AudioRaiseVolume",
}

func keysymString(keysym xp.Keysym) string {
	if s, ok := keysymNames[keysym]; ok {
		return s
	}
	if ' ' < keysym && keysym < 0x7f {
		return string(rune(keysym))
	}
	return fmt.Sprintf("0x%x", uint32(keysym))
}
