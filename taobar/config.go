package main

import (
	"time"
)

const (
	// modKeysym is the key to trigger taobar actions. Holding it grabs the
	// keyboard, so the next key press is looked up in actions.
	modKeysym = xkSuperL

	// quitDuration is the grace period, when quitting, for programs to exit
	// cleanly.
	quitDuration = 10 * time.Second

	// restartEnv is set in the environment of a restarted taobar, so that
	// startup-once hooks do not fire again.
	restartEnv = "TAOBAR_RESTARTED"
)

// command names a command from the configuration.
type command int

const (
	cmdTerminal command = iota
	cmdLauncher
	cmdScreenshot
	cmdPoweroff
)

// scriptCall runs the volume or brightness script with one argument.
type scriptCall struct {
	brightness bool
	arg        string
}

// actions lists the action to be performed for each key press. The do function
// returns whether the group needs to be re-arranged.
//
// The map keys are X11 keysyms as int32s. The unary +/^ means whether the
// shift modifier needs to be absent/present.
var actions = map[int32]struct {
	do  func(*group, interface{}) bool
	arg interface{}
}{
	^xkReturn: {doCommand, cmdTerminal},
	+'p':      {doCommand, cmdLauncher},
	+'s':      {doCommand, cmdScreenshot},
	+xkPrint:  {doCommand, cmdScreenshot},
	^'Q':      {doCommand, cmdPoweroff},

	+xkAudioLowerVolume:  {doScript, scriptCall{false, "down"}},
	+xkAudioRaiseVolume:  {doScript, scriptCall{false, "up"}},
	+xkAudioMute:         {doScript, scriptCall{false, "mute"}},
	+xkMonBrightnessUp:   {doScript, scriptCall{true, "up"}},
	+xkMonBrightnessDown: {doScript, scriptCall{true, "down"}},

	+'l':      {doGrow, true},
	+'h':      {doGrow, false},
	+'j':      {doFocus, next},
	+'k':      {doFocus, prev},
	+xkReturn: {doSwapMain, nil},
	^'H':      {doShuffle, 'h'},
	^'J':      {doShuffle, 'j'},
	^'K':      {doShuffle, 'k'},
	^'L':      {doShuffle, 'l'},

	+xkTab: {doNextLayout, nil},
	+'q':   {doKill, nil},
	+'f':   {doToggleFloating, nil},
	^'R':   {doRestart, nil},
	^'E':   {doQuit, nil},

	+'1': {doToScreen, 0},
	+'2': {doToScreen, 1},
	+'3': {doToScreen, 2},
	+'4': {doToScreen, 3},
	+'5': {doToScreen, 4},
	+'6': {doToScreen, 5},
	+'7': {doToScreen, 6},
	+'8': {doToScreen, 7},
	+'9': {doToScreen, 8},

	// Shifted digits, as on a US keyboard.
	^'!': {doToGroup, 0},
	^'@': {doToGroup, 1},
	^'#': {doToGroup, 2},
	^'$': {doToGroup, 3},
	^'%': {doToGroup, 4},
	^'^': {doToGroup, 5},
	^'&': {doToGroup, 6},
	^'*': {doToGroup, 7},
	^'(': {doToGroup, 8},
}
