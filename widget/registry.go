package widget

import (
	"fmt"
	"sort"
)

var constructors = map[string]func(Options) Widget{
	"battery":       func(o Options) Widget { return NewBattery(o) },
	"clock":         func(o Options) Widget { return NewClock(o) },
	"currentlayout": func(o Options) Widget { return NewCurrentLayout(o) },
	"groupbox":      func(o Options) Widget { return NewGroupBox(o) },
	"memory":        func(o Options) Widget { return NewMemory(o) },
	"textbox":       func(o Options) Widget { return NewTextBox(o) },
	"volume":        func(o Options) Widget { return NewVolume(o, AmixerSource{}) },
	"windowname":    func(o Options) Widget { return NewWindowName(o) },
	"wlan":          func(o Options) Widget { return NewWlan(o) },
}

// New builds a widget by type name.
func New(kind string, opts Options) (Widget, error) {
	c, ok := constructors[kind]
	if !ok {
		return nil, fmt.Errorf("unknown widget type %q", kind)
	}
	return c(opts), nil
}

// Kinds lists the widget type names New accepts.
func Kinds() []string {
	kinds := make([]string, 0, len(constructors))
	for k := range constructors {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
