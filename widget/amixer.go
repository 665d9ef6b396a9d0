package widget

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
)

// AmixerSource reads the volume of a mixer control with amixer(1).
type AmixerSource struct {
	Card    string // Empty for the default card.
	Channel string // Defaults to Master.
}

func (a AmixerSource) Volume(ctx context.Context) (int, error) {
	args := []string{}
	if a.Card != "" {
		args = append(args, "-c", a.Card)
	}
	ch := a.Channel
	if ch == "" {
		ch = "Master"
	}
	args = append(args, "sget", ch)
	out, err := exec.CommandContext(ctx, "amixer", args...).Output()
	if err != nil {
		return 0, fmt.Errorf("amixer: %w", err)
	}
	return ParseAmixer(out)
}

var (
	amixerPercent = regexp.MustCompile(`\[(\d{1,3})%\]`)
	amixerOff     = regexp.MustCompile(`\[off\]`)
)

var errNoVolume = errors.New("no volume level in amixer output")

// ParseAmixer extracts the first channel's level from `amixer sget` output.
// A switched-off channel reads as Muted.
func ParseAmixer(out []byte) (int, error) {
	if amixerOff.Match(out) {
		return Muted, nil
	}
	m := amixerPercent.FindSubmatch(out)
	if m == nil {
		return 0, errNoVolume
	}
	return strconv.Atoi(string(m[1]))
}
