/*
Taobar is a keyboard driven tiling window manager for X11 with a status bar
on every screen. The bar is made of widgets that react to window manager
events: the current layout, the focused window's name, the groups, and
polled values such as the volume, memory use, battery charge, wireless
link and the time.


INSTALLATION

To install taobar:
	1. Install Go.
	2. Run "go install github.com/taobar/taobar/taobar@latest".

Taobar is designed to run from an Xsession session. Add this line to the end
of your ~/.xsession file:
	/path/to/your/taobar
where the path is wherever "go install" wrote to.


USAGE

Every key binding involves first holding down the Super key, typically the
'Windows' key between the left Control and Alt keys.

Windows live in groups, named 1 to 9. Each screen shows one group. Super and
a number key shows that group on the screen holding the mouse pointer; if the
group is already shown on another screen, the two screens swap groups. Super
and Shift and a number key moves the focused window to that group.

A group arranges its windows with a layout. The monadtall layout puts one
window in a main pane on the left and stacks the others in rows on the right.
The max layout shows only the focused window. Super and Tab switches between
them. In monadtall, Super and 'L' or 'H' grows or shrinks the main pane,
Super and 'J' or 'K' moves the focus down or up the stack, and Super and Enter
swaps the focused window with the main pane. Super and Shift and 'H', 'J',
'K' or 'L' moves the focused window within the stack.

Focus follows the mouse. Super and 'Q' closes the focused window, and Super
and 'F' toggles whether it floats above the tiled windows. Dialogs, password
prompts and the windows matched by the float rules in the configuration
float from the start.

Super and Shift and Enter opens a terminal, Super and 'P' opens the launcher,
and Super and 'S' (or the Print key) takes a screenshot. The volume and
brightness keys work without Super, and run the scripts named in the
configuration with an "up", "down" or "mute" argument.

Super and Shift and 'R' restarts taobar in place, Super and Shift and 'E'
quits, and Super and Shift and 'Q' powers the machine off.


CUSTOMIZATION

The built-in settings are in the config package. Any of them can be
overridden from ~/.config/taobar/config.yaml, or the file named by --config:
	terminal: [xterm]
	wallpaper: ~/pictures/mountains.png
	bar:
	  widgets:
	    - type: currentlayout
	      fmt: "{} "
	    - type: windowname
	    - type: volume
	      emoji: true
	    - type: wlan
	      interface: wlp2s0
	    - type: clock
	      format: "%a %H:%M"
Run "taobar check" to validate the file, and "taobar preview" to see the bar
in the terminal.

The autostart script, ~/.config/taobar/scripts/xorg_autostart.sh by default,
runs once when taobar first starts, but not when it restarts.


DEVELOPMENT

When working on taobar, it can be run in a nested X server such as Xephyr:
	Xephyr :9 2>/dev/null &
	DISPLAY=:9 go run ./taobar -v --metrics-addr localhost:9100
Prometheus metrics, including a count of every hook fired, are then served
at http://localhost:9100/metrics.
*/
package main
