package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/pang/game"
)

// Terminals report key presses and auto-repeats but never releases, so a
// movement key is treated as held until holdTicks pass without a repeat.
const holdTicks = 9

// Keys turns tcell key events into per-tick game input.
type Keys struct {
	moveX     float32
	moveHold  int
	fire      bool
	pause     bool
	restart   bool
	quit      bool
	overlays  bool
	speedStep int
}

// Handle records one event. It returns false once the user asked to quit.
func (k *Keys) Handle(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyCtrlQ:
		k.quit = true
	case tcell.KeyLeft:
		k.move(-1)
	case tcell.KeyRight:
		k.move(1)
	case tcell.KeyDown:
		k.moveX, k.moveHold = 0, 0
	case tcell.KeyUp:
		k.fire = true
	case tcell.KeyEscape:
		k.pause = true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'h':
			k.move(-1)
		case 'd', 'l':
			k.move(1)
		case 's', 'j':
			k.moveX, k.moveHold = 0, 0
		case ' ', 'w', 'k':
			k.fire = true
		case 'p':
			k.pause = true
		case 'r':
			k.restart = true
		case 'q':
			k.quit = true
		case 'o':
			k.overlays = !k.overlays
		case '+', '=':
			k.speedStep++
		case '-':
			k.speedStep--
		}
	}
	return !k.quit
}

func (k *Keys) move(dir float32) {
	k.moveX = dir
	k.moveHold = holdTicks
}

// Next returns this tick's input and clears the edge-triggered flags.
func (k *Keys) Next() game.Input {
	in := game.Input{
		MoveX:   k.moveX,
		Fire:    k.fire,
		Pause:   k.pause,
		Restart: k.restart,
	}
	k.fire, k.pause, k.restart = false, false, false

	if k.moveHold > 0 {
		k.moveHold--
		if k.moveHold == 0 {
			k.moveX = 0
		}
	}
	return in
}

// SpeedDelta returns and clears pending speed changes.
func (k *Keys) SpeedDelta() int {
	d := k.speedStep
	k.speedStep = 0
	return d
}

// Quit reports whether the user asked to leave.
func (k *Keys) Quit() bool { return k.quit }

// ShowStats reports whether the stats line is toggled on.
func (k *Keys) ShowStats() bool { return k.overlays }
