package input

import (
	"fmt"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/snekecs/snek/internal/core/event"
)

var namedKeys = map[string]tcell.Key{
	"Up":     tcell.KeyUp,
	"Down":   tcell.KeyDown,
	"Left":   tcell.KeyLeft,
	"Right":  tcell.KeyRight,
	"Esc":    tcell.KeyEscape,
	"Enter":  tcell.KeyEnter,
	"Ctrl+C": tcell.KeyCtrlC,
}

// KeyMap resolves terminal key events to actions.
type KeyMap struct {
	runes map[rune]event.Action
	keys  map[tcell.Key]event.Action
}

// ParseKeyMap builds a KeyMap from config bindings (key name -> action name).
// A key name is either a single character or one of the named keys above.
func ParseKeyMap(bindings map[string]string) (KeyMap, error) {
	km := KeyMap{
		runes: make(map[rune]event.Action, len(bindings)),
		keys:  make(map[tcell.Key]event.Action, len(bindings)),
	}
	for name, actionName := range bindings {
		a, ok := event.ParseAction(actionName)
		if !ok || a == event.ActionNone {
			return KeyMap{}, fmt.Errorf("key %q: unknown action %q", name, actionName)
		}
		if k, ok := namedKeys[name]; ok {
			km.keys[k] = a
			continue
		}
		if utf8.RuneCountInString(name) == 1 {
			r, _ := utf8.DecodeRuneInString(name)
			km.runes[r] = a
			continue
		}
		return KeyMap{}, fmt.Errorf("unknown key name %q", name)
	}
	return km, nil
}

// Resolve maps a key event to an action, ActionNone when unbound.
func (km KeyMap) Resolve(ev *tcell.EventKey) event.Action {
	if ev.Key() == tcell.KeyRune {
		return km.runes[ev.Rune()]
	}
	return km.keys[ev.Key()]
}
