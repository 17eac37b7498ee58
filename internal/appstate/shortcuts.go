package appstate

import (
	"unicode"

	"golang.org/x/mobile/event/key"
)

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// KeyboardShortcuts returns the shortcuts associated with an action.
type KeyboardShortcuts interface {
	KeyboardShortcuts() []KeyShortcut
}

// shortcutList is a helper to easily satisfy the KeyboardShortcuts interface.
type shortcutList []KeyShortcut

func (s shortcutList) KeyboardShortcuts() []KeyShortcut { return []KeyShortcut(s) }

const modMask = key.ModShift | key.ModControl | key.ModAlt | key.ModMeta

// keymap maps shortcuts to action names.
type keymap map[KeyShortcut]string

func (m keymap) register(name string, keys KeyboardShortcuts) {
	for _, sc := range keys.KeyboardShortcuts() {
		m[sc] = name
	}
}

// defaultKeymap returns the board's keyboard bindings.
func defaultKeymap() keymap {
	m := keymap{}
	m.register("pen", shortcutList{{Rune: 'p'}})
	m.register("rect", shortcutList{{Rune: 'x'}})
	m.register("circle", shortcutList{{Rune: 'o'}})
	m.register("eraser", shortcutList{{Rune: 'e'}})
	m.register("hand", shortcutList{{Rune: 'h'}})
	m.register("select", shortcutList{{Rune: 'v'}})
	m.register("undo", shortcutList{{Rune: 'z', Modifiers: key.ModControl}})
	m.register("redo", shortcutList{
		{Rune: 'y', Modifiers: key.ModControl},
		{Rune: 'z', Modifiers: key.ModControl | key.ModShift},
	})
	m.register("zoomin", shortcutList{{Rune: '+'}, {Rune: '='}})
	m.register("zoomout", shortcutList{{Rune: '-'}})
	m.register("resetview", shortcutList{{Rune: '0'}})
	m.register("save", shortcutList{{Rune: 's', Modifiers: key.ModControl}})
	m.register("copy", shortcutList{{Rune: 'c', Modifiers: key.ModControl}})
	m.register("clear", shortcutList{{Code: key.CodeDeleteForward}, {Code: key.CodeDeleteBackspace}})
	m.register("cancel", shortcutList{{Code: key.CodeEscape}})
	m.register("quit", shortcutList{{Rune: 'q'}})
	return m
}

// lookup finds the action for a key press. Letters match case-insensitively;
// shift is ignored for keys whose shifted form is its own rune, such as '+'.
func (m keymap) lookup(e key.Event) (string, bool) {
	mods := e.Modifiers & modMask
	if e.Rune > 0 {
		r := unicode.ToLower(e.Rune)
		if mods&key.ModControl != 0 && r < 0x20 {
			r += 'a' - 1
		}
		if name, ok := m[KeyShortcut{Rune: r, Modifiers: mods}]; ok {
			return name, true
		}
		if !unicode.IsLetter(r) {
			if name, ok := m[KeyShortcut{Rune: r, Modifiers: mods &^ key.ModShift}]; ok {
				return name, true
			}
		}
	}
	name, ok := m[KeyShortcut{Code: e.Code, Modifiers: mods}]
	return name, ok
}
