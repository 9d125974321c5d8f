package appstate

import (
	"golang.org/x/mobile/event/key"
)

// Action names a user command that can be bound to keys.
type Action string

const (
	ActionSquareBrush Action = "square-brush"
	ActionRoundBrush  Action = "round-brush"
	ActionEraser      Action = "eraser"
	ActionPicker      Action = "picker"
	ActionFill        Action = "fill"
	ActionBrushGrow   Action = "brush-grow"
	ActionBrushShrink Action = "brush-shrink"
	ActionSwapColors  Action = "swap-colors"
	ActionZoomIn      Action = "zoom-in"
	ActionZoomOut     Action = "zoom-out"
	ActionZoomFit     Action = "zoom-fit"
	ActionUndo        Action = "undo"
	ActionRedo        Action = "redo"
	ActionSave        Action = "save"
	ActionSaveAs      Action = "save-as"
	ActionOpen        Action = "open"
	ActionCopy        Action = "copy"
	ActionPaste       Action = "paste"
	ActionQuit        Action = "quit"
)

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
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

// Shortcuts lists the default key bindings.
var Shortcuts = map[Action]KeyboardShortcuts{
	ActionSquareBrush: shortcutList{{Code: key.CodeB}},
	ActionRoundBrush:  shortcutList{{Code: key.CodeR}},
	ActionEraser:      shortcutList{{Code: key.CodeE}},
	ActionPicker:      shortcutList{{Code: key.CodeI}},
	ActionFill:        shortcutList{{Code: key.CodeF}},
	ActionBrushGrow:   shortcutList{{Code: key.CodeRightSquareBracket}},
	ActionBrushShrink: shortcutList{{Code: key.CodeLeftSquareBracket}},
	ActionSwapColors:  shortcutList{{Code: key.CodeX}},
	ActionZoomIn: shortcutList{
		{Code: key.CodeEqualSign},
		{Code: key.CodeEqualSign, Modifiers: key.ModShift},
		{Code: key.CodeKeypadPlusSign},
	},
	ActionZoomOut: shortcutList{
		{Code: key.CodeHyphenMinus},
		{Code: key.CodeKeypadHyphenMinus},
	},
	ActionZoomFit: shortcutList{{Code: key.Code0}, {Code: key.CodeKeypad0}},
	ActionUndo:    shortcutList{{Code: key.CodeZ, Modifiers: key.ModControl}},
	ActionRedo: shortcutList{
		{Code: key.CodeY, Modifiers: key.ModControl},
		{Code: key.CodeZ, Modifiers: key.ModControl | key.ModShift},
	},
	ActionSave:   shortcutList{{Code: key.CodeS, Modifiers: key.ModControl}},
	ActionSaveAs: shortcutList{{Code: key.CodeS, Modifiers: key.ModControl | key.ModShift}},
	ActionOpen:   shortcutList{{Code: key.CodeO, Modifiers: key.ModControl}},
	ActionCopy:   shortcutList{{Code: key.CodeC, Modifiers: key.ModControl}},
	ActionPaste:  shortcutList{{Code: key.CodeV, Modifiers: key.ModControl}},
	ActionQuit:   shortcutList{{Code: key.CodeQ}, {Code: key.CodeQ, Modifiers: key.ModControl}},
}

var keyboardAction = func() map[KeyShortcut]Action {
	m := make(map[KeyShortcut]Action)
	for a, ks := range Shortcuts {
		for _, k := range ks.KeyboardShortcuts() {
			m[k] = a
		}
	}
	return m
}()

const modMask = key.ModShift | key.ModControl | key.ModAlt

// actionFor maps a key press to its action. Shift is ignored for bindings
// that do not mention it, so "+" works with or without the shift key.
func actionFor(e key.Event) (Action, bool) {
	ks := KeyShortcut{Code: e.Code, Modifiers: e.Modifiers & modMask}
	if a, ok := keyboardAction[ks]; ok {
		return a, true
	}
	if ks.Modifiers&key.ModShift != 0 {
		ks.Modifiers &^= key.ModShift
		a, ok := keyboardAction[ks]
		return a, ok
	}
	return "", false
}

func isAlt(c key.Code) bool { return c == key.CodeLeftAlt || c == key.CodeRightAlt }
