package common

import (
	"fmt"
	"strconv"
	"strings"
)

// KeyCode identifies a physical or logical key.
// Values match GLFW key codes, which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
type KeyCode int32

// KeyState is a raw key report from the platform layer: the key code and, when the
// platform could decode one, the character it produces. Char is 0 when unknown.
type KeyState struct {
	Code KeyCode
	Char rune
}

// Virtual key codes for cross-platform input handling.
const (
	KeyUnknown KeyCode = -1

	KeySpace      KeyCode = 32 // Spacebar (ASCII)
	KeyApostrophe KeyCode = 39
	KeyComma      KeyCode = 44
	KeyMinus      KeyCode = 45
	KeyPeriod     KeyCode = 46
	KeySlash      KeyCode = 47

	Key0 KeyCode = 48 // 0 key (ASCII)
	Key1 KeyCode = 49
	Key2 KeyCode = 50
	Key3 KeyCode = 51
	Key4 KeyCode = 52
	Key5 KeyCode = 53
	Key6 KeyCode = 54
	Key7 KeyCode = 55
	Key8 KeyCode = 56
	Key9 KeyCode = 57

	KeyA KeyCode = 65 // A key (ASCII)
	KeyB KeyCode = 66
	KeyC KeyCode = 67
	KeyD KeyCode = 68
	KeyE KeyCode = 69
	KeyF KeyCode = 70
	KeyG KeyCode = 71
	KeyH KeyCode = 72
	KeyI KeyCode = 73
	KeyJ KeyCode = 74
	KeyK KeyCode = 75
	KeyL KeyCode = 76
	KeyM KeyCode = 77
	KeyN KeyCode = 78
	KeyO KeyCode = 79
	KeyP KeyCode = 80
	KeyQ KeyCode = 81
	KeyR KeyCode = 82
	KeyS KeyCode = 83
	KeyT KeyCode = 84
	KeyU KeyCode = 85
	KeyV KeyCode = 86
	KeyW KeyCode = 87
	KeyX KeyCode = 88
	KeyY KeyCode = 89
	KeyZ KeyCode = 90
)

// Non-printable keys (GLFW values).
const (
	KeyEsc       KeyCode = 256
	KeyEnter     KeyCode = 257
	KeyTab       KeyCode = 258
	KeyBackspace KeyCode = 259
	KeyRight     KeyCode = 262
	KeyLeft      KeyCode = 263
	KeyDown      KeyCode = 264
	KeyUp        KeyCode = 265
	KeyPageUp    KeyCode = 266
	KeyPageDown  KeyCode = 267
	KeyHome      KeyCode = 268
	KeyEnd       KeyCode = 269

	KeyF1  KeyCode = 290
	KeyF2  KeyCode = 291
	KeyF3  KeyCode = 292
	KeyF4  KeyCode = 293
	KeyF5  KeyCode = 294
	KeyF6  KeyCode = 295
	KeyF7  KeyCode = 296
	KeyF8  KeyCode = 297
	KeyF9  KeyCode = 298
	KeyF10 KeyCode = 299
	KeyF11 KeyCode = 300
	KeyF12 KeyCode = 301

	KeyLeftShift    KeyCode = 340
	KeyLeftControl  KeyCode = 341
	KeyLeftAlt      KeyCode = 342
	KeyRightShift   KeyCode = 344
	KeyRightControl KeyCode = 345
	KeyRightAlt     KeyCode = 346
)

// keyNames maps lower-case configuration names to key codes.
// Letters and digits are resolved separately in KeyByName.
var keyNames = map[string]KeyCode{
	"space":         KeySpace,
	"apostrophe":    KeyApostrophe,
	"comma":         KeyComma,
	"minus":         KeyMinus,
	"period":        KeyPeriod,
	"slash":         KeySlash,
	"escape":        KeyEsc,
	"esc":           KeyEsc,
	"enter":         KeyEnter,
	"tab":           KeyTab,
	"backspace":     KeyBackspace,
	"right":         KeyRight,
	"left":          KeyLeft,
	"down":          KeyDown,
	"up":            KeyUp,
	"page_up":       KeyPageUp,
	"page_down":     KeyPageDown,
	"home":          KeyHome,
	"end":           KeyEnd,
	"left_shift":    KeyLeftShift,
	"left_control":  KeyLeftControl,
	"left_ctrl":     KeyLeftControl,
	"left_alt":      KeyLeftAlt,
	"right_shift":   KeyRightShift,
	"right_control": KeyRightControl,
	"right_ctrl":    KeyRightControl,
	"right_alt":     KeyRightAlt,
}

// canonicalNames is the reverse of keyNames with one preferred name per code.
var canonicalNames = func() map[KeyCode]string {
	out := make(map[KeyCode]string, len(keyNames))
	for name, code := range keyNames {
		if prev, ok := out[code]; !ok || len(name) > len(prev) {
			out[code] = name
		}
	}
	return out
}()

// KeyByName resolves a case-insensitive key name such as "W", "7", "space",
// "left_shift" or "f5" to its key code.
//
// Parameters:
//   - name: the key name
//
// Returns:
//   - KeyCode: the resolved code, or KeyUnknown
//   - bool: false if the name is not recognized
func KeyByName(name string) (KeyCode, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	if len(n) == 1 {
		c := n[0]
		switch {
		case c >= 'a' && c <= 'z':
			return KeyA + KeyCode(c-'a'), true
		case c >= '0' && c <= '9':
			return Key0 + KeyCode(c-'0'), true
		}
	}
	if strings.HasPrefix(n, "f") && len(n) <= 3 {
		if i, err := strconv.Atoi(n[1:]); err == nil && i >= 1 && i <= 12 {
			return KeyF1 + KeyCode(i-1), true
		}
	}
	if code, ok := keyNames[n]; ok {
		return code, true
	}
	return KeyUnknown, false
}

// ParseKey is KeyByName with an error for unknown names.
func ParseKey(name string) (KeyCode, error) {
	code, ok := KeyByName(name)
	if !ok {
		return KeyUnknown, fmt.Errorf("unknown key name %q", name)
	}
	return code, nil
}

// String returns the configuration name of the key, or Key(<n>) if it has none.
func (k KeyCode) String() string {
	switch {
	case k >= KeyA && k <= KeyZ, k >= Key0 && k <= Key9:
		return string(rune(k))
	case k >= KeyF1 && k <= KeyF12:
		return "F" + strconv.Itoa(int(k-KeyF1)+1)
	}
	if name, ok := canonicalNames[k]; ok {
		return name
	}
	return "Key(" + strconv.Itoa(int(k)) + ")"
}
