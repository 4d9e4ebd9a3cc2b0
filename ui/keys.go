package ui

import "github.com/svanichkin/memwatch/watch"

// KeyCode names the non-printable keys the view understands.
type KeyCode uint8

const (
	KeyRune KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyPageUp
	KeyPageDown
)

// Key is one decoded key press.
type Key struct {
	Code KeyCode
	Rune rune
}

func runeKey(r rune) Key { return Key{Code: KeyRune, Rune: r} }

// DefaultKeymap binds keys to commands.
func DefaultKeymap() map[Key]watch.Command {
	return map[Key]watch.Command{
		runeKey('q'):        watch.Cmd(watch.Quit),
		runeKey(' '):        watch.Cmd(watch.ResetDiffState),
		runeKey('r'):        watch.Cmd(watch.ZeroDisplayOffset),
		runeKey(';'):        watch.Shift(-1),
		runeKey('\''):       watch.Shift(1),
		runeKey('['):        watch.Cmd(watch.ShrinkColumns),
		runeKey(']'):        watch.Cmd(watch.GrowColumns),
		runeKey(','):        watch.Cmd(watch.ShrinkBuffer),
		runeKey('.'):        watch.Cmd(watch.GrowBuffer),
		runeKey('-'):        watch.Cmd(watch.ShrinkBufferByRow),
		runeKey('='):        watch.Cmd(watch.GrowBufferByRow),
		runeKey('k'):        watch.Cmd(watch.ToggleKeepTouched),
		runeKey('w'):        watch.Cmd(watch.SaveSnapshot),
		{Code: KeyUp}:       watch.Cmd(watch.MoveUp),
		{Code: KeyDown}:     watch.Cmd(watch.MoveDown),
		{Code: KeyLeft}:     watch.Cmd(watch.MoveLeft),
		{Code: KeyRight}:    watch.Cmd(watch.MoveRight),
		{Code: KeyHome}:     watch.Cmd(watch.ReanchorOrigin),
		{Code: KeyPageUp}:   watch.Cmd(watch.PageUp),
		{Code: KeyPageDown}: watch.Cmd(watch.PageDown),
	}
}

// decodeKeys splits raw terminal input into keys. Both CSI (ESC [) and SS3
// (ESC O) cursor forms are recognised; unknown sequences and a lone ESC are
// dropped.
func decodeKeys(buf []byte) []Key {
	var keys []Key
	for i := 0; i < len(buf); {
		b := buf[i]
		if b != 0x1b {
			if b >= 0x20 && b < 0x7f {
				keys = append(keys, runeKey(rune(b)))
			}
			i++
			continue
		}
		if i+1 >= len(buf) || (buf[i+1] != '[' && buf[i+1] != 'O') {
			i++
			continue
		}
		k, n, ok := decodeEscape(buf[i+1:])
		if ok {
			keys = append(keys, k)
		}
		i += 1 + n
	}
	return keys
}

// decodeEscape parses the part of a sequence after ESC and returns the key
// and the number of bytes consumed.
func decodeEscape(seq []byte) (Key, int, bool) {
	// final byte of a CSI sequence is in 0x40..0x7e
	end := 1
	for end < len(seq) && (seq[end] < 0x40 || seq[end] > 0x7e) {
		end++
	}
	if end >= len(seq) {
		return Key{}, len(seq), false
	}
	params := string(seq[1:end])
	n := end + 1
	switch seq[end] {
	case 'A':
		return Key{Code: KeyUp}, n, true
	case 'B':
		return Key{Code: KeyDown}, n, true
	case 'C':
		return Key{Code: KeyRight}, n, true
	case 'D':
		return Key{Code: KeyLeft}, n, true
	case 'H':
		return Key{Code: KeyHome}, n, true
	case '~':
		switch params {
		case "1", "7":
			return Key{Code: KeyHome}, n, true
		case "5":
			return Key{Code: KeyPageUp}, n, true
		case "6":
			return Key{Code: KeyPageDown}, n, true
		}
	}
	return Key{}, n, false
}
