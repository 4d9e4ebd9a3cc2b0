package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/svanichkin/memwatch/clock"
	"github.com/svanichkin/memwatch/watch"
)

func TestDecodeKeys(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Key
	}{
		{"plain", "q ]", []Key{runeKey('q'), runeKey(' '), runeKey(']')}},
		{"arrows", "\x1b[A\x1b[B\x1b[C\x1b[D", []Key{{Code: KeyUp}, {Code: KeyDown}, {Code: KeyRight}, {Code: KeyLeft}}},
		{"ss3 arrows", "\x1bOA\x1bOH", []Key{{Code: KeyUp}, {Code: KeyHome}}},
		{"home forms", "\x1b[H\x1b[1~\x1b[7~", []Key{{Code: KeyHome}, {Code: KeyHome}, {Code: KeyHome}}},
		{"paging", "\x1b[5~\x1b[6~", []Key{{Code: KeyPageUp}, {Code: KeyPageDown}}},
		{"unknown sequence", "\x1b[15~k", []Key{runeKey('k')}},
		{"modified arrow", "\x1b[1;5A", []Key{{Code: KeyUp}}},
		{"lone escape", "\x1b", nil},
		{"truncated", "\x1b[", nil},
		{"control bytes", "\x03\x7f\r", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decodeKeys([]byte(tt.in)))
		})
	}
}

func TestDefaultKeymapIsComplete(t *testing.T) {
	km := DefaultKeymap()
	seen := map[watch.Kind]bool{}
	for _, c := range km {
		seen[c.Kind] = true
	}
	for _, k := range []watch.Kind{
		watch.GrowColumns, watch.ShrinkColumns, watch.GrowBuffer, watch.ShrinkBuffer,
		watch.GrowBufferByRow, watch.ShrinkBufferByRow, watch.MoveUp, watch.MoveDown,
		watch.MoveLeft, watch.MoveRight, watch.PageUp, watch.PageDown,
		watch.ReanchorOrigin, watch.ZeroDisplayOffset, watch.ShiftDisplayOffset,
		watch.ResetDiffState, watch.ToggleKeepTouched, watch.SaveSnapshot, watch.Quit,
	} {
		assert.True(t, seen[k], "%v has no key", k)
	}
}

func newTestKeyboard() (*Keyboard, *clock.FakeClock) {
	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	return NewKeyboard(c, watch.RepeatPolicy{Delay: 3, Interval: 1}, 25*time.Millisecond), c
}

// poll drains once per simulated tick of 10ms.
func poll(k *Keyboard, c *clock.FakeClock) []watch.Command {
	out := k.Drain()
	c.Advance(10 * time.Millisecond)
	return out
}

func TestKeyboardSingleTap(t *testing.T) {
	k, c := newTestKeyboard()
	k.Feed([]byte("]"))

	var got []watch.Command
	for i := 0; i < 10; i++ {
		got = append(got, poll(k, c)...)
	}
	assert.Equal(t, []watch.Command{watch.Cmd(watch.GrowColumns)}, got)
}

func TestKeyboardHeldKeyRepeats(t *testing.T) {
	k, c := newTestKeyboard()
	var got []watch.Command
	for i := 0; i < 12; i++ {
		k.Feed([]byte("\x1b[B"))
		got = append(got, poll(k, c)...)
	}
	// accepted polls 2,4,...,12 hold for 1..6; fires at 1, then from 3 on
	assert.Len(t, got, 5)
	for _, cmd := range got {
		assert.Equal(t, watch.Cmd(watch.MoveDown), cmd)
	}
}

func TestKeyboardTapsSeparatedByReleaseFireTwice(t *testing.T) {
	k, c := newTestKeyboard()
	var got []watch.Command
	k.Feed([]byte("]"))
	for i := 0; i < 4; i++ {
		got = append(got, poll(k, c)...)
	}
	k.Feed([]byte("]"))
	for i := 0; i < 4; i++ {
		got = append(got, poll(k, c)...)
	}
	assert.Equal(t, []watch.Command{watch.Cmd(watch.GrowColumns), watch.Cmd(watch.GrowColumns)}, got)
}

func TestKeyboardTapsInsideHoldWindowMerge(t *testing.T) {
	k, c := newTestKeyboard()
	var got []watch.Command
	k.Feed([]byte("]"))
	got = append(got, poll(k, c)...)
	k.Feed([]byte("]"))
	for i := 0; i < 6; i++ {
		got = append(got, poll(k, c)...)
	}
	// no key-up events on a terminal: a second byte within the window reads as held
	assert.Equal(t, []watch.Command{watch.Cmd(watch.GrowColumns)}, got)
}

func TestKeyboardQuitIsNotThrottled(t *testing.T) {
	k, c := newTestKeyboard()
	k.Feed([]byte("q"))
	assert.Equal(t, []watch.Command{watch.Cmd(watch.Quit)}, poll(k, c))
}

func TestKeyboardDistinctKeysInOneTick(t *testing.T) {
	k, c := newTestKeyboard()
	poll(k, c)
	k.Feed([]byte("[k"))
	got := poll(k, c)
	assert.Equal(t, []watch.Command{watch.Cmd(watch.ShrinkColumns), watch.Cmd(watch.ToggleKeepTouched)}, got)
}

func TestKeyboardIgnoresUnmappedKeys(t *testing.T) {
	k, c := newTestKeyboard()
	k.Feed([]byte("zzz"))
	for i := 0; i < 4; i++ {
		assert.Empty(t, poll(k, c))
	}
}
