package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTracker(t *testing.T, size int, cfg Config) *Tracker {
	t.Helper()
	tr, err := New(size, cfg)
	require.NoError(t, err)
	return tr
}

func tick(t *testing.T, tr *Tracker, cur, prev []byte) {
	t.Helper()
	require.NoError(t, tr.DiffAndAge(cur, prev))
}

func TestNewCellsAreUntouched(t *testing.T) {
	for _, size := range []int{1, 2, 9, 256} {
		tr := newTracker(t, size, DefaultConfig())
		require.Equal(t, size, tr.Len())
		for i, c := range tr.Cells() {
			assert.False(t, c.Touched, "size=%d cell=%d", size, i)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	_, err := New(4, Config{FadeTicks: 0, RestTicks: 10})
	assert.Error(t, err)
	_, err = New(4, Config{FadeTicks: 3, RestTicks: -1})
	assert.Error(t, err)
	_, err = New(4, Config{FadeTicks: 3, RestTicks: 0})
	assert.NoError(t, err)
}

func TestSingleIncrement(t *testing.T) {
	const fade = 48
	tr := newTracker(t, 4, Config{FadeTicks: fade, RestTicks: 96})

	prev := []byte{0, 0, 0, 0}
	cur := []byte{0, 1, 0, 0}
	tick(t, tr, cur, prev)

	c := tr.Cell(1)
	assert.True(t, c.Touched)
	assert.Equal(t, Increase, c.Direction)
	assert.Equal(t, Unit, c.Magnitude)
	assert.Equal(t, fade, c.Fade)
	for _, i := range []int{0, 2, 3} {
		assert.False(t, tr.Cell(i).Touched, "cell %d", i)
	}

	tick(t, tr, cur, cur)
	c = tr.Cell(1)
	assert.True(t, c.Touched)
	assert.Equal(t, fade-1, c.Fade)
}

func TestFadeSequence(t *testing.T) {
	tr := newTracker(t, 1, Config{FadeTicks: 3, RestTicks: 0})

	tick(t, tr, []byte{7}, []byte{5})
	assert.Equal(t, Bright(Increase, Multi), tr.Classify(0, 7))

	stable := []byte{7}
	var fades []int
	var classes []Class
	for i := 0; i < 5; i++ {
		tick(t, tr, stable, stable)
		fades = append(fades, tr.Cell(0).Fade)
		classes = append(classes, tr.Classify(0, 7))
	}
	assert.Equal(t, []int{2, 1, 0, 0, 0}, fades)
	assert.True(t, classes[0].IsBright())
	assert.True(t, classes[1].IsBright())
	assert.Equal(t, DimMultiIncrease, classes[2], "switches to dim exactly at tick 3")
	assert.True(t, classes[3].IsDim())
	assert.True(t, classes[4].IsDim())
}

func TestFadeIsMonotonic(t *testing.T) {
	tr := newTracker(t, 1, Config{FadeTicks: 10, RestTicks: 0})
	tick(t, tr, []byte{1}, []byte{0})

	last := tr.Cell(0).Fade
	for i := 0; i < 20; i++ {
		tick(t, tr, []byte{1}, []byte{1})
		f := tr.Cell(0).Fade
		if last > 0 {
			assert.Equal(t, last-1, f)
		} else {
			assert.Equal(t, 0, f)
		}
		last = f
	}
}

func TestRestDemotesExactlyAfterRestTicks(t *testing.T) {
	const rest = 6
	tr := newTracker(t, 1, Config{FadeTicks: 2, RestTicks: rest})
	tick(t, tr, []byte{0}, []byte{9})

	stable := []byte{0}
	for i := 1; i < rest; i++ {
		tick(t, tr, stable, stable)
		c := tr.Cell(0)
		require.True(t, c.Touched, "tick %d", i)
		assert.Equal(t, rest-i, c.Rest)
	}
	tick(t, tr, stable, stable)
	assert.False(t, tr.Cell(0).Touched, "demoted on tick %d", rest)
	assert.Equal(t, MutedZero, tr.Classify(0, 0))
}

func TestKeepSuppressesRest(t *testing.T) {
	tr := newTracker(t, 1, Config{FadeTicks: 2, RestTicks: 3})
	tr.Keep = true
	tick(t, tr, []byte{4}, []byte{3})

	for i := 0; i < 10; i++ {
		tick(t, tr, []byte{4}, []byte{4})
	}
	c := tr.Cell(0)
	assert.True(t, c.Touched)
	assert.Equal(t, 3, c.Rest)
	assert.Equal(t, DimUnitIncrease, tr.Classify(0, 4))

	tr.Keep = false
	for i := 0; i < 3; i++ {
		tick(t, tr, []byte{4}, []byte{4})
	}
	assert.False(t, tr.Cell(0).Touched)
}

func TestRestDisabledKeepsHighlight(t *testing.T) {
	tr := newTracker(t, 1, Config{FadeTicks: 1, RestTicks: 0})
	tick(t, tr, []byte{2}, []byte{4})
	for i := 0; i < 1000; i++ {
		tick(t, tr, []byte{2}, []byte{2})
	}
	assert.Equal(t, DimMultiDecrease, tr.Classify(0, 2))
}

func TestRepeatedChangeResetsTimers(t *testing.T) {
	tr := newTracker(t, 1, Config{FadeTicks: 5, RestTicks: 8})
	tick(t, tr, []byte{1}, []byte{0})
	tick(t, tr, []byte{1}, []byte{1})
	tick(t, tr, []byte{1}, []byte{1})
	require.Equal(t, 3, tr.Cell(0).Fade)

	tick(t, tr, []byte{0}, []byte{1})
	c := tr.Cell(0)
	assert.Equal(t, 5, c.Fade)
	assert.Equal(t, 8, c.Rest)
	assert.Equal(t, Decrease, c.Direction)
	assert.Equal(t, Unit, c.Magnitude)
}

func TestDemotedCellIsFreshAgain(t *testing.T) {
	tr := newTracker(t, 1, Config{FadeTicks: 1, RestTicks: 2})
	tick(t, tr, []byte{1}, []byte{0})
	tick(t, tr, []byte{1}, []byte{1})
	tick(t, tr, []byte{1}, []byte{1})
	require.False(t, tr.Cell(0).Touched)
	assert.Equal(t, Default, tr.Classify(0, 1))

	tick(t, tr, []byte{0x80}, []byte{1})
	assert.Equal(t, BrightMultiIncrease, tr.Classify(0, 0x80))
}

func TestDiffAndAgeRejectsMismatchedBuffers(t *testing.T) {
	tr := newTracker(t, 8, DefaultConfig())
	err := tr.DiffAndAge(make([]byte, 9), make([]byte, 9))
	assert.ErrorIs(t, err, ErrSizeMismatch)
	err = tr.DiffAndAge(make([]byte, 8), make([]byte, 7))
	assert.ErrorIs(t, err, ErrSizeMismatch)
}

func TestResetDiscardsHistory(t *testing.T) {
	tr := newTracker(t, 8, DefaultConfig())
	prev := make([]byte, 8)
	cur := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	tick(t, tr, cur, prev)

	tr.Reset(9)
	require.Equal(t, 9, tr.Len())
	for i, c := range tr.Cells() {
		assert.False(t, c.Touched, "cell %d", i)
	}
}

func TestClassOf(t *testing.T) {
	tests := []struct {
		name  string
		cell  Cell
		value byte
		want  Class
	}{
		{"untouched zero", Cell{}, 0, MutedZero},
		{"untouched value", Cell{}, 0x41, Default},
		{"bright unit up", Cell{Touched: true, Direction: Increase, Magnitude: Unit, Fade: 1}, 1, BrightUnitIncrease},
		{"bright multi up", Cell{Touched: true, Direction: Increase, Magnitude: Multi, Fade: 1}, 1, BrightMultiIncrease},
		{"bright unit down", Cell{Touched: true, Direction: Decrease, Magnitude: Unit, Fade: 1}, 1, BrightUnitDecrease},
		{"bright multi down", Cell{Touched: true, Direction: Decrease, Magnitude: Multi, Fade: 1}, 0, BrightMultiDecrease},
		{"dim unit up", Cell{Touched: true, Direction: Increase, Magnitude: Unit}, 1, DimUnitIncrease},
		{"dim multi down", Cell{Touched: true, Direction: Decrease, Magnitude: Multi}, 0, DimMultiDecrease},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassOf(tt.cell, tt.value))
		})
	}
}

func TestClassNames(t *testing.T) {
	names := ClassNames()
	require.Len(t, names, NumClasses)
	assert.Equal(t, "muted_zero", MutedZero.String())
	assert.Equal(t, "dim_multi_decrease", DimMultiDecrease.String())
	assert.Equal(t, "unknown", Class(200).String())
}
