package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/svanichkin/memwatch/tracker"
)

// Palette is the colour set of the hex view. Class colours are indexed by
// tracker.Class.
type Palette struct {
	Classes [tracker.NumClasses]lipgloss.Color

	Label     lipgloss.Color
	Text      lipgloss.Color
	Separator lipgloss.Color
	Status    lipgloss.Color
}

// DefaultPalette is the Tango palette: magenta for +1, red for larger
// increases, cyan for -1, blue for larger decreases. Bright shades mark
// fresh changes.
func DefaultPalette() Palette {
	var p Palette
	p.Classes[tracker.MutedZero] = "#555753"
	p.Classes[tracker.Default] = "#d3d7cf"
	p.Classes[tracker.BrightUnitIncrease] = "#ad7fa8"
	p.Classes[tracker.BrightMultiIncrease] = "#ef2929"
	p.Classes[tracker.BrightUnitDecrease] = "#34e2e2"
	p.Classes[tracker.BrightMultiDecrease] = "#729fcf"
	p.Classes[tracker.DimUnitIncrease] = "#75507b"
	p.Classes[tracker.DimMultiIncrease] = "#a00000"
	p.Classes[tracker.DimUnitDecrease] = "#06989a"
	p.Classes[tracker.DimMultiDecrease] = "#3465a4"
	p.Label = "#c4a000"
	p.Text = "#d3d7cf"
	p.Separator = "#d3d7cf"
	p.Status = "#888a85"
	return p
}

// Override replaces colours by name. Keys are class names (for example
// "bright_unit_increase") or one of label, text, separator, status. Values
// are anything lipgloss accepts: "#rrggbb" or an ANSI index.
func (p *Palette) Override(colors map[string]string) error {
	for name, value := range colors {
		value = strings.TrimSpace(value)
		if value == "" {
			return fmt.Errorf("palette: empty colour for %q", name)
		}
		c := lipgloss.Color(value)
		switch key := strings.ToLower(strings.TrimSpace(name)); key {
		case "label":
			p.Label = c
		case "text":
			p.Text = c
		case "separator":
			p.Separator = c
		case "status":
			p.Status = c
		default:
			idx := classIndex(key)
			if idx < 0 {
				return fmt.Errorf("palette: unknown colour name %q", name)
			}
			p.Classes[idx] = c
		}
	}
	return nil
}

func classIndex(name string) int {
	for i, n := range tracker.ClassNames() {
		if n == name {
			return i
		}
	}
	return -1
}

// ParseProfile maps a colour mode name to a termenv profile. "auto" (or
// empty) inspects the environment, so NO_COLOR and TERM are honoured.
func ParseProfile(name string) (termenv.Profile, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return termenv.EnvColorProfile(), nil
	case "truecolor", "24bit":
		return termenv.TrueColor, nil
	case "256", "ansi256":
		return termenv.ANSI256, nil
	case "16", "ansi":
		return termenv.ANSI, nil
	case "none", "ascii", "off":
		return termenv.Ascii, nil
	default:
		return termenv.Ascii, fmt.Errorf("unknown colour mode %q", name)
	}
}

// styles holds pre-rendered strings so a frame is assembled without calling
// into lipgloss per byte.
type styles struct {
	cells     [tracker.NumClasses][256]string
	columns   [256]string
	separator string
	lip       *lipgloss.Renderer
	label     lipgloss.Style
	text      lipgloss.Style
	status    lipgloss.Style
}

func newStyles(p Palette, profile termenv.Profile) *styles {
	lip := lipgloss.NewRenderer(io.Discard, termenv.WithProfile(profile))
	// lipgloss re-detects the profile from its writer unless told explicitly.
	lip.SetColorProfile(profile)

	s := &styles{
		lip:    lip,
		label:  lip.NewStyle().Foreground(p.Label),
		text:   lip.NewStyle().Foreground(p.Text),
		status: lip.NewStyle().Foreground(p.Status),
	}
	for class := 0; class < tracker.NumClasses; class++ {
		st := lip.NewStyle().Foreground(p.Classes[class])
		for v := 0; v < 256; v++ {
			s.cells[class][v] = st.Render(hexByte(byte(v))) + " "
		}
	}
	for col := range s.columns {
		s.columns[col] = s.label.Render(hexByte(byte(col))) + " "
	}
	s.separator = lip.NewStyle().Foreground(p.Separator).Render("│")
	return s
}

func (s *styles) column(col int) string {
	if col < len(s.columns) {
		return s.columns[col]
	}
	return s.label.Render(fmt.Sprintf("%02X", col)) + " "
}

func (s *styles) cell(class tracker.Class, v byte) string {
	if int(class) >= tracker.NumClasses {
		class = tracker.Default
	}
	return s.cells[class][v]
}

const hexDigits = "0123456789ABCDEF"

func hexByte(v byte) string {
	return string([]byte{hexDigits[v>>4], hexDigits[v&0x0f]})
}
