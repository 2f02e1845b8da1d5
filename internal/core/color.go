package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorWhite
	ColorBlue
	ColorOrange
	ColorYellow
	ColorRed
	ColorGreen
	ColorGray
)

// String returns the color name, used in level dumps and tests.
func (c Color) String() string {
	switch c {
	case ColorWhite:
		return "white"
	case ColorBlue:
		return "blue"
	case ColorOrange:
		return "orange"
	case ColorYellow:
		return "yellow"
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorGray:
		return "gray"
	default:
		return "default"
	}
}
