package registration

import "strings"

// CodeCellCount is the number of independent verification-code inputs.
const CodeCellCount = 6

// CodeCells models the six single-character inputs that together form one
// verification token. Focus/cursor handling stays in the browser; this is
// only the value object behind it.
type CodeCells [CodeCellCount]string

// SetDigit assigns a cell. Out-of-range indexes and non-digit values are
// ignored; an empty value clears the cell.
func (c *CodeCells) SetDigit(index int, value string) {
	if index < 0 || index >= CodeCellCount {
		return
	}
	if value == "" {
		c[index] = ""
		return
	}
	if len(value) == 1 && value[0] >= '0' && value[0] <= '9' {
		c[index] = value
	}
}

// Join assembles the cells into one token string.
func (c CodeCells) Join() string {
	return strings.Join(c[:], "")
}

// Complete reports whether all six cells hold a digit.
func (c CodeCells) Complete() bool {
	for _, cell := range c {
		if cell == "" {
			return false
		}
	}
	return true
}

// DistributePaste spreads up to six pasted characters across the cells
// starting at cell 0, positionally: a non-digit character leaves its cell
// empty rather than shifting later digits forward.
func DistributePaste(text string) CodeCells {
	var cells CodeCells
	for i, r := range []rune(text) {
		if i >= CodeCellCount {
			break
		}
		if r >= '0' && r <= '9' {
			cells[i] = string(r)
		}
	}
	return cells
}
