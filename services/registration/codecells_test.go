package registration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistributePasteFiltersNonDigits(t *testing.T) {
	cells := DistributePaste("12ab56")
	assert.Equal(t, CodeCells{"1", "2", "", "", "5", "6"}, cells)
}

func TestDistributePasteTruncatesAtSix(t *testing.T) {
	cells := DistributePaste("1234567890")
	assert.Equal(t, CodeCells{"1", "2", "3", "4", "5", "6"}, cells)
}

func TestDistributePasteShortInput(t *testing.T) {
	cells := DistributePaste("98")
	assert.Equal(t, CodeCells{"9", "8", "", "", "", ""}, cells)
	assert.False(t, cells.Complete())
}

func TestSetDigit(t *testing.T) {
	var cells CodeCells
	cells.SetDigit(0, "7")
	cells.SetDigit(5, "0")
	cells.SetDigit(2, "x") // non-digit ignored
	cells.SetDigit(9, "1") // out of range ignored
	cells.SetDigit(-1, "1")
	assert.Equal(t, CodeCells{"7", "", "", "", "", "0"}, cells)

	cells.SetDigit(0, "")
	assert.Equal(t, "", cells[0])
}

func TestJoinAndComplete(t *testing.T) {
	cells := DistributePaste("123456")
	assert.True(t, cells.Complete())
	assert.Equal(t, "123456", cells.Join())
}
