package entity

import "fmt"

// LineID names one row, column or diagonal of one sub-board: sub*8 + kind.
type LineID int

const (
	LineRow0 = iota
	LineRow1
	LineRow2
	LineCol0
	LineCol1
	LineCol2
	LineDiagMain
	LineDiagAnti
)

var lineCells = [LinesPerSubBoard][SubBoardSize][2]int{
	LineRow0:     {{0, 0}, {0, 1}, {0, 2}},
	LineRow1:     {{1, 0}, {1, 1}, {1, 2}},
	LineRow2:     {{2, 0}, {2, 1}, {2, 2}},
	LineCol0:     {{0, 0}, {1, 0}, {2, 0}},
	LineCol1:     {{0, 1}, {1, 1}, {2, 1}},
	LineCol2:     {{0, 2}, {1, 2}, {2, 2}},
	LineDiagMain: {{0, 0}, {1, 1}, {2, 2}},
	LineDiagAnti: {{0, 2}, {1, 1}, {2, 0}},
}

func NewLineID(sub, kind int) LineID {
	return LineID(sub*LinesPerSubBoard + kind)
}

func (id LineID) SubBoard() int {
	return int(id) / LinesPerSubBoard
}

func (id LineID) Kind() int {
	return int(id) % LinesPerSubBoard
}

func (id LineID) String() string {
	kind := id.Kind()

	switch {
	case kind <= LineRow2:
		return fmt.Sprintf("%d-row-%d", id.SubBoard(), kind-LineRow0)
	case kind <= LineCol2:
		return fmt.Sprintf("%d-col-%d", id.SubBoard(), kind-LineCol0)
	default:
		return fmt.Sprintf("%d-diag-%d", id.SubBoard(), kind-LineDiagMain)
	}
}
