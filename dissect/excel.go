package dissect

import (
	"github.com/xuri/excelize/v2"
)

var headerFont = &excelize.Font{
	Family: "Arial",
	Size:   24,
}

// excelCompass moves a cursor around a sheet while writing cells.
type excelCompass struct {
	f        *excelize.File
	s        string
	row, col int
}

func newExcelCompass(f *excelize.File, sheet string) *excelCompass {
	return &excelCompass{
		f: f,
		s: sheet,
	}
}

func (c *excelCompass) Sheet(sheet string) *excelCompass {
	c.s = sheet
	c.Reset()
	return c
}

func (c *excelCompass) Reset() *excelCompass {
	c.row = 0
	c.col = 0
	return c
}

func (c *excelCompass) Down(n int) *excelCompass {
	c.row += n
	return c
}

func (c *excelCompass) Left(n int) *excelCompass {
	c.col -= n
	if c.col < 0 {
		c.col = 0
	}
	return c
}

func (c *excelCompass) Right(n int) *excelCompass {
	c.col += n
	return c
}

// Home moves back to the first column.
func (c *excelCompass) Home() *excelCompass {
	c.col = 0
	return c
}

func (c *excelCompass) Cell() string {
	cell, _ := excelize.CoordinatesToCellName(c.col+1, c.row+1, false)
	return cell
}

func (c *excelCompass) Heading(text string) *excelCompass {
	c.f.SetCellRichText(c.s, c.Cell(), []excelize.RichTextRun{
		{
			Text: text,
			Font: headerFont,
		},
	})
	return c
}

func (c *excelCompass) Str(text string) *excelCompass {
	c.f.SetCellStr(c.s, c.Cell(), text)
	return c
}

func (c *excelCompass) Bool(b bool) *excelCompass {
	c.f.SetCellBool(c.s, c.Cell(), b)
	return c
}

func (c *excelCompass) Int(n int) *excelCompass {
	c.f.SetCellInt(c.s, c.Cell(), n)
	return c
}

// Stat leaves the cell empty for NaN.
func (c *excelCompass) Stat(s Stat) *excelCompass {
	if s.IsNaN() {
		return c
	}
	c.f.SetCellFloat(c.s, c.Cell(), float64(s), -1, 64)
	return c
}
