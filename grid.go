// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gglayers

// GridSpec describes a regular grid of cells.
type GridSpec struct {
	// X, Y is the top-left corner of the first cell.
	X, Y float64

	Rows, Cols int

	CellWidth, CellHeight float64

	// Gap is the space between adjacent cells.
	Gap float64

	// Fill and Border apply to every cell. Empty selects the layer default.
	Fill   string
	Border string
}

// Grid returns the cells of spec in row-major order. It returns nil when
// spec has no rows or no columns.
func Grid(spec GridSpec) []RectItem {
	if spec.Rows <= 0 || spec.Cols <= 0 {
		return nil
	}
	cells := make([]RectItem, 0, spec.Rows*spec.Cols)
	for r := range spec.Rows {
		y := spec.Y + float64(r)*(spec.CellHeight+spec.Gap)
		for c := range spec.Cols {
			cells = append(cells, RectItem{
				X:      spec.X + float64(c)*(spec.CellWidth+spec.Gap),
				Y:      y,
				Width:  spec.CellWidth,
				Height: spec.CellHeight,
				Fill:   spec.Fill,
				Border: spec.Border,
			})
		}
	}
	return cells
}
