package gui

import (
	"image/color"

	"github.com/sheikhrachel/torus-life/model"
)

// fillCellsRGBA writes one RGBA pixel per cell of grid into buf, row by row.
// buf must hold 4 bytes for every cell.
func fillCellsRGBA(buf []byte, grid model.Grid, on, off color.Color) {
	rOn, gOn, bOn, aOn := on.RGBA()
	rOff, gOff, bOff, aOff := off.RGBA()
	i := 0
	for _, row := range grid {
		for _, c := range row {
			base := i * 4
			i++
			if c.Alive() {
				buf[base+0] = uint8(rOn >> 8)
				buf[base+1] = uint8(gOn >> 8)
				buf[base+2] = uint8(bOn >> 8)
				buf[base+3] = uint8(aOn >> 8)
				continue
			}
			buf[base+0] = uint8(rOff >> 8)
			buf[base+1] = uint8(gOff >> 8)
			buf[base+2] = uint8(bOff >> 8)
			buf[base+3] = uint8(aOff >> 8)
		}
	}
}
