package engine

// occupancyGrid is a dense boolean field over the truck interior. Cell
// (x, y, z) is true iff it is covered by a committed crate. The grid is
// created fresh for each planning run, owned by that run alone, and
// discarded with it.
type occupancyGrid struct {
	width, height, length int
	cells                 []bool
}

func newOccupancyGrid(width, height, length int) *occupancyGrid {
	return &occupancyGrid{
		width:  width,
		height: height,
		length: length,
		cells:  make([]bool, width*height*length),
	}
}

func (g *occupancyGrid) index(x, y, z int) int {
	return (x*g.height+y)*g.length + z
}

func (g *occupancyGrid) occupied(x, y, z int) bool {
	return g.cells[g.index(x, y, z)]
}

// boxFree reports whether every cell of the box [x,x+w)×[y,y+h)×[z,z+l)
// is currently unoccupied. The caller guarantees the box is in bounds.
func (g *occupancyGrid) boxFree(x, y, z, w, h, l int) bool {
	for dx := 0; dx < w; dx++ {
		for dy := 0; dy < h; dy++ {
			base := g.index(x+dx, y+dy, z)
			for dz := 0; dz < l; dz++ {
				if g.cells[base+dz] {
					return false
				}
			}
		}
	}
	return true
}

// supportedCells counts the occupied cells directly below the w×l
// footprint whose minimum corner sits at (x, y, z). y must be > 0.
func (g *occupancyGrid) supportedCells(x, y, z, w, l int) int {
	count := 0
	for dx := 0; dx < w; dx++ {
		base := g.index(x+dx, y-1, z)
		for dz := 0; dz < l; dz++ {
			if g.cells[base+dz] {
				count++
			}
		}
	}
	return count
}

// occupy marks every cell of the box as occupied.
func (g *occupancyGrid) occupy(x, y, z, w, h, l int) {
	for dx := 0; dx < w; dx++ {
		for dy := 0; dy < h; dy++ {
			base := g.index(x+dx, y+dy, z)
			for dz := 0; dz < l; dz++ {
				g.cells[base+dz] = true
			}
		}
	}
}
