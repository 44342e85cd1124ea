package report

import "math"

// HexCell is one occupied hexagon of a hexbin layout.
type HexCell struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Count int     `json:"count"`
}

// Hexbin groups pixel-space points into a lattice of pointy-top hexagons of
// the given radius.
type Hexbin struct {
	Radius float64
}

type hexKey struct {
	i float64
	j int
}

// Bin assigns each point to its nearest hexagon center. Cells are returned in
// order of first occupation. Points with a NaN coordinate are ignored.
func (h Hexbin) Bin(xs, ys []float64) []HexCell {
	if h.Radius <= 0 {
		return nil
	}
	dx := h.Radius * 2 * math.Sin(math.Pi/3)
	dy := h.Radius * 1.5

	n := min(len(xs), len(ys))
	index := make(map[hexKey]int)
	var cells []HexCell

	for k := 0; k < n; k++ {
		px, py := xs[k], ys[k]
		if math.IsNaN(px) || math.IsNaN(py) {
			continue
		}

		py /= dy
		pj := int(round(py))
		px = px/dx - float64(pj&1)/2
		pi := round(px)
		py1 := py - float64(pj)

		// Near a row boundary the closest center may lie in the adjacent row.
		if math.Abs(py1)*3 > 1 {
			px1 := px - pi
			pi2 := pi + sign(px-pi)/2
			pj2 := pj + int(sign(py-float64(pj)))
			px2 := px - pi2
			py2 := py - float64(pj2)
			if px1*px1+py1*py1 > px2*px2+py2*py2 {
				if pj&1 == 1 {
					pi = pi2 + 0.5
				} else {
					pi = pi2 - 0.5
				}
				pj = pj2
			}
		}

		key := hexKey{pi, pj}
		if idx, ok := index[key]; ok {
			cells[idx].Count++
			continue
		}
		index[key] = len(cells)
		cells = append(cells, HexCell{
			X:     (pi + float64(pj&1)/2) * dx,
			Y:     float64(pj) * dy,
			Count: 1,
		})
	}

	return cells
}

// round rounds half up, so lattice ties resolve the same way on both sides of zero.
func round(v float64) float64 {
	return math.Floor(v + 0.5)
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
