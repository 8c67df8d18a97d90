package backend

// Sample is one quantized height sample of a heightfield grid.
type Sample struct {
	// Height is the quantized height value. World height is
	// Height * the actor's height scale.
	Height int16
	// MaterialIndex0 and MaterialIndex1 select the material of the two
	// triangles of the cell below and to the right of the sample.
	MaterialIndex0 uint8
	MaterialIndex1 uint8
}

// HeightfieldDesc describes a sample grid handed to the cooker.
//
// Samples are stored column-major: the sample for column c, row r lives at
// index c*Rows + r. Columns run along the X axis, rows along Z.
type HeightfieldDesc struct {
	Columns uint32
	Rows    uint32
	Samples []Sample
}

// Heightfield is an immutable cooked height-sample grid.
type Heightfield struct {
	columns uint32
	rows    uint32
	samples []Sample
}

// Columns returns the number of samples along the X axis.
func (h *Heightfield) Columns() uint32 {
	return h.columns
}

// Rows returns the number of samples along the Z axis.
func (h *Heightfield) Rows() uint32 {
	return h.rows
}

// SampleAt returns the sample at column c, row r.
func (h *Heightfield) SampleAt(c, r uint32) Sample {
	return h.samples[c*h.rows+r]
}
