package bvh

// Motion is a frames x channels matrix of channel values, stored row by row.
type Motion struct {
	rows int
	cols int
	data []float64
}

func (m *Motion) Rows() int {
	return m.rows
}

func (m *Motion) Cols() int {
	return m.cols
}

func (m *Motion) At(frame, channel int) float64 {
	return m.data[frame*m.cols+channel]
}

func (m *Motion) Set(frame, channel int, v float64) {
	m.data[frame*m.cols+channel] = v
}

// appendRow adds a zero row and returns it.
func (m *Motion) appendRow() []float64 {
	m.data = append(m.data, make([]float64, m.cols)...)
	m.rows++
	return m.Row(m.rows - 1)
}

// Row returns the values of a frame. The slice shares storage with the matrix.
func (m *Motion) Row(frame int) []float64 {
	return m.data[frame*m.cols : (frame+1)*m.cols : (frame+1)*m.cols]
}

// resize changes the number of rows keeping existing values.
func (m *Motion) resize(rows int) {
	n := rows * m.cols
	if n <= len(m.data) {
		m.data = m.data[:n]
	} else {
		m.data = append(m.data, make([]float64, n-len(m.data))...)
	}
	m.rows = rows
}
