package text

// LineHistory keeps the two most recently consumed lines.
type LineHistory struct {
	lines [2]string
	count int
}

// Push records line as the most recent one, dropping the oldest if needed.
func (h *LineHistory) Push(line string) {
	h.lines[1] = h.lines[0]
	h.lines[0] = line
	if h.count < len(h.lines) {
		h.count++
	}
}

// Last returns the most recent line.
func (h *LineHistory) Last() (string, bool) {
	if h.count == 0 {
		return "", false
	}
	return h.lines[0], true
}

// Previous returns the line consumed before the most recent one.
func (h *LineHistory) Previous() (string, bool) {
	if h.count < 2 {
		return "", false
	}
	return h.lines[1], true
}
