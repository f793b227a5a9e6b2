package stroke

// Split cuts s at the erased sample indices and returns the surviving runs as
// new strokes in original order, each inheriting s's style. A run of a single
// point is kept as a dot. With no erased indices s itself is returned as the
// only element. Indices outside s are ignored.
func Split(s *Stroke, erased []int) []*Stroke {
	if len(erased) == 0 {
		return []*Stroke{s}
	}

	cut := make(map[int]struct{}, len(erased))
	for _, i := range erased {
		cut[i] = struct{}{}
	}

	var (
		parts   []*Stroke
		current []Point
	)
	flush := func() {
		if len(current) == 0 {
			return
		}
		child := NewWithThreshold(s.Style, s.threshold)
		child.Points = current
		parts = append(parts, child)
		current = nil
	}

	for i, p := range s.Points {
		if _, ok := cut[i]; ok {
			flush()
			continue
		}
		current = append(current, p)
	}
	flush()

	return parts
}
