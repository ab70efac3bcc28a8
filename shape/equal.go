package shape

// Equal returns true if a and b have the same kind and the
// same attributes, point coordinates included.
// It is used to detect the changes of a shape since a snapshot
// taken with Clone.
func Equal(a, b Shape) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind() != b.Kind() {
		return false
	}
	if ga, ok := a.(Container); ok {
		gb := b.(Container)
		sa, sb := ga.Shapes(), gb.Shapes()
		if len(sa) != len(sb) {
			return false
		}
		for i := range sa {
			if !Equal(sa[i], sb[i]) {
				return false
			}
		}
		return true
	}

	pa, pb := a.Points(), b.Points()
	if len(pa) != len(pb) {
		return false
	}
	for i := range pa {
		if *pa[i] != *pb[i] {
			return false
		}
	}
	if rotationOf(a) != rotationOf(b) {
		return false
	}
	if sa, ok := a.(Styled); ok {
		if *sa.Style() != *b.(Styled).Style() {
			return false
		}
	}
	if ta, ok := a.(Texter); ok {
		tb := b.(Texter)
		if ta.Text() != tb.Text() || ta.TextPosition() != tb.TextPosition() {
			return false
		}
	}
	if aa, ok := a.(Arcer); ok {
		ab := b.(Arcer)
		if aa.AngleStart() != ab.AngleStart() || aa.AngleEnd() != ab.AngleEnd() || aa.ArcStyle() != ab.ArcStyle() {
			return false
		}
	}
	if fa, ok := a.(Sampler); ok {
		fb := b.(Sampler)
		if fa.FreehandType() != fb.FreehandType() || fa.Interval() != fb.Interval() || fa.IsOpen() != fb.IsOpen() {
			return false
		}
	}
	if pla, ok := a.(*Plot); ok {
		plb := b.(*Plot)
		if pla.fn.Source != plb.fn.Source || pla.min != plb.min || pla.max != plb.max ||
			pla.nbPoints != plb.nbPoints || pla.parametric != plb.parametric || pla.plotStyle != plb.plotStyle {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of s, or nil.
func Clone(s Shape) Shape {
	if s == nil {
		return nil
	}
	return s.Clone()
}
