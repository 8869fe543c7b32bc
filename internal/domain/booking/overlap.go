package booking

import "time"

// Overlaps reports whether the half-open intervals [s1,e1) and [s2,e2)
// intersect. Three cases are checked: the first interval starts inside the
// second, the second starts inside the first, or the second encloses the
// first. Boundary-touching intervals (one ends exactly when the other
// starts) do not overlap.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	startsInside := !s1.Before(s2) && s1.Before(e2)
	otherStartsInside := !s2.Before(s1) && s2.Before(e1)
	enclosed := s2.Before(s1) && !e2.Before(e1)
	return startsInside || otherStartsInside || enclosed
}
