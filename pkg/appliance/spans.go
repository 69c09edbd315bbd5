package appliance

// span is a half-open range of minutes-of-day still available for a
// switch-on event to land in, replacing the original model's re-slicing
// of a free_spots list of numpy index arrays with a plain value slice.
type span struct {
	start, stop int
}

func (s span) len() int { return s.stop - s.start }

// removeSpan carves [start,start+length) out of spots, splitting the
// containing span into zero, one, or two remaining spans — the Go
// equivalent of update_available_time_for_switch_on_events.
func removeSpan(spots []span, start, length int) []span {
	out := make([]span, 0, len(spots)+1)
	for _, s := range spots {
		if start < s.start || start+length > s.stop {
			out = append(out, s)
			continue
		}
		if start > s.start {
			out = append(out, span{s.start, start})
		}
		if start+length < s.stop {
			out = append(out, span{start + length, s.stop})
		}
	}
	return out
}

// totalFree sums the remaining width across all spans of at least
// minLength minutes.
func totalFree(spots []span, minLength int) int {
	total := 0
	for _, s := range spots {
		if s.len() >= minLength {
			total += s.len()
		}
	}
	return total
}
