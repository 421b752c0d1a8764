package game

import "math/rand"

// ShuffledCopy returns a new uniformly random permutation of ids. The input
// slice is never touched, so callers can keep aliasing it safely.
func ShuffledCopy(ids []string) []string {
	shuffled := make([]string, len(ids))
	copy(shuffled, ids)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

// WithoutID returns ids minus every occurrence of id, preserving order.
func WithoutID(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, candidate := range ids {
		if candidate != id {
			out = append(out, candidate)
		}
	}
	return out
}
