package model

// FreeLimit is the number of free generations granted to every session.
const FreeLimit = 2

// Usage tracks how many posts a session has generated. GenerationCount never
// decreases within a session.
type Usage struct {
	GenerationCount int
}

// Used returns the number of free generations consumed, capped at FreeLimit.
func (u Usage) Used() int {
	return min(u.GenerationCount, FreeLimit)
}

// Remaining returns the number of free generations left, never below zero.
func (u Usage) Remaining() int {
	return max(0, FreeLimit-u.GenerationCount)
}

// Exhausted reports whether all free generations have been used.
func (u Usage) Exhausted() bool {
	return u.Remaining() == 0
}
