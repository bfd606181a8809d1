package utils

import "math"

// CreateRankList returns 1-based ranks for count already-sorted items.
// Ranks past math.MaxUint16 saturate, since the IPC format stores them as uint16.
func CreateRankList(count int) []uint16 {
	if count <= 0 {
		return []uint16{}
	}
	ranks := make([]uint16, count)
	for i := range ranks {
		if i+1 >= math.MaxUint16 {
			ranks[i] = math.MaxUint16
			continue
		}
		ranks[i] = uint16(i + 1)
	}
	return ranks
}
