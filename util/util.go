package util

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// Mod is the non-negative remainder of a divided by m.
func Mod[A constraints.Integer](a A, m A) A {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

// FloorDiv rounds toward negative infinity, pairing with Mod so that
// FloorDiv(a, m)*m + Mod(a, m) == a.
func FloorDiv[A constraints.Integer](a A, m A) A {
	q := a / m
	if a%m != 0 && (a < 0) != (m < 0) {
		q--
	}
	return q
}

func GetKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func SortedKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := GetKeys(m)
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	return keys
}
