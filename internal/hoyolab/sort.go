package hoyolab

import (
	"cmp"
	"slices"
)

// CompareCharacters orders characters by rarity, level, friendship and name.
func CompareCharacters(a, b Character) int {
	return cmp.Or(
		cmp.Compare(a.Rarity, b.Rarity),
		cmp.Compare(a.Level, b.Level),
		cmp.Compare(a.Friendship, b.Friendship),
		cmp.Compare(a.Name, b.Name),
	)
}

// SortCharacters sorts characters in place, highest first.
func SortCharacters(characters []Character) {
	slices.SortStableFunc(characters, func(a, b Character) int {
		return CompareCharacters(b, a)
	})
}
