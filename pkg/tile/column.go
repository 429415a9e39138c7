package tile

import (
	"cmp"
	"slices"
	"strconv"
)

// Column is the sorted set of marked rows in one tile column.
// Any two marked rows differ by more than k.
type Column []int

// Has reports whether row is marked.
func (c Column) Has(row int) bool {
	_, ok := slices.BinarySearch(c, row)
	return ok
}

func (c Column) with(row int) Column {
	out := make(Column, 0, len(c)+1)
	out = append(out, c...)
	out = append(out, row)
	slices.Sort(out)
	return out
}

func (c Column) key() string {
	b := make([]byte, 0, 3*len(c))
	for _, r := range c {
		b = strconv.AppendInt(b, int64(r), 10)
		b = append(b, ',')
	}
	return string(b)
}

// Columns returns every column of height h whose marked rows are pairwise
// more than k apart, including the empty column.
//
// Columns are grown one mark per round, starting from the empty column. A
// row may be added to a column only when both a forward and a backward scan
// agree it is addable. Each scan keeps a cooldown counter that is reset to
// k whenever a marked row is passed and must have reached zero before an
// unmarked row counts as addable. The forward scan guards against marks
// above the row, the backward scan against marks below it. No column holds
// more than ⌈h/(k+1)⌉ marks, which bounds the number of rounds.
//
// The result is sorted by number of marks, then lexicographically. A negative
// k is treated as 0 (every subset is valid); h <= 0 yields only the empty
// column.
func Columns(h, k int) []Column {
	k = max(k, 0)
	h = max(h, 0)

	all := []Column{{}}
	seen := map[string]bool{"": true}
	frontier := []Column{{}}
	rounds := (h + k) / (k + 1)

	for round := 0; round < rounds && len(frontier) > 0; round++ {
		var next []Column
		for _, col := range frontier {
			forward := addableRows(col, h, k, false)
			backward := addableRows(col, h, k, true)
			for row := 0; row < h; row++ {
				if !forward[row] || !backward[row] {
					continue
				}
				grown := col.with(row)
				key := grown.key()
				if seen[key] {
					continue
				}
				seen[key] = true
				next = append(next, grown)
			}
		}
		all = append(all, next...)
		frontier = next
	}

	slices.SortFunc(all, compareColumns)
	return all
}

// addableRows scans col in one direction with a cooldown counter.
func addableRows(col Column, h, k int, reverse bool) []bool {
	addable := make([]bool, h)
	cooldown := 0
	for i := 0; i < h; i++ {
		row := i
		if reverse {
			row = h - 1 - i
		}
		switch {
		case col.Has(row):
			cooldown = k
		case cooldown == 0:
			addable[row] = true
		default:
			cooldown--
		}
	}
	return addable
}

func compareColumns(a, b Column) int {
	if c := cmp.Compare(len(a), len(b)); c != 0 {
		return c
	}
	return slices.Compare(a, b)
}
