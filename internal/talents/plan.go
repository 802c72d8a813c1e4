package talents

import (
	"errors"
	"fmt"
)

var ErrInvalidLevelRange = errors.New("invalid talent level range")

// Material describes one item a character uses to level talents.
type Material struct {
	Name   string `json:"name"`
	Rarity int    `json:"rarity"`
}

// Materials maps every category to the character's items of that category,
// ordered by rarity.
type Materials map[Category][]Material

// Line is one non-zero requirement labelled with its level span and material.
type Line struct {
	Start    int
	End      int
	Category Category
	Name     string
	Rarity   int
	Amount   int
}

// Plan computes the materials needed to raise a talent from current to desired,
// bundled by Intervals. Entries with a zero total are skipped.
func Plan(current, desired int, materials Materials) ([]Line, error) {
	if current < MinLevel || desired > MaxLevel || current >= desired {
		return nil, fmt.Errorf("%w: %d → %d", ErrInvalidLevelRange, current, desired)
	}

	pickers := make(map[Category]*picker, len(Categories))
	for _, c := range Categories {
		pickers[c] = &picker{items: materials[c]}
	}

	var lines []Line
	for _, iv := range Intervals {
		start, end := max(iv.Start, current), min(iv.End, desired)
		if start >= end {
			continue
		}
		for _, c := range Categories {
			for _, req := range CalculateRequiredMaterials(start-1, end-1, CostTables[c]) {
				if req.Amount == 0 {
					continue
				}
				lines = append(lines, Line{
					Start:    start,
					End:      end,
					Category: c,
					Name:     pickers[c].pick(req.Rarity),
					Rarity:   req.Rarity,
					Amount:   req.Amount,
				})
			}
		}
	}
	return lines, nil
}

// Totals sums the plan per material, keeping first-seen order. Start and End
// span the whole plan.
func Totals(lines []Line) []Line {
	var totals []Line
	index := make(map[string]int)
	for _, l := range lines {
		key := string(l.Category) + "/" + l.Name
		if i, ok := index[key]; ok {
			totals[i].Amount += l.Amount
			totals[i].End = max(totals[i].End, l.End)
			totals[i].Start = min(totals[i].Start, l.Start)
			continue
		}
		index[key] = len(totals)
		totals = append(totals, l)
	}
	return totals
}

// picker hands out material names for requirements. An item with the same rarity
// wins; otherwise the next item not yet handed out is used.
type picker struct {
	items []Material
	next  int
}

func (p *picker) pick(rarity int) string {
	for i, m := range p.items {
		if m.Rarity == rarity {
			if i >= p.next {
				p.next = i + 1
			}
			return m.Name
		}
	}
	if p.next < len(p.items) {
		m := p.items[p.next]
		p.next++
		return m.Name
	}
	return fmt.Sprintf("Unknown %d★ material", rarity)
}
