package talents

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateRequiredMaterials(t *testing.T) {
	bossTable := make(LevelCostTable, 6)
	bossTable = append(bossTable, LevelCost{5, 1}, LevelCost{5, 1}, LevelCost{5, 2}, LevelCost{5, 2})

	tests := []struct {
		name    string
		current int
		desired int
		table   LevelCostTable
		want    MaterialRequirement
	}{
		{
			name:    "rarity change splits runs",
			current: 0,
			desired: 4,
			table:   LevelCostTable{{0, 0}, {2, 3}, {3, 2}, {3, 4}, {3, 6}},
			want:    MaterialRequirement{{2, 3}, {3, 12}},
		},
		{
			name:    "single rarity tail",
			current: 5,
			desired: 9,
			table:   bossTable,
			want:    MaterialRequirement{{5, 6}},
		},
		{
			name:    "non-adjacent same rarity is not merged",
			current: 0,
			desired: 3,
			table:   LevelCostTable{{0, 0}, {1, 1}, {2, 1}, {1, 1}},
			want:    MaterialRequirement{{1, 1}, {2, 1}, {1, 1}},
		},
		{
			name:    "zero amount keeps the run",
			current: 0,
			desired: 2,
			table:   LevelCostTable{{0, 0}, {3, 0}, {3, 5}},
			want:    MaterialRequirement{{3, 5}},
		},
		{
			name:    "current of minus one includes index zero",
			current: -1,
			desired: 1,
			table:   LevelCostTable{{0, 0}, {2, 3}},
			want:    MaterialRequirement{{0, 0}, {2, 3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateRequiredMaterials(tt.current, tt.desired, tt.table))
		})
	}
}

func TestCalculateRequiredMaterials_EmptyRange(t *testing.T) {
	table := CostTables[TalentBook]
	for _, r := range [][2]int{{3, 3}, {5, 2}, {9, 0}} {
		got := CalculateRequiredMaterials(r[0], r[1], table)
		assert.NotNil(t, got)
		assert.Empty(t, got, "range %v", r)
	}
}

func TestCalculateRequiredMaterials_ConservesTotal(t *testing.T) {
	for _, c := range Categories {
		table := CostTables[c]
		for current := -1; current < len(table); current++ {
			for desired := current; desired < len(table); desired++ {
				want := 0
				for i := current + 1; i <= desired; i++ {
					want += table[i].Amount
				}
				got := CalculateRequiredMaterials(current, desired, table)
				assert.Equal(t, want, got.Total(), "%s %d→%d", c, current, desired)
			}
		}
	}
}

func TestCalculateRequiredMaterials_AdjacentRunsMerge(t *testing.T) {
	for _, c := range Categories {
		table := CostTables[c]
		got := CalculateRequiredMaterials(0, len(table)-1, table)
		for i := 1; i < len(got); i++ {
			assert.NotEqual(t, got[i-1].Rarity, got[i].Rarity, "%s has unmerged adjacent runs", c)
		}
	}
}

func TestCostTables_RarityNonDecreasing(t *testing.T) {
	for c, table := range CostTables {
		assert.Len(t, table, MaxLevel, c)
		for i := 1; i < len(table); i++ {
			assert.LessOrEqual(t, table[i-1].Rarity, table[i].Rarity, "%s level %d", c, i+1)
		}
	}
}
