package talents

// LevelCost is the material cost of reaching a single talent level.
type LevelCost struct {
	Rarity int
	Amount int
}

// LevelCostTable holds one LevelCost per talent level. Index 0 is a placeholder,
// index i is the cost of going from level i to level i+1.
type LevelCostTable []LevelCost

// Requirement is the total amount needed of one rarity tier.
type Requirement struct {
	Rarity int
	Amount int
}

// MaterialRequirement is an ordered list of requirements, one per contiguous run
// of equal rarity.
type MaterialRequirement []Requirement

// CalculateRequiredMaterials sums the costs of levels current+1 through desired.
// Consecutive levels of the same rarity are merged into one entry; a rarity that
// reappears after a different one starts a new entry. Indices are not checked.
func CalculateRequiredMaterials(current, desired int, table LevelCostTable) MaterialRequirement {
	result := MaterialRequirement{}
	for i := current + 1; i <= desired; i++ {
		cost := table[i]
		if len(result) == 0 || result[len(result)-1].Rarity != cost.Rarity {
			result = append(result, Requirement{Rarity: cost.Rarity})
		}
		result[len(result)-1].Amount += cost.Amount
	}
	return result
}

// Total returns the sum of all amounts.
func (m MaterialRequirement) Total() int {
	total := 0
	for _, r := range m {
		total += r.Amount
	}
	return total
}
