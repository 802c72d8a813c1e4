package talents

// Category identifies one kind of talent upgrade material.
type Category string

const (
	TalentBook              Category = "talent-book"
	BossMaterial            Category = "boss-material"
	CommonAscensionMaterial Category = "common-ascension-material"
	Crown                   Category = "crown"
)

// Categories lists every category in display order.
var Categories = []Category{TalentBook, CommonAscensionMaterial, BossMaterial, Crown}

const (
	MinLevel = 1
	MaxLevel = 10
)

// Interval is a level span whose costs are bundled together for display.
type Interval struct {
	Start int
	End   int
}

// Intervals are the breakpoints at which talent book and common material tiers change.
var Intervals = []Interval{
	{Start: 1, End: 2},
	{Start: 2, End: 6},
	{Start: 6, End: MaxLevel},
}

// CostTables holds the per-level cost of every category.
var CostTables = map[Category]LevelCostTable{
	TalentBook: {
		{0, 0},
		{2, 3},
		{3, 2}, {3, 4}, {3, 6}, {3, 9},
		{4, 4}, {4, 6}, {4, 12}, {4, 16},
	},
	CommonAscensionMaterial: {
		{0, 0},
		{1, 6},
		{2, 3}, {2, 4}, {2, 6}, {2, 9},
		{3, 4}, {3, 6}, {3, 9}, {3, 12},
	},
	BossMaterial: {
		{0, 0},
		{0, 0},
		{0, 0}, {0, 0}, {0, 0}, {0, 0},
		{5, 1}, {5, 1}, {5, 2}, {5, 2},
	},
	Crown: {
		{0, 0},
		{0, 0},
		{0, 0}, {0, 0}, {0, 0}, {0, 0},
		{0, 0}, {0, 0}, {0, 0}, {5, 1},
	},
}
