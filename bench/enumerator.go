package bench

import "github.com/hasbyte1/securitykit/hashing"

// Enumerate yields every parameter combination of schema as the Cartesian
// product of the candidate lists, preserving schema key order: the last
// dimension varies fastest, like nested loops in declaration order.
func Enumerate(schema hashing.BenchSchema) []map[string]int {
	if len(schema) == 0 {
		return nil
	}
	var combos []map[string]int
	current := make(map[string]int, len(schema))

	var walk func(idx int)
	walk = func(idx int) {
		if idx == len(schema) {
			combo := make(map[string]int, len(current))
			for k, v := range current {
				combo[k] = v
			}
			combos = append(combos, combo)
			return
		}
		dim := schema[idx]
		for _, v := range dim.Values {
			current[dim.Name] = v
			walk(idx + 1)
		}
	}
	walk(0)
	return combos
}

// GridSize returns the number of combinations Enumerate will produce.
func GridSize(schema hashing.BenchSchema) int {
	if len(schema) == 0 {
		return 0
	}
	total := 1
	for _, dim := range schema {
		total *= len(dim.Values)
	}
	return total
}
