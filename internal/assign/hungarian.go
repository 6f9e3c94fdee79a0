// Package assign provides minimum-cost bipartite assignment between two
// finite sets, used to pair platforms with stop positions by total distance.
package assign

import (
	"fmt"
	"math"
)

// Solve returns, for each row of the cost matrix, the column assigned to it
// by a matching that minimizes total cost. The matrix must be rectangular
// with len(cost) <= len(cost[0]); every row is matched to a distinct column
// and surplus columns stay unmatched.
//
// The implementation is the shortest-augmenting-path formulation of the
// Hungarian method (Jonker-Volgenant), O(n^2*m). Ties resolve to the lowest
// column index, keeping results deterministic for symmetric inputs.
//
// Shape violations are programming errors and panic.
func Solve(cost [][]float64) []int {
	n := len(cost)
	if n == 0 {
		return []int{}
	}
	m := len(cost[0])
	if n > m {
		panic(fmt.Sprintf("assign: %d rows exceed %d columns", n, m))
	}
	for i, row := range cost {
		if len(row) != m {
			panic(fmt.Sprintf("assign: row %d has %d columns, want %d", i, len(row), m))
		}
	}

	// Dual potentials and matching state, 1-based with a virtual 0 slot.
	u := make([]float64, n+1)
	v := make([]float64, m+1)
	match := make([]int, m+1) // match[j] = row assigned to column j, 0 = free
	way := make([]int, m+1)

	for i := 1; i <= n; i++ {
		match[0] = i
		j0 := 0

		minv := make([]float64, m+1)
		used := make([]bool, m+1)
		for j := range minv {
			minv[j] = math.Inf(1)
		}

		// Grow an alternating tree from row i until a free column is found.
		for {
			used[j0] = true
			i0 := match[j0]
			delta := math.Inf(1)
			j1 := 0

			for j := 1; j <= m; j++ {
				if used[j] {
					continue
				}
				reduced := cost[i0-1][j-1] - u[i0] - v[j]
				if reduced < minv[j] {
					minv[j] = reduced
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}

			for j := 0; j <= m; j++ {
				if used[j] {
					u[match[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}

			j0 = j1
			if match[j0] == 0 {
				break
			}
		}

		// Augment along the found path.
		for j0 != 0 {
			j1 := way[j0]
			match[j0] = match[j1]
			j0 = j1
		}
	}

	result := make([]int, n)
	for j := 1; j <= m; j++ {
		if match[j] > 0 {
			result[match[j]-1] = j - 1
		}
	}
	return result
}
