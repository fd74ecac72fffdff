package numeric

import "sort"

// FindSimpleMaxima returns, in ascending order, the indices of local maxima
// of y (y[i] >= y[i-1] and y[i] >= y[i+1]) after greedily accepting
// candidates by descending intensity and blocking all indices within
// ±(minDistance-1) of an accepted candidate from further acceptance. Ties in
// intensity are broken by lower index, matching spec §4.A.
func FindSimpleMaxima(y []float64, minDistance int) []int {
	n := len(y)
	if n == 0 {
		return nil
	}
	if minDistance < 1 {
		minDistance = 1
	}

	var candidates []int
	for i := 0; i < n; i++ {
		left := i == 0 || y[i] >= y[i-1]
		right := i == n-1 || y[i] >= y[i+1]
		if left && right {
			candidates = append(candidates, i)
		}
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		ia, ib := candidates[a], candidates[b]
		if y[ia] != y[ib] {
			return y[ia] > y[ib]
		}
		return ia < ib
	})

	blocked := make([]bool, n)
	var accepted []int
	block := minDistance - 1
	for _, i := range candidates {
		if blocked[i] {
			continue
		}
		accepted = append(accepted, i)
		lo, hi := i-block, i+block
		if lo < 0 {
			lo = 0
		}
		if hi >= n {
			hi = n - 1
		}
		for j := lo; j <= hi; j++ {
			blocked[j] = true
		}
	}

	sort.Ints(accepted)
	return accepted
}
