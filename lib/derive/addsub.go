// Copyright 2025 Antfly, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package derive

// Per-number labels in a sign labeling.
const (
	SignExcluded   = 0
	SignAdded      = 1
	SignSubtracted = 2
)

// DefaultMaxTerms bounds the subset size of the add/sub search. Raising it is
// a caller choice with O(C(n,k) * 2^k) cost per term count.
const DefaultMaxTerms = 2

// FindAddSubExpressions enumerates every signed subset-sum over the passage
// numbers that hits a target. For each term count k from 2 to maxTerms it
// walks every index combination of size k together with every sign assignment
// in {-1,+1}^k, and emits a label vector of len(numbers) whenever the signed
// sum equals a target. Labelings are not deduplicated: two subsets hitting
// the same target, or sign patterns equivalent up to a global flip, each get
// their own entry. Empty targets or maxTerms < 2 yield no labelings.
func FindAddSubExpressions(numbers []float64, targets []float64, maxTerms int) [][]int {
	if len(targets) == 0 {
		return nil
	}
	targetSet := make(map[float64]struct{}, len(targets))
	for _, t := range targets {
		targetSet[t] = struct{}{}
	}

	var labelings [][]int
	for k := 2; k <= maxTerms && k <= len(numbers); k++ {
		// Current combination, initialized to the lexicographically first one.
		indices := make([]int, k)
		for i := range indices {
			indices[i] = i
		}
		for {
			// Sign assignments count in binary: bit set means added. The bit
			// for the last position varies fastest, so the emission order is
			// stable across runs.
			for mask := 0; mask < 1<<k; mask++ {
				sum := 0.0
				for i, pos := range indices {
					if mask&(1<<(k-1-i)) != 0 {
						sum += numbers[pos]
					} else {
						sum -= numbers[pos]
					}
				}
				if _, hit := targetSet[sum]; !hit {
					continue
				}
				labels := make([]int, len(numbers))
				for i, pos := range indices {
					if mask&(1<<(k-1-i)) != 0 {
						labels[pos] = SignAdded
					} else {
						labels[pos] = SignSubtracted
					}
				}
				labelings = append(labelings, labels)
			}

			// Advance to the next combination in lexicographic order.
			i := k - 1
			for i >= 0 && indices[i] == len(numbers)-k+i {
				i--
			}
			if i < 0 {
				break
			}
			indices[i]++
			for j := i + 1; j < k; j++ {
				indices[j] = indices[j-1] + 1
			}
		}
	}
	return labelings
}
