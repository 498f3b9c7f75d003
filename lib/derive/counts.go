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

// DefaultMaxCount is the upper bound (exclusive) of the candidate count range.
// Float answers never match a count.
const DefaultMaxCount = 100000

// CountRange builds the fixed [0, maxCount) candidate table. Built once at
// startup and shared read-only across workers.
func CountRange(maxCount int) []int {
	counts := make([]int, maxCount)
	for i := range counts {
		counts[i] = i
	}
	return counts
}

// FindValidCounts returns the indices i for which countRange[i] is one of the
// targets. A target outside the half-open range simply never matches.
func FindValidCounts(countRange []int, targets []float64) []int {
	targetSet := make(map[float64]struct{}, len(targets))
	for _, t := range targets {
		targetSet[t] = struct{}{}
	}
	var valid []int
	for i, n := range countRange {
		if _, hit := targetSet[float64(n)]; hit {
			valid = append(valid, i)
		}
	}
	return valid
}
