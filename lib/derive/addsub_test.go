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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindAddSubExpressionsAddition(t *testing.T) {
	got := FindAddSubExpressions([]float64{3, 5}, []float64{8}, 2)
	assert.Equal(t, [][]int{{SignAdded, SignAdded}}, got)
}

func TestFindAddSubExpressionsSignLabels(t *testing.T) {
	// -3+5 = 2 matches; 3-5 = -2 does not. Exactly one labeling, with the
	// subtracted position labeled 2 and the added position labeled 1.
	got := FindAddSubExpressions([]float64{3, 5}, []float64{2}, 2)
	assert.Equal(t, [][]int{{SignSubtracted, SignAdded}}, got)
}

func TestFindAddSubExpressionsMultipleLabelings(t *testing.T) {
	// Both -3+3 and +3-3 hit zero; symmetric labelings are kept.
	got := FindAddSubExpressions([]float64{3, 3}, []float64{0}, 2)
	assert.Equal(t, [][]int{
		{SignSubtracted, SignAdded},
		{SignAdded, SignSubtracted},
	}, got)
}

func TestFindAddSubExpressionsMultipleSubsets(t *testing.T) {
	// 3+5 and 10-2 both explain 8 from different subsets.
	got := FindAddSubExpressions([]float64{3, 5, 10, 2}, []float64{8}, 2)
	assert.Contains(t, got, []int{SignAdded, SignAdded, 0, 0})
	assert.Contains(t, got, []int{0, 0, SignAdded, SignSubtracted})
	for _, labels := range got {
		assert.Len(t, labels, 4)
	}
}

func TestFindAddSubExpressionsThreeTerms(t *testing.T) {
	got := FindAddSubExpressions([]float64{1, 2, 3}, []float64{6}, 3)
	assert.Contains(t, got, []int{SignAdded, SignAdded, SignAdded})
	// With maxTerms=2 no pair sums to 6.
	assert.Empty(t, FindAddSubExpressions([]float64{1, 2, 3}, []float64{6}, 2))
}

func TestFindAddSubExpressionsEmptyInputs(t *testing.T) {
	assert.Empty(t, FindAddSubExpressions(nil, []float64{8}, 2))
	assert.Empty(t, FindAddSubExpressions([]float64{3, 5}, nil, 2))
	assert.Empty(t, FindAddSubExpressions([]float64{3, 5}, []float64{8}, 1))
	assert.Empty(t, FindAddSubExpressions([]float64{8}, []float64{8}, 2))
}

func TestFindAddSubExpressionsOrderStable(t *testing.T) {
	numbers := []float64{3, 5, 10, 2, 7, 1}
	targets := []float64{8, 2, 6}
	first := FindAddSubExpressions(numbers, targets, 3)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, FindAddSubExpressions(numbers, targets, 3))
	}
}

func TestFindValidCounts(t *testing.T) {
	counts := CountRange(10)
	assert.Equal(t, []int{3, 7}, FindValidCounts(counts, []float64{3, 7, 15}))
	assert.Equal(t, []int{8}, FindValidCounts(counts, []float64{8.0}))
	assert.Empty(t, FindValidCounts(counts, []float64{8.5}))
	assert.Empty(t, FindValidCounts(counts, nil))
	assert.Empty(t, FindValidCounts(nil, []float64{1}))
}

func TestFindValidCountsBoundary(t *testing.T) {
	counts := CountRange(100000)
	assert.Empty(t, FindValidCounts(counts, []float64{100000}))
	assert.Equal(t, []int{0}, FindValidCounts(counts, []float64{0}))
	assert.Equal(t, []int{99999}, FindValidCounts(counts, []float64{99999}))
}
