package algorithms

import (
	"golang.org/x/exp/constraints"

	"github.com/dd0wney/cluso-algoviz/pkg/model"
)

// Comparator reports whether a belongs strictly before b. Equal values never
// belong before each other, so ties keep their current order.
type Comparator[T constraints.Ordered] func(a, b T) bool

// Ascending orders smaller values first.
func Ascending[T constraints.Ordered](a, b T) bool { return a < b }

// Descending orders larger values first.
func Descending[T constraints.Ordered](a, b T) bool { return a > b }

// ForOrder returns the comparator that puts the better heap value first:
// larger for a max-heap, smaller for a min-heap.
func ForOrder[T constraints.Ordered](o model.Order) Comparator[T] {
	if o == model.MinHeap {
		return Ascending[T]
	}
	return Descending[T]
}
