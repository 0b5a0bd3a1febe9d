package model

import (
	"math"
	"math/rand/v2"
)

// RandomValues returns n values drawn uniformly from [lo, hi].
func RandomValues(r *rand.Rand, n, lo, hi int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = lo + r.IntN(hi-lo+1)
	}
	return out
}

// RandomArray returns a ten-element array with values in 5..104.
func RandomArray(r *rand.Rand) *Array {
	return NewArray(RandomValues(r, 10, 5, 104)...)
}

// RandomHeap returns a built heap of 5..11 values in 0..99.
func RandomHeap(r *rand.Rand, order Order) *Heap {
	return NewBuiltHeap(order, RandomValues(r, 5+r.IntN(7), 0, 99)...)
}

// SampleList returns the list 10 -> 20 -> 30 -> 40 -> 50.
func SampleList(doubly bool) *LinkedList {
	return NewLinkedList(doubly, 10, 20, 30, 40, 50)
}

// SampleBST returns a complete search tree over 1..15 rooted at 8.
func SampleBST() *Tree {
	return NewBST(8, 4, 12, 2, 6, 10, 14, 1, 3, 5, 7, 9, 11, 13, 15)
}

// SampleBinaryTree returns a level-order tree over 1..10.
func SampleBinaryTree() *Tree {
	return NewBinaryTree(1, 2, 3, 4, 5, 6, 7, 8, 9, 10)
}

// SampleGraph returns six vertices A..F on a circle with seven edges.
func SampleGraph(directed bool) *Graph {
	g := NewGraph(directed)
	keys := []string{"A", "B", "C", "D", "E", "F"}
	for i, k := range keys {
		angle := 2 * math.Pi * float64(i) / float64(len(keys))
		_ = g.AddVertex(k, 300+200*math.Cos(angle), 250+200*math.Sin(angle))
	}
	for _, e := range [][2]string{{"A", "B"}, {"A", "D"}, {"B", "C"}, {"B", "E"}, {"C", "F"}, {"D", "E"}, {"E", "F"}} {
		_ = g.AddEdge(e[0], e[1])
	}
	return g
}

// Sample returns the default instance of a structure family.
func Sample(kind Kind, r *rand.Rand) Structure {
	switch kind {
	case KindArray:
		return RandomArray(r)
	case KindStack:
		return NewStack()
	case KindQueue:
		return NewQueue()
	case KindLinkedList:
		return SampleList(false)
	case KindBST:
		return SampleBST()
	case KindBinaryTree:
		return SampleBinaryTree()
	case KindGraph:
		return SampleGraph(false)
	case KindHeap:
		return RandomHeap(r, MaxHeap)
	}
	return nil
}
