package datastructure

import "errors"

var ErrEmptyHeap = errors.New("heap is empty")

// PriorityQueueNode. heap entry ordered by (rank, order). order is the insertion counter of the search,
// lower order wins when two ranks are equal. rank is fixed once the node is inserted.
type PriorityQueueNode[T comparable] struct {
	rank  float64
	order uint64
	item  T
}

func (p *PriorityQueueNode[T]) GetItem() T {
	return p.item
}

func NewPriorityQueueNode[T comparable](rank float64, order uint64, item T) *PriorityQueueNode[T] {
	return &PriorityQueueNode[T]{rank: rank, order: order, item: item}
}

// MinHeap d-ary heap priorityqueue
type MinHeap[T comparable] struct {
	heap []*PriorityQueueNode[T]
	d    int
}

func NewFourAryHeap[T comparable]() *MinHeap[T] {
	return NewdAryHeap[T](4)
}

func NewdAryHeap[T comparable](d int) *MinHeap[T] {
	if d < 2 {
		d = 2
	}
	return &MinHeap[T]{
		heap: make([]*PriorityQueueNode[T], 0),
		d:    d,
	}
}

// Preallocate reserves room for maxSearchSize entries, a grid search never holds more than one entry per cell.
func (h *MinHeap[T]) Preallocate(maxSearchSize int) {
	h.heap = make([]*PriorityQueueNode[T], 0, maxSearchSize)
}

func (h *MinHeap[T]) parent(index int) int {
	return (index - 1) / h.d
}

// less compares f first, then the insertion counter.
func (h *MinHeap[T]) less(i, j int) bool {
	a, b := h.heap[i], h.heap[j]
	if a.rank != b.rank {
		return a.rank < b.rank
	}
	return a.order < b.order
}

// heapifyUp swaps the item at index with its parent while it is smaller. O(logN) tree height.
func (h *MinHeap[T]) heapifyUp(index int) {
	for index != 0 && h.less(index, h.parent(index)) {
		h.Swap(index, h.parent(index))
		index = h.parent(index)
	}
}

// heapifyDown swaps the item at index with its smallest child while that child is smaller. O(logN) tree height.
func (h *MinHeap[T]) heapifyDown(index int) {
	for {
		leftMostChild := index*h.d + 1
		if leftMostChild >= len(h.heap) {
			return
		}

		sentinel := leftMostChild + h.d
		if sentinel > len(h.heap) {
			sentinel = len(h.heap)
		}

		smallest := leftMostChild
		for i := leftMostChild + 1; i < sentinel; i++ {
			if h.less(i, smallest) {
				smallest = i
			}
		}

		if !h.less(smallest, index) {
			return
		}
		h.Swap(index, smallest)
		index = smallest
	}
}

func (h *MinHeap[T]) Swap(i, j int) {
	h.heap[i], h.heap[j] = h.heap[j], h.heap[i]
}

func (h *MinHeap[T]) IsEmpty() bool {
	return len(h.heap) == 0
}

func (h *MinHeap[T]) Size() int {
	return len(h.heap)
}

func (h *MinHeap[T]) Clear() {
	h.heap = h.heap[:0]
}

func (h *MinHeap[T]) Insert(key *PriorityQueueNode[T]) {
	h.heap = append(h.heap, key)
	h.heapifyUp(h.Size() - 1)
}

// ExtractMin pops the root. O(logN)
func (h *MinHeap[T]) ExtractMin() (*PriorityQueueNode[T], error) {
	if h.IsEmpty() {
		return &PriorityQueueNode[T]{}, ErrEmptyHeap
	}
	root := h.heap[0]

	h.Swap(0, h.Size()-1)

	h.heap[h.Size()-1] = nil
	h.heap = h.heap[:h.Size()-1]
	if len(h.heap) > 0 {
		h.heapifyDown(0)
	}

	return root, nil
}
