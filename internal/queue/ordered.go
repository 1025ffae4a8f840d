// Package queue provides Ordered, a priority-ordered doubly linked list.
//
// Unlike a binary heap, a full traversal of an Ordered queue always yields its
// elements in priority order, so iterating never pays for a sort or a clone.
// Inserting and removing are O(n) scans; that is the intended trade-off for
// workloads that iterate far more often than they mutate.
//
// Every structural change bumps a mutation counter. Iterators snapshot the
// counter when they are created and fail with ErrConcurrentModification as
// soon as they observe a different value.
package queue

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
)

var (
	// ErrConcurrentModification is reported by an iterator whose queue was
	// structurally modified after the iterator was created.
	ErrConcurrentModification = errors.New("queue: concurrent modification")

	// ErrNoElement is returned by Iterator.Remove when there is no current element.
	ErrNoElement = errors.New("queue: no current element")
)

type node[E any] struct {
	value E
	prev  *node[E]
	next  *node[E]
}

// Ordered is a list kept sorted in ascending order by less. Elements that
// compare equal keep their insertion order. Duplicates, as decided by equal,
// are rejected.
//
// Ordered is not safe for concurrent use.
type Ordered[E any] struct {
	head *node[E]
	tail *node[E]
	size int

	mutations atomic.Uint64

	less  func(a, b E) bool
	equal func(a, b E) bool
}

// New returns an empty queue ordered by less and deduplicated by equal.
func New[E any](less, equal func(a, b E) bool) *Ordered[E] {
	if less == nil || equal == nil {
		panic("queue: less and equal must not be nil")
	}
	return &Ordered[E]{less: less, equal: equal}
}

// Offer inserts e at its priority position, after any elements that compare
// equal to it. It reports false, leaving the queue untouched, when an equal
// element is already present.
func (q *Ordered[E]) Offer(e E) bool {
	if q.find(e) != nil {
		return false
	}
	n := &node[E]{value: e}
	cur := q.head
	for cur != nil && !q.less(e, cur.value) {
		cur = cur.next
	}
	switch {
	case q.head == nil:
		q.head, q.tail = n, n
	case cur == nil:
		n.prev = q.tail
		q.tail.next = n
		q.tail = n
	case cur == q.head:
		n.next = q.head
		q.head.prev = n
		q.head = n
	default:
		n.prev = cur.prev
		n.next = cur
		cur.prev.next = n
		cur.prev = n
	}
	q.size++
	q.mutations.Add(1)
	return true
}

// Remove deletes the element equal to e and reports whether it was present.
func (q *Ordered[E]) Remove(e E) bool {
	n := q.find(e)
	if n == nil {
		return false
	}
	q.unlink(n)
	return true
}

// Contains reports whether an element equal to e is present.
func (q *Ordered[E]) Contains(e E) bool {
	return q.find(e) != nil
}

// Peek returns the first element without removing it.
func (q *Ordered[E]) Peek() (E, bool) {
	if q.head == nil {
		var zero E
		return zero, false
	}
	return q.head.value, true
}

// Poll removes and returns the first element.
func (q *Ordered[E]) Poll() (E, bool) {
	if q.head == nil {
		var zero E
		return zero, false
	}
	v := q.head.value
	q.unlink(q.head)
	return v, true
}

// Len returns the number of elements.
func (q *Ordered[E]) Len() int { return q.size }

// IsEmpty reports whether the queue holds no elements.
func (q *Ordered[E]) IsEmpty() bool { return q.size == 0 }

// Clear removes every element.
func (q *Ordered[E]) Clear() {
	for n := q.head; n != nil; {
		next := n.next
		n.prev, n.next = nil, nil
		n = next
	}
	q.head, q.tail = nil, nil
	q.size = 0
	q.mutations.Add(1)
}

// Clone returns an independent queue with the same elements and order.
func (q *Ordered[E]) Clone() *Ordered[E] {
	c := New(q.less, q.equal)
	for n := q.head; n != nil; n = n.next {
		c.append(n.value)
	}
	return c
}

// Values returns the elements in priority order.
func (q *Ordered[E]) Values() []E {
	out := make([]E, 0, q.size)
	for n := q.head; n != nil; n = n.next {
		out = append(out, n.value)
	}
	return out
}

// Each calls fn for every element in priority order and stops at the first
// error fn returns. If fn structurally modifies q, Each stops with
// ErrConcurrentModification before visiting the next element.
func (q *Ordered[E]) Each(fn func(E) error) error {
	it := q.Iter()
	for it.Next() {
		if err := fn(it.Value()); err != nil {
			return err
		}
	}
	return it.Err()
}

// Iter returns an iterator positioned before the first element.
func (q *Ordered[E]) Iter() *Iterator[E] {
	return &Iterator[E]{q: q, next: q.head, expected: q.mutations.Load()}
}

func (q *Ordered[E]) String() string {
	var b strings.Builder
	b.WriteString("Ordered[")
	for n := q.head; n != nil; n = n.next {
		if n != q.head {
			b.WriteString(", ")
		}
		fmt.Fprint(&b, n.value)
	}
	b.WriteString("]")
	return b.String()
}

func (q *Ordered[E]) find(e E) *node[E] {
	for n := q.head; n != nil; n = n.next {
		if q.equal(e, n.value) {
			return n
		}
	}
	return nil
}

// append links e after the tail. Callers guarantee ordering.
func (q *Ordered[E]) append(e E) {
	n := &node[E]{value: e, prev: q.tail}
	if q.tail == nil {
		q.head = n
	} else {
		q.tail.next = n
	}
	q.tail = n
	q.size++
	q.mutations.Add(1)
}

func (q *Ordered[E]) unlink(n *node[E]) {
	if n.prev == nil {
		q.head = n.next
	} else {
		n.prev.next = n.next
	}
	if n.next == nil {
		q.tail = n.prev
	} else {
		n.next.prev = n.prev
	}
	n.prev, n.next = nil, nil
	q.size--
	q.mutations.Add(1)
}

// Iterator walks an Ordered queue front to back.
//
//	it := q.Iter()
//	for it.Next() {
//		use(it.Value())
//	}
//	if err := it.Err(); err != nil { ... }
type Iterator[E any] struct {
	q        *Ordered[E]
	next     *node[E]
	last     *node[E]
	expected uint64
	err      error
}

// Next advances to the next element. It returns false at the end of the queue
// or once the queue has been modified behind the iterator's back.
func (it *Iterator[E]) Next() bool {
	if it.err != nil {
		return false
	}
	if it.q.mutations.Load() != it.expected {
		it.err = ErrConcurrentModification
		it.last = nil
		return false
	}
	if it.next == nil {
		it.last = nil
		return false
	}
	it.last = it.next
	it.next = it.next.next
	return true
}

// Value returns the element at the current position.
func (it *Iterator[E]) Value() E {
	if it.last == nil {
		var zero E
		return zero
	}
	return it.last.value
}

// Remove deletes the current element from the queue. The iterator stays
// valid and continues with the element that followed it.
func (it *Iterator[E]) Remove() error {
	if it.err != nil {
		return it.err
	}
	if it.q.mutations.Load() != it.expected {
		it.err = ErrConcurrentModification
		return it.err
	}
	if it.last == nil {
		return ErrNoElement
	}
	it.q.unlink(it.last)
	it.last = nil
	it.expected = it.q.mutations.Load()
	return nil
}

// Err returns the error that stopped the iteration, if any.
func (it *Iterator[E]) Err() error { return it.err }
