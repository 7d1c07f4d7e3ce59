package pqueue_test

import (
	"testing"

	"github.com/named-data/ndndface/internal/pqueue"
	"github.com/stretchr/testify/assert"
)

func TestBasics(t *testing.T) {
	q := pqueue.New[int, int]()
	assert.Equal(t, 0, q.Len())
	q.Push(1, 1)
	q.Push(2, 3)
	q.Push(3, 2)
	assert.Equal(t, 3, q.Len())
	assert.Equal(t, 1, q.PeekPriority())
	assert.Equal(t, 1, q.Pop())
	assert.Equal(t, 2, q.PeekPriority())
	assert.Equal(t, 3, q.Pop())
	assert.Equal(t, 2, q.Pop())
	assert.Equal(t, 0, q.Len())
}

func TestRemove(t *testing.T) {
	q := pqueue.New[string, int]()
	a := q.Push("a", 5)
	b := q.Push("b", 1)
	q.Push("c", 10)
	assert.Equal(t, 3, q.Len())

	q.Remove(b)
	assert.Equal(t, 2, q.Len())
	assert.Equal(t, "a", q.Peek())

	q.Remove(a)
	assert.Equal(t, 1, q.Len())
	assert.Equal(t, "c", q.Pop())
}

func TestUpdatePriority(t *testing.T) {
	q := pqueue.New[string, int]()
	a := q.Push("a", 5)
	q.Push("b", 10)
	q.UpdatePriority(a, 20)
	assert.Equal(t, "b", q.Peek())
}
