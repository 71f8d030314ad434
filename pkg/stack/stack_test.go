package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTopFirstOrder(t *testing.T) {
	s := New(1, 2, 3) // top-first: 1 is top
	assert.Equal(t, 3, s.Len())
	top, err := s.Get(0)
	require.NoError(t, err)
	assert.Equal(t, 1, top)
	bottom, err := s.Get(2)
	require.NoError(t, err)
	assert.Equal(t, 3, bottom)
}

func TestPushPopFront(t *testing.T) {
	s := New[int]()
	s.PushFront(10)
	s.PushFront(20)
	assert.Equal(t, 2, s.Len())
	top, err := s.PopFront()
	require.NoError(t, err)
	assert.Equal(t, 20, top)
	top, err = s.PopFront()
	require.NoError(t, err)
	assert.Equal(t, 10, top)
	_, err = s.PopFront()
	assert.ErrorIs(t, err, ErrUnderflow)
}

func TestSwap(t *testing.T) {
	s := New(1, 2, 3)
	require.NoError(t, s.Swap(0, 2))
	assert.Equal(t, []int{3, 2, 1}, s.AsSlice())
	assert.ErrorIs(t, s.Swap(0, 5), ErrUnderflow)
}

func TestSplitOffAndAppendRoundTrip(t *testing.T) {
	s := New(1, 2, 3, 4, 5)
	top, err := s.SplitOff(2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, top.AsSlice())
	assert.Equal(t, []int{3, 4, 5}, s.AsSlice())

	top.Append(s)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, top.AsSlice())
}

func TestSplitOffUnderflow(t *testing.T) {
	s := New(1, 2)
	_, err := s.SplitOff(3)
	assert.ErrorIs(t, err, ErrUnderflow)
}

func TestCloneIsIndependent(t *testing.T) {
	s := New(1, 2, 3)
	c := s.Clone()
	c.PushFront(99)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 4, c.Len())
}

func TestGetOutOfRange(t *testing.T) {
	s := New(1, 2)
	_, err := s.Get(-1)
	assert.ErrorIs(t, err, ErrUnderflow)
	_, err = s.Get(2)
	assert.ErrorIs(t, err, ErrUnderflow)
}
