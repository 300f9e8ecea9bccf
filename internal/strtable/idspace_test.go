package strtable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDSpacePartition(t *testing.T) {
	cases := []struct {
		id    int
		space int
	}{
		{ModIDRangeStart, 0},
		{ModIDRangeStart + 999, 0},
		{ModIDRangeStart + 1000, 1},
		{2110042000, 42},
		{2110042999, 42},
		{ModIDRangeEnd - 1, IDSpaceCount - 1},
	}
	for _, tc := range cases {
		space, ok := IDSpaceOf(tc.id)
		assert.True(t, ok, "id %d", tc.id)
		assert.Equal(t, tc.space, space, "id %d", tc.id)
	}
}

func TestVanillaIDsHaveNoSpace(t *testing.T) {
	for _, id := range []int{0, 1234567, ModIDRangeStart - 1, ModIDRangeEnd, ModIDRangeEnd + 5} {
		assert.True(t, IsVanillaID(id), "id %d", id)
		_, ok := IDSpaceOf(id)
		assert.False(t, ok, "id %d", id)
	}
}

func TestIDSpaceBase(t *testing.T) {
	assert.Equal(t, 2110000000, IDSpaceBase(0))
	assert.Equal(t, 2110042000, IDSpaceBase(42))
}

func TestValidIDSpace(t *testing.T) {
	assert.True(t, ValidIDSpace(0))
	assert.True(t, ValidIDSpace(9999))
	assert.False(t, ValidIDSpace(-1))
	assert.False(t, ValidIDSpace(10000))
}
