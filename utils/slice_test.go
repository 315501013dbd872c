package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"travelshare/utils"
)

func TestAppendUnique(t *testing.T) {
	s := []string{"a", "b"}
	s = utils.AppendUnique(s, "b")
	assert.Equal(t, []string{"a", "b"}, s)
	s = utils.AppendUnique(s, "c")
	assert.Equal(t, []string{"a", "b", "c"}, s)
}

func TestRemoveValue(t *testing.T) {
	s := []string{"a", "b", "c"}
	s = utils.RemoveValue(s, "b")
	assert.Equal(t, []string{"a", "c"}, s)
	s = utils.RemoveValue(s, "missing")
	assert.Equal(t, []string{"a", "c"}, s)
}

func TestContains(t *testing.T) {
	assert.True(t, utils.Contains([]string{"x", "y"}, "y"))
	assert.False(t, utils.Contains([]string{"x", "y"}, "z"))
	assert.False(t, utils.Contains(nil, "z"))
}
