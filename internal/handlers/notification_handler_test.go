package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageParamFallsBackToDefault(t *testing.T) {
	assert.Equal(t, 25, pageParam("25", 50))
	assert.Equal(t, 50, pageParam("", 50))
	assert.Equal(t, 50, pageParam("junk", 50))
	assert.Equal(t, 50, pageParam("0", 50))
	assert.Equal(t, 50, pageParam("-10", 50))
	assert.Equal(t, 0, pageParam("", 0))
}
