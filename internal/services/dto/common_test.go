package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 10, 25)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, int64(25), p.Total)
	assert.Equal(t, 3, p.TotalPages)

	// Exact multiples do not round up.
	assert.Equal(t, 2, NewPagination(1, 10, 20).TotalPages)
	assert.Equal(t, 0, NewPagination(1, 10, 0).TotalPages)
}
