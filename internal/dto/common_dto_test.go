package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name        string
		currentPage string
		wantPage    int
	}{
		{"numeric", "3", 3},
		{"empty defaults to one", "", 1},
		{"non-numeric defaults to one", "abc", 1},
		{"zero defaults to one", "0", 1},
		{"negative defaults to one", "-2", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.currentPage, 4)
			assert.Equal(t, tt.wantPage, p.CurrentPage)
			assert.Equal(t, 4, p.PerPage)
		})
	}
}

func TestPaginationOffset(t *testing.T) {
	p := NewPagination("3", 5)
	assert.Equal(t, 10, p.Offset())
	assert.Equal(t, 5, p.Limit())
}

func TestPaginationMeta(t *testing.T) {
	p := NewPagination("1", 4)

	meta := p.Meta(6)
	assert.Equal(t, 2, meta.TotalPages)
	assert.Equal(t, int64(6), meta.TotalItems)

	meta = p.Meta(8)
	assert.Equal(t, 2, meta.TotalPages)

	meta = p.Meta(0)
	assert.Equal(t, 0, meta.TotalPages)
}
