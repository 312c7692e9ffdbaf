package utils

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPaginationParams(t *testing.T) {
	tests := []struct {
		name       string
		offset     *int
		limit      *int
		wantOffset int
		wantLimit  int
	}{
		{"defaults", nil, nil, 0, pageSizeDefault},
		{"explicit", lo.ToPtr(40), lo.ToPtr(10), 40, 10},
		{"negative offset", lo.ToPtr(-5), nil, 0, pageSizeDefault},
		{"zero limit", nil, lo.ToPtr(0), 0, pageSizeDefault},
		{"capped limit", nil, lo.ToPtr(1000), 0, pageSizeMax},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := GetPaginationParams(tt.offset, tt.limit)
			assert.Equal(t, tt.wantOffset, offset)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestParsePagination(t *testing.T) {
	offset, limit, err := ParsePagination("", "")
	require.NoError(t, err)
	assert.Equal(t, 0, offset)
	assert.Equal(t, pageSizeDefault, limit)

	offset, limit, err = ParsePagination("20", "5")
	require.NoError(t, err)
	assert.Equal(t, 20, offset)
	assert.Equal(t, 5, limit)

	_, _, err = ParsePagination("x", "")
	assert.EqualError(t, err, "invalid 'offset' query parameter, must be an integer")

	_, _, err = ParsePagination("", "ten")
	assert.EqualError(t, err, "invalid 'limit' query parameter, must be an integer")
}
