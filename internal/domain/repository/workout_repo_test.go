package repository

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPage_Offset(t *testing.T) {
	for name, tc := range map[string]struct {
		page Page
		want int
	}{
		"first page":   {Page{Limit: 10, Page: 1}, 0},
		"third page":   {Page{Limit: 10, Page: 3}, 20},
		"zero page":    {Page{Limit: 10, Page: 0}, 0},
		"no limit":     {Page{Page: 5}, 0},
		"overflowing":  {Page{Limit: 4, Page: 4611686018427387904}, math.MaxInt},
		"largest page": {Page{Limit: 1, Page: math.MaxInt}, math.MaxInt - 1},
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.page.Offset())
		})
	}
}
