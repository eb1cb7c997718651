package db

import (
	"testing"

	"github.com/rthearn/ivory/common"
)

func TestPageBounds(t *testing.T) {
	t.Parallel()

	cases := [...]struct {
		name               string
		length, page, size int
		lo, hi             int
		err                error
	}{
		{"first page", 25, 1, 10, 0, 10, nil},
		{"middle page", 25, 2, 10, 10, 20, nil},
		{"clipped last page", 25, 3, 10, 20, 25, nil},
		{"past the end", 25, 4, 10, 0, 0, common.ErrPageOutOfRange},
		{"exact fit last page", 20, 2, 10, 10, 20, nil},
		{"exact fit past the end", 20, 3, 10, 0, 0, common.ErrPageOutOfRange},
		{"zero page", 25, 0, 10, 0, 0, common.ErrPageOutOfRange},
		{"negative page", 25, -1, 10, 0, 0, common.ErrPageOutOfRange},
		{"empty list first page", 0, 1, 10, 0, 0, nil},
		{"empty list second page", 0, 2, 10, 0, 0, common.ErrPageOutOfRange},
	}

	for i := range cases {
		c := cases[i]
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			lo, hi, err := pageBounds(c.length, c.page, c.size)
			if err != c.err {
				t.Fatalf("unexpected error: %#v", err)
			}
			if err == nil && (lo != c.lo || hi != c.hi) {
				t.Fatalf("unexpected bounds: [%d, %d)", lo, hi)
			}
		})
	}
}
