package db

import "github.com/rthearn/ivory/common"

// pageBounds computes the [lo, hi) window of the page-th fixed-size page
// over a list of the given length. Pages are numbered from 1. A page
// past the last one is out of range, except that an empty list still
// exposes a single empty page.
func pageBounds(length, page, size int) (lo, hi int, err error) {
	if page < 1 || size < 1 {
		err = common.ErrPageOutOfRange
		return
	}
	lo = (page - 1) * size
	hi = lo + size
	if hi > length {
		hi = length
	}
	if lo >= length && !(page == 1 && length == 0) {
		err = common.ErrPageOutOfRange
	}
	return
}
