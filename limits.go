package watchpager

import "math"

const (
	FirstPage      = 1
	MaxPerPage     = 50
	DefaultPerPage = 10
)

// IsNormalizedPerPageMax clamps perPage into [1, maxPerPage]. Non-positive
// values fall back to DefaultPerPage. The second return value reports whether
// perPage was already valid.
func IsNormalizedPerPageMax(perPage int, maxPerPage int) (int, bool) {
	if perPage <= 0 {
		return DefaultPerPage, false
	} else if perPage > maxPerPage {
		return maxPerPage, false
	}

	return perPage, true
}

func NormalizePerPageMax(perPage int, maxPerPage int) int {
	ret, _ := IsNormalizedPerPageMax(perPage, maxPerPage)
	return ret
}

func NormalizePerPage(perPage int) int {
	return NormalizePerPageMax(perPage, MaxPerPage)
}

// NormalizePage returns page when it is 1-indexed, FirstPage otherwise.
func NormalizePage(page int) int {
	if page < FirstPage {
		return FirstPage
	}

	return page
}

// Offset returns the number of rows skipped before the page begins. Both
// arguments are normalized first and the product saturates at math.MaxInt,
// so the result is never negative.
func Offset(page int, perPage int) int {
	skipped, size := NormalizePage(page)-1, NormalizePerPage(perPage)
	if skipped > math.MaxInt/size {
		return math.MaxInt
	}

	return skipped * size
}
