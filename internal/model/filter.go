package model

import "math"

// FilterCriteria narrows a trending batch. An empty Query and an empty
// Categories set mean "no restriction"; the view range is always present,
// with the widest representable range standing in for "unrestricted".
type FilterCriteria struct {
	Query      string
	Categories map[string]struct{}
	MinViews   int64 // inclusive
	MaxViews   int64 // inclusive; invariant MinViews <= MaxViews
}

// DefaultCriteria returns criteria that impose no restriction.
func DefaultCriteria() FilterCriteria {
	return FilterCriteria{
		MinViews: 0,
		MaxViews: math.MaxInt64,
	}
}
