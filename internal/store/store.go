package store

import (
	"github.com/Alp4ka/watchpager"
)

type Options struct {
	// StrictSort rejects unknown sort tokens with watchpager.ErrUnknownSort
	// instead of falling back to the default ordering.
	StrictSort bool
}

func (o Options) decode(raw watchpager.RawPager, sorts *watchpager.Sorts, filters watchpager.Filters) (*watchpager.Pager, error) {
	if o.StrictSort {
		return raw.DecodeStrict(sorts, filters...)
	}

	return raw.Decode(sorts, filters...), nil
}
