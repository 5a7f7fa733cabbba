package models

import (
	"database/sql/driver"
	"errors"
	"fmt"
)

var (
	ErrUnknownCategory = errors.New("unknown media category")
	ErrUnknownStatus   = errors.New("unknown watch status")
)

// MediaCategory tells films and shows apart. A TMDB id is only unique within
// a category.
type MediaCategory string

const (
	CategoryFilm MediaCategory = "Film"
	CategoryShow MediaCategory = "Show"
)

func ParseMediaCategory(s string) (MediaCategory, error) {
	switch c := MediaCategory(s); c {
	case CategoryFilm, CategoryShow:
		return c, nil
	default:
		return "", fmt.Errorf("%w '%s'", ErrUnknownCategory, s)
	}
}

func (c MediaCategory) Value() (driver.Value, error) {
	return string(c), nil
}

func (c *MediaCategory) Scan(src any) error {
	if src == nil {
		*c = ""
		return nil
	}

	s, err := scanString(src)
	if err != nil {
		return err
	}

	*c, err = ParseMediaCategory(s)

	return err
}

type WatchStatus string

const (
	StatusDropped     WatchStatus = "Dropped"
	StatusCompleted   WatchStatus = "Completed"
	StatusWatching    WatchStatus = "Watching"
	StatusPlanToWatch WatchStatus = "PlanToWatch"
)

func ParseWatchStatus(s string) (WatchStatus, error) {
	switch st := WatchStatus(s); st {
	case StatusDropped, StatusCompleted, StatusWatching, StatusPlanToWatch:
		return st, nil
	default:
		return "", fmt.Errorf("%w '%s'", ErrUnknownStatus, s)
	}
}

func (s WatchStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *WatchStatus) Scan(src any) error {
	if src == nil {
		*s = ""
		return nil
	}

	str, err := scanString(src)
	if err != nil {
		return err
	}

	*s, err = ParseWatchStatus(str)

	return err
}

func scanString(src any) (string, error) {
	switch v := src.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("cannot scan %T into string", src)
	}
}
