package httpapi

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Alp4ka/watchpager"
	"github.com/Alp4ka/watchpager/internal/models"
	"github.com/Alp4ka/watchpager/internal/store"
)

const noSeason = "none"

var errBadParam = errors.New("bad query parameter")

// pagingParams reads page, per_page and sort_by. Malformed numbers become
// zero and are clamped later: pagination input is never rejected.
func pagingParams(c *gin.Context) watchpager.RawPager {
	return watchpager.RawPager{
		Page:    lenientInt(c.Query("page")),
		PerPage: lenientInt(c.Query("per_page")),
		SortBy:  c.Query("sort_by"),
	}
}

func lenientInt(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}

	return n
}

// paramParser collects the first filter parsing error so handlers can read
// all parameters in a row and check once.
type paramParser struct {
	c   *gin.Context
	err error
}

func (p *paramParser) fail(name, raw string, cause error) {
	if p.err == nil {
		p.err = fmt.Errorf("%w '%s'='%s': %v", errBadParam, name, raw, cause)
	}
}

func (p *paramParser) optInt32(name string) *int32 {
	raw, ok := p.c.GetQuery(name)
	if !ok {
		return nil
	}

	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		p.fail(name, raw, err)
		return nil
	}

	v := int32(n)

	return &v
}

func (p *paramParser) optBool(name string) *bool {
	raw, ok := p.c.GetQuery(name)
	if !ok {
		return nil
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		p.fail(name, raw, err)
		return nil
	}

	return &v
}

func (p *paramParser) optString(name string) *string {
	raw, ok := p.c.GetQuery(name)
	if !ok {
		return nil
	}

	return &raw
}

func (p *paramParser) optTime(name string) *time.Time {
	raw, ok := p.c.GetQuery(name)
	if !ok {
		return nil
	}

	v, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		p.fail(name, raw, err)
		return nil
	}

	return &v
}

func (p *paramParser) optCategory(name string) *models.MediaCategory {
	raw, ok := p.c.GetQuery(name)
	if !ok {
		return nil
	}

	v, err := models.ParseMediaCategory(raw)
	if err != nil {
		p.fail(name, raw, err)
		return nil
	}

	return &v
}

func (p *paramParser) optStatus(name string) *models.WatchStatus {
	raw, ok := p.c.GetQuery(name)
	if !ok {
		return nil
	}

	v, err := models.ParseWatchStatus(raw)
	if err != nil {
		p.fail(name, raw, err)
		return nil
	}

	return &v
}

// optSeason reads either a season number or "none" for reviews without one.
func (p *paramParser) optSeason(name string) (*int32, bool) {
	if raw, ok := p.c.GetQuery(name); ok && raw == noSeason {
		return nil, true
	}

	return p.optInt32(name), false
}

func parseUsersQuery(c *gin.Context) (store.UsersQuery, error) {
	p := &paramParser{c: c}

	q := store.UsersQuery{
		Paging:        pagingParams(c),
		Email:         p.optString("email"),
		CreatedAfter:  p.optTime("created_after"),
		CreatedBefore: p.optTime("created_before"),
	}

	return q, p.err
}

func parseReviewsQuery(c *gin.Context) (store.ReviewsQuery, error) {
	p := &paramParser{c: c}

	q := store.ReviewsQuery{
		Paging:        pagingParams(c),
		UserID:        p.optInt32("user_id"),
		Category:      p.optCategory("category"),
		TmdbID:        p.optInt32("tmdb_id"),
		Status:        p.optStatus("status"),
		FunBefore:     p.optBool("fun_before"),
		FunDuring:     p.optBool("fun_during"),
		FunAfter:      p.optBool("fun_after"),
		UpdatedAfter:  p.optTime("updated_after"),
		UpdatedBefore: p.optTime("updated_before"),
	}
	q.Season, q.NoSeason = p.optSeason("season")

	return q, p.err
}
