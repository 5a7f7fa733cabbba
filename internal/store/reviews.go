package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Alp4ka/watchpager"
	"github.com/Alp4ka/watchpager/internal/models"
)

// ReviewSorts lists the most recently updated reviews first unless told
// otherwise.
var ReviewSorts = watchpager.MustNewSorts(
	watchpager.ColumnMapping{
		"tmdb_id":    "tmdb_id",
		"created_at": "created_at",
		"updated_at": "updated_at",
	},
	"updated_at.desc",
	watchpager.OrderBy{Column: "id", Direction: watchpager.DirectionASC},
)

type ReviewsQuery struct {
	Paging   watchpager.RawPager
	UserID   *int32
	Category *models.MediaCategory
	TmdbID   *int32
	Season   *int32
	// NoSeason matches reviews of films and whole shows.
	NoSeason      bool
	Status        *models.WatchStatus
	FunBefore     *bool
	FunDuring     *bool
	FunAfter      *bool
	UpdatedAfter  *time.Time
	UpdatedBefore *time.Time
}

func (q ReviewsQuery) Filters() watchpager.Filters {
	return watchpager.Filters{
		watchpager.Eq("user_id", q.UserID),
		watchpager.Eq("category", q.Category),
		watchpager.Eq("tmdb_id", q.TmdbID),
		watchpager.Eq("season", q.Season),
		watchpager.IsNull("season", q.NoSeason),
		watchpager.Eq("status", q.Status),
		watchpager.Eq("fun_before", q.FunBefore),
		watchpager.Eq("fun_during", q.FunDuring),
		watchpager.Eq("fun_after", q.FunAfter),
		watchpager.Gte("updated_at", q.UpdatedAfter),
		watchpager.Lte("updated_at", q.UpdatedBefore),
	}
}

type Reviews struct {
	db   *gorm.DB
	opts Options
}

func NewReviews(db *gorm.DB, opts Options) *Reviews {
	return &Reviews{db: db, opts: opts}
}

// List returns one page of reviews matching q.
func (s *Reviews) List(ctx context.Context, q ReviewsQuery) (*watchpager.Page[models.Review], error) {
	pager, err := s.opts.decode(q.Paging, ReviewSorts, q.Filters())
	if err != nil {
		return nil, err
	}

	page, err := watchpager.Load[models.Review](ctx, s.db.Model(&models.Review{}), pager)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	return page, nil
}
