package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Alp4ka/watchpager"
	"github.com/Alp4ka/watchpager/internal/models"
)

// UserSorts lists users by primary key unless told otherwise.
var UserSorts = watchpager.MustNewSorts(
	watchpager.ColumnMapping{
		"id":         "id",
		"email":      "email",
		"created_at": "created_at",
		"updated_at": "updated_at",
	},
	"id.asc",
	watchpager.OrderBy{Column: "id", Direction: watchpager.DirectionASC},
)

type UsersQuery struct {
	Paging        watchpager.RawPager
	Email         *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

func (q UsersQuery) Filters() watchpager.Filters {
	return watchpager.Filters{
		watchpager.Eq("email", q.Email),
		watchpager.Gte("created_at", q.CreatedAfter),
		watchpager.Lte("created_at", q.CreatedBefore),
	}
}

type Users struct {
	db   *gorm.DB
	opts Options
}

func NewUsers(db *gorm.DB, opts Options) *Users {
	return &Users{db: db, opts: opts}
}

// List returns one page of users matching q.
func (s *Users) List(ctx context.Context, q UsersQuery) (*watchpager.Page[models.UserView], error) {
	pager, err := s.opts.decode(q.Paging, UserSorts, q.Filters())
	if err != nil {
		return nil, err
	}

	page, err := watchpager.LoadMap(ctx, s.db.Model(&models.User{}), pager, models.User.View)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return page, nil
}
