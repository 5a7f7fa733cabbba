package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Alp4ka/watchpager"
	"github.com/Alp4ka/watchpager/internal/models"
)

var _testEpoch = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

func seedUsers(t *testing.T, db *gorm.DB) {
	t.Helper()

	users := []models.User{
		{ID: 1, FirstName: "Ada", LastName: "L", Email: "ada@example.com", Hash: "secret-1", CreatedAt: _testEpoch, UpdatedAt: _testEpoch},
		{ID: 2, FirstName: "Bob", LastName: "M", Email: "bob@example.com", Hash: "secret-2", CreatedAt: _testEpoch.Add(24 * time.Hour), UpdatedAt: _testEpoch},
		{ID: 3, FirstName: "Cy", LastName: "N", Email: "cy@example.com", Hash: "secret-3", CreatedAt: _testEpoch.Add(48 * time.Hour), UpdatedAt: _testEpoch},
	}
	require.NoError(t, db.Create(&users).Error)
}

func userIDs(page *watchpager.Page[models.UserView]) []int32 {
	return lo.Map(page.Results, func(u models.UserView, _ int) int32 { return u.ID })
}

func Test_Users_List(t *testing.T) {
	db := newSQLiteStore(t)
	seedUsers(t, db)
	users := NewUsers(db, Options{})

	tests := []struct {
		name      string
		query     UsersQuery
		wantIDs   []int32
		wantTotal int64
	}{
		{
			name:      "default sort",
			query:     UsersQuery{},
			wantIDs:   []int32{1, 2, 3},
			wantTotal: 3,
		},
		{
			name:      "unknown sort falls back to id.asc",
			query:     UsersQuery{Paging: watchpager.RawPager{SortBy: "hash.desc"}},
			wantIDs:   []int32{1, 2, 3},
			wantTotal: 3,
		},
		{
			name:      "email desc",
			query:     UsersQuery{Paging: watchpager.RawPager{SortBy: "email.desc"}},
			wantIDs:   []int32{3, 2, 1},
			wantTotal: 3,
		},
		{
			name:      "email filter",
			query:     UsersQuery{Email: lo.ToPtr("bob@example.com")},
			wantIDs:   []int32{2},
			wantTotal: 1,
		},
		{
			name: "created range is inclusive",
			query: UsersQuery{
				CreatedAfter:  lo.ToPtr(_testEpoch.Add(24 * time.Hour)),
				CreatedBefore: lo.ToPtr(_testEpoch.Add(48 * time.Hour)),
			},
			wantIDs:   []int32{2, 3},
			wantTotal: 2,
		},
		{
			name:      "second page",
			query:     UsersQuery{Paging: watchpager.RawPager{Page: 2, PerPage: 2}},
			wantIDs:   []int32{3},
			wantTotal: 3,
		},
		{
			name:      "no match",
			query:     UsersQuery{Email: lo.ToPtr("nobody@example.com")},
			wantIDs:   []int32{},
			wantTotal: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := users.List(context.Background(), tt.query)
			require.NoError(t, err)

			assert.Equal(t, tt.wantIDs, userIDs(page))
			assert.Equal(t, tt.wantTotal, page.TotalResults)
		})
	}
}

func Test_Users_List_HidesHash(t *testing.T) {
	db := newSQLiteStore(t)
	seedUsers(t, db)

	page, err := NewUsers(db, Options{}).List(context.Background(), UsersQuery{})
	require.NoError(t, err)

	raw, err := json.Marshal(page)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret")
	assert.Contains(t, string(raw), `"email":"ada@example.com"`)
}

func Test_Users_List_StrictSort(t *testing.T) {
	db := newSQLiteStore(t)

	page, err := NewUsers(db, Options{StrictSort: true}).List(context.Background(), UsersQuery{
		Paging: watchpager.RawPager{SortBy: "emial.asc"},
	})
	assert.ErrorIs(t, err, watchpager.ErrUnknownSort)
	assert.ErrorContains(t, err, "closest: 'email.asc'")
	assert.Nil(t, page)
}

func Test_Users_List_Query(t *testing.T) {
	db, mock := newPostgresMock(t)

	mock.ExpectQuery(pageQuery("users", `email = \$\d`, "created_at DESC, id ASC", "LIMIT 10")).
		WithArgs("ada@example.com", "ada@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "hash", "page_row", "total_count"}).AddRow(1, "ada@example.com", "secret", 1, 1))

	page, err := NewUsers(db, Options{}).List(context.Background(), UsersQuery{
		Paging: watchpager.RawPager{SortBy: "created_at.desc"},
		Email:  lo.ToPtr("ada@example.com"),
	})
	require.NoError(t, err)

	assert.Equal(t, []models.UserView{{ID: 1, Email: "ada@example.com"}}, page.Results)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_Users_List_StoreError(t *testing.T) {
	db, mock := newPostgresMock(t)

	storeErr := errors.New("connection refused")
	mock.ExpectQuery(`^SELECT`).WillReturnError(storeErr)

	page, err := NewUsers(db, Options{}).List(context.Background(), UsersQuery{})
	assert.ErrorIs(t, err, storeErr)
	assert.ErrorContains(t, err, "list users")
	assert.Nil(t, page)
}
