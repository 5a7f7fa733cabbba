package watchpager

import (
	"context"
	"fmt"
	"slices"

	"gorm.io/gorm"
)

const (
	pageSourceAlias = "page_source"
	pageRowsAlias   = "page_rows"
	pageCountAlias  = "page_count"
	countedAlias    = "counted"
)

// RawPager is intended for API payloads. For proper code generation, inline it:
//
//	type ReviewsQuery struct {
//	    Paging RawPager `json:",inline"`
//	}
type RawPager struct {
	// Page - 1-indexed page number. Invalid values fall back to FirstPage.
	Page int `json:"page"`
	// PerPage - maximum number of records to return in the response.
	PerPage int `json:"per_page"`
	// SortBy - sort token "<alias>.<asc|desc>". Empty means the default.
	SortBy string `json:"sort_by"`
}

// Decode converts RawPager into *Pager. Page and PerPage are normalized and
// an unknown SortBy resolves to the default ordering of sorts.
func (p RawPager) Decode(sorts *Sorts, filters ...Filter) *Pager {
	return NewPager().
		WithPage(p.Page).
		WithPerPage(p.PerPage).
		WithFilters(filters...).
		WithSubstitutedSort(sorts.Resolve(SortToken(p.SortBy))...)
}

// DecodeStrict is like Decode but rejects a SortBy outside of sorts.
func (p RawPager) DecodeStrict(sorts *Sorts, filters ...Filter) (*Pager, error) {
	token, err := sorts.Parse(p.SortBy)
	if err != nil {
		return nil, err
	}

	p.SortBy = string(token)

	return p.Decode(sorts, filters...), nil
}

// Pager composes filters, ordering and the page slice of one listing request.
type Pager struct {
	page    int
	perPage int
	filters Filters
	sort    Orderings
}

func NewPager() *Pager {
	return &Pager{
		page:    FirstPage,
		perPage: DefaultPerPage,
	}
}

// WithPage sets the 1-indexed page number. NormalizePage is applied.
func (c *Pager) WithPage(page int) *Pager {
	if c == nil {
		c = NewPager()
	}

	c.page = NormalizePage(page)

	return c
}

// WithPerPage sets the maximum number of returned records. NormalizePerPage
// is applied.
func (c *Pager) WithPerPage(perPage int) *Pager {
	if c == nil {
		c = NewPager()
	}

	c.perPage = NormalizePerPage(perPage)

	return c
}

// WithFilters appends filters. Identity filters are skipped and a filter on an
// already filtered (column, operator) pair replaces the previous one.
func (c *Pager) WithFilters(filters ...Filter) *Pager {
	if c == nil {
		c = NewPager()
	}

	c.filters = append(c.filters, filters...).Compact()

	return c
}

// WithSubstitutedSort resets previous orderings and applies the provided ones.
func (c *Pager) WithSubstitutedSort(orderBy ...OrderBy) *Pager {
	if c == nil {
		c = NewPager()
	}

	c.sort = nil

	return c.WithSort(orderBy...)
}

// WithSort appends sort orderings without overwriting existing ones.
// Order is preserved as if calling:
//
//	OrderBy(o1).ThenBy(o2).ThenBy(o3)...
func (c *Pager) WithSort(orderBy ...OrderBy) *Pager {
	if c == nil {
		c = NewPager()
	}

	for _, o := range orderBy {
		idx := slices.IndexFunc(c.sort, func(processed OrderBy) bool {
			return processed.Column == o.Column
		})

		// Remove previous occurrence (avoid duplication).
		if idx != -1 {
			c.sort = slices.Delete(c.sort, idx, idx+1)
		}

		c.sort = append(c.sort, o)
	}

	return c
}

// Paginate wraps the relation into a single query returning one page of rows
// together with the number of rows of the whole filtered relation:
//
//	SELECT page_source.*, page_count.total_count
//	FROM (SELECT COUNT(*) AS total_count FROM (<relation WHERE filters>) AS counted) AS page_count
//	LEFT JOIN (
//	    SELECT *, 1 AS page_row FROM (<relation WHERE filters>) AS page_rows
//	    ORDER BY <sort> LIMIT <per_page> OFFSET <offset>
//	) AS page_source ON TRUE
//	ORDER BY <sort>
//
// The count side always yields exactly one row, so a page past the last row
// still carries the total: it comes back as a single row with NULL page
// columns, which Assemble skips.
func (c *Pager) Paginate(relation *gorm.DB) (*gorm.DB, error) {
	if c == nil {
		c = NewPager()
	}

	err := c.validate()
	if err != nil {
		return nil, fmt.Errorf("cannot paginate: %w", err)
	}

	source := c.filters.Apply(relation)

	counted := relation.Session(&gorm.Session{NewDB: true}).
		Table(fmt.Sprintf("(?) AS %s", countedAlias), source).
		Select(fmt.Sprintf("COUNT(*) AS %s", TotalCountColumn))

	rows := relation.Session(&gorm.Session{NewDB: true}).
		Table(fmt.Sprintf("(?) AS %s", pageRowsAlias), source).
		Select(fmt.Sprintf("*, 1 AS %s", PageRowColumn))
	rows = c.sort.Apply(rows).Limit(c.GetPerPage()).Offset(c.GetOffset())

	db := relation.Session(&gorm.Session{NewDB: true}).
		Table(fmt.Sprintf("(?) AS %s LEFT JOIN (?) AS %s ON TRUE", pageCountAlias, pageSourceAlias), counted, rows).
		Select(fmt.Sprintf("%s.*, %s.%s", pageSourceAlias, pageCountAlias, TotalCountColumn))

	return c.sort.Apply(db), nil
}

// GetPage returns the normalized page number.
func (c *Pager) GetPage() int {
	if c == nil {
		return FirstPage
	}

	return NormalizePage(c.page)
}

// GetPerPage returns the normalized page size.
func (c *Pager) GetPerPage() int {
	if c == nil {
		return DefaultPerPage
	}

	return NormalizePerPage(c.perPage)
}

// GetOffset returns (page - 1) * per_page.
func (c *Pager) GetOffset() int {
	return Offset(c.GetPage(), c.GetPerPage())
}

// GetSort returns orderings that will be applied to the dataset.
func (c *Pager) GetSort() Orderings {
	if c == nil {
		return nil
	}

	return c.sort
}

// GetFilters returns the present filters that will be applied to the dataset.
func (c *Pager) GetFilters() Filters {
	if c == nil {
		return nil
	}

	return c.filters
}

func (c *Pager) validate() error {
	if c == nil {
		return fmt.Errorf("pager is nil")
	}

	err := c.sort.validate()
	if err != nil {
		return err
	}

	return c.filters.validate()
}

// Load executes the paginated relation in one round trip and assembles the
// page. A relation without a model or table defaults to the model T.
func Load[T any](ctx context.Context, relation *gorm.DB, pager *Pager) (*Page[T], error) {
	return LoadMap(ctx, relation, pager, func(item T) T { return item })
}

// LoadMap is like Load but maps every scanned record R into T.
func LoadMap[R any, T any](ctx context.Context, relation *gorm.DB, pager *Pager, fn func(R) T) (*Page[T], error) {
	relation = relation.WithContext(ctx)
	if relation.Statement.Model == nil && relation.Statement.Table == "" {
		relation = relation.Model(new(R))
	}

	paged, err := pager.Paginate(relation)
	if err != nil {
		return nil, err
	}

	var rows []Row[R]
	if err = paged.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("cannot load page: %w", err)
	}

	return AssembleMap(rows, pager.GetPage(), pager.GetPerPage(), fn), nil
}
