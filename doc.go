// Package watchpager provides offset pagination primitives for GORM that
// return a page of rows and the total number of matching rows in one round
// trip.
//
// Overview
//
// A listing request is composed in three steps:
//   - Filters: optional predicates (Eq, Gte, Lte, IsNull...) joined by AND.
//     An absent value contributes nothing.
//   - Sorts: a closed set of "<alias>.<asc|desc>" tokens per entity with a
//     fixed default, so unknown tokens never change page boundaries.
//   - Pager: joins the row count of the filtered relation with its
//     "LIMIT n OFFSET m" slice, so the total survives an empty page.
//
// Load executes the query and assembles a Page with results, page,
// total_pages and total_results.
package watchpager
