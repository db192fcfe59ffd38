package render

// Layout constants in millimeters on an A4 page. Capacities are sized against
// the fixed heights of the header block, table rows, totals block and footer,
// with slack so explicit pages never overflow into an implicit break.
const (
	itemRowHeight     = 8
	tableHeaderHeight = 8

	// firstPageItems is lower because page 1 also carries the logo/title and
	// company blocks.
	firstPageItems = 14
	contPageItems  = 24

	// totalsSlots is the totals block height expressed in item-row slots. The
	// final page must keep this much room so the totals land under the last
	// item row instead of spilling onto a page of their own.
	totalsSlots = 5
)

// paginate returns how many line items go on each page. Always at least one
// page, even for an empty invoice.
func paginate(n int) []int {
	var counts []int
	remaining := n
	for pageIdx := 0; ; pageIdx++ {
		capacity := contPageItems
		if pageIdx == 0 {
			capacity = firstPageItems
		}

		if remaining+totalsSlots <= capacity {
			return append(counts, remaining)
		}

		take := capacity
		if remaining <= capacity {
			// Items alone would fit, but the totals block would not. Hold
			// some items back so the last page keeps room for it.
			take = capacity - totalsSlots
		}
		counts = append(counts, take)
		remaining -= take
	}
}

// PageCount reports how many pages an invoice with n line items produces.
func PageCount(n int) int {
	return len(paginate(n))
}
