package forecast

const (
	DefaultPage     = 1
	DefaultPageSize = 100
)

// Page is a contiguous slice of a Table.
type Page struct {
	Number  int
	Size    int
	Total   int
	Columns []string
	Rows    []Row
}

// Paginate returns the rows with absolute index in [(page-1)*size, page*size),
// clipped to the table. A page below 1 is treated as 1 and a size below 1 as
// DefaultPageSize. Pages past the end are empty; Total is always the row count
// of t.
func Paginate(t Table, page, size int) Page {
	if page < 1 {
		page = DefaultPage
	}
	if size < 1 {
		size = DefaultPageSize
	}

	total := len(t.Rows)
	p := Page{
		Number:  page,
		Size:    size,
		Total:   total,
		Columns: t.Columns,
		Rows:    []Row{},
	}

	pages := total / size
	if total%size != 0 {
		pages++
	}
	// Checked before multiplying so huge page numbers cannot overflow.
	if page-1 >= pages {
		return p
	}
	start := (page - 1) * size
	end := start + size
	if end > total || end < start {
		end = total
	}
	p.Rows = t.Rows[start:end]
	return p
}
