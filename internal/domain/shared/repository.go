package shared

// Filter holds common list query options shared by repositories
type Filter struct {
	Search   string
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
}

// Normalize applies defaults for unset pagination fields
func (f *Filter) Normalize() {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = 20
	}
}

// Offset returns the row offset for the current page
func (f *Filter) Offset() int {
	return (f.Page - 1) * f.PageSize
}
