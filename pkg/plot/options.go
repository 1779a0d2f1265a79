package plot

// Options are the caller-supplied plot inputs. Nil pointers mean "not
// supplied"; a pointer to "" is an explicit empty override.
//
// XColumn and XIndex are alternatives, as are YColumn and YIndex. When both
// are given the column label wins.
type Options struct {
	XColumn *string
	YColumn *string
	XIndex  *int
	YIndex  int

	XLabel   *string
	YLabel   *string
	Title    *string
	Caption  *string
	LabelKey *string

	InvertX bool
	InvertY bool

	Style Style
}

// String returns a pointer to s, for optional Options fields.
func String(s string) *string {
	return &s
}

// Int returns a pointer to i, for optional Options fields.
func Int(i int) *int {
	return &i
}

// Header keys used when the caller does not supply an annotation.
const (
	DefaultTitleKey   = "title"
	DefaultCaptionKey = "citation"
	DefaultLabelKey   = "id"
)

// Parameters is the fully resolved set of inputs for one render.
type Parameters struct {
	// XColumn is empty when the x-axis is the row index.
	XColumn string
	YColumn string

	XLabel   string
	YLabel   string
	Title    string
	Caption  string
	LabelKey string

	InvertX bool
	InvertY bool

	Style Style
}

// HasX reports whether the x-axis is a data column rather than the row index.
func (p Parameters) HasX() bool {
	return p.XColumn != ""
}
