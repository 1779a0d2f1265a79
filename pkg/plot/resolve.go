package plot

import (
	"github.com/brianbland/xcsvplot/pkg/dataset"
)

// Resolve reconciles opts with defaults taken from the datasets and returns
// the parameters for a render.
//
// Every field is the first value offered by an ordered chain of providers:
// caller input, then the first dataset's metadata, then a fixed default.
// Only datasets[0] is consulted; per-series legend labels are looked up
// later, against each dataset, using the resolved LabelKey.
func Resolve(datasets []*dataset.Dataset, opts Options) (Parameters, error) {
	if len(datasets) == 0 {
		return Parameters{}, ErrEmptyInput
	}
	first := datasets[0]

	ycol, err := resolveColumn(first, byName(opts.YColumn), byIndex(&opts.YIndex))
	if err != nil {
		return Parameters{}, err
	}
	xcol, err := resolveColumn(first, byName(opts.XColumn), byIndex(opts.XIndex))
	if err != nil {
		return Parameters{}, err
	}

	return Parameters{
		XColumn:  xcol,
		YColumn:  ycol,
		XLabel:   firstOf(given(opts.XLabel), fixed(xcol)),
		YLabel:   firstOf(given(opts.YLabel), fixed(ycol)),
		Title:    firstOf(given(opts.Title), fromHeader(first, DefaultTitleKey)),
		Caption:  firstOf(given(opts.Caption), fromHeader(first, DefaultCaptionKey)),
		LabelKey: firstOf(given(opts.LabelKey), fixed(DefaultLabelKey)),
		InvertX:  opts.InvertX,
		InvertY:  opts.InvertY,
		Style:    opts.Style.Normalize(),
	}, nil
}

// provider offers a candidate value for a text field.
type provider func() (string, bool)

// firstOf returns the first value offered, or "" if no provider offers one.
func firstOf(providers ...provider) string {
	for _, p := range providers {
		if v, ok := p(); ok {
			return v
		}
	}
	return ""
}

func given(s *string) provider {
	return func() (string, bool) {
		if s == nil {
			return "", false
		}
		return *s, true
	}
}

func fromHeader(ds *dataset.Dataset, key string) provider {
	return func() (string, bool) {
		v := dataset.HeaderItem(ds, key)
		return v, v != ""
	}
}

func fixed(s string) provider {
	return func() (string, bool) {
		return s, true
	}
}

// columnProvider offers a column label of ds, failing if the caller's
// reference does not exist.
type columnProvider func(ds *dataset.Dataset) (string, bool, error)

// resolveColumn returns the first label offered, or "" (no column) if none is.
func resolveColumn(ds *dataset.Dataset, providers ...columnProvider) (string, error) {
	for _, p := range providers {
		label, ok, err := p(ds)
		if err != nil {
			return "", err
		}
		if ok {
			return label, nil
		}
	}
	return "", nil
}

func byName(name *string) columnProvider {
	return func(ds *dataset.Dataset) (string, bool, error) {
		if name == nil {
			return "", false, nil
		}
		if !ds.HasColumn(*name) {
			return "", false, &dataset.ColumnNotFoundError{Column: *name}
		}
		return *name, true, nil
	}
}

func byIndex(index *int) columnProvider {
	return func(ds *dataset.Dataset) (string, bool, error) {
		if index == nil {
			return "", false, nil
		}
		label, err := ds.ColumnName(*index)
		if err != nil {
			return "", false, err
		}
		return label, true, nil
	}
}
