package services

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation"
)

var ErrInvalidFilters = errors.New("invalid filters")

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Filters are the list query parameters shared by every endpoint. Extra
// carries endpoint-specific filters (role, status, departmentId, ...)
// verbatim.
type Filters struct {
	Page      int
	PageSize  int
	SortBy    string
	SortOrder SortOrder
	Extra     map[string]string
}

func (f Filters) Validate() error {
	err := validation.ValidateStruct(&f,
		validation.Field(&f.Page, validation.Min(0)),
		validation.Field(&f.PageSize, validation.Min(0), validation.Max(100)),
		validation.Field(&f.SortOrder, validation.In(SortAsc, SortDesc)),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFilters, err)
	}
	return nil
}

// Values encodes the non-zero filters as a query string.
func (f Filters) Values() url.Values {
	v := url.Values{}
	if f.Page > 0 {
		v.Set("page", strconv.Itoa(f.Page))
	}
	if f.PageSize > 0 {
		v.Set("pageSize", strconv.Itoa(f.PageSize))
	}
	if f.SortBy != "" {
		v.Set("sortBy", f.SortBy)
	}
	if f.SortOrder != "" {
		v.Set("sortOrder", string(f.SortOrder))
	}

	keys := make([]string, 0, len(f.Extra))
	for k := range f.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if val := f.Extra[k]; val != "" {
			v.Set(k, val)
		}
	}
	return v
}
