package http

import (
	"net/http"
	"net/url"
	"strconv"

	"ngoforum-backend/internal/domain"

	"github.com/gorilla/mux"
)

// queryParams collects typed query values and their validation errors
type queryParams struct {
	values url.Values
	errs   *domain.ValidationError
}

func newQueryParams(r *http.Request) *queryParams {
	return &queryParams{values: r.URL.Query(), errs: domain.NewValidationError()}
}

func (q *queryParams) String(name string) string {
	return q.values.Get(name)
}

func (q *queryParams) Int32(name string) *int32 {
	raw := q.values.Get(name)
	if raw == "" {
		return nil
	}
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		q.errs.Add(name, "A valid integer is required.")
		return nil
	}
	v := int32(n)
	return &v
}

func (q *queryParams) Bool(name string) *bool {
	raw := q.values.Get(name)
	if raw == "" {
		return nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		q.errs.Add(name, "Must be a valid boolean.")
		return nil
	}
	return &b
}

// Page reads page and page_size
func (q *queryParams) Page() domain.Page {
	var p domain.Page
	if v := q.Int32("page"); v != nil {
		p.Page = *v
	}
	if v := q.Int32("page_size"); v != nil {
		p.PageSize = *v
	}
	return p.Normalize()
}

func (q *queryParams) Err() error {
	return q.errs.Err()
}

// pathID parses a numeric route variable
func pathID(r *http.Request, name string) (int32, error) {
	n, err := strconv.ParseInt(mux.Vars(r)[name], 10, 32)
	if err != nil || n <= 0 {
		return 0, domain.ErrNotFound
	}
	return int32(n), nil
}
