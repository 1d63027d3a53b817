// Package services exposes the backend's REST resources to the console.
// Every resource shares the same CRUD surface; all calls go through the
// client's request pipeline, so they carry the session token and report
// failures with the client's error taxonomy.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/couponadmin/internal/client/models"
)

var ErrInvalidID = errors.New("invalid id")

// Doer sends one JSON request. *client.HTTPClient implements it.
type Doer interface {
	Do(ctx context.Context, method, path string, query url.Values, body, out any) error
}

// Resource is a CRUD endpoint returning T.
type Resource[T any] struct {
	doer     Doer
	endpoint string
}

func NewResource[T any](doer Doer, endpoint string) *Resource[T] {
	return &Resource[T]{doer: doer, endpoint: endpoint}
}

func (r *Resource[T]) Endpoint() string {
	return r.endpoint
}

// FindMany returns one page of items matching f.
func (r *Resource[T]) FindMany(ctx context.Context, f Filters) (*models.Page[T], error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	var page models.Page[T]
	if err := r.doer.Do(ctx, http.MethodGet, r.endpoint, f.Values(), nil, &page); err != nil {
		return nil, fmt.Errorf("list %s: %w", r.endpoint, err)
	}
	if page.Data == nil {
		page.Data = []T{}
	}
	return &page, nil
}

func (r *Resource[T]) FindOne(ctx context.Context, id int64) (*T, error) {
	path, err := r.itemPath(id)
	if err != nil {
		return nil, err
	}
	var item T
	if err := r.doer.Do(ctx, http.MethodGet, path, nil, nil, &item); err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	return &item, nil
}

func (r *Resource[T]) Create(ctx context.Context, body any) (*T, error) {
	var item T
	if err := r.doer.Do(ctx, http.MethodPost, r.endpoint, nil, body, &item); err != nil {
		return nil, fmt.Errorf("create %s: %w", r.endpoint, err)
	}
	return &item, nil
}

// Update applies a partial change to the item with the given id.
func (r *Resource[T]) Update(ctx context.Context, id int64, body any) (*T, error) {
	path, err := r.itemPath(id)
	if err != nil {
		return nil, err
	}
	var item T
	if err := r.doer.Do(ctx, http.MethodPatch, path, nil, body, &item); err != nil {
		return nil, fmt.Errorf("update %s: %w", path, err)
	}
	return &item, nil
}

func (r *Resource[T]) Delete(ctx context.Context, id int64) error {
	path, err := r.itemPath(id)
	if err != nil {
		return err
	}
	if err := r.doer.Do(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	return nil
}

// Count returns the endpoint's statistics, keyed by whatever the backend
// groups on (role, status, ...).
func (r *Resource[T]) Count(ctx context.Context) (map[string]int, error) {
	counts := map[string]int{}
	if err := r.doer.Do(ctx, http.MethodGet, r.endpoint+"/count", nil, nil, &counts); err != nil {
		return nil, fmt.Errorf("count %s: %w", r.endpoint, err)
	}
	return counts, nil
}

func (r *Resource[T]) itemPath(id int64) (string, error) {
	if id <= 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalidID, id)
	}
	return r.endpoint + "/" + strconv.FormatInt(id, 10), nil
}
