package rest

import (
	"context"

	"github.com/supplyline/scm-console/internal/core/domain"
	"github.com/supplyline/scm-console/internal/core/ports"
)

// recordStore implements ports.RecordStore for one resource path.
type recordStore[T any] struct {
	client *Client
	base   string
}

// NewInventoryStore returns the inventory record store.
func NewInventoryStore(c *Client) ports.RecordStore[domain.InventoryItem] {
	return recordStore[domain.InventoryItem]{client: c, base: "/inventory"}
}

// NewSupplierStore returns the supplier record store.
func NewSupplierStore(c *Client) ports.RecordStore[domain.Supplier] {
	return recordStore[domain.Supplier]{client: c, base: "/suppliers"}
}

// NewOrderStore returns the purchase order record store.
func NewOrderStore(c *Client) ports.RecordStore[domain.Order] {
	return recordStore[domain.Order]{client: c, base: "/orders"}
}

func (s recordStore[T]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := s.client.do(ctx, "GET", s.base, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s recordStore[T]) Get(ctx context.Context, id string) (T, error) {
	var out T
	if err := s.client.do(ctx, "GET", s.base+"/"+id, nil, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

func (s recordStore[T]) Create(ctx context.Context, record T) (T, error) {
	var out T
	if err := s.client.do(ctx, "POST", s.base, record, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

func (s recordStore[T]) Update(ctx context.Context, id string, record T) (T, error) {
	var out T
	if err := s.client.do(ctx, "PUT", s.base+"/"+id, record, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

func (s recordStore[T]) Delete(ctx context.Context, id string) error {
	return s.client.do(ctx, "DELETE", s.base+"/"+id, nil, nil)
}
