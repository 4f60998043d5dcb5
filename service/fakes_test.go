package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tienda-admin/models"
	"tienda-admin/orderbuilder"
	"tienda-admin/repository"
	"tienda-admin/variants"
)

type fakeProducts struct {
	products map[string]*models.Product
	lookups  map[string]orderbuilder.Product
}

func (f *fakeProducts) Create(_ context.Context, p *models.Product, _ variants.Matrix) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeProducts) GetByID(_ context.Context, id string) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", id, repository.ErrNotFound)
	}
	return p, nil
}

func (f *fakeProducts) List(context.Context, string) ([]models.Product, error) {
	var out []models.Product
	for _, p := range f.products {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProducts) Lookup(_ context.Context, id string) (orderbuilder.Product, error) {
	p, ok := f.lookups[id]
	if !ok {
		return orderbuilder.Product{}, fmt.Errorf("product %s: %w", id, repository.ErrNotFound)
	}
	return p, nil
}

type fakeVariants struct {
	matrices map[string]variants.Matrix
	saves    int
	saveErr  error
}

func (f *fakeVariants) GetMatrix(_ context.Context, productID string) (variants.Matrix, error) {
	return f.matrices[productID], nil
}

func (f *fakeVariants) SaveMatrix(_ context.Context, productID string, m variants.Matrix) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.matrices[productID] = m
	return nil
}

type fakeOrders struct {
	created []orderbuilder.SubmissionPayload
	err     error

	// entered and release, when set, hold Create open until the test lets it finish
	entered chan struct{}
	release chan struct{}
}

func (f *fakeOrders) Create(_ context.Context, p orderbuilder.SubmissionPayload) (*models.Order, error) {
	if f.entered != nil {
		close(f.entered)
		<-f.release
	}
	f.created = append(f.created, p)
	if f.err != nil {
		return nil, f.err
	}
	return &models.Order{
		ID:            fmt.Sprintf("order-%d", len(f.created)),
		DraftID:       p.DraftID,
		Status:        models.OrderStatusPending,
		Recipient:     p.Recipient,
		Subtotal:      p.Subtotal,
		Total:         p.Total,
		TotalQuantity: p.TotalQuantity,
		CreatedAt:     time.Now(),
	}, nil
}

func (f *fakeOrders) GetByID(context.Context, string) (*models.Order, error) {
	return nil, repository.ErrNotFound
}

func (f *fakeOrders) List(context.Context, string) ([]models.OrderListItem, error) {
	return nil, nil
}

type fakeDrive struct {
	data  []byte
	calls int
}

func (f *fakeDrive) DownloadImage(context.Context, string) ([]byte, error) {
	f.calls++
	if f.data == nil {
		return nil, errors.New("drive down")
	}
	return f.data, nil
}
