package service

import (
	"context"
	"errors"
	"sync"

	"github.com/digistore/digistore/internal/mail"
	"github.com/digistore/digistore/internal/model"
	"github.com/digistore/digistore/internal/repository"
)

// In-memory fakes for the storage and mail collaborators.

type fakeUserStore struct {
	mu      sync.Mutex
	byEmail map[string]*model.User
	failAll error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: make(map[string]*model.User)}
}

func (f *fakeUserStore) CreateUser(_ context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return f.failAll
	}
	if _, ok := f.byEmail[user.Email]; ok {
		return repository.ErrEmailExists
	}
	cp := *user
	f.byEmail[user.Email] = &cp
	return nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	user, ok := f.byEmail[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

type fakeProductStore struct {
	mu      sync.Mutex
	byID    map[string]*model.Product
	listErr error
}

func newFakeProductStore(products ...*model.Product) *fakeProductStore {
	f := &fakeProductStore{byID: make(map[string]*model.Product)}
	for _, p := range products {
		f.byID[p.ID] = p
	}
	return f
}

func (f *fakeProductStore) CreateProduct(_ context.Context, product *model.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[product.ID] = product
	return nil
}

func (f *fakeProductStore) GetProductByID(_ context.Context, id string) (*model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	product, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return product, nil
}

func (f *fakeProductStore) ListProducts(_ context.Context) ([]*model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	products := make([]*model.Product, 0, len(f.byID))
	for _, p := range f.byID {
		products = append(products, p)
	}
	return products, nil
}

func (f *fakeProductStore) UpdateProduct(_ context.Context, product *model.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[product.ID]; !ok {
		return repository.ErrProductNotFound
	}
	f.byID[product.ID] = product
	return nil
}

func (f *fakeProductStore) DeleteProduct(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeOrderStore struct {
	mu        sync.Mutex
	orders    []*model.Order
	createErr error
}

func (f *fakeOrderStore) CreateOrder(_ context.Context, order *model.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	cp := *order
	f.orders = append(f.orders, &cp)
	return nil
}

func (f *fakeOrderStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.orders)
}

type fakeMailer struct {
	mu         sync.Mutex
	configured bool
	sendErr    error
	sent       []*mail.Message
}

func (f *fakeMailer) Configured() bool {
	return f.configured
}

func (f *fakeMailer) Send(_ context.Context, msg *mail.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.configured {
		return mail.ErrNotConfigured
	}
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, msg)
	return nil
}

var errStorageDown = errors.New("storage connection refused")
