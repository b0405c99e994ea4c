// Package memory provides in-process repositories used by tests and by the
// memory storage driver, seeded from the catalog fixtures.
package memory

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/inkhouse/storefront/internal/domain"
	"github.com/inkhouse/storefront/internal/repository"
	"github.com/inkhouse/storefront/pkg/errors"
)

// NewRepositories creates memory repositories seeded with products
func NewRepositories(products []*domain.Product) *repository.Repositories {
	return &repository.Repositories{
		Product: NewProductRepository(products),
		Order:   NewOrderRepository(),
		User:    NewUserRepository(),
	}
}

type productRepository struct {
	mu       sync.RWMutex
	products map[int64]domain.Product
	nextID   int64
}

func NewProductRepository(seed []*domain.Product) *productRepository {
	r := &productRepository{products: make(map[int64]domain.Product)}
	for _, p := range seed {
		r.products[p.ID] = *p
		if p.ID > r.nextID {
			r.nextID = p.ID
		}
	}
	return r
}

func (r *productRepository) sorted(keep func(domain.Product) bool) []*domain.Product {
	out := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		if keep(p) {
			p := p
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *productRepository) List(ctx context.Context) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sorted(func(domain.Product) bool { return true }), nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "product", ID: strconv.FormatInt(id, 10)}
	}
	return &p, nil
}

func (r *productRepository) SearchByTitle(ctx context.Context, title string) ([]*domain.Product, error) {
	needle := strings.ToLower(title)
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sorted(func(p domain.Product) bool {
		return strings.Contains(strings.ToLower(p.Title), needle)
	}), nil
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	r.nextID++
	product.ID = r.nextID
	product.CreatedAt = now
	product.UpdatedAt = now
	r.products[product.ID] = *product
	return nil
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.products[product.ID]
	if !ok {
		return &errors.ErrNotFound{Resource: "product", ID: strconv.FormatInt(product.ID, 10)}
	}
	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = time.Now().UTC()
	r.products[product.ID] = *product
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return &errors.ErrNotFound{Resource: "product", ID: strconv.FormatInt(id, 10)}
	}
	delete(r.products, id)
	return nil
}

type orderRepository struct {
	mu     sync.RWMutex
	orders map[int64]domain.Order
	nextID int64
}

// NewOrderRepository numbers orders from 1001
func NewOrderRepository() *orderRepository {
	return &orderRepository{
		orders: make(map[int64]domain.Order),
		nextID: 1000,
	}
}

func copyOrder(o domain.Order) *domain.Order {
	o.Items = append([]domain.OrderItem(nil), o.Items...)
	return &o
}

func (r *orderRepository) filter(keep func(domain.Order) bool) []*domain.Order {
	out := []*domain.Order{}
	for _, o := range r.orders {
		if keep(o) {
			out = append(out, copyOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *orderRepository) List(ctx context.Context) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filter(func(domain.Order) bool { return true }), nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "order", ID: strconv.FormatInt(id, 10)}
	}
	return copyOrder(o), nil
}

func (r *orderRepository) ListByUserID(ctx context.Context, userID int64) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filter(func(o domain.Order) bool { return o.UserID == userID }), nil
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	r.nextID++
	order.ID = r.nextID
	if order.Reference == uuid.Nil {
		order.Reference = uuid.New()
	}
	if order.PlacedAt.IsZero() {
		order.PlacedAt = now
	}
	order.CreatedAt = now
	order.UpdatedAt = now
	for i := range order.Items {
		order.Items[i].ID = int64(i + 1)
		order.Items[i].OrderID = order.ID
	}
	r.orders[order.ID] = *copyOrder(*order)
	return nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok {
		return &errors.ErrNotFound{Resource: "order", ID: strconv.FormatInt(id, 10)}
	}
	o.Status = status
	o.UpdatedAt = time.Now().UTC()
	r.orders[id] = o
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id]; !ok {
		return &errors.ErrNotFound{Resource: "order", ID: strconv.FormatInt(id, 10)}
	}
	delete(r.orders, id)
	return nil
}

type userRepository struct {
	mu     sync.RWMutex
	users  map[int64]domain.User
	nextID int64
}

func NewUserRepository() *userRepository {
	return &userRepository{users: make(map[int64]domain.User)}
}

func (r *userRepository) List(ctx context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		u := u
		out = append(out, &u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "user", ID: strconv.FormatInt(id, 10)}
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			u := u
			return &u, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "user", ID: email}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return &errors.ErrValidation{Field: "email", Message: "email already registered"}
		}
	}

	now := time.Now().UTC()
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = *user
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.users[user.ID]
	if !ok {
		return &errors.ErrNotFound{Resource: "user", ID: strconv.FormatInt(user.ID, 10)}
	}
	user.CreatedAt = existing.CreatedAt
	user.UpdatedAt = time.Now().UTC()
	r.users[user.ID] = *user
	return nil
}
