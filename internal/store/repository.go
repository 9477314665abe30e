package store

import (
	"context"
	"fmt"
	"sync"

	"storefront/internal/models"
)

// Store is the typed view over a KeyValueStore. Users, products and the id
// sequence live in the global scope; cart, session marker and pending edit
// live in the client's scope.
//
// Every Update* call holds a per-(scope, key) lock for the whole
// read-modify-write, so concurrent requests against one process cannot lose
// writes.
type Store struct {
	kv    KeyValueStore
	locks sync.Map
}

func New(kv KeyValueStore) *Store {
	return &Store{kv: kv}
}

func (s *Store) KV() KeyValueStore {
	return s.kv
}

func (s *Store) Close() error {
	return s.kv.Close()
}

func (s *Store) lock(scope, key string) func() {
	mu, _ := s.locks.LoadOrStore(scope+"\x00"+key, &sync.Mutex{})
	m := mu.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}

// Users

func (s *Store) Users(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if _, err := getAs(ctx, s.kv, ScopeGlobal, KeyUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) HasUsers(ctx context.Context) (bool, error) {
	raw, err := s.kv.Get(ctx, ScopeGlobal, KeyUsers)
	return raw != nil, err
}

func (s *Store) SaveUsers(ctx context.Context, users []models.User) error {
	return setAny(ctx, s.kv, ScopeGlobal, KeyUsers, nonNil(users))
}

// UpdateUsers runs fn on the current user list and persists the result unless
// fn returns an error.
func (s *Store) UpdateUsers(ctx context.Context, fn func([]models.User) ([]models.User, error)) error {
	defer s.lock(ScopeGlobal, KeyUsers)()

	users, err := s.Users(ctx)
	if err != nil {
		return err
	}
	users, err = fn(users)
	if err != nil {
		return err
	}
	return s.SaveUsers(ctx, users)
}

// InitUsers writes the list built by build when the users key is absent. The
// check and the write hold the users lock, so concurrent UpdateUsers calls are
// never overwritten. It reports whether it wrote.
func (s *Store) InitUsers(ctx context.Context, build func() ([]models.User, error)) (bool, error) {
	defer s.lock(ScopeGlobal, KeyUsers)()

	return initKey(ctx, s.kv, KeyUsers, func() (any, error) {
		users, err := build()
		return nonNil(users), err
	})
}

// Products

func (s *Store) Products(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if _, err := getAs(ctx, s.kv, ScopeGlobal, KeyProducts, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Store) HasProducts(ctx context.Context) (bool, error) {
	raw, err := s.kv.Get(ctx, ScopeGlobal, KeyProducts)
	return raw != nil, err
}

func (s *Store) SaveProducts(ctx context.Context, products []models.Product) error {
	return setAny(ctx, s.kv, ScopeGlobal, KeyProducts, nonNil(products))
}

func (s *Store) UpdateProducts(ctx context.Context, fn func([]models.Product) ([]models.Product, error)) error {
	defer s.lock(ScopeGlobal, KeyProducts)()

	products, err := s.Products(ctx)
	if err != nil {
		return err
	}
	products, err = fn(products)
	if err != nil {
		return err
	}
	return s.SaveProducts(ctx, products)
}

// InitProducts is InitUsers for the catalog.
func (s *Store) InitProducts(ctx context.Context, build func() ([]models.Product, error)) (bool, error) {
	defer s.lock(ScopeGlobal, KeyProducts)()

	return initKey(ctx, s.kv, KeyProducts, func() (any, error) {
		products, err := build()
		return nonNil(products), err
	})
}

func initKey(ctx context.Context, kv KeyValueStore, key string, build func() (any, error)) (bool, error) {
	raw, err := kv.Get(ctx, ScopeGlobal, key)
	if err != nil {
		return false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	if raw != nil {
		return false, nil
	}
	v, err := build()
	if err != nil {
		return false, err
	}
	if err = setAny(ctx, kv, ScopeGlobal, key, v); err != nil {
		return false, err
	}
	return true, nil
}

// Sequence

// NextID hands out the next record id. Ids are never reused.
func (s *Store) NextID(ctx context.Context) (int, error) {
	defer s.lock(ScopeGlobal, KeySequence)()

	var seq int
	if _, err := getAs(ctx, s.kv, ScopeGlobal, KeySequence, &seq); err != nil {
		return 0, err
	}
	seq++
	if err := setAny(ctx, s.kv, ScopeGlobal, KeySequence, seq); err != nil {
		return 0, err
	}
	return seq, nil
}

// EnsureSequenceAtLeast moves the sequence forward so NextID never returns an
// id at or below floor.
func (s *Store) EnsureSequenceAtLeast(ctx context.Context, floor int) error {
	defer s.lock(ScopeGlobal, KeySequence)()

	var seq int
	if _, err := getAs(ctx, s.kv, ScopeGlobal, KeySequence, &seq); err != nil {
		return err
	}
	if seq >= floor {
		return nil
	}
	return setAny(ctx, s.kv, ScopeGlobal, KeySequence, floor)
}

// Cart

func (s *Store) Cart(ctx context.Context, scope string) ([]models.CartItem, error) {
	var cart []models.CartItem
	if _, err := getAs(ctx, s.kv, scope, KeyCart, &cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *Store) SaveCart(ctx context.Context, scope string, cart []models.CartItem) error {
	return setAny(ctx, s.kv, scope, KeyCart, nonNil(cart))
}

func (s *Store) DeleteCart(ctx context.Context, scope string) error {
	defer s.lock(scope, KeyCart)()

	if err := s.kv.Delete(ctx, scope, KeyCart); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

func (s *Store) UpdateCart(ctx context.Context, scope string, fn func([]models.CartItem) ([]models.CartItem, error)) error {
	defer s.lock(scope, KeyCart)()

	cart, err := s.Cart(ctx, scope)
	if err != nil {
		return err
	}
	cart, err = fn(cart)
	if err != nil {
		return err
	}
	return s.SaveCart(ctx, scope, cart)
}

// Session marker

// Session returns the logged-in email, or "" when the scope is anonymous.
func (s *Store) Session(ctx context.Context, scope string) (string, error) {
	var email string
	if _, err := getAs(ctx, s.kv, scope, KeyLoggedInUser, &email); err != nil {
		return "", err
	}
	return email, nil
}

func (s *Store) SetSession(ctx context.Context, scope, email string) error {
	return setAny(ctx, s.kv, scope, KeyLoggedInUser, email)
}

func (s *Store) ClearSession(ctx context.Context, scope string) error {
	if err := s.kv.Delete(ctx, scope, KeyLoggedInUser); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Pending product edit

// EditingProduct returns the product id stashed by an edit click, or 0.
func (s *Store) EditingProduct(ctx context.Context, scope string) (int, error) {
	var id int
	if _, err := getAs(ctx, s.kv, scope, KeyEditingProductID, &id); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Store) SetEditingProduct(ctx context.Context, scope string, id int) error {
	return setAny(ctx, s.kv, scope, KeyEditingProductID, id)
}

func (s *Store) ClearEditingProduct(ctx context.Context, scope string) error {
	if err := s.kv.Delete(ctx, scope, KeyEditingProductID); err != nil {
		return fmt.Errorf("failed to clear pending edit: %w", err)
	}
	return nil
}

// Reset removes the shared collections and the sequence.
func (s *Store) Reset(ctx context.Context) error {
	for _, key := range []string{KeyUsers, KeyProducts, KeySequence} {
		if err := s.kv.Delete(ctx, ScopeGlobal, key); err != nil {
			return fmt.Errorf("failed to reset %q: %w", key, err)
		}
	}
	return nil
}

// nonNil makes empty lists persist as [] instead of null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
