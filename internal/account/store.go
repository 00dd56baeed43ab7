// internal/account/store.go

// Package account is the customer account state container: registration,
// login against locally stored accounts, profile edits, and per-customer
// order history, all persisted through the kv port. Like the cart, stored
// account state is convenience data: any parse failure during rehydration
// yields an unauthenticated empty state rather than an error.
package account

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/newerastudio/storefront/internal/kv"
	"github.com/newerastudio/storefront/internal/models"
	"github.com/newerastudio/storefront/internal/utils"
)

var (
	ErrDuplicateEmail     = errors.New("account: an account with this email already exists")
	ErrAccountNotFound    = errors.New("account: no account found with that email")
	ErrInvalidCredentials = errors.New("account: incorrect password")
	ErrNoSession          = errors.New("account: no active session")
)

const (
	accountsKey = "new-era-studio-accounts"
	sessionKey  = "new-era-studio-session"
	ordersKey   = "new-era-studio-orders-"
)

type sessionPointer struct {
	CustomerID string `json:"customerId"`
}

type RegisterInput struct {
	Email              string `validate:"required,email"`
	Password           string `validate:"required,min=6"`
	FirstName          string `validate:"required"`
	LastName           string `validate:"required"`
	SubscribedToOffers bool
}

// ProfileUpdate merges non-nil fields into the active customer.
type ProfileUpdate struct {
	FirstName          *string
	LastName           *string
	SubscribedToOffers *bool
}

type Store struct {
	mtx        sync.Mutex
	kv         kv.Store
	hasher     Hasher
	sessionKey string
	customer   *models.Customer
	orders     []models.Order
}

// Option configures a Store.
type Option func(*Store)

// WithHasher swaps the password digest implementation.
func WithHasher(h Hasher) Option {
	return func(s *Store) { s.hasher = h }
}

// WithSessionKey namespaces the active-session pointer, e.g. per visitor.
// The account registry and order history stay shared.
func WithSessionKey(key string) Option {
	return func(s *Store) { s.sessionKey = key }
}

func NewStore(store kv.Store, opts ...Option) *Store {
	s := &Store{kv: store, hasher: LegacyDigest{}, sessionKey: sessionKey}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load rehydrates the session chain: active-session pointer, then the
// matching account, then that account's orders. Any failure along the
// chain leaves the store unauthenticated and empty.
func (s *Store) Load(ctx context.Context) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.customer = nil
	s.orders = nil

	data, err := s.kv.Get(ctx, s.sessionKey)
	if err != nil {
		return
	}
	var pointer sessionPointer
	if err := json.Unmarshal(data, &pointer); err != nil || pointer.CustomerID == "" {
		return
	}

	accounts := s.loadAccounts(ctx)
	acct, ok := accounts[pointer.CustomerID]
	if !ok {
		return
	}

	customer := acct.Customer
	s.customer = &customer
	s.orders = s.loadOrders(ctx, customer.ID)
}

// Register creates a new customer and activates their session. Email
// uniqueness is case-insensitive.
func (s *Store) Register(ctx context.Context, in RegisterInput) (*models.Customer, error) {
	if err := utils.ValidateStruct(&in); err != nil {
		return nil, err
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	accounts := s.loadAccounts(ctx)
	for _, acct := range accounts {
		if strings.EqualFold(acct.Customer.Email, in.Email) {
			return nil, ErrDuplicateEmail
		}
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	customer := models.Customer{
		ID:                 utils.NewCustomerID(),
		Email:              in.Email,
		FirstName:          in.FirstName,
		LastName:           in.LastName,
		CreatedAt:          time.Now().UTC(),
		SubscribedToOffers: in.SubscribedToOffers,
	}

	accounts[customer.ID] = models.StoredAccount{Customer: customer, PasswordHash: hash}
	s.saveAccounts(ctx, accounts)
	s.saveSession(ctx, customer.ID)

	s.customer = &customer
	s.orders = nil
	return &customer, nil
}

// Login activates the session for a stored account. Email lookup is
// case-insensitive; order history is loaded with the session.
func (s *Store) Login(ctx context.Context, email, password string) (*models.Customer, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	accounts := s.loadAccounts(ctx)

	var match *models.StoredAccount
	for id := range accounts {
		acct := accounts[id]
		if strings.EqualFold(acct.Customer.Email, email) {
			match = &acct
			break
		}
	}
	if match == nil {
		return nil, ErrAccountNotFound
	}

	if err := s.hasher.Compare(match.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	customer := match.Customer
	s.customer = &customer
	s.orders = s.loadOrders(ctx, customer.ID)
	s.saveSession(ctx, customer.ID)
	return &customer, nil
}

// Logout clears the active-session pointer only; stored accounts and
// order history stay intact.
func (s *Store) Logout(ctx context.Context) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.customer = nil
	s.orders = nil
	if err := s.kv.Delete(ctx, s.sessionKey); err != nil {
		logrus.WithError(err).Warn("failed to clear session pointer")
	}
}

// UpdateProfile merges the supplied fields into the active customer and
// persists the account record.
func (s *Store) UpdateProfile(ctx context.Context, update ProfileUpdate) (*models.Customer, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.customer == nil {
		return nil, ErrNoSession
	}

	if update.FirstName != nil {
		s.customer.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		s.customer.LastName = *update.LastName
	}
	if update.SubscribedToOffers != nil {
		s.customer.SubscribedToOffers = *update.SubscribedToOffers
	}

	accounts := s.loadAccounts(ctx)
	if acct, ok := accounts[s.customer.ID]; ok {
		acct.Customer = *s.customer
		accounts[s.customer.ID] = acct
		s.saveAccounts(ctx, accounts)
	}

	customer := *s.customer
	return &customer, nil
}

// AddOrder generates an order id, prepends the order to the in-memory
// history (most recent first), and persists it keyed by customer id.
func (s *Store) AddOrder(ctx context.Context, order models.Order) (*models.Order, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.customer == nil {
		return nil, ErrNoSession
	}

	order.ID = utils.NewOrderID()
	s.orders = append([]models.Order{order}, s.orders...)
	s.saveOrders(ctx, s.customer.ID)
	return &order, nil
}

// Customer returns a copy of the active customer, or nil.
func (s *Store) Customer() *models.Customer {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.customer == nil {
		return nil
	}
	customer := *s.customer
	return &customer
}

// Orders returns the active customer's order history, most recent first.
func (s *Store) Orders() []models.Order {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return append([]models.Order(nil), s.orders...)
}

func (s *Store) IsAuthenticated() bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.customer != nil
}

// loadAccounts reads the account map, treating missing or corrupt data as
// empty. Callers must hold mtx.
func (s *Store) loadAccounts(ctx context.Context) map[string]models.StoredAccount {
	accounts := make(map[string]models.StoredAccount)
	data, err := s.kv.Get(ctx, accountsKey)
	if err != nil {
		return accounts
	}
	if err := json.Unmarshal(data, &accounts); err != nil {
		return make(map[string]models.StoredAccount)
	}
	return accounts
}

func (s *Store) saveAccounts(ctx context.Context, accounts map[string]models.StoredAccount) {
	data, err := json.Marshal(accounts)
	if err == nil {
		err = s.kv.Set(ctx, accountsKey, data)
	}
	if err != nil {
		logrus.WithError(err).Warn("failed to persist accounts")
	}
}

func (s *Store) saveSession(ctx context.Context, customerID string) {
	data, err := json.Marshal(sessionPointer{CustomerID: customerID})
	if err == nil {
		err = s.kv.Set(ctx, s.sessionKey, data)
	}
	if err != nil {
		logrus.WithError(err).Warn("failed to persist session pointer")
	}
}

func (s *Store) loadOrders(ctx context.Context, customerID string) []models.Order {
	data, err := s.kv.Get(ctx, ordersKey+customerID)
	if err != nil {
		return nil
	}
	var orders []models.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil
	}
	return orders
}

func (s *Store) saveOrders(ctx context.Context, customerID string) {
	data, err := json.Marshal(s.orders)
	if err == nil {
		err = s.kv.Set(ctx, ordersKey+customerID, data)
	}
	if err != nil {
		logrus.WithError(err).Warn("failed to persist order history")
	}
}
