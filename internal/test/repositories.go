package test

import (
	"context"
	"time"

	domainErrors "github.com/minhvn/solemart/internal/domain/errors"
	"github.com/minhvn/solemart/internal/domain/model"
	"github.com/minhvn/solemart/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, login, passwordHash string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Login: login, PasswordHash: passwordHash}
	s.Next++
	s.Users[login] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByLogin fetches user by login or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// OrderStatusCall stores information about UpdateOrderStatus invocations.
type OrderStatusCall struct {
	OrderID int64
	Status  model.OrderStatus
	Note    string
	At      time.Time
}

// PaymentStatusCall stores information about UpdatePaymentStatus invocations.
type PaymentStatusCall struct {
	OrderID int64
	Status  model.PaymentStatus
	Note    string
	At      time.Time
}

// ShippingCall stores information about UpdateShipping invocations.
type ShippingCall struct {
	OrderID  int64
	Tracking string
	Address  *model.Address
	At       time.Time
}

// OrderRepositoryStub allows tests to customize behaviour.
type OrderRepositoryStub struct {
	CreateFn              func(context.Context, *model.OrderDraft) (*model.Order, error)
	GetByIDFn             func(context.Context, int64) (*model.Order, error)
	ListByUserFn          func(context.Context, int64, repository.OrderFilter) ([]model.Order, error)
	ListFn                func(context.Context, repository.OrderFilter) ([]model.Order, error)
	UpdateOrderStatusFn   func(context.Context, int64, model.OrderStatus, string, time.Time) error
	UpdatePaymentStatusFn func(context.Context, int64, model.PaymentStatus, string, time.Time) error
	UpdateShippingFn      func(context.Context, int64, string, *model.Address, time.Time) error

	Created       []model.OrderDraft
	Orders        []model.Order
	NextID        int64
	StatusCalls   []OrderStatusCall
	PaymentCalls  []PaymentStatusCall
	ShippingCalls []ShippingCall
}

// Create tracks drafts and returns a persisted order built from the draft.
func (s *OrderRepositoryStub) Create(ctx context.Context, draft *model.OrderDraft) (*model.Order, error) {
	s.Created = append(s.Created, *draft)
	if s.CreateFn != nil {
		return s.CreateFn(ctx, draft)
	}
	if s.NextID == 0 {
		s.NextID = 1
	}
	order := &model.Order{
		ID:              s.NextID,
		UserID:          draft.UserID,
		Items:           draft.Items,
		TotalAmount:     draft.TotalAmount,
		ShippingCost:    draft.ShippingCost,
		DiscountAmount:  draft.DiscountAmount,
		FinalAmount:     draft.FinalAmount,
		ShippingAddress: draft.ShippingAddress,
		ShippingMethod:  draft.ShippingMethod,
		PaymentMethod:   draft.PaymentMethod,
		DiscountCode:    draft.DiscountCode,
		CustomerNotes:   draft.CustomerNotes,
		OrderStatus:     model.OrderStatusProcessing,
		PaymentStatus:   draft.PaymentStatus,
		StatusHistory:   draft.StatusHistory,
		TransactionRef:  draft.TransactionRef,
		GatewayTxnNo:    draft.GatewayTxnNo,
		BankCode:        draft.BankCode,
		OrderedAt:       draft.OrderedAt,
		UpdatedAt:       draft.UpdatedAt,
	}
	s.NextID++
	return order, nil
}

// GetByID returns matched order either via override or stored slice.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	for _, o := range s.Orders {
		if o.ID == id {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser returns orders from configured slice filtered by owner.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64, filter repository.OrderFilter) ([]model.Order, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID, filter)
	}
	var out []model.Order
	for _, o := range s.Orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

// List returns every configured order.
func (s *OrderRepositoryStub) List(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, filter)
	}
	return s.Orders, nil
}

// UpdateOrderStatus records status transitions.
func (s *OrderRepositoryStub) UpdateOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus, note string, at time.Time) error {
	if s.UpdateOrderStatusFn != nil {
		return s.UpdateOrderStatusFn(ctx, orderID, status, note, at)
	}
	s.StatusCalls = append(s.StatusCalls, OrderStatusCall{OrderID: orderID, Status: status, Note: note, At: at})
	return nil
}

// UpdatePaymentStatus records payment transitions.
func (s *OrderRepositoryStub) UpdatePaymentStatus(ctx context.Context, orderID int64, status model.PaymentStatus, note string, at time.Time) error {
	if s.UpdatePaymentStatusFn != nil {
		return s.UpdatePaymentStatusFn(ctx, orderID, status, note, at)
	}
	s.PaymentCalls = append(s.PaymentCalls, PaymentStatusCall{OrderID: orderID, Status: status, Note: note, At: at})
	return nil
}

// UpdateShipping records shipping updates.
func (s *OrderRepositoryStub) UpdateShipping(ctx context.Context, orderID int64, tracking string, address *model.Address, at time.Time) error {
	if s.UpdateShippingFn != nil {
		return s.UpdateShippingFn(ctx, orderID, tracking, address, at)
	}
	s.ShippingCalls = append(s.ShippingCalls, ShippingCall{OrderID: orderID, Tracking: tracking, Address: address, At: at})
	return nil
}

// PendingOrderRepositoryStub keeps pending drafts in-memory.
type PendingOrderRepositoryStub struct {
	SaveFn          func(context.Context, *model.PendingOrder) error
	GetFn           func(context.Context, string) (*model.PendingOrder, error)
	DeleteFn        func(context.Context, string) error
	SelectExpiredFn func(context.Context, time.Time, int) ([]model.PendingOrder, error)

	Pending map[string]*model.PendingOrder
	Deleted []string
}

// NewPendingOrderRepositoryStub constructs stub with an initialized map.
func NewPendingOrderRepositoryStub() *PendingOrderRepositoryStub {
	return &PendingOrderRepositoryStub{Pending: make(map[string]*model.PendingOrder)}
}

// Save stores the pending order keyed by transaction ref.
func (s *PendingOrderRepositoryStub) Save(ctx context.Context, pending *model.PendingOrder) error {
	if s.SaveFn != nil {
		return s.SaveFn(ctx, pending)
	}
	if s.Pending == nil {
		s.Pending = make(map[string]*model.PendingOrder)
	}
	s.Pending[pending.TransactionRef] = pending
	return nil
}

// Get fetches the pending order or returns not found.
func (s *PendingOrderRepositoryStub) Get(ctx context.Context, transactionRef string) (*model.PendingOrder, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, transactionRef)
	}
	if p, ok := s.Pending[transactionRef]; ok {
		return p, nil
	}
	return nil, domainErrors.ErrNotFound
}

// Delete removes the pending order and records the call.
func (s *PendingOrderRepositoryStub) Delete(ctx context.Context, transactionRef string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, transactionRef)
	}
	delete(s.Pending, transactionRef)
	s.Deleted = append(s.Deleted, transactionRef)
	return nil
}

// SelectExpired returns stored pendings created before the cutoff.
func (s *PendingOrderRepositoryStub) SelectExpired(ctx context.Context, cutoff time.Time, limit int) ([]model.PendingOrder, error) {
	if s.SelectExpiredFn != nil {
		return s.SelectExpiredFn(ctx, cutoff, limit)
	}
	var out []model.PendingOrder
	for _, p := range s.Pending {
		if p.CreatedAt.Before(cutoff) {
			out = append(out, *p)
		}
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// SettlementRepositoryStub keeps idempotency records in-memory.
type SettlementRepositoryStub struct {
	ClaimFn               func(context.Context, *model.Settlement) (bool, *model.Settlement, error)
	GetFn                 func(context.Context, string) (*model.Settlement, error)
	AttachOrderFn         func(context.Context, string, int64) error
	MarkReconcileFailedFn func(context.Context, string) error

	Settlements     map[string]*model.Settlement
	Attached        map[string]int64
	ReconcileFailed []string
}

// NewSettlementRepositoryStub constructs stub with initialized maps.
func NewSettlementRepositoryStub() *SettlementRepositoryStub {
	return &SettlementRepositoryStub{
		Settlements: make(map[string]*model.Settlement),
		Attached:    make(map[string]int64),
	}
}

// Claim stores the settlement unless its ref was already claimed.
func (s *SettlementRepositoryStub) Claim(ctx context.Context, settlement *model.Settlement) (bool, *model.Settlement, error) {
	if s.ClaimFn != nil {
		return s.ClaimFn(ctx, settlement)
	}
	if s.Settlements == nil {
		s.Settlements = make(map[string]*model.Settlement)
	}
	if existing, ok := s.Settlements[settlement.TransactionRef]; ok {
		return false, existing, nil
	}
	stored := *settlement
	s.Settlements[settlement.TransactionRef] = &stored
	return true, nil, nil
}

// Get fetches the stored settlement or returns not found.
func (s *SettlementRepositoryStub) Get(ctx context.Context, transactionRef string) (*model.Settlement, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, transactionRef)
	}
	if st, ok := s.Settlements[transactionRef]; ok {
		return st, nil
	}
	return nil, domainErrors.ErrNotFound
}

// AttachOrder links an order to the stored settlement.
func (s *SettlementRepositoryStub) AttachOrder(ctx context.Context, transactionRef string, orderID int64) error {
	if s.AttachOrderFn != nil {
		return s.AttachOrderFn(ctx, transactionRef, orderID)
	}
	if s.Attached == nil {
		s.Attached = make(map[string]int64)
	}
	s.Attached[transactionRef] = orderID
	if st, ok := s.Settlements[transactionRef]; ok {
		id := orderID
		st.OrderID = &id
	}
	return nil
}

// MarkReconcileFailed flags the stored settlement.
func (s *SettlementRepositoryStub) MarkReconcileFailed(ctx context.Context, transactionRef string) error {
	if s.MarkReconcileFailedFn != nil {
		return s.MarkReconcileFailedFn(ctx, transactionRef)
	}
	s.ReconcileFailed = append(s.ReconcileFailed, transactionRef)
	if st, ok := s.Settlements[transactionRef]; ok {
		st.Outcome = model.SettlementReconcileFailed
	}
	return nil
}

// DiscountRepositoryStub resolves codes from a fixed map.
type DiscountRepositoryStub struct {
	GetByCodeFn func(context.Context, string) (*model.Discount, error)
	Discounts   map[string]*model.Discount
}

// GetByCode returns the configured discount or not found.
func (s *DiscountRepositoryStub) GetByCode(ctx context.Context, code string) (*model.Discount, error) {
	if s.GetByCodeFn != nil {
		return s.GetByCodeFn(ctx, code)
	}
	if d, ok := s.Discounts[code]; ok {
		return d, nil
	}
	return nil, domainErrors.ErrNotFound
}

var (
	_ repository.UserRepository         = (*UserRepositoryStub)(nil)
	_ repository.OrderRepository        = (*OrderRepositoryStub)(nil)
	_ repository.PendingOrderRepository = (*PendingOrderRepositoryStub)(nil)
	_ repository.SettlementRepository   = (*SettlementRepositoryStub)(nil)
	_ repository.DiscountRepository     = (*DiscountRepositoryStub)(nil)
)
