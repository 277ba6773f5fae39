package test

import (
	"context"
	"sort"
	"time"

	domainErrors "github.com/polkiloo/gophershop/internal/domain/errors"
	"github.com/polkiloo/gophershop/internal/domain/model"
	"github.com/polkiloo/gophershop/internal/domain/repository"
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
func (s *UserRepositoryStub) Create(ctx context.Context, name, email, passwordHash string, role model.Role) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Name: name, Email: email, PasswordHash: passwordHash, Role: role}
	s.Next++
	s.Users[email] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[email]; ok {
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

// List returns users ordered by identifier.
func (s *UserRepositoryStub) List(ctx context.Context) ([]model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	users := make([]model.User, 0, len(s.ByID))
	for _, u := range s.ByID {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// UpdateRole changes stored role.
func (s *UserRepositoryStub) UpdateRole(ctx context.Context, id int64, role model.Role) error {
	if s.Err != nil {
		return s.Err
	}
	user, ok := s.ByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	user.Role = role
	return nil
}

// CategoryRepositoryStub allows tests to customize behaviour.
type CategoryRepositoryStub struct {
	ListFn    func(context.Context) ([]model.Category, error)
	GetByIDFn func(context.Context, int64) (*model.Category, error)
	CreateFn  func(context.Context, string, string) (*model.Category, error)
	UpdateFn  func(context.Context, int64, string, string) (*model.Category, error)
	DeleteFn  func(context.Context, int64) error
}

func (s *CategoryRepositoryStub) List(ctx context.Context) ([]model.Category, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return nil, nil
}

func (s *CategoryRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	return &model.Category{ID: id}, nil
}

func (s *CategoryRepositoryStub) Create(ctx context.Context, name, slug string) (*model.Category, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, name, slug)
	}
	return &model.Category{ID: 1, Name: name, Slug: slug}, nil
}

func (s *CategoryRepositoryStub) Update(ctx context.Context, id int64, name, slug string) (*model.Category, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, name, slug)
	}
	return &model.Category{ID: id, Name: name, Slug: slug}, nil
}

func (s *CategoryRepositoryStub) Delete(ctx context.Context, id int64) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

// ProductRepositoryStub keeps products in a map unless overridden.
type ProductRepositoryStub struct {
	Products map[int64]*model.Product

	SearchFn        func(context.Context, model.ProductFilter) ([]model.Product, int, error)
	GetBySlugFn     func(context.Context, string) (*model.Product, error)
	CreateFn        func(context.Context, model.Product) (*model.Product, error)
	UpdateFn        func(context.Context, model.Product) (*model.Product, error)
	DeleteFn        func(context.Context, int64) error
	CreateVariantFn func(context.Context, model.ProductVariant) (*model.ProductVariant, error)
	UpdateVariantFn func(context.Context, model.ProductVariant) (*model.ProductVariant, error)
	DeleteVariantFn func(context.Context, int64, int64) error

	LastFilter model.ProductFilter
}

func (s *ProductRepositoryStub) Search(ctx context.Context, filter model.ProductFilter) ([]model.Product, int, error) {
	s.LastFilter = filter
	if s.SearchFn != nil {
		return s.SearchFn(ctx, filter)
	}
	items := make([]model.Product, 0, len(s.Products))
	for _, p := range s.Products {
		items = append(items, *p)
	}
	return items, len(items), nil
}

func (s *ProductRepositoryStub) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	if s.GetBySlugFn != nil {
		return s.GetBySlugFn(ctx, slug)
	}
	for _, p := range s.Products {
		if p.Slug == slug {
			product := *p
			return &product, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *ProductRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	if p, ok := s.Products[id]; ok {
		product := *p
		return &product, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *ProductRepositoryStub) Create(ctx context.Context, product model.Product) (*model.Product, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, product)
	}
	product.ID = int64(len(s.Products) + 1)
	return &product, nil
}

func (s *ProductRepositoryStub) Update(ctx context.Context, product model.Product) (*model.Product, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, product)
	}
	return &product, nil
}

func (s *ProductRepositoryStub) Delete(ctx context.Context, id int64) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

func (s *ProductRepositoryStub) CreateVariant(ctx context.Context, variant model.ProductVariant) (*model.ProductVariant, error) {
	if s.CreateVariantFn != nil {
		return s.CreateVariantFn(ctx, variant)
	}
	variant.ID = 1
	return &variant, nil
}

func (s *ProductRepositoryStub) UpdateVariant(ctx context.Context, variant model.ProductVariant) (*model.ProductVariant, error) {
	if s.UpdateVariantFn != nil {
		return s.UpdateVariantFn(ctx, variant)
	}
	return &variant, nil
}

func (s *ProductRepositoryStub) DeleteVariant(ctx context.Context, productID, variantID int64) error {
	if s.DeleteVariantFn != nil {
		return s.DeleteVariantFn(ctx, productID, variantID)
	}
	return nil
}

// DiscountRepositoryStub keeps discounts in a map and records usage.
type DiscountRepositoryStub struct {
	Discounts map[int64]*model.Discount
	Used      map[int64]map[int64]bool
	Err       error

	CreateFn func(context.Context, model.Discount) (*model.Discount, error)
	UpdateFn func(context.Context, model.Discount) (*model.Discount, error)
	DeleteFn func(context.Context, int64) error
}

func (s *DiscountRepositoryStub) List(ctx context.Context) ([]model.Discount, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	items := make([]model.Discount, 0, len(s.Discounts))
	for _, d := range s.Discounts {
		items = append(items, *d)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (s *DiscountRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Discount, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if d, ok := s.Discounts[id]; ok {
		discount := *d
		return &discount, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *DiscountRepositoryStub) GetByCode(ctx context.Context, code string) (*model.Discount, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, d := range s.Discounts {
		if d.Code == code {
			discount := *d
			return &discount, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *DiscountRepositoryStub) Create(ctx context.Context, discount model.Discount) (*model.Discount, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, discount)
	}
	discount.ID = int64(len(s.Discounts) + 1)
	return &discount, nil
}

func (s *DiscountRepositoryStub) Update(ctx context.Context, discount model.Discount) (*model.Discount, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, discount)
	}
	return &discount, nil
}

func (s *DiscountRepositoryStub) Delete(ctx context.Context, id int64) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

func (s *DiscountRepositoryStub) HasUsed(ctx context.Context, discountID, userID int64) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}
	return s.Used[discountID][userID], nil
}

// CartRepositoryStub holds a single in-memory cart per user.
type CartRepositoryStub struct {
	Carts map[int64]*model.Cart
	Err   error

	AddItemFn func(context.Context, int64, int64, *int64, int64, int) error
	Added     []CartAddCall
	Updated   map[int64]int
	Removed   []int64
}

// CartAddCall stores arguments of AddItem invocations.
type CartAddCall struct {
	UserID    int64
	ProductID int64
	VariantID *int64
	Price     int64
	Quantity  int
}

func (s *CartRepositoryStub) Get(ctx context.Context, userID int64) (*model.Cart, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Carts == nil {
		s.Carts = make(map[int64]*model.Cart)
	}
	cart, ok := s.Carts[userID]
	if !ok {
		cart = &model.Cart{ID: userID, UserID: userID}
		s.Carts[userID] = cart
	}
	copied := *cart
	copied.Items = append([]model.CartItem(nil), cart.Items...)
	return &copied, nil
}

func (s *CartRepositoryStub) AddItem(ctx context.Context, userID, productID int64, variantID *int64, price int64, quantity int) error {
	s.Added = append(s.Added, CartAddCall{UserID: userID, ProductID: productID, VariantID: variantID, Price: price, Quantity: quantity})
	if s.AddItemFn != nil {
		return s.AddItemFn(ctx, userID, productID, variantID, price, quantity)
	}
	return nil
}

func (s *CartRepositoryStub) UpdateItemQuantity(ctx context.Context, userID, itemID int64, quantity int) error {
	if s.Err != nil {
		return s.Err
	}
	if s.Updated == nil {
		s.Updated = make(map[int64]int)
	}
	s.Updated[itemID] = quantity
	return nil
}

func (s *CartRepositoryStub) RemoveItem(ctx context.Context, userID, itemID int64) error {
	if s.Err != nil {
		return s.Err
	}
	s.Removed = append(s.Removed, itemID)
	return nil
}

func (s *CartRepositoryStub) SetDiscount(ctx context.Context, userID int64, discountID *int64) error {
	if s.Err != nil {
		return s.Err
	}
	if s.Carts == nil {
		s.Carts = make(map[int64]*model.Cart)
	}
	cart, ok := s.Carts[userID]
	if !ok {
		cart = &model.Cart{ID: userID, UserID: userID}
		s.Carts[userID] = cart
	}
	cart.DiscountID = discountID
	return nil
}

// OrderStatusCall stores information about UpdateStatus invocations.
type OrderStatusCall struct {
	OrderID  int64
	From     model.OrderStatus
	To       model.OrderStatus
	Tracking string
}

// OrderRepositoryStub allows tests to customize behaviour.
type OrderRepositoryStub struct {
	PlaceFn        func(context.Context, model.OrderDraft) (*model.Order, error)
	GetByNumberFn  func(context.Context, string) (*model.Order, error)
	UpdateStatusFn func(context.Context, int64, model.OrderStatus, model.OrderStatus, string) error
	CancelFn       func(context.Context, int64) error

	Orders      []model.Order
	OpenRefunds map[int64]bool
	Placed      []model.OrderDraft
	UpdateCalls []OrderStatusCall
	Canceled    []int64
	StatsVal    *model.OrderStats
	LastFilter  *model.OrderStatus
}

func (s *OrderRepositoryStub) Place(ctx context.Context, draft model.OrderDraft) (*model.Order, error) {
	s.Placed = append(s.Placed, draft)
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, draft)
	}
	order := draft.Order
	order.ID = int64(len(s.Placed))
	payment := draft.Payment
	order.Payment = &payment
	return &order, nil
}

func (s *OrderRepositoryStub) GetByNumber(ctx context.Context, number string) (*model.Order, error) {
	if s.GetByNumberFn != nil {
		return s.GetByNumberFn(ctx, number)
	}
	for _, o := range s.Orders {
		if o.Number == number {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	var out []model.Order
	for _, o := range s.Orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *OrderRepositoryStub) List(ctx context.Context, status *model.OrderStatus) ([]model.Order, error) {
	s.LastFilter = status
	if status == nil {
		return s.Orders, nil
	}
	var out []model.Order
	for _, o := range s.Orders {
		if o.Status == *status {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, orderID int64, from, to model.OrderStatus, tracking string) error {
	s.UpdateCalls = append(s.UpdateCalls, OrderStatusCall{OrderID: orderID, From: from, To: to, Tracking: tracking})
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, orderID, from, to, tracking)
	}
	if !to.Refundable() && s.OpenRefunds[orderID] {
		return domainErrors.ErrRefundInProgress
	}
	return nil
}

func (s *OrderRepositoryStub) Cancel(ctx context.Context, orderID int64) error {
	s.Canceled = append(s.Canceled, orderID)
	if s.CancelFn != nil {
		return s.CancelFn(ctx, orderID)
	}
	return nil
}

func (s *OrderRepositoryStub) Stats(ctx context.Context) (*model.OrderStats, error) {
	if s.StatsVal != nil {
		return s.StatsVal, nil
	}
	return &model.OrderStats{ByStatus: map[model.OrderStatus]int{}}, nil
}

// PaymentRepositoryStub runs settlement decisions against in-memory rows.
type PaymentRepositoryStub struct {
	Payments map[string]*model.Payment
	Orders   map[int64]*model.Order
	Stale    []model.Payment
	Err      error

	Applied     []model.PaymentSettlement
	StaleBefore time.Time
}

func (s *PaymentRepositoryStub) Settle(ctx context.Context, externalID string, decide repository.PaymentDecision) error {
	if s.Err != nil {
		return s.Err
	}
	payment, ok := s.Payments[externalID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	order, ok := s.Orders[payment.OrderID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	settlement, err := decide(*payment, *order)
	if err != nil {
		return err
	}
	payment.Status = settlement.PaymentStatus
	payment.Method = settlement.Method
	payment.Reference = settlement.Reference
	payment.PaidAt = settlement.PaidAt
	order.Status = settlement.OrderStatus
	s.Applied = append(s.Applied, *settlement)
	return nil
}

func (s *PaymentRepositoryStub) ListStale(ctx context.Context, before time.Time, limit int) ([]model.Payment, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.StaleBefore = before
	if limit < len(s.Stale) {
		return s.Stale[:limit], nil
	}
	return s.Stale, nil
}

// RefundRepositoryStub keeps refunds in a map unless overridden.
type RefundRepositoryStub struct {
	Refunds  map[int64]*model.Refund
	Payments map[int64]*model.Payment
	Orders   map[int64]*model.Order

	CreateFn func(context.Context, model.Refund) (*model.Refund, error)

	Failed  map[int64]string
	Applied []model.RefundSettlement
}

func (s *RefundRepositoryStub) ensure() {
	if s.Refunds == nil {
		s.Refunds = make(map[int64]*model.Refund)
	}
}

func (s *RefundRepositoryStub) Create(ctx context.Context, refund model.Refund) (*model.Refund, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, refund)
	}
	s.ensure()
	refund.ID = int64(len(s.Refunds) + 1)
	stored := refund
	s.Refunds[refund.ID] = &stored
	return &refund, nil
}

func (s *RefundRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Refund, error) {
	if r, ok := s.Refunds[id]; ok {
		refund := *r
		return &refund, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *RefundRepositoryStub) List(ctx context.Context, status *model.RefundStatus) ([]model.Refund, error) {
	items := make([]model.Refund, 0, len(s.Refunds))
	for _, r := range s.Refunds {
		if status == nil || r.Status == *status {
			items = append(items, *r)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (s *RefundRepositoryStub) Approve(ctx context.Context, id int64, reference, note string) (*model.Refund, error) {
	r, ok := s.Refunds[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	r.Status = model.RefundStatusApproved
	r.Reference = reference
	r.AdminNote = note
	refund := *r
	return &refund, nil
}

func (s *RefundRepositoryStub) Reject(ctx context.Context, id int64, note string) (*model.Refund, error) {
	r, ok := s.Refunds[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	r.Status = model.RefundStatusRejected
	r.AdminNote = note
	refund := *r
	return &refund, nil
}

func (s *RefundRepositoryStub) SetExternalID(ctx context.Context, id int64, externalID string) error {
	r, ok := s.Refunds[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	r.ExternalID = externalID
	return nil
}

func (s *RefundRepositoryStub) MarkFailed(ctx context.Context, id int64, code, reason string) error {
	r, ok := s.Refunds[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	r.Status = model.RefundStatusFailed
	r.FailureCode = code
	r.FailureReason = reason
	if s.Failed == nil {
		s.Failed = make(map[int64]string)
	}
	s.Failed[id] = code
	return nil
}

func (s *RefundRepositoryStub) Settle(ctx context.Context, reference string, decide repository.RefundDecision) error {
	for _, r := range s.Refunds {
		if r.Reference != reference {
			continue
		}
		var payment model.Payment
		if p, ok := s.Payments[r.PaymentID]; ok {
			payment = *p
		}
		var order model.Order
		if o, ok := s.Orders[r.OrderID]; ok {
			order = *o
		}
		settlement, err := decide(*r, payment, order)
		if err != nil {
			return err
		}
		r.Status = settlement.RefundStatus
		r.FailureCode = settlement.FailureCode
		r.FailureReason = settlement.FailureReason
		s.Applied = append(s.Applied, *settlement)
		return nil
	}
	return domainErrors.ErrNotFound
}

var (
	_ repository.UserRepository     = (*UserRepositoryStub)(nil)
	_ repository.CategoryRepository = (*CategoryRepositoryStub)(nil)
	_ repository.ProductRepository  = (*ProductRepositoryStub)(nil)
	_ repository.DiscountRepository = (*DiscountRepositoryStub)(nil)
	_ repository.CartRepository     = (*CartRepositoryStub)(nil)
	_ repository.OrderRepository    = (*OrderRepositoryStub)(nil)
	_ repository.PaymentRepository  = (*PaymentRepositoryStub)(nil)
	_ repository.RefundRepository   = (*RefundRepositoryStub)(nil)
)
