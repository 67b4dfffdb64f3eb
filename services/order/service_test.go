package order

import (
	"context"
	"strings"
	"testing"
	"time"

	cartRepo "github.com/KevinDarioIguaran/LCLGSC/database/repository/cart"
	orderRepo "github.com/KevinDarioIguaran/LCLGSC/database/repository/order"
	productRepo "github.com/KevinDarioIguaran/LCLGSC/database/repository/product"
	userRepo "github.com/KevinDarioIguaran/LCLGSC/database/repository/user"
	"github.com/KevinDarioIguaran/LCLGSC/models"

	"go.uber.org/zap"
)

// ---- in-memory fakes ----

type fakeUserRepo struct {
	users map[string]*models.User
}

func (f *fakeUserRepo) GetByCode(ctx context.Context, code string) (*models.User, error) {
	u, ok := f.users[code]
	if !ok {
		return nil, userRepo.ErrNotFound
	}
	copy := *u
	return &copy, nil
}

func (f *fakeUserRepo) GetAll(ctx context.Context) ([]models.User, error) { return nil, nil }

func (f *fakeUserRepo) Create(ctx context.Context, u *models.User) error {
	f.users[u.Code] = u
	return nil
}

func (f *fakeUserRepo) Update(ctx context.Context, u *models.User) error {
	f.users[u.Code] = u
	return nil
}

func (f *fakeUserRepo) AddCredit(ctx context.Context, code string, amountCents, capCents int64) error {
	u, ok := f.users[code]
	if !ok {
		return userRepo.ErrNotFound
	}
	if capCents > 0 && u.CreditCents+amountCents > capCents {
		return userRepo.ErrCreditCapExceeded
	}
	u.CreditCents += amountCents
	return nil
}

func (f *fakeUserRepo) SetActive(ctx context.Context, code string, active bool) error {
	u, ok := f.users[code]
	if !ok {
		return userRepo.ErrNotFound
	}
	u.IsActive = active
	return nil
}

type fakeProductRepo struct {
	products map[string]*models.Product
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, productRepo.ErrNotFound
	}
	copy := *p
	return &copy, nil
}

func (f *fakeProductRepo) Create(ctx context.Context, p *models.Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) Update(ctx context.Context, p *models.Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id, sellerCode string) error { return nil }

func (f *fakeProductRepo) SearchByName(ctx context.Context, name string) ([]models.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) ListByCategory(ctx context.Context, categoryID string, limit int) ([]models.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) ListBySeller(ctx context.Context, sellerCode string) ([]models.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) SearchBySeller(ctx context.Context, sellerCode, name, categoryID string) ([]models.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) BestSellers(ctx context.Context, limit int) ([]models.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) Categories(ctx context.Context) ([]models.Category, error) {
	return nil, nil
}

func (f *fakeProductRepo) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return nil, productRepo.ErrNotFound
}

func (f *fakeProductRepo) UpsertCategory(ctx context.Context, c *models.Category) error { return nil }

type fakeCartRepo struct {
	carts map[string]*models.Cart
}

func (f *fakeCartRepo) Get(ctx context.Context, userCode string) (*models.Cart, error) {
	return f.carts[userCode], nil
}

func (f *fakeCartRepo) AddLine(ctx context.Context, userCode, productID string, quantity int) error {
	return nil
}

func (f *fakeCartRepo) SetQuantity(ctx context.Context, userCode, productID string, quantity int) error {
	return cartRepo.ErrLineNotFound
}

func (f *fakeCartRepo) RemoveLine(ctx context.Context, userCode, productID string) error { return nil }

func (f *fakeCartRepo) Clear(ctx context.Context, userCode string) error {
	if c, ok := f.carts[userCode]; ok {
		c.Items = nil
	}
	return nil
}

// fakeOrderRepo mimics the mongo transaction semantics in memory.
type fakeOrderRepo struct {
	orders   map[string]*models.Order
	users    *fakeUserRepo
	products *fakeProductRepo
	carts    *fakeCartRepo
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, orderRepo.ErrNotFound
	}
	copy := *o
	return &copy, nil
}

func (f *fakeOrderRepo) ListByUser(ctx context.Context, userCode string) ([]models.Order, error) {
	var list []models.Order
	for _, o := range f.orders {
		if o.UserCode == userCode {
			list = append(list, *o)
		}
	}
	return list, nil
}

func (f *fakeOrderRepo) ListPending(ctx context.Context, excludeUserCode string) ([]models.Order, error) {
	var list []models.Order
	for _, o := range f.orders {
		if o.Status == models.OrderStatusPending && o.UserCode != excludeUserCode {
			list = append(list, *o)
		}
	}
	return list, nil
}

func (f *fakeOrderRepo) SearchByProductName(ctx context.Context, userCode, query string) ([]models.Order, error) {
	var list []models.Order
	for _, o := range f.orders {
		if o.UserCode != userCode {
			continue
		}
		for _, item := range o.Items {
			if strings.Contains(strings.ToLower(item.Name), strings.ToLower(query)) {
				list = append(list, *o)
				break
			}
		}
	}
	return list, nil
}

func (f *fakeOrderRepo) CreateCheckout(ctx context.Context, o *models.Order, totalCents int64, decrements []orderRepo.StockDecrement) error {
	u, ok := f.users.users[o.UserCode]
	if !ok || u.CreditCents < totalCents {
		return orderRepo.ErrInsufficientCredit
	}
	for _, dec := range decrements {
		p, ok := f.products.products[dec.ProductID]
		if !ok || !p.Available || p.Stock < dec.Quantity {
			return orderRepo.ErrInsufficientStock
		}
	}
	u.CreditCents -= totalCents
	for _, dec := range decrements {
		p := f.products.products[dec.ProductID]
		p.Stock -= dec.Quantity
		p.SalesCount += int64(dec.Quantity)
	}
	f.orders[o.ID] = o
	f.carts.Clear(ctx, o.UserCode)
	return nil
}

func (f *fakeOrderRepo) ConfirmPickup(ctx context.Context, orderID, qrCode, sellerCode string, arrival time.Time) error {
	o, ok := f.orders[orderID]
	if !ok {
		return orderRepo.ErrNotFound
	}
	if o.Status != models.OrderStatusPending {
		return orderRepo.ErrStatusConflict
	}
	if o.QRCodeData != qrCode {
		return orderRepo.ErrTokenMismatch
	}
	o.Status = models.OrderStatusCompleted
	o.SellerApproved = sellerCode
	o.ArrivalTime = &arrival
	return nil
}

func (f *fakeOrderRepo) CancelForStock(ctx context.Context, orderID string, cancelItems []models.OrderItem, refundCents int64) error {
	o, ok := f.orders[orderID]
	if !ok {
		return orderRepo.ErrNotFound
	}
	if o.Status != models.OrderStatusPending {
		return orderRepo.ErrStatusConflict
	}
	o.Status = models.OrderStatusCancelled
	o.CancelItems = append(o.CancelItems, cancelItems...)
	if refundCents > 0 {
		f.users.users[o.UserCode].CreditCents += refundCents
	}
	return nil
}

func (f *fakeOrderRepo) DeleteRefund(ctx context.Context, orderID, userCode string, refundCents int64) error {
	o, ok := f.orders[orderID]
	if !ok || o.UserCode != userCode {
		return orderRepo.ErrNotFound
	}
	if o.Status != models.OrderStatusPending {
		return orderRepo.ErrStatusConflict
	}
	delete(f.orders, orderID)
	if refundCents > 0 {
		f.users.users[userCode].CreditCents += refundCents
	}
	return nil
}

func (f *fakeOrderRepo) Refund(ctx context.Context, orderID string, refundCents int64) error {
	o, ok := f.orders[orderID]
	if !ok {
		return orderRepo.ErrNotFound
	}
	if o.Status != models.OrderStatusPending {
		return orderRepo.ErrStatusConflict
	}
	o.Status = models.OrderStatusRefunded
	if refundCents > 0 {
		f.users.users[o.UserCode].CreditCents += refundCents
	}
	return nil
}

func (f *fakeOrderRepo) Hide(ctx context.Context, orderID, userCode string) error {
	o, ok := f.orders[orderID]
	if !ok || o.UserCode != userCode {
		return orderRepo.ErrNotFound
	}
	if o.Status == models.OrderStatusPending {
		return orderRepo.ErrStatusConflict
	}
	o.DonotShow = true
	return nil
}

func (f *fakeOrderRepo) SetReview(ctx context.Context, orderID, userCode string, rating int, comment string) error {
	o, ok := f.orders[orderID]
	if !ok || o.UserCode != userCode {
		return orderRepo.ErrNotFound
	}
	if o.Status != models.OrderStatusCompleted || o.DonotShow {
		return orderRepo.ErrReviewForbidden
	}
	o.Rating = rating
	o.Comment = comment
	return nil
}

func (f *fakeOrderRepo) TopProducts(ctx context.Context, sellerCode string, since time.Time, limit int) ([]orderRepo.ProductSales, error) {
	return nil, nil
}

func (f *fakeOrderRepo) RevenueByMonth(ctx context.Context, sellerCode string, year int) ([]orderRepo.MonthlyRevenue, error) {
	return nil, nil
}

type fakeRevoker struct {
	revoked []string
}

func (f *fakeRevoker) Revoke(ctx context.Context, userCode string) error {
	f.revoked = append(f.revoked, userCode)
	return nil
}

// ---- fixtures ----

const deliveryFee = int64(50000)

func newFixture() (*DefaultOrderService, *fakeUserRepo, *fakeProductRepo, *fakeCartRepo, *fakeOrderRepo, *fakeRevoker) {
	users := &fakeUserRepo{users: map[string]*models.User{
		"1001": {Code: "1001", IsActive: true, CreditCents: 1000000},
		"2002": {Code: "2002", IsActive: true, IsSeller: true},
	}}
	products := &fakeProductRepo{products: map[string]*models.Product{
		"p1": {ID: "p1", CategoryID: "snacks", Name: "Empanada", PriceCents: 150000, Stock: 10, SellerCode: "2002", Available: true},
		"p2": {ID: "p2", CategoryID: "drinks", Name: "Jugo", PriceCents: 100000, Stock: 3, SellerCode: "2002", Available: true},
	}}
	carts := &fakeCartRepo{carts: map[string]*models.Cart{
		"1001": {UserCode: "1001", Items: []models.CartLine{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 1},
		}},
	}}
	orders := &fakeOrderRepo{orders: map[string]*models.Order{}, users: users, products: products, carts: carts}
	revoker := &fakeRevoker{}

	svc := &DefaultOrderService{
		Orders:             orders,
		Users:              users,
		Products:           products,
		Carts:              carts,
		Sessions:           revoker,
		Logger:             zap.NewNop(),
		DeliveryFeeCents:   deliveryFee,
		RefundFullOnCancel: true,
	}
	return svc, users, products, carts, orders, revoker
}

// ---- tests ----

func TestCheckoutHappyPath(t *testing.T) {
	svc, users, products, carts, orders, _ := newFixture()
	ctx := context.Background()

	o, err := svc.Checkout(ctx, "1001", models.AddressClassroom01)
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}

	if o.Status != models.OrderStatusPending {
		t.Errorf("status = %s, want pending", o.Status)
	}
	if !o.Paid {
		t.Error("order must be marked paid")
	}
	if o.QRCodeData == "" {
		t.Error("order must carry a pickup token")
	}
	if len(o.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(o.Items))
	}
	if o.Items[0].PriceCents != 150000 {
		t.Errorf("price snapshot = %d, want 150000", o.Items[0].PriceCents)
	}

	// 2*150000 + 1*100000 + delivery fee
	wantTotal := int64(450000)
	if got := users.users["1001"].CreditCents; got != 1000000-wantTotal {
		t.Errorf("credit after checkout = %d, want %d", got, 1000000-wantTotal)
	}
	if got := products.products["p1"].Stock; got != 8 {
		t.Errorf("p1 stock = %d, want 8", got)
	}
	if got := products.products["p2"].SalesCount; got != 1 {
		t.Errorf("p2 sales = %d, want 1", got)
	}
	if len(carts.carts["1001"].Items) != 0 {
		t.Error("cart must be cleared after checkout")
	}
	if _, ok := orders.orders[o.ID]; !ok {
		t.Error("order must be persisted")
	}
}

func TestCheckoutCooperativePickupSkipsFee(t *testing.T) {
	svc, users, _, _, _, _ := newFixture()

	_, err := svc.Checkout(context.Background(), "1001", models.AddressCooperative)
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}
	if got := users.users["1001"].CreditCents; got != 1000000-400000 {
		t.Errorf("credit after checkout = %d, want %d", got, 1000000-400000)
	}
}

func TestCheckoutValidation(t *testing.T) {
	svc, _, _, carts, _, _ := newFixture()
	ctx := context.Background()

	if _, err := svc.Checkout(ctx, "1001", "gym"); !IsValidation(err) {
		t.Errorf("unknown address: got %v, want validation error", err)
	}

	carts.carts["1001"].Items = nil
	if _, err := svc.Checkout(ctx, "1001", models.AddressClassroom01); !IsValidation(err) {
		t.Errorf("empty cart: got %v, want validation error", err)
	}
}

func TestCheckoutRejectsOwnProduct(t *testing.T) {
	svc, _, _, carts, _, _ := newFixture()
	carts.carts["2002"] = &models.Cart{UserCode: "2002", Items: []models.CartLine{{ProductID: "p1", Quantity: 1}}}

	if _, err := svc.Checkout(context.Background(), "2002", models.AddressClassroom01); !IsValidation(err) {
		t.Errorf("own product: got %v, want validation error", err)
	}
}

func TestCheckoutInsufficientResources(t *testing.T) {
	svc, users, products, _, _, _ := newFixture()
	ctx := context.Background()

	users.users["1001"].CreditCents = 100
	if _, err := svc.Checkout(ctx, "1001", models.AddressClassroom01); !IsInsufficient(err) {
		t.Errorf("low credit: got %v, want insufficient error", err)
	}

	users.users["1001"].CreditCents = 1000000
	products.products["p2"].Stock = 0
	if _, err := svc.Checkout(ctx, "1001", models.AddressClassroom01); !IsInsufficient(err) {
		t.Errorf("no stock: got %v, want insufficient error", err)
	}
}

func TestConfirmPickup(t *testing.T) {
	svc, _, _, _, orders, _ := newFixture()
	ctx := context.Background()

	o, err := svc.Checkout(ctx, "1001", models.AddressClassroom01)
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}

	if err := svc.ConfirmPickup(ctx, o.ID, "wrong-token", "2002"); !IsConflict(err) {
		t.Errorf("wrong token: got %v, want conflict error", err)
	}
	if orders.orders[o.ID].Status != models.OrderStatusPending {
		t.Fatal("failed confirmation must not mutate the order")
	}

	if err := svc.ConfirmPickup(ctx, o.ID, o.QRCodeData, "2002"); err != nil {
		t.Fatalf("ConfirmPickup failed: %v", err)
	}
	got := orders.orders[o.ID]
	if got.Status != models.OrderStatusCompleted {
		t.Errorf("status = %s, want completed", got.Status)
	}
	if got.SellerApproved != "2002" {
		t.Errorf("sellerApproved = %s, want 2002", got.SellerApproved)
	}
	if got.ArrivalTime == nil {
		t.Error("arrival time must be recorded")
	}

	if err := svc.ConfirmPickup(ctx, o.ID, o.QRCodeData, "2002"); !IsConflict(err) {
		t.Errorf("second confirmation: got %v, want conflict error", err)
	}
}

func TestPendingDetail(t *testing.T) {
	svc, _, _, _, _, _ := newFixture()
	ctx := context.Background()

	o, err := svc.Checkout(ctx, "1001", models.AddressClassroom01)
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}

	got, err := svc.PendingDetail(ctx, o.ID)
	if err != nil {
		t.Fatalf("PendingDetail failed: %v", err)
	}
	if got.ID != o.ID {
		t.Errorf("order id = %s, want %s", got.ID, o.ID)
	}

	if err := svc.ConfirmPickup(ctx, o.ID, o.QRCodeData, "2002"); err != nil {
		t.Fatalf("ConfirmPickup failed: %v", err)
	}
	if _, err := svc.PendingDetail(ctx, o.ID); !IsConflict(err) {
		t.Errorf("completed order detail: got %v, want conflict error", err)
	}
	if _, err := svc.PendingDetail(ctx, "missing"); !IsValidation(err) {
		t.Errorf("missing order detail: got %v, want validation error", err)
	}
}

func TestCancelForStockFullRefund(t *testing.T) {
	svc, users, _, _, orders, _ := newFixture()
	ctx := context.Background()

	o, err := svc.Checkout(ctx, "1001", models.AddressClassroom01)
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}
	creditAfterCheckout := users.users["1001"].CreditCents

	if err := svc.CancelForStock(ctx, o.ID, "2002", []string{"p2"}); err != nil {
		t.Fatalf("CancelForStock failed: %v", err)
	}

	got := orders.orders[o.ID]
	if got.Status != models.OrderStatusCancelled {
		t.Errorf("status = %s, want cancelled", got.Status)
	}
	if len(got.CancelItems) != 1 || got.CancelItems[0].ProductID != "p2" {
		t.Fatalf("cancelItems = %+v, want the p2 mirror line", got.CancelItems)
	}
	if got.CancelItems[0].PriceCents != 100000 {
		t.Errorf("cancel snapshot price = %d, want 100000", got.CancelItems[0].PriceCents)
	}
	if len(got.Items) != 2 {
		t.Error("original items must be retained")
	}
	// Full refund policy: the whole total comes back.
	if users.users["1001"].CreditCents != creditAfterCheckout+450000 {
		t.Errorf("credit = %d, want full refund of 450000", users.users["1001"].CreditCents)
	}
}

func TestCancelForStockLinesOnlyRefund(t *testing.T) {
	svc, users, _, _, _, _ := newFixture()
	svc.RefundFullOnCancel = false
	ctx := context.Background()

	o, err := svc.Checkout(ctx, "1001", models.AddressClassroom01)
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}
	creditAfterCheckout := users.users["1001"].CreditCents

	if err := svc.CancelForStock(ctx, o.ID, "2002", []string{"p2"}); err != nil {
		t.Fatalf("CancelForStock failed: %v", err)
	}
	if users.users["1001"].CreditCents != creditAfterCheckout+100000 {
		t.Errorf("credit = %d, want refund of the cancelled line only", users.users["1001"].CreditCents)
	}
}

func TestCancelForStockValidation(t *testing.T) {
	svc, _, _, _, orders, _ := newFixture()
	ctx := context.Background()

	o, err := svc.Checkout(ctx, "1001", models.AddressClassroom01)
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}

	if err := svc.CancelForStock(ctx, o.ID, "2002", nil); !IsValidation(err) {
		t.Errorf("empty selection: got %v, want validation error", err)
	}
	if err := svc.CancelForStock(ctx, o.ID, "2002", []string{"nope"}); !IsValidation(err) {
		t.Errorf("foreign product: got %v, want validation error", err)
	}
	if orders.orders[o.ID].Status != models.OrderStatusPending {
		t.Error("failed cancellations must not mutate the order")
	}
}

func TestDeletePendingRefunds(t *testing.T) {
	svc, users, _, _, orders, _ := newFixture()
	ctx := context.Background()

	o, err := svc.Checkout(ctx, "1001", models.AddressClassroom01)
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}
	creditAfterCheckout := users.users["1001"].CreditCents

	if err := svc.Delete(ctx, o.ID, "1001"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := orders.orders[o.ID]; ok {
		t.Error("order must be removed")
	}
	if users.users["1001"].CreditCents != creditAfterCheckout+450000 {
		t.Errorf("credit = %d, want the full total back", users.users["1001"].CreditCents)
	}
}

func TestDeleteNonPending(t *testing.T) {
	svc, users, _, _, _, revoker := newFixture()
	ctx := context.Background()

	o, err := svc.Checkout(ctx, "1001", models.AddressClassroom01)
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}
	if err := svc.ConfirmPickup(ctx, o.ID, o.QRCodeData, "2002"); err != nil {
		t.Fatalf("ConfirmPickup failed: %v", err)
	}

	if err := svc.Delete(ctx, o.ID, "1001"); !IsConflict(err) {
		t.Errorf("non-pending delete: got %v, want conflict error", err)
	}
	if !users.users["1001"].IsActive {
		t.Error("account must stay active while the punitive switch is off")
	}

	svc.DeactivateOnForbiddenDelete = true
	if err := svc.Delete(ctx, o.ID, "1001"); !IsConflict(err) {
		t.Errorf("non-pending delete: got %v, want conflict error", err)
	}
	if users.users["1001"].IsActive {
		t.Error("account must be deactivated with the punitive switch on")
	}
	if len(revoker.revoked) != 1 || revoker.revoked[0] != "1001" {
		t.Errorf("revoked = %v, want [1001]", revoker.revoked)
	}
}

func TestDeleteWrongOwner(t *testing.T) {
	svc, _, _, _, _, _ := newFixture()
	ctx := context.Background()

	o, err := svc.Checkout(ctx, "1001", models.AddressClassroom01)
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}
	if err := svc.Delete(ctx, o.ID, "2002"); !IsValidation(err) {
		t.Errorf("foreign delete: got %v, want validation error", err)
	}
}

func TestHideAndReview(t *testing.T) {
	svc, _, _, _, orders, _ := newFixture()
	ctx := context.Background()

	o, err := svc.Checkout(ctx, "1001", models.AddressClassroom01)
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}

	if err := svc.Hide(ctx, o.ID, "1001"); !IsConflict(err) {
		t.Errorf("hiding a pending order: got %v, want conflict error", err)
	}

	if err := svc.ConfirmPickup(ctx, o.ID, o.QRCodeData, "2002"); err != nil {
		t.Fatalf("ConfirmPickup failed: %v", err)
	}
	if err := svc.Review(ctx, o.ID, "1001", 5, "muy bueno"); err != nil {
		t.Fatalf("Review failed: %v", err)
	}
	if orders.orders[o.ID].Rating != 5 {
		t.Errorf("rating = %d, want 5", orders.orders[o.ID].Rating)
	}

	if err := svc.Hide(ctx, o.ID, "1001"); err != nil {
		t.Fatalf("Hide failed: %v", err)
	}
	if err := svc.Review(ctx, o.ID, "1001", 4, ""); !IsConflict(err) {
		t.Errorf("review on hidden order: got %v, want conflict error", err)
	}

	visible, err := svc.ListByUser(ctx, "1001")
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(visible) != 0 {
		t.Errorf("visible orders = %d, want 0 after hiding", len(visible))
	}
}

func TestReviewRatingBounds(t *testing.T) {
	svc, _, _, _, _, _ := newFixture()
	if err := svc.Review(context.Background(), "any", "1001", 0, ""); !IsValidation(err) {
		t.Errorf("rating 0: got %v, want validation error", err)
	}
	if err := svc.Review(context.Background(), "any", "1001", 6, ""); !IsValidation(err) {
		t.Errorf("rating 6: got %v, want validation error", err)
	}
}

func TestAdminRefund(t *testing.T) {
	svc, users, _, _, orders, _ := newFixture()
	ctx := context.Background()

	o, err := svc.Checkout(ctx, "1001", models.AddressClassroom01)
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}
	creditAfterCheckout := users.users["1001"].CreditCents

	if err := svc.AdminRefund(ctx, o.ID); err != nil {
		t.Fatalf("AdminRefund failed: %v", err)
	}
	if orders.orders[o.ID].Status != models.OrderStatusRefunded {
		t.Errorf("status = %s, want refunded", orders.orders[o.ID].Status)
	}
	if users.users["1001"].CreditCents != creditAfterCheckout+450000 {
		t.Errorf("credit = %d, want the full total back", users.users["1001"].CreditCents)
	}

	if err := svc.AdminRefund(ctx, o.ID); !IsConflict(err) {
		t.Errorf("second refund: got %v, want conflict error", err)
	}
}
