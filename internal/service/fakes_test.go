package service_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"go-floor-inventory/internal/model"
	"go-floor-inventory/internal/service"
	"go-floor-inventory/internal/ws"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// --- Clock ---

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{now: start}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// --- Notifier ---

type recordingNotifier struct {
	mu     sync.Mutex
	events []ws.Event
}

func (n *recordingNotifier) Notify(event ws.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) actions() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.events))
	for i, e := range n.events {
		out[i] = e.Action
	}
	return out
}

// --- Product repository ---

type mockProductRepo struct {
	products map[string]model.Product
}

func newMockProductRepo(products ...model.Product) *mockProductRepo {
	m := &mockProductRepo{products: make(map[string]model.Product)}
	for i, p := range products {
		p.ID = uint(i + 1)
		m.products[p.ProductNumber] = p
	}
	return m
}

func (m *mockProductRepo) FindByProductNumber(_ context.Context, productNumber string) (*model.Product, error) {
	p, ok := m.products[productNumber]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (m *mockProductRepo) Search(_ context.Context, query string, offset, limit int) ([]model.Product, int64, error) {
	var matched []model.Product
	for _, p := range m.products {
		if strings.Contains(strings.ToLower(p.ProductNumber), strings.ToLower(query)) {
			matched = append(matched, p)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ProductNumber < matched[j].ProductNumber })

	total := int64(len(matched))
	if offset > len(matched) {
		offset = len(matched)
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (m *mockProductRepo) Upsert(_ context.Context, product *model.Product) error {
	m.products[product.ProductNumber] = *product
	return nil
}

func (m *mockProductRepo) capacity(productNumber string) *int {
	p, ok := m.products[productNumber]
	if !ok {
		return nil
	}
	c := p.LocationCapacity
	return &c
}

// --- Stock request repository ---

// mockStockRequestRepo applies the same conditional updates as the SQL
// version under one mutex, so concurrent callers race the same way.
type mockStockRequestRepo struct {
	mu       sync.Mutex
	nextID   uint
	rows     map[uint]*model.StockRequest
	products *mockProductRepo
	failNext error
}

func newMockStockRequestRepo(products *mockProductRepo) *mockStockRequestRepo {
	return &mockStockRequestRepo{rows: make(map[uint]*model.StockRequest), products: products}
}

func (m *mockStockRequestRepo) Create(_ context.Context, req *model.StockRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failNext != nil {
		err := m.failNext
		m.failNext = nil
		return err
	}
	m.nextID++
	req.ID = m.nextID
	row := *req
	m.rows[row.ID] = &row
	return nil
}

func (m *mockStockRequestRepo) joined(row *model.StockRequest) model.StockRequest {
	out := *row
	out.LocationCapacity = m.products.capacity(row.ProductNumber)
	return out
}

func (m *mockStockRequestRepo) FindByID(_ context.Context, id uint) (*model.StockRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := m.joined(row)
	return &out, nil
}

func (m *mockStockRequestRepo) FindActive(_ context.Context) ([]model.StockRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.StockRequest
	for _, row := range m.rows {
		if !row.IsDeleted {
			out = append(out, m.joined(row))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RequestedAt.Equal(out[j].RequestedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].RequestedAt.After(out[j].RequestedAt)
	})
	return out, nil
}

func (m *mockStockRequestRepo) Complete(_ context.Context, id uint, stockQuantity int, checkedAt time.Time) (*model.StockRequest, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok || row.Status != model.StatusPending || row.IsDeleted {
		return nil, false, nil
	}
	qty := stockQuantity
	at := checkedAt
	row.Status = model.StatusCompleted
	row.StockQuantity = &qty
	row.CheckedAt = &at
	out := *row
	return &out, true, nil
}

func (m *mockStockRequestRepo) Archive(_ context.Context, id uint, deletedAt time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok || row.Status != model.StatusCompleted || row.IsDeleted {
		return false, nil
	}
	at := deletedAt
	row.IsDeleted = true
	row.DeletedAt = &at
	return true, nil
}

// --- Overflow repository ---

type mockOverflowRepo struct {
	mu       sync.Mutex
	nextID   uint
	rows     []*model.OverflowEvent
	products *mockProductRepo
}

func newMockOverflowRepo(products *mockProductRepo) *mockOverflowRepo {
	return &mockOverflowRepo{products: products}
}

func (m *mockOverflowRepo) Create(_ context.Context, event *model.OverflowEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.ProductNumber == event.ProductNumber && row.CreatedAt.Equal(event.CreatedAt) {
			return errors.New("duplicate key value violates unique constraint \"idx_overflow_identity\"")
		}
	}
	m.nextID++
	event.ID = m.nextID
	row := *event
	row.LocationNumber = ""
	row.BoxType = ""
	m.rows = append(m.rows, &row)
	return nil
}

func (m *mockOverflowRepo) joined(row *model.OverflowEvent) model.OverflowEvent {
	out := *row
	if p, ok := m.products.products[row.ProductNumber]; ok {
		out.LocationNumber = p.LocationNumber
		out.BoxType = p.BoxType
	}
	return out
}

func (m *mockOverflowRepo) filter(keep func(*model.OverflowEvent) bool, newestFirst bool) []model.OverflowEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.OverflowEvent
	for _, row := range m.rows {
		if keep(row) {
			out = append(out, m.joined(row))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if newestFirst {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (m *mockOverflowRepo) FindActive(_ context.Context) ([]model.OverflowEvent, error) {
	return m.filter(func(e *model.OverflowEvent) bool { return !e.IsDeleted }, true), nil
}

// StatsBetween mirrors the GROUP BY in the SQL version
func (m *mockOverflowRepo) StatsBetween(_ context.Context, from, to time.Time) ([]model.OverflowStat, error) {
	events := m.filter(func(e *model.OverflowEvent) bool {
		return !e.IsDeleted && !e.CreatedAt.Before(from) && e.CreatedAt.Before(to)
	}, false)

	byProduct := make(map[string]*model.OverflowStat)
	var order []string
	for _, e := range events {
		stat, ok := byProduct[e.ProductNumber]
		if !ok {
			stat = &model.OverflowStat{ProductNumber: e.ProductNumber, LocationNumber: e.LocationNumber}
			byProduct[e.ProductNumber] = stat
			order = append(order, e.ProductNumber)
		}
		stat.TotalQuantity += int64(e.OverflowQuantity)
		stat.OverflowCount++
	}
	sort.Strings(order)

	var stats []model.OverflowStat
	for _, pn := range order {
		stats = append(stats, *byProduct[pn])
	}
	return stats, nil
}

func (m *mockOverflowRepo) FindByProduct(_ context.Context, productNumber string) ([]model.OverflowEvent, error) {
	return m.filter(func(e *model.OverflowEvent) bool { return e.ProductNumber == productNumber }, true), nil
}

func (m *mockOverflowRepo) SoftDelete(_ context.Context, productNumber string, createdAt, deletedAt time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.ProductNumber == productNumber && row.CreatedAt.Equal(createdAt) && !row.IsDeleted {
			at := deletedAt
			row.IsDeleted = true
			row.DeletedAt = &at
			return true, nil
		}
	}
	return false, nil
}

// insert places a row directly, bypassing validation
func (m *mockOverflowRepo) insert(e model.OverflowEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	e.ID = m.nextID
	m.rows = append(m.rows, &e)
}

// --- User repository ---

type mockUserRepo struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*model.User
	failNext error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (m *mockUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failNext != nil {
		err := m.failNext
		m.failNext = nil
		return nil, err
	}
	for _, u := range m.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *u
	return &out, nil
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	u := *user
	m.users[u.ID] = &u
	return nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := *user
	m.users[u.ID] = &u
	return nil
}

func (m *mockUserRepo) UpdateTokenVersion(_ context.Context, userID uuid.UUID, version string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.TokenVersion = version
	return nil
}

// --- Helpers ---

const sampleProduct = "12345-67890-71"

func sampleCatalog() *mockProductRepo {
	return newMockProductRepo(
		model.Product{ProductNumber: sampleProduct, LocationNumber: "123456", BoxType: "A4", LocationCapacity: 50},
		model.Product{ProductNumber: "22222-00000-01", LocationNumber: "200100", BoxType: "B2", LocationCapacity: 0},
		model.Product{ProductNumber: "33333-00000-02", LocationNumber: "300200", BoxType: "C1", LocationCapacity: 120},
	)
}

func floorActor() *model.Actor {
	return &model.Actor{
		UserID:      uuid.New(),
		DisplayName: "Kumazawa",
		Role:        model.RoleStaff,
		Privileges:  model.PrivilegesForRole(model.RoleStaff),
	}
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func newCatalog(products *mockProductRepo) service.CatalogService {
	return service.NewCatalogService(products, nil)
}
