package handler

import (
	"context"
	"sync"

	"github.com/helpdesk-portal/helpdesk-service/internal/model"
	"github.com/helpdesk-portal/helpdesk-service/internal/service"
	"github.com/helpdesk-portal/helpdesk-service/internal/stripe"
)

// Function-field mocks for the servicer interfaces. Unset fields mean the
// test does not expect that call — reaching one panics with a nil deref,
// which is exactly the failure we want.

type mockTicketService struct {
	create       func(ctx context.Context, customer, technician string) (*model.SupportTicket, error)
	getByID      func(ctx context.Context, id uint64) (*model.SupportTicket, error)
	listForUser  func(ctx context.Context, principal string) ([]model.SupportTicket, error)
	listAll      func(ctx context.Context) ([]model.SupportTicket, error)
	updateStatus func(ctx context.Context, id uint64, caller string, status model.TicketStatus) (*model.SupportTicket, error)
	addFeedback  func(ctx context.Context, id uint64, caller string, rating int, comment string) (*model.SupportTicket, error)
	analytics    func(ctx context.Context) (*service.AnalyticsMetrics, error)
}

func (m *mockTicketService) Create(ctx context.Context, customer, technician string) (*model.SupportTicket, error) {
	return m.create(ctx, customer, technician)
}
func (m *mockTicketService) GetByID(ctx context.Context, id uint64) (*model.SupportTicket, error) {
	return m.getByID(ctx, id)
}
func (m *mockTicketService) ListForUser(ctx context.Context, principal string) ([]model.SupportTicket, error) {
	return m.listForUser(ctx, principal)
}
func (m *mockTicketService) ListAll(ctx context.Context) ([]model.SupportTicket, error) {
	return m.listAll(ctx)
}
func (m *mockTicketService) UpdateStatus(ctx context.Context, id uint64, caller string, status model.TicketStatus) (*model.SupportTicket, error) {
	return m.updateStatus(ctx, id, caller, status)
}
func (m *mockTicketService) AddFeedback(ctx context.Context, id uint64, caller string, rating int, comment string) (*model.SupportTicket, error) {
	return m.addFeedback(ctx, id, caller, rating, comment)
}
func (m *mockTicketService) Analytics(ctx context.Context) (*service.AnalyticsMetrics, error) {
	return m.analytics(ctx)
}

type mockMessageService struct {
	send          func(ctx context.Context, ticketID uint64, sender, content, attachmentURL string) (*model.ChatMessage, error)
	listForTicket func(ctx context.Context, ticketID uint64, caller string) ([]model.ChatMessage, error)
	listForUser   func(ctx context.Context, principal string) ([]model.ChatMessage, error)
	markRead      func(ctx context.Context, ticketID uint64, caller string) (int64, error)
	delete        func(ctx context.Context, messageID uint64, caller string) error
}

func (m *mockMessageService) Send(ctx context.Context, ticketID uint64, sender, content, attachmentURL string) (*model.ChatMessage, error) {
	return m.send(ctx, ticketID, sender, content, attachmentURL)
}
func (m *mockMessageService) ListForTicket(ctx context.Context, ticketID uint64, caller string) ([]model.ChatMessage, error) {
	return m.listForTicket(ctx, ticketID, caller)
}
func (m *mockMessageService) ListForUser(ctx context.Context, principal string) ([]model.ChatMessage, error) {
	return m.listForUser(ctx, principal)
}
func (m *mockMessageService) MarkRead(ctx context.Context, ticketID uint64, caller string) (int64, error) {
	return m.markRead(ctx, ticketID, caller)
}
func (m *mockMessageService) Delete(ctx context.Context, messageID uint64, caller string) error {
	return m.delete(ctx, messageID, caller)
}

type mockPaymentService struct {
	getToggle          func(ctx context.Context, ticketID uint64, caller string) (*model.PaymentToggle, error)
	setToggle          func(ctx context.Context, ticketID uint64, caller string, enabled, requested bool, sessionID string) (*model.PaymentToggle, error)
	toggleStatus       func(ctx context.Context, ticketID uint64, caller string) (model.ToggleStatus, error)
	configured         func() bool
	createCheckout     func(ctx context.Context, items []model.ShoppingItem, successURL, cancelURL string) (*stripe.CheckoutSession, error)
	createSupport      func(ctx context.Context, successURL, cancelURL string) (*stripe.CheckoutSession, error)
	sessionStatus      func(ctx context.Context, sessionID string) (*service.SessionState, error)
	createRecord       func(ctx context.Context, customer, paymentID string, amountCents int64, currency string) (*model.PaymentRecord, error)
	getRecord          func(ctx context.Context, paymentID string) (*model.PaymentRecord, error)
	updateRecordStatus func(ctx context.Context, paymentID string, status model.PaymentStatus) (*model.PaymentRecord, error)
}

func (m *mockPaymentService) GetToggle(ctx context.Context, ticketID uint64, caller string) (*model.PaymentToggle, error) {
	return m.getToggle(ctx, ticketID, caller)
}
func (m *mockPaymentService) SetToggle(ctx context.Context, ticketID uint64, caller string, enabled, requested bool, sessionID string) (*model.PaymentToggle, error) {
	return m.setToggle(ctx, ticketID, caller, enabled, requested, sessionID)
}
func (m *mockPaymentService) ToggleStatus(ctx context.Context, ticketID uint64, caller string) (model.ToggleStatus, error) {
	return m.toggleStatus(ctx, ticketID, caller)
}
func (m *mockPaymentService) IsConfigured() bool { return m.configured() }
func (m *mockPaymentService) CreateCheckoutSession(ctx context.Context, items []model.ShoppingItem, successURL, cancelURL string) (*stripe.CheckoutSession, error) {
	return m.createCheckout(ctx, items, successURL, cancelURL)
}
func (m *mockPaymentService) CreateSupportCheckoutSession(ctx context.Context, successURL, cancelURL string) (*stripe.CheckoutSession, error) {
	return m.createSupport(ctx, successURL, cancelURL)
}
func (m *mockPaymentService) SessionStatus(ctx context.Context, sessionID string) (*service.SessionState, error) {
	return m.sessionStatus(ctx, sessionID)
}
func (m *mockPaymentService) CreateRecord(ctx context.Context, customer, paymentID string, amountCents int64, currency string) (*model.PaymentRecord, error) {
	return m.createRecord(ctx, customer, paymentID, amountCents, currency)
}
func (m *mockPaymentService) GetRecord(ctx context.Context, paymentID string) (*model.PaymentRecord, error) {
	return m.getRecord(ctx, paymentID)
}
func (m *mockPaymentService) UpdateRecordStatus(ctx context.Context, paymentID string, status model.PaymentStatus) (*model.PaymentRecord, error) {
	return m.updateRecordStatus(ctx, paymentID, status)
}

type mockKnowledgeService struct {
	list       func(ctx context.Context) ([]model.KBArticle, error)
	get        func(ctx context.Context, id uint64) (*model.KBArticle, error)
	search     func(ctx context.Context, term string) ([]model.KBArticle, error)
	byCategory func(ctx context.Context, category model.KnowledgeCategory) ([]model.KBArticle, error)
	create     func(ctx context.Context, title string, category model.KnowledgeCategory, body string, tags []string) (*model.KBArticle, error)
	update     func(ctx context.Context, id uint64, title string, category model.KnowledgeCategory, body string, tags []string) (*model.KBArticle, error)
	delete     func(ctx context.Context, id uint64) error
	increment  func(ctx context.Context, id uint64) error
}

func (m *mockKnowledgeService) List(ctx context.Context) ([]model.KBArticle, error) { return m.list(ctx) }
func (m *mockKnowledgeService) Get(ctx context.Context, id uint64) (*model.KBArticle, error) {
	return m.get(ctx, id)
}
func (m *mockKnowledgeService) Search(ctx context.Context, term string) ([]model.KBArticle, error) {
	return m.search(ctx, term)
}
func (m *mockKnowledgeService) ByCategory(ctx context.Context, category model.KnowledgeCategory) ([]model.KBArticle, error) {
	return m.byCategory(ctx, category)
}
func (m *mockKnowledgeService) Create(ctx context.Context, title string, category model.KnowledgeCategory, body string, tags []string) (*model.KBArticle, error) {
	return m.create(ctx, title, category, body, tags)
}
func (m *mockKnowledgeService) Update(ctx context.Context, id uint64, title string, category model.KnowledgeCategory, body string, tags []string) (*model.KBArticle, error) {
	return m.update(ctx, id, title, category, body, tags)
}
func (m *mockKnowledgeService) Delete(ctx context.Context, id uint64) error { return m.delete(ctx, id) }
func (m *mockKnowledgeService) IncrementViewCount(ctx context.Context, id uint64) error {
	return m.increment(ctx, id)
}

type mockAvailabilityService struct {
	set        func(ctx context.Context, technician string, isAvailable bool) (*model.TechnicianAvailability, error)
	get        func(ctx context.Context, technician string) (*model.TechnicianAvailability, error)
	list       func(ctx context.Context) ([]model.TechnicianAvailability, error)
	allOffline func(ctx context.Context) (int64, error)
}

func (m *mockAvailabilityService) Set(ctx context.Context, technician string, isAvailable bool) (*model.TechnicianAvailability, error) {
	return m.set(ctx, technician, isAvailable)
}
func (m *mockAvailabilityService) Get(ctx context.Context, technician string) (*model.TechnicianAvailability, error) {
	return m.get(ctx, technician)
}
func (m *mockAvailabilityService) List(ctx context.Context) ([]model.TechnicianAvailability, error) {
	return m.list(ctx)
}
func (m *mockAvailabilityService) AllOffline(ctx context.Context) (int64, error) {
	return m.allOffline(ctx)
}

type mockAuditService struct {
	record    func(ctx context.Context, principal, name, role, email string) (*model.LoginEvent, error)
	list      func(ctx context.Context) ([]model.LoginEvent, error)
	exportCSV func(ctx context.Context) (string, error)
}

func (m *mockAuditService) Record(ctx context.Context, principal, name, role, email string) (*model.LoginEvent, error) {
	return m.record(ctx, principal, name, role, email)
}
func (m *mockAuditService) List(ctx context.Context) ([]model.LoginEvent, error) {
	return m.list(ctx)
}
func (m *mockAuditService) ExportCSV(ctx context.Context) (string, error) {
	return m.exportCSV(ctx)
}

type mockProfileService struct {
	get        func(ctx context.Context, principal string) (*model.UserProfile, error)
	save       func(ctx context.Context, principal, displayName string, isTechnician bool, avatarURL string) (*model.UserProfile, error)
	initAccess func(ctx context.Context, principal string) (model.UserRole, error)
	role       func(ctx context.Context, principal string) (model.UserRole, error)
	assignRole func(ctx context.Context, principal string, role model.UserRole) error
	isAdmin    func(ctx context.Context, principal string) (bool, error)
}

func (m *mockProfileService) Get(ctx context.Context, principal string) (*model.UserProfile, error) {
	return m.get(ctx, principal)
}
func (m *mockProfileService) Save(ctx context.Context, principal, displayName string, isTechnician bool, avatarURL string) (*model.UserProfile, error) {
	return m.save(ctx, principal, displayName, isTechnician, avatarURL)
}
func (m *mockProfileService) InitializeAccessControl(ctx context.Context, principal string) (model.UserRole, error) {
	return m.initAccess(ctx, principal)
}
func (m *mockProfileService) Role(ctx context.Context, principal string) (model.UserRole, error) {
	return m.role(ctx, principal)
}
func (m *mockProfileService) AssignRole(ctx context.Context, principal string, role model.UserRole) error {
	return m.assignRole(ctx, principal, role)
}
func (m *mockProfileService) IsAdmin(ctx context.Context, principal string) (bool, error) {
	return m.isAdmin(ctx, principal)
}

// mockProducer records events; Wait-free assertions read under the mutex.
type mockProducer struct {
	mu     sync.Mutex
	events []string
	done   chan struct{}
}

func newMockProducer() *mockProducer {
	return &mockProducer{done: make(chan struct{}, 16)}
}

func (p *mockProducer) ProduceSupportEvent(_ context.Context, event string, _ map[string]interface{}) {
	p.mu.Lock()
	p.events = append(p.events, event)
	p.mu.Unlock()
	p.done <- struct{}{}
}

func (p *mockProducer) recorded() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	copy(out, p.events)
	return out
}
