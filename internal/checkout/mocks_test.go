package checkout

import (
	"context"

	"github.com/SamuelSnowball/Bookstore/internal/domain"
	"github.com/SamuelSnowball/Bookstore/internal/events"
)

// callLog records the order in which upstream calls were issued, shared
// between the mocks of one test.
type callLog struct {
	calls []string
}

func (l *callLog) add(name string) {
	l.calls = append(l.calls, name)
}

// MockCartReader implements CartReader for testing.
type MockCartReader struct {
	Items []domain.CartItem
	Err   error
	Calls int
	log   *callLog
}

func (m *MockCartReader) GetCart(_ context.Context, _ string) ([]domain.CartItem, error) {
	m.Calls++
	if m.log != nil {
		m.log.add("fetch_cart")
	}
	return m.Items, m.Err
}

// MockOrderInitiator implements OrderInitiator for testing.
type MockOrderInitiator struct {
	OrderID int
	Err     error
	Calls   int
	log     *callLog
}

func (m *MockOrderInitiator) CreateFromCart(_ context.Context, _ string) (int, error) {
	m.Calls++
	if m.log != nil {
		m.log.add("create_order")
	}
	return m.OrderID, m.Err
}

// MockSessionCreator implements SessionCreator and captures the request it
// was sent.
type MockSessionCreator struct {
	ClientSecret string
	Err          error
	Calls        int
	Request      *domain.PaymentRequest
	log          *callLog
}

func (m *MockSessionCreator) CreateCheckoutSession(_ context.Context, _ string, req domain.PaymentRequest) (string, error) {
	m.Calls++
	m.Request = &req
	if m.log != nil {
		m.log.add("create_session")
	}
	return m.ClientSecret, m.Err
}

// MockRecorder implements ActivationRecorder and FinalizationRecorder.
type MockRecorder struct {
	Activations   []*domain.ActivationRecord
	Finalizations []*domain.FinalizationRecord
	SaveErr       error
	FinalizeErr   error
}

func (m *MockRecorder) SaveActivation(_ context.Context, record *domain.ActivationRecord) error {
	m.Activations = append(m.Activations, record)
	return m.SaveErr
}

func (m *MockRecorder) MarkFinalized(_ context.Context, record *domain.FinalizationRecord) error {
	m.Finalizations = append(m.Finalizations, record)
	return m.FinalizeErr
}

// MockStatusGetter implements SessionStatusGetter for testing.
type MockStatusGetter struct {
	State domain.SessionState
	Err   error
	Calls int
}

func (m *MockStatusGetter) GetSessionStatus(_ context.Context, _ string) (domain.SessionState, error) {
	m.Calls++
	return m.State, m.Err
}

// MockFinalizer implements OrderFinalizer for testing.
type MockFinalizer struct {
	OrderID int
	Err     error
	Calls   int
}

func (m *MockFinalizer) CompleteOrder(_ context.Context, _, _ string) (int, error) {
	m.Calls++
	return m.OrderID, m.Err
}

// MockPublisher implements CompletedPublisher and FailedPublisher.
type MockPublisher struct {
	Completed []events.CheckoutCompletedEvent
	Failed    []events.PaymentFailedEvent
	Err       error
}

func (m *MockPublisher) PublishCheckoutCompleted(event events.CheckoutCompletedEvent) error {
	m.Completed = append(m.Completed, event)
	return m.Err
}

func (m *MockPublisher) PublishPaymentFailed(event events.PaymentFailedEvent) error {
	m.Failed = append(m.Failed, event)
	return m.Err
}
