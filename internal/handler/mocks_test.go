package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/packrat/internal/auth"
	"github.com/pkordes/packrat/internal/domain"
	"github.com/pkordes/packrat/internal/handler"
	"github.com/pkordes/packrat/internal/handler/api"
	"github.com/pkordes/packrat/internal/notify"
	"github.com/pkordes/packrat/internal/service"
)

// ---- mocks -----------------------------------------------------------------
// Each mock is a test double for one servicer interface. Set only the method
// fields your test needs; calling an unset one panics, which fails the test.

type mockTripServicer struct {
	create  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID func(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error)
	list    func(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.Trip], error)
	update  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete  func(ctx context.Context, userID, id uuid.UUID) error
	addDay  func(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error)
}

func (m *mockTripServicer) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.create(ctx, t)
}
func (m *mockTripServicer) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, userID, id)
}
func (m *mockTripServicer) List(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.Trip], error) {
	return m.list(ctx, userID, p)
}
func (m *mockTripServicer) Update(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.update(ctx, t)
}
func (m *mockTripServicer) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.delete(ctx, userID, id)
}
func (m *mockTripServicer) AddDay(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error) {
	return m.addDay(ctx, userID, id)
}

type mockPackingServicer struct {
	listItems     func(ctx context.Context, userID, tripID uuid.UUID, day *int) ([]domain.PackingItem, error)
	addItem       func(ctx context.Context, userID uuid.UUID, item domain.PackingItem) (domain.PackingItem, error)
	updateItem    func(ctx context.Context, userID uuid.UUID, item domain.PackingItem) (domain.PackingItem, error)
	deleteItem    func(ctx context.Context, userID, tripID, itemID uuid.UUID) error
	togglePacked  func(ctx context.Context, userID, tripID, itemID uuid.UUID) (domain.ToggleResult, error)
	export        func(ctx context.Context, userID, tripID uuid.UUID) ([]domain.ExportRow, error)
	dayView       func(ctx context.Context, userID, tripID uuid.UUID, day int) (domain.DayView, error)
	tripDays      func(ctx context.Context, userID, tripID uuid.UUID) ([]domain.DayView, error)
	deleteDay     func(ctx context.Context, userID, tripID uuid.UUID, day int) (domain.Trip, error)
	attachEvent   func(ctx context.Context, userID, eventID, tripID uuid.UUID, day int) (service.Attached, error)
	availableDays func(ctx context.Context, userID, eventID, tripID uuid.UUID) ([]int, error)
	detachEvent   func(ctx context.Context, userID, tripID, instanceID uuid.UUID) error
	listInstances func(ctx context.Context, userID, tripID uuid.UUID) ([]domain.EventInstance, error)
}

func (m *mockPackingServicer) ListItems(ctx context.Context, userID, tripID uuid.UUID, day *int) ([]domain.PackingItem, error) {
	return m.listItems(ctx, userID, tripID, day)
}
func (m *mockPackingServicer) AddItem(ctx context.Context, userID uuid.UUID, item domain.PackingItem) (domain.PackingItem, error) {
	return m.addItem(ctx, userID, item)
}
func (m *mockPackingServicer) UpdateItem(ctx context.Context, userID uuid.UUID, item domain.PackingItem) (domain.PackingItem, error) {
	return m.updateItem(ctx, userID, item)
}
func (m *mockPackingServicer) DeleteItem(ctx context.Context, userID, tripID, itemID uuid.UUID) error {
	return m.deleteItem(ctx, userID, tripID, itemID)
}
func (m *mockPackingServicer) TogglePacked(ctx context.Context, userID, tripID, itemID uuid.UUID) (domain.ToggleResult, error) {
	return m.togglePacked(ctx, userID, tripID, itemID)
}
func (m *mockPackingServicer) Export(ctx context.Context, userID, tripID uuid.UUID) ([]domain.ExportRow, error) {
	return m.export(ctx, userID, tripID)
}
func (m *mockPackingServicer) DayView(ctx context.Context, userID, tripID uuid.UUID, day int) (domain.DayView, error) {
	return m.dayView(ctx, userID, tripID, day)
}
func (m *mockPackingServicer) TripDays(ctx context.Context, userID, tripID uuid.UUID) ([]domain.DayView, error) {
	return m.tripDays(ctx, userID, tripID)
}
func (m *mockPackingServicer) DeleteDay(ctx context.Context, userID, tripID uuid.UUID, day int) (domain.Trip, error) {
	return m.deleteDay(ctx, userID, tripID, day)
}
func (m *mockPackingServicer) AttachEvent(ctx context.Context, userID, eventID, tripID uuid.UUID, day int) (service.Attached, error) {
	return m.attachEvent(ctx, userID, eventID, tripID, day)
}
func (m *mockPackingServicer) AvailableDays(ctx context.Context, userID, eventID, tripID uuid.UUID) ([]int, error) {
	return m.availableDays(ctx, userID, eventID, tripID)
}
func (m *mockPackingServicer) DetachEvent(ctx context.Context, userID, tripID, instanceID uuid.UUID) error {
	return m.detachEvent(ctx, userID, tripID, instanceID)
}
func (m *mockPackingServicer) ListInstances(ctx context.Context, userID, tripID uuid.UUID) ([]domain.EventInstance, error) {
	return m.listInstances(ctx, userID, tripID)
}

type mockEventServicer struct {
	list    func(ctx context.Context, userID uuid.UUID) ([]domain.Event, error)
	getByID func(ctx context.Context, userID, id uuid.UUID) (domain.Event, error)
	create  func(ctx context.Context, event domain.Event, attach *domain.Attachment) (domain.Event, error)
	update  func(ctx context.Context, event domain.Event) (domain.Event, error)
	delete  func(ctx context.Context, userID, id uuid.UUID) error
}

func (m *mockEventServicer) List(ctx context.Context, userID uuid.UUID) ([]domain.Event, error) {
	return m.list(ctx, userID)
}
func (m *mockEventServicer) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Event, error) {
	return m.getByID(ctx, userID, id)
}
func (m *mockEventServicer) Create(ctx context.Context, e domain.Event, attach *domain.Attachment) (domain.Event, error) {
	return m.create(ctx, e, attach)
}
func (m *mockEventServicer) Update(ctx context.Context, e domain.Event) (domain.Event, error) {
	return m.update(ctx, e)
}
func (m *mockEventServicer) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.delete(ctx, userID, id)
}

type mockBagServicer struct {
	list       func(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Bag, error)
	create     func(ctx context.Context, userID, tripID uuid.UUID, name string) (domain.Bag, error)
	delete     func(ctx context.Context, userID, tripID, bagID uuid.UUID) error
	addItem    func(ctx context.Context, userID, tripID, bagID uuid.UUID, name string, category domain.Category) (domain.BagItem, error)
	toggleItem func(ctx context.Context, userID, tripID, bagID, itemID uuid.UUID) (domain.BagItem, error)
	deleteItem func(ctx context.Context, userID, tripID, bagID, itemID uuid.UUID) error
}

func (m *mockBagServicer) List(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Bag, error) {
	return m.list(ctx, userID, tripID)
}
func (m *mockBagServicer) Create(ctx context.Context, userID, tripID uuid.UUID, name string) (domain.Bag, error) {
	return m.create(ctx, userID, tripID, name)
}
func (m *mockBagServicer) Delete(ctx context.Context, userID, tripID, bagID uuid.UUID) error {
	return m.delete(ctx, userID, tripID, bagID)
}
func (m *mockBagServicer) AddItem(ctx context.Context, userID, tripID, bagID uuid.UUID, name string, category domain.Category) (domain.BagItem, error) {
	return m.addItem(ctx, userID, tripID, bagID, name, category)
}
func (m *mockBagServicer) ToggleItem(ctx context.Context, userID, tripID, bagID, itemID uuid.UUID) (domain.BagItem, error) {
	return m.toggleItem(ctx, userID, tripID, bagID, itemID)
}
func (m *mockBagServicer) DeleteItem(ctx context.Context, userID, tripID, bagID, itemID uuid.UUID) error {
	return m.deleteItem(ctx, userID, tripID, bagID, itemID)
}

type mockSummaryServicer struct {
	summarize func(ctx context.Context, userID, tripID uuid.UUID) (domain.TripSummary, error)
}

func (m *mockSummaryServicer) Summarize(ctx context.Context, userID, tripID uuid.UUID) (domain.TripSummary, error) {
	return m.summarize(ctx, userID, tripID)
}

type mockAuthServicer struct {
	signUp               func(ctx context.Context, in service.SignUpInput) (service.AuthResult, error)
	signIn               func(ctx context.Context, email, password string) (service.AuthResult, error)
	resolve              func(ctx context.Context, token string) (auth.Session, error)
	signOut              func(ctx context.Context, sessionID uuid.UUID) error
	resetPassword        func(ctx context.Context, email string) error
	confirmPasswordReset func(ctx context.Context, token, newPassword string) error
	updateProfile        func(ctx context.Context, userID uuid.UUID, displayName string) (domain.User, error)
	updateEmail          func(ctx context.Context, userID uuid.UUID, email string) (domain.User, error)
	updatePassword       func(ctx context.Context, userID uuid.UUID, newPassword, confirm string) error
}

func (m *mockAuthServicer) SignUp(ctx context.Context, in service.SignUpInput) (service.AuthResult, error) {
	return m.signUp(ctx, in)
}
func (m *mockAuthServicer) SignIn(ctx context.Context, email, password string) (service.AuthResult, error) {
	return m.signIn(ctx, email, password)
}
func (m *mockAuthServicer) Resolve(ctx context.Context, token string) (auth.Session, error) {
	return m.resolve(ctx, token)
}
func (m *mockAuthServicer) SignOut(ctx context.Context, sessionID uuid.UUID) error {
	return m.signOut(ctx, sessionID)
}
func (m *mockAuthServicer) ResetPassword(ctx context.Context, email string) error {
	return m.resetPassword(ctx, email)
}
func (m *mockAuthServicer) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	return m.confirmPasswordReset(ctx, token, newPassword)
}
func (m *mockAuthServicer) UpdateProfile(ctx context.Context, userID uuid.UUID, displayName string) (domain.User, error) {
	return m.updateProfile(ctx, userID, displayName)
}
func (m *mockAuthServicer) UpdateEmail(ctx context.Context, userID uuid.UUID, email string) (domain.User, error) {
	return m.updateEmail(ctx, userID, email)
}
func (m *mockAuthServicer) UpdatePassword(ctx context.Context, userID uuid.UUID, newPassword, confirm string) error {
	return m.updatePassword(ctx, userID, newPassword, confirm)
}

type mockChanges struct {
	subscribe func(tripID uuid.UUID) (<-chan notify.Change, func())
}

func (m *mockChanges) Subscribe(tripID uuid.UUID) (<-chan notify.Change, func()) {
	return m.subscribe(tripID)
}

// compile-time checks: every mock must satisfy its handler interface.
var (
	_ handler.TripServicer     = (*mockTripServicer)(nil)
	_ handler.PackingServicer  = (*mockPackingServicer)(nil)
	_ handler.EventServicer    = (*mockEventServicer)(nil)
	_ handler.BagServicer      = (*mockBagServicer)(nil)
	_ handler.SummaryServicer  = (*mockSummaryServicer)(nil)
	_ handler.AuthServicer     = (*mockAuthServicer)(nil)
	_ handler.ChangeSubscriber = (*mockChanges)(nil)
	_ handler.ChangeSubscriber = (*notify.Hub)(nil)
	_ handler.AuthServicer     = (*service.AuthService)(nil)
	_ handler.TripServicer     = (*service.TripService)(nil)
	_ handler.PackingServicer  = (*service.PackingService)(nil)
	_ handler.EventServicer    = (*service.EventService)(nil)
	_ handler.BagServicer      = (*service.BagService)(nil)
	_ handler.SummaryServicer  = (*service.SummaryService)(nil)
)

// ---- helpers ---------------------------------------------------------------

const testToken = "test-token"

var (
	testUser    = domain.User{ID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), Email: "ana@example.com", DisplayName: "Ana"}
	testSession = auth.Session{ID: uuid.MustParse("22222222-2222-2222-2222-222222222222"), User: testUser}
)

// acceptTestToken resolves testToken to testSession and rejects anything else.
func acceptTestToken(_ context.Context, token string) (auth.Session, error) {
	if token != testToken {
		return auth.Session{}, domain.ErrUnauthorized
	}
	return testSession, nil
}

// newHTTPHandler wires a Server with the given mocks into the real router,
// mirroring how main.go wires it in production. Without an Auth mock the
// bearer middleware accepts testToken.
func newHTTPHandler(svc handler.Services) http.Handler {
	if svc.Auth == nil {
		svc.Auth = &mockAuthServicer{resolve: acceptTestToken}
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return handler.NewRouter(handler.NewServer(svc, logger), handler.RouterConfig{
		Logger:       logger,
		MaxBodyBytes: 1 << 20,
	})
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

// do sends an authenticated request through h and returns the recorder.
func do(h http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+testToken)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) api.ErrorDetail {
	t.Helper()
	return decodeBody[api.ErrorResponse](t, rec).Error
}

// mustField returns one top-level field of a JSON object body.
func mustField(t *testing.T, body []byte, key string) json.RawMessage {
	t.Helper()
	var obj map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &obj))
	v, ok := obj[key]
	require.True(t, ok, "field %q missing", key)
	return v
}
