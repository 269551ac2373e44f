package handler_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/packrat/internal/domain"
	"github.com/pkordes/packrat/internal/handler"
	"github.com/pkordes/packrat/internal/handler/api"
)

func eventHandler(svc *mockEventServicer) http.Handler {
	return newHTTPHandler(handler.Services{Events: svc})
}

func eventFixture() domain.Event {
	return domain.Event{
		ID:     uuid.New(),
		UserID: testUser.ID,
		Name:   "beach day",
		Items: []domain.EventItem{
			{ID: uuid.New(), Name: "Towel", Category: domain.CategoryTravel, Quantity: 1},
			{ID: uuid.New(), Name: "Sunscreen", Category: domain.CategoryToiletries, Quantity: 1},
		},
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

func TestListEvents(t *testing.T) {
	svc := &mockEventServicer{
		list: func(_ context.Context, userID uuid.UUID) ([]domain.Event, error) {
			assert.Equal(t, testUser.ID, userID)
			return []domain.Event{eventFixture()}, nil
		},
	}

	rec := do(eventHandler(svc), http.MethodGet, "/events", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	events := decodeBody[[]api.Event](t, rec)
	require.Len(t, events, 1)
	require.Len(t, events[0].Items, 2)
	assert.NotNil(t, events[0].Items[0].Id)
}

func TestCreateEvent_WithAttachment(t *testing.T) {
	tripID := uuid.New()
	var gotAttach *domain.Attachment
	var got domain.Event
	svc := &mockEventServicer{
		create: func(_ context.Context, e domain.Event, attach *domain.Attachment) (domain.Event, error) {
			got, gotAttach = e, attach
			e.ID = uuid.New()
			return e, nil
		},
	}

	rec := do(eventHandler(svc), http.MethodPost, "/events", jsonBody(t, map[string]any{
		"name":      "Beach Day",
		"items":     []map[string]any{{"name": "Towel", "category": "Travel"}, {"name": "Hat"}},
		"attach_to": map[string]any{"trip_id": tripID, "day": 2},
	}))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, testUser.ID, got.UserID)
	require.Len(t, got.Items, 2)
	assert.Equal(t, domain.CategoryTravel, got.Items[0].Category)
	require.NotNil(t, gotAttach)
	assert.Equal(t, domain.Attachment{TripID: tripID, Day: 2}, *gotAttach)
}

func TestCreateEvent_WithoutAttachment(t *testing.T) {
	svc := &mockEventServicer{
		create: func(_ context.Context, e domain.Event, attach *domain.Attachment) (domain.Event, error) {
			assert.Nil(t, attach)
			return e, nil
		},
	}

	rec := do(eventHandler(svc), http.MethodPost, "/events", jsonBody(t, map[string]any{"name": "hike"}))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, "[]", string(mustField(t, rec.Body.Bytes(), "items")))
}

func TestCreateEvent_422_ItemWithoutName(t *testing.T) {
	rec := do(eventHandler(&mockEventServicer{}), http.MethodPost, "/events", jsonBody(t, map[string]any{
		"name": "hike", "items": []map[string]any{{"quantity": 2}},
	}))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "name is required", errorCode(t, rec).Message)
}

func TestUpdateEvent_PassesItemIDs(t *testing.T) {
	fixture := eventFixture()
	keep := fixture.Items[0].ID
	svc := &mockEventServicer{
		update: func(_ context.Context, e domain.Event) (domain.Event, error) {
			assert.Equal(t, fixture.ID, e.ID)
			require.Len(t, e.Items, 2)
			assert.Equal(t, keep, e.Items[0].ID)
			assert.Equal(t, uuid.Nil, e.Items[1].ID, "new items carry no id")
			return e, nil
		},
	}

	rec := do(eventHandler(svc), http.MethodPut, "/events/"+fixture.ID.String(), jsonBody(t, map[string]any{
		"name":  "beach day",
		"items": []map[string]any{{"id": keep, "name": "Towel"}, {"name": "Umbrella"}},
	}))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateEvent_422_AttachToRejected(t *testing.T) {
	rec := do(eventHandler(&mockEventServicer{}), http.MethodPut, "/events/"+uuid.NewString(), jsonBody(t, map[string]any{
		"name": "x", "attach_to": map[string]any{"trip_id": uuid.New(), "day": 1},
	}))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestGetEvent_404(t *testing.T) {
	svc := &mockEventServicer{
		getByID: func(_ context.Context, _, _ uuid.UUID) (domain.Event, error) { return domain.Event{}, domain.ErrNotFound },
	}

	rec := do(eventHandler(svc), http.MethodGet, "/events/"+uuid.NewString(), nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "event not found", errorCode(t, rec).Message)
}

func TestDeleteEvent_204(t *testing.T) {
	svc := &mockEventServicer{delete: func(_ context.Context, _, _ uuid.UUID) error { return nil }}

	rec := do(eventHandler(svc), http.MethodDelete, "/events/"+uuid.NewString(), nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
