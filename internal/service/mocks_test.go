package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/packrat/internal/domain"
	"github.com/pkordes/packrat/internal/repo"
)

// Hand-written test doubles for the repo interfaces.
// Each method is a function field; set only the ones your test needs.
// Calling an unset method panics, which flags an unexpected repo call.

type mockTripRepo struct {
	create            func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID           func(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error)
	getForUpdate      func(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error)
	listPaged         func(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)
	update            func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	adjustPackingDays func(ctx context.Context, id uuid.UUID, delta int) (domain.Trip, error)
	maxUsedDay        func(ctx context.Context, id uuid.UUID) (int, error)
	delete            func(ctx context.Context, userID, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, userID, id)
}
func (m *mockTripRepo) GetForUpdate(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error) {
	if m.getForUpdate == nil {
		return m.getByID(ctx, userID, id)
	}
	return m.getForUpdate(ctx, userID, id)
}
func (m *mockTripRepo) ListPaged(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, userID, p)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) AdjustPackingDays(ctx context.Context, id uuid.UUID, delta int) (domain.Trip, error) {
	return m.adjustPackingDays(ctx, id, delta)
}
func (m *mockTripRepo) MaxUsedDay(ctx context.Context, id uuid.UUID) (int, error) {
	return m.maxUsedDay(ctx, id)
}
func (m *mockTripRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.delete(ctx, userID, id)
}

type mockEventRepo struct {
	list        func(ctx context.Context, userID uuid.UUID) ([]domain.Event, error)
	getByID     func(ctx context.Context, userID, id uuid.UUID) (domain.Event, error)
	create      func(ctx context.Context, event domain.Event) (domain.Event, error)
	update      func(ctx context.Context, event domain.Event) (domain.Event, error)
	delete      func(ctx context.Context, userID, id uuid.UUID) error
	listItems   func(ctx context.Context, eventID uuid.UUID) ([]domain.EventItem, error)
	insertItems func(ctx context.Context, eventID uuid.UUID, items []domain.EventItem) ([]domain.EventItem, error)
	updateItems func(ctx context.Context, eventID uuid.UUID, items []domain.EventItem) error
	deleteItems func(ctx context.Context, eventID uuid.UUID, ids []uuid.UUID) error
}

func (m *mockEventRepo) List(ctx context.Context, userID uuid.UUID) ([]domain.Event, error) {
	return m.list(ctx, userID)
}
func (m *mockEventRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Event, error) {
	return m.getByID(ctx, userID, id)
}
func (m *mockEventRepo) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	return m.create(ctx, event)
}
func (m *mockEventRepo) Update(ctx context.Context, event domain.Event) (domain.Event, error) {
	return m.update(ctx, event)
}
func (m *mockEventRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.delete(ctx, userID, id)
}
func (m *mockEventRepo) ListItems(ctx context.Context, eventID uuid.UUID) ([]domain.EventItem, error) {
	return m.listItems(ctx, eventID)
}
func (m *mockEventRepo) InsertItems(ctx context.Context, eventID uuid.UUID, items []domain.EventItem) ([]domain.EventItem, error) {
	return m.insertItems(ctx, eventID, items)
}
func (m *mockEventRepo) UpdateItems(ctx context.Context, eventID uuid.UUID, items []domain.EventItem) error {
	return m.updateItems(ctx, eventID, items)
}
func (m *mockEventRepo) DeleteItems(ctx context.Context, eventID uuid.UUID, ids []uuid.UUID) error {
	return m.deleteItems(ctx, eventID, ids)
}

type mockInstanceRepo struct {
	create         func(ctx context.Context, inst domain.EventInstance) (domain.EventInstance, error)
	getByID        func(ctx context.Context, tripID, id uuid.UUID) (domain.EventInstance, error)
	listByTrip     func(ctx context.Context, tripID uuid.UUID) ([]domain.EventInstance, error)
	templates      func(ctx context.Context, tripID uuid.UUID, day int) ([]domain.InstanceTemplate, error)
	daysForEvent   func(ctx context.Context, tripID, eventID uuid.UUID) ([]int, error)
	delete         func(ctx context.Context, tripID, id uuid.UUID) error
	deleteByDay    func(ctx context.Context, tripID uuid.UUID, day int) (int64, error)
	shiftDaysAfter func(ctx context.Context, tripID uuid.UUID, day int) (int64, error)
}

func (m *mockInstanceRepo) Create(ctx context.Context, inst domain.EventInstance) (domain.EventInstance, error) {
	return m.create(ctx, inst)
}
func (m *mockInstanceRepo) GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.EventInstance, error) {
	return m.getByID(ctx, tripID, id)
}
func (m *mockInstanceRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.EventInstance, error) {
	return m.listByTrip(ctx, tripID)
}
func (m *mockInstanceRepo) Templates(ctx context.Context, tripID uuid.UUID, day int) ([]domain.InstanceTemplate, error) {
	return m.templates(ctx, tripID, day)
}
func (m *mockInstanceRepo) DaysForEvent(ctx context.Context, tripID, eventID uuid.UUID) ([]int, error) {
	return m.daysForEvent(ctx, tripID, eventID)
}
func (m *mockInstanceRepo) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	return m.delete(ctx, tripID, id)
}
func (m *mockInstanceRepo) DeleteByDay(ctx context.Context, tripID uuid.UUID, day int) (int64, error) {
	return m.deleteByDay(ctx, tripID, day)
}
func (m *mockInstanceRepo) ShiftDaysAfter(ctx context.Context, tripID uuid.UUID, day int) (int64, error) {
	return m.shiftDaysAfter(ctx, tripID, day)
}

type mockItemRepo struct {
	list             func(ctx context.Context, tripID uuid.UUID, day *int) ([]domain.PackingItem, error)
	getByID          func(ctx context.Context, tripID, id uuid.UUID) (domain.PackingItem, error)
	create           func(ctx context.Context, item domain.PackingItem) (domain.PackingItem, error)
	createBatch      func(ctx context.Context, items []domain.PackingItem) ([]domain.PackingItem, error)
	update           func(ctx context.Context, item domain.PackingItem) (domain.PackingItem, error)
	delete           func(ctx context.Context, tripID, id uuid.UUID) error
	setPackedByName  func(ctx context.Context, tripID uuid.UUID, name string, packed bool) (int64, error)
	deleteByInstance func(ctx context.Context, tripID, instanceID uuid.UUID) (int64, error)
	deleteByDay      func(ctx context.Context, tripID uuid.UUID, day int) (int64, error)
	shiftDaysAfter   func(ctx context.Context, tripID uuid.UUID, day int) (int64, error)
	exportRows       func(ctx context.Context, tripID uuid.UUID) ([]domain.ExportRow, error)
}

func (m *mockItemRepo) List(ctx context.Context, tripID uuid.UUID, day *int) ([]domain.PackingItem, error) {
	return m.list(ctx, tripID, day)
}
func (m *mockItemRepo) GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.PackingItem, error) {
	return m.getByID(ctx, tripID, id)
}
func (m *mockItemRepo) Create(ctx context.Context, item domain.PackingItem) (domain.PackingItem, error) {
	return m.create(ctx, item)
}
func (m *mockItemRepo) CreateBatch(ctx context.Context, items []domain.PackingItem) ([]domain.PackingItem, error) {
	return m.createBatch(ctx, items)
}
func (m *mockItemRepo) Update(ctx context.Context, item domain.PackingItem) (domain.PackingItem, error) {
	return m.update(ctx, item)
}
func (m *mockItemRepo) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	return m.delete(ctx, tripID, id)
}
func (m *mockItemRepo) SetPackedByName(ctx context.Context, tripID uuid.UUID, name string, packed bool) (int64, error) {
	return m.setPackedByName(ctx, tripID, name, packed)
}
func (m *mockItemRepo) DeleteByInstance(ctx context.Context, tripID, instanceID uuid.UUID) (int64, error) {
	return m.deleteByInstance(ctx, tripID, instanceID)
}
func (m *mockItemRepo) DeleteByDay(ctx context.Context, tripID uuid.UUID, day int) (int64, error) {
	return m.deleteByDay(ctx, tripID, day)
}
func (m *mockItemRepo) ShiftDaysAfter(ctx context.Context, tripID uuid.UUID, day int) (int64, error) {
	return m.shiftDaysAfter(ctx, tripID, day)
}
func (m *mockItemRepo) ExportRows(ctx context.Context, tripID uuid.UUID) ([]domain.ExportRow, error) {
	return m.exportRows(ctx, tripID)
}

type mockBagRepo struct {
	list       func(ctx context.Context, tripID uuid.UUID) ([]domain.Bag, error)
	getByID    func(ctx context.Context, tripID, id uuid.UUID) (domain.Bag, error)
	create     func(ctx context.Context, bag domain.Bag) (domain.Bag, error)
	delete     func(ctx context.Context, tripID, id uuid.UUID) error
	addItem    func(ctx context.Context, item domain.BagItem) (domain.BagItem, error)
	toggleItem func(ctx context.Context, bagID, itemID uuid.UUID) (domain.BagItem, error)
	deleteItem func(ctx context.Context, bagID, itemID uuid.UUID) error
}

func (m *mockBagRepo) List(ctx context.Context, tripID uuid.UUID) ([]domain.Bag, error) {
	return m.list(ctx, tripID)
}
func (m *mockBagRepo) GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Bag, error) {
	return m.getByID(ctx, tripID, id)
}
func (m *mockBagRepo) Create(ctx context.Context, bag domain.Bag) (domain.Bag, error) {
	return m.create(ctx, bag)
}
func (m *mockBagRepo) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	return m.delete(ctx, tripID, id)
}
func (m *mockBagRepo) AddItem(ctx context.Context, item domain.BagItem) (domain.BagItem, error) {
	return m.addItem(ctx, item)
}
func (m *mockBagRepo) ToggleItem(ctx context.Context, bagID, itemID uuid.UUID) (domain.BagItem, error) {
	return m.toggleItem(ctx, bagID, itemID)
}
func (m *mockBagRepo) DeleteItem(ctx context.Context, bagID, itemID uuid.UUID) error {
	return m.deleteItem(ctx, bagID, itemID)
}

type mockUserRepo struct {
	create         func(ctx context.Context, user domain.User) (domain.User, error)
	getByID        func(ctx context.Context, id uuid.UUID) (domain.User, error)
	getByEmail     func(ctx context.Context, email string) (domain.User, error)
	updateProfile  func(ctx context.Context, user domain.User) (domain.User, error)
	updatePassword func(ctx context.Context, id uuid.UUID, hash string) error
}

func (m *mockUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	return m.create(ctx, user)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, id)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return m.getByEmail(ctx, email)
}
func (m *mockUserRepo) UpdateProfile(ctx context.Context, user domain.User) (domain.User, error) {
	return m.updateProfile(ctx, user)
}
func (m *mockUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	return m.updatePassword(ctx, id, hash)
}

type mockSessionRepo struct {
	create       func(ctx context.Context, userID uuid.UUID, expiresAt time.Time) (domain.Session, error)
	getByID      func(ctx context.Context, id uuid.UUID) (domain.Session, error)
	delete       func(ctx context.Context, id uuid.UUID) error
	deleteByUser func(ctx context.Context, userID uuid.UUID) error
	createReset  func(ctx context.Context, reset domain.PasswordReset) error
	consumeReset func(ctx context.Context, tokenHash string) (domain.PasswordReset, error)
}

func (m *mockSessionRepo) Create(ctx context.Context, userID uuid.UUID, expiresAt time.Time) (domain.Session, error) {
	return m.create(ctx, userID, expiresAt)
}
func (m *mockSessionRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Session, error) {
	return m.getByID(ctx, id)
}
func (m *mockSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockSessionRepo) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return m.deleteByUser(ctx, userID)
}
func (m *mockSessionRepo) CreateReset(ctx context.Context, reset domain.PasswordReset) error {
	return m.createReset(ctx, reset)
}
func (m *mockSessionRepo) ConsumeReset(ctx context.Context, tokenHash string) (domain.PasswordReset, error) {
	return m.consumeReset(ctx, tokenHash)
}

// passThroughTx runs fn directly against a fixed set of repos. It records
// whether the last call committed, which lets tests check rollback paths.
type passThroughTx struct {
	repos     repo.Repos
	calls     int
	committed bool
}

func (m *passThroughTx) WithinTx(_ context.Context, fn func(repo.Repos) error) error {
	m.calls++
	err := fn(m.repos)
	m.committed = err == nil
	return err
}

// compile-time checks: every mock must satisfy its interface.
var (
	_ repo.TripRepo          = (*mockTripRepo)(nil)
	_ repo.EventRepo         = (*mockEventRepo)(nil)
	_ repo.EventInstanceRepo = (*mockInstanceRepo)(nil)
	_ repo.PackingItemRepo   = (*mockItemRepo)(nil)
	_ repo.BagRepo           = (*mockBagRepo)(nil)
	_ repo.UserRepo          = (*mockUserRepo)(nil)
	_ repo.SessionRepo       = (*mockSessionRepo)(nil)
	_ repo.TxManager         = (*passThroughTx)(nil)
)
