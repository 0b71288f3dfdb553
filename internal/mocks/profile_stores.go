package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/vetician/vetician-api/internal/domain"
	"github.com/vetician/vetician-api/internal/store"
)

// MockParentStore implements store.ParentStore for testing.
type MockParentStore struct {
	CreateFn         func(ctx context.Context, parent *domain.Parent) error
	GetByUserIDFn    func(ctx context.Context, userID uuid.UUID) (*domain.Parent, error)
	UpdateFn         func(ctx context.Context, parent *domain.Parent) error
	DeleteByUserIDFn func(ctx context.Context, userID uuid.UUID) error

	Parents map[uuid.UUID]*domain.Parent
}

var _ store.ParentStore = (*MockParentStore)(nil)

func NewMockParentStore() *MockParentStore {
	return &MockParentStore{Parents: make(map[uuid.UUID]*domain.Parent)}
}

func (m *MockParentStore) Create(ctx context.Context, parent *domain.Parent) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, parent)
	}
	m.Parents[parent.UserID] = parent
	return nil
}

func (m *MockParentStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Parent, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}
	parent, ok := m.Parents[userID]
	if !ok {
		return nil, store.ErrParentNotFound
	}
	return parent, nil
}

func (m *MockParentStore) Update(ctx context.Context, parent *domain.Parent) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, parent)
	}
	if _, ok := m.Parents[parent.UserID]; !ok {
		return store.ErrParentNotFound
	}
	m.Parents[parent.UserID] = parent
	return nil
}

func (m *MockParentStore) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	if m.DeleteByUserIDFn != nil {
		return m.DeleteByUserIDFn(ctx, userID)
	}
	delete(m.Parents, userID)
	return nil
}

func (m *MockParentStore) WithTx(tx *sql.Tx) store.ParentStore { return m }

// MockPetStore implements store.PetStore for testing.
type MockPetStore struct {
	CreateFn         func(ctx context.Context, pet *domain.Pet) error
	GetByIDFn        func(ctx context.Context, id uuid.UUID) (*domain.Pet, error)
	ListByUserFn     func(ctx context.Context, userID uuid.UUID) ([]*domain.Pet, error)
	UpdateFn         func(ctx context.Context, pet *domain.Pet) error
	DeleteFn         func(ctx context.Context, id uuid.UUID) error
	DeleteByUserIDFn func(ctx context.Context, userID uuid.UUID) error

	Pets map[uuid.UUID]*domain.Pet
}

var _ store.PetStore = (*MockPetStore)(nil)

func NewMockPetStore() *MockPetStore {
	return &MockPetStore{Pets: make(map[uuid.UUID]*domain.Pet)}
}

func (m *MockPetStore) Create(ctx context.Context, pet *domain.Pet) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, pet)
	}
	m.Pets[pet.ID] = pet
	return nil
}

func (m *MockPetStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Pet, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	pet, ok := m.Pets[id]
	if !ok {
		return nil, store.ErrPetNotFound
	}
	return pet, nil
}

func (m *MockPetStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Pet, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	pets := []*domain.Pet{}
	for _, pet := range m.Pets {
		if pet.UserID == userID {
			pets = append(pets, pet)
		}
	}
	return pets, nil
}

func (m *MockPetStore) Update(ctx context.Context, pet *domain.Pet) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, pet)
	}
	if _, ok := m.Pets[pet.ID]; !ok {
		return store.ErrPetNotFound
	}
	m.Pets[pet.ID] = pet
	return nil
}

func (m *MockPetStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	if _, ok := m.Pets[id]; !ok {
		return store.ErrPetNotFound
	}
	delete(m.Pets, id)
	return nil
}

func (m *MockPetStore) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	if m.DeleteByUserIDFn != nil {
		return m.DeleteByUserIDFn(ctx, userID)
	}
	for id, pet := range m.Pets {
		if pet.UserID == userID {
			delete(m.Pets, id)
		}
	}
	return nil
}

func (m *MockPetStore) WithTx(tx *sql.Tx) store.PetStore { return m }

// MockVeterinarianStore implements store.VeterinarianStore for testing.
type MockVeterinarianStore struct {
	CreateFn         func(ctx context.Context, vet *domain.Veterinarian) error
	GetByUserIDFn    func(ctx context.Context, userID uuid.UUID) (*domain.Veterinarian, error)
	UpdateFn         func(ctx context.Context, vet *domain.Veterinarian) error
	DeleteByUserIDFn func(ctx context.Context, userID uuid.UUID) error

	Vets map[uuid.UUID]*domain.Veterinarian
}

var _ store.VeterinarianStore = (*MockVeterinarianStore)(nil)

func NewMockVeterinarianStore() *MockVeterinarianStore {
	return &MockVeterinarianStore{Vets: make(map[uuid.UUID]*domain.Veterinarian)}
}

func (m *MockVeterinarianStore) Create(ctx context.Context, vet *domain.Veterinarian) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, vet)
	}
	if _, ok := m.Vets[vet.UserID]; ok {
		return store.ErrVetExists
	}
	m.Vets[vet.UserID] = vet
	return nil
}

func (m *MockVeterinarianStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Veterinarian, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}
	vet, ok := m.Vets[userID]
	if !ok {
		return nil, store.ErrVetNotFound
	}
	return vet, nil
}

func (m *MockVeterinarianStore) Update(ctx context.Context, vet *domain.Veterinarian) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, vet)
	}
	if _, ok := m.Vets[vet.UserID]; !ok {
		return store.ErrVetNotFound
	}
	m.Vets[vet.UserID] = vet
	return nil
}

func (m *MockVeterinarianStore) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	if m.DeleteByUserIDFn != nil {
		return m.DeleteByUserIDFn(ctx, userID)
	}
	delete(m.Vets, userID)
	return nil
}

func (m *MockVeterinarianStore) WithTx(tx *sql.Tx) store.VeterinarianStore { return m }

// MockClinicStore implements store.ClinicStore for testing.
type MockClinicStore struct {
	CreateFn         func(ctx context.Context, clinic *domain.Clinic) error
	GetByIDFn        func(ctx context.Context, id uuid.UUID) (*domain.Clinic, error)
	GetByUserIDFn    func(ctx context.Context, userID uuid.UUID) (*domain.Clinic, error)
	ListByVerifiedFn func(ctx context.Context, verified bool) ([]*domain.Clinic, error)
	UpdateFn         func(ctx context.Context, clinic *domain.Clinic) error
	DeleteByUserIDFn func(ctx context.Context, userID uuid.UUID) error

	Clinics map[uuid.UUID]*domain.Clinic
}

var _ store.ClinicStore = (*MockClinicStore)(nil)

func NewMockClinicStore() *MockClinicStore {
	return &MockClinicStore{Clinics: make(map[uuid.UUID]*domain.Clinic)}
}

func (m *MockClinicStore) Create(ctx context.Context, clinic *domain.Clinic) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, clinic)
	}
	for _, existing := range m.Clinics {
		if existing.UserID == clinic.UserID {
			return store.ErrClinicExists
		}
	}
	m.Clinics[clinic.ID] = clinic
	return nil
}

func (m *MockClinicStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Clinic, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	clinic, ok := m.Clinics[id]
	if !ok {
		return nil, store.ErrClinicNotFound
	}
	return clinic, nil
}

func (m *MockClinicStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Clinic, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}
	for _, clinic := range m.Clinics {
		if clinic.UserID == userID {
			return clinic, nil
		}
	}
	return nil, store.ErrClinicNotFound
}

func (m *MockClinicStore) ListByVerified(ctx context.Context, verified bool) ([]*domain.Clinic, error) {
	if m.ListByVerifiedFn != nil {
		return m.ListByVerifiedFn(ctx, verified)
	}
	clinics := []*domain.Clinic{}
	for _, clinic := range m.Clinics {
		if clinic.Verified == verified {
			clinics = append(clinics, clinic)
		}
	}
	return clinics, nil
}

func (m *MockClinicStore) Update(ctx context.Context, clinic *domain.Clinic) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, clinic)
	}
	if _, ok := m.Clinics[clinic.ID]; !ok {
		return store.ErrClinicNotFound
	}
	m.Clinics[clinic.ID] = clinic
	return nil
}

func (m *MockClinicStore) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	if m.DeleteByUserIDFn != nil {
		return m.DeleteByUserIDFn(ctx, userID)
	}
	for id, clinic := range m.Clinics {
		if clinic.UserID == userID {
			delete(m.Clinics, id)
		}
	}
	return nil
}

func (m *MockClinicStore) WithTx(tx *sql.Tx) store.ClinicStore { return m }

// MockPetResortStore implements store.PetResortStore for testing.
type MockPetResortStore struct {
	CreateFn         func(ctx context.Context, resort *domain.PetResort) error
	GetByIDFn        func(ctx context.Context, id uuid.UUID) (*domain.PetResort, error)
	GetByUserIDFn    func(ctx context.Context, userID uuid.UUID) (*domain.PetResort, error)
	ListFn           func(ctx context.Context, verifiedOnly bool) ([]*domain.PetResort, error)
	UpdateFn         func(ctx context.Context, resort *domain.PetResort) error
	DeleteByUserIDFn func(ctx context.Context, userID uuid.UUID) error

	Resorts map[uuid.UUID]*domain.PetResort
}

var _ store.PetResortStore = (*MockPetResortStore)(nil)

func NewMockPetResortStore() *MockPetResortStore {
	return &MockPetResortStore{Resorts: make(map[uuid.UUID]*domain.PetResort)}
}

func (m *MockPetResortStore) Create(ctx context.Context, resort *domain.PetResort) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, resort)
	}
	m.Resorts[resort.ID] = resort
	return nil
}

func (m *MockPetResortStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.PetResort, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	resort, ok := m.Resorts[id]
	if !ok {
		return nil, store.ErrResortNotFound
	}
	return resort, nil
}

func (m *MockPetResortStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.PetResort, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}
	for _, resort := range m.Resorts {
		if resort.UserID == userID {
			return resort, nil
		}
	}
	return nil, store.ErrResortNotFound
}

func (m *MockPetResortStore) List(ctx context.Context, verifiedOnly bool) ([]*domain.PetResort, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, verifiedOnly)
	}
	resorts := []*domain.PetResort{}
	for _, resort := range m.Resorts {
		if !verifiedOnly || resort.IsVerified {
			resorts = append(resorts, resort)
		}
	}
	return resorts, nil
}

func (m *MockPetResortStore) Update(ctx context.Context, resort *domain.PetResort) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, resort)
	}
	if _, ok := m.Resorts[resort.ID]; !ok {
		return store.ErrResortNotFound
	}
	m.Resorts[resort.ID] = resort
	return nil
}

func (m *MockPetResortStore) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	if m.DeleteByUserIDFn != nil {
		return m.DeleteByUserIDFn(ctx, userID)
	}
	for id, resort := range m.Resorts {
		if resort.UserID == userID {
			delete(m.Resorts, id)
		}
	}
	return nil
}

func (m *MockPetResortStore) WithTx(tx *sql.Tx) store.PetResortStore { return m }

// MockParavetStore implements store.ParavetStore for testing.
type MockParavetStore struct {
	CreateFn               func(ctx context.Context, profile *domain.ParavetProfile) error
	GetByUserIDFn          func(ctx context.Context, userID uuid.UUID) (*domain.ParavetProfile, error)
	GetByPhoneFn           func(ctx context.Context, phone string) (*domain.ParavetProfile, error)
	ListByApprovalStatusFn func(ctx context.Context, status domain.ApprovalStatus) ([]*domain.ParavetProfile, error)
	UpdateFn               func(ctx context.Context, profile *domain.ParavetProfile) error
	DeleteByUserIDFn       func(ctx context.Context, userID uuid.UUID) error

	Profiles map[uuid.UUID]*domain.ParavetProfile
}

var _ store.ParavetStore = (*MockParavetStore)(nil)

func NewMockParavetStore() *MockParavetStore {
	return &MockParavetStore{Profiles: make(map[uuid.UUID]*domain.ParavetProfile)}
}

func (m *MockParavetStore) Create(ctx context.Context, profile *domain.ParavetProfile) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, profile)
	}
	if _, ok := m.Profiles[profile.UserID]; ok {
		return store.ErrParavetExists
	}
	m.Profiles[profile.UserID] = profile
	return nil
}

func (m *MockParavetStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.ParavetProfile, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}
	profile, ok := m.Profiles[userID]
	if !ok {
		return nil, store.ErrParavetNotFound
	}
	return profile, nil
}

func (m *MockParavetStore) GetByPhone(ctx context.Context, phone string) (*domain.ParavetProfile, error) {
	if m.GetByPhoneFn != nil {
		return m.GetByPhoneFn(ctx, phone)
	}
	for _, profile := range m.Profiles {
		if profile.PersonalInfo.MobileNumber.Value == phone {
			return profile, nil
		}
	}
	return nil, store.ErrParavetNotFound
}

func (m *MockParavetStore) ListByApprovalStatus(ctx context.Context, status domain.ApprovalStatus) ([]*domain.ParavetProfile, error) {
	if m.ListByApprovalStatusFn != nil {
		return m.ListByApprovalStatusFn(ctx, status)
	}
	profiles := []*domain.ParavetProfile{}
	for _, profile := range m.Profiles {
		if profile.ApprovalStatus == status {
			profiles = append(profiles, profile)
		}
	}
	return profiles, nil
}

func (m *MockParavetStore) Update(ctx context.Context, profile *domain.ParavetProfile) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, profile)
	}
	if _, ok := m.Profiles[profile.UserID]; !ok {
		return store.ErrParavetNotFound
	}
	m.Profiles[profile.UserID] = profile
	return nil
}

func (m *MockParavetStore) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	if m.DeleteByUserIDFn != nil {
		return m.DeleteByUserIDFn(ctx, userID)
	}
	delete(m.Profiles, userID)
	return nil
}

func (m *MockParavetStore) WithTx(tx *sql.Tx) store.ParavetStore { return m }
