package booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vetician/vetician-api/internal/domain"
	"github.com/vetician/vetician-api/internal/mocks"
)

type bookingFixture struct {
	appointments *mocks.MockAppointmentStore
	doorstep     *mocks.MockDoorstepStore
	clinics      *mocks.MockClinicStore
	vets         *mocks.MockVeterinarianStore
	service      *Service
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()
	f := &bookingFixture{
		appointments: mocks.NewMockAppointmentStore(),
		doorstep:     mocks.NewMockDoorstepStore(),
		clinics:      mocks.NewMockClinicStore(),
		vets:         mocks.NewMockVeterinarianStore(),
	}
	f.service = NewService(f.appointments, f.doorstep, f.clinics, f.vets, nil)
	return f
}

func (f *bookingFixture) seedClinic(t *testing.T) *domain.Clinic {
	t.Helper()
	clinic, err := domain.NewClinic(uuid.New(), "Happy Paws Clinic", "Pune",
		"Aundh", "14 DP Road", "clinic", 500, nil)
	require.NoError(t, err)
	f.clinics.Clinics[clinic.ID] = clinic
	return clinic
}

func (f *bookingFixture) seedVet(t *testing.T) *domain.Veterinarian {
	t.Helper()
	vet := domain.NewVeterinarian(uuid.New(), domain.VeterinarianInput{
		Name:               "Dr. Rao",
		City:               "Pune",
		RegistrationNumber: "MH-1234",
	})
	f.vets.Vets[vet.UserID] = vet
	return vet
}

func doorstepInput() DoorstepInput {
	return DoorstepInput{
		ServiceType:     "grooming",
		AppointmentDate: time.Now().Add(24 * time.Hour),
		TimeSlot:        "10:00-11:00",
		Address: domain.BookingAddress{
			Line1:   "12 MG Road",
			City:    "Pune",
			Pincode: "411001",
		},
		PaymentMethod: "upi",
		BasePrice:     799,
		TotalAmount:   799,
		PaymentStatus: "pending",
	}
}

func TestCreateAppointmentUnknownClinic(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.service.CreateAppointment(context.Background(), uuid.New(), AppointmentInput{
		ClinicID: uuid.New(),
		Date:     time.Now().Add(24 * time.Hour),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.appointments.Appointments)
}

func TestCreateAppointmentUnknownVeterinarian(t *testing.T) {
	f := newBookingFixture(t)
	clinic := f.seedClinic(t)

	_, err := f.service.CreateAppointment(context.Background(), uuid.New(), AppointmentInput{
		ClinicID:       clinic.ID,
		VeterinarianID: uuid.New(),
		Date:           time.Now().Add(24 * time.Hour),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateAppointmentRequiresDate(t *testing.T) {
	f := newBookingFixture(t)
	clinic := f.seedClinic(t)

	_, err := f.service.CreateAppointment(context.Background(), uuid.New(), AppointmentInput{
		ClinicID: clinic.ID,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateAppointmentDenormalizesNames(t *testing.T) {
	f := newBookingFixture(t)
	clinic := f.seedClinic(t)
	vet := f.seedVet(t)
	userID := uuid.New()

	detail, err := f.service.CreateAppointment(context.Background(), userID, AppointmentInput{
		ClinicID:       clinic.ID,
		VeterinarianID: vet.UserID,
		PetName:        "Bruno",
		PetType:        "dog",
		Breed:          "labrador",
		Illness:        "limping",
		Date:           time.Now().Add(24 * time.Hour),
		BookingType:    "consultation",
		ContactInfo:    "9876543210",
	})
	require.NoError(t, err)

	assert.Equal(t, "Happy Paws Clinic", detail.ClinicName)
	assert.Equal(t, "Pune", detail.ClinicCity)
	assert.Equal(t, "Dr. Rao", detail.VeterinarianName)
	assert.Equal(t, domain.AppointmentPending, detail.Appointment.Status)
	assert.Equal(t, "Bruno", detail.Appointment.PetName)
	assert.Contains(t, f.appointments.Appointments, detail.Appointment.ID)
}

func TestCreateAppointmentVeterinarianIsOptional(t *testing.T) {
	f := newBookingFixture(t)
	clinic := f.seedClinic(t)

	detail, err := f.service.CreateAppointment(context.Background(), uuid.New(), AppointmentInput{
		ClinicID: clinic.ID,
		Date:     time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)
	assert.Empty(t, detail.VeterinarianName)
}

func TestListAppointmentsByUser(t *testing.T) {
	f := newBookingFixture(t)
	clinic := f.seedClinic(t)
	userID := uuid.New()

	for i := 0; i < 2; i++ {
		_, err := f.service.CreateAppointment(context.Background(), userID, AppointmentInput{
			ClinicID: clinic.ID,
			Date:     time.Now().Add(time.Duration(i+1) * 24 * time.Hour),
		})
		require.NoError(t, err)
	}
	_, err := f.service.CreateAppointment(context.Background(), uuid.New(), AppointmentInput{
		ClinicID: clinic.ID,
		Date:     time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)

	appts, err := f.service.ListAppointmentsByUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, appts, 2)

	byClinic, err := f.service.ListAppointmentsByClinic(context.Background(), clinic.ID)
	require.NoError(t, err)
	assert.Len(t, byClinic, 3)
}

func TestCreateDoorstepBookingStoresPricingAsSupplied(t *testing.T) {
	f := newBookingFixture(t)
	userID := uuid.New()

	in := doorstepInput()
	in.IsEmergency = true
	in.EmergencyCharge = 200
	in.TotalAmount = 999

	booking, err := f.service.CreateDoorstepBooking(context.Background(), userID, in)
	require.NoError(t, err)

	assert.Equal(t, domain.BookingPending, booking.Status)
	assert.Equal(t, userID, booking.UserID)
	assert.Equal(t, 200.0, booking.EmergencyCharge)
	assert.Equal(t, 999.0, booking.TotalAmount)
	assert.Equal(t, "411001", booking.Address.Pincode)
	assert.Contains(t, f.doorstep.Bookings, booking.ID)
}

func TestCreateDoorstepBookingValidation(t *testing.T) {
	f := newBookingFixture(t)

	in := doorstepInput()
	in.ServiceType = ""
	_, err := f.service.CreateDoorstepBooking(context.Background(), uuid.New(), in)
	assert.ErrorIs(t, err, domain.ErrValidation)

	in = doorstepInput()
	in.AppointmentDate = time.Time{}
	_, err = f.service.CreateDoorstepBooking(context.Background(), uuid.New(), in)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGetDoorstepBookingUnknownID(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.service.GetDoorstepBooking(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateDoorstepStatusTransitions(t *testing.T) {
	f := newBookingFixture(t)
	booking, err := f.service.CreateDoorstepBooking(context.Background(), uuid.New(), doorstepInput())
	require.NoError(t, err)

	updated, err := f.service.UpdateDoorstepStatus(context.Background(), booking.ID, domain.BookingConfirmed)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, updated.Status)
	assert.Equal(t, domain.BookingConfirmed, f.doorstep.Bookings[booking.ID].Status)
}

func TestUpdateDoorstepStatusRejectsUnknownStatus(t *testing.T) {
	f := newBookingFixture(t)
	booking, err := f.service.CreateDoorstepBooking(context.Background(), uuid.New(), doorstepInput())
	require.NoError(t, err)

	_, err = f.service.UpdateDoorstepStatus(context.Background(), booking.ID, domain.BookingStatus("shipped"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdateDoorstepStatusTerminalConflict(t *testing.T) {
	f := newBookingFixture(t)
	booking, err := f.service.CreateDoorstepBooking(context.Background(), uuid.New(), doorstepInput())
	require.NoError(t, err)

	for _, status := range []domain.BookingStatus{
		domain.BookingConfirmed, domain.BookingInProgress, domain.BookingCompleted,
	} {
		_, err = f.service.UpdateDoorstepStatus(context.Background(), booking.ID, status)
		require.NoError(t, err)
	}

	_, err = f.service.UpdateDoorstepStatus(context.Background(), booking.ID, domain.BookingPending)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCancelDoorstepBookingByOwner(t *testing.T) {
	f := newBookingFixture(t)
	userID := uuid.New()
	booking, err := f.service.CreateDoorstepBooking(context.Background(), userID, doorstepInput())
	require.NoError(t, err)

	cancelled, err := f.service.CancelDoorstepBooking(context.Background(), booking.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, cancelled.Status)
}

func TestCancelDoorstepBookingByStranger(t *testing.T) {
	f := newBookingFixture(t)
	booking, err := f.service.CreateDoorstepBooking(context.Background(), uuid.New(), doorstepInput())
	require.NoError(t, err)

	_, err = f.service.CancelDoorstepBooking(context.Background(), booking.ID, uuid.New())
	assert.ErrorIs(t, err, domain.ErrAuthorization)
	assert.Equal(t, domain.BookingPending, f.doorstep.Bookings[booking.ID].Status)
}

func TestListDoorstepBookingsForUser(t *testing.T) {
	f := newBookingFixture(t)
	userID := uuid.New()

	_, err := f.service.CreateDoorstepBooking(context.Background(), userID, doorstepInput())
	require.NoError(t, err)
	_, err = f.service.CreateDoorstepBooking(context.Background(), uuid.New(), doorstepInput())
	require.NoError(t, err)

	bookings, err := f.service.ListDoorstepBookings(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, userID, bookings[0].UserID)
}
