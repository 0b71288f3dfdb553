package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/vetician/vetician-api/internal/domain"
)

// RegisterRequest is the payload for account registration.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,min=1,max=120"`
	Email    string `json:"email"    validate:"required,email"`
	Phone    string `json:"phone"    validate:"omitempty,min=8,max=16"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role"     validate:"required,oneof=pet_parent veterinarian clinic paravet"`
}

// LoginRequest is the payload for password login. Role selects which of
// the email's accounts to authenticate.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
	Role     string `json:"role"     validate:"required,oneof=pet_parent veterinarian clinic paravet verified_paravet"`
}

// AuthResponse carries the issued token pair.
type AuthResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
}

// RefreshTokenRequest is the payload for token rotation and logout.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// DeleteAccountRequest is the payload for account deletion.
type DeleteAccountRequest struct {
	Password string `json:"password" validate:"required"`
}

// SendOTPRequest is the payload for requesting a one-time password.
type SendOTPRequest struct {
	Phone string `json:"phone" validate:"required,min=8,max=16"`
}

// SendOTPResponse returns the verification handle for the issued code.
type SendOTPResponse struct {
	VerificationID uuid.UUID `json:"verification_id"`
	ExpiresAt      time.Time `json:"expires_at"`
}

// VerifyOTPRequest is the payload for redeeming a one-time password.
type VerifyOTPRequest struct {
	VerificationID uuid.UUID `json:"verification_id" validate:"required"`
	Code           string    `json:"code"            validate:"required,len=6"`
}

// UpdateParentRequest is the partial update payload for a parent profile.
type UpdateParentRequest struct {
	Name     *string `json:"name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Address  *string `json:"address,omitempty"`
	Gender   *string `json:"gender,omitempty"`
	ImageURL *string `json:"image_url,omitempty"`
}

// RegisterPetRequest is the payload for registering a pet.
type RegisterPetRequest struct {
	Name        string            `json:"name"    validate:"required,min=1,max=120"`
	Species     string            `json:"species" validate:"required,min=1,max=60"`
	Breed       string            `json:"breed"`
	Gender      string            `json:"gender"`
	DateOfBirth time.Time         `json:"date_of_birth"`
	Details     domain.PetDetails `json:"details"`
}

// UpdatePetRequest is the partial update payload for a pet.
type UpdatePetRequest struct {
	Name        *string            `json:"name,omitempty"`
	Species     *string            `json:"species,omitempty"`
	Breed       *string            `json:"breed,omitempty"`
	Gender      *string            `json:"gender,omitempty"`
	DateOfBirth *time.Time         `json:"date_of_birth,omitempty"`
	Details     *domain.PetDetails `json:"details,omitempty"`
}

// RegisterVeterinarianRequest is the flat professional-profile payload.
type RegisterVeterinarianRequest struct {
	Name               string `json:"name"                validate:"required,min=1,max=120"`
	Title              string `json:"title"`
	Gender             string `json:"gender"`
	City               string `json:"city"`
	Experience         int    `json:"experience"          validate:"min=0"`
	Specialization     string `json:"specialization"`
	Qualification      string `json:"qualification"`
	RegistrationNumber string `json:"registration_number" validate:"required,min=1,max=60"`
	IdentityProof      string `json:"identity_proof"`
	ProfilePhotoURL    string `json:"profile_photo_url"`
}

// RegisterClinicRequest is the establishment-profile payload.
type RegisterClinicRequest struct {
	ClinicName        string               `json:"clinic_name" validate:"required,min=1,max=160"`
	City              string               `json:"city"        validate:"required,min=1,max=80"`
	Locality          string               `json:"locality"`
	StreetAddress     string               `json:"street_address"`
	EstablishmentType string               `json:"establishment_type"`
	Fees              int                  `json:"fees"        validate:"min=0"`
	Timings           domain.ClinicTimings `json:"timings"`
}

// RegisterResortRequest is the pet-resort payload.
type RegisterResortRequest struct {
	ResortName   string               `json:"resort_name" validate:"required,min=1,max=160"`
	BrandName    string               `json:"brand_name"`
	LogoURL      string               `json:"logo_url"`
	Address      string               `json:"address"`
	ResortPhone  string               `json:"resort_phone"`
	OwnerPhone   string               `json:"owner_phone"`
	Services     []string             `json:"services"`
	OpeningHours domain.ClinicTimings `json:"opening_hours"`
	Notice       string               `json:"notice"`
}

// PersonalInfoRequest is the step-3 onboarding payload.
type PersonalInfoRequest struct {
	FullName        string `json:"full_name"     validate:"required,min=1,max=120"`
	MobileNumber    string `json:"mobile_number" validate:"omitempty,min=8,max=16"`
	ProfilePhotoURL string `json:"profile_photo_url"`
	Address         string `json:"address"`
}

// ExperienceRequest is the step-5 onboarding payload.
type ExperienceRequest struct {
	Years           int      `json:"years" validate:"min=0"`
	Skills          []string `json:"skills"`
	PriorWorkplaces []string `json:"prior_workplaces"`
}

// PaymentInfoRequest is the step-6 onboarding payload.
type PaymentInfoRequest struct {
	AccountHolderName string `json:"account_holder_name" validate:"required,min=1,max=120"`
	AccountNumber     string `json:"account_number"`
	IFSC              string `json:"ifsc"`
	UPIID             string `json:"upi_id"`
}

// UploadDocumentRequest is the onboarding document payload.
type UploadDocumentRequest struct {
	DocumentType string `json:"document_type" validate:"required"`
	FileURL      string `json:"file_url"      validate:"required,url"`
	IDType       string `json:"id_type"`
	IDNumber     string `json:"id_number"`
}

// CodeOfConductRequest is the step-7 onboarding payload.
type CodeOfConductRequest struct {
	Agreed bool `json:"agreed"`
}

// TrainingRequest is the step-8 onboarding payload.
type TrainingRequest struct {
	QuizPassed bool `json:"quiz_passed"`
	Score      int  `json:"score" validate:"min=0,max=100"`
}

// ReviewRequest is the admin decision payload for a paravet application.
type ReviewRequest struct {
	Action string `json:"action" validate:"required,oneof=approve reject"`
	Reason string `json:"reason"`
}

// VerifyFieldRequest names one field (or dotted field path) to verify.
type VerifyFieldRequest struct {
	Field string `json:"field" validate:"required,min=1,max=120"`
}

// CreateAppointmentRequest is the clinic-visit booking payload.
type CreateAppointmentRequest struct {
	ClinicID       uuid.UUID `json:"clinic_id"       validate:"required"`
	VeterinarianID uuid.UUID `json:"veterinarian_id"`
	PetName        string    `json:"pet_name"        validate:"required,min=1,max=120"`
	PetType        string    `json:"pet_type"`
	Breed          string    `json:"breed"`
	Illness        string    `json:"illness"`
	Date           time.Time `json:"date"            validate:"required"`
	BookingType    string    `json:"booking_type"`
	ContactInfo    string    `json:"contact_info"`
	PetPicURL      string    `json:"pet_pic_url"`
}

// CreateDoorstepRequest is the at-home service booking payload.
type CreateDoorstepRequest struct {
	ServiceType         string                `json:"service_type"     validate:"required,min=1,max=80"`
	PetIDs              []uuid.UUID           `json:"pet_ids"`
	ServicePartnerID    uuid.UUID             `json:"service_partner_id"`
	ServicePartnerName  string                `json:"service_partner_name"`
	AppointmentDate     time.Time             `json:"appointment_date" validate:"required"`
	TimeSlot            string                `json:"time_slot"`
	Address             domain.BookingAddress `json:"address"`
	IsEmergency         bool                  `json:"is_emergency"`
	RepeatBooking       bool                  `json:"repeat_booking"`
	SpecialInstructions string                `json:"special_instructions"`
	PaymentMethod       string                `json:"payment_method"`
	CouponCode          string                `json:"coupon_code"`
	BasePrice           float64               `json:"base_price"       validate:"min=0"`
	EmergencyCharge     float64               `json:"emergency_charge" validate:"min=0"`
	Discount            float64               `json:"discount"         validate:"min=0"`
	TotalAmount         float64               `json:"total_amount"     validate:"min=0"`
	PaymentStatus       string                `json:"payment_status"`
}

// UpdateBookingStatusRequest moves a doorstep booking to a new status.
type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed in-progress completed cancelled"`
}
