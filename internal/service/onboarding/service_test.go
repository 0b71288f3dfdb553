package onboarding

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vetician/vetician-api/internal/domain"
	"github.com/vetician/vetician-api/internal/events"
	"github.com/vetician/vetician-api/internal/mocks"
	"github.com/vetician/vetician-api/internal/store"
)

// capturingHandler keeps every emitted event for assertions.
type capturingHandler struct {
	events []*events.ApplicationEvent
}

func (h *capturingHandler) HandleEvent(_ context.Context, event *events.ApplicationEvent) error {
	h.events = append(h.events, event)
	return nil
}

type onboardingFixture struct {
	paravets *mocks.MockParavetStore
	users    *mocks.MockUserStore
	handler  *capturingHandler
	service  *Service
}

func newOnboardingFixture(t *testing.T) *onboardingFixture {
	t.Helper()
	f := &onboardingFixture{
		paravets: mocks.NewMockParavetStore(),
		users:    mocks.NewMockUserStore(),
		handler:  &capturingHandler{},
	}
	emitter := events.NewInMemoryEventEmitter(nil)
	emitter.RegisterHandler(f.handler)
	f.service = NewService(f.paravets, f.users, emitter, nil)
	return f
}

// seedSubmittable stores a profile that passes every submission check.
func (f *onboardingFixture) seedSubmittable(t *testing.T) *domain.ParavetProfile {
	t.Helper()
	profile := domain.NewParavetProfile(uuid.New(), domain.ApprovalPending)
	profile.PersonalInfo.FullName.Value = "Ravi Kumar"
	profile.PersonalInfo.MobileNumber.Value = "9876543210"
	profile.PersonalInfo.MobileNumber.OTPVerified = true
	profile.Documents.GovernmentID = domain.GovernmentID{
		Type:    "aadhaar",
		Number:  "1234-5678-9012",
		FileURL: "https://files.example.com/id.pdf",
	}
	profile.Documents.CertificationProof = domain.DocumentProof{
		Type:    "diploma",
		FileURL: "https://files.example.com/diploma.pdf",
	}
	profile.Experience.Years.Value = 4
	profile.PaymentInfo.AccountHolderName.Value = "Ravi Kumar"
	profile.Compliance.AgreedToCodeOfConduct = true
	profile.Training.ModuleCompleted = true
	profile.RecomputeCompletion()
	f.paravets.Profiles[profile.UserID] = profile
	return profile
}

func TestInitializeCreatesPendingProfile(t *testing.T) {
	f := newOnboardingFixture(t)
	userID := uuid.New()

	profile, err := f.service.Initialize(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, userID, profile.UserID)
	assert.Equal(t, domain.ApprovalPending, profile.ApprovalStatus)
	assert.Contains(t, f.paravets.Profiles, userID)
}

func TestInitializeIsIdempotent(t *testing.T) {
	f := newOnboardingFixture(t)
	userID := uuid.New()

	first, err := f.service.Initialize(context.Background(), userID)
	require.NoError(t, err)
	first.PersonalInfo.FullName.Value = "Already Filled"

	second, err := f.service.Initialize(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "Already Filled", second.PersonalInfo.FullName.Value)
	assert.Len(t, f.paravets.Profiles, 1)
}

func TestInitializeLosingCreateRaceReturnsWinner(t *testing.T) {
	f := newOnboardingFixture(t)
	userID := uuid.New()
	winner := domain.NewParavetProfile(userID, domain.ApprovalPending)
	winner.PersonalInfo.FullName.Value = "The Winner"

	calls := 0
	f.paravets.GetByUserIDFn = func(ctx context.Context, id uuid.UUID) (*domain.ParavetProfile, error) {
		calls++
		if calls == 1 {
			return nil, store.ErrParavetNotFound
		}
		return winner, nil
	}
	f.paravets.CreateFn = func(ctx context.Context, profile *domain.ParavetProfile) error {
		return store.ErrParavetExists
	}

	profile, err := f.service.Initialize(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "The Winner", profile.PersonalInfo.FullName.Value)
}

func TestGetProfileUnknownUser(t *testing.T) {
	f := newOnboardingFixture(t)

	_, err := f.service.GetProfile(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdatePersonalInfoRequiresFullName(t *testing.T) {
	f := newOnboardingFixture(t)
	profile := f.seedSubmittable(t)

	_, err := f.service.UpdatePersonalInfo(context.Background(), profile.UserID, PersonalInfoInput{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdatePersonalInfoKeepsFlagsForUnchangedValues(t *testing.T) {
	f := newOnboardingFixture(t)
	profile := f.seedSubmittable(t)
	profile.PersonalInfo.FullName.Verified = true
	profile.PersonalInfo.MobileNumber.Verified = true

	updated, err := f.service.UpdatePersonalInfo(context.Background(), profile.UserID, PersonalInfoInput{
		FullName:     "Ravi Kumar",
		MobileNumber: "9876543210",
		Address:      "12 MG Road, Pune",
	})
	require.NoError(t, err)

	assert.True(t, updated.PersonalInfo.FullName.Verified)
	assert.True(t, updated.PersonalInfo.MobileNumber.Verified)
	assert.True(t, updated.PersonalInfo.MobileNumber.OTPVerified)
	assert.Equal(t, "12 MG Road, Pune", updated.PersonalInfo.Address)
	assert.Equal(t, domain.StepPersonalInfo, updated.CurrentStep)
}

func TestUpdatePersonalInfoResetsFlagsOnChange(t *testing.T) {
	f := newOnboardingFixture(t)
	profile := f.seedSubmittable(t)
	profile.PersonalInfo.FullName.Verified = true

	updated, err := f.service.UpdatePersonalInfo(context.Background(), profile.UserID, PersonalInfoInput{
		FullName:     "Someone Else",
		MobileNumber: "9123456780",
	})
	require.NoError(t, err)

	assert.False(t, updated.PersonalInfo.FullName.Verified)
	assert.False(t, updated.PersonalInfo.MobileNumber.OTPVerified, "new number needs a fresh otp")
}

func TestUpdateExperienceRejectsNegativeYears(t *testing.T) {
	f := newOnboardingFixture(t)
	profile := f.seedSubmittable(t)

	_, err := f.service.UpdateExperienceSkills(context.Background(), profile.UserID, ExperienceInput{Years: -1})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdateExperienceKeepsVerifiedYearsWhenUnchanged(t *testing.T) {
	f := newOnboardingFixture(t)
	profile := f.seedSubmittable(t)
	profile.Experience.Years.Verified = true

	updated, err := f.service.UpdateExperienceSkills(context.Background(), profile.UserID, ExperienceInput{
		Years:  4,
		Skills: []string{"wound care", "vaccination"},
	})
	require.NoError(t, err)
	assert.True(t, updated.Experience.Years.Verified)

	updated, err = f.service.UpdateExperienceSkills(context.Background(), profile.UserID, ExperienceInput{Years: 6})
	require.NoError(t, err)
	assert.False(t, updated.Experience.Years.Verified)
}

func TestUpdatePaymentInfoRequiresAccountHolder(t *testing.T) {
	f := newOnboardingFixture(t)
	profile := f.seedSubmittable(t)

	_, err := f.service.UpdatePaymentInfo(context.Background(), profile.UserID, PaymentInput{AccountNumber: "0011223344"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUploadDocumentCreatesProfileOnFirstTouch(t *testing.T) {
	f := newOnboardingFixture(t)
	userID := uuid.New()

	profile, err := f.service.UploadDocument(context.Background(), userID, DocumentInput{
		DocumentType: DocumentCertification,
		FileURL:      "https://files.example.com/cert.pdf",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://files.example.com/cert.pdf", profile.Documents.CertificationProof.FileURL)
	assert.Contains(t, f.paravets.Profiles, userID)
}

func TestUploadDocumentRoutesByType(t *testing.T) {
	f := newOnboardingFixture(t)
	userID := uuid.New()

	_, err := f.service.UploadDocument(context.Background(), userID, DocumentInput{
		DocumentType: DocumentGovernmentID,
		FileURL:      "https://files.example.com/id.pdf",
		IDType:       "aadhaar",
		IDNumber:     "1234-5678-9012",
	})
	require.NoError(t, err)

	_, err = f.service.UploadDocument(context.Background(), userID, DocumentInput{
		DocumentType: DocumentVetRecommendation,
		FileURL:      "https://files.example.com/recommendation.pdf",
	})
	require.NoError(t, err)

	profile, err := f.service.UploadDocument(context.Background(), userID, DocumentInput{
		DocumentType: DocumentProfilePhoto,
		FileURL:      "https://files.example.com/photo.jpg",
	})
	require.NoError(t, err)

	assert.Equal(t, "aadhaar", profile.Documents.GovernmentID.Type)
	assert.Equal(t, "1234-5678-9012", profile.Documents.GovernmentID.Number)
	assert.Equal(t, "https://files.example.com/recommendation.pdf", profile.Documents.VetRecommendation.FileURL)
	assert.Equal(t, "https://files.example.com/photo.jpg", profile.Documents.ProfilePhoto.FileURL)
	assert.Equal(t, "https://files.example.com/photo.jpg", profile.PersonalInfo.ProfilePhotoURL)
}

func TestUploadDocumentDefaultsGovernmentIDType(t *testing.T) {
	f := newOnboardingFixture(t)

	profile, err := f.service.UploadDocument(context.Background(), uuid.New(), DocumentInput{
		DocumentType: DocumentGovernmentID,
		FileURL:      "https://files.example.com/id.pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, "government_id", profile.Documents.GovernmentID.Type)
}

func TestUploadDocumentUnknownType(t *testing.T) {
	f := newOnboardingFixture(t)

	_, err := f.service.UploadDocument(context.Background(), uuid.New(), DocumentInput{
		DocumentType: "selfie",
		FileURL:      "https://files.example.com/selfie.jpg",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUploadDocumentRequiresFileURL(t *testing.T) {
	f := newOnboardingFixture(t)

	_, err := f.service.UploadDocument(context.Background(), uuid.New(), DocumentInput{
		DocumentType: DocumentCertification,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAgreeToCodeOfConductRejectsDecline(t *testing.T) {
	f := newOnboardingFixture(t)
	profile := f.seedSubmittable(t)

	_, err := f.service.AgreeToCodeOfConduct(context.Background(), profile.UserID, false)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAgreeToCodeOfConductRecordsTimestamp(t *testing.T) {
	f := newOnboardingFixture(t)
	profile := f.seedSubmittable(t)

	updated, err := f.service.AgreeToCodeOfConduct(context.Background(), profile.UserID, true)
	require.NoError(t, err)

	assert.True(t, updated.Compliance.AgreedToCodeOfConduct)
	assert.False(t, updated.Compliance.AgreedAt.IsZero())
	assert.Equal(t, domain.StepCodeOfConduct, updated.CurrentStep)
}

func TestCompleteTrainingAwardsBadge(t *testing.T) {
	f := newOnboardingFixture(t)
	profile := f.seedSubmittable(t)

	updated, err := f.service.CompleteTraining(context.Background(), profile.UserID, TrainingInput{
		QuizPassed: true,
		Score:      92,
	})
	require.NoError(t, err)

	assert.True(t, updated.Training.ModuleCompleted)
	assert.Equal(t, domain.ParavetBadge, updated.Training.Badge)
	assert.Equal(t, 92, updated.Training.Score)
}

func TestSubmitApplicationEmitsEvent(t *testing.T) {
	f := newOnboardingFixture(t)
	profile := f.seedSubmittable(t)

	submitted, err := f.service.SubmitApplication(context.Background(), profile.UserID)
	require.NoError(t, err)

	assert.True(t, submitted.Submitted)
	assert.Equal(t, domain.ApprovalUnderReview, submitted.ApprovalStatus)
	assert.Equal(t, 100, submitted.CompletionPercentage)

	require.Len(t, f.handler.events, 1)
	assert.Equal(t, events.EventParavetSubmitted, f.handler.events[0].Type)
}

func TestSubmitApplicationWithoutOTPOrTraining(t *testing.T) {
	f := newOnboardingFixture(t)
	profile := f.seedSubmittable(t)
	profile.PersonalInfo.MobileNumber.OTPVerified = false
	profile.Training.ModuleCompleted = false
	profile.RecomputeCompletion()

	submitted, err := f.service.SubmitApplication(context.Background(), profile.UserID)
	require.NoError(t, err)

	assert.True(t, submitted.Submitted)
	assert.Less(t, submitted.CompletionPercentage, 100)
}

func TestSubmitApplicationWithoutCertificationProof(t *testing.T) {
	f := newOnboardingFixture(t)
	profile := f.seedSubmittable(t)
	profile.Documents.CertificationProof = domain.DocumentProof{}

	_, err := f.service.SubmitApplication(context.Background(), profile.UserID)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, f.handler.events)
}

func TestSubmitApplicationIncomplete(t *testing.T) {
	f := newOnboardingFixture(t)
	userID := uuid.New()
	_, err := f.service.Initialize(context.Background(), userID)
	require.NoError(t, err)

	_, err = f.service.SubmitApplication(context.Background(), userID)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, f.handler.events)
}

func TestSubmitApplicationTwiceConflicts(t *testing.T) {
	f := newOnboardingFixture(t)
	profile := f.seedSubmittable(t)

	_, err := f.service.SubmitApplication(context.Background(), profile.UserID)
	require.NoError(t, err)

	_, err = f.service.SubmitApplication(context.Background(), profile.UserID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestReviewRequiresSubmission(t *testing.T) {
	f := newOnboardingFixture(t)
	profile := f.seedSubmittable(t)

	_, err := f.service.Review(context.Background(), profile.UserID, uuid.New(), ReviewApprove, "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestReviewApprovePromotesAccount(t *testing.T) {
	f := newOnboardingFixture(t)
	profile := f.seedSubmittable(t)
	adminID := uuid.New()

	user, err := domain.NewUser("Ravi Kumar", "ravi@example.com", "9876543210", "supersecret", domain.RoleParavet)
	require.NoError(t, err)
	user.ID = profile.UserID
	f.users.Users[user.ID] = user

	_, err = f.service.SubmitApplication(context.Background(), profile.UserID)
	require.NoError(t, err)

	reviewed, err := f.service.Review(context.Background(), profile.UserID, adminID, ReviewApprove, "")
	require.NoError(t, err)

	assert.Equal(t, domain.ApprovalApproved, reviewed.ApprovalStatus)
	assert.Equal(t, adminID, reviewed.ApprovedByAdmin)
	assert.Equal(t, domain.RoleVerifiedParavet, f.users.Users[user.ID].Role)

	// One submitted event, one reviewed event carrying the acting admin.
	require.Len(t, f.handler.events, 2)
	assert.Equal(t, events.EventParavetReviewed, f.handler.events[1].Type)
	var payload reviewedPayload
	require.NoError(t, f.handler.events[1].UnmarshalPayload(&payload))
	assert.Equal(t, adminID, payload.AdminID)
}

func TestReviewRejectRequiresReason(t *testing.T) {
	f := newOnboardingFixture(t)
	profile := f.seedSubmittable(t)

	_, err := f.service.SubmitApplication(context.Background(), profile.UserID)
	require.NoError(t, err)

	_, err = f.service.Review(context.Background(), profile.UserID, uuid.New(), ReviewReject, "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestReviewRejectRecordsReason(t *testing.T) {
	f := newOnboardingFixture(t)
	profile := f.seedSubmittable(t)

	user, err := domain.NewUser("Ravi Kumar", "ravi@example.com", "9876543210", "supersecret", domain.RoleParavet)
	require.NoError(t, err)
	user.ID = profile.UserID
	f.users.Users[user.ID] = user

	_, err = f.service.SubmitApplication(context.Background(), profile.UserID)
	require.NoError(t, err)

	reviewed, err := f.service.Review(context.Background(), profile.UserID, uuid.New(), ReviewReject, "certificate unreadable")
	require.NoError(t, err)

	assert.Equal(t, domain.ApprovalRejected, reviewed.ApprovalStatus)
	assert.Equal(t, uuid.Nil, reviewed.ApprovedByAdmin)
	assert.Equal(t, "certificate unreadable", reviewed.RejectionReason)
	assert.Equal(t, domain.RoleParavet, f.users.Users[user.ID].Role, "rejection must not promote")
}

func TestReviewUnknownAction(t *testing.T) {
	f := newOnboardingFixture(t)
	profile := f.seedSubmittable(t)

	_, err := f.service.SubmitApplication(context.Background(), profile.UserID)
	require.NoError(t, err)

	_, err = f.service.Review(context.Background(), profile.UserID, uuid.New(), ReviewAction("escalate"), "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestListUnverifiedReturnsOnlySubmitted(t *testing.T) {
	f := newOnboardingFixture(t)
	f.seedSubmittable(t)
	submitted := f.seedSubmittable(t)
	_, err := f.service.SubmitApplication(context.Background(), submitted.UserID)
	require.NoError(t, err)

	pending, err := f.service.ListUnverified(context.Background())
	require.NoError(t, err)

	require.Len(t, pending, 1)
	assert.Equal(t, submitted.UserID, pending[0].UserID)
}

func TestVerifyFieldPersistsFlag(t *testing.T) {
	f := newOnboardingFixture(t)
	profile := f.seedSubmittable(t)

	updated, err := f.service.VerifyField(context.Background(), profile.UserID, "personal_info.full_name")
	require.NoError(t, err)

	assert.True(t, updated.PersonalInfo.FullName.Verified)
	assert.True(t, f.paravets.Profiles[profile.UserID].PersonalInfo.FullName.Verified)
}

func TestVerifyFieldUnknownPath(t *testing.T) {
	f := newOnboardingFixture(t)
	profile := f.seedSubmittable(t)

	_, err := f.service.VerifyField(context.Background(), profile.UserID, "training.score")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
