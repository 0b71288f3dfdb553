package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// completeProfile returns a profile with every submission requirement met.
func completeProfile(t *testing.T) *ParavetProfile {
	t.Helper()
	p := NewParavetProfile(uuid.New(), ApprovalPending)
	p.PersonalInfo.FullName.Value = "Asha Kumar"
	p.PersonalInfo.MobileNumber.Value = "9876543210"
	p.PersonalInfo.MobileNumber.OTPVerified = true
	p.Documents.GovernmentID.Type = "aadhaar"
	p.Documents.GovernmentID.Number = "1234-5678-9012"
	p.Documents.CertificationProof.Type = "diploma"
	p.Documents.CertificationProof.FileURL = "https://cdn.example.com/diploma.pdf"
	p.Experience.Years.Value = 4
	p.PaymentInfo.AccountHolderName.Value = "Asha Kumar"
	p.Compliance.AgreedToCodeOfConduct = true
	p.Training.ModuleCompleted = true
	p.RecomputeCompletion()
	return p
}

func TestNewParavetProfileStartsEmpty(t *testing.T) {
	p := NewParavetProfile(uuid.New(), ApprovalPending)

	assert.Equal(t, 0, p.CompletionPercentage)
	assert.Equal(t, 1, p.CurrentStep)
	assert.Equal(t, ApprovalPending, p.ApprovalStatus)
	assert.False(t, p.Submitted)
	assert.True(t, p.IsActive)
}

func TestCompletionPercentageRounding(t *testing.T) {
	p := NewParavetProfile(uuid.New(), ApprovalPending)

	// One of eight checks is 12.5%, which rounds to 13.
	p.PersonalInfo.FullName.Value = "Asha"
	p.RecomputeCompletion()
	assert.Equal(t, 13, p.CompletionPercentage)

	// Three of eight is 37.5%, rounding to 38.
	p.Compliance.AgreedToCodeOfConduct = true
	p.Training.ModuleCompleted = true
	p.RecomputeCompletion()
	assert.Equal(t, 38, p.CompletionPercentage)
}

func TestCompletionIsOrderIndependent(t *testing.T) {
	// The same set of completed checks must yield the same percentage no
	// matter which step the caller filled in last.
	first := NewParavetProfile(uuid.New(), ApprovalPending)
	first.PersonalInfo.FullName.Value = "Asha"
	first.RecomputeCompletion()
	first.Compliance.AgreedToCodeOfConduct = true
	first.RecomputeCompletion()

	second := NewParavetProfile(uuid.New(), ApprovalPending)
	second.Compliance.AgreedToCodeOfConduct = true
	second.RecomputeCompletion()
	second.PersonalInfo.FullName.Value = "Asha"
	second.RecomputeCompletion()

	assert.Equal(t, first.CompletionPercentage, second.CompletionPercentage)
}

func TestMobileNumberCountsOnlyWhenOTPVerified(t *testing.T) {
	p := NewParavetProfile(uuid.New(), ApprovalPending)
	p.PersonalInfo.MobileNumber.Value = "9876543210"
	p.RecomputeCompletion()
	assert.Equal(t, 0, p.CompletionPercentage)

	p.PersonalInfo.MobileNumber.OTPVerified = true
	p.RecomputeCompletion()
	assert.Equal(t, 13, p.CompletionPercentage)
}

func TestSubmitRequiresAllFields(t *testing.T) {
	p := completeProfile(t)
	p.PaymentInfo.AccountHolderName.Value = ""

	err := p.Submit()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "account holder name")
	assert.False(t, p.Submitted)
}

func TestSubmitMovesToUnderReview(t *testing.T) {
	p := completeProfile(t)

	require.NoError(t, p.Submit())

	assert.True(t, p.Submitted)
	assert.False(t, p.SubmittedAt.IsZero())
	assert.Equal(t, ApprovalUnderReview, p.ApprovalStatus)
	assert.Equal(t, StepSubmitted, p.CurrentStep)
	assert.Equal(t, 100, p.CompletionPercentage)
}

func TestMissingForSubmissionListsEveryGap(t *testing.T) {
	p := NewParavetProfile(uuid.New(), ApprovalPending)

	missing := p.MissingForSubmission()
	assert.Equal(t, []string{
		"full name",
		"mobile number",
		"government id",
		"certification proof",
		"years of experience",
		"account holder name",
		"code of conduct agreement",
	}, missing)
}

func TestSubmitDoesNotRequireOTPOrTraining(t *testing.T) {
	p := completeProfile(t)
	p.PersonalInfo.MobileNumber.OTPVerified = false
	p.Training.ModuleCompleted = false
	p.RecomputeCompletion()

	require.NoError(t, p.Submit())

	assert.True(t, p.Submitted)
	assert.Equal(t, ApprovalUnderReview, p.ApprovalStatus)
	// The unverified mobile and skipped training still hold the completion
	// percentage below 100.
	assert.Less(t, p.CompletionPercentage, 100)
}

func TestSubmitRequiresCertificationProof(t *testing.T) {
	p := completeProfile(t)
	p.Documents.CertificationProof = DocumentProof{}

	err := p.Submit()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "certification proof")
	assert.False(t, p.Submitted)
}

func TestCompleteTrainingAwardsBadgeOnlyOnPass(t *testing.T) {
	p := NewParavetProfile(uuid.New(), ApprovalPending)

	p.CompleteTraining(false, 40)
	assert.True(t, p.Training.ModuleCompleted)
	assert.Empty(t, p.Training.Badge)

	p.CompleteTraining(true, 85)
	assert.Equal(t, ParavetBadge, p.Training.Badge)
	assert.Equal(t, 85, p.Training.Score)
	assert.Equal(t, StepTraining, p.CurrentStep)
}

func TestApproveClearsRejectionReason(t *testing.T) {
	p := completeProfile(t)
	require.NoError(t, p.Submit())
	p.Reject("documents unreadable")
	require.Equal(t, ApprovalRejected, p.ApprovalStatus)
	require.Equal(t, uuid.Nil, p.ApprovedByAdmin)

	adminID := uuid.New()
	p.Approve(adminID)

	assert.Equal(t, ApprovalApproved, p.ApprovalStatus)
	assert.Equal(t, adminID, p.ApprovedByAdmin)
	assert.Empty(t, p.RejectionReason)
	assert.False(t, p.ApprovedAt.IsZero())
}

func TestVerifyFieldPath(t *testing.T) {
	p := completeProfile(t)

	require.NoError(t, p.VerifyFieldPath("personal_info.full_name"))
	assert.True(t, p.PersonalInfo.FullName.Verified)

	require.NoError(t, p.VerifyFieldPath("documents.government_id"))
	assert.True(t, p.Documents.GovernmentID.Verified)

	// The round trip must not disturb unrelated state.
	assert.Equal(t, "Asha Kumar", p.PersonalInfo.FullName.Value)
	assert.True(t, p.Compliance.AgreedToCodeOfConduct)
}

func TestVerifyFieldPathRejectsUnknownPaths(t *testing.T) {
	p := completeProfile(t)

	for _, path := range []string{"", "nope", "personal_info.nope", "personal_info.address"} {
		err := p.VerifyFieldPath(path)
		assert.ErrorIs(t, err, ErrNotFound, "path %q", path)
	}
}

func TestIsFullyVerified(t *testing.T) {
	p := completeProfile(t)
	assert.False(t, p.IsFullyVerified())

	for _, path := range []string{
		"personal_info.full_name",
		"personal_info.mobile_number",
		"documents.government_id",
		"documents.certification_proof",
		"experience.years",
		"payment_info.account_holder_name",
	} {
		require.NoError(t, p.VerifyFieldPath(path))
	}

	assert.True(t, p.IsFullyVerified())
}
