package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVet() *Veterinarian {
	return NewVeterinarian(uuid.New(), VeterinarianInput{
		Name:               "Dr. Rao",
		Gender:             "female",
		City:               "Pune",
		Experience:         7,
		Specialization:     "small animals",
		Qualification:      "BVSc",
		RegistrationNumber: "MH-1234",
		IdentityProof:      "https://files.example.com/id.pdf",
	})
}

func TestNewVeterinarianStartsUnverified(t *testing.T) {
	v := newTestVet()

	assert.False(t, v.IsVerified)
	for field, verified := range v.FieldStates() {
		assert.False(t, verified, "field %q", field)
	}
}

func TestVerifyFieldUnknownName(t *testing.T) {
	v := newTestVet()

	err := v.VerifyField("favourite_color")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestVerifyFieldTwiceIsRejected(t *testing.T) {
	v := newTestVet()

	require.NoError(t, v.VerifyField("name"))
	err := v.VerifyField("name")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "already verified")
}

func TestAggregateRequiresAllRequiredFields(t *testing.T) {
	v := newTestVet()

	required := []string{
		"name", "gender", "city", "experience",
		"specialization", "qualification",
		"registration_number", "identity_proof",
	}
	for i, field := range required {
		require.NoError(t, v.VerifyField(field))
		if i < len(required)-1 {
			assert.False(t, v.IsVerified, "aggregate flipped early after %q", field)
		}
	}
	assert.True(t, v.IsVerified)
}

func TestTitleAndPhotoAreNotPartOfAggregate(t *testing.T) {
	v := newTestVet()

	require.NoError(t, v.VerifyField("title"))
	require.NoError(t, v.VerifyField("profile_photo_url"))
	assert.False(t, v.IsVerified)
}
