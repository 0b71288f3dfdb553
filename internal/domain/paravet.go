package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ApprovalStatus tracks where a paravet application sits in admin review.
type ApprovalStatus string

const (
	ApprovalPending     ApprovalStatus = "pending"
	ApprovalUnderReview ApprovalStatus = "under_review"
	ApprovalApproved    ApprovalStatus = "approved"
	ApprovalRejected    ApprovalStatus = "rejected"
)

// ParavetBadge is awarded when the training quiz is passed.
const ParavetBadge = "Vetician Verified Paravet"

// onboarding step numbers recorded as the advisory progress counter. Steps
// may be completed in any order; the counter only reflects the most recent
// one.
const (
	StepPersonalInfo  = 3
	StepExperience    = 5
	StepPayment       = 6
	StepCodeOfConduct = 7
	StepTraining      = 8
	StepSubmitted     = 9
)

// MobileNumber is a phone field that carries both admin verification and
// OTP confirmation state.
type MobileNumber struct {
	Value       string `json:"value"`
	Verified    bool   `json:"verified"`
	OTPVerified bool   `json:"otp_verified"`
}

// ParavetPersonalInfo is the step-3 field group.
type ParavetPersonalInfo struct {
	FullName        VerifiedField `json:"full_name"`
	MobileNumber    MobileNumber  `json:"mobile_number"`
	ProfilePhotoURL string        `json:"profile_photo_url,omitempty"`
	Address         string        `json:"address,omitempty"`
}

// GovernmentID is the identity document uploaded during onboarding.
type GovernmentID struct {
	Type     string `json:"type,omitempty"`
	Number   string `json:"number,omitempty"`
	FileURL  string `json:"file_url,omitempty"`
	Verified bool   `json:"verified"`
}

// DocumentProof is an uploaded supporting file pending admin review.
type DocumentProof struct {
	Type     string `json:"type,omitempty"`
	FileURL  string `json:"file_url,omitempty"`
	Verified bool   `json:"verified"`
}

// ParavetDocuments groups the uploaded files. Each kind carries its own
// verification flag so an admin can sign them off one at a time.
type ParavetDocuments struct {
	GovernmentID       GovernmentID  `json:"government_id"`
	CertificationProof DocumentProof `json:"certification_proof"`
	VetRecommendation  DocumentProof `json:"vet_recommendation"`
	ProfilePhoto       DocumentProof `json:"profile_photo"`
}

// ParavetExperience is the step-5 field group.
type ParavetExperience struct {
	Years           VerifiedInt `json:"years"`
	Skills          []string    `json:"skills,omitempty"`
	PriorWorkplaces []string    `json:"prior_workplaces,omitempty"`
}

// ParavetPayment is the step-6 field group.
type ParavetPayment struct {
	AccountHolderName VerifiedField `json:"account_holder_name"`
	AccountNumber     string        `json:"account_number,omitempty"`
	IFSC              string        `json:"ifsc,omitempty"`
	UPIID             string        `json:"upi_id,omitempty"`
}

// ParavetCompliance records the step-7 code-of-conduct agreement.
type ParavetCompliance struct {
	AgreedToCodeOfConduct bool      `json:"agreed_to_code_of_conduct"`
	AgreedAt              time.Time `json:"agreed_at,omitempty"`
}

// ParavetTraining records the step-8 training module outcome.
type ParavetTraining struct {
	ModuleCompleted bool   `json:"module_completed"`
	QuizPassed      bool   `json:"quiz_passed"`
	Score           int    `json:"score,omitempty"`
	Badge           string `json:"badge,omitempty"`
}

// ParavetProfile is the onboarding document for a paravet account. Field
// groups are replaced wholesale by their step endpoints and the completion
// percentage is recomputed after every mutation.
type ParavetProfile struct {
	ID           uuid.UUID           `json:"id"`
	UserID       uuid.UUID           `json:"user_id"`
	PersonalInfo ParavetPersonalInfo `json:"personal_info"`
	Documents    ParavetDocuments    `json:"documents"`
	Experience   ParavetExperience   `json:"experience"`
	PaymentInfo  ParavetPayment      `json:"payment_info"`
	Compliance   ParavetCompliance   `json:"compliance"`
	Training     ParavetTraining     `json:"training"`

	CurrentStep          int            `json:"current_step"`
	CompletionPercentage int            `json:"completion_percentage"`
	Submitted            bool           `json:"submitted"`
	SubmittedAt          time.Time      `json:"submitted_at,omitempty"`
	ApprovalStatus       ApprovalStatus `json:"approval_status"`
	RejectionReason      string         `json:"rejection_reason,omitempty"`
	ApprovedAt           time.Time      `json:"approved_at,omitempty"`
	ApprovedByAdmin      uuid.UUID      `json:"approved_by_admin"`

	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewParavetProfile creates an empty onboarding profile in the given
// approval state. Registration stubs start approved so a newly registered
// paravet account is usable before it runs the onboarding flow; profiles
// created by the onboarding initialize endpoint start pending.
func NewParavetProfile(userID uuid.UUID, status ApprovalStatus) *ParavetProfile {
	now := time.Now().UTC()
	p := &ParavetProfile{
		ID:             uuid.New(),
		UserID:         userID,
		CurrentStep:    1,
		ApprovalStatus: status,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	p.RecomputeCompletion()
	return p
}

// completionPredicates returns the eight readiness checks backing the
// completion percentage, in a fixed order.
func (p *ParavetProfile) completionPredicates() []bool {
	return []bool{
		p.PersonalInfo.FullName.Value != "",
		p.PersonalInfo.MobileNumber.Value != "" && p.PersonalInfo.MobileNumber.OTPVerified,
		p.Documents.GovernmentID.Type != "",
		p.Experience.Years.Value > 0,
		p.PaymentInfo.AccountHolderName.Value != "",
		p.Compliance.AgreedToCodeOfConduct,
		p.Training.ModuleCompleted,
		p.Submitted,
	}
}

// RecomputeCompletion refreshes CompletionPercentage from the readiness
// checks, rounding to the nearest whole percent.
func (p *ParavetProfile) RecomputeCompletion() {
	preds := p.completionPredicates()
	count := 0
	for _, ok := range preds {
		if ok {
			count++
		}
	}
	p.CompletionPercentage = int(math.Round(100 * float64(count) / float64(len(preds))))
}

// MissingForSubmission lists the required fields that are not yet complete.
// An empty result means the application may be submitted. OTP confirmation
// and training feed the completion percentage but do not gate submission.
func (p *ParavetProfile) MissingForSubmission() []string {
	var missing []string
	if p.PersonalInfo.FullName.Value == "" {
		missing = append(missing, "full name")
	}
	if p.PersonalInfo.MobileNumber.Value == "" {
		missing = append(missing, "mobile number")
	}
	if p.Documents.GovernmentID.Type == "" {
		missing = append(missing, "government id")
	}
	if p.Documents.CertificationProof.Type == "" {
		missing = append(missing, "certification proof")
	}
	if p.Experience.Years.Value <= 0 {
		missing = append(missing, "years of experience")
	}
	if p.PaymentInfo.AccountHolderName.Value == "" {
		missing = append(missing, "account holder name")
	}
	if !p.Compliance.AgreedToCodeOfConduct {
		missing = append(missing, "code of conduct agreement")
	}
	return missing
}

// Submit marks the application as submitted and moves it into admin review.
func (p *ParavetProfile) Submit() error {
	if missing := p.MissingForSubmission(); len(missing) > 0 {
		return fmt.Errorf("%w: incomplete application, missing: %s",
			ErrValidation, strings.Join(missing, ", "))
	}
	now := time.Now().UTC()
	p.Submitted = true
	p.SubmittedAt = now
	p.ApprovalStatus = ApprovalUnderReview
	p.CurrentStep = StepSubmitted
	p.UpdatedAt = now
	p.RecomputeCompletion()
	return nil
}

// Approve finalizes admin approval of a submitted application, recording
// which admin signed it off.
func (p *ParavetProfile) Approve(adminID uuid.UUID) {
	now := time.Now().UTC()
	p.ApprovalStatus = ApprovalApproved
	p.ApprovedAt = now
	p.ApprovedByAdmin = adminID
	p.RejectionReason = ""
	p.UpdatedAt = now
}

// Reject records an admin rejection with its reason.
func (p *ParavetProfile) Reject(reason string) {
	p.ApprovalStatus = ApprovalRejected
	p.RejectionReason = reason
	p.ApprovedByAdmin = uuid.Nil
	p.UpdatedAt = time.Now().UTC()
}

// CompleteTraining records the training module outcome. The badge is
// awarded only when the quiz was passed.
func (p *ParavetProfile) CompleteTraining(quizPassed bool, score int) {
	p.Training.ModuleCompleted = true
	p.Training.QuizPassed = quizPassed
	p.Training.Score = score
	if quizPassed {
		p.Training.Badge = ParavetBadge
	}
	p.CurrentStep = StepTraining
	p.UpdatedAt = time.Now().UTC()
	p.RecomputeCompletion()
}

// IsFullyVerified reports whether every admin-reviewable field has been
// verified.
func (p *ParavetProfile) IsFullyVerified() bool {
	return p.PersonalInfo.FullName.Verified &&
		p.PersonalInfo.MobileNumber.Verified &&
		p.Documents.GovernmentID.Verified &&
		p.Documents.CertificationProof.Verified &&
		p.Experience.Years.Verified &&
		p.PaymentInfo.AccountHolderName.Verified
}

// VerifyFieldPath descends the profile document along a dotted path of
// JSON keys (for example "personal_info.full_name") and marks the terminal
// field group as verified. A path that does not resolve to a verifiable
// group returns a not-found error.
func (p *ParavetProfile) VerifyFieldPath(path string) error {
	segments := strings.Split(path, ".")
	if path == "" || len(segments) == 0 {
		return fmt.Errorf("%w: field path %q", ErrNotFound, path)
	}

	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decoding profile: %w", err)
	}

	node := any(doc)
	for _, seg := range segments {
		m, ok := node.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: field path %q", ErrNotFound, path)
		}
		node, ok = m[seg]
		if !ok {
			return fmt.Errorf("%w: field path %q", ErrNotFound, path)
		}
	}

	terminal, ok := node.(map[string]any)
	if !ok {
		return fmt.Errorf("%w: field path %q is not verifiable", ErrNotFound, path)
	}
	if _, has := terminal["verified"]; !has {
		return fmt.Errorf("%w: field path %q is not verifiable", ErrNotFound, path)
	}
	terminal["verified"] = true

	updated, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	if err := json.Unmarshal(updated, p); err != nil {
		return fmt.Errorf("decoding profile: %w", err)
	}
	p.UpdatedAt = time.Now().UTC()
	p.RecomputeCompletion()
	return nil
}
