// Package onboarding implements the paravet application flow, from the
// step endpoints through submission and admin review.
package onboarding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/vetician/vetician-api/internal/domain"
	"github.com/vetician/vetician-api/internal/events"
	"github.com/vetician/vetician-api/internal/platform/logger"
	"github.com/vetician/vetician-api/internal/store"
)

// Document type identifiers accepted by UploadDocument.
const (
	DocumentGovernmentID      = "government_id"
	DocumentCertification     = "certification_proof"
	DocumentVetRecommendation = "vet_recommendation"
	DocumentProfilePhoto      = "profile_photo"
)

// ReviewAction is an admin's decision on a submitted application.
type ReviewAction string

const (
	ReviewApprove ReviewAction = "approve"
	ReviewReject  ReviewAction = "reject"
)

// PersonalInfoInput carries the step-3 field group.
type PersonalInfoInput struct {
	FullName        string
	MobileNumber    string
	ProfilePhotoURL string
	Address         string
}

// ExperienceInput carries the step-5 field group.
type ExperienceInput struct {
	Years           int
	Skills          []string
	PriorWorkplaces []string
}

// PaymentInput carries the step-6 field group.
type PaymentInput struct {
	AccountHolderName string
	AccountNumber     string
	IFSC              string
	UPIID             string
}

// DocumentInput carries one uploaded document reference.
type DocumentInput struct {
	DocumentType string
	FileURL      string
	IDType       string
	IDNumber     string
}

// TrainingInput carries the step-8 training outcome.
type TrainingInput struct {
	QuizPassed bool
	Score      int
}

// submittedPayload is the application-submitted event body.
type submittedPayload struct {
	UserID               uuid.UUID `json:"user_id"`
	CompletionPercentage int       `json:"completion_percentage"`
	SubmittedAt          time.Time `json:"submitted_at"`
}

// reviewedPayload is the application-reviewed event body.
type reviewedPayload struct {
	UserID  uuid.UUID    `json:"user_id"`
	AdminID uuid.UUID    `json:"admin_id"`
	Action  ReviewAction `json:"action"`
	Reason  string       `json:"reason,omitempty"`
}

// Service coordinates onboarding profile mutations, submission and review.
type Service struct {
	paravets store.ParavetStore
	users    store.UserStore
	emitter  events.EventEmitter
	logger   *slog.Logger
}

// NewService wires an onboarding service.
func NewService(
	paravets store.ParavetStore,
	users store.UserStore,
	emitter events.EventEmitter,
	log *slog.Logger,
) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		paravets: paravets,
		users:    users,
		emitter:  emitter,
		logger:   log.With(slog.String("component", "onboarding_service")),
	}
}

// Initialize creates the onboarding profile for a paravet account. Calling
// it again returns the existing profile unchanged.
func (s *Service) Initialize(ctx context.Context, userID uuid.UUID) (*domain.ParavetProfile, error) {
	existing, err := s.paravets.GetByUserID(ctx, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, store.ErrParavetNotFound) {
		return nil, err
	}

	profile := domain.NewParavetProfile(userID, domain.ApprovalPending)
	if err := s.paravets.Create(ctx, profile); err != nil {
		if errors.Is(err, store.ErrParavetExists) {
			// Lost a creation race; the winner's profile is the answer.
			return s.paravets.GetByUserID(ctx, userID)
		}
		return nil, err
	}
	return profile, nil
}

// GetProfile returns the onboarding profile for the given account.
func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.ParavetProfile, error) {
	profile, err := s.paravets.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrParavetNotFound) {
			return nil, fmt.Errorf("%w: onboarding profile not found", domain.ErrNotFound)
		}
		return nil, err
	}
	return profile, nil
}

// getOrCreate loads the profile, creating it when absent. The upload
// endpoint can be the first touch of the flow.
func (s *Service) getOrCreate(ctx context.Context, userID uuid.UUID) (*domain.ParavetProfile, error) {
	profile, err := s.paravets.GetByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, store.ErrParavetNotFound) {
		return nil, err
	}
	return s.Initialize(ctx, userID)
}

// save persists the profile with a fresh completion figure.
func (s *Service) save(ctx context.Context, profile *domain.ParavetProfile) error {
	profile.UpdatedAt = time.Now().UTC()
	profile.RecomputeCompletion()
	return s.paravets.Update(ctx, profile)
}

// UpdatePersonalInfo replaces the personal-info group. Verification flags
// survive only when the underlying value is unchanged.
func (s *Service) UpdatePersonalInfo(ctx context.Context, userID uuid.UUID, in PersonalInfoInput) (*domain.ParavetProfile, error) {
	if in.FullName == "" {
		return nil, fmt.Errorf("%w: full name is required", domain.ErrValidation)
	}

	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	prev := profile.PersonalInfo
	profile.PersonalInfo = domain.ParavetPersonalInfo{
		FullName:        domain.VerifiedField{Value: in.FullName},
		MobileNumber:    domain.MobileNumber{Value: in.MobileNumber},
		ProfilePhotoURL: in.ProfilePhotoURL,
		Address:         in.Address,
	}
	if prev.FullName.Value == in.FullName {
		profile.PersonalInfo.FullName.Verified = prev.FullName.Verified
	}
	if prev.MobileNumber.Value == in.MobileNumber {
		profile.PersonalInfo.MobileNumber.Verified = prev.MobileNumber.Verified
		profile.PersonalInfo.MobileNumber.OTPVerified = prev.MobileNumber.OTPVerified
	}
	profile.CurrentStep = domain.StepPersonalInfo

	if err := s.save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// UpdateExperienceSkills replaces the experience group.
func (s *Service) UpdateExperienceSkills(ctx context.Context, userID uuid.UUID, in ExperienceInput) (*domain.ParavetProfile, error) {
	if in.Years < 0 {
		return nil, fmt.Errorf("%w: years of experience cannot be negative", domain.ErrValidation)
	}

	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	prev := profile.Experience
	profile.Experience = domain.ParavetExperience{
		Years:           domain.VerifiedInt{Value: in.Years},
		Skills:          in.Skills,
		PriorWorkplaces: in.PriorWorkplaces,
	}
	if prev.Years.Value == in.Years {
		profile.Experience.Years.Verified = prev.Years.Verified
	}
	profile.CurrentStep = domain.StepExperience

	if err := s.save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// UpdatePaymentInfo replaces the payment group.
func (s *Service) UpdatePaymentInfo(ctx context.Context, userID uuid.UUID, in PaymentInput) (*domain.ParavetProfile, error) {
	if in.AccountHolderName == "" {
		return nil, fmt.Errorf("%w: account holder name is required", domain.ErrValidation)
	}

	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	prev := profile.PaymentInfo
	profile.PaymentInfo = domain.ParavetPayment{
		AccountHolderName: domain.VerifiedField{Value: in.AccountHolderName},
		AccountNumber:     in.AccountNumber,
		IFSC:              in.IFSC,
		UPIID:             in.UPIID,
	}
	if prev.AccountHolderName.Value == in.AccountHolderName {
		profile.PaymentInfo.AccountHolderName.Verified = prev.AccountHolderName.Verified
	}
	profile.CurrentStep = domain.StepPayment

	if err := s.save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// UploadDocument records one uploaded document. The profile is created on
// the fly when this is the account's first onboarding call.
func (s *Service) UploadDocument(ctx context.Context, userID uuid.UUID, in DocumentInput) (*domain.ParavetProfile, error) {
	if in.FileURL == "" {
		return nil, fmt.Errorf("%w: file url is required", domain.ErrValidation)
	}

	profile, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	switch in.DocumentType {
	case DocumentGovernmentID:
		profile.Documents.GovernmentID = domain.GovernmentID{
			Type:    in.IDType,
			Number:  in.IDNumber,
			FileURL: in.FileURL,
		}
		if profile.Documents.GovernmentID.Type == "" {
			profile.Documents.GovernmentID.Type = "government_id"
		}
	case DocumentCertification:
		profile.Documents.CertificationProof = domain.DocumentProof{
			Type:    firstNonEmpty(in.IDType, DocumentCertification),
			FileURL: in.FileURL,
		}
	case DocumentVetRecommendation:
		profile.Documents.VetRecommendation = domain.DocumentProof{
			Type:    firstNonEmpty(in.IDType, DocumentVetRecommendation),
			FileURL: in.FileURL,
		}
	case DocumentProfilePhoto:
		profile.Documents.ProfilePhoto = domain.DocumentProof{
			Type:    DocumentProfilePhoto,
			FileURL: in.FileURL,
		}
		profile.PersonalInfo.ProfilePhotoURL = in.FileURL
	default:
		return nil, fmt.Errorf("%w: unknown document type %q", domain.ErrValidation, in.DocumentType)
	}

	if err := s.save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// AgreeToCodeOfConduct records the step-7 agreement. Declining is not a
// recordable state.
func (s *Service) AgreeToCodeOfConduct(ctx context.Context, userID uuid.UUID, agreed bool) (*domain.ParavetProfile, error) {
	if !agreed {
		return nil, fmt.Errorf("%w: code of conduct must be agreed to", domain.ErrValidation)
	}

	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.Compliance = domain.ParavetCompliance{
		AgreedToCodeOfConduct: true,
		AgreedAt:              time.Now().UTC(),
	}
	profile.CurrentStep = domain.StepCodeOfConduct

	if err := s.save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// CompleteTraining records the step-8 training outcome.
func (s *Service) CompleteTraining(ctx context.Context, userID uuid.UUID, in TrainingInput) (*domain.ParavetProfile, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.CompleteTraining(in.QuizPassed, in.Score)

	if err := s.paravets.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// SubmitApplication moves a complete application into admin review and
// emits the submitted event.
func (s *Service) SubmitApplication(ctx context.Context, userID uuid.UUID) (*domain.ParavetProfile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.Submitted {
		return nil, fmt.Errorf("%w: application already submitted", domain.ErrConflict)
	}

	if err := profile.Submit(); err != nil {
		return nil, err
	}
	if err := s.paravets.Update(ctx, profile); err != nil {
		return nil, err
	}

	s.emit(ctx, events.EventParavetSubmitted, submittedPayload{
		UserID:               userID,
		CompletionPercentage: profile.CompletionPercentage,
		SubmittedAt:          profile.SubmittedAt,
	})

	log.Info("paravet application submitted",
		slog.String("user_id", userID.String()),
		slog.Int("completion", profile.CompletionPercentage))
	return profile, nil
}

// ListUnverified returns applications awaiting review, oldest first.
func (s *Service) ListUnverified(ctx context.Context) ([]*domain.ParavetProfile, error) {
	return s.paravets.ListByApprovalStatus(ctx, domain.ApprovalUnderReview)
}

// Review applies an admin decision to a submitted application, recording
// the acting admin. Approval also promotes the linked account to the
// verified-paravet role.
func (s *Service) Review(ctx context.Context, userID, adminID uuid.UUID, action ReviewAction, reason string) (*domain.ParavetProfile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !profile.Submitted {
		return nil, fmt.Errorf("%w: application has not been submitted", domain.ErrValidation)
	}

	switch action {
	case ReviewApprove:
		profile.Approve(adminID)
	case ReviewReject:
		if reason == "" {
			return nil, fmt.Errorf("%w: rejection reason is required", domain.ErrValidation)
		}
		profile.Reject(reason)
	default:
		return nil, fmt.Errorf("%w: unknown review action %q", domain.ErrValidation, action)
	}

	if err := s.paravets.Update(ctx, profile); err != nil {
		return nil, err
	}
	if action == ReviewApprove {
		if err := s.users.UpdateRole(ctx, userID, domain.RoleVerifiedParavet); err != nil {
			return nil, fmt.Errorf("promoting approved paravet: %w", err)
		}
	}

	s.emit(ctx, events.EventParavetReviewed, reviewedPayload{
		UserID:  userID,
		AdminID: adminID,
		Action:  action,
		Reason:  reason,
	})

	log.Info("paravet application reviewed",
		slog.String("user_id", userID.String()),
		slog.String("admin_id", adminID.String()),
		slog.String("action", string(action)))
	return profile, nil
}

// VerifyField marks one onboarding field group as verified by its dotted
// document path, for example "personal_info.full_name".
func (s *Service) VerifyField(ctx context.Context, userID uuid.UUID, path string) (*domain.ParavetProfile, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := profile.VerifyFieldPath(path); err != nil {
		return nil, err
	}
	if err := s.paravets.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// emit publishes an event, logging instead of failing when no handler can
// take it; review and submission must not depend on subscribers.
func (s *Service) emit(ctx context.Context, eventType string, payload interface{}) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	event, err := events.NewApplicationEvent(eventType, payload)
	if err != nil {
		log.Warn("failed to build application event",
			slog.String("error", err.Error()),
			slog.String("event_type", eventType))
		return
	}
	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		log.Warn("failed to emit application event",
			slog.String("error", err.Error()),
			slog.String("event_type", eventType))
	}
}
