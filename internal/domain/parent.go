package domain

import (
	"time"

	"github.com/google/uuid"
)

// Parent is the pet-parent profile linked to a pet_parent account. It is
// created as a stub at registration and filled in afterwards.
type Parent struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Gender    string    `json:"gender,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewParent creates a parent profile stub for the given account.
func NewParent(userID uuid.UUID, name, email, phone string) *Parent {
	now := time.Now().UTC()
	return &Parent{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Email:     email,
		Phone:     phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ParentUpdate carries a partial update; nil fields are left unchanged.
type ParentUpdate struct {
	Name     *string
	Phone    *string
	Address  *string
	Gender   *string
	ImageURL *string
}

// Apply copies the non-nil fields of the update onto the profile and
// refreshes UpdatedAt.
func (p *Parent) Apply(upd ParentUpdate) {
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Phone != nil {
		p.Phone = *upd.Phone
	}
	if upd.Address != nil {
		p.Address = *upd.Address
	}
	if upd.Gender != nil {
		p.Gender = *upd.Gender
	}
	if upd.ImageURL != nil {
		p.ImageURL = *upd.ImageURL
	}
	p.UpdatedAt = time.Now().UTC()
}
