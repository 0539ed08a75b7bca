package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Bio       *string   `json:"bio,omitempty" db:"bio"`
	AvatarURL *string   `json:"avatar_url,omitempty" db:"avatar_url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Profile is a user together with both projections of their follow edges.
type Profile struct {
	User
	Followers []uuid.UUID `json:"followers"`
	Following []uuid.UUID `json:"following"`
}

type RegisterProfileInput struct {
	Name  string  `json:"name" validate:"required,min=1,max=100"`
	Email string  `json:"email" validate:"required,email"`
	Bio   *string `json:"bio,omitempty" validate:"omitempty,max=500"`
}

type UpdateProfileInput struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Bio  *string `json:"bio,omitempty" validate:"omitempty,max=500"`
}
