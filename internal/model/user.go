package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User represents an authenticated user in the system
type User struct {
	BaseModel
	Name     string     `gorm:"type:varchar(100);not null" json:"name"`
	Email    string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password string     `gorm:"type:varchar(255);not null" json:"-"` // bcrypt hash, hidden from JSON
	Role     Role       `gorm:"type:varchar(16);not null" json:"role"`
	Branch   UserBranch `gorm:"type:varchar(32);not null" json:"branch"`
	Active   bool       `gorm:"not null" json:"active"`
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// HasRole reports whether the user holds one of roles.
func (u *User) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      Role       `json:"role"`
	Branch    UserBranch `json:"branch"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"createdAt"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Branch:    u.Branch,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}
