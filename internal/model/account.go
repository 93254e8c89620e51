package model

import "time"

// Role is the authorization level of an account.
type Role string

const (
	RoleUser       Role = "USER"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// Account is a registered identity. OTP fields hold a pending password-reset code.
type Account struct {
	Model
	Email          string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash   string     `json:"-" gorm:"column:password;size:255;not null"`
	Name           string     `json:"name" gorm:"size:255;not null"`
	Role           Role       `json:"role" gorm:"size:20;not null;default:USER"`
	ProfilePicture *string    `json:"profile_picture"`
	OTP            *string    `json:"-" gorm:"column:otp;size:6"`
	OTPExpiry      *time.Time `json:"-" gorm:"column:otp_expiry"`
}

func (Account) TableName() string {
	return "users"
}

// HasPendingOTP reports whether a reset code and its expiry are both stored.
func (a *Account) HasPendingOTP() bool {
	return a.OTP != nil && a.OTPExpiry != nil
}

// IsAdmin reports whether the account may use administrative endpoints.
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin || a.Role == RoleSuperAdmin
}
