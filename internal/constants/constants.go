package constants

import "time"

// Context keys
const (
	ContextKeyUserID = "user_id"
)

// Session / auth
const (
	SessionCookieName = "blossom_session"
	DefaultTokenTTL   = 20 * time.Minute

	// MinPasswordEntropy is the bits-of-entropy floor enforced at signup.
	MinPasswordEntropy = 40

	// BcryptMaxPasswordBytes is bcrypt's input limit; longer passwords are
	// truncated to this many bytes before hashing and verification.
	BcryptMaxPasswordBytes = 72
)

// OTP windows
const (
	OTPLength             = 6
	VerifyEmailOTPExpiry  = 30 * time.Minute
	ForgotPasswordExpiry  = 15 * time.Minute
)

// XP and pet rules
const (
	DefaultXP = 100

	PetFeedCost      = 35
	PetFeedHungerCut = 50
	PetMaxHunger     = 100
	PetAgeStep       = 0.1
	PetStarvationDays = 7
)

// Themes
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)
