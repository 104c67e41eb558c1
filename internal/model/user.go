package model

// User is the signed-in profile. Sign-in is local-only; no credential is
// verified against anything.
type User struct {
	// ID is the unique identifier for this profile.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Email is optional contact info shown on the profile.
	Email string `json:"email,omitempty"`

	// Phone is optional contact info shown on the profile.
	Phone string `json:"phone,omitempty"`
}
