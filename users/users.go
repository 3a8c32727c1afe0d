package users

import (
	"time"
)

// RoleType is the database role the auth provider assigns to a user.
type RoleType string

const (
	RoleAuthenticated RoleType = "authenticated"
	RoleAnon          RoleType = "anon"
)

// User is the identity returned by the auth provider's "get current user" call.
// The dashboard only relies on ID; the rest are the raw provider claims, kept so
// views can show them.
type User struct {
	ID           string         `json:"id"`                        // Provider user id, the key member profiles are linked by
	Email        string         `json:"email,omitempty"`           // Email address the user signed up with
	Phone        string         `json:"phone,omitempty"`           // Optional phone number
	Role         RoleType       `json:"role,omitempty"`            // Database role (authenticated)
	Audience     string         `json:"aud,omitempty"`             // Token audience
	AppMetadata  map[string]any `json:"app_metadata,omitempty"`    // Provider controlled metadata
	UserMetadata map[string]any `json:"user_metadata,omitempty"`   // User editable metadata
	CreatedAt    time.Time      `json:"created_at,omitempty"`      // When the identity was created
	LastSignInAt *time.Time     `json:"last_sign_in_at,omitempty"` // Most recent sign in
	ConfirmedAt  *time.Time     `json:"confirmed_at,omitempty"`    // When the email was confirmed
}

// IsConfirmed reports whether the user has confirmed their email address.
func (u *User) IsConfirmed() bool {
	return u != nil && u.ConfirmedAt != nil
}

// DisplayName prefers the name the user chose at sign up and falls back to
// their email address.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	for _, key := range []string{"display_name", "full_name", "name"} {
		if name, ok := u.UserMetadata[key].(string); ok && name != "" {
			return name
		}
	}
	return u.Email
}
