package domain

import "strings"

// UserRecord is one persisted account, keyed by Email.
//
// Role and DisplayName may be empty on records written before those fields
// existed; read them through EffectiveRole and EffectiveDisplayName.
type UserRecord struct {
	Email          string  `json:"email"`
	Password       string  `json:"password"`
	Role           Role    `json:"role,omitempty"`
	DisplayName    string  `json:"displayName,omitempty"`
	ProfilePicture *string `json:"profilePicture,omitempty"`
}

// NewUserRecord builds the record stored by a fresh registration.
func NewUserRecord(email, password string) UserRecord {
	return UserRecord{
		Email:       email,
		Password:    password,
		Role:        RoleUser,
		DisplayName: LocalPart(email),
	}
}

func (u UserRecord) EffectiveRole() Role {
	if u.Role == "" {
		return RoleUser
	}
	return u.Role
}

func (u UserRecord) EffectiveDisplayName() string {
	if u.DisplayName == "" {
		return LocalPart(u.Email)
	}
	return u.DisplayName
}

// Profile returns the client view of u with legacy defaults applied.
// u itself is not modified.
func (u UserRecord) Profile() ProfileView {
	return ProfileView{
		Email:          u.Email,
		Role:           u.EffectiveRole(),
		DisplayName:    u.EffectiveDisplayName(),
		ProfilePicture: u.ProfilePicture,
	}
}

// ProfileView is what GET /me returns.
type ProfileView struct {
	Email          string  `json:"email"`
	Role           Role    `json:"role"`
	DisplayName    string  `json:"displayName"`
	ProfilePicture *string `json:"profilePicture"`
}

// LocalPart returns the part of email before the first '@', or the whole
// string when there is none.
func LocalPart(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}

// FindByEmail returns the index of the record whose email equals email
// exactly, or -1.
func FindByEmail(users []UserRecord, email string) int {
	for i := range users {
		if users[i].Email == email {
			return i
		}
	}
	return -1
}
