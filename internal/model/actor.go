package model

import "github.com/google/uuid"

// Actor is the authenticated caller behind a request
type Actor struct {
	UserID      uuid.UUID `json:"user_id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	Privileges  []string  `json:"privileges"`
}

// HasPrivilege checks if the actor holds a specific privilege
func (a *Actor) HasPrivilege(code string) bool {
	for _, p := range a.Privileges {
		if p == code {
			return true
		}
	}
	return false
}
