package entity

import "time"

// Company representa la empresa de un usuario. El dueño es OwnerUserID; los
// invitados (rol GUEST) comparten el mismo CompanyID en su cuenta.
type Company struct {
	ID           string
	OwnerUserID  string
	Name         string
	CIF          string
	Address      string
	IsAutonomous bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
