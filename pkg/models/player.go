package models

import "time"

// Player identifies an authenticated editor client. Fields mirror the
// login service's JWT claims; anonymous connections (auth disabled) have
// no Player at all.
type Player struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Permissions int64  `json:"permissions"` // bitwise permission flags
	Activated   int64  `json:"activated"`   // >0 activated, 0 pending, -1 banned
	AuthMethod  string `json:"auth_method"`

	Connected   bool      `json:"connected"`
	ConnectedAt time.Time `json:"connected_at"`
}

// IsActive checks if the player account is activated and not banned.
func (p *Player) IsActive() bool {
	return p.Activated > 0
}

// IsBanned checks if the player is banned.
func (p *Player) IsBanned() bool {
	return p.Activated == -1
}
