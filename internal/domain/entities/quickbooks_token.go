package entities

import "time"

// QuickBooksToken is the stored OAuth connection to QuickBooks. A single
// record per deployment; an empty RefreshToken means not connected.
type QuickBooksToken struct {
	RealmID               string    `json:"realm_id"`
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func (t QuickBooksToken) IsZero() bool { return t.RefreshToken == "" }

// AccessValid reports whether the access token is still usable at now,
// with a small safety margin for clock skew and request latency.
func (t QuickBooksToken) AccessValid(now time.Time) bool {
	return t.AccessToken != "" && now.Add(time.Minute).Before(t.AccessTokenExpiresAt)
}

// RefreshValid reports whether the refresh token can still mint new access
// tokens.
func (t QuickBooksToken) RefreshValid(now time.Time) bool {
	return t.RefreshToken != "" && now.Before(t.RefreshTokenExpiresAt)
}
