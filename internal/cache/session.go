package cache

import (
	"context"
	"fmt"
)

// Session is the per-login record held in the session store. It carries at
// most the user identifier and display name, and lives until explicit logout.
type Session struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
}

func sessionKey(jti string) string {
	return fmt.Sprintf("session:%s", jti)
}

// SessionStoreAvailable reports whether a session store is backing this
// process. Without one, tokens are validated on signature alone and logout
// cannot revoke them early.
func SessionStoreAvailable() bool {
	return client != nil
}

// SaveSession records an active session under its token ID. Sessions have no
// expiry; they are removed by DeleteSession on logout.
func SaveSession(ctx context.Context, jti string, s Session) error {
	return SetJSON(ctx, sessionKey(jti), s, 0)
}

// GetSession looks up the session for a token ID. found is false when the
// session was logged out or never existed.
func GetSession(ctx context.Context, jti string) (Session, bool, error) {
	var s Session
	found, err := GetJSON(ctx, sessionKey(jti), &s)
	return s, found, err
}

// DeleteSession removes the session record. Deleting an absent session is not
// an error.
func DeleteSession(ctx context.Context, jti string) {
	Invalidate(ctx, sessionKey(jti))
}
