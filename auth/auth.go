// Package auth gates session creation. Credentials are injected from
// configuration; the core never embeds them.
package auth

import "crypto/subtle"

// Authenticator verifies a username/password pair.
type Authenticator interface {
	Verify(username, password string) bool
}

// Static verifies against an in-memory user table.
type Static struct {
	users map[string]string
}

// NewStatic builds an authenticator from a username→password map.
func NewStatic(users map[string]string) *Static {
	copied := make(map[string]string, len(users))
	for u, p := range users {
		copied[u] = p
	}
	return &Static{users: copied}
}

// Verify reports whether the pair matches a configured user. The password
// comparison is constant-time.
func (s *Static) Verify(username, password string) bool {
	want, ok := s.users[username]
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(want), []byte(password)) == 1
}

// Open allows every pair. Used when the dashboard runs without login.
type Open struct{}

func (Open) Verify(string, string) bool { return true }
