// README: User domain model keyed by the identity provider subject.
package user

import "time"

// User is one account row. Auth0Sub is the stable identity-provider subject;
// guest sessions share the sentinel subject "guest-local".
type User struct {
	ID        int64     `json:"id"`
	Auth0Sub  string    `json:"-"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// GuestSub identifies anonymous sessions. All unauthenticated traffic maps
// onto a single shared guest account.
const GuestSub = "guest-local"
