// README: User service resolves identities to account rows.
package user

import "context"

// Accounts is the persistence surface the service needs.
type Accounts interface {
	FindOrCreate(ctx context.Context, sub, email, name string) (*User, error)
}

type Service struct {
	store Accounts
}

func NewService(store Accounts) *Service {
	return &Service{store: store}
}

// Resolve maps a verified identity onto an account row, creating the row on
// first sight. An empty subject resolves to the shared guest account, so
// unauthenticated requests still get working history and usage endpoints.
func (s *Service) Resolve(ctx context.Context, sub, email, name string) (*User, error) {
	if sub == "" {
		sub = GuestSub
		name = "Guest"
	}
	return s.store.FindOrCreate(ctx, sub, email, name)
}
