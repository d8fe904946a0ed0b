// README: History service: save, list, fetch and delete generation runs.
package history

import (
	"context"
	"errors"
)

var (
	ErrNotFound   = errors.New("history not found")
	ErrBadRequest = errors.New("bad request")
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// Records is the persistence surface the service needs.
type Records interface {
	Insert(ctx context.Context, h *History) error
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]History, error)
	GetByID(ctx context.Context, id int64) (*History, error)
	Delete(ctx context.Context, id, userID int64) error
}

type Service struct {
	store Records
}

func NewService(store Records) *Service {
	return &Service{store: store}
}

// SaveCommand captures one schedule run for later replay.
type SaveCommand struct {
	UserID      int64
	Title       string
	Subtitle    string
	UserRequest string
	TargetDate  string
	PathOptions []byte
	Metadata    []byte
}

func (s *Service) Save(ctx context.Context, cmd SaveCommand) (*History, error) {
	if cmd.UserID == 0 || len(cmd.PathOptions) == 0 {
		return nil, ErrBadRequest
	}
	title := cmd.Title
	if title == "" {
		title = cmd.UserRequest
	}
	h := &History{
		UserID:      cmd.UserID,
		Title:       title,
		Subtitle:    cmd.Subtitle,
		UserRequest: cmd.UserRequest,
		TargetDate:  cmd.TargetDate,
		PathOptions: cmd.PathOptions,
		Metadata:    cmd.Metadata,
	}
	if err := s.store.Insert(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

// List returns the user's saved runs, newest first. limit defaults to 20 and
// caps at 100; a negative offset clamps to 0.
func (s *Service) List(ctx context.Context, userID int64, limit, offset int) ([]History, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.ListByUser(ctx, userID, limit, offset)
}

// Get fetches one history. Another user's record reads as not-found so the
// response never reveals whether the id exists.
func (s *Service) Get(ctx context.Context, id, userID int64) (*History, error) {
	h, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if h.UserID != userID {
		return nil, ErrNotFound
	}
	return h, nil
}

func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	return s.store.Delete(ctx, id, userID)
}
