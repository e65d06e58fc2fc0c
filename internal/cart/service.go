package cart

import "time"

// Service orchestrates cart operations. Every mutation is followed by a full
// Get so the response always reflects the stored cart; the refetched list is
// the source of truth for clients.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Add(userID, productID, qty int) ([]CartItem, error) {
	if userID <= 0 || productID <= 0 {
		return nil, ErrNotFound
	}
	if qty == 0 {
		return s.repo.Get(userID)
	}
	if err := s.repo.Add(userID, productID, qty, now()); err != nil {
		return nil, err
	}
	return s.repo.Get(userID)
}

func (s *Service) Set(userID, productID, qty int) ([]CartItem, error) {
	if userID <= 0 || productID <= 0 {
		return nil, ErrNotFound
	}
	if err := s.repo.Set(userID, productID, qty, now()); err != nil {
		return nil, err
	}
	return s.repo.Get(userID)
}

func (s *Service) Remove(userID, productID int) ([]CartItem, error) {
	return s.Set(userID, productID, 0)
}

func (s *Service) Get(userID int) ([]CartItem, error) {
	if userID <= 0 {
		return nil, ErrNotFound
	}
	return s.repo.Get(userID)
}

func (s *Service) Clear(userID int) error {
	if userID <= 0 {
		return ErrNotFound
	}
	return s.repo.Clear(userID, now())
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
