package store

// Service provides business logic for storefront store listings.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

func (s *Service) List(limit int) []Store {
	items, err := s.repo.List(limit)
	if err != nil {
		return []Store{}
	}
	return items
}

func (s *Service) GetByID(id int) (Store, error) {
	return s.repo.GetByID(id)
}
