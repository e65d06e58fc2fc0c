package brand

// Service provides business logic for brands.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// List returns up to `limit` brand items.
func (s *Service) List(limit int) []BrandItem {
	items, err := s.repo.List(limit)
	if err != nil {
		return []BrandItem{}
	}
	return items
}
