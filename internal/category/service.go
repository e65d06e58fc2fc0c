package category

// Service provides business logic for categories.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// List returns up to `limit` category items.
func (s *Service) List(limit int) []CategoryItem {
	items, err := s.repo.List(limit)
	if err != nil {
		return []CategoryItem{}
	}
	return items
}

// Subcategories returns the subcategories of one category.
func (s *Service) Subcategories(categoryID int) []Subcategory {
	items, err := s.repo.ListSubcategories(categoryID)
	if err != nil {
		return []Subcategory{}
	}
	return items
}
