package product

// ServiceInterface is the subset consumed by the cart, wishlist and order
// packages for enriching responses with product details.
type ServiceInterface interface {
	ListSummariesByIDs(ids []int) ([]Summary, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(f Filter) (Page, error) {
	return s.repo.List(f)
}

func (s *Service) GetByID(id int) (Product, error) {
	return s.repo.GetByID(id)
}

func (s *Service) GetBySlug(slug string) (Product, error) {
	return s.repo.GetBySlug(slug)
}

func (s *Service) ListSummariesByIDs(ids []int) ([]Summary, error) {
	return s.repo.ListSummariesByIDs(ids)
}

// Sections assembles the home page rails in one call.
func (s *Service) Sections(limit int) (Sections, error) {
	featured, err := s.repo.ListFeatured(limit)
	if err != nil {
		return Sections{}, err
	}
	latest, err := s.repo.ListLatest(limit)
	if err != nil {
		return Sections{}, err
	}
	topRated, err := s.repo.ListTopRated(limit)
	if err != nil {
		return Sections{}, err
	}
	return Sections{Featured: featured, Latest: latest, TopRated: topRated}, nil
}
