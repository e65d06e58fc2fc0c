package product

import (
	"errors"
	"sort"
	"strings"
	"sync"
)

var ErrNotFound = errors.New("product not found")

type Repository interface {
	List(f Filter) (Page, error)
	GetByID(id int) (Product, error)
	GetBySlug(slug string) (Product, error)
	ListSummariesByIDs(ids []int) ([]Summary, error)
	ListFeatured(limit int) ([]Product, error)
	ListLatest(limit int) ([]Product, error)
	ListTopRated(limit int) ([]Product, error)
}

// InMemoryRepository backs tests and local runs.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Product
	nextID  int
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	r := &InMemoryRepository{storage: make([]Product, 0, len(seed)), nextID: 1}
	maxID := 0
	for _, p := range seed {
		r.storage = append(r.storage, p)
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) List(f Filter) (Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]Product, 0, len(r.storage))
	q := strings.ToLower(f.Query)
	for _, p := range r.storage {
		if f.CategoryID != nil && (p.CategoryID == nil || *p.CategoryID != *f.CategoryID) {
			continue
		}
		if f.BrandID != nil && (p.BrandID == nil || *p.BrandID != *f.BrandID) {
			continue
		}
		if f.StoreID != nil && p.StoreID != *f.StoreID {
			continue
		}
		if f.MinPrice != nil && p.SellingPrice < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && p.SellingPrice > *f.MaxPrice {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			continue
		}
		matched = append(matched, p)
	}

	return paginate(matched, f.Page, f.Limit), nil
}

func paginate(items []Product, page, limit int) Page {
	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}
	total := len(items)
	totalPages := (total + limit - 1) / limit
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	out := make([]Product, end-start)
	copy(out, items[start:end])
	return Page{Items: out, Page: page, TotalPages: totalPages, TotalItems: total}
}

func (r *InMemoryRepository) GetByID(id int) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.storage {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) GetBySlug(slug string) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.storage {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) ListSummariesByIDs(ids []int) ([]Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Summary, 0, len(ids))
	for _, id := range ids {
		for _, p := range r.storage {
			if p.ID == id {
				out = append(out, p.summary())
				break
			}
		}
	}
	return out, nil
}

func (r *InMemoryRepository) ListFeatured(limit int) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Product, 0, limit)
	for _, p := range r.storage {
		if p.Featured {
			out = append(out, p)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r *InMemoryRepository) ListLatest(limit int) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Product, len(r.storage))
	copy(out, r.storage)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *InMemoryRepository) ListTopRated(limit int) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Product, len(r.storage))
	copy(out, r.storage)
	sort.Slice(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Create is used by tests to seed products through the same path the
// repository consumers use.
func (r *InMemoryRepository) Create(p Product) Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == 0 {
		p.ID = r.nextID
		r.nextID++
	}
	r.storage = append(r.storage, p)
	return p
}
