package mockpos

import (
	"sort"

	"github.com/google/uuid"
)

// Categories lists categories sorted by name.
func (s *Store) Categories() []*Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ProductsByCategory lists one category's products sorted by name.
func (s *Store) ProductsByCategory(categoryID uuid.UUID) ([]*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[categoryID]; !ok {
		return nil, ErrNotFound
	}
	var out []*Product
	for _, p := range s.products {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Products lists all products sorted by name.
func (s *Store) Products() []*Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Product returns one product by id.
func (s *Store) Product(id uuid.UUID) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

// CreateProduct adds a product with an empty inventory row.
func (s *Store) CreateProduct(p *Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[p.CategoryID]; !ok {
		return ErrNotFound
	}
	p.ID = uuid.New()
	s.products[p.ID] = p
	s.inventories[p.ID] = &Inventory{ID: uuid.New(), ProductID: p.ID}
	return nil
}

// UpdateProduct replaces the mutable fields of a product.
func (s *Store) UpdateProduct(id uuid.UUID, p *Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.products[id]
	if !ok {
		return ErrNotFound
	}
	if _, ok := s.categories[p.CategoryID]; !ok {
		return ErrNotFound
	}
	existing.Name = p.Name
	existing.Price = p.Price
	existing.CategoryID = p.CategoryID
	return nil
}

// SetProductImage attaches or clears the product image URL.
func (s *Store) SetProductImage(id uuid.UUID, imageURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return ErrNotFound
	}
	p.ImageURL = imageURL
	return nil
}

// DeleteProduct removes a product. Its inventory row is kept so stock
// history survives, which the console renders with a placeholder name.
func (s *Store) DeleteProduct(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return ErrNotFound
	}
	delete(s.products, id)
	return nil
}

// Tables lists tables sorted by code.
func (s *Store) Tables() []*Table {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Table, 0, len(s.tables))
	for _, t := range s.tables {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Table returns one table by id.
func (s *Store) Table(id uuid.UUID) (*Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tables[id]
	if !ok {
		return nil, ErrNotFound
	}
	return t, nil
}

// CreateTable adds a table.
func (s *Store) CreateTable(t *Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = uuid.New()
	s.tables[t.ID] = t
}

// UpdateTable replaces the mutable fields of a table.
func (s *Store) UpdateTable(id uuid.UUID, t *Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.tables[id]
	if !ok {
		return ErrNotFound
	}
	existing.Code = t.Code
	existing.Capacity = t.Capacity
	return nil
}

// DeleteTable removes a table unless it has an active order.
func (s *Store) DeleteTable(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tables[id]; !ok {
		return ErrNotFound
	}
	if s.activeOrderForTable(id) != nil {
		return ErrTableOccupied
	}
	delete(s.tables, id)
	return nil
}

// TableStatus derives the table's status from its active order.
func (s *Store) TableStatus(id uuid.UUID) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tableStatus(id)
}

// Users lists staff accounts sorted by email.
func (s *Store) Users() []*User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out
}

// UpdateUser replaces the mutable profile fields. Email stays fixed.
func (s *Store) UpdateUser(id uuid.UUID, in *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	existing.Phone = in.Phone
	existing.FirstName = in.FirstName
	existing.LastName = in.LastName
	existing.FullName = in.FullName
	existing.Username = in.Username
	if in.RoleCode != "" {
		existing.RoleCode = in.RoleCode
	}
	return nil
}
