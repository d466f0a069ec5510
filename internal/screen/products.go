package screen

import (
	"context"
	"io"
	"log"

	"github.com/google/uuid"
	"github.com/restaurant-pos/admin/internal/api"
	"github.com/restaurant-pos/admin/internal/notify"
)

// ProductsAPI is the slice of the gateway client the products screen needs.
type ProductsAPI interface {
	Products(ctx context.Context, page, size int) ([]api.Product, *api.Page, error)
	Categories(ctx context.Context, page, size int) ([]api.Category, *api.Page, error)
	CreateProduct(ctx context.Context, in api.ProductInput) error
	UpdateProduct(ctx context.Context, id string, in api.ProductInput) error
	DeleteProduct(ctx context.Context, id string) error
	Upload(ctx context.Context, filename string, file io.Reader) (string, error)
	AttachProductImage(ctx context.Context, id, imageURL string) error
	RemoveProductImage(ctx context.Context, id string) error
}

// ProductsScreen manages the menu: product CRUD plus the two-step image
// flow (upload, then attach by URL).
type ProductsScreen struct {
	client ProductsAPI
	toasts *notify.Center

	products   []api.Product
	categories []api.Category

	CategoryFilter string // category id, "" means all
	Search         string
}

func NewProductsScreen(client ProductsAPI, toasts *notify.Center) *ProductsScreen {
	return &ProductsScreen{client: client, toasts: toasts}
}

// Load fetches products and categories. A category failure degrades the
// filter dropdown but keeps the product list usable.
func (s *ProductsScreen) Load(ctx context.Context) error {
	products, _, err := s.client.Products(ctx, 0, 1000)
	if err != nil {
		s.toasts.Error(notify.MsgLoadFailed)
		return err
	}
	s.products = products

	categories, _, err := s.client.Categories(ctx, 0, 100)
	if err != nil {
		log.Printf("ERROR: load categories: %v", err)
	} else {
		s.categories = categories
	}
	return nil
}

func (s *ProductsScreen) Products() []api.Product    { return s.products }
func (s *ProductsScreen) Categories() []api.Category { return s.categories }

// CategoryName resolves a category id for display.
func (s *ProductsScreen) CategoryName(id uuid.UUID) string {
	for _, c := range s.categories {
		if c.ID == id {
			return c.Name
		}
	}
	return "Không xác định"
}

// Filtered applies the category filter and name search.
func (s *ProductsScreen) Filtered() []api.Product {
	var out []api.Product
	for _, p := range s.products {
		if s.CategoryFilter != "" && p.CategoryID.String() != s.CategoryFilter {
			continue
		}
		if !containsFold(p.Name, s.Search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Create validates and creates a product, then re-fetches the list.
func (s *ProductsScreen) Create(ctx context.Context, in api.ProductInput) error {
	if in.Name == "" || in.CategoryID == "" || !in.Price.IsPositive() {
		s.toasts.Error(notify.MsgMissingInput)
		return errMissingInput
	}
	if err := s.client.CreateProduct(ctx, in); err != nil {
		s.toasts.Error(api.ErrorMessage(err, notify.MsgSaveFailed))
		return err
	}
	s.toasts.Success(notify.MsgCreated)
	return s.Load(ctx)
}

// Update saves product field changes, then re-fetches.
func (s *ProductsScreen) Update(ctx context.Context, id string, in api.ProductInput) error {
	if err := s.client.UpdateProduct(ctx, id, in); err != nil {
		s.toasts.Error(api.ErrorMessage(err, notify.MsgSaveFailed))
		return err
	}
	s.toasts.Success(notify.MsgUpdated)
	return s.Load(ctx)
}

// Delete removes a product, then re-fetches.
func (s *ProductsScreen) Delete(ctx context.Context, id string) error {
	if err := s.client.DeleteProduct(ctx, id); err != nil {
		s.toasts.Error(api.ErrorMessage(err, notify.MsgDeleteFailed))
		return err
	}
	s.toasts.Success(notify.MsgDeleted)
	return s.Load(ctx)
}

// SetImage uploads the file and attaches the resulting URL to the product.
// Two distinct backend calls; a failure between them leaves an orphaned
// upload, which the backend garbage-collects.
func (s *ProductsScreen) SetImage(ctx context.Context, id, filename string, file io.Reader) error {
	url, err := s.client.Upload(ctx, filename, file)
	if err != nil {
		s.toasts.Error(api.ErrorMessage(err, notify.MsgSaveFailed))
		return err
	}
	if err := s.client.AttachProductImage(ctx, id, url); err != nil {
		s.toasts.Error(api.ErrorMessage(err, notify.MsgSaveFailed))
		return err
	}
	s.toasts.Success(notify.MsgUpdated)
	return s.Load(ctx)
}

// ClearImage detaches the product's image.
func (s *ProductsScreen) ClearImage(ctx context.Context, id string) error {
	if err := s.client.RemoveProductImage(ctx, id); err != nil {
		s.toasts.Error(api.ErrorMessage(err, notify.MsgDeleteFailed))
		return err
	}
	s.toasts.Success(notify.MsgUpdated)
	return s.Load(ctx)
}
