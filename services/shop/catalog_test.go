package shop

import (
	"context"
	"testing"

	productRepo "github.com/KevinDarioIguaran/LCLGSC/database/repository/product"
	"github.com/KevinDarioIguaran/LCLGSC/models"
)

type fakeCatalogRepo struct {
	categories map[string]*models.Category
	upserts    int
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{categories: map[string]*models.Category{}}
}

func (f *fakeCatalogRepo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	return nil, productRepo.ErrNotFound
}
func (f *fakeCatalogRepo) Create(ctx context.Context, p *models.Product) error { return nil }
func (f *fakeCatalogRepo) Update(ctx context.Context, p *models.Product) error { return nil }
func (f *fakeCatalogRepo) Delete(ctx context.Context, id, sellerCode string) error {
	return nil
}
func (f *fakeCatalogRepo) SearchByName(ctx context.Context, name string) ([]models.Product, error) {
	return nil, nil
}
func (f *fakeCatalogRepo) ListByCategory(ctx context.Context, categoryID string, limit int) ([]models.Product, error) {
	return nil, nil
}
func (f *fakeCatalogRepo) ListBySeller(ctx context.Context, sellerCode string) ([]models.Product, error) {
	return nil, nil
}
func (f *fakeCatalogRepo) SearchBySeller(ctx context.Context, sellerCode, name, categoryID string) ([]models.Product, error) {
	return nil, nil
}
func (f *fakeCatalogRepo) BestSellers(ctx context.Context, limit int) ([]models.Product, error) {
	return nil, nil
}

func (f *fakeCatalogRepo) Categories(ctx context.Context) ([]models.Category, error) {
	out := make([]models.Category, 0, len(f.categories))
	for _, c := range f.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCatalogRepo) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	for _, c := range f.categories {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, productRepo.ErrNotFound
}

func (f *fakeCatalogRepo) UpsertCategory(ctx context.Context, c *models.Category) error {
	cp := *c
	f.categories[c.ID] = &cp
	f.upserts++
	return nil
}

func TestSaveCategoryCreates(t *testing.T) {
	repo := newFakeCatalogRepo()
	svc := &DefaultCatalogService{Products: repo}

	cat, err := svc.SaveCategory(context.Background(), "cat-1", "Bebidas Frías")
	if err != nil {
		t.Fatalf("SaveCategory: %v", err)
	}
	if cat.Slug != "bebidas-frías" {
		t.Errorf("slug = %q", cat.Slug)
	}
	if cat.SalesCount != 0 {
		t.Errorf("new category sales = %d, want 0", cat.SalesCount)
	}
	if repo.categories["cat-1"] == nil {
		t.Fatal("category was not stored")
	}
}

func TestSaveCategoryRenameKeepsSales(t *testing.T) {
	repo := newFakeCatalogRepo()
	repo.categories["cat-1"] = &models.Category{ID: "cat-1", Name: "Snacks", Slug: "snacks", SalesCount: 42}
	svc := &DefaultCatalogService{Products: repo}

	cat, err := svc.SaveCategory(context.Background(), "cat-1", "Mecato")
	if err != nil {
		t.Fatalf("SaveCategory: %v", err)
	}
	if cat.Name != "Mecato" || cat.Slug != "mecato" {
		t.Errorf("got %q/%q, want Mecato/mecato", cat.Name, cat.Slug)
	}
	if cat.SalesCount != 42 {
		t.Errorf("sales = %d, want 42 preserved across rename", cat.SalesCount)
	}
}

func TestSaveCategoryRejectsEmptyName(t *testing.T) {
	repo := newFakeCatalogRepo()
	svc := &DefaultCatalogService{Products: repo}

	if _, err := svc.SaveCategory(context.Background(), "cat-1", "   "); err == nil {
		t.Fatal("expected error for blank name")
	}
	if repo.upserts != 0 {
		t.Errorf("upserts = %d, want 0", repo.upserts)
	}
}
