package postgres

import (
	"context"

	"github.com/Masterminds/squirrel"

	"stockyard/internal/domain"
	"stockyard/internal/domain/catalogs/product"
)

// ProductRepo implements product.FilteredRepository.
type ProductRepo struct {
	*BaseCatalogRepo[*product.Product]
}

var _ product.FilteredRepository = (*ProductRepo)(nil)

// NewProductRepo creates the product repository.
func NewProductRepo(tm *TxManager) *ProductRepo {
	return &ProductRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			tm,
			"products",
			ExtractDBColumns[product.Product](),
			func() *product.Product { return &product.Product{} },
		),
	}
}

// ListFiltered retrieves products with material type and status filters.
func (r *ProductRepo) ListFiltered(ctx context.Context, filter product.ListFilter) (domain.ListResult[*product.Product], error) {
	q := r.Builder().
		Select(ExtractDBColumns[product.Product]()...).
		From("products")

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"code": pattern},
		})
	}
	if filter.MaterialType != "" {
		q = q.Where(squirrel.Eq{"material_type": filter.MaterialType})
	}
	if filter.Status != "" {
		q = q.Where(squirrel.Eq{"status": filter.Status})
	}

	return r.ListQuery(ctx, q, filter.ListFilter)
}
