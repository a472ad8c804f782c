package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/query"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productSelect = `
	SELECT pr.id, pr.name, c.id, c.name, cp.id, cp.name
	FROM products pr
	JOIN categories c ON c.id = pr.category_id
	LEFT JOIN categories cp ON cp.id = c.parent_id`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func (r *ProductRepo) FindAll(ctx context.Context) ([]*entity.Product, error) {
	return r.list(ctx, productSelect+` ORDER BY pr.id`)
}

func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	return r.one(ctx, productSelect+` WHERE pr.id = $1`, id)
}

// GetByName devuelve el producto de menor ID con ese nombre.
func (r *ProductRepo) GetByName(ctx context.Context, name string) (*entity.Product, error) {
	return r.one(ctx, productSelect+` WHERE pr.name = $1 ORDER BY pr.id LIMIT 1`, name)
}

func (r *ProductRepo) Search(ctx context.Context, tok query.Token) ([]*entity.Product, error) {
	where, args := productFilter(tok)
	return r.list(ctx, productSelect+` WHERE `+where+` ORDER BY pr.id`, args...)
}

func (r *ProductRepo) List(ctx context.Context, req query.PageRequest) (query.Page[*entity.Product], error) {
	page := query.Page[*entity.Product]{PageRequest: req}
	clause, err := pageClause(productSortColumns, "pr.id", req)
	if err != nil {
		return page, err
	}
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&page.Total); err != nil {
		return page, fmt.Errorf("count products: %w", err)
	}
	page.Items, err = r.list(ctx, productSelect+clause)
	return page, err
}

// Save inserta (ID == 0) o reemplaza el producto. La categoría debe estar persistida.
func (r *ProductRepo) Save(ctx context.Context, p *entity.Product) (*entity.Product, error) {
	categoryID := nullableID(p.CategoryID())
	if categoryID == nil {
		return nil, fmt.Errorf("save product %q: categoría no persistida: %w", p.Name, domain.ErrNotFound)
	}

	id := p.ID
	if id == 0 {
		err := r.q.QueryRow(ctx,
			`INSERT INTO products (name, category_id) VALUES ($1, $2) RETURNING id`,
			p.Name, categoryID,
		).Scan(&id)
		if err != nil {
			return nil, saveError("insert product", err)
		}
	} else {
		cmd, err := r.q.Exec(ctx,
			`UPDATE products SET name = $2, category_id = $3 WHERE id = $1`,
			id, p.Name, categoryID,
		)
		if err != nil {
			return nil, saveError("update product", err)
		}
		if cmd.RowsAffected() == 0 {
			return nil, fmt.Errorf("update product %d: %w", id, domain.ErrNotFound)
		}
	}
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		return deleteError("delete product", err)
	}
	return nil
}

func (r *ProductRepo) one(ctx context.Context, sql string, args ...any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (r *ProductRepo) list(ctx context.Context, sql string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var (
		p          entity.Product
		c          entity.Category
		parentID   *int64
		parentName *string
	)
	if err := row.Scan(&p.ID, &p.Name, &c.ID, &c.Name, &parentID, &parentName); err != nil {
		return nil, err
	}
	c.Parent = categoryRef(parentID, parentName)
	p.Category = &c
	return &p, nil
}
