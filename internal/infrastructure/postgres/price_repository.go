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

var _ repository.PriceRepository = (*PriceRepo)(nil)

const priceSelect = `
	SELECT pc.id, pc.amount, pc.currency, pr.id, pr.name, c.id, c.name, cp.id, cp.name
	FROM prices pc
	JOIN products pr ON pr.id = pc.product_id
	JOIN categories c ON c.id = pr.category_id
	LEFT JOIN categories cp ON cp.id = c.parent_id`

// PriceRepo implementación del puerto PriceRepository sobre PostgreSQL (usable con pool o tx).
type PriceRepo struct {
	q Querier
}

// NewPriceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPriceRepository(q Querier) *PriceRepo {
	return &PriceRepo{q: q}
}

func (r *PriceRepo) FindAll(ctx context.Context) ([]*entity.Price, error) {
	return r.list(ctx, priceSelect+` ORDER BY pc.id`)
}

func (r *PriceRepo) GetByID(ctx context.Context, id int64) (*entity.Price, error) {
	return r.one(ctx, priceSelect+` WHERE pc.id = $1`, id)
}

// GetByProductAndCurrency busca por nombre de producto: dos productos homónimos
// comparten precio a efectos de la clave natural, pero el del propio producto va primero.
func (r *PriceRepo) GetByProductAndCurrency(ctx context.Context, product *entity.Product, currency string) (*entity.Price, error) {
	if product == nil {
		return nil, nil
	}
	return r.one(ctx, priceSelect+` WHERE pr.name = $1 AND pc.currency = $2 ORDER BY (pr.id = $3) DESC, pc.id LIMIT 1`,
		product.Name, currency, product.ID)
}

func (r *PriceRepo) Search(ctx context.Context, tok query.Token) ([]*entity.Price, error) {
	where, args := priceFilter(tok)
	return r.list(ctx, priceSelect+` WHERE `+where+` ORDER BY pc.id`, args...)
}

func (r *PriceRepo) List(ctx context.Context, req query.PageRequest) (query.Page[*entity.Price], error) {
	page := query.Page[*entity.Price]{PageRequest: req}
	clause, err := pageClause(priceSortColumns, "pc.id", req)
	if err != nil {
		return page, err
	}
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM prices`).Scan(&page.Total); err != nil {
		return page, fmt.Errorf("count prices: %w", err)
	}
	page.Items, err = r.list(ctx, priceSelect+clause)
	return page, err
}

// Save inserta (ID == 0) o reemplaza el precio. El producto debe estar persistido.
func (r *PriceRepo) Save(ctx context.Context, p *entity.Price) (*entity.Price, error) {
	if p.Product == nil || p.Product.ID == 0 {
		return nil, fmt.Errorf("save price: producto no persistido: %w", domain.ErrNotFound)
	}

	id := p.ID
	if id == 0 {
		err := r.q.QueryRow(ctx,
			`INSERT INTO prices (product_id, amount, currency) VALUES ($1, $2, $3) RETURNING id`,
			p.Product.ID, p.Amount, p.Currency,
		).Scan(&id)
		if err != nil {
			return nil, saveError("insert price", err)
		}
	} else {
		cmd, err := r.q.Exec(ctx,
			`UPDATE prices SET product_id = $2, amount = $3, currency = $4 WHERE id = $1`,
			id, p.Product.ID, p.Amount, p.Currency,
		)
		if err != nil {
			return nil, saveError("update price", err)
		}
		if cmd.RowsAffected() == 0 {
			return nil, fmt.Errorf("update price %d: %w", id, domain.ErrNotFound)
		}
	}
	return r.GetByID(ctx, id)
}

func (r *PriceRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM prices WHERE id = $1`, id); err != nil {
		return deleteError("delete price", err)
	}
	return nil
}

func (r *PriceRepo) one(ctx context.Context, sql string, args ...any) (*entity.Price, error) {
	p, err := scanPrice(r.q.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get price: %w", err)
	}
	return p, nil
}

func (r *PriceRepo) list(ctx context.Context, sql string, args ...any) ([]*entity.Price, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list prices: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Price, 0)
	for rows.Next() {
		p, err := scanPrice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan price: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanPrice(row pgx.Row) (*entity.Price, error) {
	var (
		p          entity.Price
		pr         entity.Product
		c          entity.Category
		parentID   *int64
		parentName *string
	)
	if err := row.Scan(&p.ID, &p.Amount, &p.Currency, &pr.ID, &pr.Name, &c.ID, &c.Name, &parentID, &parentName); err != nil {
		return nil, err
	}
	c.Parent = categoryRef(parentID, parentName)
	pr.Category = &c
	p.Product = &pr
	return &p, nil
}
