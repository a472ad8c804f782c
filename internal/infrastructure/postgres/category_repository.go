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

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

const categorySelect = `
	SELECT c.id, c.name, p.id, p.name
	FROM categories c
	LEFT JOIN categories p ON p.id = c.parent_id`

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL (usable con pool o tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// FindAll devuelve todas las categorías en orden de ID.
func (r *CategoryRepo) FindAll(ctx context.Context) ([]*entity.Category, error) {
	return r.list(ctx, categorySelect+` ORDER BY c.id`)
}

// GetByID obtiene una categoría por ID.
func (r *CategoryRepo) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	return r.one(ctx, categorySelect+` WHERE c.id = $1`, id)
}

// GetByName obtiene una categoría por nombre (índice único).
func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	return r.one(ctx, categorySelect+` WHERE c.name = $1`, name)
}

// ListChildren devuelve las categorías cuyo padre tiene el nombre de parent.
func (r *CategoryRepo) ListChildren(ctx context.Context, parent *entity.Category) ([]*entity.Category, error) {
	if parent == nil {
		return nil, nil
	}
	return r.list(ctx, categorySelect+` WHERE p.name = $1 ORDER BY c.id`, parent.Name)
}

// Search filtra según el token ya clasificado.
func (r *CategoryRepo) Search(ctx context.Context, tok query.Token) ([]*entity.Category, error) {
	where, args := categoryFilter(tok)
	return r.list(ctx, categorySelect+` WHERE `+where+` ORDER BY c.id`, args...)
}

// List devuelve una página ordenada.
func (r *CategoryRepo) List(ctx context.Context, req query.PageRequest) (query.Page[*entity.Category], error) {
	page := query.Page[*entity.Category]{PageRequest: req}
	clause, err := pageClause(categorySortColumns, "c.id", req)
	if err != nil {
		return page, err
	}
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM categories`).Scan(&page.Total); err != nil {
		return page, fmt.Errorf("count categories: %w", err)
	}
	page.Items, err = r.list(ctx, categorySelect+clause)
	return page, err
}

// Save inserta (ID == 0) o reemplaza la categoría. Devuelve la fila releída.
func (r *CategoryRepo) Save(ctx context.Context, c *entity.Category) (*entity.Category, error) {
	var parentID *int64
	if c.Parent != nil {
		parentID = nullableID(c.Parent.ID)
		if parentID == nil {
			return nil, fmt.Errorf("save category %q: padre %q no persistido: %w", c.Name, c.Parent.Name, domain.ErrNotFound)
		}
	}

	id := c.ID
	if id == 0 {
		err := r.q.QueryRow(ctx,
			`INSERT INTO categories (name, parent_id) VALUES ($1, $2) RETURNING id`,
			c.Name, parentID,
		).Scan(&id)
		if err != nil {
			return nil, saveError("insert category", err)
		}
	} else {
		cmd, err := r.q.Exec(ctx,
			`UPDATE categories SET name = $2, parent_id = $3 WHERE id = $1`,
			id, c.Name, parentID,
		)
		if err != nil {
			return nil, saveError("update category", err)
		}
		if cmd.RowsAffected() == 0 {
			return nil, fmt.Errorf("update category %d: %w", id, domain.ErrNotFound)
		}
	}
	return r.GetByID(ctx, id)
}

// Delete elimina la categoría por ID.
func (r *CategoryRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id); err != nil {
		return deleteError("delete category", err)
	}
	return nil
}

func (r *CategoryRepo) one(ctx context.Context, sql string, args ...any) (*entity.Category, error) {
	c, err := scanCategory(r.q.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (r *CategoryRepo) list(ctx context.Context, sql string, args ...any) ([]*entity.Category, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var (
		c          entity.Category
		parentID   *int64
		parentName *string
	)
	if err := row.Scan(&c.ID, &c.Name, &parentID, &parentName); err != nil {
		return nil, err
	}
	c.Parent = categoryRef(parentID, parentName)
	return &c, nil
}

func categoryRef(id *int64, name *string) *entity.Category {
	if id == nil || name == nil {
		return nil
	}
	return &entity.Category{ID: *id, Name: *name}
}
