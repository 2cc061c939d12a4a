package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/stockcontrol-api/internal/domain"
	"github.com/tu-usuario/stockcontrol-api/internal/domain/entity"
	"github.com/tu-usuario/stockcontrol-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, sku, description, category_id, quantity,
	low_stock_threshold, unit_price, location, barcode, is_active, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, sku, description, category_id, quantity,
			low_stock_threshold, unit_price, location, barcode, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.SKU, product.Description, product.CategoryID,
		product.Quantity, product.LowStockThreshold, product.UnitPrice,
		product.Location, product.Barcode, product.IsActive, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetBySKU obtiene un producto por SKU (único).
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE sku = $1`, sku)
}

// GetForUpdate lee el producto bloqueando su fila (SELECT FOR UPDATE).
// Dentro de una transacción serializa los ajustes concurrentes sobre el mismo
// producto y fija la cantidad previa de forma consistente.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) getOne(query string, arg any) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.Name, &p.SKU, &p.Description, &p.CategoryID, &p.Quantity,
		&p.LowStockThreshold, &p.UnitPrice, &p.Location, &p.Barcode, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Update actualiza un producto existente. No toca quantity: la cantidad se
// maneja vía UpdateQuantity dentro del motor de movimientos.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, sku = $3, description = $4, category_id = $5,
			low_stock_threshold = $6, unit_price = $7, location = $8, barcode = $9,
			is_active = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.SKU, product.Description, product.CategoryID,
		product.LowStockThreshold, product.UnitPrice, product.Location, product.Barcode,
		product.IsActive, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateQuantity actualiza solo la cantidad (usado por el motor de movimientos).
func (r *ProductRepo) UpdateQuantity(id string, quantity int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET quantity = $2, updated_at = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("update product quantity: %w", err)
	}
	return nil
}

// GetWithCategory obtiene un producto con el nombre de su categoría resuelto.
func (r *ProductRepo) GetWithCategory(id string) (*repository.ProductRow, error) {
	query := `
		SELECT p.id, p.name, p.sku, p.description, p.category_id, p.quantity,
			p.low_stock_threshold, p.unit_price, p.location, p.barcode, p.is_active,
			p.created_at, p.updated_at, COALESCE(c.name, '')
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1`
	var row repository.ProductRow
	p := &row.Product
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Name, &p.SKU, &p.Description, &p.CategoryID, &p.Quantity,
		&p.LowStockThreshold, &p.UnitPrice, &p.Location, &p.Barcode, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt, &row.CategoryName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product with category: %w", err)
	}
	return &row, nil
}

// List lista productos activos con búsqueda, filtro por categoría, filtro de
// stock bajo y paginación, del más reciente al más antiguo.
// filter.Search llega ya normalizada (minúsculas, sin diacríticos); las
// columnas se pliegan igual en SQL (ver foldExpr).
func (r *ProductRepo) List(filter repository.ProductFilter) ([]*repository.ProductRow, error) {
	where, args := buildProductWhere(filter)
	query := fmt.Sprintf(`
		SELECT p.id, p.name, p.sku, p.description, p.category_id, p.quantity,
			p.low_stock_threshold, p.unit_price, p.location, p.barcode, p.is_active,
			p.created_at, p.updated_at, COALESCE(c.name, '')
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		%s
		ORDER BY p.created_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return scanProductRows(rows)
}

// Count cuenta los productos que cumplen el filtro (sin paginación).
func (r *ProductRepo) Count(filter repository.ProductFilter) (int64, error) {
	where, args := buildProductWhere(filter)
	var total int64
	err := r.q.QueryRow(context.Background(),
		fmt.Sprintf(`SELECT COUNT(*) FROM products p %s`, where), args...,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return total, nil
}

// foldExpr normaliza una columna en SQL igual que textutil.Fold normaliza el
// término de búsqueda: minúsculas y sin los diacríticos del español. Con ambos
// lados plegados, "Café" matchea tanto "café" como "cafe".
func foldExpr(col string) string {
	return fmt.Sprintf(`translate(lower(%s), 'áéíóúüñ', 'aeiouun')`, col)
}

// buildProductWhere construye la cláusula WHERE compartida por List y Count.
// Siempre restringe a productos activos.
func buildProductWhere(filter repository.ProductFilter) (string, []any) {
	where := `WHERE p.is_active`
	var args []any
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		where += fmt.Sprintf(` AND (%s LIKE $%d OR %s LIKE $%d OR %s LIKE $%d)`,
			foldExpr("p.name"), n, foldExpr("p.sku"), n, foldExpr("p.description"), n)
	}
	if filter.CategoryID != "" {
		args = append(args, filter.CategoryID)
		where += fmt.Sprintf(` AND p.category_id = $%d`, len(args))
	}
	if filter.LowStockOnly {
		where += ` AND p.quantity <= p.low_stock_threshold`
	}
	return where, args
}

// ListLowStock devuelve productos activos con quantity <= low_stock_threshold,
// ordenados por cantidad ascendente. limit <= 0 = sin tope.
func (r *ProductRepo) ListLowStock(limit int) ([]*repository.ProductRow, error) {
	query := `
		SELECT p.id, p.name, p.sku, p.description, p.category_id, p.quantity,
			p.low_stock_threshold, p.unit_price, p.location, p.barcode, p.is_active,
			p.created_at, p.updated_at, COALESCE(c.name, '')
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.is_active AND p.quantity <= p.low_stock_threshold
		ORDER BY p.quantity ASC`
	var args []any
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()
	return scanProductRows(rows)
}

func scanProductRows(rows pgx.Rows) ([]*repository.ProductRow, error) {
	var list []*repository.ProductRow
	for rows.Next() {
		var row repository.ProductRow
		p := &row.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.SKU, &p.Description, &p.CategoryID, &p.Quantity,
			&p.LowStockThreshold, &p.UnitPrice, &p.Location, &p.Barcode, &p.IsActive,
			&p.CreatedAt, &p.UpdatedAt, &row.CategoryName,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}

// Delete elimina un producto por ID y devuelve filas afectadas.
func (r *ProductRepo) Delete(id string) (int64, error) {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete product: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// DeleteByIDs elimina un conjunto de productos y devuelve filas afectadas.
func (r *ProductRepo) DeleteByIDs(ids []string) (int64, error) {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, fmt.Errorf("bulk delete products: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// DeleteByCategory elimina los productos de una categoría y devuelve filas afectadas.
func (r *ProductRepo) DeleteByCategory(categoryID string) (int64, error) {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE category_id = $1`, categoryID)
	if err != nil {
		return 0, fmt.Errorf("delete products by category: %w", err)
	}
	return cmd.RowsAffected(), nil
}
