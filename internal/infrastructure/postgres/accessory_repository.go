package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/vanbuilder-api/internal/domain"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/internal/domain/repository"
)

var _ repository.AccessoryRepository = (*AccessoryRepo)(nil)

const accessoryColumns = `id, category_id, name, brand, reference, description, price, cost, weight_kg, power_w,
	stock_quantity, low_stock_threshold, stock_status, published, image_key, created_at, updated_at`

// AccessoryRepo implementación del puerto AccessoryRepository sobre PostgreSQL (usable con pool o tx).
type AccessoryRepo struct {
	q Querier
}

// NewAccessoryRepository construye el adaptador de persistencia para accesorios. Pasar pool o tx (Querier).
func NewAccessoryRepository(q Querier) *AccessoryRepo {
	return &AccessoryRepo{q: q}
}

func scanAccessory(row rowScanner) (*entity.Accessory, error) {
	var a entity.Accessory
	var category *string
	err := row.Scan(
		&a.ID, &category, &a.Name, &a.Brand, &a.Reference, &a.Description, &a.Price, &a.Cost, &a.WeightKg, &a.PowerW,
		&a.StockQuantity, &a.LowStockThreshold, &a.StockStatus, &a.Published, &a.ImageKey, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.CategoryID = deref(category)
	return &a, nil
}

// Create persiste un nuevo accesorio. Referencia repetida = ErrDuplicate.
func (r *AccessoryRepo) Create(ctx context.Context, a *entity.Accessory) error {
	query := `
		INSERT INTO accessories (` + accessoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		a.ID, nullable(a.CategoryID), a.Name, a.Brand, a.Reference, a.Description, a.Price, a.Cost, a.WeightKg, a.PowerW,
		a.StockQuantity, a.LowStockThreshold, a.StockStatus, a.Published, a.ImageKey, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert accessory: %w", err)
	}
	return nil
}

// GetByID obtiene un accesorio por ID.
func (r *AccessoryRepo) GetByID(ctx context.Context, id string) (*entity.Accessory, error) {
	return r.getOne(ctx, `SELECT `+accessoryColumns+` FROM accessories WHERE id = $1`, id)
}

// GetByReference obtiene un accesorio por referencia (SKU).
func (r *AccessoryRepo) GetByReference(ctx context.Context, reference string) (*entity.Accessory, error) {
	return r.getOne(ctx, `SELECT `+accessoryColumns+` FROM accessories WHERE reference = $1`, reference)
}

// GetForUpdate obtiene el accesorio bloqueando la fila hasta el fin de la transacción.
func (r *AccessoryRepo) GetForUpdate(ctx context.Context, id string) (*entity.Accessory, error) {
	return r.getOne(ctx, `SELECT `+accessoryColumns+` FROM accessories WHERE id = $1 FOR UPDATE`, id)
}

func (r *AccessoryRepo) getOne(ctx context.Context, query, arg string) (*entity.Accessory, error) {
	a, err := scanAccessory(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get accessory: %w", err)
	}
	return a, nil
}

// GetByIDs obtiene varios accesorios; los IDs inexistentes no aparecen en el mapa.
func (r *AccessoryRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Accessory, error) {
	out := make(map[string]*entity.Accessory, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	list, err := r.list(ctx, `SELECT `+accessoryColumns+` FROM accessories WHERE id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, err
	}
	for _, a := range list {
		out[a.ID] = a
	}
	return out, nil
}

// List lista accesorios con filtros y paginación, ordenados por nombre.
func (r *AccessoryRepo) List(ctx context.Context, f repository.AccessoryFilter) ([]*entity.Accessory, error) {
	var where []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.PublishedOnly {
		where = append(where, "published")
	}
	if f.CategoryID != "" {
		where = append(where, "category_id = "+arg(f.CategoryID))
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		p := arg("%" + q + "%")
		where = append(where, fmt.Sprintf("(name ILIKE %s OR brand ILIKE %s OR reference ILIKE %s)", p, p, p))
	}
	query := `SELECT ` + accessoryColumns + ` FROM accessories`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY name, reference LIMIT " + arg(f.Limit) + " OFFSET " + arg(f.Offset)
	return r.list(ctx, query, args...)
}

// ListLowStock lista los accesorios en o por debajo de su umbral de reposición.
func (r *AccessoryRepo) ListLowStock(ctx context.Context) ([]*entity.Accessory, error) {
	return r.list(ctx, `SELECT `+accessoryColumns+` FROM accessories WHERE stock_quantity <= low_stock_threshold ORDER BY reference`)
}

func (r *AccessoryRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Accessory, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list accessories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Accessory
	for rows.Next() {
		a, err := scanAccessory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan accessory: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Update actualiza los datos de catálogo. No modifica cantidad ni costo (se manejan vía movimientos).
func (r *AccessoryRepo) Update(ctx context.Context, a *entity.Accessory) error {
	query := `
		UPDATE accessories SET category_id = $2, name = $3, brand = $4, reference = $5, description = $6,
			price = $7, weight_kg = $8, power_w = $9, low_stock_threshold = $10, stock_status = $11,
			published = $12, image_key = $13, updated_at = $14
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		a.ID, nullable(a.CategoryID), a.Name, a.Brand, a.Reference, a.Description,
		a.Price, a.WeightKg, a.PowerW, a.LowStockThreshold, a.StockStatus,
		a.Published, a.ImageKey, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update accessory: %w", err)
	}
	return nil
}

// UpdateStock fija cantidad, costo promedio y estado (usado por el motor de inventario).
func (r *AccessoryRepo) UpdateStock(ctx context.Context, id string, quantity int, cost decimal.Decimal, status string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE accessories SET stock_quantity = $2, cost = $3, stock_status = $4, updated_at = now() WHERE id = $1`,
		id, quantity, cost, status,
	)
	if err != nil {
		return fmt.Errorf("update accessory stock: %w", err)
	}
	return nil
}

// Delete elimina un accesorio por ID.
func (r *AccessoryRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM accessories WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete accessory: %w", err)
	}
	return nil
}
