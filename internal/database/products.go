package database

import (
	"context"
	"database/sql"

	"dropship-dashboard/internal/models"

	"github.com/shopspring/decimal"
)

const productColumns = "id, external_id, name, supplier, platform, image_url, source_url, cost, price, status, created_at, updated_at"

// UpsertProduct insere um produto ou atualiza o que tem a mesma plataforma e
// id externo. Retorna o id da linha.
func (db *DB) UpsertProduct(ctx context.Context, p *models.StoreProduct) (int64, error) {
	var id int64
	err := db.conn.QueryRowContext(ctx, `
		INSERT INTO products (external_id, name, supplier, platform, image_url, source_url, cost, price, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(platform, external_id) DO UPDATE SET
			name = excluded.name,
			supplier = excluded.supplier,
			image_url = excluded.image_url,
			source_url = excluded.source_url,
			cost = excluded.cost,
			price = excluded.price,
			updated_at = CURRENT_TIMESTAMP
		RETURNING id`,
		p.ExternalID, p.Name, p.Supplier, p.Platform, p.ImageURL, p.SourceURL,
		p.Cost.StringFixed(2), p.Price.StringFixed(2), p.Status,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	p.ID = id
	return id, nil
}

// ListProducts retorna todos os produtos, mais recentes primeiro
func (db *DB) ListProducts(ctx context.Context) ([]models.StoreProduct, error) {
	rows, err := db.conn.QueryContext(ctx, "SELECT "+productColumns+" FROM products ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.StoreProduct
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

// GetProduct retorna o produto importado da plataforma com o id do fornecedor
func (db *DB) GetProduct(ctx context.Context, platform, externalID string) (*models.StoreProduct, error) {
	row := db.conn.QueryRowContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE platform = ? AND external_id = ?",
		platform, externalID,
	)
	p, err := scanProduct(row)
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

// UpdateProductPrice define o preço de venda de um produto
func (db *DB) UpdateProductPrice(ctx context.Context, id int64, price decimal.Decimal) error {
	res, err := db.conn.ExecContext(ctx,
		"UPDATE products SET price = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		price.StringFixed(2), id,
	)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

// CountProducts retorna o número de produtos importados
func (db *DB) CountProducts(ctx context.Context) (int, error) {
	var n int
	err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&n)
	return n, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(s scanner) (*models.StoreProduct, error) {
	var p models.StoreProduct
	var createdAt, updatedAt sql.NullTime
	err := s.Scan(&p.ID, &p.ExternalID, &p.Name, &p.Supplier, &p.Platform, &p.ImageURL, &p.SourceURL,
		&p.Cost, &p.Price, &p.Status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	if createdAt.Valid {
		p.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		p.UpdatedAt = updatedAt.Time
	}
	return &p, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
