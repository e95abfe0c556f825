package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"github.com/GstJus133718/barateira-pos-api/infrastructure/database/postgres"
	"github.com/GstJus133718/barateira-pos-api/internal/domain"
)

const catalogCacheTable = "catalogo_produtos"

// CatalogCacheRepository é o cache local do catálogo, alimentado pelo
// agendador de sincronização e usado como contingência quando a retaguarda
// está fora do ar
type CatalogCacheRepository interface {
	ReplaceAll(ctx context.Context, products []domain.Product) error
	Search(term string) ([]domain.Product, error)
	Count() (int, error)
}

type catalogCacheRepository struct {
	conn *postgres.Connection
}

func NewCatalogCacheRepository(conn *postgres.Connection) CatalogCacheRepository {
	return &catalogCacheRepository{
		conn: conn,
	}
}

// ReplaceAll troca o cache inteiro em uma transação, para que buscas nunca
// enxerguem um catálogo pela metade
func (r *catalogCacheRepository) ReplaceAll(ctx context.Context, products []domain.Product) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", catalogCacheTable)); err != nil {
			return err
		}

		for _, product := range products {
			queryBuilder := squirrel.
				Insert(catalogCacheTable).
				Columns(
					"id", "nome", "marca", "principio_ativo", "departamento",
					"preco_unitario", "preco_final", "desconto_percentual", "economia",
				).
				Values(
					product.ID, product.Name, product.Brand, product.ActiveIngredient,
					product.Department, product.UnitPrice, product.FinalPrice,
					product.DiscountPercent, product.Savings,
				).
				PlaceholderFormat(squirrel.Dollar)

			productSQL, productArgs, err := queryBuilder.ToSql()
			if err != nil {
				return err
			}

			if _, err := tx.ExecContext(ctx, productSQL, productArgs...); err != nil {
				return err
			}
		}

		return nil
	})
}

// Search filtra o cache pelos mesmos campos da busca remota
func (r *catalogCacheRepository) Search(term string) ([]domain.Product, error) {
	pattern := "%" + term + "%"

	queryBuilder := squirrel.
		Select(
			"id", "nome", "marca", "principio_ativo", "departamento",
			"preco_unitario", "preco_final", "desconto_percentual", "economia",
		).
		From(catalogCacheTable).
		Where(squirrel.Or{
			squirrel.ILike{"nome": pattern},
			squirrel.ILike{"marca": pattern},
			squirrel.ILike{"principio_ativo": pattern},
			squirrel.ILike{"departamento": pattern},
		}).
		OrderBy("nome").
		PlaceholderFormat(squirrel.Dollar)

	searchSQL, searchArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(searchSQL, searchArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		var product domain.Product
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Brand,
			&product.ActiveIngredient,
			&product.Department,
			&product.UnitPrice,
			&product.FinalPrice,
			&product.DiscountPercent,
			&product.Savings,
		)
		if err != nil {
			return nil, err
		}

		products = append(products, product)
	}

	return products, rows.Err()
}

func (r *catalogCacheRepository) Count() (int, error) {
	var count int
	err := r.conn.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", catalogCacheTable)).Scan(&count)
	return count, err
}
