package repository

import (
	"database/sql"
	"encoding/json"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/GstJus133718/barateira-pos-api/infrastructure/database/postgres"
	"github.com/GstJus133718/barateira-pos-api/internal/domain"
)

const cartsTable = "carrinhos"

// CartRepository é o armazenamento durável do carrinho: uma linha por
// operador e chave, com o razão serializado como JSON
type CartRepository interface {
	Save(userID int, key string, cart *domain.Cart) error
	Load(userID int, key string) (*domain.Cart, error)
	Delete(userID int, key string) error
}

type cartRepository struct {
	conn *postgres.Connection
}

func NewCartRepository(conn *postgres.Connection) CartRepository {
	return &cartRepository{
		conn: conn,
	}
}

// Save grava o razão completo (write-through). A representação persistida
// sempre reflete o último estado em memória.
func (r *cartRepository) Save(userID int, key string, cart *domain.Cart) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return errors.Wrap(err, "erro ao serializar o carrinho")
	}

	queryBuilder := squirrel.
		Insert(cartsTable).
		Columns("user_id", "chave", "payload", "updated_at").
		Values(userID, key, payload, squirrel.Expr("NOW()")).
		Suffix("ON CONFLICT (user_id, chave) DO UPDATE SET payload = EXCLUDED.payload, updated_at = NOW()").
		PlaceholderFormat(squirrel.Dollar)

	cartSQL, cartArgs, err := queryBuilder.ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn.Exec(cartSQL, cartArgs...)
	return err
}

// Load recupera o razão persistido; ausência retorna nil sem erro
func (r *cartRepository) Load(userID int, key string) (*domain.Cart, error) {
	queryBuilder := squirrel.
		Select("payload").
		From(cartsTable).
		Where(squirrel.Eq{"user_id": userID, "chave": key}).
		PlaceholderFormat(squirrel.Dollar)

	cartSQL, cartArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	var payload []byte
	err = r.conn.QueryRow(cartSQL, cartArgs...).Scan(&payload)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	cart := domain.NewCart()
	if err := json.Unmarshal(payload, cart); err != nil {
		return nil, errors.Wrap(err, "erro ao desserializar o carrinho persistido")
	}

	if cart.Items == nil {
		cart.Items = make([]*domain.CartItem, 0)
	}

	return cart, nil
}

func (r *cartRepository) Delete(userID int, key string) error {
	queryBuilder := squirrel.
		Delete(cartsTable).
		Where(squirrel.Eq{"user_id": userID, "chave": key}).
		PlaceholderFormat(squirrel.Dollar)

	cartSQL, cartArgs, err := queryBuilder.ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn.Exec(cartSQL, cartArgs...)
	return err
}
