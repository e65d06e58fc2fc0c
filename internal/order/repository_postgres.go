package order

import (
	"database/sql"
	"encoding/json"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	orderColumns = `order_id, order_number, user_id, cart, quantity, total_price, shipping_price,
		grand_price, status, shipping_name, shipping_phone, shipping_address, payment_method,
		created_at, updated_at`
	insertOrderQuery = `
		INSERT INTO orders (order_number, user_id, cart, quantity, total_price, shipping_price,
			grand_price, status, shipping_name, shipping_phone, shipping_address, payment_method,
			created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		RETURNING order_id
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ord Order) (Order, error) {
	cartJSON, err := json.Marshal(ord.Items)
	if err != nil {
		return Order{}, err
	}

	err = r.db.QueryRow(
		insertOrderQuery,
		ord.Number, ord.UserID, cartJSON, ord.Quantity, ord.ItemTotal, ord.ShippingPrice,
		ord.GrandTotal, string(ord.Status), ord.Shipping.Name, ord.Shipping.Phone,
		ord.Shipping.Address, ord.PaymentMethod, ord.CreatedAt, ord.UpdatedAt,
	).Scan(&ord.ID)
	if err != nil {
		return Order{}, err
	}
	return ord, nil
}

func (r *PostgresRepository) GetByID(id int) (Order, error) {
	return r.getOne(`SELECT `+orderColumns+` FROM orders WHERE order_id = $1`, id)
}

func (r *PostgresRepository) GetByNumber(number string) (Order, error) {
	return r.getOne(`SELECT `+orderColumns+` FROM orders WHERE order_number = $1`, number)
}

func (r *PostgresRepository) getOne(query string, arg any) (Order, error) {
	ord, err := scanOrder(r.db.QueryRow(query, arg))
	if err != nil {
		if err == sql.ErrNoRows {
			return Order{}, ErrNotFound
		}
		return Order{}, err
	}
	return ord, nil
}

func (r *PostgresRepository) ListByUser(userID int) ([]Order, error) {
	rows, err := r.db.Query(`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY order_id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Order, 0)
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ord)
	}
	return out, nil
}

func (r *PostgresRepository) UpdateStatus(id int, to Status, updatedAt string) (Order, error) {
	result, err := r.db.Exec(`UPDATE orders SET status = $1, updated_at = $2 WHERE order_id = $3`, string(to), updatedAt, id)
	if err != nil {
		return Order{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return Order{}, err
	}
	if affected == 0 {
		return Order{}, ErrNotFound
	}
	return r.GetByID(id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(scanner rowScanner) (Order, error) {
	var (
		ord      Order
		cartJSON []byte
		status   string
	)
	if err := scanner.Scan(
		&ord.ID, &ord.Number, &ord.UserID, &cartJSON, &ord.Quantity, &ord.ItemTotal,
		&ord.ShippingPrice, &ord.GrandTotal, &status, &ord.Shipping.Name,
		&ord.Shipping.Phone, &ord.Shipping.Address, &ord.PaymentMethod,
		&ord.CreatedAt, &ord.UpdatedAt,
	); err != nil {
		return Order{}, err
	}
	ord.Status = Status(status)
	if len(cartJSON) > 0 {
		if err := json.Unmarshal(cartJSON, &ord.Items); err != nil {
			return Order{}, err
		}
	}
	return ord, nil
}
