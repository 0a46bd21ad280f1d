package repository

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/govalues/decimal"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mkarpelev/paymentgate/internal/adapter/storage"
	"github.com/mkarpelev/paymentgate/internal/core/domain"
	"github.com/mkarpelev/paymentgate/internal/core/port"
)

type Repository struct {
	db *storage.DB
}

func NewRepository(db *storage.DB) (*Repository, error) {
	return &Repository{db: db}, nil
}

const orderColumns = "order_id, status, customer_name, card_last4, amount, created_at"

func (r *Repository) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	statement := r.db.QueryBuilder.Insert("orders").
		Columns("order_id", "status", "customer_name", "card_last4", "amount", "created_at").
		Values(order.ID, order.Status, order.CustomerName, order.CardLast4, order.Amount, order.CreatedAt)

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	_, err = r.db.Pool.Exec(ctx, sql, args...)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, domain.ErrConflictingData
		}
		return nil, err
	}
	return order, nil
}

func (r *Repository) ReadOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	statement := r.db.QueryBuilder.
		Select("order_id", "status", "customer_name", "card_last4", "amount", "created_at").
		From("orders").
		Where(sq.Eq{"order_id": orderID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	order := domain.Order{}

	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&order.ID,
		&order.Status,
		&order.CustomerName,
		&order.CardLast4,
		&order.Amount,
		&order.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	return &order, nil
}

func (r *Repository) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	statement := r.db.QueryBuilder.Update("orders").
		Set("status", status).
		Where(sq.Eq{"order_id": orderID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}

	ct, err := r.db.Pool.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrDataNotFound
	}
	return nil
}

func (r *Repository) ListOrders(ctx context.Context, status *domain.OrderStatus) ([]*domain.Order, error) {
	statement := r.db.QueryBuilder.
		Select("order_id", "status", "customer_name", "card_last4", "amount", "created_at").
		From("orders").
		OrderBy("created_at desc")
	if status != nil {
		statement = statement.Where(sq.Eq{"status": *status})
	}

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.Order, 0)
	for rows.Next() {
		order := domain.Order{}
		err := rows.Scan(
			&order.ID,
			&order.Status,
			&order.CustomerName,
			&order.CardLast4,
			&order.Amount,
			&order.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		list = append(list, &order)
	}

	err = rows.Err()
	if err != nil {
		return nil, err
	}

	return list, nil
}

// ReplaceAuthorization keeps at most one authorization row per order: the
// previous row (if any) is deleted and the new one inserted in one tx.
func (r *Repository) ReplaceAuthorization(ctx context.Context, auth *domain.Authorization) (*domain.Authorization, error) {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		delSt := r.db.QueryBuilder.
			Delete("authorizations").
			Where(sq.Eq{"order_id": auth.OrderID})

		sql, args, err := delSt.ToSql()
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, sql, args...)
		if err != nil {
			return err
		}

		insSt := r.db.QueryBuilder.
			Insert("authorizations").
			Columns("order_id", "provider_token", "amount", "outcome", "created_at").
			Values(auth.OrderID, auth.Token, auth.Amount, auth.Outcome, auth.CreatedAt).
			Suffix("returning id")

		sql, args, err = insSt.ToSql()
		if err != nil {
			return err
		}
		return tx.QueryRow(ctx, sql, args...).Scan(&auth.ID)
	})
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, domain.ErrConflictingData
		}
		return nil, err
	}

	return auth, nil
}

func (r *Repository) ReadAuthorization(ctx context.Context, orderID string) (*domain.Authorization, error) {
	statement := r.db.QueryBuilder.
		Select("id", "order_id", "provider_token", "amount", "outcome", "created_at").
		From("authorizations").
		Where(sq.Eq{"order_id": orderID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	return r.scanAuthorization(r.db.QueryRow(ctx, sql, args...))
}

func (r *Repository) scanAuthorization(row pgx.Row) (*domain.Authorization, error) {
	auth := domain.Authorization{}
	err := row.Scan(
		&auth.ID,
		&auth.OrderID,
		&auth.Token,
		&auth.Amount,
		&auth.Outcome,
		&auth.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}
	return &auth, nil
}

func (r *Repository) ListAuthorizations(ctx context.Context) ([]*domain.Authorization, error) {
	statement := r.db.QueryBuilder.
		Select("id", "order_id", "provider_token", "amount", "outcome", "created_at").
		From("authorizations")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.Authorization, 0)
	for rows.Next() {
		auth := domain.Authorization{}
		err := rows.Scan(
			&auth.ID,
			&auth.OrderID,
			&auth.Token,
			&auth.Amount,
			&auth.Outcome,
			&auth.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		list = append(list, &auth)
	}

	err = rows.Err()
	if err != nil {
		return nil, err
	}

	return list, nil
}

// SettleOrder locks the order row, re-derives the settled total inside the
// transaction and lets fn decide. Two concurrent settlements therefore cannot
// both pass the available check against stale data.
func (r *Repository) SettleOrder(ctx context.Context, orderID string, fn port.SettleFn) (*domain.Settlement, error) {
	var created *domain.Settlement

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		orderSt := r.db.QueryBuilder.
			Select("order_id", "status", "customer_name", "card_last4", "amount", "created_at").
			From("orders").
			Where(sq.Eq{"order_id": orderID}).
			Suffix("for update")

		sql, args, err := orderSt.ToSql()
		if err != nil {
			return err
		}

		order := domain.Order{}
		err = tx.QueryRow(ctx, sql, args...).Scan(
			&order.ID,
			&order.Status,
			&order.CustomerName,
			&order.CardLast4,
			&order.Amount,
			&order.CreatedAt,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrDataNotFound
			}
			return err
		}

		authSt := r.db.QueryBuilder.
			Select("id", "order_id", "provider_token", "amount", "outcome", "created_at").
			From("authorizations").
			Where(sq.Eq{"order_id": orderID})

		sql, args, err = authSt.ToSql()
		if err != nil {
			return err
		}

		var auth *domain.Authorization
		a := domain.Authorization{}
		err = tx.QueryRow(ctx, sql, args...).Scan(
			&a.ID,
			&a.OrderID,
			&a.Token,
			&a.Amount,
			&a.Outcome,
			&a.CreatedAt,
		)
		switch {
		case err == nil:
			auth = &a
		case errors.Is(err, pgx.ErrNoRows):
			auth = nil
		default:
			return err
		}

		sumSt := r.db.QueryBuilder.
			Select("coalesce(sum(amount), 0)").
			From("settlements").
			Where(sq.Eq{"order_id": orderID, "outcome": domain.SettlementOutcomeSuccess})

		sql, args, err = sumSt.ToSql()
		if err != nil {
			return err
		}

		var settled decimal.Decimal
		err = tx.QueryRow(ctx, sql, args...).Scan(&settled)
		if err != nil {
			return err
		}

		settlement, status, err := fn(&order, auth, settled)
		if err != nil {
			return err
		}

		insSt := r.db.QueryBuilder.
			Insert("settlements").
			Columns("order_id", "amount", "outcome", "created_at").
			Values(settlement.OrderID, settlement.Amount, settlement.Outcome, settlement.CreatedAt).
			Suffix("returning id")

		sql, args, err = insSt.ToSql()
		if err != nil {
			return err
		}
		err = tx.QueryRow(ctx, sql, args...).Scan(&settlement.ID)
		if err != nil {
			return err
		}

		updSt := r.db.QueryBuilder.Update("orders").
			Set("status", status).
			Where(sq.Eq{"order_id": orderID})

		sql, args, err = updSt.ToSql()
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, sql, args...)
		if err != nil {
			return err
		}

		created = settlement
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (r *Repository) ListSettlementsByOrder(ctx context.Context, orderID string) ([]*domain.Settlement, error) {
	return r.listSettlements(ctx, &orderID)
}

func (r *Repository) ListSettlements(ctx context.Context) ([]*domain.Settlement, error) {
	return r.listSettlements(ctx, nil)
}

func (r *Repository) listSettlements(ctx context.Context, orderID *string) ([]*domain.Settlement, error) {
	statement := r.db.QueryBuilder.
		Select("id", "order_id", "amount", "outcome", "created_at").
		From("settlements").
		OrderBy("id")
	if orderID != nil {
		statement = statement.Where(sq.Eq{"order_id": *orderID})
	}

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.Settlement, 0)
	for rows.Next() {
		st := domain.Settlement{}
		err := rows.Scan(
			&st.ID,
			&st.OrderID,
			&st.Amount,
			&st.Outcome,
			&st.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		list = append(list, &st)
	}

	err = rows.Err()
	if err != nil {
		return nil, err
	}

	return list, nil
}
