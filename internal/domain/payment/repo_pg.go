package payment

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/healthconnect/healthconnect/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const cols = `id, idempotency_key, patient_id, doctor_id, appointment_id, type, method,
	amount, currency, gateway_order_id, gateway_payment_id, status,
	provider_share, platform_share, invoice_number, order_id,
	patient_name, patient_address, patient_phone, items, created_at, updated_at`

func scanPayment(row pgx.Row) (*Payment, error) {
	var p Payment
	var items []byte
	err := row.Scan(&p.ID, &p.IdempotencyKey, &p.PatientID, &p.DoctorID, &p.AppointmentID,
		&p.Type, &p.Method, &p.Amount, &p.Currency, &p.GatewayOrderID, &p.GatewayPaymentID,
		&p.Status, &p.ProviderShare, &p.PlatformShare, &p.InvoiceNumber, &p.OrderID,
		&p.PatientName, &p.PatientAddress, &p.PatientPhone,
		&items, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &p.Items); err != nil {
			return nil, err
		}
	}
	return &p, nil
}

func (r *repoPG) Create(ctx context.Context, p *Payment) error {
	p.ID = uuid.New()
	items, err := json.Marshal(p.Items)
	if err != nil {
		return err
	}
	_, err = r.conn(ctx).Exec(ctx, `
		INSERT INTO payments (id, idempotency_key, patient_id, doctor_id, appointment_id,
			type, method, amount, currency, gateway_order_id, status,
			patient_name, patient_address, patient_phone, items)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
		p.ID, p.IdempotencyKey, p.PatientID, p.DoctorID, p.AppointmentID,
		p.Type, p.Method, p.Amount, p.Currency, p.GatewayOrderID, p.Status,
		p.PatientName, p.PatientAddress, p.PatientPhone, items)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Payment, error) {
	return scanPayment(r.conn(ctx).QueryRow(ctx, `SELECT `+cols+` FROM payments WHERE id = $1`, id))
}

func (r *repoPG) GetByIdempotencyKey(ctx context.Context, key string) (*Payment, error) {
	return scanPayment(r.conn(ctx).QueryRow(ctx,
		`SELECT `+cols+` FROM payments WHERE idempotency_key = $1`, key))
}

func (r *repoPG) Update(ctx context.Context, p *Payment) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE payments SET gateway_payment_id=$2, status=$3, provider_share=$4,
			platform_share=$5, invoice_number=$6, order_id=$7, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.GatewayPaymentID, p.Status, p.ProviderShare, p.PlatformShare,
		p.InvoiceNumber, p.OrderID)
	return err
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Payment, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+cols+` FROM payments WHERE patient_id = $1 ORDER BY created_at DESC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *repoPG) Stats(ctx context.Context) (*Stats, error) {
	var s Stats
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE status = 'SUCCESS'),
			COUNT(*) FILTER (WHERE status = 'FAILED'),
			COUNT(*) FILTER (WHERE status = 'PENDING'),
			COALESCE(SUM(amount) FILTER (WHERE status = 'SUCCESS'), 0),
			COALESCE(SUM(amount) FILTER (WHERE status = 'SUCCESS' AND type = 'CONSULTATION'), 0),
			COALESCE(SUM(amount) FILTER (WHERE status = 'SUCCESS' AND type = 'MEDICINE'), 0),
			COALESCE(SUM(platform_share) FILTER (WHERE status = 'SUCCESS'), 0)
		FROM payments`).
		Scan(&s.TotalPayments, &s.SuccessCount, &s.FailedCount, &s.PendingCount,
			&s.TotalRevenue, &s.ConsultationTotal, &s.MedicineTotal, &s.PlatformEarnings)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
