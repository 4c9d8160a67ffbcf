package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/thehatchggs/site-api/internal/domain"
)

// TicketFilter captures admin search parameters.
type TicketFilter struct {
	Status *domain.TicketStatus
	Search *string
	Limit  int
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
	UpdateStatus(ctx context.Context, id string, status domain.TicketStatus) error
	AppendNote(ctx context.Context, id string, note domain.InternalNote) error
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (name, email, subject, category, message, status, escalation_reason,
                             transcript, internal_notes, private_info_key, private_info)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.Name,
		ticket.Email,
		ticket.Subject,
		ticket.Category,
		ticket.Message,
		ticket.Status,
		ticket.EscalationReason,
		ticket.Transcript,
		ticket.InternalNotes,
		ticket.PrivateInfoKey,
		ticket.PrivateInfo,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	const query = `
        SELECT id, name, email, subject, category, message, status, escalation_reason,
               transcript, internal_notes, private_info_key, private_info, assigned_to,
               created_at, updated_at
        FROM tickets WHERE id=$1`
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.Name,
		&ticket.Email,
		&ticket.Subject,
		&ticket.Category,
		&ticket.Message,
		&ticket.Status,
		&ticket.EscalationReason,
		&ticket.Transcript,
		&ticket.InternalNotes,
		&ticket.PrivateInfoKey,
		&ticket.PrivateInfo,
		&ticket.AssignedTo,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	base := `SELECT id, name, email, subject, category, message, status, escalation_reason,
                    transcript, internal_notes, private_info_key, private_info, assigned_to,
                    created_at, updated_at
             FROM tickets`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.Search)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(
			"(LOWER(name) LIKE %s OR LOWER(email) LIKE %s OR LOWER(subject) LIKE %s)",
			placeholder, placeholder, placeholder))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC LIMIT %d`,
		base, strings.Join(clauses, " AND "), limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) UpdateStatus(ctx context.Context, id string, status domain.TicketStatus) error {
	const query = `UPDATE tickets SET status=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) AppendNote(ctx context.Context, id string, note domain.InternalNote) error {
	encoded, err := json.Marshal(note)
	if err != nil {
		return err
	}
	const query = `
        UPDATE tickets
        SET internal_notes = internal_notes || $1::jsonb, updated_at=NOW()
        WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, string(encoded), id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.Name,
			&ticket.Email,
			&ticket.Subject,
			&ticket.Category,
			&ticket.Message,
			&ticket.Status,
			&ticket.EscalationReason,
			&ticket.Transcript,
			&ticket.InternalNotes,
			&ticket.PrivateInfoKey,
			&ticket.PrivateInfo,
			&ticket.AssignedTo,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
