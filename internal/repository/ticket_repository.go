package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/queue-monitor/internal/domain"
)

// TicketRepository reads ticket snapshots. Tickets are created, updated and
// deleted by the external system of record; this service only lists them.
type TicketRepository interface {
	ListQueue(ctx context.Context) ([]domain.Ticket, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

// ListQueue returns the full ticket set in stable fetch order. The order is
// load-bearing: the escalation scan picks the first qualifying ticket it
// encounters.
func (r *ticketRepository) ListQueue(ctx context.Context) ([]domain.Ticket, error) {
	const query = `
        SELECT id, title, stage_number, created_at, stage1_exited_at
        FROM tickets
        ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []domain.Ticket
	for rows.Next() {
		var (
			ticket    domain.Ticket
			createdAt *time.Time
		)
		if err := rows.Scan(&ticket.ID, &ticket.Title, &ticket.StageNumber, &createdAt, &ticket.Stage1ExitAt); err != nil {
			return nil, err
		}
		// NULL creation timestamps stay zero-valued; the evaluator treats
		// them as unknown rather than urgent.
		if createdAt != nil {
			ticket.CreatedAt = *createdAt
		}
		tickets = append(tickets, ticket)
	}
	return tickets, rows.Err()
}
