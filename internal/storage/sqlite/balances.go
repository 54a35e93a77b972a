package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rai-ahmadfraz/split-it-api/internal/models"
)

// QueryCredits returns what each counterparty owes userID on expenses userID paid.
func (s *SQLiteStore) QueryCredits(ctx context.Context, userID string) ([]models.CounterpartyTotal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT u.id, u.name, SUM(em.amount_owed_cents)
		FROM expense_members em
		JOIN expenses e ON e.id = em.expense_id
		JOIN users u ON u.id = em.user_id
		WHERE e.payer_id = ?
		  AND em.user_id != ?
		  AND em.amount_owed_cents > 0
		GROUP BY u.id, u.name
		ORDER BY MIN(em.rowid)`,
		userID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query credits: %w", err)
	}
	return scanTotals(rows)
}

// QueryDebits returns what userID owes each payer on expenses someone else paid.
func (s *SQLiteStore) QueryDebits(ctx context.Context, userID string) ([]models.CounterpartyTotal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.name, SUM(em.amount_owed_cents)
		FROM expense_members em
		JOIN expenses e ON e.id = em.expense_id
		JOIN users p ON p.id = e.payer_id
		WHERE em.user_id = ?
		  AND e.payer_id != ?
		  AND em.amount_owed_cents > 0
		GROUP BY p.id, p.name
		ORDER BY MIN(em.rowid)`,
		userID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query debits: %w", err)
	}
	return scanTotals(rows)
}

func scanTotals(rows *sql.Rows) ([]models.CounterpartyTotal, error) {
	defer rows.Close()

	var totals []models.CounterpartyTotal
	for rows.Next() {
		var (
			t     models.CounterpartyTotal
			cents int64
		)
		if err := rows.Scan(&t.UserID, &t.Name, &cents); err != nil {
			return nil, fmt.Errorf("failed to scan total: %w", err)
		}
		t.Total = models.FromCents(cents)
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate totals: %w", err)
	}
	return totals, nil
}

// QuerySharedExpenses returns the shares linking userID and friendID in either
// direction, newest expense first.
func (s *SQLiteStore) QuerySharedExpenses(ctx context.Context, userID, friendID string) ([]models.SharedExpenseRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT e.id, e.name, e.total_cents, e.payer_id, p.name,
		       em.user_id, m.name, em.amount_owed_cents, e.created_at
		FROM expense_members em
		JOIN expenses e ON e.id = em.expense_id
		JOIN users p ON p.id = e.payer_id
		JOIN users m ON m.id = em.user_id
		WHERE (e.payer_id = ? AND em.user_id = ?)
		   OR (e.payer_id = ? AND em.user_id = ?)
		ORDER BY e.created_at DESC`,
		userID, friendID, friendID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query shared expenses: %w", err)
	}
	defer rows.Close()

	var result []models.SharedExpenseRow
	for rows.Next() {
		var (
			r           models.SharedExpenseRow
			total, owed int64
		)
		if err := rows.Scan(&r.ExpenseID, &r.Title, &total, &r.PayerID, &r.PayerName,
			&r.MemberID, &r.MemberName, &owed, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan shared expense: %w", err)
		}
		r.TotalAmount = models.FromCents(total)
		r.AmountOwed = models.FromCents(owed)
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shared expenses: %w", err)
	}
	return result, nil
}

// QueryMembersByExpenseIDs returns every participant of the given expenses.
func (s *SQLiteStore) QueryMembersByExpenseIDs(ctx context.Context, expenseIDs []string) ([]models.MemberRow, error) {
	if len(expenseIDs) == 0 {
		return nil, nil
	}

	args := make([]interface{}, len(expenseIDs))
	for i, id := range expenseIDs {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT em.expense_id, u.id, u.name, em.amount_owed_cents
		FROM expense_members em
		JOIN users u ON u.id = em.user_id
		WHERE em.expense_id IN (`+placeholders(len(expenseIDs))+`)
		ORDER BY em.rowid`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	var members []models.MemberRow
	for rows.Next() {
		var (
			m     models.MemberRow
			cents int64
		)
		if err := rows.Scan(&m.ExpenseID, &m.UserID, &m.Name, &cents); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		m.Amount = models.FromCents(cents)
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return members, nil
}
