package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Domenick1991/travelplanner/internal/domain"
)

type PlanRepository interface {
	Create(ctx context.Context, plan *domain.Plan) error
	Get(ctx context.Context, userID, id string) (*domain.Plan, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Plan, error)
	Update(ctx context.Context, plan *domain.Plan) error
	Delete(ctx context.Context, userID, id string) error
}

type PGPlanRepository struct {
	db DB
}

func NewPlanRepository(db DB) PlanRepository {
	return &PGPlanRepository{db: db}
}

// Dates travel as YYYY-MM-DD text; an empty string is NULL.
const planColumns = `id::text, user_id, name, destination,
	COALESCE(to_char(start_date, 'YYYY-MM-DD'), ''), COALESCE(to_char(end_date, 'YYYY-MM-DD'), ''),
	notes, items, created_at, updated_at`

func (r *PGPlanRepository) Create(ctx context.Context, plan *domain.Plan) error {
	items, err := encodeItems(plan.Items)
	if err != nil {
		return err
	}
	err = r.db.QueryRow(ctx, `INSERT INTO plans (id, user_id, name, destination, start_date, end_date, notes, items)
		VALUES ($1, $2, $3, $4, NULLIF($5, '')::date, NULLIF($6, '')::date, $7, $8)
		RETURNING created_at, updated_at`,
		plan.ID, plan.UserID, plan.Name, plan.Destination, plan.StartDate, plan.EndDate, plan.Notes, items).
		Scan(&plan.CreatedAt, &plan.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert plan: %w", mapError(err))
	}
	return nil
}

func (r *PGPlanRepository) Get(ctx context.Context, userID, id string) (*domain.Plan, error) {
	row := r.db.QueryRow(ctx, `SELECT `+planColumns+` FROM plans WHERE id=$1 AND user_id=$2`, id, userID)
	p, err := scanPlan(row)
	if err != nil {
		return nil, fmt.Errorf("get plan: %w", mapError(err))
	}
	return p, nil
}

func (r *PGPlanRepository) ListByUser(ctx context.Context, userID string) ([]domain.Plan, error) {
	rows, err := r.db.Query(ctx, `SELECT `+planColumns+` FROM plans WHERE user_id=$1 ORDER BY updated_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	plans := make([]domain.Plan, 0)
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("list plans: scan: %w", err)
		}
		plans = append(plans, *p)
	}
	return plans, rows.Err()
}

func (r *PGPlanRepository) Update(ctx context.Context, plan *domain.Plan) error {
	items, err := encodeItems(plan.Items)
	if err != nil {
		return err
	}
	err = r.db.QueryRow(ctx, `UPDATE plans
		SET name=$3, destination=$4, start_date=NULLIF($5, '')::date, end_date=NULLIF($6, '')::date,
		    notes=$7, items=$8, updated_at=now()
		WHERE id=$1 AND user_id=$2
		RETURNING created_at, updated_at`,
		plan.ID, plan.UserID, plan.Name, plan.Destination, plan.StartDate, plan.EndDate, plan.Notes, items).
		Scan(&plan.CreatedAt, &plan.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update plan: %w", mapError(err))
	}
	return nil
}

func (r *PGPlanRepository) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM plans WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete plan: %w", domain.ErrNotFound)
	}
	return nil
}

func encodeItems(items []domain.PlanItem) ([]byte, error) {
	if items == nil {
		items = []domain.PlanItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode plan items: %w", err)
	}
	return data, nil
}

func scanPlan(s scanner) (*domain.Plan, error) {
	var (
		p     domain.Plan
		items []byte
	)
	if err := s.Scan(&p.ID, &p.UserID, &p.Name, &p.Destination, &p.StartDate, &p.EndDate, &p.Notes, &items, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &p.Items); err != nil {
		return nil, fmt.Errorf("decode plan items: %w", err)
	}
	return &p, nil
}

var _ PlanRepository = (*PGPlanRepository)(nil)
