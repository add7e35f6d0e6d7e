package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/tattlestoolie/tattlestoolie/internal/model"
)

// Tip mirrors the 'tips' table. Text columns may be NULL in the
// database; they surface here as empty strings. CreatedBy is nil
// when the submitting account was deleted (ON DELETE SET NULL) or
// the tip was filed without one.
type Tip struct {
	ID           uint64
	TipName      string
	IncidentType string
	Location     string
	Description  string
	Urgency      string
	CreatedBy    *uint64
	CreatedAt    time.Time
	Status       string
}

// TipDraft is the insertable subset of a tip. Nil fields persist
// as NULL (or the column default), matching a form that was left
// partially blank.
type TipDraft struct {
	TipName      *string
	IncidentType *string
	Location     *string
	Description  *string
	Urgency      *string
	CreatedBy    *uint64
}

// TipUpdate is a partial update: only non-nil fields are written.
// Columns outside this struct cannot be touched, so a typo'd or
// hostile field name is unrepresentable.
type TipUpdate struct {
	TipName      *string
	IncidentType *string
	Location     *string
	Description  *string
	Urgency      *string
	Status       *string
}

// TipFilter selects rows by exact equality on whitelisted columns.
// Set fields are ANDed together; the zero filter matches all rows.
type TipFilter struct {
	IncidentType *string
	Location     *string
	Urgency      *string
	Status       *string
	CreatedBy    *uint64
}

// Canonical status and urgency values. The columns are plain
// VARCHARs, so anything can be stored; these are what the UI writes
// and what the view layer ranks.
const (
	StatusPending       = "Pending"
	StatusInvestigating = "Investigating"
	StatusResolved      = "Resolved"

	UrgencyLow    = "Low"
	UrgencyMedium = "Medium"
	UrgencyHigh   = "High"
)

const tipColumns = "id, tip_name, incident_type, location, description, urgency, created_by, created_at, status"

// TipRepo manages persistence for tips.
type TipRepo struct {
	DB *sql.DB
}

func NewTipRepo(db *sql.DB) *TipRepo { return &TipRepo{DB: db} }

// Create inserts a tip and returns its generated id.
func (r *TipRepo) Create(ctx context.Context, d TipDraft) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO tips (tip_name, incident_type, location, description, urgency, created_by) VALUES (?,?,?,?,?,?)",
		d.TipName, d.IncidentType, d.Location, d.Description, d.Urgency, d.CreatedBy)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a single tip, or ErrTipNotFound.
func (r *TipRepo) GetByID(ctx context.Context, id uint64) (Tip, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+tipColumns+" FROM tips WHERE id=? LIMIT 1", id)
	t, err := scanTipRow(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Tip{}, ErrTipNotFound
	}
	return t, err
}

// List returns tips matching the filter, newest-created first.
func (r *TipRepo) List(ctx context.Context, f TipFilter) ([]Tip, error) {
	where := []string{}
	args := []any{}
	if f.IncidentType != nil {
		where = append(where, "incident_type=?")
		args = append(args, *f.IncidentType)
	}
	if f.Location != nil {
		where = append(where, "location=?")
		args = append(args, *f.Location)
	}
	if f.Urgency != nil {
		where = append(where, "urgency=?")
		args = append(args, *f.Urgency)
	}
	if f.Status != nil {
		where = append(where, "status=?")
		args = append(args, *f.Status)
	}
	if f.CreatedBy != nil {
		where = append(where, "created_by=?")
		args = append(args, *f.CreatedBy)
	}

	q := "SELECT " + tipColumns + " FROM tips"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY created_at DESC, id DESC"

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Tip{}
	for rows.Next() {
		t, err := scanTipRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update writes the set fields of u to the given tip. It returns
// false without touching the database when no field is set, and
// false when no row changed.
func (r *TipRepo) Update(ctx context.Context, id uint64, u TipUpdate) (bool, error) {
	sets := []string{}
	args := []any{}
	if u.TipName != nil {
		sets = append(sets, "tip_name=?")
		args = append(args, *u.TipName)
	}
	if u.IncidentType != nil {
		sets = append(sets, "incident_type=?")
		args = append(args, *u.IncidentType)
	}
	if u.Location != nil {
		sets = append(sets, "location=?")
		args = append(args, *u.Location)
	}
	if u.Description != nil {
		sets = append(sets, "description=?")
		args = append(args, *u.Description)
	}
	if u.Urgency != nil {
		sets = append(sets, "urgency=?")
		args = append(args, *u.Urgency)
	}
	if u.Status != nil {
		sets = append(sets, "status=?")
		args = append(args, *u.Status)
	}
	if len(sets) == 0 {
		return false, nil
	}
	args = append(args, id)

	res, err := r.DB.ExecContext(ctx,
		"UPDATE tips SET "+strings.Join(sets, ", ")+" WHERE id=?", args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Delete removes a tip, reporting whether a row matched.
func (r *TipRepo) Delete(ctx context.Context, id uint64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM tips WHERE id=?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Rules returns the validation thresholds the domain layer checks
// incidents against. A single knob today, not a rule engine.
func (r *TipRepo) Rules() model.IncidentRules {
	return model.IncidentRules{MinDescriptionLength: 20}
}

// scanTipRow scans one tips row via the given Scan func, mapping
// NULL text columns to empty strings.
func scanTipRow(scan func(dest ...any) error) (Tip, error) {
	var t Tip
	var tipName, incidentType, location, description, urgency, status sql.NullString
	var createdBy sql.NullInt64
	err := scan(&t.ID, &tipName, &incidentType, &location, &description, &urgency, &createdBy, &t.CreatedAt, &status)
	if err != nil {
		return Tip{}, err
	}
	t.TipName = tipName.String
	t.IncidentType = incidentType.String
	t.Location = location.String
	t.Description = description.String
	t.Urgency = urgency.String
	t.Status = status.String
	if createdBy.Valid {
		v := uint64(createdBy.Int64)
		t.CreatedBy = &v
	}
	return t, nil
}
