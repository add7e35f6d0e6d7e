// Package service implements the write paths between the UI and the
// tip repository: validation, description clamping and role checks
// live here so the repository can stay a plain persistence layer.
package service

import (
	"context"
	"errors"

	"github.com/tattlestoolie/tattlestoolie/internal/model"
	"github.com/tattlestoolie/tattlestoolie/internal/repository"
)

// maxDescriptionChars is the storage bound of tips.description.
// Longer descriptions are clamped silently, never rejected.
const maxDescriptionChars = 500

// ErrDescriptionTooShort is returned by Submit when the description
// fails the repository's minimum-length rule.
var ErrDescriptionTooShort = errors.New("description below minimum length")

// TipStore is the write-side repository surface the service needs.
// Satisfied by *repository.TipRepo; reads go to the repository
// directly.
type TipStore interface {
	Create(ctx context.Context, d repository.TipDraft) (uint64, error)
	Update(ctx context.Context, id uint64, u repository.TipUpdate) (bool, error)
	Delete(ctx context.Context, id uint64) (bool, error)
	Rules() model.IncidentRules
}

// TipService gates tip writes behind validation and the caller's
// session. Sessions are passed explicitly per call.
type TipService struct {
	store TipStore
}

func NewTipService(store TipStore) *TipService {
	return &TipService{store: store}
}

// Submit validates the incident against the repository rules,
// clamps the description to the storage bound and persists it with
// the session owner as created_by. Every role may submit.
func (s *TipService) Submit(ctx context.Context, sess model.Session, inc model.Incident) (uint64, error) {
	if !inc.Validate(s.store.Rules()) {
		return 0, ErrDescriptionTooShort
	}
	tipName := inc.TipName()
	location := inc.Location()
	desc := clampDescription(inc.Description)
	draft := repository.TipDraft{
		TipName:      &tipName,
		IncidentType: &inc.IncidentType,
		Location:     &location,
		Description:  &desc,
		Urgency:      &inc.Urgency,
	}
	if uid := sess.UserID(); uid != 0 {
		draft.CreatedBy = &uid
	}
	return s.store.Create(ctx, draft)
}

// Edit applies a partial update. Admin only; the description, if
// supplied, is clamped like on submit.
func (s *TipService) Edit(ctx context.Context, sess model.Session, id uint64, upd repository.TipUpdate) (bool, error) {
	if !sess.IsAdmin() {
		return false, repository.ErrForbidden
	}
	if upd.Description != nil {
		c := clampDescription(*upd.Description)
		upd.Description = &c
	}
	return s.store.Update(ctx, id, upd)
}

// Resolve transitions a tip to the Resolved status. Admin only.
func (s *TipService) Resolve(ctx context.Context, sess model.Session, id uint64) (bool, error) {
	if !sess.IsAdmin() {
		return false, repository.ErrForbidden
	}
	status := repository.StatusResolved
	return s.store.Update(ctx, id, repository.TipUpdate{Status: &status})
}

// Delete removes a tip. Admin only; typically paired with Resolve
// in the UI flow.
func (s *TipService) Delete(ctx context.Context, sess model.Session, id uint64) (bool, error) {
	if !sess.IsAdmin() {
		return false, repository.ErrForbidden
	}
	return s.store.Delete(ctx, id)
}

// IncidentFromTip rebuilds the domain Incident from a stored row,
// running the guarded fields back through their setters. Rows
// predating the guards can fail here; the edit flow surfaces that
// instead of carrying an invalid name or location forward.
func IncidentFromTip(t repository.Tip) (model.Incident, error) {
	inc, err := model.NewIncident(t.TipName, t.IncidentType, t.Location, t.Description, t.Urgency, t.CreatedBy)
	if err != nil {
		return model.Incident{}, err
	}
	inc.ID = t.ID
	return inc, nil
}

// clampDescription truncates to the storage bound, counting
// characters rather than bytes.
func clampDescription(s string) string {
	r := []rune(s)
	if len(r) <= maxDescriptionChars {
		return s
	}
	return string(r[:maxDescriptionChars])
}
