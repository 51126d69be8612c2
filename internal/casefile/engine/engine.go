// Package engine implements the case mutation rules. Every operation takes a
// Case value and returns a new Case value with exactly the targeted sub-state
// changed; the input is never modified. Operations are synchronous and
// in-memory; persistence happens elsewhere, after the transition.
//
// Policy for bad references, applied uniformly: an id that does not exist in
// the target aggregate (photo, extraction, block, case-level field lookup) is
// a NotFound error; input that fails registry membership or enum checks is a
// Validation error. No mutation is ever partially applied.
package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/caseflow/caseflow-backend/internal/casefile/domain"
	"github.com/caseflow/caseflow-backend/pkg/errors"
)

// Engine applies state transitions to case aggregates
type Engine struct {
	now   func() time.Time
	newID func() string
}

// New creates an engine with the real clock and uuid generation
func New() *Engine {
	return &Engine{
		now:   func() time.Time { return time.Now().UTC() },
		newID: func() string { return uuid.New().String() },
	}
}

// NewWithClock creates an engine with injected time and id sources, for tests
func NewWithClock(now func() time.Time, newID func() string) *Engine {
	return &Engine{now: now, newID: newID}
}

// CreateCase builds a fresh aggregate. The BO number is required; it is the
// human-facing case identifier (uniqueness is a business convention, not
// enforced here).
func (e *Engine) CreateCase(bo string) (domain.Case, error) {
	if bo == "" {
		return domain.Case{}, errors.Validation(map[string]string{"bo": "must not be empty"})
	}
	return domain.NewCase(e.newID(), bo, e.now()), nil
}

// SetStatus sets the case lifecycle status
func (e *Engine) SetStatus(c domain.Case, status domain.CaseStatus) (domain.Case, error) {
	if !domain.ValidCaseStatus(status) {
		return c, errors.Validation(map[string]string{
			"status": fmt.Sprintf("unknown status %q", status),
		})
	}

	out := c.Clone()
	out.Status = status
	out.UpdatedAt = e.now()
	return out, nil
}

// MetadataUpdate carries optional top-level metadata changes. Nil fields are
// left untouched.
type MetadataUpdate struct {
	Natureza      *string
	DataHoraFato  *string
	Endereco      *string
	CEP           *string
	Bairro        *string
	Cidade        *string
	Estado        *string
	Circunscricao *string
	Unidade       *string
}

// UpdateMetadata applies a partial update to the case's top-level metadata
func (e *Engine) UpdateMetadata(c domain.Case, upd MetadataUpdate) (domain.Case, error) {
	out := c.Clone()

	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&out.Natureza, upd.Natureza)
	set(&out.DataHoraFato, upd.DataHoraFato)
	set(&out.Endereco, upd.Endereco)
	set(&out.CEP, upd.CEP)
	set(&out.Bairro, upd.Bairro)
	set(&out.Cidade, upd.Cidade)
	set(&out.Estado, upd.Estado)
	set(&out.Circunscricao, upd.Circunscricao)
	set(&out.Unidade, upd.Unidade)

	out.UpdatedAt = e.now()
	return out, nil
}

// AddTeamMember adds an officer to the case team
func (e *Engine) AddTeamMember(c domain.Case, role, name, badge string) (domain.Case, error) {
	if name == "" {
		return c, errors.Validation(map[string]string{"name": "must not be empty"})
	}

	out := c.Clone()
	out.Team = append(out.Team, domain.TeamMember{
		ID:    e.newID(),
		Role:  role,
		Name:  name,
		Badge: badge,
	})
	out.UpdatedAt = e.now()
	return out, nil
}

// RemoveTeamMember removes the team member with the given id
func (e *Engine) RemoveTeamMember(c domain.Case, memberID string) (domain.Case, error) {
	out := c.Clone()
	for i, m := range out.Team {
		if m.ID == memberID {
			out.Team = append(out.Team[:i], out.Team[i+1:]...)
			out.UpdatedAt = e.now()
			return out, nil
		}
	}
	return c, errors.NotFoundID("team member", memberID)
}

// AddTimelineEvent appends an event to the case timeline. The timeline is
// append-only in normal usage; no edit or delete operation exists.
func (e *Engine) AddTimelineEvent(c domain.Case, eventType, label, description string) (domain.Case, error) {
	if label == "" {
		return c, errors.Validation(map[string]string{"label": "must not be empty"})
	}

	out := c.Clone()
	out.Events = append(out.Events, domain.TimelineEvent{
		ID:          e.newID(),
		Type:        eventType,
		Label:       label,
		Timestamp:   e.now(),
		Description: description,
	})
	out.UpdatedAt = e.now()
	return out, nil
}

// AddAuditEvent appends an entry to the audit log. The log is strictly
// append-only: no operation anywhere may mutate or remove existing entries.
// The acting user is supplied by the caller; there is no internal identity
// store.
func (e *Engine) AddAuditEvent(c domain.Case, eventType string, details map[string]string, actorName string) (domain.Case, error) {
	if eventType == "" {
		return c, errors.Validation(map[string]string{"type": "must not be empty"})
	}

	out := c.Clone()
	out.AuditLog = append(out.AuditLog, domain.AuditEvent{
		ID:        e.newID(),
		Type:      eventType,
		Timestamp: e.now(),
		User:      actorName,
		Details:   details,
	})
	out.UpdatedAt = e.now()
	return out, nil
}
