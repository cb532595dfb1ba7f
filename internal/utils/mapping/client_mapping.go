package mapping

import (
	"github.com/SscSPs/fx_fee_engine/internal/core/domain"
	"github.com/SscSPs/fx_fee_engine/internal/models"
	"github.com/jackc/pgx/v5/pgtype"
)

// ToModelClient converts a domain Client to a model Client
func ToModelClient(d domain.Client) models.Client {
	m := models.Client{
		ID:           d.ID,
		ClientID:     d.ExternalID,
		Name:         d.Name,
		RegisteredAt: d.RegisteredAt,
	}
	if d.TierLocked != nil {
		m.TierLocked = pgtype.Bool{Bool: *d.TierLocked, Valid: true}
	}
	if d.TierLockedValue != nil {
		m.TierLockedValue = pgtype.Text{String: *d.TierLockedValue, Valid: true}
	}
	return m
}

// ToDomainClient converts a model Client to a domain Client
func ToDomainClient(m models.Client) domain.Client {
	d := domain.Client{
		ID:           m.ID,
		ExternalID:   m.ClientID,
		Name:         m.Name,
		RegisteredAt: m.RegisteredAt,
	}
	if m.TierLocked.Valid {
		locked := m.TierLocked.Bool
		d.TierLocked = &locked
	}
	if m.TierLockedValue.Valid {
		value := m.TierLockedValue.String
		d.TierLockedValue = &value
	}
	return d
}

// ToDomainJoinedClient converts the client half of a joined row. It returns nil
// when the join found no client.
func ToDomainJoinedClient(m models.JoinedClient) *domain.Client {
	if !m.ID.Valid {
		return nil
	}
	c := ToDomainClient(models.Client{
		ID:              m.ID.Int64,
		ClientID:        m.ClientID.String,
		Name:            m.Name.String,
		RegisteredAt:    timestampOrZero(m.RegisteredAt),
		TierLocked:      m.TierLocked,
		TierLockedValue: m.TierLockedValue,
	})
	return &c
}
