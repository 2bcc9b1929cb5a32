package mapping

import (
	"github.com/flatledger/flatledger/internal/core/domain"
	"github.com/flatledger/flatledger/internal/models"
)

// ToModelDebt converts a domain Debt to a model Debt
func ToModelDebt(d domain.Debt) models.Debt {
	return models.Debt{
		DebtID:               d.DebtID,
		ApartmentID:          d.ApartmentID,
		FromUserID:           d.FromUserID,
		ToUserID:             d.ToUserID,
		Amount:               d.Amount,
		Status:               models.DebtStatus(d.Status),
		ClosedAt:             d.ClosedAt,
		ClosedBy:             d.ClosedBy,
		SettlementArtifactID: d.SettlementArtifactID,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDebt converts a model Debt to a domain Debt
func ToDomainDebt(m models.Debt) domain.Debt {
	return domain.Debt{
		DebtID:               m.DebtID,
		ApartmentID:          m.ApartmentID,
		FromUserID:           m.FromUserID,
		ToUserID:             m.ToUserID,
		Amount:               m.Amount,
		Status:               domain.DebtStatus(m.Status),
		ClosedAt:             m.ClosedAt,
		ClosedBy:             m.ClosedBy,
		SettlementArtifactID: m.SettlementArtifactID,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainDebtSlice converts a slice of model Debts to domain Debts
func ToDomainDebtSlice(ms []models.Debt) []domain.Debt {
	ds := make([]domain.Debt, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDebt(m)
	}
	return ds
}

// ToDomainSettlementAudit converts a model SettlementAuditRecord to its domain form
func ToDomainSettlementAudit(m models.SettlementAuditRecord) domain.SettlementAuditRecord {
	return domain.SettlementAuditRecord{
		AuditID:              m.AuditID,
		ApartmentID:          m.ApartmentID,
		DebtID:               m.DebtID,
		SettlementArtifactID: m.SettlementArtifactID,
		ActorID:              m.ActorID,
		DebtorID:             m.DebtorID,
		CreditorID:           m.CreditorID,
		OriginalAmount:       m.OriginalAmount,
		SettlementAmount:     m.SettlementAmount,
		CreatedAt:            m.CreatedAt,
	}
}
