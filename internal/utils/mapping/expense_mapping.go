package mapping

import (
	"github.com/flatledger/flatledger/internal/core/domain"
	"github.com/flatledger/flatledger/internal/models"
)

// ToModelExpense converts a domain ExpenseRecord to a model ExpenseRecord
func ToModelExpense(d domain.ExpenseRecord) models.ExpenseRecord {
	return models.ExpenseRecord{
		ExpenseID:            d.ExpenseID,
		ApartmentID:          d.ApartmentID,
		Amount:               d.Amount,
		PayerID:              d.PayerID,
		ParticipantIDs:       d.ParticipantIDs,
		Description:          d.Description,
		IsSettlementArtifact: d.IsSettlementArtifact,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExpense converts a model ExpenseRecord to a domain ExpenseRecord
func ToDomainExpense(m models.ExpenseRecord) domain.ExpenseRecord {
	return domain.ExpenseRecord{
		ExpenseID:            m.ExpenseID,
		ApartmentID:          m.ApartmentID,
		Amount:               m.Amount,
		PayerID:              m.PayerID,
		ParticipantIDs:       m.ParticipantIDs,
		Description:          m.Description,
		IsSettlementArtifact: m.IsSettlementArtifact,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainExpenseSlice converts a slice of model ExpenseRecords to domain ExpenseRecords
func ToDomainExpenseSlice(ms []models.ExpenseRecord) []domain.ExpenseRecord {
	ds := make([]domain.ExpenseRecord, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExpense(m)
	}
	return ds
}
