package pgsql

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/flatledger/flatledger/internal/apperrors"
	"github.com/flatledger/flatledger/internal/models"
)

func openDebt() models.Debt {
	return models.Debt{
		DebtID:      "debt-1",
		ApartmentID: "apt-1",
		FromUserID:  "user-b",
		ToUserID:    "user-a",
		Amount:      decimal.NewFromInt(50),
		Status:      models.DebtOpen,
	}
}

func TestValidateOpenDebt(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.Debt)
		wantErr bool
	}{
		{
			name:   "valid open debt",
			mutate: func(d *models.Debt) {},
		},
		{
			name:    "unknown status",
			mutate:  func(d *models.Debt) { d.Status = "PENDING" },
			wantErr: true,
		},
		{
			name:    "zero amount",
			mutate:  func(d *models.Debt) { d.Amount = decimal.Zero },
			wantErr: true,
		},
		{
			name:    "negative amount",
			mutate:  func(d *models.Debt) { d.Amount = decimal.NewFromInt(-5) },
			wantErr: true,
		},
		{
			name:    "empty debtor id",
			mutate:  func(d *models.Debt) { d.FromUserID = "" },
			wantErr: true,
		},
		{
			name:    "empty creditor id",
			mutate:  func(d *models.Debt) { d.ToUserID = "" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			debt := openDebt()
			tt.mutate(&debt)

			err := validateOpenDebt(&debt)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrMalformed)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
