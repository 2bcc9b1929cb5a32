package ledger_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flatledger/flatledger/internal/core/domain"
	"github.com/flatledger/flatledger/internal/core/ledger"
)

func makeExpense(id, payerID string, amount float64, participantIDs ...string) domain.ExpenseRecord {
	return domain.ExpenseRecord{
		ExpenseID:      id,
		ApartmentID:    "apt-1",
		Amount:         decimal.NewFromFloat(amount),
		PayerID:        payerID,
		ParticipantIDs: participantIDs,
	}
}

// Three users A, B, C. A pays 90 split three ways, B pays 30 split with C.
func scenarioExpenses() []domain.ExpenseRecord {
	return []domain.ExpenseRecord{
		makeExpense("e1", "A", 90, "A", "B", "C"),
		makeExpense("e2", "B", 30, "B", "C"),
	}
}

func TestComputeRawBalances_Scenario(t *testing.T) {
	balances, skipped := ledger.ComputeRawBalances(scenarioExpenses())
	require.Empty(t, skipped)
	require.Len(t, balances, 3)

	assert.True(t, balances["B"].Owes["A"].Equal(decimal.NewFromInt(30)), "B owes A 30, got %s", balances["B"].Owes["A"])
	assert.True(t, balances["C"].Owes["A"].Equal(decimal.NewFromInt(30)), "C owes A 30, got %s", balances["C"].Owes["A"])
	assert.True(t, balances["C"].Owes["B"].Equal(decimal.NewFromInt(15)), "C owes B 15, got %s", balances["C"].Owes["B"])

	assert.True(t, balances["A"].NetBalance.Equal(decimal.NewFromInt(60)))
	assert.True(t, balances["B"].NetBalance.Equal(decimal.NewFromInt(-15)))
	assert.True(t, balances["C"].NetBalance.Equal(decimal.NewFromInt(-45)))
}

func TestComputeBalances_ZeroSum(t *testing.T) {
	expenses := []domain.ExpenseRecord{
		makeExpense("e1", "A", 100, "A", "B", "C"),
		makeExpense("e2", "B", 33.34, "A", "B"),
		makeExpense("e3", "C", 7.77, "A", "B", "C", "D"),
		makeExpense("e4", "D", 0.05, "C", "D"),
	}

	balances, skipped := ledger.ComputeBalances(expenses)
	require.Empty(t, skipped)

	total := decimal.Zero
	for _, entry := range balances {
		total = total.Add(entry.NetBalance)
	}
	// The system is closed: every expense is fully distributed and credited.
	tolerance := decimal.NewFromFloat(0.01).Mul(decimal.NewFromInt(int64(len(balances))))
	assert.True(t, total.Abs().LessThanOrEqual(tolerance), "net balances must sum to zero, got %s", total)
}

func TestComputeBalances_OrderIndependence(t *testing.T) {
	expenses := []domain.ExpenseRecord{
		makeExpense("e1", "A", 90, "A", "B", "C"),
		makeExpense("e2", "B", 30, "B", "C"),
		makeExpense("e3", "C", 42.50, "A", "C"),
		makeExpense("e4", "A", 12.99, "B", "A"),
	}

	reference, _ := ledger.ComputeBalances(expenses)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		shuffled := make([]domain.ExpenseRecord, len(expenses))
		copy(shuffled, expenses)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got, _ := ledger.ComputeBalances(shuffled)
		require.Len(t, got, len(reference))
		for userID, want := range reference {
			assert.True(t, got[userID].NetBalance.Equal(want.NetBalance),
				"net balance of %s changed with input order: %s vs %s", userID, got[userID].NetBalance, want.NetBalance)
			for counterparty, amount := range want.Owes {
				assert.True(t, got[userID].Owes[counterparty].Equal(amount))
			}
		}
	}
}

func TestComputeRawBalances_SkipsMalformedRecords(t *testing.T) {
	expenses := []domain.ExpenseRecord{
		makeExpense("good", "A", 10, "A", "B"),
		makeExpense("no-payer", "", 10, "A", "B"),
		makeExpense("zero-amount", "A", 0, "A", "B"),
		{ExpenseID: "negative", PayerID: "A", Amount: decimal.NewFromInt(-5), ParticipantIDs: []string{"B"}},
		makeExpense("no-participants", "A", 10),
	}

	balances, skipped := ledger.ComputeRawBalances(expenses)

	require.Len(t, skipped, 4)
	reasons := make(map[string]string, len(skipped))
	for _, s := range skipped {
		reasons[s.ExpenseID] = s.Reason
	}
	assert.Equal(t, "empty payer id", reasons["no-payer"])
	assert.Equal(t, "non-positive amount", reasons["zero-amount"])
	assert.Equal(t, "non-positive amount", reasons["negative"])
	assert.Equal(t, "no participants", reasons["no-participants"])

	// The good record still folds.
	assert.True(t, balances["B"].Owes["A"].Equal(decimal.NewFromInt(5)))
}

func TestComputeBalances_NetsMutualDebts(t *testing.T) {
	expenses := []domain.ExpenseRecord{
		makeExpense("e1", "A", 40, "A", "B"), // B owes A 20
		makeExpense("e2", "B", 10, "A", "B"), // A owes B 5
	}

	balances, _ := ledger.ComputeBalances(expenses)

	assert.True(t, balances["B"].Owes["A"].Equal(decimal.NewFromInt(15)), "pair nets to B owes A 15")
	_, aOwesB := balances["A"].Owes["B"]
	assert.False(t, aOwesB, "the smaller direction must not survive netting")
	assert.True(t, balances["A"].NetBalance.Equal(decimal.NewFromInt(15)))
	assert.True(t, balances["B"].NetBalance.Equal(decimal.NewFromInt(-15)))
}

func TestComputeBalances_SettlementArtifactZeroesPair(t *testing.T) {
	// A pays 100 split with B, so B owes A 50. The settlement artifact for
	// that debt is paid by B at twice the amount with both as participants.
	expenses := []domain.ExpenseRecord{
		makeExpense("e1", "A", 100, "A", "B"),
		{
			ExpenseID:            "artifact",
			ApartmentID:          "apt-1",
			Amount:               decimal.NewFromInt(100),
			PayerID:              "B",
			ParticipantIDs:       []string{"A", "B"},
			IsSettlementArtifact: true,
		},
	}

	balances, skipped := ledger.ComputeBalances(expenses)
	require.Empty(t, skipped)

	tolerance := decimal.NewFromFloat(0.01)
	for _, userID := range []string{"A", "B"} {
		assert.True(t, balances[userID].NetBalance.Abs().LessThanOrEqual(tolerance),
			"pair must net to zero after settlement, %s has %s", userID, balances[userID].NetBalance)
		assert.Empty(t, balances[userID].Owes, "no debt edges must survive for %s", userID)
	}
}

func TestComputeBalances_NewSettlementArtifactZeroesPair(t *testing.T) {
	// The artifact is built exactly the way a debt closure constructs it, so
	// this pins the payer direction and the doubled amount together.
	debt := domain.Debt{
		DebtID:      "debt-1",
		ApartmentID: "apt-1",
		FromUserID:  "B",
		ToUserID:    "A",
		Amount:      decimal.NewFromInt(50),
	}
	expenses := []domain.ExpenseRecord{
		makeExpense("e1", "A", 100, "A", "B"), // B owes A 50
		domain.NewSettlementArtifact(debt, "artifact-1", "B", time.Now()),
	}

	balances, skipped := ledger.ComputeBalances(expenses)
	require.Empty(t, skipped)

	for _, userID := range []string{"A", "B"} {
		assert.True(t, balances[userID].NetBalance.IsZero(),
			"settling the debt must zero the pair, %s has %s", userID, balances[userID].NetBalance)
		assert.Empty(t, balances[userID].Owes, "no debt edges must survive for %s", userID)
	}
}

func TestComputeBalances_ClearsPairsWithinCentTolerance(t *testing.T) {
	expenses := []domain.ExpenseRecord{
		makeExpense("e1", "A", 20.02, "A", "B"), // B owes A 10.01
		makeExpense("e2", "B", 20.00, "A", "B"), // A owes B 10.00
	}

	balances, skipped := ledger.ComputeBalances(expenses)
	require.Empty(t, skipped)

	assert.Empty(t, balances["A"].Owes, "a 0.01 residue must not survive as a debt edge")
	assert.Empty(t, balances["B"].Owes, "a 0.01 residue must not survive as a debt edge")
	assert.True(t, balances["A"].NetBalance.IsZero(), "A nets to zero, got %s", balances["A"].NetBalance)
	assert.True(t, balances["B"].NetBalance.IsZero(), "B nets to zero, got %s", balances["B"].NetBalance)
}
