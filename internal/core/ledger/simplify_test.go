package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flatledger/flatledger/internal/core/domain"
	"github.com/flatledger/flatledger/internal/core/ledger"
)

func TestSimplify_Scenario(t *testing.T) {
	// A is owed 60 (30 from B, 30 from C); C additionally owes B 15.
	balances, skipped := ledger.ComputeBalances(scenarioExpenses())
	require.Empty(t, skipped)

	simplified := ledger.Simplify(balances)

	// The greedy matcher pays the largest debt toward the largest credit:
	// C (45) and B (15) both transfer to A (60).
	assert.True(t, simplified["C"].Owes["A"].Equal(decimal.NewFromInt(45)), "C pays A 45, got %s", simplified["C"].Owes["A"])
	assert.True(t, simplified["B"].Owes["A"].Equal(decimal.NewFromInt(15)), "B pays A 15, got %s", simplified["B"].Owes["A"])
	_, cOwesB := simplified["C"].Owes["B"]
	assert.False(t, cOwesB, "the C to B edge must be netted away")

	assert.Equal(t, 2, ledger.CountDebtEdges(simplified))
}

func TestSimplify_PreservesNetBalances(t *testing.T) {
	balances, _ := ledger.ComputeBalances(scenarioExpenses())
	edgesBefore := ledger.CountDebtEdges(balances)

	simplified := ledger.Simplify(balances)

	require.Len(t, simplified, len(balances))
	for userID, before := range balances {
		assert.True(t, simplified[userID].NetBalance.Equal(before.NetBalance),
			"net balance of %s changed: %s vs %s", userID, simplified[userID].NetBalance, before.NetBalance)
	}
	assert.LessOrEqual(t, ledger.CountDebtEdges(simplified), edgesBefore)
}

func TestSimplify_CircularDebtsCancel(t *testing.T) {
	// A owes B 10, B owes C 10, C owes A 10. Every net balance is zero so
	// simplification removes every transfer.
	expenses := []domain.ExpenseRecord{
		makeExpense("e1", "B", 20, "A", "B"),
		makeExpense("e2", "C", 20, "B", "C"),
		makeExpense("e3", "A", 20, "C", "A"),
	}

	balances, _ := ledger.ComputeBalances(expenses)
	simplified := ledger.Simplify(balances)

	assert.Equal(t, 0, ledger.CountDebtEdges(simplified))
	for userID, entry := range simplified {
		assert.True(t, entry.NetBalance.IsZero(), "net balance of %s must stay zero", userID)
	}
}

func TestSimplify_DropsSubCentResidues(t *testing.T) {
	mkEntry := func(userID string, net float64) domain.BalanceEntry {
		entry := domain.NewBalanceEntry(userID)
		entry.NetBalance = decimal.NewFromFloat(net)
		return entry
	}
	balances := map[string]domain.BalanceEntry{
		"A": mkEntry("A", 10.01),
		"B": mkEntry("B", -10.00),
		"C": mkEntry("C", -0.005),
		"D": mkEntry("D", -0.005),
	}

	simplified := ledger.Simplify(balances)

	// B pays its full 10.00 toward A. The leftover 0.01 credit and the
	// half-cent debtors sit inside the cent tolerance and produce nothing.
	assert.True(t, simplified["B"].Owes["A"].Equal(decimal.NewFromFloat(10.00)),
		"B pays A 10.00, got %s", simplified["B"].Owes["A"])
	assert.Equal(t, 1, ledger.CountDebtEdges(simplified))
	assert.Empty(t, simplified["C"].Owes, "a half-cent debtor must not transfer")
	assert.Empty(t, simplified["D"].Owes, "a half-cent debtor must not transfer")
}
