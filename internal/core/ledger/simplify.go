package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/flatledger/flatledger/internal/core/domain"
)

// stake is one side of the matching: a user and how much they still owe
// (debtor) or are still owed (creditor).
type stake struct {
	userID string
	amount decimal.Decimal
}

// Simplify collapses the debt graph into a minimal set of net transfers.
//
// Users are partitioned into creditors and debtors by net balance, sorted by
// amount descending with user id as the tie-break, and greedily matched:
// the largest remaining debt is paid toward the largest remaining credit
// until every balance is within the cent tolerance of zero. The result has
// at most n-1 transfers for n users with nonzero balance, and every user's
// net balance is unchanged from the input.
func Simplify(balances map[string]domain.BalanceEntry) map[string]domain.BalanceEntry {
	result := make(map[string]domain.BalanceEntry, len(balances))
	for userID := range balances {
		result[userID] = domain.NewBalanceEntry(userID)
	}

	var creditors, debtors []stake
	for _, userID := range sortedUserIDs(balances) {
		net := balances[userID].NetBalance
		switch {
		case net.GreaterThan(centTolerance):
			creditors = append(creditors, stake{userID: userID, amount: net})
		case net.LessThan(centTolerance.Neg()):
			debtors = append(debtors, stake{userID: userID, amount: net.Neg()})
		}
	}
	sortStakes(creditors)
	sortStakes(debtors)

	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		transfer := decimal.Min(debtors[i].amount, creditors[j].amount).Round(2)

		if transfer.GreaterThan(centTolerance) {
			debtor := result[debtors[i].userID]
			creditor := result[creditors[j].userID]
			debtor.Owes[creditors[j].userID] = debtor.Owes[creditors[j].userID].Add(transfer).Round(2)
			creditor.Owed[debtors[i].userID] = creditor.Owed[debtors[i].userID].Add(transfer).Round(2)
		}

		debtors[i].amount = debtors[i].amount.Sub(transfer)
		creditors[j].amount = creditors[j].amount.Sub(transfer)
		if debtors[i].amount.LessThanOrEqual(centTolerance) {
			i++
		}
		if creditors[j].amount.LessThanOrEqual(centTolerance) {
			j++
		}
	}

	recomputeNetBalances(result)
	return result
}

// sortStakes orders by amount descending, then user id ascending, so the
// matching is reproducible for identical inputs.
func sortStakes(stakes []stake) {
	sort.SliceStable(stakes, func(i, j int) bool {
		if !stakes[i].amount.Equal(stakes[j].amount) {
			return stakes[i].amount.GreaterThan(stakes[j].amount)
		}
		return stakes[i].userID < stakes[j].userID
	})
}

// CountDebtEdges returns the number of nonzero directed debt edges in the
// graph. Used to verify that simplification only ever compresses it.
func CountDebtEdges(balances map[string]domain.BalanceEntry) int {
	edges := 0
	for _, entry := range balances {
		for _, amount := range entry.Owes {
			if !amount.IsZero() {
				edges++
			}
		}
	}
	return edges
}
