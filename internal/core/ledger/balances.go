// Package ledger holds the pure balance computation and debt simplification
// logic. Functions here do no I/O and keep no state; every call builds fresh
// maps, so concurrent use on different snapshots needs no coordination.
package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/flatledger/flatledger/internal/core/domain"
)

// centTolerance is the minor-unit precision of the single supported currency.
// Pair balances within this tolerance are treated as settled.
var centTolerance = decimal.New(1, -2) // 0.01

// SkippedExpense describes an expense record the fold ignored. A single
// corrupt record must not block balance visibility for the whole apartment,
// so skips are reported back for logging instead of raised.
type SkippedExpense struct {
	ExpenseID string
	Reason    string
}

// ComputeRawBalances folds expense records into per-user balance entries
// without any netting: every per-payer debt stays itemized.
//
// The fold is commutative: input order does not affect the result. Per-pair
// accumulations are rounded to two decimals after each step so intermediate
// values stay stable and auditable.
func ComputeRawBalances(expenses []domain.ExpenseRecord) (map[string]domain.BalanceEntry, []SkippedExpense) {
	balances := make(map[string]domain.BalanceEntry)
	var skipped []SkippedExpense

	for _, exp := range expenses {
		if reason := validateForFold(exp); reason != "" {
			skipped = append(skipped, SkippedExpense{ExpenseID: exp.ExpenseID, Reason: reason})
			continue
		}

		share := exp.Amount.Div(decimal.NewFromInt(int64(len(exp.ParticipantIDs)))).Round(2)
		for _, participantID := range exp.ParticipantIDs {
			// The payer's own share never becomes a debt edge.
			if participantID == "" || participantID == exp.PayerID {
				continue
			}
			debtor := ensureEntry(balances, participantID)
			payer := ensureEntry(balances, exp.PayerID)

			debtor.Owes[exp.PayerID] = debtor.Owes[exp.PayerID].Add(share).Round(2)
			payer.Owed[participantID] = payer.Owed[participantID].Add(share).Round(2)
		}
	}

	recomputeNetBalances(balances)
	return balances, skipped
}

// ComputeBalances folds expense records into per-user balance entries and
// nets each unordered pair down to a single directional debt. This is the
// default presentation mode; ComputeRawBalances keeps debts itemized.
func ComputeBalances(expenses []domain.ExpenseRecord) (map[string]domain.BalanceEntry, []SkippedExpense) {
	balances, skipped := ComputeRawBalances(expenses)
	netPairs(balances)
	return balances, skipped
}

// validateForFold returns a non-empty reason when the record must be skipped.
func validateForFold(exp domain.ExpenseRecord) string {
	switch {
	case exp.PayerID == "":
		return "empty payer id"
	case !exp.Amount.IsPositive():
		return "non-positive amount"
	case len(exp.ParticipantIDs) == 0:
		return "no participants"
	}
	return ""
}

// netPairs collapses mutual debts: whenever A owes B and B owes A, only the
// difference survives, owed by whichever side carried the larger gross debt.
// Pairs whose difference is within the cent tolerance are cleared entirely.
func netPairs(balances map[string]domain.BalanceEntry) {
	users := sortedUserIDs(balances)
	for i, a := range users {
		for _, b := range users[i+1:] {
			entryA := balances[a]
			entryB := balances[b]

			aOwesB := entryA.Owes[b]
			bOwesA := entryB.Owes[a]
			if aOwesB.IsZero() && bOwesA.IsZero() {
				continue
			}

			net := aOwesB.Sub(bOwesA)
			clearPair(entryA, entryB, b, a)
			switch {
			case net.Abs().LessThanOrEqual(centTolerance):
				// Settled within tolerance; nothing survives.
			case net.IsPositive():
				entryA.Owes[b] = net
				entryB.Owed[a] = net
			default:
				entryB.Owes[a] = net.Abs()
				entryA.Owed[b] = net.Abs()
			}
		}
	}
	recomputeNetBalances(balances)
}

// clearPair removes both directions of the (A,B) debt edge.
func clearPair(entryA, entryB domain.BalanceEntry, b, a string) {
	delete(entryA.Owes, b)
	delete(entryA.Owed, b)
	delete(entryB.Owes, a)
	delete(entryB.Owed, a)
}

// ensureEntry returns the balance entry for userID, creating it if absent.
// The entry's maps are shared with the stored value, so mutations stick.
func ensureEntry(balances map[string]domain.BalanceEntry, userID string) domain.BalanceEntry {
	entry, ok := balances[userID]
	if !ok {
		entry = domain.NewBalanceEntry(userID)
		balances[userID] = entry
	}
	return entry
}

// recomputeNetBalances sets NetBalance = sum(owed) - sum(owes) on every entry.
func recomputeNetBalances(balances map[string]domain.BalanceEntry) {
	for userID, entry := range balances {
		net := decimal.Zero
		for _, amount := range entry.Owed {
			net = net.Add(amount)
		}
		for _, amount := range entry.Owes {
			net = net.Sub(amount)
		}
		entry.NetBalance = net.Round(2)
		balances[userID] = entry
	}
}

func sortedUserIDs(balances map[string]domain.BalanceEntry) []string {
	ids := make([]string, 0, len(balances))
	for id := range balances {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
