// Package reconciler rewrites a monthly record set into canonical form:
// every raw month key is normalized and records that alias the same
// calendar month are merged, deduplicated by transaction id, and
// re-aggregated. The operation is idempotent, so it is safe to run
// opportunistically on load or on a schedule.
package reconciler

import (
	"sort"

	"lifequest/finance-engine/internal/aggregator"
	"lifequest/finance-engine/internal/models"
	"lifequest/finance-engine/internal/monthkey"
)

// Reconcile returns a new record set with exactly one entry per canonical
// month that had at least one contributing raw entry. Entries whose key
// normalizes to the empty string are excluded. Aggregates are always
// re-derived from the merged, deduplicated transaction list — never from
// summing the per-raw-key aggregates, which would double-count a
// transaction stored under two aliases of the same month.
func Reconcile(set models.MonthlyRecordSet) models.MonthlyRecordSet {
	groups := map[string][]string{}
	for rawKey := range set {
		canonicalKey := monthkey.Normalize(rawKey)
		if canonicalKey == "" {
			continue
		}
		groups[canonicalKey] = append(groups[canonicalKey], rawKey)
	}

	out := models.MonthlyRecordSet{}
	for canonicalKey, rawKeys := range groups {
		sortRawKeys(rawKeys, canonicalKey)

		seen := map[string]bool{}
		merged := []models.Transaction{}
		for _, rawKey := range rawKeys {
			for _, tx := range set[rawKey].Transactions {
				if tx.ID != "" {
					if seen[tx.ID] {
						continue
					}
					seen[tx.ID] = true
				}
				tx.Month = canonicalKey
				merged = append(merged, tx)
			}
		}

		out[canonicalKey] = aggregator.Aggregate(merged)
	}
	return out
}

// sortRawKeys fixes the visit order so "first occurrence wins" is
// deterministic despite map iteration: the canonical spelling comes first,
// remaining aliases follow lexicographically.
func sortRawKeys(rawKeys []string, canonicalKey string) {
	sort.Slice(rawKeys, func(i, j int) bool {
		if rawKeys[i] == canonicalKey {
			return true
		}
		if rawKeys[j] == canonicalKey {
			return false
		}
		return rawKeys[i] < rawKeys[j]
	})
}
