package poll

import "github.com/protolab/portal-api/internal/core/domain"

// MergeMessages merges a freshly polled batch into an existing message list.
// The merge is append-only and deduplicates by message ID, so re-delivered
// messages from overlapping polls collapse to a single entry. Existing order
// is preserved; new messages keep their arrival order.
func MergeMessages(existing, incoming []domain.Message) []domain.Message {
	seen := make(map[string]struct{}, len(existing))
	for _, m := range existing {
		seen[m.ID] = struct{}{}
	}

	merged := existing
	for _, m := range incoming {
		if _, ok := seen[m.ID]; ok {
			continue
		}
		seen[m.ID] = struct{}{}
		merged = append(merged, m)
	}
	return merged
}
