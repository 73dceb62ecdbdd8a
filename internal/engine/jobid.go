package engine

import "strings"

// ReconcileRow is the slice of a board row the reconciler needs: the raw
// identifier plus the exclusion field and its override.
type ReconcileRow struct {
	ID           string
	CM           string
	ForceInclude bool
}

// ReconcileIDs resolves duplicate and decimal-suffixed job identifiers
// over a full batch. Two passes: the first collects which base ids are
// present, the second decides each decimal-suffixed id (".1", ".2", ...)
// — dropped when its base id exists elsewhere, retained when it is the
// only record for that job. A ".0" suffix is always normalized to the
// bare id. Output is deduplicated in first-seen order.
//
// The whole batch is required up front; the second pass depends on global
// knowledge of base-id presence, so this cannot stream.
func ReconcileIDs(rawIDs []string) []string {
	basePresent := make(map[string]bool, len(rawIDs))
	for _, raw := range rawIDs {
		id := NormalizeJobID(raw)
		if id == "" {
			continue
		}
		// Decimal-suffixed ids do not establish base presence.
		if _, suffix, ok := splitDecimalID(id); ok && suffix != "0" {
			continue
		}
		basePresent[baseOf(id)] = true
	}

	seen := make(map[string]bool, len(rawIDs))
	var out []string
	for _, raw := range rawIDs {
		id := NormalizeJobID(raw)
		if id == "" {
			continue
		}
		if base, suffix, ok := splitDecimalID(id); ok && suffix != "0" {
			if basePresent[base] {
				continue // duplicate of an existing base record
			}
		}
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// ReconcileRows applies the CM exclusion rule before id reconciliation:
// rows whose CM field contains the marker substring (case-insensitive)
// are dropped unless force-included.
func ReconcileRows(rows []ReconcileRow, marker string) (ids []string, excluded int) {
	kept := make([]string, 0, len(rows))
	for _, r := range rows {
		if !r.ForceInclude && marker != "" && ContainsFold(r.CM, marker) {
			excluded++
			continue
		}
		kept = append(kept, r.ID)
	}
	return ReconcileIDs(kept), excluded
}

// NormalizeJobID trims the raw cell and rewrites a ".0" suffix to the
// bare integer string ("8475.0" → "8475"). Callers joining external data
// on job ids must normalize both sides with this first.
func NormalizeJobID(raw string) string {
	id := CleanText(raw)
	if base, suffix, ok := splitDecimalID(id); ok && suffix == "0" {
		return base
	}
	return id
}

// splitDecimalID splits "8475.1" into ("8475", "1", true). Ids without a
// single dot-separated numeric suffix return ok=false.
func splitDecimalID(id string) (base, suffix string, ok bool) {
	idx := strings.LastIndex(id, ".")
	if idx <= 0 || idx == len(id)-1 {
		return "", "", false
	}
	base, suffix = id[:idx], id[idx+1:]
	if !allDigits(base) || !allDigits(suffix) {
		return "", "", false
	}
	return base, suffix, true
}

func baseOf(id string) string {
	if base, _, ok := splitDecimalID(id); ok {
		return base
	}
	return id
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
