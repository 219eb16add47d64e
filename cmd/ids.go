package cmd

import (
	"fmt"
	"strings"

	"github.com/insterion/ev-log/internal/model"
)

// resolveEntryID matches a full id or a unique prefix, as printed by
// `log --ids`.
func resolveEntryID(entries []model.ChargingEntry, token string) (string, error) {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return resolveID(ids, token, "entry")
}

// resolveCostID matches a full id or a unique prefix.
func resolveCostID(costs []model.Cost, token string) (string, error) {
	ids := make([]string, len(costs))
	for i, c := range costs {
		ids[i] = c.ID
	}
	return resolveID(ids, token, "cost")
}

func resolveID(ids []string, token, kind string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("empty %s id", kind)
	}
	var matches []string
	for _, id := range ids {
		if id == token {
			return id, nil
		}
		if strings.HasPrefix(id, token) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no %s matches id %q", kind, token)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("id %q is ambiguous (%d %ss match)", token, len(matches), kind)
	}
}
