package usecase

import "strings"

var (
	separatorStripper = strings.NewReplacer("_", "", "-", "")
	suffixStripper    = strings.NewReplacer("ASSM", "", "ASSLY", "", "ASSY", "", "ASSEMBLY", "")
)

// NormalizeKey canonicalizes a category label into a join key. Labels that
// differ only by case, separators or an assembly suffix map to the same key,
// and DGEAR is expanded to DRAFTGEAR. The result is never displayed.
func NormalizeKey(raw string) string {
	if raw == "" {
		return ""
	}

	key := strings.ToUpper(raw)
	key = strings.Join(strings.Fields(key), "")
	key = separatorStripper.Replace(key)

	// Removing one token can splice together another ("ASSASSYY"), so strip
	// until nothing changes to keep the function idempotent.
	for {
		next := suffixStripper.Replace(key)
		if next == key {
			break
		}
		key = next
	}

	return strings.ReplaceAll(key, "DGEAR", "DRAFTGEAR")
}
