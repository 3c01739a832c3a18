// Package indicator extracts boolean policy-mention flags from raw policy text.
//
// Extraction is deliberately naive: lower-case the text once and test a fixed
// synonym list per flag with substring matching. There is no negation handling,
// so "no cross-border restrictions" still matches; that limitation is accepted
// and surfaced in the methodology notes rather than silently patched.
package indicator

import "strings"

// Flag is a canonical indicator name. Earlier parsers wrote different key
// names for the same signals; each flag keeps an ordered alias list so stored
// records under either name resolve to the same canonical flag.
type Flag string

const (
	FlagDataLocalization Flag = "mentions_data_localization"
	FlagAISystems        Flag = "mentions_ai_systems"
	FlagCrossBorder      Flag = "mentions_cross_border"
)

// definition binds a flag to its accepted aliases and match phrases.
type definition struct {
	flag    Flag
	aliases []string
	phrases []string
}

var definitions = []definition{
	{
		flag:    FlagDataLocalization,
		aliases: []string{"data_residency_required"},
		phrases: []string{"data localization", "data localisation", "data residency"},
	},
	{
		flag:    FlagAISystems,
		aliases: []string{"ai_registry_required"},
		phrases: []string{"ai system", "high-risk ai", "ai registry"},
	},
	{
		flag:    FlagCrossBorder,
		aliases: []string{"cross_border_restrictions"},
		phrases: []string{"cross-border data transfer", "third country", "cross border"},
	},
}

// Flags returns the canonical flag vocabulary in a stable order.
func Flags() []Flag {
	out := make([]Flag, 0, len(definitions))
	for _, def := range definitions {
		out = append(out, def.flag)
	}
	return out
}

// Aliases returns the accepted legacy key names for a flag, in preference
// order after the canonical name itself.
func Aliases(flag Flag) []string {
	for _, def := range definitions {
		if def.flag == flag {
			return append([]string{}, def.aliases...)
		}
	}
	return nil
}

// Extract maps raw policy text to indicator booleans. The result contains the
// canonical key and every legacy alias with identical values, so downstream
// readers of older records and new records see the same shape. Empty or
// whitespace-only text yields all-false flags.
func Extract(rawText string) map[string]bool {
	text := strings.ToLower(rawText)

	out := make(map[string]bool, len(definitions)*2)
	for _, def := range definitions {
		matched := false
		for _, phrase := range def.phrases {
			if strings.Contains(text, phrase) {
				matched = true
				break
			}
		}
		out[string(def.flag)] = matched
		for _, alias := range def.aliases {
			out[alias] = matched
		}
	}
	return out
}

// Resolve reads one flag from a raw key/value indicator map, preferring the
// canonical key and falling back through the aliases. Values are parsed with
// ParseBool; a missing key is false.
func Resolve(indicators map[string]string, flag Flag) bool {
	if v, ok := indicators[string(flag)]; ok {
		return ParseBool(v)
	}
	for _, alias := range Aliases(flag) {
		if v, ok := indicators[alias]; ok {
			return ParseBool(v)
		}
	}
	return false
}

// ParseBool converts common text representations to a boolean. Anything not in
// the accepted set (including empty) is false.
func ParseBool(val string) bool {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "1", "true", "yes", "y":
		return true
	default:
		return false
	}
}
