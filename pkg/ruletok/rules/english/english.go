// Package english provides the default English rule tables: punctuation
// prefixes and suffixes, infix boundaries, number/emoticon/abbreviation
// whole-token matching, URL matching, and the contraction and abbreviation
// exception lexicon.
package english

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/cognicore/ruletok/pkg/ruletok/rules"
)

// Character class contents, for use inside [...].
const (
	alphaLower   = "a-z"
	alphaUpper   = "A-Z"
	alpha        = "a-zA-Z"
	digits       = "0-9"
	alphanum     = "a-zA-Z0-9"
	concatQuotes = `'"` + "`" + `‘’“”„»«「」『』（）〔〕【】《》〈〉⟦⟧`
)

var (
	simpleHyphens   = []string{"-", "–", "—", "~"}
	multiHyphens    = `--|---|——`
	ellipsisLiteral = []string{"…", "⋯", "⋮"}
	ellipsisRegex   = []string{`\.{3,}`, `\.{2}`}
	iconPatterns    = []string{
		`[❤⭐👍✔✘]`,
		`[😊😂😍🤔😅]`,
		`:placeholdericon1:`,
		`placeholdericon2`,
	}
)

const (
	currency = `\$|£|€|¥|฿|US\$|C\$|A\$|₽|﷼|₴|₠|₡|₢|₣|₤|₥|₦|₧|₨|₩|₪|₫|€|₭|₮|₯|₰|₱|₲|₳|₴|₵|₶|₷|₸|₹|₺|₻|₼|₽|₾|₿`
	units    = `km|km²|km³|m|m²|m³|dm|dm²|dm³|cm|cm²|cm³|mm|mm²|mm³|ha|µm|nm|yd|in|ft|kg|g|mg|µg|t|lb|oz|m/s|km/h|kmh|mph|hPa|Pa|mbar|mb|MB|kb|KB|gb|GB|tb|TB|T|G|M|K|%`
)

// Emoticons are kept whole wherever they appear.
var Emoticons = []string{
	":)", ":-)", ":))", ":-))", ":)))", ":-)))", "(:", "(-:", "=)", "(=", ":]", ":-]", "[:", "[-:", "[=", "=]",
	":o)", "(o:", ":}", ":-}", "8)", "8-)", "(-8", ";)", ";-)", "(;", "(-;", ":(", ":-(", ":((", ":-((", ":(((", ":-(((",
	"):", ")-:", "=(", ">:(", ":')", ":'-)", ":'(", ":'-(", ":/", ":-/", "=/", "=|", ":|", ":-|", "]=", "=[", ":1",
	":P", ":-P", ":p", ":-p", ":O", ":-O", ":o", ":-o", ":0", ":-0", ":()", ">:o", ":*", ":-*", ":3", ":-3", "=3",
	":>", ":->", ":X", ":-X", ":x", ":-x", ":D", ":-D", ";D", ";-D", "=D", "xD", "XD", "xDD", "XDD", "8D", "8-D",
	"^_^", "^__^", "^___^", ">.<", ">.>", "<.<", "._.", ";_;", "-_-", "-__-", "v.v", "V.V", "v_v", "V_V", "o_o",
	"o_O", "O_o", "O_O", "0_o", "o_0", "0_0", "o.O", "O.o", "O.O", "o.o", "0.0", "o.0", "0.o", "@_@", "<3", "<33",
	"<333", "</3", "(^_^)", "(-_-)", "(._.)", "(>_<)", "(*_*)", "(¬_¬)", "ಠ_ಠ", "ಠ︵ಠ", "(ಠ_ಠ)", `¯\(ツ)/¯`,
	"(╯°□°）╯︵┻━┻", "><(((*>",
}

// Abbreviations keep their trailing period.
var Abbreviations = []string{
	"'d", "a.m.", "Adm.", "Bros.", "co.", "Co.", "Corp.", "D.C.", "Dr.",
	"e.g.", "E.g.", "E.G.", "etc.", "Gen.", "Gov.", "i.e.", "I.e.", "I.E.",
	"Inc.", "Jr.", "Ltd.", "Md.", "Messrs.", "Mo.", "Mont.", "Mr.", "Mrs.",
	"Ms.", "p.m.", "Ph.D.", "Prof.", "Rep.", "Rev.", "Sen.", "Sr.", "St.",
	"vs.", "v.s.", "viz.", "U.S.", "U.K.", "N.Y.", "L.A.",
	"Dec.", "approx.",
}

// Spec returns the English rule tables, uncompiled.
func Spec() rules.Spec {
	return rules.Spec{
		Prefixes:       PrefixPatterns(),
		Suffixes:       SuffixPatterns(),
		Infixes:        InfixPatterns(),
		LiteralInfixes: LiteralInfixes(),
		TokenMatch:     TokenMatchPattern(),
		URLMatch:       URLPattern(),
		Exceptions:     Exceptions(),
	}
}

// Rules compiles the English tables.
func Rules() (*rules.Set, error) {
	return rules.Compile(Spec())
}

// PrefixPatterns returns the prefix patterns in priority order.
func PrefixPatterns() []string {
	return []string{
		`§`, `%`, `=`, `—`, `–`, `\+(?![0-9])`,
		`\(`, `\[`, `\{`, `<`,
		`"`, `'`, "`", `“`, `‘`, `‚`, `„`, `«`, `»`,
		`「`, `」`, `『`, `』`, `（`, `〔`, `【`, `《`, `〈`, `⟦`,
		`\$`, `¢`, `£`, `€`, `¥`, `֏`, `؋`, `₡`, `₢`, `₣`, `₤`, `₥`, `₦`, `₧`,
		`₨`, `₩`, `₪`, `₫`, `₭`, `₮`, `₯`, `₰`, `₱`, `₲`, `₳`, `₴`, `₵`, `₸`,
		`₺`, `₼`, `₽`, `₾`, `₿`, `៛`, `₹`,
		`#`, `&`,
	}
}

// SuffixPatterns returns the suffix patterns in priority order.
func SuffixPatterns() []string {
	patterns := []string{emoticonAlternation()}
	patterns = append(patterns, ellipsisRegex...)
	patterns = append(patterns, escapeAll(ellipsisLiteral)...)
	patterns = append(patterns, escapeAll(Abbreviations)...)
	patterns = append(patterns,
		`:`, `;`, `!`, `\?`, `\.`, `,`,
		`\)`, `\]`, `\}`, `>`,
		`"`, `'`, "`", `”`, `’`, `‚`, `„`, `»`, `«`,
		`」`, `「`, `』`, `『`, `）`, `〕`, `】`, `》`, `〉`, `⟧`,
		`'s`, `'S`, `’s`, `’S`,
		`—`, `–`,
		`(?<=[0-9])\+`,
		`(?<=°[FfCcKk])\.`,
		fmt.Sprintf(`(?<=[0-9])(?:%s)`, currency),
		fmt.Sprintf(`(?<=[0-9])(?:%s)`, units),
		fmt.Sprintf(`(?<=[%s%%²\-+%s])\.`, alphanum, classEscape(concatQuotes)),
		`(?<=[A-Z][A-Z])\.`,
	)
	return patterns
}

// InfixPatterns returns the regex infix patterns.
func InfixPatterns() []string {
	patterns := append([]string(nil), ellipsisRegex...)
	patterns = append(patterns,
		fmt.Sprintf(`(?<=[%s])[+\-*^](?=[%s-])`, digits, digits),
		fmt.Sprintf(`(?<=[%s%s])\.(?=[%s%s])`, alphaLower, classEscape(concatQuotes), alphaUpper, classEscape(concatQuotes)),
		fmt.Sprintf(`(?<=[%s]),(?=[%s])`, alpha, alpha),
		multiHyphens,
		fmt.Sprintf(`(?<=[%s])[:<>=/](?=[%s])`, alphanum, alpha),
		fmt.Sprintf(`(?<=[%s])[:<>=/](?=[%s])`, alpha, alphanum),
	)
	return append(patterns, iconPatterns...)
}

// emoticonsExcludedFromInfix are emoticons that collide with ordinary text
// (decimals, times, ratios) when matched inside a chunk.
var emoticonsExcludedFromInfix = map[string]struct{}{
	"o.o": {}, "0.0": {}, "._.": {}, ":0": {}, ":1": {}, ":3": {},
}

// LiteralInfixes returns the fixed strings that split a chunk internally,
// longest first, without duplicates.
func LiteralInfixes() []string {
	var lits []string
	for _, e := range Emoticons {
		if _, skip := emoticonsExcludedFromInfix[e]; !skip {
			lits = append(lits, e)
		}
	}
	lits = append(lits, "(", ")", "[", "]", "{", "}", "<", ">")
	lits = append(lits, simpleHyphens...)
	lits = append(lits, ellipsisLiteral...)
	lits = append(lits, ":", "/", "=")

	sort.SliceStable(lits, func(i, j int) bool { return len(lits[i]) > len(lits[j]) })

	seen := make(map[string]struct{}, len(lits))
	out := lits[:0]
	for _, l := range lits {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}

// TokenMatchPattern returns the anchored alternation of forms that are
// always a single token: amounts, numbers, ellipses, symbols, HTML
// entities, abbreviations, emoticons and icons.
func TokenMatchPattern() string {
	alts := []string{
		fmt.Sprintf(`(?:%s)[0-9]{1,3}(?:,[0-9]{3})*(?:\.[0-9]{2})?`, currency),
		fmt.Sprintf(`(?:%s)[0-9]+(?:\.[0-9]{2})?`, currency),
		`[+-]?\d+\.\d{2}`,
		`[+-]?\d{1,3}(?:,\d{3})*(?:\.\d+)?`,
		`[+-]?\d+\.\d+`,
		`[+-]?\.\d+`,
		`[+-]?\d+`,
	}
	alts = append(alts, ellipsisRegex...)
	alts = append(alts, escapeAll(ellipsisLiteral)...)
	alts = append(alts,
		`[%]`,
		`[°ºª]`,
		`&(?:amp|lt|gt|quot|apos);`,
		`[®©™℠]`,
	)
	alts = append(alts, escapeAll(Abbreviations)...)
	alts = append(alts, emoticonAlternation())
	alts = append(alts, iconPatterns...)
	return fmt.Sprintf(`^(?:%s)$`, strings.Join(alts, "|"))
}

// URLPattern returns the whole-chunk URL matcher. Private and loopback
// IPv4 ranges are rejected.
func URLPattern() string {
	return strings.Join([]string{
		`^`,
		`(?:(?:[\w+\-.]{2,})://)?`,
		`(?:\S+(?::\S*)?@)?`,
		`(?:`,
		`(?!(?:10|127)(?:\.\d{1,3}){3})`,
		`(?!(?:169\.254|192\.168)(?:\.\d{1,3}){2})`,
		`(?!172\.(?:1[6-9]|2\d|3[0-1])(?:\.\d{1,3}){2})`,
		`(?:[1-9]\d?|1\d\d|2[01]\d|22[0-3])`,
		`(?:\.(?:1?\d{1,2}|2[0-4]\d|25[0-5])){2}`,
		`(?:\.(?:[1-9]\d?|1\d\d|2[0-4]\d|25[0-4]))`,
		`|`,
		`(?:`,
		`(?:`,
		`[A-Za-z0-9\u00a1-\uffff]`,
		`[A-Za-z0-9\u00a1-\uffff_-]{0,62}`,
		`)?`,
		`[A-Za-z0-9\u00a1-\uffff]\.`,
		`)+`,
		fmt.Sprintf(`(?:[%s]{2,63})`, alphaLower),
		`)`,
		`(?::\d{2,5})?`,
		`(?:[/?#]\S*)?`,
		`$`,
	}, "")
}

// emoticonAlternation matches any emoticon, longest first so that ":))"
// wins over ":)".
func emoticonAlternation() string {
	sorted := append([]string(nil), Emoticons...)
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })
	return "(?:" + strings.Join(escapeAll(sorted), "|") + ")"
}

func escapeAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = regexp2.Escape(s)
	}
	return out
}

// classEscape escapes characters that are special inside [...].
func classEscape(s string) string {
	return strings.NewReplacer(`[`, `\[`, `]`, `\]`, `-`, `\-`).Replace(s)
}
