package english

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/cognicore/ruletok/pkg/ruletok/rules"
)

// excluded are real words that the generators below would otherwise turn
// into contractions ("ill" -> "i" + "ll").
var excluded = []string{
	"Ill", "ill", "Its", "its", "Hell", "hell", "Shell", "shell",
	"Shed", "shed", "were", "Were", "Well", "well", "Whore", "whore",
}

type lexicon map[string][]rules.SubToken

func (l lexicon) add(key string, subs ...rules.SubToken) {
	l[key] = subs
}

func sub(orth, norm string) rules.SubToken {
	return rules.SubToken{Orth: orth, Norm: norm}
}

func orth(o string) rules.SubToken {
	return rules.SubToken{Orth: o}
}

// bothCases yields s and its capitalized form.
func bothCases(s string) []string {
	return []string{s, capitalize(s)}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Exceptions returns the English exception lexicon: contractions with their
// normalized forms, colloquial spellings, times, abbreviations and emoticons.
func Exceptions() map[string][]rules.SubToken {
	exc := make(lexicon)

	for _, o := range bothCases("i") {
		exc.add(o+"'m", sub(o, "i"), sub("'m", "am"))
		exc.add(o+"m", sub(o, "i"), orth("m"))
		exc.add(o+"'ma", sub(o, "i"), sub("'m", "am"), sub("a", "gonna"))
		exc.add(o+"ma", sub(o, "i"), sub("m", "am"), sub("a", "gonna"))
	}

	for _, pron := range []string{"i", "you", "he", "she", "it", "we", "they"} {
		for _, o := range bothCases(pron) {
			addModals(exc, o, pron)
		}
	}

	for _, pron := range []string{"i", "you", "we", "they"} {
		for _, o := range bothCases(pron) {
			exc.add(o+"'ve", sub(o, pron), sub("'ve", "have"))
			exc.add(o+"ve", sub(o, pron), sub("ve", "have"))
		}
	}

	for _, pron := range []string{"you", "we", "they"} {
		for _, o := range bothCases(pron) {
			exc.add(o+"'re", sub(o, pron), sub("'re", "are"))
			exc.add(o+"re", sub(o, pron), sub("re", "are"))
		}
	}

	for _, pron := range []string{"he", "she", "it"} {
		for _, o := range bothCases(pron) {
			exc.add(o+"'s", sub(o, pron), sub("'s", "'s"))
			exc.add(o+"s", sub(o, pron), orth("s"))
		}
	}

	addWhWords(exc)
	addVerbs(exc)

	for _, p := range [][2]string{
		{"doin", "doing"}, {"goin", "going"}, {"nothin", "nothing"},
		{"nuthin", "nothing"}, {"ol", "old"}, {"somethin", "something"},
	} {
		for _, o := range bothCases(p[0]) {
			exc.add(o, sub(o, p[1]))
			exc.add(o+"'", sub(o+"'", p[1]))
		}
	}

	for _, p := range [][2]string{{"em", "them"}, {"ll", "will"}, {"nuff", "enough"}} {
		exc.add(p[0], sub(p[0], p[1]))
		exc.add("'"+p[0], sub("'"+p[0], p[1]))
	}

	for h := 1; h <= 12; h++ {
		hour := strconv.Itoa(h)
		for _, v := range []string{"a.m.", "am"} {
			exc.add(hour+v, orth(hour), sub(v, "a.m."))
		}
		for _, v := range []string{"p.m.", "pm"} {
			exc.add(hour+v, orth(hour), sub(v, "p.m."))
		}
	}

	addMisc(exc)

	for _, a := range []string{
		"'d", "a.m.", "Adm.", "Bros.", "co.", "Co.", "Corp.", "D.C.", "Dr.",
		"e.g.", "E.g.", "E.G.", "Gen.", "Gov.", "i.e.", "I.e.", "I.E.", "Inc.", "Jr.",
		"Ltd.", "Md.", "Messrs.", "Mo.", "Mont.", "Mr.", "Mrs.", "Ms.", "p.m.",
		"Ph.D.", "Prof.", "Rep.", "Rev.", "Sen.", "St.", "vs.", "v.s.",
	} {
		exc.add(a, orth(a))
	}
	for _, a := range Abbreviations {
		if _, ok := exc[a]; !ok {
			exc.add(a, orth(a))
		}
	}

	for _, e := range Emoticons {
		exc.add(e, orth(e))
	}

	for _, w := range excluded {
		delete(exc, w)
	}
	return exc
}

// addModals registers 'll, 'd and their stacked 've forms for one base word.
func addModals(exc lexicon, o, norm string) {
	exc.add(o+"'ll", sub(o, norm), sub("'ll", "will"))
	exc.add(o+"ll", sub(o, norm), sub("ll", "will"))
	exc.add(o+"'ll've", sub(o, norm), sub("'ll", "will"), sub("'ve", "have"))
	exc.add(o+"llve", sub(o, norm), sub("ll", "will"), sub("ve", "have"))
	exc.add(o+"'d", sub(o, norm), sub("'d", "'d"))
	exc.add(o+"d", sub(o, norm), sub("d", "'d"))
	exc.add(o+"'d've", sub(o, norm), sub("'d", "would"), sub("'ve", "have"))
	exc.add(o+"dve", sub(o, norm), sub("d", "would"), sub("ve", "have"))
}

func addWhWords(exc lexicon) {
	const (
		singular = "Number=Sing|Person=3"
		plural   = "Number=Plur|Person=3"
	)
	words := []struct{ word, morph string }{
		{"who", ""}, {"what", ""}, {"when", ""}, {"where", ""}, {"why", ""},
		{"how", ""}, {"there", ""}, {"that", singular},
		{"this", singular}, {"these", plural}, {"those", plural},
	}
	for _, w := range words {
		for _, o := range bothCases(w.word) {
			if w.morph != plural {
				exc.add(o+"'s", sub(o, w.word), sub("'s", "'s"))
				exc.add(o+"s", sub(o, w.word), orth("s"))
			}
			exc.add(o+"'ll", sub(o, w.word), sub("'ll", "will"))
			exc.add(o+"ll", sub(o, w.word), sub("ll", "will"))
			exc.add(o+"'ll've", sub(o, w.word), sub("'ll", "will"), sub("'ve", "have"))
			exc.add(o+"llve", sub(o, w.word), sub("ll", "will"), sub("ve", "have"))
			if w.morph != singular {
				exc.add(o+"'re", sub(o, w.word), sub("'re", "are"))
				exc.add(o+"re", sub(o, w.word), sub("re", "are"))
				exc.add(o+"'ve", sub(o, w.word), sub("'ve", "have"))
				exc.add(o+"ve", sub(o, w.word), sub("ve", "have"))
			}
			exc.add(o+"'d", sub(o, w.word), sub("'d", "'d"))
			exc.add(o+"d", sub(o, w.word), sub("d", "'d"))
			exc.add(o+"'d've", sub(o, w.word), sub("'d", "would"), sub("'ve", "have"))
			exc.add(o+"dve", sub(o, w.word), sub("d", "would"), sub("ve", "have"))
		}
	}
}

func addVerbs(exc lexicon) {
	negatedWithHave := [][2]string{
		{"ca", "can"}, {"could", "could"}, {"do", "do"},
		{"does", "does"}, {"did", "do"}, {"had", "have"},
		{"may", "may"}, {"might", "might"}, {"must", "must"},
		{"need", "need"}, {"ought", "ought"}, {"sha", "shall"},
		{"should", "should"}, {"wo", "will"}, {"would", "would"},
	}
	for _, v := range negatedWithHave {
		for _, o := range bothCases(v[0]) {
			exc.add(o+"n't", sub(o, v[1]), sub("n't", "not"))
			exc.add(o+"nt", sub(o, v[1]), sub("nt", "not"))
			exc.add(o+"n't've", sub(o, v[1]), sub("n't", "not"), sub("'ve", "have"))
			exc.add(o+"ntve", sub(o, v[1]), sub("nt", "not"), sub("ve", "have"))
		}
	}

	for _, v := range []string{"could", "might", "must", "should", "would"} {
		for _, o := range bothCases(v) {
			exc.add(o+"'ve", sub(o, v), sub("'ve", "have"))
			exc.add(o+"ve", sub(o, v), sub("ve", "have"))
		}
	}

	for _, v := range []string{"ai", "are", "is", "was", "were", "have", "has", "dare"} {
		for _, o := range bothCases(v) {
			exc.add(o+"n't", sub(o, v), sub("n't", "not"))
			exc.add(o+"nt", sub(o, v), sub("nt", "not"))
		}
	}
}

func addMisc(exc lexicon) {
	exc.add("y'all", sub("y'", "you"), orth("all"))
	exc.add("yall", sub("y", "you"), orth("all"))
	exc.add("how'd'y", orth("how"), orth("'d"), sub("'y", "you"))
	exc.add("How'd'y", sub("How", "how"), orth("'d"), sub("'y", "you"))
	exc.add("not've", orth("not"), sub("'ve", "have"))
	exc.add("notve", orth("not"), sub("ve", "have"))
	exc.add("Not've", sub("Not", "not"), sub("'ve", "have"))
	exc.add("Notve", sub("Not", "not"), sub("ve", "have"))
	exc.add("cannot", orth("can"), orth("not"))
	exc.add("Cannot", sub("Can", "can"), orth("not"))
	exc.add("gonna", sub("gon", "going"), sub("na", "to"))
	exc.add("Gonna", sub("Gon", "going"), sub("na", "to"))
	exc.add("gotta", orth("got"), sub("ta", "to"))
	exc.add("Gotta", sub("Got", "got"), sub("ta", "to"))
	exc.add("let's", orth("let"), sub("'s", "us"))
	exc.add("Let's", sub("Let", "let"), sub("'s", "us"))
	exc.add("c'mon", sub("c'm", "come"), orth("on"))
	exc.add("C'mon", sub("C'm", "come"), orth("on"))

	single := [][2]string{
		{"'S", "'s"}, {"'s", "'s"}, {"‘S", "'s"}, {"‘s", "'s"},
		{"and/or", ""}, {"w/o", "without"}, {"'re", "are"},
		{"'Cause", "because"}, {"'cause", "because"}, {"'cos", "because"},
		{"'Cos", "because"}, {"'coz", "because"}, {"'Coz", "because"},
		{"'cuz", "because"}, {"'Cuz", "because"}, {"'bout", "about"},
		{"ma'am", "madam"}, {"Ma'am", "madam"},
		{"o'clock", ""}, {"O'clock", ""},
		{"lovin'", "loving"}, {"Lovin'", "loving"}, {"lovin", "loving"}, {"Lovin", "loving"},
		{"havin'", "having"}, {"Havin'", "having"}, {"havin", "having"}, {"Havin", "having"},
		{"doin'", "doing"}, {"Doin'", "doing"}, {"doin", "doing"}, {"Doin", "doing"},
		{"goin'", "going"}, {"Goin'", "going"}, {"goin", "going"}, {"Goin", "going"},
		{"Mt.", "Mount"}, {"Ak.", "Alaska"}, {"Ala.", "Alabama"}, {"Apr.", "April"},
		{"Ariz.", "Arizona"}, {"Ark.", "Arkansas"}, {"Aug.", "August"},
		{"Calif.", "California"}, {"Colo.", "Colorado"}, {"Conn.", "Connecticut"},
		{"Dec.", "December"}, {"Del.", "Delaware"}, {"Feb.", "February"},
		{"Fla.", "Florida"}, {"Ga.", "Georgia"}, {"Ia.", "Iowa"},
		{"Id.", "Idaho"}, {"Ill.", "Illinois"}, {"Ind.", "Indiana"},
		{"Jan.", "January"}, {"Jul.", "July"}, {"Jun.", "June"},
		{"Kan.", "Kansas"}, {"Kans.", "Kansas"}, {"Ky.", "Kentucky"},
		{"La.", "Louisiana"}, {"Mar.", "March"}, {"Mass.", "Massachusetts"},
		{"Mich.", "Michigan"}, {"Minn.", "Minnesota"}, {"Miss.", "Mississippi"},
		{"N.C.", "North Carolina"}, {"N.D.", "North Dakota"}, {"N.H.", "New Hampshire"},
		{"N.J.", "New Jersey"}, {"N.M.", "New Mexico"}, {"N.Y.", "New York"},
		{"Neb.", "Nebraska"}, {"Nebr.", "Nebraska"}, {"Nev.", "Nevada"},
		{"Nov.", "November"}, {"Oct.", "October"}, {"Okla.", "Oklahoma"},
		{"Ore.", "Oregon"}, {"Pa.", "Pennsylvania"}, {"S.C.", "South Carolina"},
		{"Sep.", "September"}, {"Sept.", "September"}, {"Tenn.", "Tennessee"},
		{"Va.", "Virginia"}, {"Wash.", "Washington"}, {"Wis.", "Wisconsin"},
	}
	for _, s := range single {
		exc.add(s[0], sub(s[0], s[1]))
	}
}
