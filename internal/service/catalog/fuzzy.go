package catalog

import (
	"slices"
	"unicode"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

/*
 * Normalization follows github.com/lithammer/fuzzysearch/fuzzy,
 * which keeps its transformers private.
 */

var (
	normalizeTransformer transform.Transformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	transformer                                = transform.Chain(normalizeTransformer, unicodeFoldTransformer{})
)

type nameRank struct {
	name string
	rank int
}

func rankCmp(nr1, nr2 nameRank) int {
	if nr1.rank != nr2.rank {
		return nr1.rank - nr2.rank
	}
	if nr1.name < nr2.name {
		return -1
	}
	if nr1.name > nr2.name {
		return 1
	}
	return 0
}

// closest returns up to n names nearest to target
// by Levenshtein distance of normalized strings.
// Names farther than half of their length are skipped.
func closest(names []string, target string, n int) []string {
	t := stringTransform(target)

	ranked := make([]nameRank, 0, len(names))
	for _, name := range names {
		s := stringTransform(name)
		rank := fuzzy.LevenshteinDistance(s, t)
		if rank > max(utf8.RuneCountInString(s), utf8.RuneCountInString(t))/2 {
			continue
		}
		ranked = append(ranked, nameRank{name: name, rank: rank})
	}

	slices.SortFunc(ranked, rankCmp)

	out := make([]string, 0, min(n, len(ranked)))
	for _, nr := range ranked[:min(n, len(ranked))] {
		out = append(out, nr.name)
	}

	return out
}

func stringTransform(s string) (transformed string) {
	var err error
	transformed, _, err = transform.String(transformer, s)
	if err != nil {
		transformed = s
	}

	return
}

type unicodeFoldTransformer struct{ transform.NopResetter }

func (unicodeFoldTransformer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for _, r := range string(src) {
		size := utf8.RuneLen(r)
		if r == utf8.RuneError {
			// invalid byte is replaced
			size = 1
		}
		r = unicode.ToLower(r)
		if utf8.RuneLen(r) > len(dst[nDst:]) {
			err = transform.ErrShortDst
			break
		}
		nDst += utf8.EncodeRune(dst[nDst:], r)
		nSrc += size
	}
	return nDst, nSrc, err
}
