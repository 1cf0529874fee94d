package core

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Channel identifies one of the three independent text watermark embedding
// mechanisms (spaces, punctuation, synonyms), or the combined mode that
// splits a payload across the first two.
type Channel string

const (
	ChannelSpaces      Channel = "spaces"
	ChannelPunctuation Channel = "punctuation"
	ChannelSynonyms    Channel = "synonyms"
	ChannelCombined    Channel = "combined"
)

// SpaceOptions configures the space channel's bit-1 substitution glyph.
type SpaceOptions struct {
	// UseZeroWidth selects the U+200B U+0020 pair instead of the default
	// U+00A0 (no-break space) for bit 1.
	UseZeroWidth bool
}

const (
	noBreakSpace   = ' '
	zeroWidthSpace = '​'
)

// embedSpaces walks r, consuming bits left-to-right at each ASCII 0x20
// candidate position. Bit 0 leaves the space unchanged; bit 1 substitutes
// U+00A0 (default) or the pair U+200B U+0020 (UseZeroWidth). Characters at
// non-candidate positions are never altered.
func embedSpaces(text string, bits []byte, opts SpaceOptions) (string, int, error) {
	runes := []rune(text)
	var out strings.Builder
	bitIdx := 0
	for _, r := range runes {
		if r == ' ' && bitIdx < len(bits) {
			if bits[bitIdx] == 0 {
				out.WriteRune(' ')
			} else if opts.UseZeroWidth {
				out.WriteRune(zeroWidthSpace)
				out.WriteRune(' ')
			} else {
				out.WriteRune(noBreakSpace)
			}
			bitIdx++
			continue
		}
		out.WriteRune(r)
	}
	if bitIdx < len(bits) {
		return "", bitIdx, ErrInsufficientCarrierCapacity
	}
	return out.String(), bitIdx, nil
}

// countSpaceCandidates reports how many ASCII 0x20 candidate positions text
// carries, used to validate capacity before embedding.
func countSpaceCandidates(text string) int {
	n := 0
	for _, r := range text {
		if r == ' ' {
			n++
		}
	}
	return n
}

// extractSpaces walks candidate positions left-to-right: a lone 0x20 emits
// bit 0, a U+00A0 emits bit 1, and a U+200B immediately preceding a 0x20
// emits bit 1 (consuming the following 0x20 as part of the same bit).
func extractSpaces(text string) []byte {
	runes := []rune(text)
	var bits []byte
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case ' ':
			bits = append(bits, 0)
		case noBreakSpace:
			bits = append(bits, 1)
		case zeroWidthSpace:
			if i+1 < len(runes) && runes[i+1] == ' ' {
				bits = append(bits, 1)
				i++
			}
		}
	}
	return bits
}

// punctuationPair is a fixed original/alternative glyph substitution.
type punctuationPair struct {
	original     string
	alternatives []string // parity-indexed for quote pairs; index 0 used otherwise
}

var punctuationPairs = []punctuationPair{
	{original: ".", alternatives: []string{"…"}},
	{original: "-", alternatives: []string{"–"}},
	{original: `"`, alternatives: []string{"“", "”"}}, // open/close picked by occurrence parity
	{original: "'", alternatives: []string{"‘", "’"}},
}

// embedPunctuation walks text rune-by-rune, substituting at each candidate
// punctuation position per bit value. Quote glyphs have distinct opening and
// closing alternatives; a per-quote-type occurrence counter picks
// alternatives[N%2] when the bit is 1, so the Nth straight quote in the text
// maps to an opening curly glyph when N is odd and a closing one when N is
// even, the way quotes alternate in ordinary prose.
func embedPunctuation(text string, bits []byte) (string, int, error) {
	var out strings.Builder
	bitIdx := 0
	parity := map[string]int{}
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		ch := string(runes[i])
		pair, _ := findPunctuationPair(ch)
		if pair == nil {
			out.WriteRune(runes[i])
			continue
		}
		n := parity[ch]
		parity[ch] = n + 1
		if bitIdx >= len(bits) {
			out.WriteRune(runes[i])
			continue
		}
		if bits[bitIdx] == 0 {
			out.WriteString(pair.original)
		} else {
			out.WriteString(pair.alternatives[n%len(pair.alternatives)])
		}
		bitIdx++
	}
	if bitIdx < len(bits) {
		return "", bitIdx, ErrInsufficientCarrierCapacity
	}
	return out.String(), bitIdx, nil
}

func findPunctuationPair(ch string) (*punctuationPair, int) {
	for i := range punctuationPairs {
		if punctuationPairs[i].original == ch {
			return &punctuationPairs[i], i
		}
	}
	return nil, -1
}

func countPunctuationCandidates(text string) int {
	n := 0
	for _, r := range text {
		if p, _ := findPunctuationPair(string(r)); p != nil {
			n++
		}
	}
	return n
}

// extractPunctuation walks candidate positions left-to-right: the
// "original" glyph decodes to 0, any of its alternatives decodes to 1.
func extractPunctuation(text string) []byte {
	var bits []byte
	for _, r := range text {
		ch := string(r)
		if p, _ := findPunctuationPair(ch); p != nil {
			bits = append(bits, 0)
			continue
		}
		if bit, ok := matchAlternative(ch); ok {
			bits = append(bits, bit)
		}
	}
	return bits
}

func matchAlternative(ch string) (byte, bool) {
	for _, p := range punctuationPairs {
		for _, alt := range p.alternatives {
			if alt == ch {
				return 1, true
			}
		}
	}
	return 0, false
}

// synonymPair is a fixed token-level substitution for the synonyms channel.
type synonymPair struct {
	original    string
	alternative string
}

var synonymPairs = []synonymPair{
	{"big", "large"},
	{"small", "little"},
	{"fast", "quick"},
	{"happy", "glad"},
	{"begin", "start"},
	{"end", "finish"},
	{"show", "display"},
	{"help", "assist"},
	{"use", "utilize"},
	{"buy", "purchase"},
}

// embedSynonyms walks text token-by-token, matching each word
// (case-insensitively, NFC-normalized) against the synonym table. At a
// matched token, bit 0 keeps the original, bit 1 swaps in the alternative,
// preserving the case of the first letter. Whitespace runs between tokens
// are carried through untouched so non-candidate characters never change.
func embedSynonyms(text string, bits []byte) (string, int, error) {
	var out strings.Builder
	bitIdx := 0
	for _, seg := range segmentWhitespace(text) {
		if seg.isSpace {
			out.WriteString(seg.text)
			continue
		}
		word, trail := splitTrailingPunct(seg.text)
		folded := strings.ToLower(norm.NFC.String(word))
		orig, alt, matched := matchSynonym(folded)
		if !matched || bitIdx >= len(bits) {
			out.WriteString(seg.text)
			continue
		}
		if bits[bitIdx] == 1 {
			out.WriteString(preserveCase(word, alt))
		} else {
			out.WriteString(preserveCase(word, orig))
		}
		out.WriteString(trail)
		bitIdx++
	}
	if bitIdx < len(bits) {
		return "", bitIdx, ErrInsufficientCarrierCapacity
	}
	return out.String(), bitIdx, nil
}

type textSegment struct {
	text    string
	isSpace bool
}

// segmentWhitespace splits text into alternating whitespace and
// non-whitespace runs whose concatenation reproduces the input exactly.
func segmentWhitespace(text string) []textSegment {
	var segs []textSegment
	var cur strings.Builder
	curSpace := false
	flush := func() {
		if cur.Len() > 0 {
			segs = append(segs, textSegment{cur.String(), curSpace})
			cur.Reset()
		}
	}
	for _, r := range text {
		isSpace := unicode.IsSpace(r)
		if cur.Len() > 0 && isSpace != curSpace {
			flush()
		}
		curSpace = isSpace
		cur.WriteRune(r)
	}
	flush()
	return segs
}

func countSynonymCandidates(text string) int {
	n := 0
	for _, tok := range strings.Fields(text) {
		word, _ := splitTrailingPunct(tok)
		folded := strings.ToLower(norm.NFC.String(word))
		if _, _, ok := matchSynonym(folded); ok {
			n++
		}
	}
	return n
}

// extractSynonyms walks tokens left-to-right, emitting bit 0 for an
// original-table token and bit 1 for an alternative-table token.
func extractSynonyms(text string) []byte {
	var bits []byte
	for _, tok := range strings.Fields(text) {
		word, _ := splitTrailingPunct(tok)
		lower := strings.ToLower(norm.NFC.String(word))
		for _, p := range synonymPairs {
			if lower == p.original {
				bits = append(bits, 0)
				break
			}
			if lower == p.alternative {
				bits = append(bits, 1)
				break
			}
		}
	}
	return bits
}

func matchSynonym(lower string) (orig, alt string, ok bool) {
	for _, p := range synonymPairs {
		if lower == p.original {
			return p.original, p.alternative, true
		}
		if lower == p.alternative {
			return p.original, p.alternative, true
		}
	}
	return "", "", false
}

func splitTrailingPunct(tok string) (word, trail string) {
	i := len(tok)
	for i > 0 {
		r := rune(tok[i-1])
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			break
		}
		i--
	}
	return tok[:i], tok[i:]
}

func preserveCase(reference, word string) string {
	if reference == "" || word == "" {
		return word
	}
	r := []rune(reference)
	w := []rune(word)
	if r[0] >= 'A' && r[0] <= 'Z' {
		w[0] = []rune(strings.ToUpper(string(w[0])))[0]
	}
	return string(w)
}
