package tts

import (
	"strings"
	"unicode/utf8"
)

const sentenceEnders = ".!?;:。！？"

// SplitText breaks text into chunks of at most maxLen runes. It prefers to cut
// after sentence punctuation or line breaks, then between words, and only
// splits a word when the word alone exceeds maxLen. Adjacent pieces are packed
// back together while they fit.
func SplitText(text string, maxLen int) []string {
	if maxLen <= 0 {
		maxLen = 100
	}

	var units []string
	for _, sentence := range splitSentences(text) {
		if utf8.RuneCountInString(sentence) <= maxLen {
			units = append(units, sentence)
			continue
		}
		for _, word := range strings.Fields(sentence) {
			units = append(units, hardSplit(word, maxLen)...)
		}
	}
	return pack(units, maxLen)
}

func splitSentences(text string) []string {
	var (
		out []string
		cur strings.Builder
	)
	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			out = append(out, s)
		}
		cur.Reset()
	}

	for _, r := range text {
		if r == '\n' || r == '\r' {
			flush()
			continue
		}
		cur.WriteRune(r)
		if strings.ContainsRune(sentenceEnders, r) {
			flush()
		}
	}
	flush()
	return out
}

func hardSplit(word string, maxLen int) []string {
	runes := []rune(word)
	if len(runes) <= maxLen {
		return []string{word}
	}
	var out []string
	for len(runes) > maxLen {
		out = append(out, string(runes[:maxLen]))
		runes = runes[maxLen:]
	}
	if len(runes) > 0 {
		out = append(out, string(runes))
	}
	return out
}

func pack(units []string, maxLen int) []string {
	var (
		chunks []string
		cur    strings.Builder
		curLen int
	)
	for _, u := range units {
		n := utf8.RuneCountInString(u)
		if curLen > 0 && curLen+1+n > maxLen {
			chunks = append(chunks, cur.String())
			cur.Reset()
			curLen = 0
		}
		if curLen > 0 {
			cur.WriteByte(' ')
			curLen++
		}
		cur.WriteString(u)
		curLen += n
	}
	if curLen > 0 {
		chunks = append(chunks, cur.String())
	}
	return chunks
}
