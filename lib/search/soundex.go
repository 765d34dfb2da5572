package search

import "strings"

// soundexTable maps 'a'..'z' to their Soundex digit ('0' marks letters that
// never contribute a digit).
const soundexTable = "01230120022455012623010202"

// Soundex reduces a word to its 4-character phonetic code: the upper-cased
// first letter followed by up to three digits. A digit is appended only if it
// is non-zero and differs from the previously appended digit; the code is
// right-padded with '0'. The empty string encodes to the empty string.
func Soundex(word string) string {
	word = strings.ToLower(word)
	if word == "" {
		return ""
	}

	var code strings.Builder
	code.WriteString(strings.ToUpper(word[:1]))

	prev := byte('0')
	if word[0] >= 'a' && word[0] <= 'z' {
		prev = soundexTable[word[0]-'a']
	}

	for i := 1; i < len(word) && code.Len() < 4; i++ {
		c := word[i]
		if c < 'a' || c > 'z' {
			continue
		}
		digit := soundexTable[c-'a']
		if digit != '0' && digit != prev {
			code.WriteByte(digit)
			prev = digit
		}
	}

	result := code.String()
	for len(result) < 4 {
		result += "0"
	}
	return result
}
