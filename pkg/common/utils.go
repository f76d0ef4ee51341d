package common

import (
	"strings"
	"unicode"
)

func Min(l, r int) int {
	if l < r {
		return l
	}
	return r
}

func Max(l, r int) int {
	if l > r {
		return l
	}
	return r
}

func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// PieceLetter returns the FEN letter of a piece: uppercase for white.
func PieceLetter(piece int, white bool) byte {
	if piece == Empty {
		return ' '
	}
	var ch = promotionLetters[piece-Pawn]
	if white {
		ch = byte(unicode.ToUpper(rune(ch)))
	}
	return ch
}

func swapCase(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsUpper(r) {
			return unicode.ToLower(r)
		}
		return unicode.ToUpper(r)
	}, s)
}
