package models

import "strings"

// Result states for a wager. The set is closed; anything arriving from the
// outside goes through NormalizeResult before it is stored or compared.
const (
	ResultPending = "pending"
	ResultWin     = "win"
	ResultLoss    = "loss"
	ResultPush    = "push"
)

// resultAliases maps folded free-text results onto the closed result set.
// Users type results in English and Spanish, in any casing, with or without
// accents ("LOST", "gano", "empate").
var resultAliases = map[string]string{
	"win":     ResultWin,
	"w":       ResultWin,
	"won":     ResultWin,
	"winner":  ResultWin,
	"gano":    ResultWin,
	"gane":    ResultWin,
	"ganada":  ResultWin,
	"ganado":  ResultWin,
	"acierto": ResultWin,
	"green":   ResultWin,

	"loss":    ResultLoss,
	"l":       ResultLoss,
	"lost":    ResultLoss,
	"lose":    ResultLoss,
	"loser":   ResultLoss,
	"perdio":  ResultLoss,
	"perdi":   ResultLoss,
	"perdida": ResultLoss,
	"perdido": ResultLoss,
	"fallo":   ResultLoss,
	"red":     ResultLoss,

	"push":   ResultPush,
	"empate": ResultPush,
	"draw":   ResultPush,
	"tie":    ResultPush,
	"void":   ResultPush,

	"pending":   ResultPending,
	"open":      ResultPending,
	"abierta":   ResultPending,
	"abierto":   ResultPending,
	"pendiente": ResultPending,
}

// NormalizeResult maps free text onto {pending, win, loss, push}.
// Unrecognized or empty input falls back to pending.
func NormalizeResult(raw string) string {
	if r, ok := resultAliases[Fold(raw)]; ok {
		return r
	}
	return ResultPending
}

// IsSettledResult reports whether r is a terminal result.
func IsSettledResult(r string) bool {
	return r == ResultWin || r == ResultLoss || r == ResultPush
}

// Fold lowercases s, strips common Latin accents and trims surrounding
// whitespace, so that matching is case- and accent-insensitive. It is the
// single folding rule shared by result normalization and substring filters.
func Fold(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Map(foldRune, s)
}

func foldRune(r rune) rune {
	switch r {
	case 'á', 'à', 'â', 'ä', 'ã', 'å':
		return 'a'
	case 'é', 'è', 'ê', 'ë':
		return 'e'
	case 'í', 'ì', 'î', 'ï':
		return 'i'
	case 'ó', 'ò', 'ô', 'ö', 'õ':
		return 'o'
	case 'ú', 'ù', 'û', 'ü':
		return 'u'
	case 'ñ':
		return 'n'
	case 'ç':
		return 'c'
	}
	return r
}

// FoldContains reports whether haystack contains needle after folding both.
// An empty needle matches everything.
func FoldContains(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(Fold(haystack), Fold(needle))
}
