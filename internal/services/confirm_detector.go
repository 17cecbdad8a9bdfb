package services

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/minhngoc/ringside/internal/convstore"
	"github.com/minhngoc/ringside/internal/models"
)

// The confirmation detector is fully deterministic: it runs before any model
// round-trip, so a confirmation can never be misrouted by a probabilistic
// classifier. Two forms are recognized:
//
//  1. a short phrase of confirmation keywords, optionally echoing the token
//     issued with the preview ("yes", "confirm 3f9a12bc");
//  2. a multi-line message where each line names an operation keyword plus a
//     record id ("archive 101\nsettle 102"); each line must resolve to
//     exactly one pending item, ambiguous lines are rejected, never guessed.

var confirmKeywords = map[string]bool{
	"confirm":   true,
	"confirmo":  true,
	"confirmar": true,
	"confirmed": true,
	"yes":       true,
	"y":         true,
	"si":        true,
	"ok":        true,
	"okay":      true,
	"dale":      true,
	"apply":     true,
	"aplicar":   true,
	"go":        true,
	"sure":      true,
	"yep":       true,
}

var cancelKeywords = map[string]bool{
	"cancel":    true,
	"cancelar":  true,
	"cancela":   true,
	"no":        true,
	"abort":     true,
	"discard":   true,
	"forget":    true,
	"olvidalo":  true,
	"nevermind": true,
}

// lineOpKeywords maps per-line action keywords onto mutation operations.
// Result words count as settle keywords since a settle line names its result.
var lineOpKeywords = map[string]string{
	"settle":   models.OpSettle,
	"settled":  models.OpSettle,
	"liquidar": models.OpSettle,
	"win":      models.OpSettle,
	"won":      models.OpSettle,
	"w":        models.OpSettle,
	"gano":     models.OpSettle,
	"loss":     models.OpSettle,
	"lost":     models.OpSettle,
	"l":        models.OpSettle,
	"perdio":   models.OpSettle,
	"push":     models.OpSettle,
	"draw":     models.OpSettle,
	"empate":   models.OpSettle,

	"archive":  models.OpArchive,
	"archived": models.OpArchive,
	"archivar": models.OpArchive,
	"archiva":  models.OpArchive,
	"hide":     models.OpArchive,
	"ocultar":  models.OpArchive,

	"pending":   models.OpSetPending,
	"pendiente": models.OpSetPending,
	"reopen":    models.OpSetPending,
	"reabrir":   models.OpSetPending,
	"unsettle":  models.OpSetPending,
}

var wordPattern = regexp.MustCompile(`[a-z0-9]+`)

// tokenize folds the text and splits it into lowercase alphanumeric words.
func tokenize(s string) []string {
	return wordPattern.FindAllString(models.Fold(s), -1)
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// isCancellation reports whether the message is an explicit cancel: every
// word is a cancel keyword.
func isCancellation(text string) bool {
	words := tokenize(text)
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		if !cancelKeywords[w] {
			return false
		}
	}
	return true
}

// detectConfirmation resolves text against the pending queue and returns the
// indexes of the confirmed items in queue order. ok is false when the message
// is not a confirmation at all.
func detectConfirmation(text string, queue []convstore.PendingMutation) ([]int, bool) {
	lines := nonEmptyLines(text)
	if len(lines) == 0 {
		return nil, false
	}
	if len(lines) == 1 {
		if idxs, ok := matchPhrase(lines[0], queue); ok {
			return idxs, true
		}
	}
	return matchLines(lines, queue)
}

// matchPhrase handles form (1): confirmation keywords optionally combined
// with one issued token. A keyword-only phrase confirms the whole queue; a
// phrase carrying a token confirms only that item.
func matchPhrase(line string, queue []convstore.PendingMutation) ([]int, bool) {
	words := tokenize(line)
	if len(words) == 0 {
		return nil, false
	}

	confirmSeen := false
	tokenIdx := -1
	for _, w := range words {
		if confirmKeywords[w] {
			confirmSeen = true
			continue
		}
		idx := findByToken(w, queue)
		if idx >= 0 && (tokenIdx == -1 || tokenIdx == idx) {
			tokenIdx = idx
			continue
		}
		// Any other word makes this something else than a bare confirmation.
		return nil, false
	}

	if tokenIdx >= 0 {
		return []int{tokenIdx}, true
	}
	if confirmSeen {
		all := make([]int, len(queue))
		for i := range queue {
			all[i] = i
		}
		return all, true
	}
	return nil, false
}

// matchLines handles form (2). A line is recognized when it carries an
// operation keyword and a record id; it resolves when exactly one pending
// item has that operation and contains the id in its candidate set.
func matchLines(lines []string, queue []convstore.PendingMutation) ([]int, bool) {
	seen := make(map[int]bool)
	var matched []int

	for _, line := range lines {
		op, id, ok := parseActionLine(line)
		if !ok {
			continue
		}
		idx := -1
		ambiguous := false
		for i, item := range queue {
			if item.Request.Operation != op || !containsID(item.CandidateIDs, id) {
				continue
			}
			if idx >= 0 {
				ambiguous = true
				break
			}
			idx = i
		}
		if ambiguous || idx < 0 {
			continue
		}
		if !seen[idx] {
			seen[idx] = true
			matched = append(matched, idx)
		}
	}

	if len(matched) == 0 {
		return nil, false
	}
	// Apply in the order items were queued, not the order lines arrived.
	for i := 1; i < len(matched); i++ {
		for j := i; j > 0 && matched[j] < matched[j-1]; j-- {
			matched[j], matched[j-1] = matched[j-1], matched[j]
		}
	}
	return matched, true
}

func parseActionLine(line string) (op string, id int64, ok bool) {
	for _, w := range tokenize(line) {
		if op == "" {
			if o, known := lineOpKeywords[w]; known {
				op = o
				continue
			}
		}
		if id == 0 {
			if n, err := strconv.ParseInt(w, 10, 64); err == nil && n > 0 {
				id = n
			}
		}
	}
	return op, id, op != "" && id != 0
}

func findByToken(word string, queue []convstore.PendingMutation) int {
	for i, item := range queue {
		if word == models.Fold(item.Token) {
			return i
		}
	}
	return -1
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
