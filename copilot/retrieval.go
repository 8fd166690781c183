package copilot

import (
	"regexp"
	"sort"
	"strings"

	"retailbrain/models"
)

const (
	minTokenLength = 3
	verbatimBonus  = 5
)

var tokenPattern = regexp.MustCompile(`[a-z0-9_]+`)

// Tokenize lowercases the query and returns its distinct word tokens longer
// than two characters, in first-seen order.
func Tokenize(query string) []string {
	seen := make(map[string]bool)
	var tokens []string
	for _, tok := range tokenPattern.FindAllString(strings.ToLower(query), -1) {
		if len(tok) < minTokenLength || seen[tok] {
			continue
		}
		seen[tok] = true
		tokens = append(tokens, tok)
	}
	return tokens
}

// RowText is the lowercase "column value" rendering of a row that queries are
// matched against.
func RowText(row models.Row) string {
	parts := make([]string, len(row.Columns))
	for i, name := range row.Columns {
		parts[i] = name + " " + row.Get(name).Text()
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// ScoreRow counts token occurrences in the row text and adds a bonus when the
// whole query appears verbatim. Without tokens the score is 0.
func ScoreRow(row models.Row, tokens []string, queryText string) int {
	if len(tokens) == 0 {
		return 0
	}
	text := RowText(row)
	score := 0
	for _, tok := range tokens {
		score += strings.Count(text, tok)
	}
	if queryText != "" && strings.Contains(text, queryText) {
		score += verbatimBonus
	}
	return score
}

// Score returns the rows with a positive score, highest first; equal scores
// keep dataset order.
func Score(rows []models.Row, query string) []models.ScoredRow {
	tokens := Tokenize(query)
	queryText := strings.ToLower(strings.TrimSpace(query))

	var scored []models.ScoredRow
	for i, row := range rows {
		if s := ScoreRow(row, tokens, queryText); s > 0 {
			scored = append(scored, models.ScoredRow{Index: i, Row: row, Score: s})
		}
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	return scored
}

// Retrieve selects min(n, len(rows)) rows: the best scoring rows first, then
// rows at evenly spaced positions across the dataset. No row is returned twice.
func Retrieve(rows []models.Row, query string, n int) []models.Row {
	if len(rows) == 0 || n <= 0 {
		return []models.Row{}
	}

	scored := Score(rows, query)
	if len(scored) > n {
		scored = scored[:n]
	}
	selected := make([]int, 0, n)
	taken := make(map[int]bool, n)
	for _, s := range scored {
		selected = append(selected, s.Index)
		taken[s.Index] = true
	}

	if len(selected) < n {
		for _, idx := range evenlySpacedIndices(len(rows), n-len(selected)) {
			if len(selected) >= n {
				break
			}
			if !taken[idx] {
				selected = append(selected, idx)
				taken[idx] = true
			}
		}
	}
	// Spaced indices can collide with scored rows; top up in dataset order.
	for idx := 0; idx < len(rows) && len(selected) < n; idx++ {
		if !taken[idx] {
			selected = append(selected, idx)
			taken[idx] = true
		}
	}

	out := make([]models.Row, len(selected))
	for i, idx := range selected {
		out[i] = rows[idx]
	}
	return out
}

func evenlySpacedIndices(total, count int) []int {
	if total == 0 || count <= 0 {
		return nil
	}
	if count >= total {
		out := make([]int, total)
		for i := range out {
			out[i] = i
		}
		return out
	}
	step := float64(total) / float64(count)
	out := make([]int, count)
	for i := range out {
		idx := int(float64(i) * step)
		if idx > total-1 {
			idx = total - 1
		}
		out[i] = idx
	}
	return out
}
