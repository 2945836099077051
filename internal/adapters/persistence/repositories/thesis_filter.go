package repositories

import (
	"strings"

	"bu-ethesis/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// clauseKind enumerates the filter clauses a thesis search can compose
type clauseKind int

const (
	clauseText clauseKind = iota + 1
	clauseYear
)

// likeEscape is the LIKE escape character. '!' behaves the same on SQLite,
// MySQL and PostgreSQL, unlike backslash.
const likeEscape = "!"

var likeEscaper = strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")

// ThesisFilter holds the optional search criteria. Zero value matches everything.
type ThesisFilter struct {
	Text string
	Year *int
}

type filterClause struct {
	kind clauseKind
	sql  string
	args []interface{}
}

// clauses returns the filter as bound SQL fragments, ANDed by apply
func (f ThesisFilter) clauses() []filterClause {
	var out []filterClause

	if text := strings.TrimSpace(f.Text); text != "" {
		// search_text is folded on write with the same function, see models.Thesis.SearchKey
		like := "%" + likeEscaper.Replace(models.FoldSearch(text)) + "%"
		out = append(out, filterClause{
			kind: clauseText,
			sql:  "search_text LIKE ? ESCAPE '" + likeEscape + "'",
			args: []interface{}{like},
		})
	}

	if f.Year != nil {
		out = append(out, filterClause{
			kind: clauseYear,
			sql:  "year = ?",
			args: []interface{}{*f.Year},
		})
	}

	return out
}

func (f ThesisFilter) apply(q *gorm.DB) *gorm.DB {
	for _, c := range f.clauses() {
		q = q.Where(c.sql, c.args...)
	}
	return q
}
