// Package naming encodes and parses the item names used for LegiScan
// artifacts: dataset lists, per-state datasets, and per-bill text files.
//
// Every family is a Grammar: a pattern that recognizes a name and the
// generator that builds it, kept side by side so one is the inverse of the
// other. Search functions report "no match" with a false second result;
// an unrecognized name is never an error.
package naming

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Extensions of stored bill text.
const (
	ExtJSON = "json"
	ExtPDF  = "pdf"
	ExtHTML = "html"
)

// DateLayout is the date format embedded in dataset list names.
const DateLayout = "2006-01-02"

// Prefixes used to list each family.
const (
	DatasetListPrefix = "DatasetList-"
	datasetInfix      = "-Dataset-"
)

// Bill text keys longer than these get a shorter year suffix or none.
const (
	fullYearMaxKey  = 19
	shortYearMaxKey = 21
)

// Grammar describes one naming family.
type Grammar struct {
	Name    string
	Pattern *regexp.Regexp
}

// Match returns the submatches of name, or nil when name is not in the family.
func (g Grammar) Match(name string) []string {
	return g.Pattern.FindStringSubmatch(name)
}

var (
	// DatasetListGrammar matches DatasetList-YYYY-MM-DD.json.
	DatasetListGrammar = Grammar{
		Name:    "DatasetList",
		Pattern: regexp.MustCompile(`^DatasetList-(\d{4}-\d{2}-\d{2})\.json$`),
	}
	// DatasetGrammar matches SS-Dataset-NNNN.json.
	DatasetGrammar = Grammar{
		Name:    "Dataset",
		Pattern: regexp.MustCompile(`^([A-Z]{2})-Dataset-(\d{4})\.json$`),
	}
	// BillTextGrammar matches SS-BILL-SESSION[-YYYY|-YY].ext for json, pdf and html.
	BillTextGrammar = Grammar{
		Name:    "BillText",
		Pattern: regexp.MustCompile(`^([A-Z]{2})-([A-Z0-9]+)-([0-9]+)(?:-Y([0-9]{4}|[0-9]{2}))?\.(json|pdf|html)$`),
	}

	billNumberPattern = regexp.MustCompile(`^([A-Z]*)([0-9]*)`)
)

// --- DatasetList-YYYY-MM-DD.json ---

// DatasetListMatch holds the fields parsed from a dataset list name.
type DatasetListMatch struct {
	Date string
	Time time.Time
}

// DatasetListName returns the dataset list name for the given day.
func DatasetListName(date time.Time) string {
	return DatasetListPrefix + date.Format(DateLayout) + "." + ExtJSON
}

// DatasetListSearch parses a dataset list name.
func DatasetListSearch(name string) (DatasetListMatch, bool) {
	m := DatasetListGrammar.Match(name)
	if m == nil {
		return DatasetListMatch{}, false
	}
	ts, err := time.Parse(DateLayout, m[1])
	if err != nil {
		return DatasetListMatch{}, false
	}
	return DatasetListMatch{Date: m[1], Time: ts}, true
}

// --- SS-Dataset-NNNN.json ---

// DatasetMatch holds the fields parsed from a dataset name.
type DatasetMatch struct {
	State string
	ID    int
}

// DatasetPrefix returns the listing prefix for one state's datasets.
func DatasetPrefix(state string) string {
	return state + datasetInfix
}

// DatasetName returns the dataset name for a state and LegiScan dataset id.
func DatasetName(state string, id int) string {
	return fmt.Sprintf("%s%04d.%s", DatasetPrefix(state), id, ExtJSON)
}

// DatasetSearch parses a dataset name.
func DatasetSearch(name string) (DatasetMatch, bool) {
	m := DatasetGrammar.Match(name)
	if m == nil {
		return DatasetMatch{}, false
	}
	id, err := strconv.Atoi(m[2])
	if err != nil {
		return DatasetMatch{}, false
	}
	return DatasetMatch{State: m[1], ID: id}, true
}

// --- SS-BILL-SESSION[-Yyear].ext ---

// BillTextMatch holds the fields parsed from a bill text name. Year is the
// four- or two-digit suffix as written, or empty when the key had none.
type BillTextMatch struct {
	State     string
	Bill      string
	Session   string
	Year      string
	Extension string
}

// BillTextPrefix returns the listing prefix for one state's bill texts.
func BillTextPrefix(state string) string {
	return state + "-"
}

// BillTextKey builds the extension-less key for a bill document.
//
// A bill number is a letter body followed by digits ("HB1", "SRC4444"). When
// there are fewer than four digits they are zero-padded to four. The year
// suffix is "-Y2016" when the key is at most 19 characters, "-Y16" when it is
// at most 21, and omitted beyond that.
func BillTextKey(state, billNumber string, sessionID, year int) string {
	billNo := billNumber
	if m := billNumberPattern.FindStringSubmatch(billNumber); m != nil {
		body, num := m[1], m[2]
		if len(num) < 4 {
			billNo = body + strings.Repeat("0", 4-len(num)) + num
		}
	}

	key := fmt.Sprintf("%s-%s-%d", state, billNo, sessionID)
	switch {
	case len(key) <= fullYearMaxKey:
		key += fmt.Sprintf("-Y%04d", year)
	case len(key) <= shortYearMaxKey:
		key += fmt.Sprintf("-Y%02d", year%100)
	}
	return key
}

// BillTextName appends the lower-cased extension to a bill text key.
func BillTextName(key, extension string) string {
	return key + "." + strings.ToLower(strings.TrimPrefix(extension, "."))
}

// BillTextSearch parses a bill text name.
func BillTextSearch(name string) (BillTextMatch, bool) {
	m := BillTextGrammar.Match(name)
	if m == nil {
		return BillTextMatch{}, false
	}
	return BillTextMatch{
		State:     m[1],
		Bill:      m[2],
		Session:   m[3],
		Year:      m[4],
		Extension: m[5],
	}, true
}
