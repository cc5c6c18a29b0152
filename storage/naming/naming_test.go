package naming

import (
	"fmt"
	"strconv"
	"testing"
	"time"
)

func TestDatasetListName(t *testing.T) {
	day := time.Date(2020, time.October, 31, 15, 4, 5, 0, time.UTC)
	name := DatasetListName(day)
	if name != "DatasetList-2020-10-31.json" {
		t.Fatalf("DatasetListName() = %q", name)
	}

	m, ok := DatasetListSearch(name)
	if !ok {
		t.Fatalf("DatasetListSearch(%q) found no match", name)
	}
	if m.Date != "2020-10-31" {
		t.Errorf("Date = %q", m.Date)
	}
	if !m.Time.Equal(time.Date(2020, time.October, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Time = %v", m.Time)
	}
}

func TestDatasetListSearchNoMatch(t *testing.T) {
	for _, name := range []string{
		"",
		"DatasetList-2020-10-31.jsonx",
		"DatasetList-2020-1-31.json",
		"DatasetList-2020-10-31xjson",
		"DatasetList-2020-13-45.json",
		"AZ-Dataset-0001.json",
	} {
		if _, ok := DatasetListSearch(name); ok {
			t.Errorf("DatasetListSearch(%q) unexpectedly matched", name)
		}
	}
}

func TestDatasetName(t *testing.T) {
	tests := []struct {
		state string
		id    int
		want  string
	}{
		{"AZ", 1, "AZ-Dataset-0001.json"},
		{"OH", 1720, "OH-Dataset-1720.json"},
		{"US", 42, "US-Dataset-0042.json"},
	}
	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			got := DatasetName(tc.state, tc.id)
			if got != tc.want {
				t.Fatalf("DatasetName() = %q, want %q", got, tc.want)
			}
			m, ok := DatasetSearch(got)
			if !ok {
				t.Fatalf("DatasetSearch(%q) found no match", got)
			}
			if m.State != tc.state || m.ID != tc.id {
				t.Errorf("DatasetSearch() = %+v", m)
			}
		})
	}
}

func TestDatasetSearchNoMatch(t *testing.T) {
	for _, name := range []string{
		"az-Dataset-0001.json",
		"AZ-Dataset-001.json",
		"AZ-Dataset-00001.json",
		"AZ-Dataset-0001.pdf",
		"AZX-Dataset-0001.json",
	} {
		if _, ok := DatasetSearch(name); ok {
			t.Errorf("DatasetSearch(%q) unexpectedly matched", name)
		}
	}
}

func TestBillTextKeySamples(t *testing.T) {
	tests := []struct {
		state   string
		bill    string
		session int
		year    int
		want    string
	}{
		{"AZ", "HB1", 1234, 2016, "AZ-HB0001-1234-Y2016"},
		{"AZ", "SB22", 1234, 2017, "AZ-SB0022-1234-Y2017"},
		{"AZ", "HRJ333", 1234, 2018, "AZ-HRJ0333-1234-Y2018"},
		{"AZ", "SRC4444", 1234, 2019, "AZ-SRC4444-1234-Y2019"},
	}
	for _, tc := range tests {
		t.Run(tc.bill, func(t *testing.T) {
			if got := BillTextKey(tc.state, tc.bill, tc.session, tc.year); got != tc.want {
				t.Errorf("BillTextKey() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestBillTextKeyPadding(t *testing.T) {
	tests := []struct {
		bill string
		want string
	}{
		{"HB1", "HB0001"},
		{"SRC4444", "SRC4444"},
		{"SB12345", "SB12345"},
		{"7", "0007"},
		// Only the leading body+digits take part in padding; the rest is dropped.
		{"HB1A", "HB0001"},
		// Lower-case bodies do not match the body pattern at all.
		{"hb1", "0000"},
	}
	for _, tc := range tests {
		t.Run(tc.bill, func(t *testing.T) {
			key := BillTextKey("AZ", tc.bill, 1, 2020)
			want := "AZ-" + tc.want + "-1-Y2020"
			if key != want {
				t.Errorf("BillTextKey(%q) = %q, want %q", tc.bill, key, want)
			}
		})
	}
}

func TestBillTextKeyLengthBranches(t *testing.T) {
	// "AZ-HB0001-" is 10 characters; the session id supplies the rest.
	tests := []struct {
		name    string
		session int
		keyLen  int
		suffix  string
	}{
		{"short key", 1234, 14, "-Y2016"},
		{"exactly 19", 123456789, 19, "-Y2016"},
		{"exactly 20", 1234567890, 20, "-Y16"},
		{"exactly 21", 12345678901, 21, "-Y16"},
		{"exactly 22", 123456789012, 22, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			base := fmt.Sprintf("AZ-HB0001-%d", tc.session)
			if len(base) != tc.keyLen {
				t.Fatalf("test setup: base key %q has length %d, want %d", base, len(base), tc.keyLen)
			}
			got := BillTextKey("AZ", "HB1", tc.session, 2016)
			if got != base+tc.suffix {
				t.Errorf("BillTextKey() = %q, want %q", got, base+tc.suffix)
			}
		})
	}
}

func TestBillTextKeyTwoDigitYearPads(t *testing.T) {
	got := BillTextKey("AZ", "HB1", 1234567890, 2005)
	if got != "AZ-HB0001-1234567890-Y05" {
		t.Errorf("BillTextKey() = %q", got)
	}
}

func TestBillTextName(t *testing.T) {
	tests := []struct {
		ext  string
		want string
	}{
		{"PDF", "AZ-HB0001-1234-Y2016.pdf"},
		{"html", "AZ-HB0001-1234-Y2016.html"},
		{".Json", "AZ-HB0001-1234-Y2016.json"},
	}
	for _, tc := range tests {
		if got := BillTextName("AZ-HB0001-1234-Y2016", tc.ext); got != tc.want {
			t.Errorf("BillTextName(%q) = %q, want %q", tc.ext, got, tc.want)
		}
	}
}

func TestBillTextRoundTrip(t *testing.T) {
	states := []string{"AZ", "OH", "US"}
	bills := []string{"HB1", "SB22", "HRJ333", "SRC4444", "HCR123456"}
	sessions := []int{1, 1234, 123456789, 1234567890, 12345678901, 123456789012}
	years := []int{2005, 2016, 2021}
	exts := []string{ExtJSON, "PDF", ExtHTML}

	for _, state := range states {
		for _, bill := range bills {
			for _, session := range sessions {
				for _, year := range years {
					for _, ext := range exts {
						key := BillTextKey(state, bill, session, year)
						name := BillTextName(key, ext)
						m, ok := BillTextSearch(name)
						if !ok {
							t.Fatalf("BillTextSearch(%q) found no match", name)
						}
						if m.State != state {
							t.Errorf("%s: State = %q", name, m.State)
						}
						if m.Session != strconv.Itoa(session) {
							t.Errorf("%s: Session = %q", name, m.Session)
						}
						checkYear(t, name, len(key)-len(yearSuffix(m.Year)), m.Year, year)
					}
				}
			}
		}
	}
}

func yearSuffix(year string) string {
	if year == "" {
		return ""
	}
	return "-Y" + year
}

// checkYear verifies the parsed year agrees with the length rule applied to
// the key as it was before the suffix was added.
func checkYear(t *testing.T, name string, baseLen int, got string, year int) {
	t.Helper()
	var want string
	switch {
	case baseLen <= 19:
		want = strconv.Itoa(year)
	case baseLen <= 21:
		want = fmt.Sprintf("%02d", year%100)
	}
	if got != want {
		t.Errorf("%s: Year = %q, want %q", name, got, want)
	}
}

func TestBillTextSearchFields(t *testing.T) {
	m, ok := BillTextSearch("OH-SRC4444-1720-Y2019.pdf")
	if !ok {
		t.Fatal("expected match")
	}
	want := BillTextMatch{State: "OH", Bill: "SRC4444", Session: "1720", Year: "2019", Extension: "pdf"}
	if m != want {
		t.Errorf("BillTextSearch() = %+v, want %+v", m, want)
	}
}

func TestBillTextSearchNoMatch(t *testing.T) {
	for _, name := range []string{
		"",
		"AZ-HB0001-1234-Y2016.txt",
		"AZ-HB0001-1234-Y2016xjson",
		"AZ-HB0001-1234-Y201.json",
		"az-HB0001-1234-Y2016.json",
		"AZ-hb0001-1234-Y2016.json",
		"AZ-HB0001-Y2016.json",
		"DatasetList-2020-10-31.json",
		"AZ-Dataset-0001.json",
	} {
		if _, ok := BillTextSearch(name); ok {
			t.Errorf("BillTextSearch(%q) unexpectedly matched", name)
		}
	}
}

func TestPrefixes(t *testing.T) {
	if DatasetPrefix("AZ") != "AZ-Dataset-" {
		t.Errorf("DatasetPrefix() = %q", DatasetPrefix("AZ"))
	}
	if BillTextPrefix("AZ") != "AZ-" {
		t.Errorf("BillTextPrefix() = %q", BillTextPrefix("AZ"))
	}
	if g := DatasetGrammar.Match(DatasetName("AZ", 7)); g == nil {
		t.Error("grammar should match generated name")
	}
}
