package scanner

import (
	"strconv"
	"strings"
)

// deriveYear extracts a release year from a raw tag value. The value is often
// a full date ("2015-06-01"); only the part before the first '-' counts, with
// interior whitespace stripped. Anything unparseable yields no year.
func deriveYear(raw string) (int, bool) {
	head, _, _ := strings.Cut(raw, "-")
	head = strings.ReplaceAll(head, " ", "")
	if head == "" {
		return 0, false
	}
	year, err := strconv.Atoi(head)
	if err != nil {
		return 0, false
	}
	return year, true
}
