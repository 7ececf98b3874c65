package rights

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// NoPermissionsNotice is printed by the table and summary projections when
// the resolution produced zero rows. An empty result is success, not an
// error.
const NoPermissionsNotice = "The requestor holds no permissions on the target."

// WriteRaw prints one tab-separated record per line, in the base
// (rule, action, attribute) order.
func WriteRaw(w io.Writer, records []RightsRecord) {
	for _, rec := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", rec.Requestor, rec.Target, rec.Rule, rec.Action, rec.Attribute)
	}
}

// WriteTable renders the records as a flat table of one (rule, action,
// attribute) row per line, sorted by rule name.
func WriteTable(w io.Writer, records []RightsRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, NoPermissionsNotice)
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RULE\tACTION\tATTRIBUTE")
	for _, rec := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", rec.Rule, rec.Action, rec.Attribute)
	}
	_ = tw.Flush()
}

// WriteSummary renders one grouped line per rule.
func WriteSummary(w io.Writer, records []RightsRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, NoPermissionsNotice)
		return
	}
	for _, line := range Summarize(records) {
		fmt.Fprintln(w, line)
	}
}

// Summarize groups records into one line per rule:
//
//	<rule>   (<action1>[*], <action2>[*], ...)
//
// An action label carries a single trailing '*' when any of its rows grants
// on all attributes. The grouping is a forward run-length encoding over the
// (rule, action) keys and requires records in the canonical
// (rule, action, attribute) sort order that Resolve produces.
func Summarize(records []RightsRecord) []string {
	var lines []string
	for i := 0; i < len(records); {
		rule := records[i].Rule
		var labels []string
		for i < len(records) && records[i].Rule == rule {
			action := records[i].Action
			all := false
			for i < len(records) && records[i].Rule == rule && records[i].Action == action {
				if records[i].Attribute == AllAttributes {
					all = true
				}
				i++
			}
			label := string(action)
			if all {
				label += "*"
			}
			labels = append(labels, label)
		}
		lines = append(lines, fmt.Sprintf("%s   (%s)", rule, strings.Join(labels, ", ")))
	}
	return lines
}
