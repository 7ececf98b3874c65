package rights_test

import (
	"strings"
	"testing"

	rights "github.com/idmops/resultant-rights"
)

func rec(rule string, action rights.Action, attribute string) rights.RightsRecord {
	return rights.RightsRecord{
		Requestor: "Alice Finch",
		Target:    "Bob Tran",
		Rule:      rule,
		Action:    action,
		Attribute: attribute,
	}
}

func TestSummarize(t *testing.T) {
	t.Run("star marks all-attribute actions once", func(t *testing.T) {
		// Input in the canonical (rule, action, attribute) sort order:
		// actions in declaration order, attributes alphabetical within.
		lines := rights.Summarize([]rights.RightsRecord{
			rec("Update Contact", rights.ActionRead, rights.AllAttributes),
			rec("Update Contact", rights.ActionRead, "Display Name"),
			rec("Update Contact", rights.ActionModify, "Display Name"),
		})
		if len(lines) != 1 {
			t.Fatalf("got %d lines, want 1: %v", len(lines), lines)
		}
		want := "Update Contact   (Read*, Modify)"
		if lines[0] != want {
			t.Errorf("line = %q, want %q", lines[0], want)
		}
	})

	t.Run("grouping follows input run order", func(t *testing.T) {
		lines := rights.Summarize([]rights.RightsRecord{
			rec("Update Contact", rights.ActionModify, "Display Name"),
			rec("Update Contact", rights.ActionRead, rights.AllAttributes),
			rec("Update Contact", rights.ActionRead, "Display Name"),
		})
		if len(lines) != 1 {
			t.Fatalf("got %d lines, want 1: %v", len(lines), lines)
		}
		want := "Update Contact   (Modify, Read*)"
		if lines[0] != want {
			t.Errorf("line = %q, want %q", lines[0], want)
		}
	})

	t.Run("unattributed matches carry the placeholder label", func(t *testing.T) {
		lines := rights.Summarize([]rights.RightsRecord{
			rec("Manager Access", rights.ActionUnspecified, rights.AllAttributes),
		})
		if len(lines) != 1 {
			t.Fatalf("got %d lines, want 1: %v", len(lines), lines)
		}
		if want := "Manager Access   (Unspecified*)"; lines[0] != want {
			t.Errorf("line = %q, want %q", lines[0], want)
		}
	})

	t.Run("one line per rule", func(t *testing.T) {
		lines := rights.Summarize([]rights.RightsRecord{
			rec("Create Person", rights.ActionCreate, rights.AllAttributes),
			rec("View Profile", rights.ActionRead, "Display Name"),
			rec("View Profile", rights.ActionRead, "Telephone Number"),
		})
		want := []string{
			"Create Person   (Create*)",
			"View Profile   (Read)",
		}
		if len(lines) != len(want) {
			t.Fatalf("lines = %v, want %v", lines, want)
		}
		for i := range want {
			if lines[i] != want[i] {
				t.Errorf("line[%d] = %q, want %q", i, lines[i], want[i])
			}
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if lines := rights.Summarize(nil); len(lines) != 0 {
			t.Errorf("lines = %v, want none", lines)
		}
	})
}

func TestWriteSummary(t *testing.T) {
	t.Run("zero rows prints notice", func(t *testing.T) {
		var buf strings.Builder
		rights.WriteSummary(&buf, nil)
		if got := strings.TrimSpace(buf.String()); got != rights.NoPermissionsNotice {
			t.Errorf("output = %q, want notice", got)
		}
	})

	t.Run("rows print grouped lines", func(t *testing.T) {
		var buf strings.Builder
		rights.WriteSummary(&buf, []rights.RightsRecord{
			rec("View Profile", rights.ActionRead, rights.AllAttributes),
		})
		if got := strings.TrimSpace(buf.String()); got != "View Profile   (Read*)" {
			t.Errorf("output = %q", got)
		}
	})
}

func TestWriteTable(t *testing.T) {
	t.Run("zero rows prints notice", func(t *testing.T) {
		var buf strings.Builder
		rights.WriteTable(&buf, nil)
		if got := strings.TrimSpace(buf.String()); got != rights.NoPermissionsNotice {
			t.Errorf("output = %q, want notice", got)
		}
	})

	t.Run("renders one row per record", func(t *testing.T) {
		var buf strings.Builder
		rights.WriteTable(&buf, []rights.RightsRecord{
			rec("View Profile", rights.ActionRead, rights.AllAttributes),
			rec("View Profile", rights.ActionRead, "Display Name"),
		})
		out := buf.String()
		lines := strings.Split(strings.TrimSpace(out), "\n")
		if len(lines) != 3 {
			t.Fatalf("got %d lines, want header + 2 rows:\n%s", len(lines), out)
		}
		if !strings.HasPrefix(lines[0], "RULE") {
			t.Errorf("header = %q", lines[0])
		}
		if !strings.Contains(lines[1], "View Profile") || !strings.Contains(lines[1], rights.AllAttributes) {
			t.Errorf("row = %q", lines[1])
		}
	})
}

func TestWriteRaw(t *testing.T) {
	t.Run("zero rows writes nothing", func(t *testing.T) {
		var buf strings.Builder
		rights.WriteRaw(&buf, nil)
		if buf.Len() != 0 {
			t.Errorf("output = %q, want empty", buf.String())
		}
	})

	t.Run("one tab-separated line per record", func(t *testing.T) {
		var buf strings.Builder
		rights.WriteRaw(&buf, []rights.RightsRecord{
			rec("View Profile", rights.ActionRead, rights.AllAttributes),
		})
		want := "Alice Finch\tBob Tran\tView Profile\tRead\tAll Attributes\n"
		if buf.String() != want {
			t.Errorf("output = %q, want %q", buf.String(), want)
		}
	})

	t.Run("unattributed rows keep a non-empty action column", func(t *testing.T) {
		var buf strings.Builder
		rights.WriteRaw(&buf, []rights.RightsRecord{
			rec("Manager Access", rights.ActionUnspecified, rights.AllAttributes),
		})
		want := "Alice Finch\tBob Tran\tManager Access\tUnspecified\tAll Attributes\n"
		if buf.String() != want {
			t.Errorf("output = %q, want %q", buf.String(), want)
		}
	})
}
