package output

import (
	"bytes"
	"strings"
	"testing"
)

type nodeList []string

func (n nodeList) Table() *Table {
	t := NewTable("NAME")
	for _, name := range n {
		t.AddRow(name)
	}
	return t
}

func TestTable_Render(t *testing.T) {
	table := NewTable("NAME", "IMAGE", "STATUS")
	table.Title = "Network launched"
	table.AddRow("alice", "docker.io/parity/polkadot:latest", "running")
	table.AddRow("bob", "", "pending")

	var buf bytes.Buffer
	if err := table.Render(&buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if lines[0] != "Network launched" {
		t.Errorf("title line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[2], "NAME") || !strings.Contains(lines[2], "STATUS") {
		t.Errorf("header line = %q", lines[2])
	}
	if !strings.Contains(lines[4], "-") {
		t.Errorf("empty cell should render as '-', got %q", lines[4])
	}
	// Columns are aligned.
	if strings.Index(lines[3], "docker.io") != strings.Index(lines[2], "IMAGE") {
		t.Errorf("columns are not aligned:\n%s", buf.String())
	}
}

func TestTableFormatter(t *testing.T) {
	f := &TableFormatter{NoHeaders: true}

	var buf bytes.Buffer
	if err := f.Format(&buf, nodeList{"alice", "bob"}); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if buf.String() != "alice\nbob\n" {
		t.Errorf("output = %q", buf.String())
	}

	if err := f.Format(&buf, 42); err == nil {
		t.Error("Format() should reject values that are not tables")
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewFormatter(FormatJSON).Format(&buf, map[string]string{"namespace": "zombie-abc"}); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.Contains(buf.String(), `"namespace": "zombie-abc"`) {
		t.Errorf("output = %q", buf.String())
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"", "table"} {
		if f, err := ParseFormat(s); err != nil || f != FormatTable {
			t.Errorf("ParseFormat(%q) = %v, %v", s, f, err)
		}
	}
	if f, err := ParseFormat("json"); err != nil || f != FormatJSON {
		t.Errorf("ParseFormat(json) = %v, %v", f, err)
	}
	if _, err := ParseFormat("yaml"); err == nil {
		t.Error("ParseFormat(yaml) should fail")
	}
}
