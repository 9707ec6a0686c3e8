package testrunner

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/yndnr/zombienet-go/internal/core/domain"
)

// DefaultAssertionTimeout applies to assertions without a `within` clause.
const DefaultAssertionTimeout = 10 * time.Second

// Definition is a parsed test file.
type Definition struct {
	Description string
	Network     string
	Creds       string
	Assertions  []Assertion
}

// AssertionKind identifies what an assertion checks.
type AssertionKind string

// Supported assertions.
const (
	AssertIsUp AssertionKind = "is up"
)

// Assertion is a single check against one node.
type Assertion struct {
	Line    int
	Node    string
	Kind    AssertionKind
	Timeout time.Duration
	Text    string
}

var (
	headerRe = regexp.MustCompile(`^(Description|Network|Creds)\s*:\s*(.*)$`)
	isUpRe   = regexp.MustCompile(`^([a-z0-9][-a-z0-9]*)\s*:\s*is up(?:\s+within\s+(\d+)\s+(?:seconds|secs|s))?$`)
)

// ParseFile reads a definition from path.
func ParseFile(path string) (*Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, domain.ErrTestFile.WithDetails(path).WithCause(err)
	}
	defer f.Close()

	def, err := Parse(f)
	if err != nil {
		return nil, domain.ErrTestFile.WithDetails(path).WithCause(err)
	}
	return def, nil
}

// Parse reads a definition. Blank lines and lines starting with # are
// ignored.
func Parse(r io.Reader) (*Definition, error) {
	def := &Definition{}
	sc := bufio.NewScanner(r)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if m := headerRe.FindStringSubmatch(line); m != nil {
			value := strings.TrimSpace(m[2])
			switch m[1] {
			case "Description":
				def.Description = value
			case "Network":
				def.Network = value
			case "Creds":
				def.Creds = value
			}
			continue
		}

		a, err := parseAssertion(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		a.Line = lineNo
		def.Assertions = append(def.Assertions, a)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	if def.Network == "" {
		return nil, fmt.Errorf("missing Network header")
	}
	return def, nil
}

func parseAssertion(line string) (Assertion, error) {
	m := isUpRe.FindStringSubmatch(line)
	if m == nil {
		return Assertion{}, fmt.Errorf("unsupported assertion %q", line)
	}

	a := Assertion{
		Node:    m[1],
		Kind:    AssertIsUp,
		Timeout: DefaultAssertionTimeout,
		Text:    line,
	}
	if m[2] != "" {
		secs, err := strconv.Atoi(m[2])
		if err != nil || secs <= 0 {
			return Assertion{}, fmt.Errorf("invalid timeout in %q", line)
		}
		a.Timeout = time.Duration(secs) * time.Second
	}
	return a, nil
}
