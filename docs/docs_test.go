package docs

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/swaggo/swag"
)

type annotatedOp struct {
	summary  string
	secured  bool
	location string
}

// handlerAnnotations reads the @Summary, @Security and @Router lines of every
// handler doc comment, keyed by "method path".
func handlerAnnotations(t *testing.T) map[string]annotatedOp {
	t.Helper()
	files, err := filepath.Glob("../internal/api/handler/*_handler.go")
	if err != nil || len(files) == 0 {
		t.Fatalf("no handler files found: %v", err)
	}

	ops := make(map[string]annotatedOp)
	for _, name := range files {
		f, err := os.Open(name)
		if err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
		var cur annotatedOp
		sc := bufio.NewScanner(f)
		for line := 1; sc.Scan(); line++ {
			text := strings.TrimSpace(sc.Text())
			if !strings.HasPrefix(text, "//") {
				cur = annotatedOp{}
				continue
			}
			fields := strings.Fields(strings.TrimPrefix(text, "//"))
			if len(fields) < 2 {
				continue
			}
			switch fields[0] {
			case "@Summary":
				cur.summary = strings.Join(fields[1:], " ")
			case "@Security":
				cur.secured = true
			case "@Router":
				if len(fields) < 3 {
					t.Fatalf("%s:%d: malformed @Router", name, line)
				}
				method := strings.Trim(fields[2], "[]")
				cur.location = name + ":" + strconv.Itoa(line)
				ops[method+" "+fields[1]] = cur
			}
		}
		_ = f.Close()
	}
	return ops
}

func TestDocMatchesHandlerAnnotations(t *testing.T) {
	raw, err := swag.ReadDoc()
	if err != nil {
		t.Fatalf("ReadDoc: %v", err)
	}
	var doc struct {
		Paths map[string]map[string]struct {
			Summary  string                `json:"summary"`
			Security []map[string][]string `json:"security"`
		} `json:"paths"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("document is not valid JSON: %v", err)
	}

	want := handlerAnnotations(t)
	documented := 0
	for path, methods := range doc.Paths {
		for method, op := range methods {
			documented++
			a, ok := want[method+" "+path]
			if !ok {
				t.Errorf("%s %s documented but not annotated on any handler", method, path)
				continue
			}
			if op.Summary != a.summary {
				t.Errorf("%s %s: summary %q, annotation at %s says %q", method, path, op.Summary, a.location, a.summary)
			}
			if secured := len(op.Security) > 0; secured != a.secured {
				t.Errorf("%s %s: security %v, annotation at %s says %v", method, path, secured, a.location, a.secured)
			}
		}
	}
	if documented != len(want) {
		t.Errorf("expected %d documented operations, got %d", len(want), documented)
	}
}
