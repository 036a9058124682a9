package protocol

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/bitop-dev/fileinfo/internal/jsonval"
)

type fakeInspector struct {
	calls []jsonval.Object
	text  string
	isErr bool
}

func (f *fakeInspector) Call(params jsonval.Object) (string, bool) {
	f.calls = append(f.calls, params)
	return f.text, f.isErr
}

func runDispatcher(t *testing.T, input string, inspector Inspector) []string {
	t.Helper()
	var out bytes.Buffer
	d := NewDispatcher(strings.NewReader(input), &out, inspector, zerolog.Nop())
	if err := d.Run(); err != nil {
		t.Fatalf("expected clean run, got: %v", err)
	}
	if out.Len() == 0 {
		return nil
	}
	return strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
}

func TestDispatcherDescribe(t *testing.T) {
	lines := runDispatcher(t, "{\"type\":\"describe\"}\n", &fakeInspector{})
	if len(lines) != 1 {
		t.Fatalf("expected one response, got %d", len(lines))
	}
	if lines[0] != Definition {
		t.Fatalf("expected the literal definition document, got %s", lines[0])
	}
}

func TestDescribeIsByteIdenticalAcrossCalls(t *testing.T) {
	input := "{\"type\":\"describe\"}\n{\"type\":\"describe\"}\n"
	lines := runDispatcher(t, input, &fakeInspector{})
	if len(lines) != 2 {
		t.Fatalf("expected two responses, got %d", len(lines))
	}
	if lines[0] != lines[1] {
		t.Fatal("expected identical describe responses")
	}
}

func TestDispatcherBlankLinesAreSilent(t *testing.T) {
	lines := runDispatcher(t, "\n   \n\t\t\n", &fakeInspector{})
	if len(lines) != 0 {
		t.Fatalf("expected no responses for blank lines, got %v", lines)
	}
}

func TestDispatcherParseErrorContinues(t *testing.T) {
	input := "not json at all\n{\"type\":\"describe\"}\n"
	lines := runDispatcher(t, input, &fakeInspector{})
	if len(lines) != 2 {
		t.Fatalf("expected two responses, got %d", len(lines))
	}

	obj, err := jsonval.ParseObject([]byte(lines[0]))
	if err != nil {
		t.Fatalf("error envelope failed to parse: %v", err)
	}
	if flag, ok := obj.Bool("error"); !ok || !flag {
		t.Fatal("expected error flag set")
	}
	content, _ := obj.Array("content")
	text, _ := content[0].Obj.String("text")
	if !strings.HasPrefix(text, "JSON parse error:") {
		t.Fatalf("expected JSON parse error prefix, got %q", text)
	}

	// The bad line must not take the next one with it.
	if lines[1] != Definition {
		t.Fatalf("expected describe to still be answered, got %s", lines[1])
	}
}

func TestDispatcherUnknownType(t *testing.T) {
	lines := runDispatcher(t, "{\"type\":\"bogus\"}\n", &fakeInspector{})
	want := TextResult("Unknown type: bogus", true)
	if len(lines) != 1 || lines[0] != want {
		t.Fatalf("expected %s, got %v", want, lines)
	}
}

func TestDispatcherMissingType(t *testing.T) {
	want := TextResult("Missing 'type' field", true)
	for _, input := range []string{
		"{\"call_id\":\"1\"}\n",
		"{\"type\":42}\n", // non-string type reads as absent
	} {
		lines := runDispatcher(t, input, &fakeInspector{})
		if len(lines) != 1 || lines[0] != want {
			t.Fatalf("%q: expected %s, got %v", input, want, lines)
		}
	}
}

func TestDispatcherCallForwardsParams(t *testing.T) {
	inspector := &fakeInspector{text: "report body"}
	input := "{\"type\":\"call\",\"call_id\":\"c1\",\"params\":{\"path\":\"/tmp\"}}\n"
	lines := runDispatcher(t, input, inspector)

	if len(inspector.calls) != 1 {
		t.Fatalf("expected one inspector call, got %d", len(inspector.calls))
	}
	path, ok := inspector.calls[0].String("path")
	if !ok || path != "/tmp" {
		t.Fatalf("expected path param forwarded, got %q", path)
	}
	want := TextResult("report body", false)
	if len(lines) != 1 || lines[0] != want {
		t.Fatalf("expected %s, got %v", want, lines)
	}
}

func TestDispatcherCallDefaultsParams(t *testing.T) {
	inspector := &fakeInspector{text: "ok"}
	for _, input := range []string{
		"{\"type\":\"call\",\"call_id\":\"1\"}\n",
		"{\"type\":\"call\",\"params\":\"not an object\"}\n",
	} {
		inspector.calls = nil
		runDispatcher(t, input, inspector)
		if len(inspector.calls) != 1 {
			t.Fatalf("%q: expected one inspector call", input)
		}
		if inspector.calls[0] == nil || len(inspector.calls[0]) != 0 {
			t.Fatalf("%q: expected empty params object, got %v", input, inspector.calls[0])
		}
	}
}

func TestDispatcherToolErrorEnvelope(t *testing.T) {
	inspector := &fakeInspector{text: "Error: 'path' parameter is required", isErr: true}
	lines := runDispatcher(t, "{\"type\":\"call\",\"params\":{}}\n", inspector)
	want := `{"content":[{"type":"text","text":"Error: 'path' parameter is required"}],"error":true}`
	if len(lines) != 1 || lines[0] != want {
		t.Fatalf("expected %s, got %v", want, lines)
	}
}

func TestDispatcherStrictOrdering(t *testing.T) {
	inspector := &fakeInspector{text: "r"}
	input := "{\"type\":\"describe\"}\n{\"type\":\"call\"}\n{\"type\":\"nope\"}\n"
	lines := runDispatcher(t, input, inspector)
	if len(lines) != 3 {
		t.Fatalf("expected three responses, got %d", len(lines))
	}
	if lines[0] != Definition {
		t.Fatal("expected describe response first")
	}
	if lines[1] != TextResult("r", false) {
		t.Fatal("expected call response second")
	}
	if lines[2] != TextResult("Unknown type: nope", true) {
		t.Fatal("expected protocol error third")
	}
}

func TestHandlerBlankLineEmitsNothing(t *testing.T) {
	h := NewHandler(&fakeInspector{}, zerolog.Nop())
	if _, emit := h.HandleLine("   \t  "); emit {
		t.Fatal("expected no response for whitespace-only line")
	}
}
