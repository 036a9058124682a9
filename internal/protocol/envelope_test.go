package protocol

import (
	"testing"

	"github.com/bitop-dev/fileinfo/internal/jsonval"
)

func TestTextResultExactShape(t *testing.T) {
	got := TextResult("hello", false)
	want := `{"content":[{"type":"text","text":"hello"}],"error":false}`
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}

	got = TextResult("boom", true)
	want = `{"content":[{"type":"text","text":"boom"}],"error":true}`
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestTextResultEscaping(t *testing.T) {
	got := TextResult("a\"b\\c\nd\re\tf", false)
	want := `{"content":[{"type":"text","text":"a\"b\\c\nd\re\tf"}],"error":false}`
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

// Everything the encoder can emit must parse back to the same text through
// the hand-rolled parser.
func TestTextResultRoundTrip(t *testing.T) {
	texts := []string{
		"plain",
		"",
		"multi\nline\treport\r\n",
		`quotes " and \ backslashes`,
		"path    : /tmp/x\nsize    : 12 (12 B)",
	}
	for _, text := range texts {
		for _, isError := range []bool{true, false} {
			obj, err := jsonval.ParseObject([]byte(TextResult(text, isError)))
			if err != nil {
				t.Fatalf("%q: envelope failed to parse: %v", text, err)
			}
			flag, ok := obj.Bool("error")
			if !ok || flag != isError {
				t.Fatalf("%q: expected error flag %v, got %v", text, isError, flag)
			}
			content, ok := obj.Array("content")
			if !ok || len(content) != 1 {
				t.Fatalf("%q: expected one content item, got %v", text, content)
			}
			item := content[0]
			if item.Kind != jsonval.KindObject {
				t.Fatalf("%q: expected object content item", text)
			}
			gotText, ok := item.Obj.String("text")
			if !ok || gotText != text {
				t.Fatalf("expected round-tripped text %q, got %q", text, gotText)
			}
		}
	}
}

func TestDefinitionDocument(t *testing.T) {
	obj, err := jsonval.ParseObject([]byte(Definition))
	if err != nil {
		t.Fatalf("definition failed to parse: %v", err)
	}
	if name, ok := obj.String("name"); !ok || name != "file_info" {
		t.Fatalf("expected tool name file_info, got %q", name)
	}
	params, ok := obj.Object("parameters")
	if !ok {
		t.Fatal("expected parameters object")
	}
	required, ok := params.Array("required")
	if !ok || len(required) != 1 || required[0].Str != "path" {
		t.Fatalf("expected required [path], got %v", required)
	}
	props, ok := params.Object("properties")
	if !ok {
		t.Fatal("expected properties object")
	}
	if _, ok := props.Object("max_entries"); !ok {
		t.Fatal("expected max_entries property")
	}
}
