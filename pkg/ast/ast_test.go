package ast

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

const sampleDoc = `{
  "pandoc-api-version": [1, 23, 1],
  "meta": {
    "title": {"t": "MetaInlines", "c": [{"t": "Str", "c": "Spec"}]}
  },
  "blocks": [
    {"t": "Header", "c": [1, ["intro", ["unnumbered"], [["lang", "en"]]], [{"t": "Str", "c": "Intro"}]]},
    {"t": "Para", "c": [{"t": "Str", "c": "Hello"}, {"t": "Space"}, {"t": "Emph", "c": [{"t": "Str", "c": "world"}]}]},
    {"t": "HorizontalRule"},
    {"t": "FancyNewBlock", "c": {"x": 1.50, "a": [true, null]}}
  ]
}`

func decodeSample(t *testing.T) *Document {
	t.Helper()
	var doc Document
	if err := json.Unmarshal([]byte(sampleDoc), &doc); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	return &doc
}

func TestDocumentDecode(t *testing.T) {
	doc := decodeSample(t)

	if got := doc.APIVersion; len(got) != 3 || got[0] != 1 || got[1] != 23 || got[2] != 1 {
		t.Errorf("APIVersion = %v, want [1 23 1]", got)
	}
	if len(doc.Blocks) != 4 {
		t.Fatalf("len(Blocks) = %d, want 4", len(doc.Blocks))
	}

	wantKinds := []Kind{KindHeader, KindPara, KindHorizontalRule, KindUnknown}
	for i, want := range wantKinds {
		if got := doc.Blocks[i].Kind; got != want {
			t.Errorf("Blocks[%d].Kind = %v, want %v", i, got, want)
		}
	}
	if doc.Blocks[3].Tag != "FancyNewBlock" {
		t.Errorf("unknown tag not preserved: %q", doc.Blocks[3].Tag)
	}

	title, ok := doc.Meta["title"].(*Node)
	if !ok || title.Kind != KindMetaInlines {
		t.Fatalf("meta title decoded as %#v", doc.Meta["title"])
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	doc := decodeSample(t)

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var again Document
	if err := json.Unmarshal(data, &again); err != nil {
		t.Fatalf("Unmarshal round trip: %v", err)
	}
	if !bytes.Equal(Canonical(doc), Canonical(&again)) {
		t.Errorf("round trip changed document:\n%s\n%s", Canonical(doc), Canonical(&again))
	}

	// Literal number text survives.
	if !strings.Contains(string(data), "1.50") {
		t.Errorf("number text not preserved: %s", data)
	}
	// Elements without content have no "c" member.
	if !strings.Contains(string(data), `{"t":"HorizontalRule"}`) {
		t.Errorf("HorizontalRule encoded unexpectedly: %s", data)
	}
}

func TestCanonicalNumbersByLiteralText(t *testing.T) {
	level := func(n string) *Node {
		return New(KindHeader, []any{json.Number(n), []any{"", []any{}, []any{}}, []any{}})
	}
	if Digest(level("2")) != Digest(level("2")) {
		t.Error("equal literals should have equal digests")
	}
	for _, other := range []string{"2.0", "2e0"} {
		if Digest(level("2")) == Digest(level(other)) {
			t.Errorf("literal %s should differ from 2", other)
		}
	}
}

func TestNodeEncodeWithoutHTMLEscaping(t *testing.T) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(Str("a < b & c")); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if got, want := strings.TrimSpace(buf.String()), `{"t":"Str","c":"a < b & c"}`; got != want {
		t.Errorf("Encode = %s, want %s", got, want)
	}
}

func TestDocumentDecodeMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		field string
	}{
		{"not an object", `[]`, "document"},
		{"missing version", `{"meta": {}, "blocks": []}`, fieldAPIVersion},
		{"bad version", `{"pandoc-api-version": ["x"], "meta": {}, "blocks": []}`, fieldAPIVersion},
		{"missing meta", `{"pandoc-api-version": [1], "blocks": []}`, fieldMeta},
		{"meta not object", `{"pandoc-api-version": [1], "meta": [], "blocks": []}`, fieldMeta},
		{"missing blocks", `{"pandoc-api-version": [1], "meta": {}}`, fieldBlocks},
		{"blocks not array", `{"pandoc-api-version": [1], "meta": {}, "blocks": {}}`, fieldBlocks},
		{"block without tag", `{"pandoc-api-version": [1], "meta": {}, "blocks": [{"c": 1}]}`, "blocks[0]"},
		{"block not object", `{"pandoc-api-version": [1], "meta": {}, "blocks": [{"t": "Para"}, 3]}`, "blocks[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc Document
			err := json.Unmarshal([]byte(tt.input), &doc)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("error %v does not wrap ErrMalformed", err)
			}
			var fe *FieldError
			if !errors.As(err, &fe) {
				t.Fatalf("error %v is not a FieldError", err)
			}
			if fe.Field != tt.field {
				t.Errorf("Field = %q, want %q", fe.Field, tt.field)
			}
		})
	}
}

func TestDocumentDecodeSyntaxError(t *testing.T) {
	var doc Document
	err := json.Unmarshal([]byte(`{"blocks": [`), &doc)
	if err == nil {
		t.Fatal("expected error for truncated input")
	}
}

func TestCanonicalIgnoresKeyOrder(t *testing.T) {
	a := `{"t": "Table", "c": {"b": 1, "a": [{"t": "Str", "c": "x"}]}}`
	b := `{"c": {"a": [{"c": "x", "t": "Str"}], "b": 1}, "t": "Table"}`

	var na, nb Node
	if err := json.Unmarshal([]byte(a), &na); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(b), &nb); err != nil {
		t.Fatal(err)
	}
	if Digest(&na) != Digest(&nb) {
		t.Errorf("digests differ:\n%s\n%s", Canonical(&na), Canonical(&nb))
	}
	if got, want := string(Canonical(&na)), `{"c":{"a":[{"c":"x","t":"Str"}],"b":1},"t":"Table"}`; got != want {
		t.Errorf("Canonical = %s, want %s", got, want)
	}
}

func TestCanonicalDistinguishesOrderedContent(t *testing.T) {
	p1 := Para(Str("a"), Space(), Str("b"))
	p2 := Para(Str("b"), Space(), Str("a"))
	if Digest(p1) == Digest(p2) {
		t.Error("reordered children should not be equal")
	}

	c1 := Div(Attr{Classes: []string{"x", "y"}})
	c2 := Div(Attr{Classes: []string{"y", "x"}})
	if Digest(c1) == Digest(c2) {
		t.Error("class order is significant")
	}
}

func TestCanonicalConstructedMatchesDecoded(t *testing.T) {
	var decoded Node
	if err := json.Unmarshal([]byte(`{"t":"Header","c":[2,["",[],[]],[{"t":"Str","c":"Hi"}]]}`), &decoded); err != nil {
		t.Fatal(err)
	}
	built := Header(2, Attr{}, Str("Hi"))
	if Digest(&decoded) != Digest(built) {
		t.Errorf("constructed header differs:\n%s\n%s", Canonical(&decoded), Canonical(built))
	}
}

func TestAccessors(t *testing.T) {
	doc := decodeSample(t)
	h := doc.Blocks[0]

	level, ok := h.Level()
	if !ok || level != 1 {
		t.Errorf("Level() = %d, %v", level, ok)
	}
	attr, ok := h.Attr()
	if !ok {
		t.Fatal("Attr() not found on Header")
	}
	if attr.ID != "intro" || len(attr.Classes) != 1 || attr.Classes[0] != "unnumbered" {
		t.Errorf("Attr() = %+v", attr)
	}
	if v, ok := attr.Get("lang"); !ok || v != "en" {
		t.Errorf(`Get("lang") = %q, %v`, v, ok)
	}
	inlines, ok := h.Inlines()
	if !ok || len(inlines) != 1 {
		t.Fatalf("Inlines() = %v, %v", inlines, ok)
	}
	if s, _ := inlines[0].Text(); s != "Intro" {
		t.Errorf("Text() = %q", s)
	}

	para := doc.Blocks[1]
	if _, ok := para.Attr(); ok {
		t.Error("Para has no attribute")
	}
	if _, ok := para.Blocks(); ok {
		t.Error("Para has no block children")
	}

	div := Div(Attr{ID: "d"}, para)
	blocks, ok := div.Blocks()
	if !ok || len(blocks) != 1 || blocks[0] != para {
		t.Errorf("Div.Blocks() = %v, %v", blocks, ok)
	}
}

func TestWithInlines(t *testing.T) {
	h := Header(3, Attr{ID: "x"}, Str("old"))
	h2, ok := h.WithInlines([]*Node{Str("new")})
	if !ok {
		t.Fatal("WithInlines failed on Header")
	}
	inl, _ := h2.Inlines()
	if s, _ := inl[0].Text(); s != "new" {
		t.Errorf("new inlines = %q", s)
	}
	old, _ := h.Inlines()
	if s, _ := old[0].Text(); s != "old" {
		t.Error("WithInlines mutated the original")
	}
	if level, _ := h2.Level(); level != 3 {
		t.Errorf("level lost: %d", level)
	}

	if _, ok := New(KindHorizontalRule, nil).WithInlines(nil); ok {
		t.Error("HorizontalRule has no inlines")
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		tag  string
		want Kind
	}{
		{"Para", KindPara},
		{"Div", KindDiv},
		{"Str", KindStr},
		{"MetaInlines", KindMetaInlines},
		{"Unknown", KindUnknown},
		{"para", KindUnknown},
		{"", KindUnknown},
	}
	for _, tt := range tests {
		if got := KindOf(tt.tag); got != tt.want {
			t.Errorf("KindOf(%q) = %v, want %v", tt.tag, got, tt.want)
		}
	}

	if !KindDiv.IsBlock() || KindDiv.IsInline() {
		t.Error("Div is a block")
	}
	if !KindSpan.IsInline() || KindSpan.IsBlock() {
		t.Error("Span is an inline")
	}
	if !KindMetaMap.IsMeta() {
		t.Error("MetaMap is a meta value")
	}
}

func TestPlainText(t *testing.T) {
	doc := decodeSample(t)
	if got := PlainText(doc.Blocks[1]); got != "Hello world" {
		t.Errorf("PlainText(para) = %q", got)
	}
	div := Div(Attr{}, Para(Str("one")), Para(Str("two")))
	if got := PlainText(div); got != "one two" {
		t.Errorf("PlainText(div) = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 6, "hello…"},
		{"héllo", 2, "h…"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
