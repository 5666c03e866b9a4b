package htmldoc

import (
	"errors"
	"strings"
	"testing"
)

func mustParse(t *testing.T, src string) *Document {
	t.Helper()
	doc, err := ParseString(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return doc
}

func TestFind(t *testing.T) {
	doc := mustParse(t, `<html><head>
	<meta name="author" content="me">
	<meta name="description" content="first">
	<meta name="description" content="second">
	</head><body></body></html>`)

	el, ok := doc.Find("meta", func(e *Element) bool {
		v, _ := e.Attr("name")
		return v == "description"
	})
	if !ok {
		t.Fatal("expected description meta")
	}
	if v, _ := el.Attr("content"); v != "first" {
		t.Errorf("content = %q, want first match", v)
	}

	if _, ok := doc.Find("link", nil); ok {
		t.Error("found a link in a document without one")
	}

	if el, ok := doc.Find("meta", nil); !ok || el.Tag() != "meta" {
		t.Error("nil match should accept any meta")
	}
}

func TestFindMeta_CaseInsensitiveName(t *testing.T) {
	doc := mustParse(t, `<html><head><meta name=" ViewPort " content="width=device-width"></head></html>`)

	el, ok := doc.FindMeta("viewport")
	if !ok {
		t.Fatal("expected viewport meta")
	}
	if v, _ := el.Attr("content"); v != "width=device-width" {
		t.Errorf("content = %q", v)
	}
}

func TestFindAll_DocumentOrder(t *testing.T) {
	doc := mustParse(t, `<body><h2>b</h2><div><h1>a</h1><p><h3>c</h3></p></div><h2>d</h2></body>`)

	var got []string
	for _, el := range doc.FindAll("h1", "h2", "h3") {
		got = append(got, el.Tag()+":"+el.Text())
	}

	want := "h2:b,h1:a,h3:c,h2:d"
	if strings.Join(got, ",") != want {
		t.Errorf("order = %v, want %s", got, want)
	}
}

func TestElement_Attr(t *testing.T) {
	doc := mustParse(t, `<img SRC="a.png" alt="">`)
	img, ok := doc.Find("img", nil)
	if !ok {
		t.Fatal("expected img")
	}

	if v, ok := img.Attr("src"); !ok || v != "a.png" {
		t.Errorf("src = %q, %v; attribute keys should be lower-cased", v, ok)
	}
	if v, ok := img.Attr("alt"); !ok || v != "" {
		t.Errorf("alt = %q, %v; want present and empty", v, ok)
	}
	if _, ok := img.Attr("width"); ok {
		t.Error("width reported present")
	}
}

func TestElement_HasToken(t *testing.T) {
	doc := mustParse(t, `<head><link rel="Alternate  CANONICAL" href="/x"></head>`)
	link, _ := doc.Find("link", nil)

	if !link.HasToken("rel", "canonical") {
		t.Error("expected canonical token")
	}
	if link.HasToken("rel", "stylesheet") {
		t.Error("unexpected stylesheet token")
	}
	if link.HasToken("type", "canonical") {
		t.Error("missing attribute should have no tokens")
	}
}

func TestElement_Text(t *testing.T) {
	doc := mustParse(t, "<html><head><title>\n  Hello <World>  \n</title></head><body><h1> Big <em>news</em> </h1></body></html>")

	title, _ := doc.Find("title", nil)
	if got := title.Text(); got != "Hello <World>" {
		t.Errorf("title text = %q", got)
	}

	h1, _ := doc.Find("h1", nil)
	if got := h1.Text(); got != "Big news" {
		t.Errorf("h1 text = %q", got)
	}
}

func TestSerialization(t *testing.T) {
	doc := mustParse(t, `<p itemtype="https://schema.org/Thing">x</p>`)

	if !strings.Contains(doc.HTML(), "schema.org") {
		t.Errorf("serialized document lost attribute: %s", doc.HTML())
	}
	if doc.Size() != len(doc.HTML()) {
		t.Errorf("Size() = %d, want %d", doc.Size(), len(doc.HTML()))
	}
	if !strings.HasPrefix(doc.HTML(), "<html><head></head><body>") {
		t.Errorf("expected repaired document, got %s", doc.HTML())
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errFailingRead }

var errFailingRead = errors.New("read failed")

func TestParse_ReadError(t *testing.T) {
	if _, err := Parse(failingReader{}); err == nil {
		t.Fatal("expected error, got nil")
	}
}
