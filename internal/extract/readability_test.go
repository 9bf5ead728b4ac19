package extract

import (
	"strings"
	"testing"
)

func TestReadability_TitlePrefersOpenGraph(t *testing.T) {
	page := `<html><head>
      <meta property="og:title" content="OG Title">
      <title>Doc Title</title>
    </head><body><article><p>Body text here.</p></article></body></html>`

	doc, err := Readability{}.Extract([]byte(page))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "OG Title" {
		t.Fatalf("expected og:title, got %q", doc.Title)
	}
}

func TestReadability_TitleFallbacks(t *testing.T) {
	doc, err := Readability{}.Extract([]byte(`<html><head><title> Doc Title </title></head><body><p>x</p></body></html>`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "Doc Title" {
		t.Fatalf("expected <title>, got %q", doc.Title)
	}

	doc, err = Readability{}.Extract([]byte(`<html><body><h1>Heading Title</h1><p>x</p></body></html>`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "Heading Title" {
		t.Fatalf("expected <h1>, got %q", doc.Title)
	}
}

func TestReadability_PicksDensestContainer(t *testing.T) {
	page := `<html><body>
      <div id="sidebar">
        <p><a href="/a">Link one</a> <a href="/b">Link two</a> <a href="/c">Link three</a></p>
      </div>
      <div id="content">
        <p>The first paragraph of the story has plenty of words in it.</p>
        <p>The second paragraph continues with more detail about the topic.</p>
      </div>
      <footer><p>Copyright notice</p></footer>
    </body></html>`

	doc, err := Readability{}.Extract([]byte(page))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "The first paragraph of the story has plenty of words in it.\n\nThe second paragraph continues with more detail about the topic."
	if doc.Text != want {
		t.Fatalf("unexpected text:\n got %q\nwant %q", doc.Text, want)
	}
}

func TestReadability_DropsNoiseAndNestedDuplicates(t *testing.T) {
	page := `<html><body><article>
      <script>var x = 1;</script>
      <nav><p>Menu</p></nav>
      <h2>Section</h2>
      <ul><li><p>Nested paragraph in item</p></li></ul>
      <p>Closing words.</p>
    </article></body></html>`

	doc, err := Readability{}.Extract([]byte(page))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(doc.Text, "var x") || strings.Contains(doc.Text, "Menu") {
		t.Fatalf("expected noise removed, got %q", doc.Text)
	}
	if strings.Count(doc.Text, "Nested paragraph in item") != 1 {
		t.Fatalf("expected nested block once, got %q", doc.Text)
	}
	if doc.Text != "Section\n\nNested paragraph in item\n\nClosing words." {
		t.Fatalf("unexpected text: %q", doc.Text)
	}
}

func TestReadability_MinBlockChars(t *testing.T) {
	page := `<html><body><article>
      <h2>Hi</h2><p>ok</p><p>This block is long enough to keep.</p>
    </article></body></html>`

	doc, err := Readability{MinBlockChars: 10}.Extract([]byte(page))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text != "Hi\n\nThis block is long enough to keep." {
		t.Fatalf("unexpected text: %q", doc.Text)
	}
}

func TestReadability_BareTextFallback(t *testing.T) {
	doc, err := Readability{}.Extract([]byte(`<html><body><div>just some text</div></body></html>`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text != "just some text" {
		t.Fatalf("unexpected text: %q", doc.Text)
	}
}
