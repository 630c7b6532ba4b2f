package extract

import (
    "archive/zip"
    "errors"
    "os"
    "path/filepath"
    "strings"
    "testing"
)

func TestFromHTML_SkipsNonContent(t *testing.T) {
    html := `<!doctype html>
    <html>
      <head><title>Chapter 1</title><style>p { color: red }</style></head>
      <body>
        <header>Running head</header>
        <nav>Contents</nav>
        <h1>Loomings</h1>
        <p>Call me Ishmael.</p>
        <script>var x = "hidden";</script>
        <footer>Page footer</footer>
      </body>
    </html>`

    doc := FromHTML([]byte(html))
    if doc.Title != "Chapter 1" {
        t.Fatalf("expected title 'Chapter 1', got %q", doc.Title)
    }
    if !strings.Contains(doc.Text, "Loomings") || !strings.Contains(doc.Text, "Call me Ishmael.") {
        t.Fatalf("expected heading and paragraph, got %q", doc.Text)
    }
    for _, unwanted := range []string{"Running head", "Contents", "hidden", "Page footer", "color"} {
        if strings.Contains(doc.Text, unwanted) {
            t.Fatalf("did not expect %q in %q", unwanted, doc.Text)
        }
    }
}

func TestFromHTML_SkipsHiddenElements(t *testing.T) {
    html := `<html><body>
      <p>visible</p>
      <p hidden>attr</p>
      <p aria-hidden="true">aria</p>
      <div style="display: none">styled</div>
      <span aria-hidden="false">shown</span>
    </body></html>`
    doc := FromHTML([]byte(html))
    if !strings.Contains(doc.Text, "visible") || !strings.Contains(doc.Text, "shown") {
        t.Fatalf("expected visible text, got %q", doc.Text)
    }
    for _, unwanted := range []string{"attr", "aria", "styled"} {
        if strings.Contains(doc.Text, unwanted) {
            t.Fatalf("did not expect %q in %q", unwanted, doc.Text)
        }
    }
}

func TestFromHTML_SeparatesBlocksAndKeepsInlineWords(t *testing.T) {
    html := `<html><body><p>one</p><p>two<br/>three</p><ul><li>four</li><li>fi<em>ve</em></li></ul><table><tr><td>six</td><td>seven</td></tr></table></body></html>`
    doc := FromHTML([]byte(html))
    fields := strings.Fields(doc.Text)
    want := []string{"one", "two", "three", "four", "five", "six", "seven"}
    if strings.Join(fields, " ") != strings.Join(want, " ") {
        t.Fatalf("fields=%q, want %q", fields, want)
    }
    if strings.Contains(doc.Text, "\n\n\n") {
        t.Fatalf("expected collapsed blank lines, got %q", doc.Text)
    }
}

func TestFromXHTML_SelfClosingHeadElements(t *testing.T) {
    cases := []struct {
        name  string
        input string
    }{
        {"empty title", `<html xmlns="http://www.w3.org/1999/xhtml"><head><title/><link rel="stylesheet" href="s.css"/></head><body><p>Call me Ishmael.</p></body></html>`},
        {"script src", `<html xmlns="http://www.w3.org/1999/xhtml"><head><script src="a.js"/></head><body><p>Call me Ishmael.</p></body></html>`},
        {"style", `<html><head><style type="text/css"/><meta charset="utf-8"/></head><body><p>Call me Ishmael.</p></body></html>`},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            doc := FromXHTML([]byte(tc.input))
            if doc.Text != "Call me Ishmael." {
                t.Fatalf("text=%q, want body paragraph", doc.Text)
            }
        })
    }
}

func TestFromXHTML_TitleEntitiesAndHidden(t *testing.T) {
    input := `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE html>
<html xmlns="http://www.w3.org/1999/xhtml" xmlns:epub="http://www.idpf.org/2007/ops">
  <head><title>Moby&nbsp;Dick</title></head>
  <body>
    <nav epub:type="toc"><ol><li>Contents</li></ol></nav>
    <h1>Loomings</h1>
    <p>Fish &amp; chips<br/>caf&eacute;</p>
    <p hidden="hidden">secret</p>
    <div style="display:none">styled</div>
  </body>
</html>`
    doc := FromXHTML([]byte(input))
    if doc.Title != "Moby\u00a0Dick" {
        t.Fatalf("title=%q", doc.Title)
    }
    want := "Loomings\n\nFish & chips\ncaf\u00e9"
    if doc.Text != want {
        t.Fatalf("text=%q, want %q", doc.Text, want)
    }
}

func TestFromXHTML_LegacyCharset(t *testing.T) {
    input := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><html><body><p>caf\xe9</p></body></html>"
    if doc := FromXHTML([]byte(input)); doc.Text != "caf\u00e9" {
        t.Fatalf("text=%q", doc.Text)
    }
}

func TestForPath(t *testing.T) {
    cases := []struct {
        path string
        want string
    }{
        {"book.txt", "text"},
        {"BOOK.TXT", "text"},
        {"dir/novel.epub", "epub"},
        {"Novel.EPub", "epub"},
    }
    for _, tc := range cases {
        ex, err := ForPath(tc.path)
        if err != nil {
            t.Fatalf("ForPath(%q): %v", tc.path, err)
        }
        if ex.Name() != tc.want {
            t.Fatalf("ForPath(%q)=%s, want %s", tc.path, ex.Name(), tc.want)
        }
    }
    for _, bad := range []string{"paper.pdf", "noext", "archive.epub.zip"} {
        if _, err := ForPath(bad); !errors.Is(err, ErrUnsupportedFormat) {
            t.Fatalf("ForPath(%q) err=%v, want ErrUnsupportedFormat", bad, err)
        }
    }
}

func TestPlainText_Extract(t *testing.T) {
    dir := t.TempDir()
    cases := []struct {
        name string
        raw  []byte
        want string
    }{
        {"utf8", []byte("The cat sat."), "The cat sat."},
        {"utf8 bom", []byte("\xef\xbb\xbfHello"), "Hello"},
        {"utf16le bom", []byte{0xff, 0xfe, 'H', 0, 'i', 0}, "Hi"},
        {"empty", []byte{}, ""},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            p := filepath.Join(dir, strings.ReplaceAll(tc.name, " ", "_")+".txt")
            if err := os.WriteFile(p, tc.raw, 0o644); err != nil {
                t.Fatalf("write: %v", err)
            }
            got, err := PlainText{}.Extract(p)
            if err != nil {
                t.Fatalf("Extract: %v", err)
            }
            if got.Text != tc.want || got.Title != "" {
                t.Fatalf("Extract=%+v, want text %q", got, tc.want)
            }
        })
    }
}

func TestPlainText_Errors(t *testing.T) {
    dir := t.TempDir()
    if _, err := (PlainText{}).Extract(filepath.Join(dir, "missing.txt")); !errors.Is(err, ErrRead) {
        t.Fatalf("missing file err=%v, want ErrRead", err)
    }
    bad := filepath.Join(dir, "latin1.txt")
    if err := os.WriteFile(bad, []byte("caf\xe9"), 0o644); err != nil {
        t.Fatalf("write: %v", err)
    }
    if _, err := (PlainText{}).Extract(bad); !errors.Is(err, ErrRead) {
        t.Fatalf("invalid utf-8 err=%v, want ErrRead", err)
    }
}

const fixtureContainer = `<?xml version="1.0"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles><rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/></rootfiles>
</container>`

func writeEPUB(t *testing.T, path string, files map[string]string) {
    t.Helper()
    f, err := os.Create(path)
    if err != nil {
        t.Fatalf("create: %v", err)
    }
    zw := zip.NewWriter(f)
    for name, content := range files {
        w, err := zw.Create(name)
        if err != nil {
            t.Fatalf("zip create %s: %v", name, err)
        }
        if _, err := w.Write([]byte(content)); err != nil {
            t.Fatalf("zip write %s: %v", name, err)
        }
    }
    if err := zw.Close(); err != nil {
        t.Fatalf("zip close: %v", err)
    }
    if err := f.Close(); err != nil {
        t.Fatalf("close: %v", err)
    }
}

func TestEPUB_Extract(t *testing.T) {
    p := filepath.Join(t.TempDir(), "book.epub")
    writeEPUB(t, p, map[string]string{
        "mimetype":               "application/epub+zip",
        "META-INF/container.xml": fixtureContainer,
        "OEBPS/content.opf": `<package xmlns="http://www.idpf.org/2007/opf" version="3.0">
  <manifest>
    <item id="toc" href="nav.xhtml" media-type="application/xhtml+xml" properties="nav"/>
    <item id="c2" href="c2.xhtml" media-type="application/xhtml+xml"/>
    <item id="c1" href="c1.xhtml" media-type="application/xhtml+xml"/>
  </manifest>
  <spine><itemref idref="c1"/><itemref idref="c2"/></spine>
</package>`,
        "OEBPS/nav.xhtml": `<html><body><ol><li>Table of contents entry</li></ol></body></html>`,
        "OEBPS/c1.xhtml":  `<html><head><title>One</title></head><body><p>First chapter.</p></body></html>`,
        "OEBPS/c2.xhtml":  `<html><body><p>Second chapter.</p></body></html>`,
    })

    doc, err := EPUB{}.Extract(p)
    if err != nil {
        t.Fatalf("Extract: %v", err)
    }
    if doc.Text != "First chapter.\n\nSecond chapter." {
        t.Fatalf("Extract=%q", doc.Text)
    }
    if doc.Title != "One" {
        t.Fatalf("title=%q, want fallback to first document title", doc.Title)
    }
}

func TestEPUB_ExtractSelfClosingTitle(t *testing.T) {
    p := filepath.Join(t.TempDir(), "book.epub")
    writeEPUB(t, p, map[string]string{
        "META-INF/container.xml": fixtureContainer,
        "OEBPS/content.opf": `<package xmlns="http://www.idpf.org/2007/opf" xmlns:dc="http://purl.org/dc/elements/1.1/" version="3.0">
  <metadata><dc:title>Moby-Dick</dc:title></metadata>
  <manifest>
    <item id="c1" href="c1.xhtml" media-type="application/xhtml+xml"/>
    <item id="c2" href="c2.html" media-type="text/html"/>
  </manifest>
  <spine><itemref idref="c1"/><itemref idref="c2"/></spine>
</package>`,
        "OEBPS/c1.xhtml": `<html xmlns="http://www.w3.org/1999/xhtml"><head><title/><script src="a.js"/></head><body><p>Call me Ishmael.</p></body></html>`,
        "OEBPS/c2.html":  `<html><head><title>Two</title></head><body><p>Some years ago.</p></body></html>`,
    })

    doc, err := EPUB{}.Extract(p)
    if err != nil {
        t.Fatalf("Extract: %v", err)
    }
    if doc.Text != "Call me Ishmael.\n\nSome years ago." {
        t.Fatalf("Extract=%q", doc.Text)
    }
    if doc.Title != "Moby-Dick" {
        t.Fatalf("title=%q, want package title", doc.Title)
    }
}

func TestEPUB_Errors(t *testing.T) {
    dir := t.TempDir()

    if _, err := (EPUB{}).Extract(filepath.Join(dir, "missing.epub")); !errors.Is(err, ErrRead) {
        t.Fatalf("missing err=%v, want ErrRead", err)
    }

    corrupt := filepath.Join(dir, "corrupt.epub")
    if err := os.WriteFile(corrupt, []byte("not a zip"), 0o644); err != nil {
        t.Fatalf("write: %v", err)
    }
    if _, err := (EPUB{}).Extract(corrupt); !errors.Is(err, ErrFormat) {
        t.Fatalf("corrupt err=%v, want ErrFormat", err)
    }

    empty := filepath.Join(dir, "empty.epub")
    writeEPUB(t, empty, map[string]string{
        "META-INF/container.xml": fixtureContainer,
        "OEBPS/content.opf":      `<package version="2.0"><manifest><item id="css" href="s.css" media-type="text/css"/></manifest><spine/></package>`,
    })
    if _, err := (EPUB{}).Extract(empty); !errors.Is(err, ErrFormat) {
        t.Fatalf("no documents err=%v, want ErrFormat", err)
    }

    images := filepath.Join(dir, "images.epub")
    writeEPUB(t, images, map[string]string{
        "META-INF/container.xml": fixtureContainer,
        "OEBPS/content.opf":      `<package version="3.0"><manifest><item id="c1" href="c1.xhtml" media-type="application/xhtml+xml"/></manifest><spine><itemref idref="c1"/></spine></package>`,
        "OEBPS/c1.xhtml":         `<html xmlns="http://www.w3.org/1999/xhtml"><head><title>Plates</title></head><body><img src="i.jpg" alt="whale"/></body></html>`,
    })
    if _, err := (EPUB{}).Extract(images); !errors.Is(err, ErrFormat) {
        t.Fatalf("image-only err=%v, want ErrFormat", err)
    }
}
