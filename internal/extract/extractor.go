// Package extract produces raw text from input documents. Plain text files
// are decoded as-is; EPUB packages have their content documents stripped of
// markup and joined.
package extract

import (
    "errors"
    "fmt"
    "os"
    "path/filepath"
    "strings"
    "unicode/utf8"

    "golang.org/x/text/encoding"
    "golang.org/x/text/encoding/unicode"
    "golang.org/x/text/transform"

    "github.com/hyperifyio/sightwords/internal/epub"
)

var (
    // ErrUnsupportedFormat is returned for extensions other than .txt and .epub.
    ErrUnsupportedFormat = errors.New("unsupported file type")
    // ErrRead is returned when the input cannot be opened, read or decoded.
    ErrRead = errors.New("read error")
    // ErrFormat is returned when an EPUB package is malformed, has no content
    // documents, or its documents carry no visible text.
    ErrFormat = errors.New("format error")
)

// Extractor converts a document on disk into raw text. Document.Title is
// filled when the format carries one.
type Extractor interface {
    Extract(path string) (Document, error)
    // Name identifies the variant in logs.
    Name() string
}

// ForPath selects an Extractor by file extension, case-insensitively. It
// never touches the file.
func ForPath(path string) (Extractor, error) {
    switch ext := strings.ToLower(filepath.Ext(path)); ext {
    case ".txt":
        return PlainText{}, nil
    case ".epub":
        return EPUB{}, nil
    default:
        if ext == "" {
            ext = "(none)"
        }
        return nil, fmt.Errorf("%w: %s: extension %s, want .txt or .epub", ErrUnsupportedFormat, path, ext)
    }
}

// PlainText reads a UTF-8 text file. A UTF-8 or UTF-16 byte order mark is
// honored and removed.
type PlainText struct{}

func (PlainText) Name() string { return "text" }

func (PlainText) Extract(path string) (Document, error) {
    raw, err := os.ReadFile(path)
    if err != nil {
        return Document{}, fmt.Errorf("%w: %v", ErrRead, err)
    }
    text, err := decodeText(path, raw)
    if err != nil {
        return Document{}, err
    }
    return Document{Text: text}, nil
}

func decodeText(path string, raw []byte) (string, error) {
    // Nop keeps BOM-less input byte-for-byte so invalid UTF-8 is detectable.
    dec := unicode.BOMOverride(encoding.Nop.NewDecoder())
    out, _, err := transform.Bytes(dec, raw)
    if err != nil {
        return "", fmt.Errorf("%w: %s: decode: %v", ErrRead, path, err)
    }
    if !utf8.Valid(out) {
        return "", fmt.Errorf("%w: %s: not valid UTF-8 text", ErrRead, path)
    }
    return string(out), nil
}

// EPUB extracts the visible text of every content document in an EPUB
// package, in reading order, separated by blank lines. The title is the
// package dc:title, falling back to the first document <title>.
type EPUB struct{}

func (EPUB) Name() string { return "epub" }

func (EPUB) Extract(path string) (Document, error) {
    f, err := os.Open(path)
    if err != nil {
        return Document{}, fmt.Errorf("%w: %v", ErrRead, err)
    }
    defer f.Close()
    st, err := f.Stat()
    if err != nil {
        return Document{}, fmt.Errorf("%w: %v", ErrRead, err)
    }
    book, err := epub.NewReader(f, st.Size())
    if err != nil {
        return Document{}, fmt.Errorf("%w: %s: %v", ErrFormat, path, err)
    }
    docs := book.Documents()
    if len(docs) == 0 {
        return Document{}, fmt.Errorf("%w: %s: no content documents", ErrFormat, path)
    }
    out := Document{Title: book.Package.Title}
    parts := make([]string, 0, len(docs))
    for _, d := range docs {
        raw, err := book.ReadFile(d.Href)
        if err != nil {
            return Document{}, fmt.Errorf("%w: %s: %s: %v", ErrFormat, path, d.Href, err)
        }
        var doc Document
        if d.IsXHTML() {
            doc = FromXHTML(raw)
        } else {
            doc = FromHTML(raw)
        }
        if out.Title == "" {
            out.Title = doc.Title
        }
        if doc.Text != "" {
            parts = append(parts, doc.Text)
        }
    }
    if len(parts) == 0 {
        return Document{}, fmt.Errorf("%w: %s: no extractable text", ErrFormat, path)
    }
    out.Text = strings.Join(parts, "\n\n")
    return out, nil
}
