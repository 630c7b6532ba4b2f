package extract

import (
    "bytes"
    "encoding/xml"
    "strings"

    "golang.org/x/net/html/charset"
)

// FromXHTML strips markup from an XHTML document. Unlike FromHTML it tokenizes
// the input as XML, so self-closing elements such as <title/> or
// <script src="a.js"/> end where they are written instead of swallowing the
// rest of the document. Named HTML entities are resolved and unclosed tags are
// tolerated; a syntax error keeps the text read up to that point.
func FromXHTML(input []byte) Document {
    d := xml.NewDecoder(bytes.NewReader(input))
    d.Strict = false
    d.AutoClose = xml.HTMLAutoClose
    d.Entity = xml.HTMLEntity
    d.CharsetReader = charset.NewReaderLabel

    type elem struct {
        name    string
        skipped bool
    }
    var (
        stack []elem
        text  strings.Builder
        title strings.Builder
    )
    skipping := func() bool { return len(stack) > 0 && stack[len(stack)-1].skipped }

    for {
        tok, err := d.Token()
        if err != nil {
            break
        }
        switch t := tok.(type) {
        case xml.StartElement:
            name := strings.ToLower(t.Name.Local)
            skipped := skipping() || skipElement(name)
            for _, a := range t.Attr {
                if hiddenAttr(a.Name.Local, a.Value) {
                    skipped = true
                }
            }
            stack = append(stack, elem{name: name, skipped: skipped})
            if !skipped {
                text.WriteString(blockOpen(name))
            }
        case xml.EndElement:
            if len(stack) == 0 {
                continue
            }
            top := stack[len(stack)-1]
            stack = stack[:len(stack)-1]
            if !top.skipped {
                text.WriteString(blockClose(top.name))
            }
        case xml.CharData:
            if len(stack) > 0 && stack[len(stack)-1].name == "title" && title.Len() == 0 {
                title.Write(t)
            }
            if !skipping() {
                text.Write(t)
            }
        }
    }
    return Document{Title: strings.TrimSpace(title.String()), Text: normalizeWhitespace(text.String())}
}
