package extract

import (
    "bytes"
    "strings"

    "golang.org/x/net/html"
)

// Document is the visible content of one markup document.
type Document struct {
    Title string
    Text  string
}

// FromHTML strips markup from an HTML document and returns its visible
// text. It walks <body>, or the whole tree when there is none, keeping block
// boundaries as line breaks and skipping non-content elements such as
// <script>, <style>, <nav>, <header> and <footer>.
func FromHTML(input []byte) Document {
    node, err := html.Parse(bytes.NewReader(input))
    if err != nil || node == nil {
        return Document{}
    }

    title := strings.TrimSpace(findTitle(node))
    content := findFirst(node, "body")
    if content == nil {
        content = node
    }
    var b strings.Builder
    collectText(&b, content)
    return Document{Title: title, Text: normalizeWhitespace(b.String())}
}

func findTitle(n *html.Node) string {
    head := findFirst(n, "head")
    if head == nil {
        return ""
    }
    t := findFirst(head, "title")
    if t == nil || t.FirstChild == nil {
        return ""
    }
    return t.FirstChild.Data
}

func findFirst(n *html.Node, tag string) *html.Node {
    var res *html.Node
    var dfs func(*html.Node)
    dfs = func(cur *html.Node) {
        if res != nil {
            return
        }
        if cur.Type == html.ElementNode && strings.EqualFold(cur.Data, tag) {
            res = cur
            return
        }
        for c := cur.FirstChild; c != nil; c = c.NextSibling {
            dfs(c)
            if res != nil {
                return
            }
        }
    }
    dfs(n)
    return res
}

func collectText(b *strings.Builder, n *html.Node) {
    if n.Type == html.ElementNode {
        if isHidden(n) || skipElement(n.Data) {
            return
        }
        b.WriteString(blockOpen(n.Data))
    }

    if n.Type == html.TextNode {
        b.WriteString(n.Data)
    }

    for c := n.FirstChild; c != nil; c = c.NextSibling {
        collectText(b, c)
    }

    if n.Type == html.ElementNode {
        b.WriteString(blockClose(n.Data))
    }
}

// skipElement reports elements whose subtree never contributes text.
func skipElement(name string) bool {
    switch strings.ToLower(name) {
    case "script", "style", "noscript", "nav", "header", "footer", "aside", "iframe", "template", "head":
        return true
    }
    return false
}

// blockOpen returns the separator written before an element's content.
func blockOpen(name string) string {
    switch strings.ToLower(name) {
    case "br", "hr", "p", "div", "section", "blockquote", "h1", "h2", "h3", "h4", "h5", "h6", "li", "ul", "ol", "tr", "pre":
        return "\n"
    case "td", "th":
        return " "
    }
    return ""
}

// blockClose returns the separator written after an element's content.
func blockClose(name string) string {
    switch strings.ToLower(name) {
    case "p", "h1", "h2", "h3", "h4", "h5", "h6":
        return "\n\n"
    case "li", "div", "section", "blockquote", "tr", "pre":
        return "\n"
    }
    return ""
}

// isHidden reports elements the reader never sees: the hidden attribute,
// aria-hidden="true" and inline display:none.
func isHidden(n *html.Node) bool {
    for _, attr := range n.Attr {
        if hiddenAttr(attr.Key, attr.Val) {
            return true
        }
    }
    return false
}

func hiddenAttr(key, val string) bool {
    val = strings.ToLower(strings.TrimSpace(val))
    switch strings.ToLower(key) {
    case "hidden":
        return true
    case "aria-hidden":
        return val == "true"
    case "style":
        return strings.Contains(strings.ReplaceAll(val, " ", ""), "display:none")
    }
    return false
}

func normalizeWhitespace(s string) string {
    // Collapse multiple spaces and blank lines
    lines := strings.Split(s, "\n")
    out := make([]string, 0, len(lines))
    for _, line := range lines {
        trimmed := strings.TrimSpace(line)
        if trimmed == "" {
            if len(out) > 0 && out[len(out)-1] == "" {
                continue
            }
            out = append(out, "")
            continue
        }
        out = append(out, collapseSpaces(trimmed))
    }
    for len(out) > 0 && out[0] == "" {
        out = out[1:]
    }
    for len(out) > 0 && out[len(out)-1] == "" {
        out = out[:len(out)-1]
    }
    return strings.Join(out, "\n")
}

func collapseSpaces(s string) string {
    var b strings.Builder
    lastSpace := false
    for _, r := range s {
        if r == ' ' || r == '\t' || r == '\r' || r == '\u00a0' {
            if !lastSpace {
                b.WriteByte(' ')
                lastSpace = true
            }
            continue
        }
        b.WriteRune(r)
        lastSpace = false
    }
    return b.String()
}
