// Package epub reads the container structure of an EPUB 2 or EPUB 3 file:
// META-INF/container.xml, the OPF package document, its manifest and spine.
// It does not interpret content documents; callers receive raw bytes.
package epub

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"golang.org/x/net/html/charset"
)

// ErrInvalid is returned when the archive is not a readable EPUB container.
var ErrInvalid = errors.New("invalid epub")

const containerPath = "META-INF/container.xml"

// ManifestItem is one resource declared in the package manifest.
type ManifestItem struct {
	ID         string
	Href       string // archive path, resolved against the OPF location
	MediaType  string
	Properties []string
}

// HasProperty reports whether the item declares the given EPUB 3 property.
func (m ManifestItem) HasProperty(p string) bool {
	for _, v := range m.Properties {
		if v == p {
			return true
		}
	}
	return false
}

// IsXHTML reports whether the item is an XML-serialized content document.
func (m ManifestItem) IsXHTML() bool {
	return strings.EqualFold(strings.TrimSpace(m.MediaType), "application/xhtml+xml")
}

// IsDocument reports whether the item is an (X)HTML content document.
func (m ManifestItem) IsDocument() bool {
	switch strings.ToLower(strings.TrimSpace(m.MediaType)) {
	case "application/xhtml+xml", "text/html":
		return true
	}
	return false
}

// SpineItem references a manifest item in reading order. Non-linear items
// are still content and are read like the rest.
type SpineItem struct {
	IDRef string
}

// Package is the parsed OPF document.
type Package struct {
	Title    string
	Manifest []ManifestItem
	Spine    []SpineItem
}

// Book is an opened EPUB archive.
type Book struct {
	Package Package
	files   map[string]*zip.File
}

// NewReader parses the container from r. The caller owns r and must keep it
// open while reading documents.
func NewReader(r io.ReaderAt, size int64) (*Book, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	b := &Book{files: make(map[string]*zip.File, len(zr.File))}
	for _, f := range zr.File {
		b.files[f.Name] = f
	}
	opfPath, err := b.rootfile()
	if err != nil {
		return nil, err
	}
	raw, err := b.ReadFile(opfPath)
	if err != nil {
		return nil, fmt.Errorf("%w: package document: %v", ErrInvalid, err)
	}
	pkg, err := parsePackage(raw, path.Dir(opfPath))
	if err != nil {
		return nil, err
	}
	b.Package = pkg
	return b, nil
}

// ReadFile returns the uncompressed contents of an archive member.
func (b *Book) ReadFile(name string) ([]byte, error) {
	f, ok := b.files[name]
	if !ok {
		return nil, fmt.Errorf("%s: not found in archive", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// Documents returns the content documents: spine order first, then any
// remaining manifest documents in manifest order. The EPUB 3 navigation
// document is skipped.
func (b *Book) Documents() []ManifestItem {
	byID := make(map[string]ManifestItem, len(b.Package.Manifest))
	for _, m := range b.Package.Manifest {
		byID[m.ID] = m
	}
	seen := map[string]struct{}{}
	out := make([]ManifestItem, 0, len(b.Package.Manifest))
	add := func(m ManifestItem) {
		if _, ok := seen[m.ID]; ok {
			return
		}
		if !m.IsDocument() || m.HasProperty("nav") {
			return
		}
		seen[m.ID] = struct{}{}
		out = append(out, m)
	}
	for _, s := range b.Package.Spine {
		if m, ok := byID[s.IDRef]; ok {
			add(m)
		}
	}
	for _, m := range b.Package.Manifest {
		add(m)
	}
	return out
}

type containerXML struct {
	Rootfiles []struct {
		FullPath  string `xml:"full-path,attr"`
		MediaType string `xml:"media-type,attr"`
	} `xml:"rootfiles>rootfile"`
}

func (b *Book) rootfile() (string, error) {
	raw, err := b.ReadFile(containerPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	var c containerXML
	if err := decodeXML(raw, &c); err != nil {
		return "", fmt.Errorf("%w: parse container: %v", ErrInvalid, err)
	}
	for _, rf := range c.Rootfiles {
		if rf.MediaType != "" && rf.MediaType != "application/oebps-package+xml" {
			continue
		}
		if p := strings.TrimSpace(rf.FullPath); p != "" {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: container lists no package document", ErrInvalid)
}

type opfXML struct {
	Metadata struct {
		Titles []string `xml:"title"`
	} `xml:"metadata"`
	Items []struct {
		ID         string `xml:"id,attr"`
		Href       string `xml:"href,attr"`
		MediaType  string `xml:"media-type,attr"`
		Properties string `xml:"properties,attr"`
	} `xml:"manifest>item"`
	Itemrefs []struct {
		IDRef string `xml:"idref,attr"`
	} `xml:"spine>itemref"`
}

func parsePackage(raw []byte, base string) (Package, error) {
	var doc opfXML
	if err := decodeXML(raw, &doc); err != nil {
		return Package{}, fmt.Errorf("%w: parse package document: %v", ErrInvalid, err)
	}
	var pkg Package
	for _, t := range doc.Metadata.Titles {
		if t = strings.TrimSpace(t); t != "" {
			pkg.Title = t
			break
		}
	}
	for _, it := range doc.Items {
		pkg.Manifest = append(pkg.Manifest, ManifestItem{
			ID:         it.ID,
			Href:       resolveHref(base, it.Href),
			MediaType:  it.MediaType,
			Properties: strings.Fields(it.Properties),
		})
	}
	for _, ref := range doc.Itemrefs {
		pkg.Spine = append(pkg.Spine, SpineItem{IDRef: ref.IDRef})
	}
	return pkg, nil
}

// resolveHref maps a manifest href, which is a URL relative to the OPF file,
// to an archive member name.
func resolveHref(base, href string) string {
	if i := strings.IndexAny(href, "#?"); i >= 0 {
		href = href[:i]
	}
	if u, err := url.PathUnescape(href); err == nil {
		href = u
	}
	if base == "." || base == "" {
		return path.Clean(href)
	}
	return path.Join(base, href)
}

// decodeXML unmarshals raw, accepting package documents declared in legacy
// encodings such as ISO-8859-1 or windows-1252.
func decodeXML(raw []byte, v any) error {
	d := xml.NewDecoder(bytes.NewReader(raw))
	d.CharsetReader = charset.NewReaderLabel
	return d.Decode(v)
}
