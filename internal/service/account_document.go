package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"
)

const (
	// SpotifyProviderID marks sources whose credential is a Spotify refresh token.
	SpotifyProviderID = "15"
	TuneInProviderID  = "25"

	accountRootElement = "account"
	xmlDeclaration     = `version="1.0" encoding="UTF-8" standalone="yes"`
)

var errNoAccountRoot = errors.New("document has no root element")

// AccountDocument is a parsed full-account document. Callers own the value they
// receive and may patch it freely.
type AccountDocument struct {
	doc *etree.Document
}

// ParseAccountDocument parses raw upstream XML. The root element must be <account>.
// Comments and directives outside the root are dropped and the declaration is
// rewritten as standalone UTF-8; everything under the root is kept as received.
func ParseAccountDocument(raw []byte) (*AccountDocument, error) {
	in := etree.NewDocument()
	in.ReadSettings.CharsetReader = charset.NewReaderLabel
	if err := in.ReadFromBytes(raw); err != nil {
		return nil, fmt.Errorf("parse account document: %w", err)
	}

	var root *etree.Element
	for _, tok := range in.Child {
		switch t := tok.(type) {
		case *etree.Element:
			if root != nil {
				return nil, fmt.Errorf("unexpected second root element <%s>", t.FullTag())
			}
			root = t
		case *etree.CharData:
			if !t.IsWhitespace() {
				return nil, errors.New("text outside root element")
			}
		}
	}
	if root == nil {
		return nil, errNoAccountRoot
	}
	if root.FullTag() != accountRootElement {
		return nil, fmt.Errorf("unexpected root element <%s>", root.FullTag())
	}

	out := etree.NewDocument()
	out.CreateProcInst("xml", xmlDeclaration)
	out.SetRoot(root)
	return &AccountDocument{doc: out}, nil
}

func (d *AccountDocument) ID() string {
	return d.doc.Root().SelectAttrValue("id", "")
}

// Sources lists the <sources><source> entries in document order. A missing or empty list yields nil.
func (d *AccountDocument) Sources() []*SourceEntry {
	nodes := d.doc.Root().FindElements("sources/source")
	if len(nodes) == 0 {
		return nil
	}
	out := make([]*SourceEntry, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, &SourceEntry{el: n})
	}
	return out
}

func (d *AccountDocument) Clone() *AccountDocument {
	return &AccountDocument{doc: d.doc.Copy()}
}

func (d *AccountDocument) Bytes() []byte {
	b, err := d.doc.WriteToBytes()
	if err != nil {
		return nil
	}
	return b
}

// SourceEntry is one linked music-service account inside an AccountDocument.
type SourceEntry struct {
	el *etree.Element
}

func (s *SourceEntry) ID() string {
	return s.el.SelectAttrValue("id", "")
}

func (s *SourceEntry) ProviderID() string {
	return childText(s.el, "sourceproviderid")
}

func (s *SourceEntry) Username() string {
	return childText(s.el, "username")
}

// Credential returns nil when the source carries no <credential>.
func (s *SourceEntry) Credential() *SourceCredential {
	el := s.el.SelectElement("credential")
	if el == nil {
		return nil
	}
	return &SourceCredential{el: el}
}

type SourceCredential struct {
	el *etree.Element
}

func (c *SourceCredential) Type() string {
	return c.el.SelectAttrValue("type", "")
}

func (c *SourceCredential) Value() string {
	return strings.TrimSpace(c.el.Text())
}

// SetValue replaces the credential text and keeps the type attribute.
func (c *SourceCredential) SetValue(v string) {
	c.el.SetText(v)
}

func childText(parent *etree.Element, tag string) string {
	el := parent.SelectElement(tag)
	if el == nil {
		return ""
	}
	return strings.TrimSpace(el.Text())
}
