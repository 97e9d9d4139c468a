package format

import (
	"bytes"
	"encoding/xml"
)

// Attr is an attribute with a literal, possibly prefixed, name.
type Attr struct {
	Name  string
	Value string
}

// writer emits prefixed elements verbatim so namespace declarations stay on
// the root element instead of being repeated per node.
type writer struct {
	buf bytes.Buffer
	enc *xml.Encoder
	err error
}

func newWriter() *writer {
	w := &writer{}
	w.enc = xml.NewEncoder(&w.buf)
	return w
}

func startElement(name string, attrs []Attr) xml.StartElement {
	start := xml.StartElement{Name: xml.Name{Local: name}}
	for _, a := range attrs {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: a.Name}, Value: a.Value})
	}
	return start
}

func (w *writer) open(name string, attrs ...Attr) {
	if w.err != nil {
		return
	}
	w.err = w.enc.EncodeToken(startElement(name, attrs))
}

func (w *writer) close(name string) {
	if w.err != nil {
		return
	}
	w.err = w.enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: name}})
}

// element writes <name attrs>text</name>. Empty text writes nothing.
func (w *writer) element(name, text string, attrs ...Attr) {
	if text == "" || w.err != nil {
		return
	}
	w.open(name, attrs...)
	if w.err == nil {
		w.err = w.enc.EncodeToken(xml.CharData(text))
	}
	w.close(name)
}

// empty writes <name attrs></name>.
func (w *writer) empty(name string, attrs ...Attr) {
	w.open(name, attrs...)
	w.close(name)
}

func (w *writer) bytes() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	if err := w.enc.Flush(); err != nil {
		return nil, err
	}
	return w.buf.Bytes(), nil
}
