package transxchange

import (
	"encoding/xml"
	"strings"
)

// LocatedText is element text along with the 1-based line the element starts on
type LocatedText struct {
	Text string
	Line int
}

func (l *LocatedText) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	line, _ := d.InputPos()

	var text string
	if err := d.DecodeElement(&text, &start); err != nil {
		return err
	}

	l.Text = strings.TrimSpace(text)
	l.Line = line

	return nil
}

// Value returns the text, or an empty string when the element was absent
func (l *LocatedText) Value() string {
	if l == nil {
		return ""
	}

	return l.Text
}
