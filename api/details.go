package api

import "encoding/xml"

// Details is a free-form block carried through from the raw record with its
// original key order intact. Element order is significant in the output, so
// the fields are an ordered list rather than a map.
type Details struct {
	Fields []DetailField
}

// DetailField is one key/value pair. Value is a string scalar, a nested
// Details block, or a []any slice rendered as repeated elements.
type DetailField struct {
	Name  string
	Value any
}

func (d Details) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, f := range d.Fields {
		if err := encodeDetail(e, f.Name, f.Value); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

func encodeDetail(e *xml.Encoder, name string, value any) error {
	start := xml.StartElement{Name: xml.Name{Local: name}}
	switch v := value.(type) {
	case Details:
		return v.MarshalXML(e, start)
	case *Details:
		return v.MarshalXML(e, start)
	case []any:
		for _, item := range v {
			if err := encodeDetail(e, name, item); err != nil {
				return err
			}
		}
		return nil
	default:
		return e.EncodeElement(v, start)
	}
}
