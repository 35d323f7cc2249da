// Package xmlout renders the assembled document trees as XML text.
package xmlout

import (
	"encoding/xml"
	"io"
	"os"
)

// Marshal renders a document with the XML declaration and 2-space indent.
func Marshal(doc any) ([]byte, error) {
	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(xml.Header)+len(body)+1)
	out = append(out, xml.Header...)
	out = append(out, body...)
	out = append(out, '\n')
	return out, nil
}

func Write(w io.Writer, doc any) error {
	data, err := Marshal(doc)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func WriteFile(path string, doc any) error {
	data, err := Marshal(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
