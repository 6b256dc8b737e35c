package adapters

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/Sena-ops/lintmerge/internal/model"
)

// cppcheck --xml --xml-version=2
type cppcheckError struct {
	ID        string `xml:"id,attr"`
	Severity  string `xml:"severity,attr"`
	Msg       string `xml:"msg,attr"`
	Locations []struct {
		File   string `xml:"file,attr"`
		Line   string `xml:"line,attr"`
		Column string `xml:"column,attr"`
	} `xml:"location"`
}

// ParseCppcheckBytes collects every <error> element in the document.
// Any decode failure discards the whole document and returns ErrParse.
func ParseCppcheckBytes(b []byte) ([]model.Issue, error) {
	dec := xml.NewDecoder(bytes.NewReader(b))
	out := make([]model.Issue, 0, 32)
	sawRoot := false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return []model.Issue{}, fmt.Errorf("%w: cppcheck xml: %v", ErrParse, err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		sawRoot = true
		if se.Name.Local != "error" {
			continue
		}
		var e cppcheckError
		if err := dec.DecodeElement(&e, &se); err != nil {
			return []model.Issue{}, fmt.Errorf("%w: cppcheck xml: %v", ErrParse, err)
		}
		if len(e.Locations) == 0 {
			continue
		}
		loc := e.Locations[0]
		rule := e.ID
		if rule == "" {
			rule = model.UnknownRule
		}
		out = append(out, model.Issue{
			File:     loc.File,
			Line:     safeLine(atoi(loc.Line)),
			Column:   safeLine(atoi(loc.Column)),
			Severity: model.ParseSeverity(e.Severity),
			Message:  e.Msg,
			Rule:     rule,
		})
	}
	if !sawRoot {
		return []model.Issue{}, fmt.Errorf("%w: cppcheck xml: no root element", ErrParse)
	}
	return out, nil
}
