// SPDX-License-Identifier: MIT

// Package epg builds the XMLTV guide document.
package epg

import (
	"encoding/xml"
	"fmt"
	"io"
)

type TV struct {
	XMLName   xml.Name    `xml:"tv"`
	Generator string      `xml:"generator-info-name,attr,omitempty"`
	Channels  []Channel   `xml:"channel"`
	Programs  []Programme `xml:"programme"`
}

type Channel struct {
	ID          string   `xml:"id,attr"`
	DisplayName []string `xml:"display-name"`
}

type Programme struct {
	Start      string     `xml:"start,attr"`
	Stop       string     `xml:"stop,attr"`
	Channel    string     `xml:"channel,attr"`
	Title      Title      `xml:"title"`
	Desc       string     `xml:"desc,omitempty"`
	Categories []Category `xml:"category"`
	Live       *struct{}  `xml:"live,omitempty"`
}

type Title struct {
	Lang  string `xml:"lang,attr,omitempty"`
	Value string `xml:",chardata"`
}

type Category struct {
	Lang  string `xml:"lang,attr,omitempty"`
	Value string `xml:",chardata"`
}

const xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// WriteXMLTV serializes the guide, indented. If structured indentation
// fails, it falls back to compact output, which is identical modulo
// whitespace.
func WriteXMLTV(w io.Writer, tv *TV) error {
	out, err := xml.MarshalIndent(tv, "", "  ")
	if err != nil {
		if out, err = xml.Marshal(tv); err != nil {
			return fmt.Errorf("marshal xmltv: %w", err)
		}
	}
	if _, err := io.WriteString(w, xmlHeader); err != nil {
		return fmt.Errorf("write xmltv header: %w", err)
	}
	if _, err := w.Write(append(out, '\n')); err != nil {
		return fmt.Errorf("write xmltv body: %w", err)
	}
	return nil
}
