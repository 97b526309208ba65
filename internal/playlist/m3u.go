// SPDX-License-Identifier: MIT

// Package playlist renders the deep-link M3U document.
package playlist

import (
	"bytes"
	"fmt"
	"io"
)

type Item struct {
	Name  string
	TvgID string
	Group string
	URL   string
}

func WriteM3U(w io.Writer, items []Item) error {
	buf := &bytes.Buffer{}
	buf.WriteString("#EXTM3U\n")
	for _, it := range items {
		buf.WriteString(fmt.Sprintf(
			`#EXTINF:-1 tvg-id="%s" tvg-name="%s" tvg-logo="" group-title="%s",%s`+"\n",
			it.TvgID, it.Name, it.Group, it.Name,
		))
		buf.WriteString(it.URL + "\n")
	}
	_, err := io.Copy(w, buf)
	return err
}
