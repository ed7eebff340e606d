/*******************************************************************************
* Copyright (C) 2026 the Eclipse BaSyx Authors and Fraunhofer IESE
*
* Permission is hereby granted, free of charge, to any person obtaining
* a copy of this software and associated documentation files (the
* "Software"), to deal in the Software without restriction, including
* without limitation the rights to use, copy, modify, merge, publish,
* distribute, sublicense, and/or sell copies of the Software, and to
* permit persons to whom the Software is furnished to do so, subject to
* the following conditions:
*
* The above copyright notice and this permission notice shall be
* included in all copies or substantial portions of the Software.
*
* THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
* EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
* MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
* NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT HOLDERS BE
* LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER IN AN ACTION
* OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN CONNECTION
* WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
*
* SPDX-License-Identifier: MIT
******************************************************************************/

package markup

import (
	"bytes"
	"strings"

	"github.com/antchfx/xmlquery"
)

const (
	declaration = `<?xml version="1.0" encoding="utf-8"?>`
	indentUnit  = "  "
)

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)

// Serialize renders a DOM as indented markup. The output depends only on the
// element structure, attributes and non-blank text, so serializing the parse
// of a serialized document reproduces it byte for byte.
func Serialize(n *xmlquery.Node) string {
	var buf bytes.Buffer
	buf.WriteString(declaration)
	buf.WriteString("\n")
	if n.Type == xmlquery.DocumentNode {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeNode(&buf, c, 0)
		}
	} else {
		writeNode(&buf, n, 0)
	}
	return buf.String()
}

func writeNode(w *bytes.Buffer, n *xmlquery.Node, depth int) {
	switch n.Type {
	case xmlquery.ElementNode:
		writeXMLElement(w, n, depth)
	case xmlquery.CommentNode:
		writeIndent(w, depth)
		w.WriteString("<!--")
		w.WriteString(n.Data)
		w.WriteString("-->\n")
	}
}

func writeXMLElement(w *bytes.Buffer, n *xmlquery.Node, depth int) {
	writeIndent(w, depth)
	w.WriteString("<")
	writeName(w, n)
	for _, attr := range n.Attr {
		w.WriteString(" ")
		if attr.Name.Space != "" {
			w.WriteString(attr.Name.Space)
			w.WriteString(":")
		}
		w.WriteString(attr.Name.Local)
		w.WriteString(`="`)
		w.WriteString(attrEscaper.Replace(attr.Value))
		w.WriteString(`"`)
	}

	if HasElementChildren(n) {
		w.WriteString(">\n")
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case xmlquery.ElementNode, xmlquery.CommentNode:
				writeNode(w, c, depth+1)
			case xmlquery.TextNode, xmlquery.CharDataNode:
				if text := strings.TrimSpace(c.Data); text != "" {
					writeIndent(w, depth+1)
					w.WriteString(textEscaper.Replace(text))
					w.WriteString("\n")
				}
			}
		}
		writeIndent(w, depth)
		w.WriteString("</")
		writeName(w, n)
		w.WriteString(">\n")
		return
	}

	text := textOf(n)
	if strings.TrimSpace(text) == "" {
		w.WriteString("/>\n")
		return
	}
	w.WriteString(">")
	w.WriteString(textEscaper.Replace(text))
	w.WriteString("</")
	writeName(w, n)
	w.WriteString(">\n")
}

func textOf(n *xmlquery.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.TextNode || c.Type == xmlquery.CharDataNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}

func writeName(w *bytes.Buffer, n *xmlquery.Node) {
	if n.Prefix != "" {
		w.WriteString(n.Prefix)
		w.WriteString(":")
	}
	w.WriteString(n.Data)
}

func writeIndent(w *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		w.WriteString(indentUnit)
	}
}
