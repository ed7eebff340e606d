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

package model

import (
	"regexp"
	"strings"
)

// IdShortPattern is the identifier pattern every idShort must match in both wire forms.
const IdShortPattern = `^[A-Za-z]([A-Za-z0-9_-]*[A-Za-z0-9])?$`

// FallbackIdShort replaces an idShort that sanitizes to nothing.
const FallbackIdShort = "Element"

var idShortRegex = regexp.MustCompile(IdShortPattern)

// IsValidIdShort reports whether s matches IdShortPattern.
func IsValidIdShort(s string) bool {
	return idShortRegex.MatchString(s)
}

// SanitizeIdShort coerces s into IdShortPattern: characters other than ASCII
// letters, digits, '_' and '-' are dropped, a leading non-letter gets the
// prefix "id", a trailing run of '_'/'-' is cut, and an empty result becomes
// FallbackIdShort. SanitizeIdShort(SanitizeIdShort(s)) == SanitizeIdShort(s).
func SanitizeIdShort(s string) string {
	var b strings.Builder
	for _, r := range s {
		if isIdShortRune(r) {
			b.WriteRune(r)
		}
	}
	out := strings.TrimRight(b.String(), "_-")
	if out == "" {
		return FallbackIdShort
	}
	if !isLetter(rune(out[0])) {
		out = "id" + out
	}
	return out
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdShortRune(r rune) bool {
	return isLetter(r) || (r >= '0' && r <= '9') || r == '_' || r == '-'
}
