package validator

import "strings"

type hint struct {
	needles []string
	text    string
}

// hints are matched in order against the lower-cased message; the first hit wins.
var hints = []hint{
	{[]string{"idshort"}, "idShort must start with a letter and contain only letters, digits, '_' or '-'. Run repair to sanitize it."},
	{[]string{"valuetype"}, "A property needs a value type. Set it explicitly or give the element a data type it can be derived from."},
	{[]string{"contenttype"}, "A file needs a MIME type such as application/pdf. Repair infers one from the file extension."},
	{[]string{"langstring", "language"}, "Text blocks need at least one language-tagged entry with a valid tag such as 'en'."},
	{[]string{"keys", "key"}, "A reference needs at least one key with a type and a value."},
	{[]string{"minitems", "array must have at least", "incomplete content", "expected"}, "Empty lists and wrappers are not allowed. Remove the wrapper or add an entry."},
	{[]string{"minlength", "string length must be greater", "empty", "value"}, "The field is empty. Enter a value or let repair fill a placeholder."},
}

// Hint returns a human-readable suggestion for a schema message, or "".
func Hint(message string) string {
	m := strings.ToLower(message)
	for _, h := range hints {
		for _, n := range h.needles {
			if strings.Contains(m, n) {
				return h.text
			}
		}
	}
	return ""
}
