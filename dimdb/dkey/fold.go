package dkey

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// Fold converts a PascalCase key to the lowerCamel form used by the decoders:
// "ID" -> "id", "HPBase" -> "hpBase", "AvatarID" -> "avatarID".
func Fold(key string) string {
	if !strings.ContainsFunc(key, unicode.IsLower) {
		return strings.ToLower(key)
	}
	runes := []rune(key)
	leading := 0
	for leading < len(runes) && unicode.IsUpper(runes[leading]) {
		leading++
	}
	if leading > 1 {
		leading--
	}
	return strings.ToLower(string(runes[:leading])) + string(runes[leading:])
}

// FoldJSON rewrites every object key of a JSON document with Fold, keeping values verbatim.
func FoldJSON(raw []byte) ([]byte, error) {
	if !gjson.ValidBytes(raw) {
		return nil, errors.New("FoldJSON error: invalid JSON")
	}
	buffer := bytes.Buffer{}
	buffer.Grow(len(raw))
	writeFolded(&buffer, gjson.ParseBytes(raw))
	return buffer.Bytes(), nil
}

func writeFolded(buffer *bytes.Buffer, value gjson.Result) {
	switch {
	case value.IsObject():
		buffer.WriteByte('{')
		first := true
		value.ForEach(func(key, item gjson.Result) bool {
			if !first {
				buffer.WriteByte(',')
			}
			first = false
			quoted, _ := json.Marshal(Fold(key.String()))
			buffer.Write(quoted)
			buffer.WriteByte(':')
			writeFolded(buffer, item)
			return true
		})
		buffer.WriteByte('}')
	case value.IsArray():
		buffer.WriteByte('[')
		first := true
		value.ForEach(func(_, item gjson.Result) bool {
			if !first {
				buffer.WriteByte(',')
			}
			first = false
			writeFolded(buffer, item)
			return true
		})
		buffer.WriteByte(']')
	default:
		buffer.WriteString(value.Raw)
	}
}
