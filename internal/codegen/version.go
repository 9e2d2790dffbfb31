package codegen

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"

	"github.com/cockroachdb/errors"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/okra-platform/modelgen/internal/schema"
)

// Version returns the content-derived version of a schema: the SHA-256 of
// its canonical msgpack encoding (docs excluded, map keys sorted). Any change
// to a model name, a field's name, type or nullability, a directive or an
// enum value changes the version.
func Version(s *schema.Schema) (string, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)

	snapshot := struct {
		Models []schema.Model    `msgpack:"models"`
		Enums  []schema.EnumType `msgpack:"enums"`
	}{Models: s.Models, Enums: s.Enums}

	if err := enc.Encode(snapshot); err != nil {
		return "", errors.Wrap(err, "encode schema snapshot")
	}

	sum := sha256.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:]), nil
}
