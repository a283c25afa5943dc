// Package artifact manages on-disk benchmark outputs: run directories,
// JSON result files, and a msgpack cache of completed runs keyed by
// input digest.
package artifact

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dsbench/internal/dass"
)

// Digest identifies a scenario plus run parameters.
type Digest [sha256.Size]byte

// String renders the digest as lowercase hex.
func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// IsZero reports whether the digest is unset.
func (d Digest) IsZero() bool {
	var z Digest
	return d == z
}

// DigestOf hashes the given byte chunks in order.
func DigestOf(parts ...[]byte) Digest {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
	}
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

// DocumentDigest derives a cache key from a scenario document and the
// run parameters that affect its results. The document is hashed via
// its canonical JSON encoding, so semantically identical documents
// share a key.
func DocumentDigest(doc *dass.Document, params ...string) (Digest, error) {
	var buf bytes.Buffer
	if err := doc.Encode(&buf); err != nil {
		return Digest{}, err
	}
	parts := [][]byte{buf.Bytes()}
	for _, p := range params {
		parts = append(parts, []byte{0}, []byte(p))
	}
	return DigestOf(parts...), nil
}

// NewRunDir creates a fresh timestamped directory under base and
// returns its path. Collisions within the same second get a numeric
// suffix.
func NewRunDir(base string) (string, error) {
	stamp := time.Now().Format("20060102-150405")
	for i := 0; ; i++ {
		name := "run-" + stamp
		if i > 0 {
			name = fmt.Sprintf("%s-%d", name, i)
		}
		dir := filepath.Join(base, name)
		err := os.Mkdir(dir, 0o755)
		if err == nil {
			return dir, nil
		}
		if !os.IsExist(err) {
			if mkErr := os.MkdirAll(base, 0o755); mkErr != nil {
				return "", mkErr
			}
			if err := os.Mkdir(dir, 0o755); err == nil {
				return dir, nil
			} else if !os.IsExist(err) {
				return "", err
			}
		}
	}
}

// WriteJSON writes v as indented JSON to path via a temp file and an
// atomic rename, so readers never observe a partial file.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	f, err := os.CreateTemp(filepath.Dir(path), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

// ReadJSON loads a JSON file written by WriteJSON into v.
func ReadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
