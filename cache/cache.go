// Package cache factors the on-disk compiled-artifact bookkeeping out
// of delegate: the sibling .xml/.bin path convention, the read/write
// access checks that decide whether a cache hit or a cache write is
// even attempted, and a small binary sentinel file recording what
// produced the pair, so a stale or partially-written cache directory
// can be told apart from a genuine hit without trusting the target
// library's own (opaque) file format.
package cache

import (
	"encoding/binary"
	"os"
	"path/filepath"

	"github.com/anikulk/tflite-openvino-delegate/internal/diag"
)

const (
	manifestMagic   uint32 = 0x4F56444D // "OVDM"
	manifestVersion uint16 = 1
)

// Artifact names the sibling files a compiled model occupies under
// cacheDir for a given modelToken.
type Artifact struct {
	XML      string
	Bin      string
	Manifest string
}

// Paths returns the Artifact for cacheDir/modelToken. The caller is
// responsible for checking cacheDir/modelToken are both non-empty;
// Paths itself does not validate the cache is even configured.
func Paths(cacheDir, modelToken string) Artifact {
	base := filepath.Join(cacheDir, modelToken)
	return Artifact{
		XML:      base + ".xml",
		Bin:      base + ".bin",
		Manifest: base + ".ovdm",
	}
}

// Exists reports whether every file the Artifact names is present.
// A cache hit is only ever attempted when this is true; a partially
// written triple (e.g. a prior process crashed mid-serialize) is
// treated as a miss, not an error.
func (a Artifact) Exists() bool {
	for _, p := range []string{a.XML, a.Bin, a.Manifest} {
		if _, err := os.Stat(p); err != nil {
			return false
		}
	}
	return true
}

// CanRead reports whether cacheDir itself can be opened, the way the
// original implementation checks R_OK before attempting a cache hit
// rather than letting the target library fail the read. The artifact
// files inside it are not opened here.
func CanRead(cacheDir string) bool {
	f, err := os.Open(cacheDir)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

// CanWrite reports whether cacheDir can be written to, the way the
// original checks W_OK before attempting ov::serialize. A non-writable
// cache directory is a warning, never fatal: Init proceeds without a
// cache write.
func CanWrite(cacheDir string) bool {
	probe := filepath.Join(cacheDir, ".ovdelegate-write-probe")
	f, err := os.OpenFile(probe, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return false
	}
	f.Close()
	os.Remove(probe)
	return true
}

// Manifest records which model token and how many subgraph nodes a
// cached artifact was built from, so a future Init can sanity-check
// the pair it is about to trust without involving the target library.
type Manifest struct {
	ModelToken string
	NodeCount  int
}

// WriteManifest writes m to path in a small fixed binary framing,
// adapted from the teacher's graph serialization format (magic,
// version, then fields) rather than gob, keeping the cache sentinel
// self-describing without pulling in a generic encoder for three
// fields.
func WriteManifest(path string, m Manifest) error {
	f, err := os.Create(path)
	if err != nil {
		return diag.Wrap(err, diag.KindCacheWriteError, "cache: create manifest")
	}
	defer f.Close()

	if err := binary.Write(f, binary.LittleEndian, manifestMagic); err != nil {
		return diag.Wrap(err, diag.KindCacheWriteError, "cache: write manifest magic")
	}
	if err := binary.Write(f, binary.LittleEndian, manifestVersion); err != nil {
		return diag.Wrap(err, diag.KindCacheWriteError, "cache: write manifest version")
	}
	tokenBytes := []byte(m.ModelToken)
	if err := binary.Write(f, binary.LittleEndian, uint32(len(tokenBytes))); err != nil {
		return diag.Wrap(err, diag.KindCacheWriteError, "cache: write token length")
	}
	if _, err := f.Write(tokenBytes); err != nil {
		return diag.Wrap(err, diag.KindCacheWriteError, "cache: write token")
	}
	if err := binary.Write(f, binary.LittleEndian, uint32(m.NodeCount)); err != nil {
		return diag.Wrap(err, diag.KindCacheWriteError, "cache: write node count")
	}
	return nil
}

// ReadManifest reads back a Manifest written by WriteManifest. A
// magic/version mismatch is a CacheReadError, the same kind a
// corrupted or foreign file at that path would produce.
func ReadManifest(path string) (Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return Manifest{}, diag.Wrap(err, diag.KindCacheReadError, "cache: open manifest")
	}
	defer f.Close()

	var magic uint32
	if err := binary.Read(f, binary.LittleEndian, &magic); err != nil {
		return Manifest{}, diag.Wrap(err, diag.KindCacheReadError, "cache: read manifest magic")
	}
	if magic != manifestMagic {
		return Manifest{}, diag.Newf(diag.KindCacheReadError, "cache: bad manifest magic %x", magic)
	}
	var version uint16
	if err := binary.Read(f, binary.LittleEndian, &version); err != nil {
		return Manifest{}, diag.Wrap(err, diag.KindCacheReadError, "cache: read manifest version")
	}
	if version != manifestVersion {
		return Manifest{}, diag.Newf(diag.KindCacheReadError, "cache: unsupported manifest version %d", version)
	}
	var tokenLen uint32
	if err := binary.Read(f, binary.LittleEndian, &tokenLen); err != nil {
		return Manifest{}, diag.Wrap(err, diag.KindCacheReadError, "cache: read token length")
	}
	tokenBytes := make([]byte, tokenLen)
	if _, err := f.Read(tokenBytes); err != nil {
		return Manifest{}, diag.Wrap(err, diag.KindCacheReadError, "cache: read token")
	}
	var nodeCount uint32
	if err := binary.Read(f, binary.LittleEndian, &nodeCount); err != nil {
		return Manifest{}, diag.Wrap(err, diag.KindCacheReadError, "cache: read node count")
	}
	return Manifest{ModelToken: string(tokenBytes), NodeCount: int(nodeCount)}, nil
}
