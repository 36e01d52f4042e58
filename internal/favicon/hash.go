package favicon

import (
	"bytes"
	"crypto/md5"  //nolint:gosec // MD5 is an identity hash here, not a security primitive
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"

	"github.com/spaolacci/murmur3"

	"github.com/glitchsec/osintkit/internal/model"
)

// base64LineLength is the MIME line width the search engines' MMH3
// convention uses when base64-encoding icon bytes.
const base64LineLength = 76

// Hash computes the three favicon digests for the given icon bytes.
// The result is deterministic and pure: the same bytes always produce
// the same fingerprint, on every platform.
func Hash(data []byte) model.Fingerprint {
	md5Sum := md5.Sum(data) //nolint:gosec // identity hash, see import comment
	shaSum := sha256.Sum256(data)

	return model.Fingerprint{
		MMH3:   int32(murmur3.Sum32(mimeBase64(data))), //nolint:gosec // int32 wrap is the Shodan convention
		MD5:    hex.EncodeToString(md5Sum[:]),
		SHA256: hex.EncodeToString(shaSum[:]),
		Size:   len(data),
	}
}

// FromMMH3 builds a fingerprint from a pre-computed MMH3 value, for
// pivoting on a hash obtained elsewhere. MD5/SHA256 are unknown in that
// case, so Censys searches are unavailable.
func FromMMH3(hash int32) model.Fingerprint {
	return model.Fingerprint{MMH3: hash}
}

// mimeBase64 encodes data as base64 wrapped in 76-column lines with a
// trailing newline. Empty input encodes to nothing, with no trailing
// newline.
func mimeBase64(data []byte) []byte {
	if len(data) == 0 {
		return nil
	}

	enc := base64.StdEncoding.EncodeToString(data)

	var buf bytes.Buffer
	buf.Grow(len(enc) + len(enc)/base64LineLength + 1)
	for len(enc) > base64LineLength {
		buf.WriteString(enc[:base64LineLength])
		buf.WriteByte('\n')
		enc = enc[base64LineLength:]
	}
	buf.WriteString(enc)
	buf.WriteByte('\n')

	return buf.Bytes()
}
