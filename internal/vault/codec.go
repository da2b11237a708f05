package vault

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/sli3en/pwgen/internal/primitives"
)

// marshalPlaintext renders pt as the compact inner JSON spec.md §4.9
// requires ("," / ":" separators, no indentation) ahead of encryption.
func marshalPlaintext(pt Plaintext) ([]byte, error) {
	shape := plaintextShape{
		Capsule:      primitives.EncodeBytes(pt.Capsule[:]),
		Created:      pt.Created,
		Updated:      pt.Updated,
		SiteIDPolicy: string(pt.SiteIDPolicy),
		Records:      make(map[string]recordShape, len(pt.Records)),
	}
	shape.Algo.Version = pt.AlgoVersion
	for key, rec := range pt.Records {
		shape.Records[key] = recordShape{
			SiteID:  rec.SiteID,
			Login:   rec.Login,
			V:       rec.V,
			C:       rec.C,
			RSeed:   hex.EncodeToString(rec.RSeed[:]),
			Policy:  rec.Policy,
			Created: rec.Created,
			Notes:   rec.Notes,
		}
	}
	return json.Marshal(shape)
}

// unmarshalPlaintext parses the decrypted inner JSON back into Plaintext.
func unmarshalPlaintext(data []byte) (Plaintext, error) {
	var shape plaintextShape
	if err := json.Unmarshal(data, &shape); err != nil {
		return Plaintext{}, fmt.Errorf("vault: decode plaintext: %w", err)
	}
	capsule, err := primitives.DecodeBytes(shape.Capsule)
	if err != nil {
		return Plaintext{}, fmt.Errorf("vault: decode capsule: %w", err)
	}
	pt := Plaintext{
		Created:      shape.Created,
		Updated:      shape.Updated,
		AlgoVersion:  shape.Algo.Version,
		SiteIDPolicy: siteIDPolicyOrDefault(shape.SiteIDPolicy),
		Records:      make(map[string]SiteRecord, len(shape.Records)),
	}
	copy(pt.Capsule[:], capsule)

	for key, rs := range shape.Records {
		rseed, err := hex.DecodeString(rs.RSeed)
		if err != nil || len(rseed) != 16 {
			return Plaintext{}, fmt.Errorf("vault: decode rseed for %q: invalid hex", key)
		}
		rec := SiteRecord{
			SiteID:  rs.SiteID,
			Login:   rs.Login,
			V:       rs.V,
			C:       rs.C,
			Policy:  rs.Policy,
			Created: rs.Created,
			Notes:   rs.Notes,
		}
		copy(rec.RSeed[:], rseed)
		pt.Records[key] = rec
	}
	return pt, nil
}
