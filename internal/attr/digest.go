package attr

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
)

// CatalogVersion is the version of the catalog document layout hashed by
// CatalogDigest. Bump it when the document shape changes.
const CatalogVersion = "1"

// DomainCatalog prefixes the digest input. The version suffix allows a future
// algorithm change without colliding with old digests.
const DomainCatalog = "irattrs/catalog/v1"

var catalogDigest = sync.OnceValue(func() string {
	d, err := DigestOf(Infos())
	if err != nil {
		// Every table value is a string, so canonical marshaling cannot fail.
		panic(err)
	}
	return d
})

// CatalogDigest returns the hex SHA-256 digest of the registry table.
// Equal digests mean equal tables, entry for entry and in the same order.
func CatalogDigest() string {
	return catalogDigest()
}

// DigestOf computes the catalog digest of an arbitrary ordered list of entries,
// e.g. a snapshot read back from storage.
func DigestOf(infos []Info) (string, error) {
	canonical, err := MarshalCanonical(catalogDocument(infos))
	if err != nil {
		return "", fmt.Errorf("catalog digest: %w", err)
	}
	return hashWithDomain(DomainCatalog, canonical), nil
}

func catalogDocument(infos []Info) map[string]any {
	attrs := make([]any, len(infos))
	for i, info := range infos {
		row := map[string]any{
			"identifier":  info.Identifier,
			"name":        info.Name,
			"description": info.Description,
		}
		if shape, ok := info.Shape(); ok {
			row["value_shape"] = shape
		}
		attrs[i] = row
	}
	return map[string]any{
		"version":    CatalogVersion,
		"attributes": attrs,
	}
}

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
