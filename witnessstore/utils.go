package witnessstore

/*
 * Licensed under LGPL-3.0.
 *
 * You can get a copy of the LGPL-3.0 License at
 *
 * https://www.gnu.org/licenses/lgpl-3.0.en.html
 *
 * @wcgcyx - https://github.com/wcgcyx
 */

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ipfs/go-datastore"
	"github.com/mus-format/mus-go/varint"
)

const (
	witnessKey  = "w"
	storedAtKey = "t"
	separator   = "/"
)

// getWitnessKey gets the datastore key for the witness with given digest.
func getWitnessKey(digest common.Hash) datastore.Key {
	digestStr := base64.URLEncoding.EncodeToString(digest.Bytes())
	return datastore.NewKey(witnessKey + separator + digestStr)
}

// getStoredAtKey gets the datastore key for the store time of the witness
// with given digest.
func getStoredAtKey(digest common.Hash) datastore.Key {
	digestStr := base64.URLEncoding.EncodeToString(digest.Bytes())
	return datastore.NewKey(storedAtKey + separator + digestStr)
}

// splitStoredAtKey splits the store time key to get the digest.
func splitStoredAtKey(key string) (common.Hash, error) {
	temp := strings.Split(strings.TrimPrefix(key, separator), separator)
	if len(temp) != 2 || temp[0] != storedAtKey {
		return common.Hash{}, fmt.Errorf("invalid stored at key %v", key)
	}
	data, err := base64.URLEncoding.DecodeString(temp[1])
	if err != nil {
		return common.Hash{}, err
	}
	if len(data) != common.HashLength {
		return common.Hash{}, fmt.Errorf("invalid digest length %v in key %v", len(data), key)
	}
	return common.BytesToHash(data), nil
}

// encodeStoredAt encodes the store time.
func encodeStoredAt(storedAt int64) []byte {
	bs := make([]byte, varint.SizeInt64(storedAt))
	varint.MarshalInt64(storedAt, bs)
	return bs
}

// decodeStoredAt decodes the store time.
func decodeStoredAt(bs []byte) (int64, error) {
	storedAt, _, err := varint.UnmarshalInt64(bs)
	return storedAt, err
}
