package project

import (
	"crypto/sha256"
)

// Digest - фиксированный 256 битный хеш (совместим с source.File.Hash)
type Digest [32]byte

// CacheKey строит ключ результата проверки: H( content || version ).
// Смена версии чекера инвалидирует все записи.
func CacheKey(content Digest, checkerVersion string) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	_, _ = h.Write([]byte(checkerVersion))
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
