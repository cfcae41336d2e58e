package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// QuickHash быстрый хеш для произвольных данных
func QuickHash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// ShortHash короткий хеш (16 символов)
func ShortHash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:8])
}

// ProblemHash хеш канонического представления задачи для ключа кэша
func ProblemHash(canonical []byte) string {
	hash := sha256.Sum256(canonical)
	return hex.EncodeToString(hash[:16])
}

// BuildSolveKey строит ключ кэша для результата решения
func BuildSolveKey(problemHash, pivotRule string) string {
	return fmt.Sprintf("solve:%s:%s", pivotRule, problemHash)
}
