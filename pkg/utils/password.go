package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// NewSalt 每个用户一个随机 token，仅求唯一性，不做密码学用途
func NewSalt() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// HashPassword 定长单向散列：sha256(password + salt)，salt 单独入库
func HashPassword(password, salt string) string {
	sum := sha256.Sum256([]byte(password + salt))
	return hex.EncodeToString(sum[:])
}
