package shortid

import (
	"crypto/rand"
	"encoding/base64"
)

// DefaultLength 是随机字节数，编码后得到 11 个字符的短 ID
const DefaultLength = 8

// Generate 生成一个 URL 安全的随机短 ID
// 使用加密安全的随机源，base64url 编码，不带填充符
// 本身不保证唯一性，唯一性由数据库的唯一索引兜底
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// EncodedLength 返回 length 个随机字节编码后的短 ID 长度
func EncodedLength(length int) int {
	if length <= 0 {
		length = DefaultLength
	}
	return base64.RawURLEncoding.EncodedLen(length)
}
