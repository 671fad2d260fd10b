package utils

import (
	"crypto/rand"
	"encoding/binary"
	"math/big"
)

// RandomInt32 生成一个安全的随机32位整数
func RandomInt32() int32 {
	var num int32
	err := binary.Read(rand.Reader, binary.BigEndian, &num)
	if err != nil {
		panic("generate random int32 failed")
	}

	return num
}

const tempPasswordChars = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateTempPassword 生成指定长度的临时密码，用于租户门户开户
func GenerateTempPassword(length int) string {
	if length <= 0 {
		length = 12
	}

	result := make([]byte, length)
	max := big.NewInt(int64(len(tempPasswordChars)))
	for i := range result {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic("generate temp password failed")
		}
		result[i] = tempPasswordChars[n.Int64()]
	}
	return string(result)
}
