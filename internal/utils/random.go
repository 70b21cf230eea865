package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const (
	letterBytes  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	numberBytes  = "0123456789"
	alphanumeric = letterBytes + numberBytes
)

func GenerateRandomString(length int) string {
	return generateRandom(length, alphanumeric)
}

func GenerateRandomNumericString(length int) string {
	return generateRandom(length, numberBytes)
}

func generateRandom(length int, charset string) string {
	result := make([]byte, length)
	charsetLength := big.NewInt(int64(len(charset)))

	for i := range result {
		num, _ := rand.Int(rand.Reader, charsetLength)
		result[i] = charset[num.Int64()]
	}

	return string(result)
}

func SecureRandomInt(max int) int {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(max)))
	return int(n.Int64())
}

// GenerateReferralCode returns an 8 character uppercase alphanumeric code
// with easily-confused characters substituted out.
func GenerateReferralCode() string {
	code := strings.ToUpper(GenerateRandomString(ReferralCodeLength))

	code = strings.ReplaceAll(code, "0", "2")
	code = strings.ReplaceAll(code, "O", "3")
	code = strings.ReplaceAll(code, "I", "4")
	code = strings.ReplaceAll(code, "L", "5")

	return code
}
