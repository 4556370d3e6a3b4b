package utils

import (
	"crypto/md5"
	"encoding/hex"
	"strings"

	"github.com/mayagamaleldin/graduationproject/models"
)

// CalculateMD5 returns the lower-case hex MD5 of input.
func CalculateMD5(input string) string {
	hasher := md5.New()
	hasher.Write([]byte(input))
	return hex.EncodeToString(hasher.Sum(nil))
}

// FingerprintRecord identifies a raw record by its name, job and posts.
// Re-running a batch over the same export yields the same fingerprints.
func FingerprintRecord(rec models.RawUserRecord) string {
	var b strings.Builder
	b.WriteString(rec.DisplayName())
	b.WriteByte(0)
	b.WriteString(rec.JobOrUnknown())
	b.WriteByte(0)
	b.WriteString(rec.EducationOrUnknown())
	for _, p := range rec.Posts {
		b.WriteByte(0)
		b.WriteString(p)
	}
	return CalculateMD5(b.String())
}
