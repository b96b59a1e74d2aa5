package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/dcabrera/music_academy/models"
	"gorm.io/gorm"
)

const receiptSuffixLength = 6
const letterBytes = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateReceiptNumber produces a unique reference for a completed
// payment, e.g. REC-20250901-X4K2P9.
func GenerateReceiptNumber(tx *gorm.DB) (string, error) {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))

	for {
		b := make([]byte, receiptSuffixLength)
		for i := range b {
			b[i] = letterBytes[seededRand.Intn(len(letterBytes))]
		}
		number := fmt.Sprintf("REC-%s-%s", time.Now().Format("20060102"), string(b))

		var payment models.Payment
		err := tx.Where("reference_number = ?", number).First(&payment).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return number, nil
			}
			return "", err
		}
	}
}
