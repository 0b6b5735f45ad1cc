// Package groupcode generates and resolves the human-shareable codes
// members use to join a trip.
package groupcode

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/ziyaarah/backend/internal/models"
	"gorm.io/gorm"
)

const Prefix = "ZIYAA"

// maxAttempts bounds the check-and-retry loop. The random space is
// only 10000 codes per year, so collisions against existing trips are
// expected and must be retried rather than persisted.
const maxAttempts = 5

var ErrExhausted = errors.New("groupcode: could not generate a unique code")

var codePattern = regexp.MustCompile(`^` + Prefix + `\d{4}\d{4}$`)

type Registry struct {
	DB *gorm.DB
}

func NewRegistry(db *gorm.DB) *Registry {
	return &Registry{DB: db}
}

// Generate produces a code of the form PREFIX + year + zero-padded
// 4-digit random number that no existing trip currently uses.
func (r *Registry) Generate() (string, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		code := randomCode(time.Now().Year())

		var count int64
		if err := r.DB.Model(&models.Trip{}).Where("group_code = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", ErrExhausted
}

// Resolve maps a code to its trip id. Returns gorm.ErrRecordNotFound
// when no trip carries the code.
func (r *Registry) Resolve(code string) (uuid.UUID, error) {
	var trip models.Trip
	if err := r.DB.Select("id").First(&trip, "group_code = ?", code).Error; err != nil {
		return uuid.Nil, err
	}
	return trip.ID, nil
}

// Valid reports whether a string has the expected code shape. Used for
// early rejection before hitting the database.
func Valid(code string) bool {
	return codePattern.MatchString(code)
}

func randomCode(year int) string {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		// crypto/rand only fails if the platform source is broken;
		// fall back to the zero code rather than panicking.
		n = big.NewInt(0)
	}
	return fmt.Sprintf("%s%d%04d", Prefix, year, n.Int64())
}
