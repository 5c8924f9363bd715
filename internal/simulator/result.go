package simulator

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"futarinavi/internal/models"
)

// ErrInvalidShareToken wraps every DecodeShareToken failure.
var ErrInvalidShareToken = errors.New("invalid share token")

const (
	sharePrefix       = "FN-"
	maxShareTokenSize = 512
)

// FormatYen renders an amount the way results are headlined: whole 万円
// from 10,000 yen upwards (remainder dropped), plain 円 below that.
func FormatYen(amount int) string {
	if amount >= 10000 {
		return groupThousands(amount/10000) + "万円"
	}
	return groupThousands(amount) + "円"
}

func groupThousands(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Split separates cash programs from informational ones, keeping order.
func Split(res models.SimulatorResult) (financial, service []models.EligibleProgram) {
	financial = []models.EligibleProgram{}
	service = []models.EligibleProgram{}
	for _, ep := range res.EligiblePrograms {
		if ep.EstimatedAmount > 0 {
			financial = append(financial, ep)
		} else {
			service = append(service, ep)
		}
	}
	return financial, service
}

// EncodeShareToken packs the input into a URL-safe token so a result page
// can be reproduced without storing anything server-side.
func EncodeShareToken(in models.SimulatorInput) (string, error) {
	data, err := json.Marshal(in)
	if err != nil {
		return "", err
	}
	return sharePrefix + base64.RawURLEncoding.EncodeToString(data), nil
}

// DecodeShareToken reverses EncodeShareToken. The decoded input is not
// validated; a token can be hand-edited.
func DecodeShareToken(token string) (models.SimulatorInput, error) {
	var in models.SimulatorInput
	token = strings.TrimSpace(token)
	if !strings.HasPrefix(token, sharePrefix) || len(token) > maxShareTokenSize {
		return in, ErrInvalidShareToken
	}
	data, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(token, sharePrefix))
	if err != nil {
		return in, fmt.Errorf("%w: %v", ErrInvalidShareToken, err)
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return in, fmt.Errorf("%w: %v", ErrInvalidShareToken, err)
	}
	return in, nil
}
