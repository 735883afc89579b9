package configdoc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/keyrx/keyrx/internal/coreerr"
)

// ParseCustomID decodes a two-hex-digit custom modifier/lock token
// ("MD_xx" or "LK_xx", case-insensitive) into its numeric id, rejecting
// the reserved value FF per spec §6's identifier encoding table.
func ParseCustomID(prefix, token string) (uint8, error) {
	upperPrefix := strings.ToUpper(prefix)
	upperToken := strings.ToUpper(strings.TrimSpace(token))
	want := upperPrefix + "_"
	if !strings.HasPrefix(upperToken, want) {
		return 0, coreerr.NewConstraintViolation("identifier %q: expected %s prefix", token, want)
	}
	hex := strings.TrimPrefix(upperToken, want)
	if len(hex) != 2 {
		return 0, coreerr.NewConstraintViolation("identifier %q: expected two hex digits after %s", token, want)
	}
	if strings.EqualFold(hex, "FF") {
		return 0, coreerr.NewConstraintViolation("identifier %q: FF is reserved", token)
	}
	v, err := strconv.ParseUint(hex, 16, 8)
	if err != nil {
		return 0, coreerr.NewConstraintViolation("identifier %q: not valid hex: %v", token, err)
	}
	return uint8(v), nil
}

// FormatCustomID is the inverse of ParseCustomID, used by diagnostics
// rendering.
func FormatCustomID(prefix string, id uint8) string {
	return fmt.Sprintf("%s_%02X", strings.ToUpper(prefix), id)
}
