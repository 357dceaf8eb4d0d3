package utils

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
)

// NormalizeColor converts a renderer-supplied color token to #AARRGGBB form.
// The flow and paged renderers send hex tokens ("#RRGGBB" or "#AARRGGBB");
// the plain-text renderer sends a signed 32-bit integer string. Tokens in
// neither form pass through unchanged, since the store treats color as an
// opaque token.
func NormalizeColor(token string) string {
	token = strings.TrimSpace(token)
	if token == "" {
		return ""
	}

	if strings.HasPrefix(token, "#") {
		hex := strings.ToUpper(token[1:])
		switch len(hex) {
		case 6:
			return "#FF" + hex // opaque by default
		case 8:
			return "#" + hex
		}
		return token
	}

	if hex, err := SignedIntToHexARGB(token); err == nil {
		return hex
	}
	return token
}

// SignedIntToHexARGB converts a signed integer color representation to ARGB
// hex format. Example: "-15654349" -> "#FF112233".
func SignedIntToHexARGB(colorStr string) (string, error) {
	colorInt, err := strconv.ParseInt(colorStr, 10, 64)
	if err != nil {
		return "", fmt.Errorf("failed to parse color string: %w", err)
	}

	// Convert to unsigned 32-bit representation (2's complement)
	colorUint := uint32(colorInt)

	// Convert to hex bytes (big-endian)
	bytes := make([]byte, 4)
	binary.BigEndian.PutUint32(bytes, colorUint)

	return fmt.Sprintf("#%02X%02X%02X%02X", bytes[0], bytes[1], bytes[2], bytes[3]), nil
}
