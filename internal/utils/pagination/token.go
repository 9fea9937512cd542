package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// EncodeToken creates an opaque cursor from the sort key of the last item of
// a page: the operation date and its id as tie breaker.
func EncodeToken(date time.Time, operationID int64) string {
	tokenStr := fmt.Sprintf("%s|%d", date.UTC().Format(timeFormat), operationID)
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses a cursor produced by EncodeToken.
func DecodeToken(token string) (time.Time, int64, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (split)")
	}

	date, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (date parse): %w", err)
	}

	operationID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (id parse): %w", err)
	}

	return date, operationID, nil
}

// After reports whether an item sorted by (date desc, id desc) comes after the cursor.
func After(date time.Time, operationID int64, cursorDate time.Time, cursorID int64) bool {
	if date.Equal(cursorDate) {
		return operationID < cursorID
	}
	return date.Before(cursorDate)
}
