package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/Pankajnegi356/recruitment-portal/internal/common"
)

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return common.NewError(common.CodeValidation, "invalid request body", err)
	}
	return nil
}

// idFromPath parses the numeric path segment at the given index, counting
// from zero after trimming slashes: /candidates/42/status has id at index 1.
func idFromPath(r *http.Request, index int) (int64, error) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if index >= len(parts) {
		return 0, common.NewError(common.CodeValidation, "missing id in path", nil)
	}
	id, err := strconv.ParseInt(parts[index], 10, 64)
	if err != nil || id <= 0 {
		return 0, common.NewError(common.CodeValidation, "invalid id in path", err)
	}
	return id, nil
}

// actorFrom identifies the staff member for audit entries. Authentication is
// handled upstream; the gateway forwards the identity in this header.
func actorFrom(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-Actor"))
}
