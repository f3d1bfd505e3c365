package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/hitoshi/inkwell/internal/middleware"
	"github.com/hitoshi/inkwell/internal/model"
)

// maxBodyBytes はリクエストボディの上限サイズ。
const maxBodyBytes = 1 << 20

// writeAPIErrorResponse は統一エラーフォーマットでエラーレスポンスを書き込む。
func writeAPIErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	middleware.WriteErrorResponse(w, statusCode, apiErr)
}

// writeJSON はステータスコードとJSONボディを書き込む。
func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

// handleServiceError はサービス層から返されたエラーを適切なHTTPステータスコードに変換する。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		statusCode := mapAPIErrorToHTTPStatus(apiErr)
		writeAPIErrorResponse(w, statusCode, apiErr)
		return
	}

	// APIError以外のエラーは内部サーバーエラーとして扱う
	slog.Error("internal server error", slog.String("error", err.Error()))
	middleware.WriteInternalServerError(w)
}

// mapAPIErrorToHTTPStatus はAPIErrorコードからHTTPステータスコードにマッピングする。
// 記事の不存在は409、コメント・ブックマーク・ユーザーの不存在は404とする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeInvalidRequest, model.ErrCodeInvalidID, model.ErrCodeSelfFollow:
		return http.StatusBadRequest
	case model.ErrCodeAuthTokenMissing, model.ErrCodeAuthTokenInvalid, model.ErrCodeInvalidCredentials:
		return http.StatusUnauthorized
	case model.ErrCodeForbidden:
		return http.StatusForbidden
	case model.ErrCodeBlogPostNotFound, model.ErrCodeCommentNotFound,
		model.ErrCodeBookmarkNotFound, model.ErrCodeUserNotFound, model.ErrCodeNotFollowing:
		return http.StatusNotFound
	case model.ErrCodePostNotFound, model.ErrCodeAlreadyBookmarked,
		model.ErrCodeAlreadyFollowing, model.ErrCodeEmailExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// viewerID は認証済みユーザーIDを取り出す。取得できない場合は401を書き込みfalseを返す。
func viewerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewAuthTokenMissingError())
		return "", false
	}
	return userID, true
}

// decodeBody はJSONボディをdstに読み込む。
// ボディが空、null、空オブジェクトの場合はemptyMessageで400を書き込みfalseを返す。
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}, emptyMessage string) bool {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("Failed to read request body."))
		return false
	}

	trimmed := bytes.TrimSpace(raw)
	if isEmptyBody(trimmed) {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError(emptyMessage))
		return false
	}

	if err := json.Unmarshal(trimmed, dst); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("Malformed JSON body."))
		return false
	}
	return true
}

// isEmptyBody はボディが実質的に空かどうかを判定する。
func isEmptyBody(b []byte) bool {
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return true
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(b, &obj); err == nil && len(obj) == 0 {
		return true
	}
	return false
}

// pickID はidと_idのどちらか指定された方を返す。
func pickID(id, legacyID string) string {
	if id != "" {
		return id
	}
	return legacyID
}
