// Package validate はリクエストボディのフィールド検証を行う。
// 検証エラーはフィールド単位で収集し、最後に1つのInvalidRequestエラーへまとめる。
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/hitoshi/inkwell/internal/model"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// FieldError は1フィールド分の検証エラー。
type FieldError struct {
	Field   string
	Message string
}

// String は "field: message" 形式の文字列を返す。
func (e FieldError) String() string {
	return e.Field + ": " + e.Message
}

// Validator はフィールドエラーを蓄積する。ゼロ値で使用できる。
type Validator struct {
	errs []FieldError
}

// New は空のValidatorを返す。
func New() *Validator {
	return &Validator{}
}

// Add はフィールドエラーを追加する。
func (v *Validator) Add(field, message string) {
	v.errs = append(v.errs, FieldError{Field: field, Message: message})
}

// Check はokがfalseのときフィールドエラーを追加する。
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.Add(field, message)
	}
}

// Required は空白を除いた値が空でないことを確認する。
func (v *Validator) Required(field, value string) bool {
	if strings.TrimSpace(value) == "" {
		v.Add(field, "is required")
		return false
	}
	return true
}

// Length は文字数（rune数）がmin以上max以下であることを確認する。
func (v *Validator) Length(field, value string, min, max int) bool {
	n := utf8.RuneCountInString(value)
	if n < min || n > max {
		v.Add(field, fmt.Sprintf("length must be between %d and %d characters", min, max))
		return false
	}
	return true
}

// Email はメールアドレスの形式を確認する。
func (v *Validator) Email(field, value string) bool {
	if !emailRegex.MatchString(value) {
		v.Add(field, "must be a valid email")
		return false
	}
	return true
}

// UUID は値がUUIDとして解釈できることを確認する。
func (v *Validator) UUID(field, value string) bool {
	if !IsUUID(value) {
		v.Add(field, "must be a valid id")
		return false
	}
	return true
}

// Valid はエラーが1件もない場合trueを返す。
func (v *Validator) Valid() bool {
	return len(v.errs) == 0
}

// Err はエラーがあればentity名を含むInvalidRequestエラーを返す。なければnil。
//
//	Invalid post data - title: is required; description: is required
func (v *Validator) Err(entity string) error {
	if v.Valid() {
		return nil
	}
	parts := make([]string, 0, len(v.errs))
	for _, e := range v.errs {
		parts = append(parts, e.String())
	}
	return model.NewInvalidRequestError(fmt.Sprintf("Invalid %s data - %s", entity, strings.Join(parts, "; ")))
}

// IsUUID は文字列がUUIDとして解釈できるかを返す。
func IsUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
