package policy

import (
	"errors"
	"strings"
	"testing"

	"github.com/hitoshi/inkwell/internal/model"
)

func TestSameUser(t *testing.T) {
	const id = "6f1c2a9e-3b4d-4c5e-8f90-1a2b3c4d5e6f"

	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"同一文字列", id, id, true},
		{"大文字小文字の違いは無視", id, strings.ToUpper(id), true},
		{"ハイフンなし表記", id, strings.ReplaceAll(id, "-", ""), true},
		{"別のID", id, "0e7d9b62-1111-4222-8333-444455556666", false},
		{"不正な形式", id, "not-a-uuid", false},
		{"空文字", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SameUser(tt.a, tt.b); got != tt.want {
				t.Errorf("SameUser(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestRequireOwner(t *testing.T) {
	const owner = "6f1c2a9e-3b4d-4c5e-8f90-1a2b3c4d5e6f"

	if err := RequireOwner(owner, strings.ToUpper(owner), "not yours"); err != nil {
		t.Fatalf("所有者ならnilを期待: %v", err)
	}

	err := RequireOwner("0e7d9b62-1111-4222-8333-444455556666", owner, "Not authorized to update this post.")
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("APIErrorを期待: %v", err)
	}
	if apiErr.Code != model.ErrCodeForbidden {
		t.Errorf("Code = %q, want %q", apiErr.Code, model.ErrCodeForbidden)
	}
	if apiErr.Message != "Not authorized to update this post." {
		t.Errorf("Message = %q", apiErr.Message)
	}
}
