// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, classification and utility functions

package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/yaml2config/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "template_not_found_error",
			code:    errors.ErrTemplateNotFound,
			message: "template not found",
			wantStr: "[TEMPLATE_NOT_FOUND] template not found",
		},
		{
			name:    "invalid_input_error",
			code:    errors.ErrInputInvalid,
			message: "document is not a mapping",
			wantStr: "[INPUT_INVALID] document is not a mapping",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}

			if err.Message != tt.message {
				t.Errorf("New() message = %q, want %q", err.Message, tt.message)
			}

			if err.Details == nil {
				t.Error("New() details should be initialized")
			}

			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrDirAccess, "directory %s is not writable (mode %o)", "/out", 0555)

	want := "directory /out is not writable (mode 555)"
	if err.Message != want {
		t.Errorf("Newf() message = %q, want %q", err.Message, want)
	}
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("base error")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrInternal, "internal error")

		if err.Code != errors.ErrInternal {
			t.Errorf("Wrap() code = %v, want %v", err.Code, errors.ErrInternal)
		}

		if err.Wrapped != baseErr {
			t.Error("Wrap() should preserve wrapped error")
		}

		wantStr := "[INTERNAL] internal error: base error"
		if got := err.Error(); got != wantStr {
			t.Errorf("Error() = %q, want %q", got, wantStr)
		}
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		err := errors.Wrap(nil, errors.ErrInternal, "internal error")
		if err != nil {
			t.Error("Wrap(nil) should return nil")
		}
	})
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrTemplateNotFound, "not found").
		WithDetail("template", "nginx.conf.j2").
		WithDetail("dir", "/templates")

	if err.Details["template"] != "nginx.conf.j2" {
		t.Errorf("WithDetail() template = %v, want %v", err.Details["template"], "nginx.conf.j2")
	}

	if err.Details["dir"] != "/templates" {
		t.Errorf("WithDetail() dir = %v, want %v", err.Details["dir"], "/templates")
	}
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrSyncFailed, "error 1")
	err2 := errors.New(errors.ErrSyncFailed, "error 2")
	err3 := errors.New(errors.ErrInternal, "error 3")

	t.Run("same_code_is_equal", func(t *testing.T) {
		if !err1.Is(err2) {
			t.Error("Is() should return true for same code")
		}
	})

	t.Run("different_code_not_equal", func(t *testing.T) {
		if err1.Is(err3) {
			t.Error("Is() should return false for different codes")
		}
	})

	t.Run("works_with_errors_Is", func(t *testing.T) {
		if !stderrors.Is(err1, err2) {
			t.Error("errors.Is() should work with Y2CError")
		}
	})
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{
			name:     "matching_code",
			err:      errors.New(errors.ErrInputParse, "bad yaml"),
			code:     errors.ErrInputParse,
			expected: true,
		},
		{
			name:     "different_code",
			err:      errors.New(errors.ErrInputParse, "bad yaml"),
			code:     errors.ErrInternal,
			expected: false,
		},
		{
			name:     "wrapped_error",
			err:      errors.Wrap(stderrors.New("base"), errors.ErrFileWrite, "denied"),
			code:     errors.ErrFileWrite,
			expected: true,
		},
		{
			name:     "standard_error",
			err:      stderrors.New("standard error"),
			code:     errors.ErrInputParse,
			expected: false,
		},
		{
			name:     "nil_error",
			err:      nil,
			code:     errors.ErrInputParse,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.IsErrorCode(tt.err, tt.code); got != tt.expected {
				t.Errorf("IsErrorCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected errors.ErrorCode
	}{
		{
			name:     "y2c_error",
			err:      errors.New(errors.ErrTemplateRender, "render failed"),
			expected: errors.ErrTemplateRender,
		},
		{
			name:     "standard_error",
			err:      stderrors.New("standard error"),
			expected: errors.ErrUnknown,
		},
		{
			name:     "nil_error",
			err:      nil,
			expected: errors.ErrUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.GetErrorCode(tt.err); got != tt.expected {
				t.Errorf("GetErrorCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		fatal bool
	}{
		{"nil", nil, false},
		{"input_parse", errors.New(errors.ErrInputParse, "x"), true},
		{"input_invalid", errors.New(errors.ErrInputInvalid, "x"), true},
		{"sync_failed", errors.New(errors.ErrSyncFailed, "x"), true},
		{"sync_unavailable", errors.New(errors.ErrSyncUnavailable, "x"), true},
		{"dir_access", errors.New(errors.ErrDirAccess, "x"), true},
		{"template_not_found", errors.New(errors.ErrTemplateNotFound, "x"), false},
		{"template_compile", errors.New(errors.ErrTemplateCompile, "x"), false},
		{"template_render", errors.New(errors.ErrTemplateRender, "x"), false},
		{"file_write", errors.New(errors.ErrFileWrite, "x"), false},
		{"standard_error", stderrors.New("x"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.IsFatal(tt.err); got != tt.fatal {
				t.Errorf("IsFatal() = %v, want %v", got, tt.fatal)
			}
		})
	}
}

func TestMessage(t *testing.T) {
	rootCause := stderrors.New("permission denied")
	inner := errors.Wrap(rootCause, errors.ErrFileWrite, "cannot write /out/app.conf")
	outer := errors.Wrap(inner, errors.ErrRunFailed, "run failed")

	if got := errors.Message(outer); got != "run failed: cannot write /out/app.conf: permission denied" {
		t.Errorf("Message() = %q", got)
	}

	if got := errors.Message(stderrors.New("plain")); got != "plain" {
		t.Errorf("Message() = %q, want %q", got, "plain")
	}
}

func TestErrorChaining(t *testing.T) {
	rootCause := stderrors.New("root cause")
	writeErr := errors.Wrap(rootCause, errors.ErrFileWrite, "cannot write file")
	runErr := errors.Wrap(writeErr, errors.ErrRunFailed, "run failed")

	t.Run("top_level_has_correct_code", func(t *testing.T) {
		if !errors.IsErrorCode(runErr, errors.ErrRunFailed) {
			t.Error("Top level should have ErrRunFailed code")
		}
	})

	t.Run("can_find_middle_error", func(t *testing.T) {
		var y2cErr *errors.Y2CError
		if stderrors.As(runErr.Unwrap(), &y2cErr) {
			if !errors.IsErrorCode(y2cErr, errors.ErrFileWrite) {
				t.Error("Middle error should have ErrFileWrite code")
			}
		}
	})

	t.Run("can_find_root_cause", func(t *testing.T) {
		if !stderrors.Is(runErr, rootCause) {
			t.Error("Should find root cause with errors.Is")
		}
	})
}
