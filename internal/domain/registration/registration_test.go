package registration

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		req        Request
		wantErr    bool
		wantFields []string
	}{
		{
			name: "valid_minimal",
			req:  Request{Name: "Budi", Email: "budi@example.com"},
		},
		{
			name: "valid_with_optional_fields",
			req:  Request{Name: "Budi", Email: "budi@example.com", Phone: "0812", EventName: "Workshop"},
		},
		{
			name:       "missing_name",
			req:        Request{Email: "budi@example.com"},
			wantErr:    true,
			wantFields: []string{"Name"},
		},
		{
			name:       "blank_name_and_email",
			req:        Request{Name: "   ", Email: "\t"},
			wantErr:    true,
			wantFields: []string{"Name", "Email"},
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()

			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}

			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}

			if len(vErr.Fields) != len(tt.wantFields) {
				t.Fatalf("got %d field errors, want %d", len(vErr.Fields), len(tt.wantFields))
			}
			for i, f := range vErr.Fields {
				if f.Field() != tt.wantFields[i] {
					t.Fatalf("field[%d] = %s, want %s", i, f.Field(), tt.wantFields[i])
				}
			}
		})
	}
}

func TestNormalizeTrims(t *testing.T) {
	got := Request{Name: " Ani ", Email: " ani@example.com\n", Phone: " 0812 "}.Normalize()

	if got.Name != "Ani" || got.Email != "ani@example.com" || got.Phone != "0812" {
		t.Fatalf("unexpected normalized request: %+v", got)
	}
}
