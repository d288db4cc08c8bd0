package repository

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestUniqueViolation_MapsConstraintToField(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"username", &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}, ErrUsernameTaken},
		{"email", &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}, ErrEmailTaken},
		{"nickname", &pgconn.PgError{Code: "23505", ConstraintName: "users_nickname_key"}, ErrNicknameTaken},
		{"wrapped", fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}), ErrEmailTaken},
		{"foreign key violation", &pgconn.PgError{Code: "23503", ConstraintName: "memos_board_id_fkey"}, nil},
		{"plain error", errors.New("connection reset"), nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := uniqueViolation(tt.err)
			if !errors.Is(got, tt.want) || (tt.want == nil && got != nil) {
				t.Errorf("uniqueViolation() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecodeCursor_RoundTrip(t *testing.T) {
	t.Parallel()

	in := &PaginationCursor{ID: "01HZY", CreatedAt: time.Date(2025, 1, 2, 3, 4, 5, 6000, time.UTC)}
	out, err := DecodeCursor(EncodeCursor(in))
	if err != nil {
		t.Fatalf("DecodeCursor: %v", err)
	}
	if out.ID != in.ID || !out.CreatedAt.Equal(in.CreatedAt) {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestDecodeCursor_Invalid(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"not base64!", "bm90IGpzb24", "e30="} {
		if _, err := DecodeCursor(raw); !errors.Is(err, ErrInvalidCursor) {
			t.Errorf("DecodeCursor(%q) error = %v, want ErrInvalidCursor", raw, err)
		}
	}
}
