package morph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidators(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		validator Validator
		value     Value
		wantErr   bool
	}{
		{"required present", Required, String("x"), false},
		{"required null is present", Required, Null(), false},
		{"required absent", Required, Absent(), true},

		{"non-empty string", NonEmptyString, String("x"), false},
		{"non-empty string empty", NonEmptyString, String(""), true},
		{"non-empty string wrong kind", NonEmptyString, Int(1), true},
		{"non-empty string absent passes", NonEmptyString, Absent(), false},

		{"is string", IsString, String("x"), false},
		{"is string wrong kind", IsString, Bool(true), true},
		{"is bool", IsBool, Bool(false), false},
		{"is bool wrong kind", IsBool, String("true"), true},
		{"is number", IsNumber, Number(1.5), false},
		{"is number wrong kind", IsNumber, String("1.5"), true},

		{"uuid ok", ValidUUID, String("123e4567-e89b-12d3-a456-426614174000"), false},
		{"uuid bad", ValidUUID, String("not-a-uuid"), true},
		{"uuid absent passes", ValidUUID, Absent(), false},

		{"identifier ok", ValidIdentifier, String("snake_case_1"), false},
		{"identifier leading digit", ValidIdentifier, String("1abc"), true},

		{"ipv4 ok", ValidIP, String("192.168.0.1"), false},
		{"ipv6 ok", ValidIP, String("::1"), false},
		{"ip bad", ValidIP, String("999.1.1.1"), true},

		{"cidr ok", ValidCIDR, String("10.0.0.0/8"), false},
		{"cidr bad", ValidCIDR, String("10.0.0.0"), true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.validator("field", tt.value)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMappers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mapper  Mapper
		in      Value
		want    Value
		wantErr bool
	}{
		{"trim", TrimSpace, String("  x  "), String("x"), false},
		{"lower", ToLower, String("ABC"), String("abc"), false},
		{"upper", ToUpper, String("abc"), String("ABC"), false},
		{"lower non-string", ToLower, Int(1), Absent(), true},
		{"bool to string true", BoolToString, Bool(true), String("true"), false},
		{"bool to string false", BoolToString, Bool(false), String("false"), false},
		{"bool to string non-bool", BoolToString, String("true"), Absent(), true},
		{"scheme protocol-relative", EnsureScheme("https"), String("//cdn.example.com/a"), String("https://cdn.example.com/a"), false},
		{"scheme bare", EnsureScheme("https"), String("cdn.example.com/a"), String("https://cdn.example.com/a"), false},
		{"scheme already present", EnsureScheme("https"), String("http://cdn.example.com/a"), String("http://cdn.example.com/a"), false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := tt.mapper(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, Equal(tt.want, got), "mapped to %s, want %s", got, tt.want)
		})
	}
}
