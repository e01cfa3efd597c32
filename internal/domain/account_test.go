package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		raw    string
		want   Role
		wantOK bool
	}{
		{raw: "", want: RoleStudent, wantOK: true},
		{raw: "student", want: RoleStudent, wantOK: true},
		{raw: "faculty", want: RoleFaculty, wantOK: true},
		{raw: "admin", want: RoleAdmin, wantOK: true},
		{raw: "Admin", wantOK: false},
		{raw: "superuser", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseRole(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
			if ok {
				assert.True(t, got.Valid())
			}
		})
	}
}
