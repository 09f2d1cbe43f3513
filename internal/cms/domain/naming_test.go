package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "Spaces", in: "My Photo.PNG", want: "My-Photo.PNG"},
		{name: "WhitespaceRun", in: "a \t  b.jpg", want: "a-b.jpg"},
		{name: "StripsSymbols", in: "héllo(1)!.jpeg", want: "hllo1.jpeg"},
		{name: "KeepsSeparators", in: "a_b-c.d.png", want: "a_b-c.d.png"},
		{name: "Empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.in))
		})
	}
}

func TestBuildStoredName(t *testing.T) {
	assert.Equal(t, "1700000000000-My-Photo.PNG", BuildStoredName(1700000000000, "My Photo.PNG"))
	assert.Equal(t, "7-x.png", BuildStoredName(7, "../../etc/x.png"))
}

func TestBuildPublicURL(t *testing.T) {
	got := BuildPublicURL("http://localhost:5000/uploads/", CategorySocial, "1-a.png")
	assert.Equal(t, "http://localhost:5000/uploads/social/1-a.png", got)
}

func TestIsAllowedExtension(t *testing.T) {
	assert.True(t, IsAllowedExtension("a.PNG"))
	assert.True(t, IsAllowedExtension("a.jpeg"))
	assert.True(t, IsAllowedExtension("a.Jpg"))
	assert.False(t, IsAllowedExtension("a.gif"))
	assert.False(t, IsAllowedExtension("png"))
	assert.False(t, IsAllowedExtension("a.png.exe"))
}

func TestValidateStoredName(t *testing.T) {
	assert.NoError(t, ValidateStoredName("1-a.png"))
	for _, bad := range []string{"", ".", "..", "../a.png", `a\b.png`, "a/b.png"} {
		err := ValidateStoredName(bad)
		assert.True(t, errors.Is(err, ErrValidation), "expected validation error for %q", bad)
	}
}

func TestDecodeFilename(t *testing.T) {
	got, err := DecodeFilename("1-My%20Photo.png")
	assert.NoError(t, err)
	assert.Equal(t, "1-My Photo.png", got)

	got, err = DecodeFilename("1-plain.png")
	assert.NoError(t, err)
	assert.Equal(t, "1-plain.png", got)

	_, err = DecodeFilename("bad%zz")
	assert.ErrorIs(t, err, ErrInvalidFilename)
}
