package security

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateFilePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "plain file", path: "tokens.css"},
		{name: "nested file", path: "scss/_tokens.scss"},
		{name: "dots in name", path: "tokens..css"},
		{name: "empty", path: "", wantErr: true},
		{name: "parent", path: "../tokens.css", wantErr: true},
		{name: "nested parent", path: "a/../../tokens.css", wantErr: true},
		{name: "windows parent", path: `..\tokens.css`, wantErr: true},
		{name: "absolute", path: "/etc/passwd", wantErr: true},
		{name: "current dir", path: ".", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilePath(tt.path, "/srv/app/tokens")
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFilePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestReadAllLimited(t *testing.T) {
	data, err := ReadAllLimited(strings.NewReader("12345"), 5)
	if err != nil {
		t.Fatalf("ReadAllLimited() at the limit error = %v", err)
	}
	if string(data) != "12345" {
		t.Errorf("ReadAllLimited() = %q", data)
	}

	_, err = ReadAllLimited(strings.NewReader("123456"), 5)
	if !errors.Is(err, ErrSizeLimit) {
		t.Errorf("ReadAllLimited() over the limit error = %v, want ErrSizeLimit", err)
	}
}
