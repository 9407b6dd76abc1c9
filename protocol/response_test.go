package protocol

import (
	"errors"
	"testing"
)

func TestClassifySuccessCodes(t *testing.T) {
	tests := []struct {
		line string
		code int
		body string
	}{
		{"200 OK", CodeOK, "OK"},
		{"200 (example.com,other.org)", CodeOK, "(example.com,other.org)"},
		{"201 data follows inline", CodeOKInline, "data follows inline"},
		{"300 please send the PASS", CodeMoreInput, "please send the PASS"},
		{"200 \r\n", CodeOK, ""},
	}

	for _, tt := range tests {
		reply, err := Classify(tt.line)
		if err != nil {
			t.Fatalf("Classify(%q) error = %v", tt.line, err)
		}
		if reply.Code != tt.code {
			t.Errorf("Classify(%q) code = %d, want %d", tt.line, reply.Code, tt.code)
		}
		assertEqualString(t, tt.body, reply.Body)
	}
}

func TestClassifyFatalCodes(t *testing.T) {
	tests := []struct {
		line    string
		code    int
		message string
	}{
		{"500 unknown command", 500, "unknown command"},
		{"512 unknown account", 512, "unknown account"},
		{"515 incorrect password", 515, "incorrect password"},
		{"520 name already in use", 520, "name already in use"},
		{"404 made-up code", 404, "made-up code"},
	}

	for _, tt := range tests {
		_, err := Classify(tt.line)
		var se *ServerError
		if !errors.As(err, &se) {
			t.Fatalf("Classify(%q) error = %v, want ServerError", tt.line, err)
		}
		if se.Code != tt.code {
			t.Errorf("Classify(%q) code = %d, want %d", tt.line, se.Code, tt.code)
		}
		assertEqualString(t, tt.message, se.Message)
	}
}

func TestClassifyMalformed(t *testing.T) {
	lines := []string{
		"",
		"OK",
		"200",
		"20 OK",
		"2000 OK",
		"20a OK",
		"ready to serve",
	}

	for _, line := range lines {
		_, err := Classify(line)
		var pe *ProtocolError
		if !errors.As(err, &pe) {
			t.Errorf("Classify(%q) error = %v, want ProtocolError", line, err)
		}
	}
}

func TestReplyInline(t *testing.T) {
	reply, err := Classify("201 (a,b)")
	if err != nil {
		t.Fatal(err)
	}
	if !reply.Inline() {
		t.Error("201 reply should be inline")
	}

	reply, err = Classify("200 OK")
	if err != nil {
		t.Fatal(err)
	}
	if reply.Inline() {
		t.Error("200 reply should not be inline")
	}
}

func TestIsSuccessCode(t *testing.T) {
	for _, code := range []int{CodeOK, CodeOKInline, CodeMoreInput} {
		if !IsSuccessCode(code) {
			t.Errorf("IsSuccessCode(%d) = false, want true", code)
		}
	}
	for _, code := range []int{0, 100, 202, 301, CodeGeneralError, CodeUnknownObject, CodeIncorrectPassword} {
		if IsSuccessCode(code) {
			t.Errorf("IsSuccessCode(%d) = true, want false", code)
		}
	}
}

func TestShouldCloseConnection(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{&ServerError{Code: 512, Message: "unknown account"}, false},
		{&ValidationError{Message: "bad name"}, false},
		{&ProtocolError{Message: "malformed"}, true},
		{&ConnectionError{Op: "read", Err: errors.New("reset")}, true},
		{errors.New("anything else"), true},
	}

	for _, tt := range tests {
		if got := ShouldCloseConnection(tt.err); got != tt.want {
			t.Errorf("ShouldCloseConnection(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
