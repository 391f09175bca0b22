package ffi

import "testing"

func TestLibraryPathPrecedence(t *testing.T) {
	t.Setenv(LibraryEnv, "")
	if got := newOptions(nil).path; got != DefaultLibrary {
		t.Errorf("default path = %q, want %q", got, DefaultLibrary)
	}

	t.Setenv(LibraryEnv, "/opt/hb/libhyprbind.so")
	if got := newOptions(nil).path; got != "/opt/hb/libhyprbind.so" {
		t.Errorf("env path = %q", got)
	}
	if got := newOptions([]Option{WithLibrary("./local.so")}).path; got != "./local.so" {
		t.Errorf("option path = %q, want the option to win", got)
	}
	if got := newOptions([]Option{WithLibrary(""), WithLogger(nil)}).path; got != "/opt/hb/libhyprbind.so" {
		t.Errorf("empty option path = %q, want env path kept", got)
	}
}
