package errors

import (
	"io"
	"strings"
	"testing"
)

func TestABCInfo(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"plain registered error": {
			err:      ErrNotFound,
			wantLog:  "not found",
			wantCode: ErrNotFound.code,
		},
		"wrapped registered error": {
			err:      Wrap(Wrap(ErrNotFound, "foo"), "bar"),
			wantLog:  "bar: foo: not found",
			wantCode: ErrNotFound.code,
		},
		"nil is empty message": {
			err:      nil,
			wantLog:  "",
			wantCode: 0,
		},
		"nil registered error is not an error": {
			err:      (*Error)(nil),
			wantLog:  "",
			wantCode: 0,
		},
		"stdlib is generic message": {
			err:      io.EOF,
			wantLog:  "internal error",
			wantCode: 1,
		},
		"stdlib returns error message in debug mode": {
			err:      io.EOF,
			debug:    true,
			wantLog:  "EOF",
			wantCode: 1,
		},
		"wrapped stdlib is only a generic message": {
			err:      Wrap(io.EOF, "cannot read file"),
			wantLog:  "internal error",
			wantCode: 1,
		},
		"custom error": {
			err:      customErr{},
			wantLog:  "custom",
			wantCode: 999,
		},
		"custom error in debug mode": {
			err:      customErr{},
			debug:    true,
			wantLog:  "custom",
			wantCode: 999,
		},
		"multi error uses the first code": {
			err:      Append(ErrInvalidAmount, ErrUnauthorized),
			wantLog:  "2 errors occurred:\n\t* invalid amount\n\t* unauthorized\n",
			wantCode: ErrInvalidAmount.code,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			code, log := ABCIInfo(tc.err, tc.debug)
			if code != tc.wantCode {
				t.Errorf("want %d code, got %d", tc.wantCode, code)
			}
			if log != tc.wantLog {
				t.Errorf("want %q log, got %q", tc.wantLog, log)
			}
		})
	}
}

func TestABCIInfoDebugContainsStack(t *testing.T) {
	_, log := ABCIInfo(Wrap(ErrEmpty, "name"), true)
	if !strings.Contains(log, "name: value is empty") {
		t.Fatalf("unexpected log: %q", log)
	}
	if !strings.Contains(log, "errors/abci_test.go") {
		t.Fatalf("stack trace information missing: %q", log)
	}
}

func TestABCIError(t *testing.T) {
	cases := map[string]struct {
		code    uint32
		log     string
		wantIs  *Error
		wantMsg string
	}{
		"registered code": {
			code:    ErrUnauthorized.code,
			log:     "not a maker: unauthorized",
			wantIs:  ErrUnauthorized,
			wantMsg: "not a maker: unauthorized",
		},
		"registered code without log": {
			code:    ErrInsufficientFunds.code,
			wantIs:  ErrInsufficientFunds,
			wantMsg: "insufficient funds",
		},
		"unknown code is internal": {
			code:    987654,
			log:     "boom",
			wantIs:  usedCodes[internalABCICode],
			wantMsg: "boom",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := ABCIError(tc.code, tc.log)
			if !tc.wantIs.Is(err) {
				t.Fatalf("unexpected error kind: %v", err)
			}
			if err.Error() != tc.wantMsg {
				t.Fatalf("want %q message, got %q", tc.wantMsg, err.Error())
			}
		})
	}

	if err := ABCIError(SuccessABCICode, "all good"); err != nil {
		t.Fatalf("success code must not be an error: %v", err)
	}
}

func TestRedact(t *testing.T) {
	if err := Redact(ErrPanic, false); ErrPanic.Is(err) {
		t.Error("reduct must not pass through panic error")
	}
	if err := Redact(ErrPanic, true); !ErrPanic.Is(err) {
		t.Error("reduct should pass through panic error in debug mode")
	}

	if err := Redact(ErrUnauthorized, false); !ErrUnauthorized.Is(err) {
		t.Error("registered error must pass through")
	}

	var stdlibErr = io.EOF
	if err := Redact(stdlibErr, false); err == stdlibErr {
		t.Error("stdlib error must be redacted")
	}
	if err := Redact(stdlibErr, true); err != stdlibErr {
		t.Error("stdlib error must not be redacted in debug mode")
	}
}

type customErr struct{}

func (customErr) ABCICode() uint32 { return 999 }

func (customErr) Error() string { return "custom" }
