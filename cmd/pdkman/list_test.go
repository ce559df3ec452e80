package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/pdktools/pdkman/internal/ghapi"
	"github.com/pdktools/pdkman/internal/source"
)

func TestRemoteError(t *testing.T) {
	notFound := &source.NotFoundError{Family: "sky130", Source: "github.com/efabless/volare"}

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "not found passes through",
			err:  notFound,
			want: notFound.Error(),
		},
		{
			name: "status error",
			err:  &ghapi.StatusError{StatusCode: http.StatusForbidden, URL: "u"},
			want: "polling the version list failed",
		},
		{
			name: "malformed response",
			err:  &ghapi.DecodeError{URL: "u", Err: fmt.Errorf("bad json")},
			want: "malformed response",
		},
		{
			name: "transport failure",
			err:  fmt.Errorf("requesting u: connection refused"),
			want: "check your internet connection",
		},
		{
			name: "wrapped status error",
			err:  fmt.Errorf("page 2: %w", &ghapi.StatusError{StatusCode: 500, URL: "u"}),
			want: "polling the version list failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := remoteError(tt.err)
			if got == nil {
				t.Fatal("remoteError() = nil")
			}
			if !strings.Contains(got.Error(), tt.want) {
				t.Errorf("remoteError() = %q, want it to contain %q", got, tt.want)
			}
			if errors.Is(tt.err, notFound) && got != tt.err {
				t.Error("not-found errors must pass through unchanged")
			}
		})
	}
}
