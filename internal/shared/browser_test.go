package shared

import (
	"errors"
	"testing"
)

func TestBrowserCommand(t *testing.T) {
	original := getRuntime
	defer func() { getRuntime = original }()

	tt := []struct {
		goos    string
		want    string
		wantErr bool
	}{
		{goos: "darwin", want: "open"},
		{goos: "linux", want: "xdg-open"},
		{goos: "windows", want: "rundll32"},
		{goos: "plan9", wantErr: true},
	}

	for _, tc := range tt {
		t.Run(tc.goos, func(t *testing.T) {
			getRuntime = func() string { return tc.goos }

			cmd, err := browserCommand("https://example.com")
			if tc.wantErr {
				if !errors.Is(err, ErrNotImplemented) {
					t.Fatalf("expected ErrNotImplemented, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("browserCommand() error = %v", err)
			}
			if cmd.Args[0] != tc.want {
				t.Errorf("expected %s, got %s", tc.want, cmd.Args[0])
			}
			if cmd.Args[len(cmd.Args)-1] != "https://example.com" {
				t.Errorf("expected url as last argument, got %v", cmd.Args)
			}
		})
	}
}
