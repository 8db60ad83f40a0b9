package fetch

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"
)

func TestMuxRoutesByScheme(t *testing.T) {
	ctrl := gomock.NewController(t)
	httpSrc := NewMockSource(ctrl)
	s3Src := NewMockSource(ctrl)

	httpSrc.EXPECT().Fetch(gomock.Any(), Get("/users")).Return([]byte("http"), nil)
	httpSrc.EXPECT().Fetch(gomock.Any(), Get("https://example.com/users")).Return([]byte("https"), nil)
	s3Src.EXPECT().Fetch(gomock.Any(), Get("s3://bucket/users")).Return([]byte("s3"), nil)

	mux := NewMux(httpSrc).Handle("https", httpSrc).Handle("s3", s3Src)

	tests := []struct {
		url  string
		want string
	}{
		{"/users", "http"},
		{"https://example.com/users", "https"},
		{"s3://bucket/users", "s3"},
	}
	for _, tt := range tests {
		got, err := mux.Fetch(context.Background(), Get(tt.url))
		if err != nil {
			t.Fatalf("Fetch(%q) error: %v", tt.url, err)
		}
		if string(got) != tt.want {
			t.Errorf("Fetch(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestMuxUnknownScheme(t *testing.T) {
	mux := NewMux(nil)

	if _, err := mux.Fetch(context.Background(), Get("gopher://x/y")); !errors.Is(err, ErrNoSource) {
		t.Errorf("Fetch(gopher) error = %v, want ErrNoSource", err)
	}
	if _, err := mux.Fetch(context.Background(), Get("/users")); !errors.Is(err, ErrNoSource) {
		t.Errorf("Fetch(relative) without fallback error = %v, want ErrNoSource", err)
	}
}

func TestSourceFunc(t *testing.T) {
	var got Request
	src := SourceFunc(func(_ context.Context, req Request) ([]byte, error) {
		got = req
		return []byte("ok"), nil
	})

	if _, err := src.Fetch(context.Background(), Get("/users")); err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if got.Method != "GET" || got.URL != "/users" {
		t.Errorf("request = %+v", got)
	}
}
