package api

import (
	"net/http/httptest"
	"testing"
)

func TestPathID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "valid", input: "42", want: 42},
		{name: "zero rejected", input: "0", wantErr: true},
		{name: "negative rejected", input: "-3", wantErr: true},
		{name: "non numeric", input: "abc", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pathID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("pathID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Fatalf("pathID(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestPagination(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		wantOffset int
		wantLimit  int
	}{
		{name: "defaults", url: "/api/events", wantOffset: 0, wantLimit: 50},
		{name: "explicit values", url: "/api/events?skip=10&limit=20", wantOffset: 10, wantLimit: 20},
		{name: "limit capped", url: "/api/events?limit=500", wantOffset: 0, wantLimit: 100},
		{name: "bad values ignored", url: "/api/events?skip=-1&limit=zero", wantOffset: 0, wantLimit: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			offset, limit := pagination(r)
			if offset != tt.wantOffset || limit != tt.wantLimit {
				t.Fatalf("pagination() = (%d, %d), want (%d, %d)", offset, limit, tt.wantOffset, tt.wantLimit)
			}
		})
	}
}
