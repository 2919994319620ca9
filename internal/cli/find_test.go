package cli

import (
	"reflect"
	"testing"
)

func TestParseFilter(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want map[string]any
	}{
		{"empty", nil, nil},
		{"string value", []string{"name=Spam"}, map[string]any{"name": "Spam"}},
		{"dotted key", []string{"address.city=Anywhere"}, map[string]any{"address.city": "Anywhere"}},
		{"integer", []string{"count=7"}, map[string]any{"count": int64(7)}},
		{"float", []string{"price=2.99"}, map[string]any{"price": 2.99}},
		{"boolean", []string{"paid=true"}, map[string]any{"paid": true}},
		{"null", []string{"deleted_at=null"}, map[string]any{"deleted_at": nil}},
		{"value containing equals", []string{"note=a=b"}, map[string]any{"note": "a=b"}},
		{"multiple", []string{"name=Spam", "paid=false"}, map[string]any{"name": "Spam", "paid": false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFilter(tt.args)
			if err != nil {
				t.Fatalf("parseFilter() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseFilter() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestParseFilterRejectsBadArgs(t *testing.T) {
	for _, arg := range []string{"no-equals", "=value"} {
		if _, err := parseFilter([]string{arg}); err == nil {
			t.Errorf("parseFilter(%q) should fail", arg)
		}
	}
}
