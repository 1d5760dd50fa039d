package phone

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "+79616448504", want: "+79616448504"},
		{in: "+7 961 644-85-04", want: "+79616448504"},
		{in: "8 (961) 644-85-04", want: "+79616448504"},
		{in: "12345", wantErr: true},
		{in: "", wantErr: true},
		{in: "телефон", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Normalize(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Normalize(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
