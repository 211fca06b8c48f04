package ccm

import "testing"

func TestVariantFromCompatible(t *testing.T) {
	tests := []struct {
		compat  string
		want    Variant
		wantErr bool
	}{
		{"emcraft,imxrt1170-som\x00fsl,imxrt1170\x00", VariantRT1170, false},
		{"fsl,imxrt1020\x00", VariantRT1020, false},
		{"some,board\x00fsl,imx6q\x00", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := variantFromCompatible([]byte(tt.compat))
		if tt.wantErr {
			if err == nil {
				t.Errorf("%q: no error, got %v", tt.compat, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: %v", tt.compat, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%q: got %v, want %v", tt.compat, got, tt.want)
		}
	}
}

func TestVariantString(t *testing.T) {
	if VariantRT1170.String() != "i.MXRT1170" || VariantRT1020.String() != "i.MXRT1020" {
		t.Errorf("String() = %q, %q", VariantRT1170, VariantRT1020)
	}
	if Variant(7).String() != "Variant(7)" {
		t.Errorf("unknown variant String() = %q", Variant(7))
	}
}
