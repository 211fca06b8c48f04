package ccm

import (
	"fmt"
	"os"
	"strings"
)

// Variant identifies an SoC revision. The node-kind logic is shared; only
// the topology tables differ per variant.
type Variant int

const (
	VariantRT1170 Variant = iota
	VariantRT1020
)

func (v Variant) String() string {
	switch v {
	case VariantRT1170:
		return "i.MXRT1170"
	case VariantRT1020:
		return "i.MXRT1020"
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

const compatibleFile = "/proc/device-tree/compatible"

var compatibleVariants = map[string]Variant{
	"fsl,imxrt1170": VariantRT1170,
	"fsl,imxrt1020": VariantRT1020,
}

// DetectVariant picks the SoC revision from the device tree's compatible
// list (NUL-separated strings, most specific first).
func DetectVariant() (Variant, error) {
	b, err := os.ReadFile(compatibleFile)
	if err != nil {
		return 0, fmt.Errorf("couldn't read compatible list: %v", err)
	}
	return variantFromCompatible(b)
}

func variantFromCompatible(b []byte) (Variant, error) {
	for _, s := range strings.Split(string(b), "\x00") {
		if v, ok := compatibleVariants[s]; ok {
			return v, nil
		}
	}
	return 0, fmt.Errorf("no supported SoC in compatible list %q", string(b))
}
