package models

import (
	"fmt"
	"strings"
)

// Vendor identifies a supported retailer.
type Vendor int

// Supported vendors
const (
	VendorUnknown Vendor = iota
	VendorMercadona
	VendorConsum
)

var vendorNames = map[Vendor]string{
	VendorMercadona: "Mercadona",
	VendorConsum:    "Consum",
}

// Vendors returns the supported vendors.
func Vendors() []Vendor {
	return []Vendor{VendorMercadona, VendorConsum}
}

func (v Vendor) String() string {
	if name, ok := vendorNames[v]; ok {
		return name
	}
	return "Unknown"
}

// IsKnown reports whether v is one of the supported vendors.
func (v Vendor) IsKnown() bool {
	_, ok := vendorNames[v]
	return ok
}

// Signature is the text whose presence in a receipt identifies the vendor.
func (v Vendor) Signature() string {
	return strings.ToLower(v.String())
}

// ParseVendor resolves a vendor from its name, ignoring case.
func ParseVendor(name string) (Vendor, error) {
	for v, n := range vendorNames {
		if strings.EqualFold(strings.TrimSpace(name), n) {
			return v, nil
		}
	}
	return VendorUnknown, fmt.Errorf("unknown vendor %q", name)
}

// MarshalText encodes the vendor as its name.
func (v Vendor) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText decodes a vendor name.
func (v *Vendor) UnmarshalText(text []byte) error {
	parsed, err := ParseVendor(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
