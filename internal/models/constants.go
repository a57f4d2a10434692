package models

// InvoiceNumberSeparator joins the order and invoice identifiers when a vendor prints both.
const InvoiceNumberSeparator = "|"

// DefaultTolerance is the largest difference between the declared total and the sum of
// item totals that is still considered a match, in currency units.
const DefaultTolerance = "0.01"

// Category names the line grammar that produced a product.
type Category string

// Line grammar categories
const (
	CategoryUnitary    Category = "unitary"
	CategoryMultiple   Category = "multiple"
	CategoryFractional Category = "fractional"
	CategoryWeighed    Category = "weighed"
	CategoryDiscount   Category = "discount"
	CategoryTabular    Category = "tabular"
)

// File permissions
const (
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)
