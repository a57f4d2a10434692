package logging

// Standardized field names for structured logging.
const (
	FieldFile          = "file_path"
	FieldVendor        = "vendor"
	FieldRule          = "rule"
	FieldCategory      = "category"
	FieldField         = "field"
	FieldLine          = "line"
	FieldLastLine      = "last_line"
	FieldOffset        = "offset"
	FieldReason        = "reason"
	FieldCount         = "count"
	FieldInvoiceNumber = "invoice_number"
	FieldDeclaredTotal = "declared_total"
	FieldComputedTotal = "computed_total"
	FieldFileType      = "file_type"
	FieldWorkers       = "workers"
	FieldInputFile     = "input_file"
	FieldOutputFile    = "output_file"
)
