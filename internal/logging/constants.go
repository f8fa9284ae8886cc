package logging

// Standardized field names for structured logging.
const (
	FieldFile       = "file_path"
	FieldReportID   = "report_id"
	FieldHash       = "content_hash"
	FieldReason     = "reason"
	FieldOperation  = "operation"
	FieldStatus     = "status"
	FieldError      = "error"
	FieldCount      = "count"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
)
