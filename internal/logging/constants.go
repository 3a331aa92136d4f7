package logging

// Standardized field names for structured logging.
// These constants ensure consistency across the application's log output,
// making logs easier to parse, filter, and analyze.
const (
	FieldFile       = "file_path"
	FieldMIMEType   = "mime_type"
	FieldFileSize   = "file_size"
	FieldProvider   = "provider"
	FieldModel      = "model"
	FieldCategory   = "category"
	FieldReason     = "reason"
	FieldOperation  = "operation"
	FieldStatus     = "status"
	FieldError      = "error"
	FieldDuration   = "duration_ms"
	FieldCount      = "count"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
)
