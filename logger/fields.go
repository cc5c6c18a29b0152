package logger

// Standard field key constants for structured logging.
const (
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldOperation = "operation"
	FieldBackend   = "backend"
	FieldBucket    = "bucket"
	FieldItem      = "item"
	FieldError     = "error"
)

// Fields builds a map[string]interface{} from alternating key-value pairs.
//
//	log.Info("uploaded", logger.Fields("item", name, "bytes", len(data)))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// ErrorFields creates fields for an operation on an item that failed.
func ErrorFields(op, item string, err error) map[string]interface{} {
	m := map[string]interface{}{
		FieldOperation: op,
		FieldItem:      item,
	}
	if err != nil {
		m[FieldError] = err.Error()
	}
	return m
}
