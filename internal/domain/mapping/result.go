package mapping

// TransformationResult is the outcome of one transformation invocation.
//
// Success is true iff no rule produced an error. Data is a single
// map[string]any when exactly one rule yielded output, a []map[string]any
// when multiple rules yielded output, and nil when none did. A rule whose
// conditions do not match contributes neither data nor errors.
type TransformationResult struct {
	Success  bool     `json:"success"`
	Data     any      `json:"data,omitempty"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// NewFailureResult creates a failed result carrying the given errors
func NewFailureResult(errs ...string) *TransformationResult {
	return &TransformationResult{Success: false, Errors: errs}
}

// Single returns the result data as a single record. ok is false when the
// invocation yielded zero records or more than one.
func (r *TransformationResult) Single() (map[string]any, bool) {
	record, ok := r.Data.(map[string]any)
	return record, ok
}

// Multiple returns the result data as a record list. ok is false when the
// invocation yielded fewer than two records.
func (r *TransformationResult) Multiple() ([]map[string]any, bool) {
	records, ok := r.Data.([]map[string]any)
	return records, ok
}
