package errors

// Category classifies errors by subsystem concern.
type Category string

// Error categories.
const (
	CategoryConfig    Category = "Config"
	CategoryDataset   Category = "Dataset"
	CategoryEmbedding Category = "Embedding"
	CategoryCache     Category = "Cache"
	CategoryRetrieval Category = "Retrieval"
	CategoryInternal  Category = "Internal"
)

// Severity indicates how an error should be handled.
type Severity string

// Error severities. The engine degrades rather than crashes, so almost
// everything is Warning: the failure has a documented fallback.
const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
	SeverityFatal   Severity = "fatal"
)

// Error codes. Each code maps to one branch of the engine's degradation
// policy: fall back to defaults, skip the record, or switch search mode.
const (
	// ErrCodeConfigLoad: curated source config missing or unparsable.
	// Fallback: built-in source set.
	ErrCodeConfigLoad = "ERR_101_CONFIG_LOAD"

	// ErrCodeConfigInvalid: engine configuration failed validation.
	ErrCodeConfigInvalid = "ERR_102_CONFIG_INVALID"

	// ErrCodeDatasetRecord: a single dataset line failed to parse.
	// Fallback: skip the line, continue the file.
	ErrCodeDatasetRecord = "ERR_201_DATASET_RECORD"

	// ErrCodeDatasetRead: a dataset file could not be opened or read.
	ErrCodeDatasetRead = "ERR_202_DATASET_READ"

	// ErrCodeBackendUnavailable: the embedding backend cannot be
	// initialized. Fallback: empty index, keyword-only retrieval.
	ErrCodeBackendUnavailable = "ERR_301_BACKEND_UNAVAILABLE"

	// ErrCodeBatchEncode: a batch encode call failed.
	// Fallback: retry items individually.
	ErrCodeBatchEncode = "ERR_302_BATCH_ENCODE"

	// ErrCodeItemEncode: a single item failed to encode after the batch
	// fallback. The item is dropped from the index.
	ErrCodeItemEncode = "ERR_303_ITEM_ENCODE"

	// ErrCodeCacheCorrupt: the embedding cache file is unreadable or
	// missing entries. Fallback: recompute and overwrite.
	ErrCodeCacheCorrupt = "ERR_401_CACHE_CORRUPT"

	// ErrCodeCacheWrite: persisting the embedding cache failed.
	ErrCodeCacheWrite = "ERR_402_CACHE_WRITE"

	// ErrCodeInvalidInput: caller supplied invalid parameters.
	ErrCodeInvalidInput = "ERR_501_INVALID_INPUT"

	// ErrCodeInternal: unexpected internal failure.
	ErrCodeInternal = "ERR_901_INTERNAL"
)

// categoryFromCode derives the category from the leading code digit.
func categoryFromCode(code string) Category {
	if len(code) < 5 {
		return CategoryInternal
	}
	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryDataset
	case '3':
		return CategoryEmbedding
	case '4':
		return CategoryCache
	case '5':
		return CategoryRetrieval
	default:
		return CategoryInternal
	}
}

// severityFromCode derives the severity from an error code.
func severityFromCode(code string) Severity {
	switch code {
	case ErrCodeConfigInvalid, ErrCodeInvalidInput:
		return SeverityError
	case ErrCodeInternal:
		return SeverityError
	default:
		return SeverityWarning
	}
}

// isRetryableCode reports whether operations failing with this code may
// succeed on retry. Only transient encoder failures qualify.
func isRetryableCode(code string) bool {
	switch code {
	case ErrCodeBatchEncode, ErrCodeItemEncode, ErrCodeBackendUnavailable:
		return true
	default:
		return false
	}
}
