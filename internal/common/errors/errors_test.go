package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors_CodesAndRetryability(t *testing.T) {
	tests := []struct {
		name      string
		err       *StandardError
		code      ErrorCode
		retryable bool
		category  string
	}{
		{"configuration", NewConfigurationError("intent table is empty"), ErrCodeConfigurationInvalid, false, "CONFIGURATION"},
		{"data unavailable", NewDataUnavailableError("infopark"), ErrCodeDataUnavailable, false, "JOB_SOURCE"},
		{"fetch failed", NewJobSourceFetchFailedError("infopark", fmt.Errorf("status 503")), ErrCodeJobSourceFetchFailed, false, "JOB_SOURCE"},
		{"unrecognized intent", NewUnrecognizedIntentError("greeting"), ErrCodeUnrecognizedIntent, false, "NLP"},
		{"rate limited", NewRateLimitedError("10.0.0.1", 30), ErrCodeRateLimited, true, "REQUEST"},
		{"db connection", NewDatabaseConnectionFailedError(fmt.Errorf("refused")), ErrCodeDatabaseConnectionFailed, true, "DATABASE"},
		{"search", NewSearchQueryFailedError("jobs", fmt.Errorf("500")), ErrCodeSearchQueryFailed, true, "SEARCH"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.retryable, tt.err.Retryable)
			assert.Equal(t, tt.category, GetErrorCategory(tt.err.Code))
			assert.False(t, tt.err.Timestamp.IsZero())
			assert.Contains(t, tt.err.Error(), string(tt.code))
		})
	}
}

func TestHasCode_UnwrapsWrappedErrors(t *testing.T) {
	err := fmt.Errorf("train: %w", NewConfigurationError("no patterns"))

	assert.True(t, HasCode(err, ErrCodeConfigurationInvalid))
	assert.False(t, HasCode(err, ErrCodeDataUnavailable))
	assert.False(t, HasCode(fmt.Errorf("plain"), ErrCodeConfigurationInvalid))
}

func TestConvertToBPMNError(t *testing.T) {
	bpmn := ConvertToBPMNError(NewSearchQueryFailedError("jobs", fmt.Errorf("timeout")))
	assert.Equal(t, "SEARCH_QUERY_FAILED", bpmn.Code)
	assert.Equal(t, 3, bpmn.Retries)

	vars := bpmn.ToErrorVariables()
	assert.Equal(t, "SEARCH_QUERY_FAILED", vars["errorCode"])
	assert.Equal(t, "SEARCH_QUERY_FAILED", vars["originalErrorCode"])

	nonRetryable := ConvertToBPMNError(NewConfigurationError("bad"))
	assert.Equal(t, 0, nonRetryable.Retries)
}

func TestNormalize_WrapsForeignErrors(t *testing.T) {
	stdErr := Normalize(fmt.Errorf("boom"))
	assert.Equal(t, ErrorCode("INTERNAL_ERROR"), stdErr.Code)
	assert.Equal(t, "boom", stdErr.Details)

	orig := NewInvalidRequestError("missing body")
	assert.Same(t, orig, Normalize(fmt.Errorf("wrapped: %w", orig)))
}

func TestWithMetadata(t *testing.T) {
	err := NewDataUnavailableError("postgres").WithMetadata("intent", "skills")
	assert.Equal(t, "skills", err.Metadata["intent"])
}
