package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordBoardOperation(t *testing.T) {
	before := testutil.ToFloat64(BoardOperations.WithLabelValues("signup", "success"))
	RecordBoardOperation("signup", "success")
	RecordBoardOperation("signup", "success")
	assert.Equal(t, before+2, testutil.ToFloat64(BoardOperations.WithLabelValues("signup", "success")))
}

func TestRecordRegistration(t *testing.T) {
	before := testutil.ToFloat64(Registrations.WithLabelValues("unregister", "not_found"))
	RecordRegistration("unregister", "not_found")
	assert.Equal(t, before+1, testutil.ToFloat64(Registrations.WithLabelValues("unregister", "not_found")))
}
