package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsentSetMissingRequired(t *testing.T) {
	required := []string{"privacy_policy", "health_data", "medical_reports"}

	set := ConsentSet{"privacy_policy": true, "health_data": true, "medical_reports": true}
	assert.Empty(t, set.MissingRequired(required))

	// An explicit false counts as not granted, same as absence.
	set["health_data"] = false
	delete(set, "medical_reports")
	assert.Equal(t, []string{"health_data", "medical_reports"}, set.MissingRequired(required))

	// Optional consents never influence the gate.
	set["marketing"] = false
	assert.Equal(t, []string{"health_data", "medical_reports"}, set.MissingRequired(required))

	assert.Empty(t, set.MissingRequired(nil))
}
