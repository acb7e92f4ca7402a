package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRequest_ReportsJSONFieldNames(t *testing.T) {
	req := RegisterRequest{Name: "", Email: "not-an-email", Password: "short"}

	errs := validateRequest(&req)

	fields := map[string]string{}
	for _, e := range errs {
		fields[e.Field] = e.Message
	}
	assert.Equal(t, "is required", fields["name"])
	assert.Equal(t, "must be a valid email address", fields["email"])
	assert.Equal(t, "must be at least 8 characters", fields["password"])
}

func TestValidateRequest_Valid(t *testing.T) {
	req := RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "long enough"}
	assert.Nil(t, validateRequest(&req))
}
