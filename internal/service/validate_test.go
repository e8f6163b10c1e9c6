package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pitak-order-api/internal/dto"
)

func TestPhonePattern(t *testing.T) {
	valid := []string{"0812345678", "021234567", "0999999999"}
	for _, p := range valid {
		assert.True(t, phonePattern.MatchString(p), p)
	}

	invalid := []string{
		"",
		"812345678",   // no leading zero
		"08123456",    // too short
		"08123456789", // too long
		"081234567a",
		"+66812345678",
	}
	for _, p := range invalid {
		assert.False(t, phonePattern.MatchString(p), p)
	}
}

func TestValidateCreate_OK(t *testing.T) {
	req := dto.CreateOrderRequest{
		OrderID:      "A1",
		CustomerName: "Somchai",
		Phone:        "0812345678",
		AmuletName:   "Bronze",
		Quantity:     1,
		Price:        99.5,
	}
	assert.NoError(t, validateCreate(req))
}

func TestValidateCreate_FieldMessages(t *testing.T) {
	req := dto.CreateOrderRequest{
		CustomerName: "S",
		Phone:        "abc",
		Quantity:     -1,
		Price:        -5,
	}

	err := validateCreate(req)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	byField := map[string]string{}
	for _, f := range ve.Fields {
		byField[f.Field] = f.Message
	}

	assert.Contains(t, byField, "orderId")
	assert.Contains(t, byField, "amuletName")
	assert.Equal(t, "must be at least 2 characters", byField["customerName"])
	assert.Equal(t, "must be a Thai mobile number (0 followed by 8-9 digits)", byField["phone"])
	assert.Equal(t, "must be greater than 0", byField["quantity"])
	assert.Equal(t, "must be greater than 0", byField["price"])
}

func TestValidationErrorMessage(t *testing.T) {
	ve := &ValidationError{Fields: []FieldError{
		{Field: "phone", Message: "is required"},
		{Field: "price", Message: "must be greater than 0"},
	}}
	assert.Equal(t, "validation failed: phone is required; price must be greater than 0", ve.Error())
}
