package models_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/PxPatel/crypto-fulfillment/internal/api/models"
)

func TestSubmitOrderRequest_Validate(t *testing.T) {
	tests := []struct {
		name     string
		request  models.SubmitOrderRequest
		wantCode models.ErrorCode
	}{
		{
			name: "valid buy",
			request: models.SubmitOrderRequest{
				Side: "buy", Quantity: decimal.NewFromInt(1), Price: decimal.NewFromInt(100),
			},
		},
		{
			name: "valid sell with mixed case",
			request: models.SubmitOrderRequest{
				Side: " SELL ", Quantity: decimal.NewFromFloat(0.5), Price: decimal.NewFromInt(100),
			},
		},
		{
			name: "unknown side",
			request: models.SubmitOrderRequest{
				Side: "hold", Quantity: decimal.NewFromInt(1), Price: decimal.NewFromInt(100),
			},
			wantCode: models.ErrInvalidSide,
		},
		{
			name: "zero quantity",
			request: models.SubmitOrderRequest{
				Side: "buy", Quantity: decimal.Zero, Price: decimal.NewFromInt(100),
			},
			wantCode: models.ErrInvalidQuantity,
		},
		{
			name: "negative price",
			request: models.SubmitOrderRequest{
				Side: "buy", Quantity: decimal.NewFromInt(1), Price: decimal.NewFromInt(-5),
			},
			wantCode: models.ErrInvalidPrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantCode == "" {
				assert.Nil(t, err)
				return
			}
			if assert.NotNil(t, err) {
				assert.Equal(t, tt.wantCode, err.Error.Code)
			}
		})
	}
}
