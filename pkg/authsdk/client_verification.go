package authsdk

import (
	"context"
	"net/http"
)

// GenerateVerificationCode asks the service for a fresh code for email. Any
// earlier code for the same email stops working.
func (c *SDKClient) GenerateVerificationCode(ctx context.Context, email string) (*VerificationResponse, error) {
	return c.verification(ctx, VerificationRequest{Action: VerificationGenerate, Email: email})
}

// CheckVerificationCode consumes code for email. Codes are single use.
func (c *SDKClient) CheckVerificationCode(ctx context.Context, email, code string) (*VerificationResponse, error) {
	return c.verification(ctx, VerificationRequest{Action: VerificationVerify, Email: email, Code: code})
}

func (c *SDKClient) verification(ctx context.Context, req VerificationRequest) (*VerificationResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/verification", req, nil)
	if err != nil {
		return nil, err
	}

	var out VerificationResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
