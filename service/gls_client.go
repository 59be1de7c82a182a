package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"gls-plugin/config"
)

// GLSClient sends assembled payloads to the carrier API and classifies
// what comes back. One call is one attempt: no retries, no queueing.
type GLSClient struct {
	Account         Account
	BaseURL         string
	ReferencePrefix string
	HTTPClient      *http.Client
}

func NewGLSClient(account Account, cfg config.Config) *GLSClient {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.CarrierBaseURL), "/")
	if baseURL == "" {
		baseURL = account.APIBaseURL()
	}
	timeout := time.Duration(cfg.CarrierTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &GLSClient{
		Account:         account,
		BaseURL:         baseURL,
		ReferencePrefix: ReferencePrefix(cfg.ReferenceTemplate),
		HTTPClient:      &http.Client{Timeout: timeout},
	}
}

// PrintLabels transmits one label-printing payload and classifies the
// response. Credentials are attached to a copy of the payload right
// before transmission; the caller's request never holds them.
func (c *GLSClient) PrintLabels(ctx context.Context, req *PrintLabelsRequest, isBatch bool) (*PrintLabelsResult, error) {
	if c == nil {
		return nil, fmt.Errorf("gls client is nil")
	}
	if req == nil {
		return nil, fmt.Errorf("print labels request is nil")
	}

	signed := *req
	signed.Username = c.Account.Username
	signed.Password = PasswordDigest(c.Account.Password)

	var resp PrintLabelsResponse
	if err := c.postJSON(ctx, "PrintLabels", &signed, &resp); err != nil {
		logRedactedPayload("PrintLabels", req, err)
		return nil, err
	}

	result, err := classifyPrintLabels(&resp, isBatch, c.ReferencePrefix)
	if err != nil {
		logRedactedPayload("PrintLabels", req, err)
		return nil, err
	}
	return result, nil
}

// GetParcelStatuses fetches the tracking history for one parcel.
func (c *GLSClient) GetParcelStatuses(ctx context.Context, parcelNumber int64, returnPOD bool) (*ParcelStatusResponse, error) {
	if c == nil {
		return nil, fmt.Errorf("gls client is nil")
	}
	req := ParcelStatusRequest{
		Username:     c.Account.Username,
		Password:     PasswordDigest(c.Account.Password),
		ParcelNumber: parcelNumber,
		ReturnPOD:    returnPOD,
	}

	var resp ParcelStatusResponse
	if err := c.postJSON(ctx, "GetParcelStatuses", &req, &resp); err != nil {
		return nil, err
	}
	if resp.ErrorCode != 0 {
		return nil, &APIError{Code: resp.ErrorCode, Description: resp.ErrorDescription}
	}
	for _, entry := range resp.GetParcelStatusErrors {
		return nil, &APIError{Code: entry.ErrorCode, Description: entry.ErrorDescription}
	}
	return &resp, nil
}

func (c *GLSClient) postJSON(ctx context.Context, method string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", method, err)
	}

	url := c.BaseURL + "/" + method
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", method, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(httpReq)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &HTTPError{StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &MalformedResponseError{Err: err}
	}
	return nil
}

func (c *GLSClient) httpClient() *http.Client {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 60 * time.Second}
	}
	return c.HTTPClient
}

// logRedactedPayload logs the outbound payload for diagnostics with
// credentials stripped. Payloads with credentials attached are never
// logged or persisted anywhere.
func logRedactedPayload(method string, req *PrintLabelsRequest, cause error) {
	redacted := *req
	redacted.Username = ""
	redacted.Password = nil
	body, err := json.Marshal(redacted)
	if err != nil {
		log.Printf("%s failed: %v (payload not serializable: %v)", method, cause, err)
		return
	}
	log.Printf("%s failed: %v payload=%s", method, cause, string(body))
}
