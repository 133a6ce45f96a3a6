package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"countdown/internal/core/countdown"

	"github.com/sirupsen/logrus"
)

const maxBodySize = 64 << 10

// Client queries a countdown endpoint of the form <base>/<YYYY-MM-DD>.
// Requests carry no timeout beyond the caller's context and are never retried.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logrus.Entry
}

// NewClient creates a client for the endpoint base address.
func NewClient(baseURL string, httpClient *http.Client, logger *logrus.Entry) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		log:        logger.WithField("component", "remote"),
	}
}

// BaseURL returns the configured endpoint base.
func (client *Client) BaseURL() string {
	return client.baseURL
}

// Lookup performs one GET for the date. Every failure is reported as an
// unavailable outcome, never as an error.
func (client *Client) Lookup(ctx context.Context, date string) Outcome {
	endpoint, err := url.JoinPath(client.baseURL, date)
	if err != nil {
		return Unavailable(fmt.Errorf("%w: build url: %v", ErrTransport, err))
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Unavailable(fmt.Errorf("%w: build request: %v", ErrTransport, err))
	}
	request.Header.Set("Accept", "application/json")

	response, err := client.httpClient.Do(request)
	if err != nil {
		return Unavailable(fmt.Errorf("%w: %v", ErrTransport, err))
	}
	defer func() {
		_ = response.Body.Close()
	}()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		outcome := Unavailable(fmt.Errorf("%w: %d", ErrStatus, response.StatusCode))
		outcome.StatusCode = response.StatusCode
		return outcome
	}

	body, err := io.ReadAll(io.LimitReader(response.Body, maxBodySize))
	if err != nil {
		return Unavailable(fmt.Errorf("%w: read body: %v", ErrTransport, err))
	}
	client.log.WithFields(logrus.Fields{
		"url":    endpoint,
		"status": response.StatusCode,
	}).Debugf("remote payload: %s", bytes.TrimSpace(body))

	outcome := Decode(body)
	outcome.StatusCode = response.StatusCode
	return outcome
}

// Decode extracts a breakdown from a response body. The breakdown may be the
// body itself or nested under "countdown".
func Decode(body []byte) Outcome {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return Unavailable(fmt.Errorf("%w: %v", ErrMalformed, err))
	}

	if nested, ok := envelope["countdown"]; ok {
		if outcome := decodeObject(nested); outcome.Available() {
			return outcome
		}
	}
	return decodeObject(body)
}

type wirePayload struct {
	Years   *int  `json:"years"`
	Months  *int  `json:"months"`
	Days    *int  `json:"days"`
	Hours   *int  `json:"hours"`
	Minutes *int  `json:"minutes"`
	Seconds *int  `json:"seconds"`
	Expired *bool `json:"expired"`
}

func decodeObject(raw []byte) Outcome {
	var payload wirePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return Unavailable(fmt.Errorf("%w: %v", ErrMalformed, err))
	}
	if payload.Days == nil || payload.Hours == nil || payload.Minutes == nil || payload.Seconds == nil {
		return Unavailable(fmt.Errorf("%w: missing days/hours/minutes/seconds", ErrMalformed))
	}

	outcome := Outcome{
		Fields: Fields{
			Years:  payload.Years != nil,
			Months: payload.Months != nil,
		},
	}
	outcome.Breakdown.Days = *payload.Days
	outcome.Breakdown.Hours = *payload.Hours
	outcome.Breakdown.Minutes = *payload.Minutes
	outcome.Breakdown.Seconds = *payload.Seconds
	if payload.Years != nil {
		outcome.Breakdown.Years = *payload.Years
	}
	if payload.Months != nil {
		outcome.Breakdown.Months = *payload.Months
	}
	expired := payload.Expired != nil && *payload.Expired
	if expired || outcome.Breakdown == (countdown.Breakdown{}) {
		outcome.Breakdown = countdown.ExpiredBreakdown()
	}

	if err := outcome.Breakdown.Validate(); err != nil {
		return Unavailable(fmt.Errorf("%w: %v", ErrMalformed, err))
	}
	return outcome
}
