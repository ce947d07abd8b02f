package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Web3FormsURL is the hosted form relay endpoint.
const Web3FormsURL = "https://api.web3forms.com/submit"

// Web3Forms posts submissions as JSON to a Web3Forms-compatible endpoint.
type Web3Forms struct {
	URL       string
	AccessKey string
	Subject   string
	Client    *http.Client
}

func NewWeb3Forms(url, accessKey string) *Web3Forms {
	if url == "" {
		url = Web3FormsURL
	}
	return &Web3Forms{
		URL:       url,
		AccessKey: accessKey,
		Subject:   DefaultSubject,
		Client:    &http.Client{Timeout: 10 * time.Second},
	}
}

type web3Request struct {
	AccessKey string `json:"access_key"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
	Subject   string `json:"subject"`
}

type web3Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (w *Web3Forms) Send(ctx context.Context, m Message) error {
	body, err := json.Marshal(web3Request{
		AccessKey: w.AccessKey,
		Name:      m.Name,
		Email:     m.Email,
		Message:   m.Body,
		Subject:   w.Subject,
	})
	if err != nil {
		return fmt.Errorf("encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := w.Client.Do(req)
	if err != nil {
		return fmt.Errorf("post submission: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return fmt.Errorf("read relay response: %w", err)
	}
	var out web3Response
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("%w: status %d, undecodable body", ErrRejected, resp.StatusCode)
	}
	if !out.Success {
		return fmt.Errorf("%w: %s", ErrRejected, out.Message)
	}
	return nil
}
