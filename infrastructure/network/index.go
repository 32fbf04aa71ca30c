package network

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"facepass.io/infrastructure/logger"
)

// NetworkController is a thin JSON HTTP client for the external verification
// backends. Every request carries a bounded timeout; callers treat any error
// or non-2xx response as a denial, never as an approval.
type NetworkController struct {
	BaseUrl string
	Timeout time.Duration

	client *http.Client
}

func (network *NetworkController) preRequest() {
	if network.client == nil {
		timeout := network.Timeout
		if timeout == 0 {
			timeout = 10 * time.Second
		}
		network.client = &http.Client{Timeout: timeout}
	}
}

func (network *NetworkController) Post(path string, headers *map[string]string, body any) (*[]byte, *int, error) {
	network.preRequest()
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, nil, err
	}
	req, err := http.NewRequest(http.MethodPost, fmt.Sprintf("%s%s", network.BaseUrl, path), bytes.NewReader(payload))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if headers != nil {
		for key, value := range *headers {
			req.Header.Set(key, value)
		}
	}
	res, err := network.client.Do(req)
	if err != nil {
		logger.Error("network request failed", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "path",
			Data: path,
		})
		return nil, nil, err
	}
	defer res.Body.Close()
	response, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &res.StatusCode, err
	}
	return &response, &res.StatusCode, nil
}
