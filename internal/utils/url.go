package utils

import (
	"fmt"
	"net/url"
)

// GetTransactionStatusUrl returns the API URL reporting the status of a transaction record.
// baseURL overrides the local address when the API sits behind a proxy.
func GetTransactionStatusUrl(baseURL string, serverPort int, recordID string) (string, error) {
	if baseURL != "" {
		parsedUrl, err := url.Parse(baseURL)
		if err != nil {
			return "", fmt.Errorf("invalid base url: %w", err)
		}
		parsedUrl.Path = fmt.Sprintf("/api/tx/%s", recordID)
		return parsedUrl.String(), nil
	}

	return fmt.Sprintf("http://localhost:%d/api/tx/%s", serverPort, recordID), nil
}
