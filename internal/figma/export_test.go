package figma

import "time"

// Timeout returns the time limit applied to requests.
func (c Client) Timeout() time.Duration {
	return c.client.Timeout
}

// BaseURL returns the endpoint file keys are appended to.
func (c Client) BaseURL() string {
	return c.baseURL
}
