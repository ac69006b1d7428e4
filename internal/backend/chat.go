package backend

import "context"

// SendChat forwards free text to the backend interpreter verbatim and
// returns its reply text unmodified.
func (c *Client) SendChat(ctx context.Context, message string) (string, error) {
	payload := struct {
		Message string `json:"message"`
	}{Message: message}

	var out struct {
		Response string `json:"response"`
	}
	if err := c.postAs(ctx, "/api/chat", payload, &out); err != nil {
		return "", err
	}
	return out.Response, nil
}
