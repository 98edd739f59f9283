package client

import "context"

// Me returns the authenticated user's profile from GET /api/users/me.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.Get(ctx, "/api/users/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}
